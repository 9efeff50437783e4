package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/employee-service/internal/domain"
)

const allEmployeesKey = "employees:all"

// CachedEmployeeRepository is a read-through Redis decorator over an
// EmployeeRepository. Reads are served from cache when present; writes go
// straight to the store and invalidate affected keys. Cache failures fall
// back to the store, never to an error. Password digests are not cached.
type CachedEmployeeRepository struct {
	inner  EmployeeRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedEmployeeRepository wraps inner with a Redis cache. A nil
// client disables caching entirely.
func NewCachedEmployeeRepository(inner EmployeeRepository, client *redis.Client, ttl time.Duration) EmployeeRepository {
	if client == nil {
		return inner
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedEmployeeRepository{inner: inner, client: client, ttl: ttl}
}

func (r *CachedEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if err := r.inner.Create(ctx, employee); err != nil {
		return err
	}
	r.invalidate(ctx, employee.EmpID)
	return nil
}

func (r *CachedEmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	if err := r.inner.Update(ctx, employee); err != nil {
		return err
	}
	r.invalidate(ctx, employee.EmpID)
	return nil
}

func (r *CachedEmployeeRepository) Delete(ctx context.Context, empID int64) error {
	if err := r.inner.Delete(ctx, empID); err != nil {
		return err
	}
	r.invalidate(ctx, empID)
	return nil
}

func (r *CachedEmployeeRepository) GetByID(ctx context.Context, empID int64) (*domain.Employee, error) {
	key := employeeKey(empID)
	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var employee domain.Employee
		if err := json.Unmarshal(raw, &employee); err == nil {
			return &employee, nil
		}
	}

	employee, err := r.inner.GetByID(ctx, empID)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(employee); err == nil {
		r.client.Set(ctx, key, raw, r.ttl)
	}
	return employee, nil
}

func (r *CachedEmployeeRepository) GetAll(ctx context.Context) ([]domain.Employee, error) {
	if raw, err := r.client.Get(ctx, allEmployeesKey).Bytes(); err == nil {
		var employees []domain.Employee
		if err := json.Unmarshal(raw, &employees); err == nil {
			return employees, nil
		}
	}

	employees, err := r.inner.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(employees); err == nil {
		r.client.Set(ctx, allEmployeesKey, raw, r.ttl)
	}
	return employees, nil
}

// GetPasswordHash always hits the store. Digests stay out of the cache.
func (r *CachedEmployeeRepository) GetPasswordHash(ctx context.Context, empID int64) (string, error) {
	return r.inner.GetPasswordHash(ctx, empID)
}

func (r *CachedEmployeeRepository) invalidate(ctx context.Context, empID int64) {
	r.client.Del(ctx, employeeKey(empID), allEmployeesKey)
}

func employeeKey(empID int64) string {
	return fmt.Sprintf("employee:%d", empID)
}
