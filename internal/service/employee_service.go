package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
)

// EmployeeService orchestrates employee record CRUD. Incoming passwords
// are hashed here; digests never travel outward.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
}

// NewEmployeeService builds the service.
func NewEmployeeService(employees repository.EmployeeRepository, dispatcher events.Dispatcher) *EmployeeService {
	return &EmployeeService{employees: employees, dispatcher: dispatcher}
}

// Create hashes the password and stores a new employee record. The actor
// is the authenticated username performing the change, recorded in the
// audit trail.
func (s *EmployeeService) Create(ctx context.Context, actor string, employee *domain.Employee, password string) error {
	digest, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	employee.PasswordHash = digest

	if err := s.employees.Create(ctx, employee); err != nil {
		return err
	}
	employee.PasswordHash = ""

	s.audit(ctx, events.EventEmployeeCreated, employee.EmpID, actor)
	return nil
}

// GetByID fetches one employee record.
func (s *EmployeeService) GetByID(ctx context.Context, empID int64) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, empID)
}

// GetAll lists every employee record.
func (s *EmployeeService) GetAll(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.GetAll(ctx)
}

// Update rewrites username, email and role of an existing record.
func (s *EmployeeService) Update(ctx context.Context, actor string, employee *domain.Employee) error {
	if err := s.employees.Update(ctx, employee); err != nil {
		return err
	}
	s.audit(ctx, events.EventEmployeeUpdated, employee.EmpID, actor)
	return nil
}

// Delete removes an employee record.
func (s *EmployeeService) Delete(ctx context.Context, actor string, empID int64) error {
	if err := s.employees.Delete(ctx, empID); err != nil {
		return err
	}
	s.audit(ctx, events.EventEmployeeDeleted, empID, actor)
	return nil
}

func (s *EmployeeService) audit(ctx context.Context, eventType events.EventType, empID int64, actor string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EmpID:     empID,
		Timestamp: time.Now(),
		Payload:   events.EmployeeChangedPayload{Actor: actor},
	})
}
