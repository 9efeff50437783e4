package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// EmployeeRepository defines persistence access for employee records.
// GetPasswordHash exists so the login path can fetch the stored digest
// without the digest riding along on every read.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, empID int64) error
	GetByID(ctx context.Context, empID int64) (*domain.Employee, error)
	GetAll(ctx context.Context) ([]domain.Employee, error)
	GetPasswordHash(ctx context.Context, empID int64) (string, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (username, email, role, password_hash)
        VALUES ($1, $2, $3, $4)
        RETURNING emp_id, created_at`

	return r.pool.QueryRow(ctx, query,
		employee.Username,
		employee.Email,
		employee.Role,
		employee.PasswordHash,
	).Scan(&employee.EmpID, &employee.CreatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	const query = `
        UPDATE employees SET username=$1, email=$2, role=$3
        WHERE emp_id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		employee.Username,
		employee.Email,
		employee.Role,
		employee.EmpID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, empID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE emp_id=$1`, empID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, empID int64) (*domain.Employee, error) {
	const query = `
        SELECT emp_id, username, email, role, created_at
        FROM employees WHERE emp_id=$1`

	var employee domain.Employee
	if err := r.pool.QueryRow(ctx, query, empID).Scan(
		&employee.EmpID,
		&employee.Username,
		&employee.Email,
		&employee.Role,
		&employee.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) GetAll(ctx context.Context) ([]domain.Employee, error) {
	const query = `
        SELECT emp_id, username, email, role, created_at
        FROM employees ORDER BY emp_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		var employee domain.Employee
		if err := rows.Scan(
			&employee.EmpID,
			&employee.Username,
			&employee.Email,
			&employee.Role,
			&employee.CreatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) GetPasswordHash(ctx context.Context, empID int64) (string, error) {
	var hash string
	err := r.pool.QueryRow(ctx, `SELECT password_hash FROM employees WHERE emp_id=$1`, empID).Scan(&hash)
	if err != nil {
		return "", err
	}
	return hash, nil
}
