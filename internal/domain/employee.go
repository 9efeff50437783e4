package domain

import "time"

// Role names known to the service. Roles are free-form strings in the
// token payload; these two are the ones routes actually gate on.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Employee is the domain model for an employee record. PasswordHash holds
// the stored digest and must never leave the service boundary.
type Employee struct {
	EmpID        int64
	Username     string
	Email        string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}
