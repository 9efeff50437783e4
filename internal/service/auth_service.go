package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
)

// ErrInvalidCredentials is the single failure every login problem
// collapses to. Unknown employee and wrong password are indistinguishable
// to the caller; the audit trail keeps the real reason.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates the login flow: credential verification against
// the stored digest, then token issuance.
type AuthService struct {
	employees  repository.EmployeeRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
}

// NewAuthService builds the service. It fails when the token manager
// cannot be constructed, which is fatal at startup.
func NewAuthService(cfg config.AuthConfig, employees repository.EmployeeRepository, dispatcher events.Dispatcher) (*AuthService, error) {
	tokens, err := auth.NewTokenManager(cfg)
	if err != nil {
		return nil, err
	}
	return &AuthService{employees: employees, tokens: tokens, dispatcher: dispatcher}, nil
}

// Login verifies the password for the employee and issues a signed token
// on success.
func (s *AuthService) Login(ctx context.Context, empID int64, password string) (*domain.Employee, string, time.Time, error) {
	employee, err := s.employees.GetByID(ctx, empID)
	if err != nil {
		s.auditLoginFailed(ctx, empID, "unknown_employee")
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	digest, err := s.employees.GetPasswordHash(ctx, empID)
	if err != nil || !auth.VerifyPassword(password, digest) {
		s.auditLoginFailed(ctx, empID, "wrong_password")
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(employee.EmpID, employee.Username, employee.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLoginSucceeded,
		EmpID:     employee.EmpID,
		Timestamp: time.Now(),
	})
	return employee, token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) auditLoginFailed(ctx context.Context, empID int64, reason string) {
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLoginFailed,
		EmpID:     empID,
		Timestamp: time.Now(),
		Payload:   events.LoginFailedPayload{Reason: reason},
	})
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
