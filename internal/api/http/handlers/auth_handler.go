package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// AuthHandler exposes the login endpoint. Login is the entry point that
// produces tokens and therefore sits outside the authentication pipeline.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login. Every credential failure produces the
// same generic message so callers cannot enumerate accounts.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.EmpID <= 0 || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "empId and password required")
	}

	employee, token, _, err := h.auth.Login(c.Context(), req.EmpID, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
		}
		return apperrors.MapError(err)
	}

	return c.JSON(dto.LoginResponse{
		Token: token,
		Employee: dto.EmployeeSummary{
			EmpID:    employee.EmpID,
			Username: employee.Username,
			Email:    employee.Email,
			Role:     employee.Role,
		},
	})
}
