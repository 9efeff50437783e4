package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/service"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// EmployeesHandler exposes CRUD endpoints over employee records.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employeeService}
}

// List handles GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.employees.GetAll(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}

	resp := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		resp = append(resp, employeeResponse(&employees[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	empID, err := parseEmpID(c)
	if err != nil {
		return err
	}

	employee, err := h.employees.GetByID(c.Context(), empID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("employee", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": employeeResponse(employee)})
}

// Create handles POST /employees. The password is required here and the
// stored digest is never echoed back.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" {
		return fiber.NewError(http.StatusBadRequest, "username required")
	}
	if req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "password required")
	}

	employee := &domain.Employee{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}
	actor := auth.PrincipalFromContext(c).Username
	if err := h.employees.Create(c.Context(), actor, employee, req.Password); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": employeeResponse(employee)})
}

// Update handles PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	empID, err := parseEmpID(c)
	if err != nil {
		return err
	}

	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" {
		return fiber.NewError(http.StatusBadRequest, "username required")
	}

	employee := &domain.Employee{
		EmpID:    empID,
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}
	actor := auth.PrincipalFromContext(c).Username
	if err := h.employees.Update(c.Context(), actor, employee); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("employee", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": employeeResponse(employee)})
}

// Delete handles DELETE /employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	empID, err := parseEmpID(c)
	if err != nil {
		return err
	}

	actor := auth.PrincipalFromContext(c).Username
	if err := h.employees.Delete(c.Context(), actor, empID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("employee", nil)
		}
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseEmpID(c *fiber.Ctx) (int64, error) {
	empID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || empID <= 0 {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid employee id")
	}
	return empID, nil
}

func employeeResponse(e *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		EmpID:     e.EmpID,
		Username:  e.Username,
		Email:     e.Email,
		Role:      e.Role,
		CreatedAt: e.CreatedAt,
	}
}
