package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Login stays outside the
// authentication pipeline; every employee route declares its role
// requirement.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	employees := app.Group("/employees", cfg.AuthMiddleware.Authenticate)
	employees.Get("/", auth.RequireRoles(auth.AllOf(domain.RoleAdmin)), cfg.Employees.List)
	employees.Post("/", auth.RequireRoles(auth.AllOf(domain.RoleAdmin)), cfg.Employees.Create)
	employees.Get("/:id", auth.RequireRoles(auth.AnyOf(domain.RoleAdmin, domain.RoleUser)), cfg.Employees.Get)
	employees.Put("/:id", auth.RequireRoles(auth.AllOf(domain.RoleAdmin)), cfg.Employees.Update)
	employees.Delete("/:id", auth.RequireRoles(auth.AllOf(domain.RoleAdmin)), cfg.Employees.Delete)
}
