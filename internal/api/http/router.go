package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Employees *handlers.EmployeesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/token", cfg.Auth.CreateToken)
	authGroup.Post("/validate", cfg.Auth.ValidateToken)

	authGroup.Post("/employees", cfg.Employees.Create)
	authGroup.Get("/employees", cfg.Employees.List)
	authGroup.Delete("/employees/:cpf", cfg.Employees.Delete)
}
