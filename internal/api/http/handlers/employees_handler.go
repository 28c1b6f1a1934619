package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/api/dto"
	"github.com/spec-kit/auth-service/internal/service"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// AdminSecretHeader carries the shared admin credential on registry calls.
const AdminSecretHeader = "X-Admin-Secret"

// EmployeesHandler exposes the admin-gated employee registry.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employeeService}
}

// Create handles POST /auth/employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CPF == "" || req.Name == "" {
		return apperrors.NewValidationError("cpf and name required", nil)
	}
	if len(req.CPF) != 11 {
		return apperrors.NewValidationError("cpf must have exactly 11 characters", map[string]any{"cpf": req.CPF})
	}
	if len(req.Name) < 2 || len(req.Name) > 100 {
		return apperrors.NewValidationError("name must be between 2 and 100 characters", nil)
	}

	employee, err := h.employees.CreateEmployee(c.Context(), req.CPF, req.Name, c.Get(AdminSecretHeader))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.EmployeeResponse{
		Success: true,
		ID:      *employee.ID,
		Message: "Employee registered successfully",
		CPF:     employee.CPF,
		Name:    employee.Name,
	})
}

// Delete handles DELETE /auth/employees/:cpf.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	cpf := c.Params("cpf")

	if err := h.employees.DeleteEmployee(c.Context(), cpf, c.Get(AdminSecretHeader)); err != nil {
		return err
	}

	return c.JSON(dto.DeleteEmployeeResponse{
		Success: true,
		Message: "Employee deleted successfully",
	})
}

// List handles GET /auth/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.employees.ListEmployees(c.Context(), c.Get(AdminSecretHeader))
	if err != nil {
		return err
	}

	summaries := make([]dto.EmployeeSummary, 0, len(employees))
	for _, employee := range employees {
		summary := dto.EmployeeSummary{CPF: employee.CPF, Name: employee.Name}
		if employee.ID != nil {
			summary.ID = *employee.ID
		}
		summaries = append(summaries, summary)
	}

	return c.JSON(dto.EmployeeListResponse{Success: true, Employees: summaries})
}
