package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/auth-service/internal/config"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/events"
	"github.com/spec-kit/auth-service/internal/repository"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// EmployeeService manages the employee registry. Every operation is gated
// by the admin shared secret before any directory access, so unauthorized
// callers learn nothing about registry contents.
type EmployeeService struct {
	employees   repository.EmployeeRepository
	adminSecret []byte
	dispatcher  events.Dispatcher
}

// NewEmployeeService builds the service. Fails when the admin secret is
// missing.
func NewEmployeeService(cfg config.Config, employees repository.EmployeeRepository, dispatcher events.Dispatcher) (*EmployeeService, error) {
	if cfg.Auth.AdminSecret == "" {
		return nil, apperrors.NewConfiguration("admin secret is required")
	}
	return &EmployeeService{
		employees:   employees,
		adminSecret: []byte(cfg.Auth.AdminSecret),
		dispatcher:  dispatcher,
	}, nil
}

func (s *EmployeeService) checkSecret(supplied string) error {
	if subtle.ConstantTimeCompare(s.adminSecret, []byte(supplied)) != 1 {
		return apperrors.NewForbidden("invalid admin secret key")
	}
	return nil
}

// CreateEmployee registers a new employee after a uniqueness check. The CPF
// is accepted as-is; admission is deliberately permissive about format.
func (s *EmployeeService) CreateEmployee(ctx context.Context, cpf, name, secretKey string) (*domain.Employee, error) {
	if err := s.checkSecret(secretKey); err != nil {
		return nil, err
	}

	existing, err := s.employees.GetByCPF(ctx, cpf)
	if err != nil {
		return nil, wrapDirectoryError(err)
	}
	if existing != nil {
		return nil, apperrors.NewConflict("employee with this CPF already exists", map[string]any{"cpf": cpf})
	}

	employee := domain.NewEmployee(cpf, name)
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, wrapDirectoryError(err)
	}

	s.publish(ctx, events.EventEmployeeCreated, cpf, events.EmployeeCreatedPayload{
		EmployeeID: *employee.ID,
		Name:       employee.Name,
	})
	return employee, nil
}

// DeleteEmployee removes an employee by CPF. Tokens already issued to that
// employee stay valid until they expire; there is no revocation.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, cpf, secretKey string) error {
	if err := s.checkSecret(secretKey); err != nil {
		return err
	}

	existing, err := s.employees.GetByCPF(ctx, cpf)
	if err != nil {
		return wrapDirectoryError(err)
	}
	if existing == nil {
		return apperrors.NewNotFound("employee", map[string]any{"cpf": cpf})
	}

	if err := s.employees.DeleteByCPF(ctx, cpf); err != nil {
		return wrapDirectoryError(err)
	}

	s.publish(ctx, events.EventEmployeeDeleted, cpf, events.EmployeeDeletedPayload{Name: existing.Name})
	return nil
}

// ListEmployees returns every registered employee, admin-gated like the
// mutating operations.
func (s *EmployeeService) ListEmployees(ctx context.Context, secretKey string) ([]domain.Employee, error) {
	if err := s.checkSecret(secretKey); err != nil {
		return nil, err
	}

	list, err := s.employees.List(ctx)
	if err != nil {
		return nil, wrapDirectoryError(err)
	}
	return list, nil
}

func (s *EmployeeService) publish(ctx context.Context, eventType events.EventType, cpf string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		CPF:       cpf,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

// wrapDirectoryError passes typed domain errors through unchanged and wraps
// anything else as internal, keeping the original message as opaque detail.
func wrapDirectoryError(err error) error {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return apperrors.NewInternalError(err)
}
