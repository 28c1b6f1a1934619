package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/events"
)

// AuditService records registry mutations for operator diagnostics.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to registry events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventEmployeeCreated, a.handleEmployeeCreated)
	a.dispatcher.Subscribe(events.EventEmployeeDeleted, a.handleEmployeeDeleted)
}

func (a *AuditService) handleEmployeeCreated(ctx context.Context, event events.Event) error {
	a.logger.Info("EmployeeCreated",
		zap.String("event_id", event.ID),
		zap.String("cpf", event.CPF),
		zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleEmployeeDeleted(ctx context.Context, event events.Event) error {
	a.logger.Info("EmployeeDeleted",
		zap.String("event_id", event.ID),
		zap.String("cpf", event.CPF),
		zap.Any("payload", event.Payload))
	return nil
}
