package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/domain"
)

const employeeCacheKeyPrefix = "employee:cpf:"

// CachedEmployeeRepository is a read-through Redis cache over an
// EmployeeRepository. Token issuance hits GetByCPF on every identified
// request; cache entries keep those lookups off postgres. Only positive
// lookups are cached so the admission existence check never sees a stale
// "absent". Redis being unreachable degrades to the inner repository.
type CachedEmployeeRepository struct {
	inner  EmployeeRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedEmployeeRepository wraps inner with a lookup cache.
func NewCachedEmployeeRepository(inner EmployeeRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedEmployeeRepository {
	return &CachedEmployeeRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

type cachedEmployee struct {
	ID   int64  `json:"id"`
	CPF  string `json:"cpf"`
	Name string `json:"name"`
}

// Create invalidates any cached entry after the insert so a re-created CPF
// never serves the old name.
func (r *CachedEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if err := r.inner.Create(ctx, employee); err != nil {
		return err
	}
	r.invalidate(ctx, employee.CPF)
	return nil
}

func (r *CachedEmployeeRepository) GetByCPF(ctx context.Context, cpf string) (*domain.Employee, error) {
	if cached := r.lookup(ctx, cpf); cached != nil {
		return cached, nil
	}

	employee, err := r.inner.GetByCPF(ctx, cpf)
	if err != nil || employee == nil {
		return employee, err
	}

	r.store(ctx, employee)
	return employee, nil
}

func (r *CachedEmployeeRepository) DeleteByCPF(ctx context.Context, cpf string) error {
	if err := r.inner.DeleteByCPF(ctx, cpf); err != nil {
		return err
	}
	r.invalidate(ctx, cpf)
	return nil
}

func (r *CachedEmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	return r.inner.List(ctx)
}

func (r *CachedEmployeeRepository) lookup(ctx context.Context, cpf string) *domain.Employee {
	if r.client == nil {
		return nil
	}
	raw, err := r.client.Get(ctx, employeeCacheKeyPrefix+cpf).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Debug("employee cache read failed", zap.Error(err))
		}
		return nil
	}

	var entry cachedEmployee
	if err := json.Unmarshal(raw, &entry); err != nil {
		r.invalidate(ctx, cpf)
		return nil
	}
	id := entry.ID
	return &domain.Employee{ID: &id, CPF: entry.CPF, Name: entry.Name}
}

func (r *CachedEmployeeRepository) store(ctx context.Context, employee *domain.Employee) {
	if r.client == nil || employee.ID == nil {
		return
	}
	raw, err := json.Marshal(cachedEmployee{ID: *employee.ID, CPF: employee.CPF, Name: employee.Name})
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, employeeCacheKeyPrefix+employee.CPF, raw, r.ttl).Err(); err != nil {
		r.logger.Debug("employee cache write failed", zap.Error(err))
	}
}

func (r *CachedEmployeeRepository) invalidate(ctx context.Context, cpf string) {
	if r.client == nil {
		return
	}
	if err := r.client.Del(ctx, employeeCacheKeyPrefix+cpf).Err(); err != nil {
		r.logger.Debug("employee cache invalidation failed", zap.Error(err))
	}
}
