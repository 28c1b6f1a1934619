package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/config"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/repository"
	"github.com/spec-kit/auth-service/pkg/cpf"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// TokenService coordinates token issuance and validation.
type TokenService struct {
	employees repository.EmployeeRepository
	codec     *auth.TokenCodec
}

// NewTokenService builds the service. Fails when the signing secret is
// missing.
func NewTokenService(cfg config.Config, employees repository.EmployeeRepository) (*TokenService, error) {
	codec, err := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		return nil, err
	}
	return &TokenService{employees: employees, codec: codec}, nil
}

// CreateToken issues a signed token. A blank cpf yields an anonymous
// customer token with a generated client_ subject. An identified caller is
// classified by directory lookup: registered employees become funcionario,
// everyone else cliente. The caller never picks its own class.
func (s *TokenService) CreateToken(ctx context.Context, rawCPF, name, email string) (string, time.Time, error) {
	trimmed := strings.TrimSpace(rawCPF)
	if trimmed == "" {
		return s.createClientToken(name, email)
	}

	if !cpf.IsValidFormat(trimmed) {
		return "", time.Time{}, apperrors.NewInvalidFormat(
			"Invalid CPF format. CPF must have exactly 11 numeric digits",
			map[string]any{"received": rawCPF},
		)
	}

	employee, err := s.employees.GetByCPF(ctx, trimmed)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(fmt.Errorf("employee lookup: %w", err))
	}

	userType := domain.UserTypeCustomer
	if employee != nil {
		userType = domain.UserTypeEmployee
	}

	claims := &auth.Claims{
		CPF:              trimmed,
		UserType:         userType,
		Name:             name,
		Email:            email,
		RegisteredClaims: jwt.RegisteredClaims{Subject: trimmed},
	}
	return s.codec.Sign(claims)
}

func (s *TokenService) createClientToken(name, email string) (string, time.Time, error) {
	subject := domain.ClientSubjectPrefix + uuid.NewString()

	claims := &auth.Claims{
		CPF:              "",
		UserType:         domain.UserTypeCustomer,
		Name:             name,
		Email:            email,
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
	}
	return s.codec.Sign(claims)
}

// ValidateToken verifies signature and expiry and returns the claims. Pure
// delegation to the codec; validity is self-contained in the token, so the
// directory is never consulted here.
func (s *TokenService) ValidateToken(token string) (*auth.Claims, error) {
	return s.codec.Verify(token)
}

// DecodeToken parses claims without verification, for diagnostics only.
func (s *TokenService) DecodeToken(token string) *auth.Claims {
	return s.codec.Decode(token)
}
