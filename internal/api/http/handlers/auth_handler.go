package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/api/dto"
	"github.com/spec-kit/auth-service/internal/service"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// AuthHandler exposes token issuance and validation endpoints.
type AuthHandler struct {
	tokens *service.TokenService
	logger *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(tokenService *service.TokenService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{tokens: tokenService, logger: logger}
}

// CreateToken handles POST /auth/token.
func (h *AuthHandler) CreateToken(c *fiber.Ctx) error {
	var req dto.CreateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	token, _, err := h.tokens.CreateToken(c.Context(), req.CPF, req.Name, req.Email)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{
		Success: true,
		Token:   token,
		Message: "Token created successfully",
	})
}

// ValidateToken handles POST /auth/validate. Any verification failure
// collapses into a uniform valid=false body; the typed error kind is logged
// for diagnostics but never surfaced to the caller.
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req dto.ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" {
		return apperrors.NewValidationError("token is required", nil)
	}

	claims, err := h.tokens.ValidateToken(req.Token)
	if err != nil {
		fields := []zap.Field{zap.String("code", apperrors.ToDomainError(err).Code)}
		if decoded := h.tokens.DecodeToken(req.Token); decoded != nil {
			fields = append(fields,
				zap.String("subject", decoded.Subject),
				zap.String("user_type", string(decoded.UserType)))
		}
		h.logger.Info("token rejected", fields...)

		return c.JSON(dto.ValidateTokenResponse{Success: false, Valid: false})
	}

	return c.JSON(dto.ValidateTokenResponse{
		Success: true,
		Valid:   true,
		Payload: claims,
	})
}
