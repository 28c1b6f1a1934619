package dto

import "github.com/spec-kit/auth-service/internal/auth"

// CreateTokenRequest payload for token issuance. All fields optional; a
// missing cpf yields an anonymous customer token.
type CreateTokenRequest struct {
	CPF   string `json:"cpf"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TokenResponse envelope for issued tokens.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// ValidateTokenRequest payload for token validation.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse collapses every verification failure into
// valid=false without exposing the failure kind.
type ValidateTokenResponse struct {
	Success bool         `json:"success"`
	Valid   bool         `json:"valid"`
	Payload *auth.Claims `json:"payload,omitempty"`
}
