package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/auth-service/internal/domain"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// Issuer is the fixed tag embedded in every token this service signs.
const Issuer = "auth-service"

const defaultTTL = 15 * time.Minute

// Claims describes the JWT payload. The cpf field is always serialized, even
// when empty; name and email are omitted entirely when not provided so
// consumers can distinguish absent from blank.
type Claims struct {
	CPF      string          `json:"cpf"`
	UserType domain.UserType `json:"user_type"`
	Name     string          `json:"name,omitempty"`
	Email    string          `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec signs, verifies and decodes HS256 JWTs. The secret is fixed at
// construction and never changes for the codec's lifetime.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec. An empty secret is a configuration error;
// the service must not start without one.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, apperrors.NewConfiguration("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}, nil
}

// Sign stamps subject, issuer, issued-at and expiry onto claims and returns
// the signed token. Timestamps are never caller supplied.
func (c *TokenCodec) Sign(claims *Claims) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(c.ttl)

	claims.RegisteredClaims.Issuer = Issuer
	claims.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Failures carry TOKEN_EXPIRED, TOKEN_INVALID or VALIDATION_FAILED codes.
func (c *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.NewTokenExpired()
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, apperrors.NewTokenInvalid()
		default:
			return nil, apperrors.NewValidationError("token validation failed", map[string]any{"cause": err.Error()})
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, apperrors.NewTokenInvalid()
	}
	return claims, nil
}

// Decode parses claims without verifying signature or expiry. Inspection
// only; output must never drive an authorization decision. Returns nil on
// any parse failure.
func (c *TokenCodec) Decode(tokenStr string) *Claims {
	parsed, _, err := jwt.NewParser().ParseUnverified(tokenStr, &Claims{})
	if err != nil {
		return nil
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// TTL exposes the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}
