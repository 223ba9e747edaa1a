package service

import (
	"time"

	"ridehail/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by an access token.
type Claims struct {
	Email string      `json:"email"`
	Role  entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *Claims) UserID() string {
	return c.Subject
}

// TokenService defines the interface for issuing and validating JWTs.
// There is no refresh flow: an expired token requires a new login.
type TokenService interface {
	// GenerateToken mints a signed token for the user with an absolute expiry.
	GenerateToken(user *entity.User) (string, error)

	// ValidateToken verifies signature and expiry and returns the claims.
	ValidateToken(tokenString string) (*Claims, error)

	// TokenTTL returns the configured lifetime of issued tokens.
	TokenTTL() time.Duration
}
