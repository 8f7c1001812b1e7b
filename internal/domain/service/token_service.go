package service

import (
	"github.com/google/uuid"
)

// TokenScope restricts what a signed token may be used for.
type TokenScope string

const (
	// ScopeAccess is a general-purpose session token issued on login.
	ScopeAccess TokenScope = "access"
	// ScopeReset authorizes exactly one follow-up action: changing the
	// password after a successful OTP verification. It is deliberately
	// narrower than ScopeAccess.
	ScopeReset TokenScope = "password_reset"
)

// IsValid checks if the TokenScope is a known value.
func (s TokenScope) IsValid() bool {
	switch s {
	case ScopeAccess, ScopeReset:
		return true
	default:
		return false
	}
}

// Claims are the verified contents of a token.
type Claims struct {
	UserID uuid.UUID
	Scope  TokenScope
}

// TokenService defines the interface for generating and validating signed,
// time-boxed tokens. This abstracts the token format from the use cases.
type TokenService interface {
	// GenerateAccessToken creates a session token for a logged-in user.
	GenerateAccessToken(userID uuid.UUID) (string, error)

	// GenerateResetToken creates a short-lived token scoped to password reset.
	GenerateResetToken(userID uuid.UUID) (string, error)

	// ValidateToken checks signature and expiry and returns the claims.
	ValidateToken(tokenString string) (*Claims, error)
}
