// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

// Policy defaults used when the config omits a passwordStrength section.
const (
	defaultMinPasswordLength = 8
	defaultMaxPasswordLength = 128
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher. The bcrypt cost and the
// strength policy both come from configuration so they are never read
// ambiently inside business logic.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	policy := config.PasswordStrengthConfig{
		MinLength:        defaultMinPasswordLength,
		MaxLength:        defaultMaxPasswordLength,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
	}
	if cfg.PasswordStrength != nil {
		policy = *cfg.PasswordStrength
	}
	if policy.MinLength <= 0 {
		policy.MinLength = defaultMinPasswordLength
	}
	if policy.MaxLength <= 0 {
		policy.MaxLength = defaultMaxPasswordLength
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks the plaintext against the configured policy.
// Every violated rule is collected before returning, so the caller can report
// the complete list instead of only the first failure.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	var violations []string

	if len(password) < h.policy.MinLength {
		violations = append(violations, errors.Errorf("must be at least %d characters long", h.policy.MinLength).Error())
	}
	if len(password) > h.policy.MaxLength {
		violations = append(violations, errors.Errorf("must be at most %d characters long", h.policy.MaxLength).Error())
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if h.policy.RequireLowercase && !hasLower {
		violations = append(violations, "must contain at least one lowercase letter")
	}
	if h.policy.RequireUppercase && !hasUpper {
		violations = append(violations, "must contain at least one uppercase letter")
	}
	if h.policy.RequireNumbers && !hasNumber {
		violations = append(violations, "must contain at least one number")
	}
	if h.policy.RequireSpecial && !hasSpecial {
		violations = append(violations, "must contain at least one special character")
	}

	if len(violations) > 0 {
		return errors.Errorf("password %s", strings.Join(violations, "; "))
	}

	return nil
}
