package auth

import (
	"testing"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher(t *testing.T) *bcryptHasher {
	hasher := NewBcryptHasher(&config.Config{
		Auth: &config.AuthConfig{BcryptCost: 4},
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:        8,
			MaxLength:        128,
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
		},
	})

	concrete, ok := hasher.(*bcryptHasher)
	require.True(t, ok)

	return concrete
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher(t)

	hash, err := hasher.Hash("LongPass123")

	require.NoError(t, err)
	assert.NotEqual(t, "LongPass123", hash)
	assert.True(t, hasher.Check("LongPass123", hash))
	assert.False(t, hasher.Check("WrongPass123", hash))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := newTestHasher(t)

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "meets policy", password: "LongPass123", valid: true},
		{name: "too short", password: "short1A", valid: false},
		{name: "missing uppercase", password: "alllowercase1", valid: false},
		{name: "missing lowercase", password: "ALLUPPER123", valid: false},
		{name: "missing number", password: "NoDigitsHere", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBcryptHasher_ValidatePasswordStrength_ReportsAllViolations(t *testing.T) {
	hasher := newTestHasher(t)

	err := hasher.ValidatePasswordStrength("ab")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
	assert.Contains(t, err.Error(), "uppercase letter")
	assert.Contains(t, err.Error(), "number")
}

func TestBcryptHasher_DefaultsWhenPolicyOmitted(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	// Defaults require length, case mix and a digit but no special character.
	assert.NoError(t, hasher.ValidatePasswordStrength("LongPass123"))
	assert.Error(t, hasher.ValidatePasswordStrength("short1A"))
}
