package auth

import (
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, accessTTL, resetTTL time.Duration) service.TokenService {
	svc, err := NewJWTService(&config.Config{
		SecretKey: config.SecretKey{
			Access: "access-secret-for-tests",
			Reset:  "reset-secret-for-tests",
		},
		Auth: &config.AuthConfig{
			AccessTokenTTL: accessTTL,
			ResetTokenTTL:  resetTTL,
		},
	})
	require.NoError(t, err)

	return svc
}

func TestJWTService_RequiresSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{})

	assert.Error(t, err)
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, service.ScopeAccess, claims.Scope)
}

func TestJWTService_ResetTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateResetToken(userID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, service.ScopeReset, claims.Scope)
}

func TestJWTService_ScopesUseSeparateSecrets(t *testing.T) {
	// Two services sharing only the access secret: a reset token minted by
	// one must not validate on the other even though the scope claim says
	// reset.
	svcA, err := NewJWTService(&config.Config{
		SecretKey: config.SecretKey{Access: "shared-access", Reset: "reset-a"},
	})
	require.NoError(t, err)

	svcB, err := NewJWTService(&config.Config{
		SecretKey: config.SecretKey{Access: "shared-access", Reset: "reset-b"},
	})
	require.NoError(t, err)

	userID := uuid.New()

	accessToken, err := svcA.GenerateAccessToken(userID)
	require.NoError(t, err)
	_, err = svcB.ValidateToken(accessToken)
	assert.NoError(t, err)

	resetToken, err := svcA.GenerateResetToken(userID)
	require.NoError(t, err)
	_, err = svcB.ValidateToken(resetToken)
	assert.Error(t, err)
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute, -time.Minute)

	token, err := svc.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)

	assert.Error(t, err)
}

func TestJWTService_GarbageTokenRejected(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, time.Hour)

	_, err := svc.ValidateToken("not-a-token")

	assert.Error(t, err)
}
