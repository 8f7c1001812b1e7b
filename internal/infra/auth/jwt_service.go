// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"storefront/config"
	"storefront/internal/domain/service"
)

const (
	defaultAccessTTL = 15 * time.Minute
	defaultResetTTL  = 10 * time.Minute
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Access and reset tokens are signed with separate secrets, so a reset token
// can never pass for a session token even if the scope claim were tampered with.
type jwtService struct {
	accessSecret string
	resetSecret  string
	accessTTL    time.Duration
	resetTTL     time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Reset == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	svc := &jwtService{
		accessSecret: cfg.SecretKey.Access,
		resetSecret:  cfg.SecretKey.Reset,
		accessTTL:    defaultAccessTTL,
		resetTTL:     defaultResetTTL,
	}
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			svc.accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.ResetTokenTTL > 0 {
			svc.resetTTL = cfg.Auth.ResetTokenTTL
		}
	}

	return svc, nil
}

// GenerateAccessToken creates a general-purpose session token.
func (s *jwtService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return s.generateToken(userID, service.ScopeAccess, s.accessTTL, s.accessSecret)
}

// GenerateResetToken creates a token that only authorizes a password change.
func (s *jwtService) GenerateResetToken(userID uuid.UUID) (string, error) {
	return s.generateToken(userID, service.ScopeReset, s.resetTTL, s.resetSecret)
}

// ValidateToken checks signature and expiry and returns the verified claims.
// The signing secret is selected by the token's scope claim before signature
// verification, so each scope is only ever checked against its own secret.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	var scope service.TokenScope

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return nil, jwt.ErrTokenInvalidClaims
		}
		scopeStr, _ := claims["scope"].(string)
		scope = service.TokenScope(scopeStr)

		switch scope {
		case service.ScopeAccess:
			return []byte(s.accessSecret), nil
		case service.ScopeReset:
			return []byte(s.resetSecret), nil
		default:
			return nil, jwt.ErrTokenInvalidClaims
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected token claims type")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("subject missing from token")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.Wrap(err, "invalid subject in token")
	}

	return &service.Claims{UserID: userID, Scope: scope}, nil
}

// generateToken is a private helper to create a JWT with specific claims.
func (s *jwtService) generateToken(userID uuid.UUID, scope service.TokenScope, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
		"scope": string(scope),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}
