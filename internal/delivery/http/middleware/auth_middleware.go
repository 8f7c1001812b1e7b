package middleware

import (
	"net/http"
	"strings"

	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// ContextKeyUserID is the echo.Context key holding the authenticated user's ID.
const ContextKeyUserID = "userID"

// ContextKeyScope is the echo.Context key holding the token's scope.
const ContextKeyScope = "tokenScope"

// AuthMiddleware provides middleware for token authentication and scope checks.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and stores the caller's identity
// and token scope on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		// Set user info on the context for handlers to use
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyScope, claims.Scope)

		return next(c)
	}
}

// RequireScope is a middleware factory that checks the token was issued for
// a specific purpose. It must be used AFTER the Authenticate middleware.
// A login token cannot change passwords and a reset token cannot browse.
func (m *AuthMiddleware) RequireScope(requiredScope service.TokenScope) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scope, ok := c.Get(ContextKeyScope).(service.TokenScope)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: scope information missing"})
			}

			if scope != requiredScope {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: token not issued for this operation"})
			}

			return next(c)
		}
	}
}
