package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/infrastructure/identity"
)

const (
	// SessionContextKey is the echo context key for the resolved session
	SessionContextKey = "session"
)

// EchoAuth returns an Echo middleware that resolves the bearer token into a
// session and sets it into the Echo context under SessionContextKey
func EchoAuth(provider identity.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// An empty token is passed through: the JWT provider rejects it,
			// the demo provider accepts anything.
			token := extractToken(c)

			session, err := provider.Resolve(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(SessionContextKey, session)
			return next(c)
		}
	}
}

// RequireRole checks that the resolved session carries one of the roles
func RequireRole(roles ...entities.ProfileRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := SessionFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			for _, role := range roles {
				if session.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// SessionFromContext retrieves the session set by EchoAuth
func SessionFromContext(c echo.Context) (*identity.Session, bool) {
	session, ok := c.Get(SessionContextKey).(*identity.Session)
	return session, ok
}

func extractToken(c echo.Context) string {
	// Try Authorization header first
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Try cookie as fallback
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
