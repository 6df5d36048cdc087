package authapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apimw "github.com/dmsforum/forum/internal/api/middleware"
	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
)

const usernameKey = "username"

// requireAPIKey checks the service API key header against keys. An empty
// allow-list disables the check.
func requireAPIKey(header string, keys []string) echo.MiddlewareFunc {
	allowed := apimw.NewAPIKeys(keys...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(keys) == 0 {
				return next(c)
			}
			if _, err := allowed.VerifyAPIKey(c.Request().Header.Get(header)); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid api key")
			}
			return next(c)
		}
	}
}

// bearer validates the token and injects its username into context.
func bearer(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			username, err := auth.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(usernameKey, username)
			return next(c)
		}
	}
}

// rbac lets the request through only when the token's user holds role.
func rbac(auth ports.AuthService, role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := auth.UserRole(c.Request().Context(), ctxUsername(c), role); err != nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

func ctxUsername(c echo.Context) string {
	username, _ := c.Get(usernameKey).(string)
	return username
}
