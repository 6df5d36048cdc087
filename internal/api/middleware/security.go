package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/metrics"
)

// CallerKey is the echo context key holding the authenticated domain.Caller.
const CallerKey = "caller"

const defaultAPIKeyHeader = "X-ApiKey-Backend"

// SecurityConfig wires the two credential schemes the backend accepts.
type SecurityConfig struct {
	APIKeyHeader string
	Keys         APIKeys
	Tokens       TokenCheck
}

// Security requires at least one credential and rejects the request with
// 401 unless every credential presented passes its check.
func Security(cfg SecurityConfig) echo.MiddlewareFunc {
	header := cfg.APIKeyHeader
	if header == "" {
		header = defaultAPIKeyHeader
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(header)
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)

			if key == "" && authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}

			if key != "" {
				if _, err := cfg.Keys.VerifyAPIKey(key); err != nil {
					metrics.SecurityDecisionsTotal.WithLabelValues("api_key", "denied").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid api key")
				}
				metrics.SecurityDecisionsTotal.WithLabelValues("api_key", "granted").Inc()
			}

			caller := domain.Caller{}
			if authHeader != "" {
				token, ok := bearerToken(authHeader)
				if !ok {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
				}
				username, ok := cfg.Tokens.VerifyToken(c.Request().Context(), token)
				if !ok {
					metrics.SecurityDecisionsTotal.WithLabelValues("token", "denied").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				metrics.SecurityDecisionsTotal.WithLabelValues("token", "granted").Inc()
				caller = domain.Caller{Username: username, Token: token}
			}

			c.Set(CallerKey, caller)
			return next(c)
		}
	}
}

// CallerFrom returns the caller stored by Security.
func CallerFrom(c echo.Context) (domain.Caller, bool) {
	caller, ok := c.Get(CallerKey).(domain.Caller)
	return caller, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
