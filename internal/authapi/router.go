// Package authapi exposes the authentication service over HTTP.
package authapi

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/api"
	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
	infrahttp "github.com/dmsforum/forum/internal/infrastructure/http"
	"github.com/dmsforum/forum/internal/infrastructure/http/handlers"
)

type Dependencies struct {
	Auth         ports.AuthService
	APIKeyHeader string
	APIKeys      []string
	Checks       []handlers.Check
	Logger       zerolog.Logger
}

// NewRouter builds the authentication service's Echo instance.
func NewRouter(deps Dependencies) *echo.Echo {
	e := infrahttp.NewServer(infrahttp.Options{
		Logger:       deps.Logger,
		ErrorHandler: api.NewHTTPErrorHandler(deps.Logger),
		Checks:       deps.Checks,
	})

	h := NewHandler(deps.Auth)
	header := deps.APIKeyHeader
	if header == "" {
		header = "X-ApiKey-Auth"
	}

	v1 := e.Group("/api/v1")
	v1.POST("/auth", h.Login)

	secured := v1.Group("", requireAPIKey(header, deps.APIKeys), bearer(deps.Auth))
	secured.GET("/auth", h.Verify)
	secured.GET("/user/:username/role/:rolename", h.UserRole)
	secured.POST("/users", h.Register, rbac(deps.Auth, domain.RoleAdministration))

	return e
}
