// Package web is the forum's server-rendered HTML frontend.
package web

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
	infrahttp "github.com/dmsforum/forum/internal/infrastructure/http"
	"github.com/dmsforum/forum/internal/infrastructure/http/handlers"
)

type Dependencies struct {
	Sessions     ports.SessionStore
	Auth         ports.AuthClient
	Backend      ports.BackendClient
	SessionTTL   time.Duration
	CookieSecure bool
	Checks       []handlers.Check
	Logger       zerolog.Logger
}

// NewRouter builds the frontend's Echo instance with every page registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	e := infrahttp.NewServer(infrahttp.Options{
		Logger: deps.Logger,
		Checks: deps.Checks,
	})
	e.Renderer = renderer

	gate := NewGate(deps.Sessions, deps.Auth, deps.Logger)
	p := &Pages{
		gate:         gate,
		auth:         deps.Auth,
		backend:      deps.Backend,
		sessions:     deps.Sessions,
		sessionTTL:   deps.SessionTTL,
		cookieSecure: deps.CookieSecure,
		log:          deps.Logger,
	}

	// --- Public pages ---
	e.GET("/", redirectHome)
	e.GET("/login", p.LoginForm)
	e.POST("/login", p.Login)
	e.GET("/logout", p.Logout)

	// --- Discussion pages ---
	e.GET("/home", gate.Guard(anyRole, p.Home))
	e.GET("/discussions", gate.Guard(domain.RoleDiscussion, p.Discussions))
	e.GET("/discussions/view", gate.Guard(domain.RoleDiscussion, p.ViewDiscussion))
	e.POST("/discussions/new", gate.Guard(domain.RoleDiscussion, p.NewDiscussion))
	e.POST("/discussions/answer", gate.Guard(domain.RoleDiscussion, p.Answer))
	e.POST("/discussions/comment", gate.Guard(domain.RoleDiscussion, p.Comment))
	e.POST("/discussions/report", gate.Guard(domain.RoleDiscussion, p.Report))

	// --- Moderator pages ---
	e.GET("/moderator", gate.Guard(domain.RoleModeration, p.Moderator))
	e.GET("/moderator/reports", gate.Guard(domain.RoleModeration, p.Reports))
	e.GET("/moderator/report/view", gate.Guard(domain.RoleModeration, p.ViewReport))
	e.POST("/moderator/report/resolve", gate.Guard(domain.RoleModeration, p.ResolveReport))
	e.GET("/moderator/discussions", gate.Guard(domain.RoleModeration, p.ModeratorDiscussions))
	e.GET("/moderator/discussions/view", gate.Guard(domain.RoleDiscussion, p.ViewDiscussion))
	e.GET("/moderator/resolution", gate.Guard(domain.RoleModeration, p.Resolution))
	e.GET("/moderator/view", gate.Guard(domain.RoleModeration, p.TitleView))

	return e, nil
}
