package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
	"github.com/dmsforum/forum/internal/metrics"
)

const (
	// SessionCookie carries the session id.
	SessionCookie = "forum_session"

	loginPath = "/login"
	homePath  = "/home"
)

// anyRole marks pages open to every logged-in user.
const anyRole domain.Role = ""

// Redirect tells the caller where to send the browser instead of rendering
// the requested page.
type Redirect struct {
	Location string
}

// Authorize decides whether sess may see a page that requires role.
// A nil result means proceed.
func Authorize(sess *domain.Session, role domain.Role) *Redirect {
	if sess == nil || sess.Token == "" {
		return &Redirect{Location: loginPath}
	}
	if role != anyRole && !sess.HasRole(role) {
		return &Redirect{Location: homePath}
	}
	return nil
}

// Page renders a protected page for an authorized session.
type Page func(c echo.Context, sess *domain.Session) error

// Gate loads the session behind the request cookie and guards pages with
// Authorize.
type Gate struct {
	sessions ports.SessionStore
	tokens   ports.TokenVerifier
	log      zerolog.Logger
}

func NewGate(sessions ports.SessionStore, tokens ports.TokenVerifier, log zerolog.Logger) *Gate {
	return &Gate{sessions: sessions, tokens: tokens, log: log}
}

// Guard wraps page so that it only runs for sessions holding role. The
// session token is re-validated with the auth service on every request and
// a rejected token ends the session.
func (g *Gate) Guard(role domain.Role, page Page) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := g.load(c)
		if sess != nil {
			if _, err := g.tokens.VerifyToken(c.Request().Context(), sess.Token); err != nil {
				g.log.Info().Err(err).Str("user", sess.User).Msg("session token rejected")
				g.end(c, sess.ID)
				sess = nil
			}
		}

		if r := Authorize(sess, role); r != nil {
			outcome := "login"
			if r.Location == homePath {
				outcome = "home"
			}
			metrics.SessionGateDecisionsTotal.WithLabelValues(outcome).Inc()
			return c.Redirect(http.StatusFound, r.Location)
		}

		metrics.SessionGateDecisionsTotal.WithLabelValues("proceed").Inc()
		return page(c, sess)
	}
}

// load returns the session named by the request cookie, or nil.
func (g *Gate) load(c echo.Context) *domain.Session {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sess, err := g.sessions.Get(c.Request().Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			g.log.Error().Err(err).Msg("failed to load session")
		}
		return nil
	}
	return sess
}

// end destroys the session and expires the cookie.
func (g *Gate) end(c echo.Context, id string) {
	if id != "" {
		if err := g.sessions.Delete(c.Request().Context(), id); err != nil {
			g.log.Error().Err(err).Msg("failed to delete session")
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
