package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
)

// AuthClient talks to the authentication service. Every call carries the
// configured API key header.
type AuthClient struct {
	c *client
}

func NewAuthClient(cfg Config, hc *http.Client, logger zerolog.Logger) *AuthClient {
	return &AuthClient{c: newClient("auth", cfg, hc, logger)}
}

// VerifyToken asks the authentication service whether token is valid. A 2xx
// answer accepts the token; the username is empty when the body does not
// carry one.
func (a *AuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	body, err := a.c.do(ctx, request{method: http.MethodGet, path: "/auth", token: token})
	if err != nil {
		return "", err
	}
	var claims struct {
		Username string `json:"username"`
	}
	if json.Unmarshal(body, &claims) != nil {
		return "", nil
	}
	return claims.Username, nil
}

// CheckRole returns the user's roles when the authentication service
// confirms username holds role.
func (a *AuthClient) CheckRole(ctx context.Context, token, username string, role domain.Role) ([]string, error) {
	path := "/user/" + url.PathEscape(username) + "/role/" + url.PathEscape(string(role))
	var roles []string
	if err := a.c.getJSON(ctx, path, token, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// Login exchanges credentials for a token using HTTP Basic auth.
func (a *AuthClient) Login(ctx context.Context, username, password string) (string, error) {
	body, err := a.c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth",
		basic:  &basicAuth{username: username, password: password},
	})
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(body))
	var quoted string
	if json.Unmarshal(body, &quoted) == nil {
		token = quoted
	}
	if token == "" {
		return "", domain.ErrInvalidCredentials
	}
	return token, nil
}

// Roles probes every known role and returns the ones the service confirms.
// A 403 or 404 means the role is not held. Any other failure aborts, so a
// rejected API key or token is not mistaken for a user without roles.
func (a *AuthClient) Roles(ctx context.Context, token, username string) ([]string, error) {
	granted := make([]string, 0, len(domain.Roles))
	for _, role := range domain.Roles {
		_, err := a.CheckRole(ctx, token, username, role)
		if err == nil {
			granted = append(granted, string(role))
			continue
		}
		if code := StatusCode(err); code == http.StatusForbidden || code == http.StatusNotFound {
			continue
		}
		return nil, err
	}
	return granted, nil
}

var _ ports.AuthClient = (*AuthClient)(nil)
