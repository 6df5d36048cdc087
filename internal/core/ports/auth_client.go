package ports

import (
	"context"

	"github.com/dmsforum/forum/internal/core/domain"
)

// TokenVerifier validates user tokens against the authentication service.
// The returned username is empty when the service does not disclose it.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// RoleChecker asks the authentication service whether username holds role.
// Any error means the role is not granted.
type RoleChecker interface {
	CheckRole(ctx context.Context, token, username string, role domain.Role) ([]string, error)
}

// AuthClient is the full outbound view of the authentication service.
type AuthClient interface {
	TokenVerifier
	RoleChecker
	Login(ctx context.Context, username, password string) (string, error)
	// Roles probes every known role and returns those the user holds.
	Roles(ctx context.Context, token, username string) ([]string, error)
}
