package ports

import (
	"context"

	"github.com/dmsforum/forum/internal/core/domain"
)

// AuthService is the authentication service's use-case boundary.
type AuthService interface {
	Register(ctx context.Context, username, password string, roles []domain.Role) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Authenticate validates a token and returns the username it was issued to.
	Authenticate(ctx context.Context, token string) (string, error)
	// UserRole returns the user's roles when the user holds role, and
	// domain.ErrForbidden otherwise.
	UserRole(ctx context.Context, username string, role domain.Role) ([]domain.Role, error)
}
