package ports

import (
	"context"

	"github.com/dmsforum/forum/internal/core/domain"
)

// SessionStore keeps frontend sessions keyed by their ID.
type SessionStore interface {
	// Create stores s and assigns s.ID when empty.
	Create(ctx context.Context, s *domain.Session) error
	// Get returns domain.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
