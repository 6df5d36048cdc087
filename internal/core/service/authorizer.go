package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
)

// authorizer grants operations to trusted services and to users the
// authentication service confirms as holding a role. It fails closed.
type authorizer struct {
	roles ports.RoleChecker
	log   zerolog.Logger
}

func (a authorizer) require(ctx context.Context, caller domain.Caller, role domain.Role) error {
	if caller.IsService() {
		return nil
	}
	if caller.Username == "" {
		return fmt.Errorf("%w: caller identity unknown", domain.ErrForbidden)
	}
	if a.roles == nil {
		return fmt.Errorf("%w: role checks unavailable", domain.ErrForbidden)
	}
	if _, err := a.roles.CheckRole(ctx, caller.Token, caller.Username, role); err != nil {
		a.log.Debug().Err(err).Str("user", caller.Username).Str("role", string(role)).Msg("role check refused")
		return fmt.Errorf("%w: %s does not hold %s", domain.ErrForbidden, caller.Username, role)
	}
	return nil
}
