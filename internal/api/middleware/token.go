package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/core/ports"
)

const defaultTokenTimeout = 60 * time.Second

// TokenCheck forwards bearer tokens to the authentication service.
type TokenCheck struct {
	verifier ports.TokenVerifier
	timeout  time.Duration
	log      zerolog.Logger
}

func NewTokenCheck(verifier ports.TokenVerifier, timeout time.Duration, log zerolog.Logger) TokenCheck {
	if timeout <= 0 {
		timeout = defaultTokenTimeout
	}
	return TokenCheck{verifier: verifier, timeout: timeout, log: log}
}

// VerifyToken reports whether the authentication service accepts token,
// along with the username it disclosed. Any failure, transport errors
// included, rejects the token.
func (t TokenCheck) VerifyToken(ctx context.Context, token string) (string, bool) {
	if token == "" || t.verifier == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	username, err := t.verifier.VerifyToken(ctx, token)
	if err != nil {
		t.log.Debug().Err(err).Msg("token rejected")
		return "", false
	}
	return username, true
}
