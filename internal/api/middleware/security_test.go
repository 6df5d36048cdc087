package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/core/domain"
)

type stubVerifier struct {
	verifyFn func(ctx context.Context, token string) (string, error)
	calls    int
}

func (s *stubVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	s.calls++
	return s.verifyFn(ctx, token)
}

func acceptToken(username string) *stubVerifier {
	return &stubVerifier{verifyFn: func(ctx context.Context, token string) (string, error) {
		if token != "good" {
			return "", errors.New("401")
		}
		return username, nil
	}}
}

func securityFor(v *stubVerifier) echo.MiddlewareFunc {
	return Security(SecurityConfig{
		Keys:   NewAPIKeys("backend-key"),
		Tokens: NewTokenCheck(v, time.Second, zerolog.Nop()),
	})
}

// run executes the middleware and reports the response code and the caller
// seen by the next handler, if it ran.
func run(t *testing.T, mw echo.MiddlewareFunc, headers map[string]string) (int, *domain.Caller) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.Caller
	handler := mw(func(c echo.Context) error {
		caller, ok := CallerFrom(c)
		if !ok {
			t.Fatalf("caller not set")
		}
		seen = &caller
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code, seen
}

func TestSecurity_NoCredentials(t *testing.T) {
	code, caller := run(t, securityFor(acceptToken("alice")), nil)
	if code != http.StatusUnauthorized || caller != nil {
		t.Fatalf("expected 401 before handler, got %d", code)
	}
}

func TestSecurity_APIKeyOnlyIsService(t *testing.T) {
	code, caller := run(t, securityFor(acceptToken("alice")), map[string]string{"X-ApiKey-Backend": "backend-key"})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !caller.IsService() {
		t.Fatalf("api key caller should be a service, got %+v", caller)
	}
}

func TestSecurity_UnknownAPIKey(t *testing.T) {
	code, _ := run(t, securityFor(acceptToken("alice")), map[string]string{"X-ApiKey-Backend": "nope"})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestSecurity_ValidToken(t *testing.T) {
	code, caller := run(t, securityFor(acceptToken("alice")), map[string]string{"Authorization": "Bearer good"})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if caller.Username != "alice" || caller.Token != "good" {
		t.Fatalf("unexpected caller: %+v", caller)
	}
}

func TestSecurity_EveryPresentedCredentialMustPass(t *testing.T) {
	v := acceptToken("alice")
	code, _ := run(t, securityFor(v), map[string]string{
		"X-ApiKey-Backend": "backend-key",
		"Authorization":    "Bearer bad",
	})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when token fails, got %d", code)
	}
	if v.calls != 1 {
		t.Fatalf("expected token to be verified once, got %d", v.calls)
	}

	code, _ = run(t, securityFor(v), map[string]string{
		"X-ApiKey-Backend": "wrong",
		"Authorization":    "Bearer good",
	})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when api key fails, got %d", code)
	}
}

func TestSecurity_InvalidHeaderFormat(t *testing.T) {
	v := acceptToken("alice")
	code, _ := run(t, securityFor(v), map[string]string{"Authorization": "Token abc"})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if v.calls != 0 {
		t.Fatalf("malformed header must not reach the auth service")
	}
}

func TestTokenCheck_AppliesTimeout(t *testing.T) {
	v := &stubVerifier{verifyFn: func(ctx context.Context, token string) (string, error) {
		deadline, ok := ctx.Deadline()
		if !ok || time.Until(deadline) > 61*time.Second {
			t.Fatalf("expected a deadline of at most 60s")
		}
		<-ctx.Done()
		return "", ctx.Err()
	}}
	check := NewTokenCheck(v, 10*time.Millisecond, zerolog.Nop())
	if _, ok := check.VerifyToken(context.Background(), "slow"); ok {
		t.Fatalf("timed out verification must reject")
	}

	if NewTokenCheck(v, 0, zerolog.Nop()).timeout != defaultTokenTimeout {
		t.Fatalf("expected default 60s timeout")
	}
}

func TestVerifyAPIKey(t *testing.T) {
	keys := NewAPIKeys("a", "", "b")
	if _, err := keys.VerifyAPIKey("b"); err != nil {
		t.Fatalf("expected b to be accepted: %v", err)
	}
	for _, k := range []string{"", "c"} {
		if _, err := keys.VerifyAPIKey(k); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("key %q: expected ErrUnauthorized, got %v", k, err)
		}
	}
}
