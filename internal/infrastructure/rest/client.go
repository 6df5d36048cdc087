// Package rest holds the outbound HTTP clients the frontend and backend use
// to reach the authentication service and the backend API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/metrics"
)

const (
	defaultTimeout     = 60 * time.Second
	maxResponseBytes   = 1 << 20
	initialRetryPeriod = 100 * time.Millisecond
)

// Config describes one remote service.
type Config struct {
	BaseURL      string
	APIKeyHeader string
	APIKey       string
	// Timeout bounds a whole call, retries included.
	Timeout time.Duration
	// Retries is the number of extra attempts after a transport error or a
	// 5xx response. Only GET and HEAD requests are retried.
	Retries uint
}

// StatusError is returned for non-2xx responses. Its message is the raw
// response body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return http.StatusText(e.StatusCode)
	}
	return e.Body
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

type request struct {
	method string
	path   string
	token  string
	basic  *basicAuth
	body   any
}

type basicAuth struct {
	username string
	password string
}

type client struct {
	service string
	cfg     Config
	http    *http.Client
	logger  zerolog.Logger
}

func newClient(service string, cfg Config, hc *http.Client, logger zerolog.Logger) *client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if hc == nil {
		hc = &http.Client{}
	}
	return &client{service: service, cfg: cfg, http: hc, logger: logger}
}

// do sends req and returns the response body of a 2xx answer.
func (c *client) do(ctx context.Context, req request) ([]byte, error) {
	var payload []byte
	if req.body != nil {
		var err error
		if payload, err = json.Marshal(req.body); err != nil {
			return nil, fmt.Errorf("encode %s request: %w", c.service, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := time.Now()
	attempt := func() ([]byte, error) {
		body, err := c.send(ctx, req, payload)
		if err == nil {
			return body, nil
		}
		if code := StatusCode(err); code > 0 && code < http.StatusInternalServerError {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialRetryPeriod

	tries := c.cfg.Retries + 1
	if !idempotent(req.method) {
		tries = 1
	}

	body, err := backoff.Retry(ctx, attempt,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(tries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			metrics.OutboundRetriesTotal.WithLabelValues(c.service).Inc()
			c.logger.Debug().Err(err).Str("service", c.service).Str("path", req.path).Dur("wait", wait).Msg("retrying request")
		}),
	)
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Err
	}

	outcome := "ok"
	switch {
	case err == nil:
	case StatusCode(err) > 0:
		outcome = "status_error"
	default:
		outcome = "transport_error"
	}
	metrics.OutboundRequestDuration.WithLabelValues(c.service, outcome).Observe(time.Since(start).Seconds())

	return body, err
}

// idempotent reports whether a request may be sent again after a lost
// response without creating a second record.
func idempotent(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func (c *client) send(ctx context.Context, req request, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.cfg.BaseURL+req.path, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.cfg.APIKeyHeader != "" && c.cfg.APIKey != "" {
		httpReq.Header.Set(c.cfg.APIKeyHeader, c.cfg.APIKey)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	if req.basic != nil {
		httpReq.SetBasicAuth(req.basic.username, req.basic.password)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", c.service, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *client) getJSON(ctx context.Context, path, token string, out any) error {
	return c.doJSON(ctx, request{method: http.MethodGet, path: path, token: token}, out)
}

func (c *client) doJSON(ctx context.Context, req request, out any) error {
	body, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", c.service, err)
	}
	return nil
}
