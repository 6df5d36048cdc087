package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/api/middleware"
	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
)

type stubComments struct {
	ports.CommentService
	created []ports.CreateCommentInput
}

func (s *stubComments) Create(_ context.Context, in ports.CreateCommentInput) (*domain.Comment, error) {
	s.created = append(s.created, in)
	if in.AnswerID != 42 {
		return nil, domain.ErrAnswerNotFound
	}
	return &domain.Comment{ID: 77, DiscussionID: in.DiscussionID, AnswerID: in.AnswerID, Content: in.Content}, nil
}

type stubVerifier struct{}

func (stubVerifier) VerifyToken(_ context.Context, token string) (string, error) {
	if token == "good" {
		return "alice", nil
	}
	return "", domain.ErrUnauthorized
}

func newTestRouter(comments *stubComments) http.Handler {
	return NewRouter(Dependencies{
		Comments: comments,
		Security: middleware.SecurityConfig{
			Keys:   middleware.NewAPIKeys("backend-key"),
			Tokens: middleware.NewTokenCheck(stubVerifier{}, time.Second, zerolog.Nop()),
		},
		Logger: zerolog.Nop(),
	})
}

func serve(h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_CreateComment(t *testing.T) {
	comments := &stubComments{}
	r := newTestRouter(comments)

	rec := serve(r, http.MethodPost, "/api/v1/answers/42/comments", `{"discussionid":5,"content":"nice"}`,
		map[string]string{"X-ApiKey-Backend": "backend-key"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got domain.Comment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.ID != 77 {
		t.Fatalf("expected new id 77, got %d", got.ID)
	}

	rec = serve(r, http.MethodPost, "/api/v1/answers/41/comments", `{"discussionid":5,"content":"nice"}`,
		map[string]string{"Authorization": "Bearer good"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if last := comments.created[len(comments.created)-1]; last.Caller.Username != "alice" {
		t.Fatalf("token caller not forwarded: %+v", last.Caller)
	}
}

func TestRouter_RejectsBeforeHandler(t *testing.T) {
	comments := &stubComments{}
	r := newTestRouter(comments)

	for name, headers := range map[string]map[string]string{
		"none":      nil,
		"bad key":   {"X-ApiKey-Backend": "nope"},
		"bad token": {"Authorization": "Bearer bad"},
	} {
		rec := serve(r, http.MethodPost, "/api/v1/answers/42/comments", `{"discussionid":5,"content":"nice"}`, headers)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
	if len(comments.created) != 0 {
		t.Fatalf("rejected requests must not reach the service")
	}
}

func TestRouter_PublicEndpoints(t *testing.T) {
	r := newTestRouter(&stubComments{})

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		rec := serve(r, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
