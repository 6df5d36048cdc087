package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/core/domain"
)

func newTestBackendClient(t *testing.T, h http.HandlerFunc, retries uint) *BackendClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewBackendClient(Config{
		BaseURL:      srv.URL + "/api/v1/",
		APIKeyHeader: "X-ApiKey-Backend",
		APIKey:       "backend-key",
		Timeout:      2 * time.Second,
		Retries:      retries,
	}, srv.Client(), zerolog.Nop())
}

// dropConnection closes the connection without writing a response, as a
// backend that crashed after committing would.
func dropConnection(t *testing.T, w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		t.Errorf("response writer cannot be hijacked")
		return
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		t.Errorf("hijack: %v", err)
		return
	}
	_ = conn.Close()
}

func TestBackendClient_CreateComment(t *testing.T) {
	client := newTestBackendClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/answers/42/comments" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" || r.Header.Get("X-ApiKey-Backend") != "backend-key" {
			t.Errorf("credentials not forwarded: %v", r.Header)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("invalid body: %v", err)
		}
		if body["discussionid"] != float64(5) || body["content"] != "nice" {
			t.Errorf("unexpected body %v", body)
		}

		_ = json.NewEncoder(w).Encode(domain.Comment{ID: 9, DiscussionID: 5, AnswerID: 42, Content: "nice"})
	}, 0)

	c, err := client.CreateComment(t.Context(), "tok", 5, 42, "nice")
	if err != nil {
		t.Fatalf("CreateComment returned error: %v", err)
	}
	if c.ID != 9 {
		t.Fatalf("unexpected comment %+v", c)
	}
}

func TestBackendClient_CreateIsSentOnce(t *testing.T) {
	var calls atomic.Int32
	client := newTestBackendClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			dropConnection(t, w)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.Comment{ID: 2, DiscussionID: 5, AnswerID: 42, Content: "nice"})
	}, 1)

	if _, err := client.CreateComment(t.Context(), "tok", 5, 42, "nice"); err == nil {
		t.Fatalf("expected the lost response to surface as an error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single POST, got %d", calls.Load())
	}
}

func TestBackendClient_ResolveIsSentOnce(t *testing.T) {
	var calls atomic.Int32
	client := newTestBackendClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, 3)

	if _, err := client.ResolveReport(t.Context(), "tok", 8, domain.ReportAccepted); StatusCode(err) != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single PUT, got %d", calls.Load())
	}
}

func TestBackendClient_ReadsAreRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestBackendClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			dropConnection(t, w)
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"title":"t"}]`))
	}, 1)

	list, err := client.ListDiscussions(t.Context(), "tok")
	if err != nil {
		t.Fatalf("ListDiscussions returned error: %v", err)
	}
	if len(list) != 1 || calls.Load() != 2 {
		t.Fatalf("expected 1 discussion after 2 attempts, got %d after %d", len(list), calls.Load())
	}
}

func TestBackendClient_CreateReportPath(t *testing.T) {
	client := newTestBackendClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/answers/3/reports" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(domain.Report{ID: 1, Kind: domain.ReportAnswer, TargetID: 3, Status: domain.ReportPending})
	}, 0)

	rep, err := client.CreateReport(t.Context(), "tok", domain.ReportAnswer, 3, "spam")
	if err != nil {
		t.Fatalf("CreateReport returned error: %v", err)
	}
	if rep.Status != domain.ReportPending {
		t.Fatalf("unexpected status %s", rep.Status)
	}

	if _, err := client.CreateReport(t.Context(), "tok", "user", 3, "spam"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestBackendClient_ListReportsByKind(t *testing.T) {
	client := newTestBackendClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/reports" || r.URL.Query().Get("kind") != "comment" {
			t.Errorf("unexpected request %s", r.URL)
		}
		_, _ = w.Write([]byte(`[{"id":1,"kind":"comment","targetid":4,"status":"pending"}]`))
	}, 0)

	reports, err := client.ListReports(t.Context(), "tok", domain.ReportComment)
	if err != nil {
		t.Fatalf("ListReports returned error: %v", err)
	}
	if len(reports) != 1 || reports[0].TargetID != 4 {
		t.Fatalf("unexpected reports %+v", reports)
	}
}

func TestBackendClient_NotFoundSurfacesStatus(t *testing.T) {
	client := newTestBackendClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"discussion not found"}`))
	}, 0)

	_, err := client.GetDiscussion(t.Context(), "tok", 77)
	if StatusCode(err) != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if !strings.Contains(err.Error(), "discussion not found") {
		t.Fatalf("expected raw body in error, got %q", err.Error())
	}
}

func TestBackendClient_ResolveReport(t *testing.T) {
	client := newTestBackendClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/reports/8/status" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("invalid body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(domain.Report{ID: 8, Status: domain.ReportStatus(body["status"])})
	}, 0)

	rep, err := client.ResolveReport(t.Context(), "tok", 8, domain.ReportAccepted)
	if err != nil {
		t.Fatalf("ResolveReport returned error: %v", err)
	}
	if rep.Status != domain.ReportAccepted {
		t.Fatalf("unexpected status %s", rep.Status)
	}
}
