package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
)

type stubReportService struct {
	createFn  func(ctx context.Context, in ports.CreateReportInput) (*domain.Report, error)
	listFn    func(ctx context.Context, caller domain.Caller, kind domain.ReportKind) ([]*domain.Report, error)
	resolveFn func(ctx context.Context, caller domain.Caller, id int64, status domain.ReportStatus) (*domain.Report, error)
}

func (s *stubReportService) Create(ctx context.Context, in ports.CreateReportInput) (*domain.Report, error) {
	return s.createFn(ctx, in)
}

func (s *stubReportService) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Report, error) {
	return &domain.Report{ID: id}, nil
}

func (s *stubReportService) List(ctx context.Context, caller domain.Caller, kind domain.ReportKind) ([]*domain.Report, error) {
	return s.listFn(ctx, caller, kind)
}

func (s *stubReportService) Resolve(ctx context.Context, caller domain.Caller, id int64, status domain.ReportStatus) (*domain.Report, error) {
	return s.resolveFn(ctx, caller, id, status)
}

func TestReportHandler_CreateUsesRouteKind(t *testing.T) {
	stub := &stubReportService{createFn: func(ctx context.Context, in ports.CreateReportInput) (*domain.Report, error) {
		if in.Kind != domain.ReportAnswer || in.TargetID != 7 || in.Reason != "spam" {
			t.Fatalf("unexpected input: %+v", in)
		}
		return &domain.Report{ID: 1, Kind: in.Kind, TargetID: in.TargetID, Status: domain.ReportPending}, nil
	}}
	h := NewReportHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/v1/answers/7/reports", `{"reason":"spam"}`)
	c.SetParamNames("answerid")
	c.SetParamValues("7")

	if err := h.Create(domain.ReportAnswer)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestReportHandler_ListKindFilter(t *testing.T) {
	var got domain.ReportKind
	stub := &stubReportService{listFn: func(ctx context.Context, caller domain.Caller, kind domain.ReportKind) ([]*domain.Report, error) {
		got = kind
		return nil, nil
	}}
	h := NewReportHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/v1/reports?kind=comment", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || got != domain.ReportComment {
		t.Fatalf("expected 200 with comment filter, got %d %q", rec.Code, got)
	}

	c, _ = newTestContext(http.MethodGet, "/api/v1/reports?kind=user", "")
	if code := httpCode(t, h.List(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown kind, got %d", code)
	}
}

func TestReportHandler_ResolveValidatesStatus(t *testing.T) {
	stub := &stubReportService{resolveFn: func(ctx context.Context, caller domain.Caller, id int64, status domain.ReportStatus) (*domain.Report, error) {
		return &domain.Report{ID: id, Status: status}, nil
	}}
	h := NewReportHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/api/v1/reports/3/status", `{"status":"accepted"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Resolve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newTestContext(http.MethodPut, "/api/v1/reports/3/status", `{"status":"closed"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if code := httpCode(t, h.Resolve(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
