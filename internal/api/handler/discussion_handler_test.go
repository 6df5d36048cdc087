package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
)

type stubDiscussionService struct {
	created  []ports.CreateDiscussionInput
	answered []ports.CreateAnswerInput
	getErr   error
}

func (s *stubDiscussionService) Create(_ context.Context, in ports.CreateDiscussionInput) (*domain.Discussion, error) {
	s.created = append(s.created, in)
	return &domain.Discussion{ID: int64(len(s.created)), Title: in.Title, Content: in.Content, Owner: in.Caller.Username}, nil
}

func (s *stubDiscussionService) Get(_ context.Context, id int64) (*domain.Discussion, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &domain.Discussion{ID: id, Title: "t"}, nil
}

func (s *stubDiscussionService) List(context.Context) ([]*domain.Discussion, error) {
	return []*domain.Discussion{{ID: 1, Title: "t"}}, nil
}

func (s *stubDiscussionService) Answer(_ context.Context, in ports.CreateAnswerInput) (*domain.Answer, error) {
	s.answered = append(s.answered, in)
	return &domain.Answer{ID: 1, DiscussionID: in.DiscussionID, Content: in.Content}, nil
}

func (s *stubDiscussionService) ListAnswers(context.Context, int64) ([]*domain.Answer, error) {
	return nil, nil
}

func TestDiscussionHandler_Create(t *testing.T) {
	stub := &stubDiscussionService{}
	h := NewDiscussionHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/v1/discussions", `{"title":"Go","content":"generics?"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(stub.created) != 1 || stub.created[0].Caller.Username != "alice" {
		t.Fatalf("unexpected service input: %+v", stub.created)
	}
}

func TestDiscussionHandler_Create_MissingTitle(t *testing.T) {
	stub := &stubDiscussionService{}
	h := NewDiscussionHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/api/v1/discussions", `{"content":"generics?"}`)
	if code := httpCode(t, h.Create(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if len(stub.created) != 0 {
		t.Fatalf("invalid request must not reach the service")
	}
}

func TestDiscussionHandler_Answer(t *testing.T) {
	stub := &stubDiscussionService{}
	h := NewDiscussionHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/", `{"content":"sparingly"}`)
	c.SetParamNames("discussionid")
	c.SetParamValues("7")
	if err := h.Answer(c); err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}
	if rec.Code != http.StatusCreated || stub.answered[0].DiscussionID != 7 {
		t.Fatalf("unexpected result %d %+v", rec.Code, stub.answered)
	}

	c, _ = newTestContext(http.MethodPost, "/", `{"content":"sparingly"}`)
	c.SetParamNames("discussionid")
	c.SetParamValues("seven")
	if code := httpCode(t, h.Answer(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", code)
	}
}

func TestDiscussionHandler_Get_PropagatesNotFound(t *testing.T) {
	h := NewDiscussionHandler(&stubDiscussionService{getErr: domain.ErrDiscussionNotFound})

	c, _ := newTestContext(http.MethodGet, "/", "")
	c.SetParamNames("discussionid")
	c.SetParamValues("3")
	if err := h.Get(c); !errors.Is(err, domain.ErrDiscussionNotFound) {
		t.Fatalf("expected ErrDiscussionNotFound, got %v", err)
	}
}
