package web

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
	"github.com/dmsforum/forum/internal/infrastructure/rest"
)

type memorySessions struct {
	mu    sync.Mutex
	items map[string]domain.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{items: make(map[string]domain.Session)}
}

func (m *memorySessions) Create(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.items[s.ID] = *s
	return nil
}

func (m *memorySessions) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// fakeAuth accepts tokens of the form "token-<user>" for users in passwords.
type fakeAuth struct {
	passwords map[string]string
	roles     map[string][]string
	revoked   map[string]bool
	rolesErr  error
}

func (f *fakeAuth) VerifyToken(_ context.Context, token string) (string, error) {
	for user := range f.passwords {
		if token == "token-"+user && !f.revoked[token] {
			return user, nil
		}
	}
	return "", &rest.StatusError{StatusCode: 401, Body: "invalid token"}
}

func (f *fakeAuth) CheckRole(_ context.Context, _, username string, role domain.Role) ([]string, error) {
	for _, r := range f.roles[username] {
		if r == string(role) {
			return f.roles[username], nil
		}
	}
	return nil, &rest.StatusError{StatusCode: 404, Body: "role not granted"}
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (string, error) {
	if pw, ok := f.passwords[username]; !ok || pw != password {
		return "", &rest.StatusError{StatusCode: 401, Body: "invalid credentials"}
	}
	return "token-" + username, nil
}

func (f *fakeAuth) Roles(ctx context.Context, token, username string) ([]string, error) {
	if f.rolesErr != nil {
		return nil, f.rolesErr
	}
	var out []string
	for _, r := range domain.Roles {
		if _, err := f.CheckRole(ctx, token, username, r); err == nil {
			out = append(out, string(r))
		}
	}
	return out, nil
}

// fakeBackend serves a fixed forum. Calls it does not override panic
// through the nil embedded interface.
type fakeBackend struct {
	ports.BackendClient
	discussions []domain.Discussion
	answers     []domain.Answer
	comments    []domain.Comment
	reports     []domain.Report
	created     []domain.Comment
	err         error
}

func (b *fakeBackend) ListDiscussions(context.Context, string) ([]domain.Discussion, error) {
	return b.discussions, b.err
}

func (b *fakeBackend) GetDiscussion(_ context.Context, _ string, id int64) (*domain.Discussion, error) {
	if b.err != nil {
		return nil, b.err
	}
	for _, d := range b.discussions {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, &rest.StatusError{StatusCode: 404, Body: `{"error":"discussion not found"}`}
}

func (b *fakeBackend) ListAnswers(context.Context, string, int64) ([]domain.Answer, error) {
	return b.answers, b.err
}

func (b *fakeBackend) ListComments(context.Context, string, int64) ([]domain.Comment, error) {
	return b.comments, b.err
}

func (b *fakeBackend) CreateComment(_ context.Context, _ string, discussionID, answerID int64, content string) (*domain.Comment, error) {
	if b.err != nil {
		return nil, b.err
	}
	c := domain.Comment{ID: int64(len(b.created) + 1), DiscussionID: discussionID, AnswerID: answerID, Content: content}
	b.created = append(b.created, c)
	return &c, nil
}

func (b *fakeBackend) ListReports(_ context.Context, _ string, kind domain.ReportKind) ([]domain.Report, error) {
	if b.err != nil {
		return nil, b.err
	}
	var out []domain.Report
	for _, r := range b.reports {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out, nil
}

func (b *fakeBackend) GetReport(_ context.Context, _ string, id int64) (*domain.Report, error) {
	if b.err != nil {
		return nil, b.err
	}
	for _, r := range b.reports {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, &rest.StatusError{StatusCode: 404, Body: `{"error":"report not found"}`}
}

var errBackendDown = errors.New("dial tcp: connection refused")
