package service

import (
	"context"
	"errors"
	"sort"

	"github.com/dmsforum/forum/internal/core/domain"
)

// ── In-memory repositories ────────────────────────────────────────────────────

type stubDiscussionRepo struct {
	items     map[int64]*domain.Discussion
	createErr error
	calls     int
}

func newStubDiscussionRepo() *stubDiscussionRepo {
	return &stubDiscussionRepo{items: make(map[int64]*domain.Discussion)}
}

func (r *stubDiscussionRepo) Create(_ context.Context, d *domain.Discussion) error {
	r.calls++
	if r.createErr != nil {
		return r.createErr
	}
	d.ID = int64(len(r.items) + 1)
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *stubDiscussionRepo) FindByID(_ context.Context, id int64) (*domain.Discussion, error) {
	d, ok := r.items[id]
	if !ok {
		return nil, domain.ErrDiscussionNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *stubDiscussionRepo) List(_ context.Context) ([]*domain.Discussion, error) {
	out := make([]*domain.Discussion, 0, len(r.items))
	for _, d := range r.items {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubAnswerRepo struct {
	items map[int64]*domain.Answer
	calls int
}

func newStubAnswerRepo() *stubAnswerRepo {
	return &stubAnswerRepo{items: make(map[int64]*domain.Answer)}
}

func (r *stubAnswerRepo) Create(_ context.Context, a *domain.Answer) error {
	r.calls++
	if a.ID == 0 {
		a.ID = int64(len(r.items) + 1)
	}
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *stubAnswerRepo) FindByID(_ context.Context, id int64) (*domain.Answer, error) {
	r.calls++
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAnswerNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *stubAnswerRepo) ListByDiscussion(_ context.Context, discussionID int64) ([]*domain.Answer, error) {
	var out []*domain.Answer
	for _, a := range r.items {
		if a.DiscussionID == discussionID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

type stubCommentRepo struct {
	items  map[int64]*domain.Comment
	nextID int64
	calls  int
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{items: make(map[int64]*domain.Comment), nextID: 1}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) error {
	r.calls++
	c.ID = r.nextID
	r.nextID++
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id int64) (*domain.Comment, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCommentRepo) FindByDiscussionAndAnswer(_ context.Context, discussionID, answerID int64) (*domain.Comment, error) {
	var found *domain.Comment
	for _, c := range r.items {
		if c.DiscussionID == discussionID && c.AnswerID == answerID && (found == nil || c.ID < found.ID) {
			found = c
		}
	}
	if found == nil {
		return nil, domain.ErrCommentNotFound
	}
	cp := *found
	return &cp, nil
}

func (r *stubCommentRepo) ListByDiscussion(_ context.Context, discussionID int64) ([]*domain.Comment, error) {
	return r.filter(func(c *domain.Comment) bool { return c.DiscussionID == discussionID }), nil
}

func (r *stubCommentRepo) ListByAnswer(_ context.Context, answerID int64) ([]*domain.Comment, error) {
	return r.filter(func(c *domain.Comment) bool { return c.AnswerID == answerID }), nil
}

func (r *stubCommentRepo) filter(keep func(*domain.Comment) bool) []*domain.Comment {
	var out []*domain.Comment
	for _, c := range r.items {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type stubReportRepo struct {
	items map[int64]*domain.Report
	calls int
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{items: make(map[int64]*domain.Report)}
}

func (r *stubReportRepo) Create(_ context.Context, rep *domain.Report) error {
	r.calls++
	rep.ID = int64(len(r.items) + 1)
	cp := *rep
	r.items[rep.ID] = &cp
	return nil
}

func (r *stubReportRepo) FindByID(_ context.Context, id int64) (*domain.Report, error) {
	rep, ok := r.items[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	cp := *rep
	return &cp, nil
}

func (r *stubReportRepo) ListByKind(_ context.Context, kind domain.ReportKind) ([]*domain.Report, error) {
	var out []*domain.Report
	for _, rep := range r.items {
		if kind == "" || rep.Kind == kind {
			cp := *rep
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubReportRepo) UpdateStatus(_ context.Context, id int64, status domain.ReportStatus) error {
	rep, ok := r.items[id]
	if !ok {
		return domain.ErrReportNotFound
	}
	rep.Status = status
	return nil
}

// ── Role checker ──────────────────────────────────────────────────────────────

// stubRoles grants roles from a static per-user table.
type stubRoles struct {
	grants map[string][]domain.Role
	err    error
	calls  int
}

func (s *stubRoles) CheckRole(_ context.Context, _ string, username string, role domain.Role) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	for _, r := range s.grants[username] {
		if r == role {
			out := make([]string, 0, len(s.grants[username]))
			for _, g := range s.grants[username] {
				out = append(out, string(g))
			}
			return out, nil
		}
	}
	return nil, errors.New("status 404")
}

var (
	discussionUser = domain.Caller{Username: "alice", Token: "tok-alice"}
	moderatorUser  = domain.Caller{Username: "mod", Token: "tok-mod"}
	serviceCaller  = domain.Caller{}
)

func defaultRoles() *stubRoles {
	return &stubRoles{grants: map[string][]domain.Role{
		"alice": {domain.RoleDiscussion},
		"mod":   {domain.RoleDiscussion, domain.RoleModeration},
	}}
}
