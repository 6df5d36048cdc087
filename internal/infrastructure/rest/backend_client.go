package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
)

// BackendClient calls the backend REST API on behalf of a session token.
type BackendClient struct {
	c *client
}

func NewBackendClient(cfg Config, hc *http.Client, logger zerolog.Logger) *BackendClient {
	return &BackendClient{c: newClient("backend", cfg, hc, logger)}
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func (b *BackendClient) ListDiscussions(ctx context.Context, token string) ([]domain.Discussion, error) {
	var out []domain.Discussion
	err := b.c.getJSON(ctx, "/discussions", token, &out)
	return out, err
}

func (b *BackendClient) GetDiscussion(ctx context.Context, token string, discussionID int64) (*domain.Discussion, error) {
	var out domain.Discussion
	if err := b.c.getJSON(ctx, "/discussions/"+itoa(discussionID), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) CreateDiscussion(ctx context.Context, token, title, content string) (*domain.Discussion, error) {
	var out domain.Discussion
	err := b.c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/discussions",
		token:  token,
		body:   map[string]string{"title": title, "content": content},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) ListAnswers(ctx context.Context, token string, discussionID int64) ([]domain.Answer, error) {
	var out []domain.Answer
	err := b.c.getJSON(ctx, "/discussions/"+itoa(discussionID)+"/answers", token, &out)
	return out, err
}

func (b *BackendClient) CreateAnswer(ctx context.Context, token string, discussionID int64, content string) (*domain.Answer, error) {
	var out domain.Answer
	err := b.c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/discussions/" + itoa(discussionID) + "/answers",
		token:  token,
		body:   map[string]string{"content": content},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) ListComments(ctx context.Context, token string, discussionID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	err := b.c.getJSON(ctx, "/discussions/"+itoa(discussionID)+"/comments", token, &out)
	return out, err
}

func (b *BackendClient) CreateComment(ctx context.Context, token string, discussionID, answerID int64, content string) (*domain.Comment, error) {
	var out domain.Comment
	err := b.c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/answers/" + itoa(answerID) + "/comments",
		token:  token,
		body: struct {
			DiscussionID int64  `json:"discussionid"`
			Content      string `json:"content"`
		}{discussionID, content},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) CreateReport(ctx context.Context, token string, kind domain.ReportKind, targetID int64, reason string) (*domain.Report, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	var out domain.Report
	err := b.c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/" + string(kind) + "s/" + itoa(targetID) + "/reports",
		token:  token,
		body:   map[string]string{"reason": reason},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) ListReports(ctx context.Context, token string, kind domain.ReportKind) ([]domain.Report, error) {
	path := "/reports"
	if kind != "" {
		path += "?" + url.Values{"kind": {string(kind)}}.Encode()
	}
	var out []domain.Report
	err := b.c.getJSON(ctx, path, token, &out)
	return out, err
}

func (b *BackendClient) GetReport(ctx context.Context, token string, reportID int64) (*domain.Report, error) {
	var out domain.Report
	if err := b.c.getJSON(ctx, "/reports/"+itoa(reportID), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) ResolveReport(ctx context.Context, token string, reportID int64, status domain.ReportStatus) (*domain.Report, error) {
	var out domain.Report
	err := b.c.doJSON(ctx, request{
		method: http.MethodPut,
		path:   "/reports/" + itoa(reportID) + "/status",
		token:  token,
		body:   map[string]string{"status": string(status)},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

var _ ports.BackendClient = (*BackendClient)(nil)
