package ports

import (
	"context"

	"github.com/dmsforum/forum/internal/core/domain"
)

// BackendClient is the frontend's view of the backend REST API. Every call
// is made on behalf of the session token.
type BackendClient interface {
	ListDiscussions(ctx context.Context, token string) ([]domain.Discussion, error)
	GetDiscussion(ctx context.Context, token string, id int64) (*domain.Discussion, error)
	CreateDiscussion(ctx context.Context, token, title, content string) (*domain.Discussion, error)

	ListAnswers(ctx context.Context, token string, discussionID int64) ([]domain.Answer, error)
	CreateAnswer(ctx context.Context, token string, discussionID int64, content string) (*domain.Answer, error)

	ListComments(ctx context.Context, token string, discussionID int64) ([]domain.Comment, error)
	CreateComment(ctx context.Context, token string, discussionID, answerID int64, content string) (*domain.Comment, error)

	CreateReport(ctx context.Context, token string, kind domain.ReportKind, targetID int64, reason string) (*domain.Report, error)
	ListReports(ctx context.Context, token string, kind domain.ReportKind) ([]domain.Report, error)
	GetReport(ctx context.Context, token string, id int64) (*domain.Report, error)
	ResolveReport(ctx context.Context, token string, id int64, status domain.ReportStatus) (*domain.Report, error)
}
