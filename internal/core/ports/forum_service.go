package ports

import (
	"context"

	"github.com/dmsforum/forum/internal/core/domain"
)

// CreateCommentInput carries the data needed to comment an answer.
type CreateCommentInput struct {
	DiscussionID int64
	AnswerID     int64
	Content      string
	Caller       domain.Caller
}

// CommentService defines use-case operations for comments.
type CommentService interface {
	Create(ctx context.Context, input CreateCommentInput) (*domain.Comment, error)
	ListForDiscussion(ctx context.Context, discussionID int64) ([]*domain.Comment, error)
	ListForAnswer(ctx context.Context, answerID int64) ([]*domain.Comment, error)
	Get(ctx context.Context, discussionID, answerID int64) (*domain.Comment, error)
}

// CreateDiscussionInput carries the data needed to open a discussion.
type CreateDiscussionInput struct {
	Title   string
	Content string
	Caller  domain.Caller
}

// CreateAnswerInput carries the data needed to answer a discussion.
type CreateAnswerInput struct {
	DiscussionID int64
	Content      string
	Caller       domain.Caller
}

// DiscussionService defines use-case operations for discussions and answers.
type DiscussionService interface {
	Create(ctx context.Context, input CreateDiscussionInput) (*domain.Discussion, error)
	Get(ctx context.Context, id int64) (*domain.Discussion, error)
	List(ctx context.Context) ([]*domain.Discussion, error)
	Answer(ctx context.Context, input CreateAnswerInput) (*domain.Answer, error)
	ListAnswers(ctx context.Context, discussionID int64) ([]*domain.Answer, error)
}

// CreateReportInput carries the data needed to report an entity.
type CreateReportInput struct {
	Kind     domain.ReportKind
	TargetID int64
	Reason   string
	Caller   domain.Caller
}

// ReportService defines use-case operations for moderation reports.
type ReportService interface {
	Create(ctx context.Context, input CreateReportInput) (*domain.Report, error)
	Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Report, error)
	List(ctx context.Context, caller domain.Caller, kind domain.ReportKind) ([]*domain.Report, error)
	Resolve(ctx context.Context, caller domain.Caller, id int64, status domain.ReportStatus) (*domain.Report, error)
}
