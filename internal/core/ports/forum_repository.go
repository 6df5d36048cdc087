package ports

import (
	"context"

	"github.com/dmsforum/forum/internal/core/domain"
)

// DiscussionRepository persists discussions. Create assigns the ID.
type DiscussionRepository interface {
	Create(ctx context.Context, d *domain.Discussion) error
	FindByID(ctx context.Context, id int64) (*domain.Discussion, error)
	List(ctx context.Context) ([]*domain.Discussion, error)
}

// AnswerRepository persists answers. Create assigns the ID.
type AnswerRepository interface {
	Create(ctx context.Context, a *domain.Answer) error
	FindByID(ctx context.Context, id int64) (*domain.Answer, error)
	ListByDiscussion(ctx context.Context, discussionID int64) ([]*domain.Answer, error)
}

// CommentRepository persists comments. Create assigns the ID.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	FindByID(ctx context.Context, id int64) (*domain.Comment, error)
	// FindByDiscussionAndAnswer returns the first comment posted on answerID
	// under discussionID.
	FindByDiscussionAndAnswer(ctx context.Context, discussionID, answerID int64) (*domain.Comment, error)
	ListByDiscussion(ctx context.Context, discussionID int64) ([]*domain.Comment, error)
	ListByAnswer(ctx context.Context, answerID int64) ([]*domain.Comment, error)
}

// ReportRepository persists moderation reports. Create assigns the ID.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	FindByID(ctx context.Context, id int64) (*domain.Report, error)
	// ListByKind returns every report; an empty kind matches all kinds.
	ListByKind(ctx context.Context, kind domain.ReportKind) ([]*domain.Report, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReportStatus) error
}
