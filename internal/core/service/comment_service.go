package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
	"github.com/dmsforum/forum/internal/metrics"
)

type CommentService struct {
	comments ports.CommentRepository
	answers  ports.AnswerRepository
	auth     authorizer
	logger   zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, answers ports.AnswerRepository, roles ports.RoleChecker, logger zerolog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		answers:  answers,
		auth:     authorizer{roles: roles, log: logger},
		logger:   logger,
	}
}

// Create comments an answer. Arguments are checked before anything else so
// an incomplete request never reaches persistence.
func (s *CommentService) Create(ctx context.Context, in ports.CreateCommentInput) (*domain.Comment, error) {
	if err := requireID("discussionid", in.DiscussionID); err != nil {
		return nil, err
	}
	if err := requireID("answerid", in.AnswerID); err != nil {
		return nil, err
	}
	if err := requireText("content", in.Content, domain.MaxCommentLength); err != nil {
		return nil, err
	}
	if err := s.auth.require(ctx, in.Caller, domain.RoleDiscussion); err != nil {
		return nil, err
	}

	answer, err := s.answers.FindByID(ctx, in.AnswerID)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if answer.DiscussionID != in.DiscussionID {
		return nil, fmt.Errorf("create comment: %w (answer %d is not in discussion %d)",
			domain.ErrAnswerNotFound, in.AnswerID, in.DiscussionID)
	}

	comment := &domain.Comment{
		DiscussionID: in.DiscussionID,
		AnswerID:     in.AnswerID,
		Content:      in.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		s.logger.Error().Err(err).Int64("answer_id", in.AnswerID).Msg("failed to create comment")
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("comment").Inc()
	s.logger.Info().Int64("comment_id", comment.ID).Int64("answer_id", in.AnswerID).Str("user", in.Caller.Username).Msg("comment created")
	return comment, nil
}

func (s *CommentService) ListForDiscussion(ctx context.Context, discussionID int64) ([]*domain.Comment, error) {
	if err := requireID("discussionid", discussionID); err != nil {
		return nil, err
	}
	return s.comments.ListByDiscussion(ctx, discussionID)
}

func (s *CommentService) ListForAnswer(ctx context.Context, answerID int64) ([]*domain.Comment, error) {
	if err := requireID("answerid", answerID); err != nil {
		return nil, err
	}
	return s.comments.ListByAnswer(ctx, answerID)
}

func (s *CommentService) Get(ctx context.Context, discussionID, answerID int64) (*domain.Comment, error) {
	if err := requireID("discussionid", discussionID); err != nil {
		return nil, err
	}
	if err := requireID("answerid", answerID); err != nil {
		return nil, err
	}
	return s.comments.FindByDiscussionAndAnswer(ctx, discussionID, answerID)
}
