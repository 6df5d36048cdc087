package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
	"github.com/dmsforum/forum/internal/metrics"
)

// DiscussionService handles discussions and their answers.
type DiscussionService struct {
	discussions ports.DiscussionRepository
	answers     ports.AnswerRepository
	auth        authorizer
	logger      zerolog.Logger
}

func NewDiscussionService(discussions ports.DiscussionRepository, answers ports.AnswerRepository, roles ports.RoleChecker, logger zerolog.Logger) *DiscussionService {
	return &DiscussionService{
		discussions: discussions,
		answers:     answers,
		auth:        authorizer{roles: roles, log: logger},
		logger:      logger,
	}
}

func (s *DiscussionService) Create(ctx context.Context, in ports.CreateDiscussionInput) (*domain.Discussion, error) {
	if err := requireText("title", in.Title, domain.MaxTitleLength); err != nil {
		return nil, err
	}
	if err := requireText("content", in.Content, domain.MaxContentLength); err != nil {
		return nil, err
	}
	if err := s.auth.require(ctx, in.Caller, domain.RoleDiscussion); err != nil {
		return nil, err
	}

	d := &domain.Discussion{
		Title:     in.Title,
		Content:   in.Content,
		Owner:     in.Caller.Username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.discussions.Create(ctx, d); err != nil {
		s.logger.Error().Err(err).Msg("failed to create discussion")
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("discussion").Inc()
	s.logger.Info().Int64("discussion_id", d.ID).Str("user", d.Owner).Msg("discussion created")
	return d, nil
}

func (s *DiscussionService) Get(ctx context.Context, id int64) (*domain.Discussion, error) {
	if err := requireID("discussionid", id); err != nil {
		return nil, err
	}
	return s.discussions.FindByID(ctx, id)
}

func (s *DiscussionService) List(ctx context.Context) ([]*domain.Discussion, error) {
	return s.discussions.List(ctx)
}

// Answer adds an answer to an existing discussion.
func (s *DiscussionService) Answer(ctx context.Context, in ports.CreateAnswerInput) (*domain.Answer, error) {
	if err := requireID("discussionid", in.DiscussionID); err != nil {
		return nil, err
	}
	if err := requireText("content", in.Content, domain.MaxContentLength); err != nil {
		return nil, err
	}
	if err := s.auth.require(ctx, in.Caller, domain.RoleDiscussion); err != nil {
		return nil, err
	}

	if _, err := s.discussions.FindByID(ctx, in.DiscussionID); err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}

	a := &domain.Answer{
		DiscussionID: in.DiscussionID,
		Content:      in.Content,
		Owner:        in.Caller.Username,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.answers.Create(ctx, a); err != nil {
		s.logger.Error().Err(err).Int64("discussion_id", in.DiscussionID).Msg("failed to create answer")
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("answer").Inc()
	s.logger.Info().Int64("answer_id", a.ID).Int64("discussion_id", a.DiscussionID).Msg("answer created")
	return a, nil
}

func (s *DiscussionService) ListAnswers(ctx context.Context, discussionID int64) ([]*domain.Answer, error) {
	if err := requireID("discussionid", discussionID); err != nil {
		return nil, err
	}
	return s.answers.ListByDiscussion(ctx, discussionID)
}
