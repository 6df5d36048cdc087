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

// ReportService handles moderation reports. Filing a report needs the
// discussion role; reading and resolving reports needs the moderation role.
type ReportService struct {
	reports     ports.ReportRepository
	discussions ports.DiscussionRepository
	answers     ports.AnswerRepository
	comments    ports.CommentRepository
	auth        authorizer
	logger      zerolog.Logger
}

func NewReportService(
	reports ports.ReportRepository,
	discussions ports.DiscussionRepository,
	answers ports.AnswerRepository,
	comments ports.CommentRepository,
	roles ports.RoleChecker,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		reports:     reports,
		discussions: discussions,
		answers:     answers,
		comments:    comments,
		auth:        authorizer{roles: roles, log: logger},
		logger:      logger,
	}
}

func (s *ReportService) Create(ctx context.Context, in ports.CreateReportInput) (*domain.Report, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown report kind %q", domain.ErrInvalidArgument, in.Kind)
	}
	if err := requireID("id", in.TargetID); err != nil {
		return nil, err
	}
	if err := requireText("reason", in.Reason, domain.MaxReasonLength); err != nil {
		return nil, err
	}
	if err := s.auth.require(ctx, in.Caller, domain.RoleDiscussion); err != nil {
		return nil, err
	}
	if err := s.targetExists(ctx, in.Kind, in.TargetID); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	r := &domain.Report{
		Kind:      in.Kind,
		TargetID:  in.TargetID,
		Reason:    in.Reason,
		Owner:     in.Caller.Username,
		Status:    domain.ReportPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reports.Create(ctx, r); err != nil {
		s.logger.Error().Err(err).Str("kind", string(in.Kind)).Msg("failed to create report")
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("report").Inc()
	s.logger.Info().Int64("report_id", r.ID).Str("kind", string(r.Kind)).Int64("target_id", r.TargetID).Msg("report filed")
	return r, nil
}

func (s *ReportService) targetExists(ctx context.Context, kind domain.ReportKind, id int64) error {
	var err error
	switch kind {
	case domain.ReportDiscussion:
		_, err = s.discussions.FindByID(ctx, id)
	case domain.ReportAnswer:
		_, err = s.answers.FindByID(ctx, id)
	case domain.ReportComment:
		_, err = s.comments.FindByID(ctx, id)
	}
	return err
}

func (s *ReportService) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Report, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if err := s.auth.require(ctx, caller, domain.RoleModeration); err != nil {
		return nil, err
	}
	return s.reports.FindByID(ctx, id)
}

// List returns reports of kind, or of every kind when kind is empty.
func (s *ReportService) List(ctx context.Context, caller domain.Caller, kind domain.ReportKind) ([]*domain.Report, error) {
	if kind != "" && !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown report kind %q", domain.ErrInvalidArgument, kind)
	}
	if err := s.auth.require(ctx, caller, domain.RoleModeration); err != nil {
		return nil, err
	}
	return s.reports.ListByKind(ctx, kind)
}

func (s *ReportService) Resolve(ctx context.Context, caller domain.Caller, id int64, status domain.ReportStatus) (*domain.Report, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown report status %q", domain.ErrInvalidArgument, status)
	}
	if err := s.auth.require(ctx, caller, domain.RoleModeration); err != nil {
		return nil, err
	}
	if err := s.reports.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("resolve report: %w", err)
	}

	s.logger.Info().Int64("report_id", id).Str("status", string(status)).Str("user", caller.Username).Msg("report resolved")
	return s.reports.FindByID(ctx, id)
}
