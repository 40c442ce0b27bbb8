package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
	"github.com/quizrank/scoring-service/internal/validator"
)

type violationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	notifier  Notifier
	validator *validator.Validator
}

func NewViolationService(repo repositories.Repository, logger *slog.Logger, notifier Notifier, validator *validator.Validator) ViolationService {
	return &violationService{
		repo:      repo,
		logger:    logger,
		notifier:  notifier,
		validator: validator,
	}
}

// Record appends one violation to the record's log. The type's cost is
// informational metadata: recording never touches scores. The audit
// notification is best-effort and never rolls back the append.
func (s *violationService) Record(ctx context.Context, req *RecordViolationRequest) (*models.Violation, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	record, err := s.repo.Record().GetByID(ctx, req.RecordID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	violationType, err := s.repo.Violation().GetTypeByTag(ctx, req.TypeTag)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrViolationTypeNotFound
		}
		return nil, fmt.Errorf("failed to get violation type: %w", err)
	}

	when := time.Now()
	if req.When != nil {
		when = *req.When
	}

	violation := &models.Violation{
		RecordID:   record.ID,
		TypeID:     violationType.ID,
		OccurredAt: when,
	}
	if err := s.repo.Violation().Create(ctx, violation); err != nil {
		return nil, fmt.Errorf("failed to record violation: %w", err)
	}
	violation.Type = *violationType

	group, err := s.repo.Group().GetByID(ctx, record.GroupID)
	if err != nil {
		s.logger.Warn("Violation recorded but audit group lookup failed",
			"record_id", record.ID,
			"error", err)
		return violation, nil
	}

	// The audit line goes to the group's admin page when one moderates it;
	// groups without an admin page hear about violations directly.
	target := group.ChatID
	if page, err := s.repo.Group().GetAdminPage(ctx, group.ID); err == nil {
		target = page.ChatID
	} else if !repositories.IsNotFoundError(err) {
		s.logger.Warn("Admin page lookup failed, notifying group chat",
			"group_id", group.ID,
			"error", err)
	}

	text := fmt.Sprintf("Found violation %q from %s.", violationType.Name, record.Participant.DisplayName())
	if err := s.notifier.Notify(ctx, target, text); err != nil {
		s.logger.Warn("Failed to deliver violation notification",
			"record_id", record.ID,
			"violation_type", violationType.Tag,
			"error", err)
	}

	s.logger.Info("Violation recorded",
		"record_id", record.ID,
		"violation_type", violationType.Tag,
		"occurred_at", when)

	return violation, nil
}

func (s *violationService) List(ctx context.Context, recordID uint, filters repositories.ViolationFilters) ([]*models.Violation, int64, error) {
	return s.repo.Violation().ListByRecord(ctx, recordID, filters)
}
