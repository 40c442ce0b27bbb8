package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
	"github.com/quizrank/scoring-service/internal/validator"
)

type answerService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAnswerService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AnswerService {
	return &answerService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Submit stores a new unprocessed answer. The participant and its group
// record are created on first contact; correctness is derived here by
// comparing the option against the problem's correct tag, never later.
func (s *answerService) Submit(ctx context.Context, req *SubmitAnswerRequest) (*models.Answer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	group, err := resolveGroup(ctx, s.repo, req.Group)
	if err != nil {
		return nil, err
	}

	problem, err := s.repo.Problem().GetByID(ctx, req.ProblemID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProblemNotFound
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}

	option := strings.ToLower(req.Option)
	if !problem.HasOption(option) {
		return nil, ErrUnknownOption
	}

	var answer *models.Answer
	err = s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		record, err := s.ensureRecord(ctx, r, req, group.ID)
		if err != nil {
			return err
		}

		answer = &models.Answer{
			ProblemID:   problem.ID,
			RecordID:    record.ID,
			Option:      &option,
			Right:       strings.EqualFold(option, problem.CorrectOption),
			SubmittedAt: time.Now(),
		}
		return r.Answer().Create(ctx, answer)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit answer: %w", err)
	}

	s.logger.Info("Answer submitted",
		"answer_id", answer.ID,
		"problem_id", problem.ID,
		"record_id", answer.RecordID,
		"right", answer.Right)

	return answer, nil
}

// ensureRecord returns the (participant, group) record, creating the
// participant and the record on first interaction.
func (s *answerService) ensureRecord(ctx context.Context, r repositories.Repository, req *SubmitAnswerRequest, groupID uint) (*models.GroupParticipantRecord, error) {
	participant, err := r.Participant().GetByChatUserID(ctx, req.ChatUserID)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to get participant: %w", err)
		}
		participant = &models.Participant{
			ChatUserID: req.ChatUserID,
			Username:   req.Username,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
		}
		if err := r.Participant().Create(ctx, participant); err != nil {
			return nil, fmt.Errorf("failed to create participant: %w", err)
		}
		s.logger.Info("New participant", "participant_id", participant.ID, "chat_user_id", req.ChatUserID)
	}

	record, err := r.Record().GetByParticipantGroup(ctx, participant.ID, groupID)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to get record: %w", err)
		}
		now := time.Now()
		record = &models.GroupParticipantRecord{
			ParticipantID: participant.ID,
			GroupID:       groupID,
			JoinedAt:      &now,
		}
		if err := r.Record().Create(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to create record: %w", err)
		}
	}
	record.Participant = *participant

	return record, nil
}

// Process settles one answer on its own transaction. The batch closure path
// uses the same settlement helper inside its own transaction instead.
func (s *answerService) Process(ctx context.Context, answerID uint) (*ProcessOutcome, error) {
	answer, err := s.repo.Answer().GetByIDWithDetails(ctx, answerID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}

	var outcome *ProcessOutcome
	err = s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		var err error
		outcome, err = settleAnswer(ctx, r, answer)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Answer processed",
		"answer_id", answerID,
		"status", outcome.Status,
		"points", outcome.Points)

	return outcome, nil
}
