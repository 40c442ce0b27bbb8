package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
)

type problemService struct {
	repo     repositories.Repository
	logger   *slog.Logger
	notifier Notifier
}

func NewProblemService(repo repositories.Repository, logger *slog.Logger, notifier Notifier) ProblemService {
	return &problemService{
		repo:     repo,
		logger:   logger,
		notifier: notifier,
	}
}

func (s *problemService) getProblem(ctx context.Context, problemID uint) (*models.Problem, error) {
	problem, err := s.repo.Problem().GetByID(ctx, problemID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProblemNotFound
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	return problem, nil
}

// HasNext reports whether the problem is followed by another one in its
// subject. Problems are 1-indexed within a subject, so the last problem's
// index equals the subject's problem count.
func (s *problemService) HasNext(ctx context.Context, problemID uint) (bool, error) {
	problem, err := s.getProblem(ctx, problemID)
	if err != nil {
		return false, err
	}
	return s.hasNext(ctx, problem)
}

func (s *problemService) hasNext(ctx context.Context, problem *models.Problem) (bool, error) {
	count, err := s.repo.Subject().CountProblems(ctx, problem.SubjectID)
	if err != nil {
		return false, fmt.Errorf("failed to count subject problems: %w", err)
	}
	return int64(problem.Index) < count, nil
}

// Next returns the problem at the following index of the same subject, or
// ErrNoNextProblem when the given problem is the subject's last one.
func (s *problemService) Next(ctx context.Context, problemID uint) (*models.Problem, error) {
	problem, err := s.getProblem(ctx, problemID)
	if err != nil {
		return nil, err
	}

	hasNext, err := s.hasNext(ctx, problem)
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, ErrNoNextProblem
	}

	next, err := s.repo.Problem().GetBySubjectIndex(ctx, problem.SubjectID, problem.Index+1)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Indices have a gap; treat it the same as running out.
			return nil, ErrNoNextProblem
		}
		return nil, fmt.Errorf("failed to get next problem: %w", err)
	}
	return next, nil
}

// Statement renders the publishable problem text, tagging the subject's
// last problem with #last.
func (s *problemService) Statement(ctx context.Context, problemID uint) (string, error) {
	problem, err := s.getProblem(ctx, problemID)
	if err != nil {
		return "", err
	}

	hasNext, err := s.hasNext(ctx, problem)
	if err != nil {
		return "", err
	}
	return problem.FormatStatement(hasNext), nil
}

// Activate marks the problem as the group's current one and publishes its
// statement to the group chat. The publish is best-effort; play state is
// updated regardless.
func (s *problemService) Activate(ctx context.Context, problemID uint, group models.GroupRef) (string, error) {
	resolved, err := resolveGroup(ctx, s.repo, group)
	if err != nil {
		return "", err
	}

	problem, err := s.getProblem(ctx, problemID)
	if err != nil {
		return "", err
	}

	hasNext, err := s.hasNext(ctx, problem)
	if err != nil {
		return "", err
	}

	resolved.ActiveProblemID = &problem.ID
	resolved.ActiveSubjectID = &problem.SubjectID
	if err := s.repo.Group().Update(ctx, resolved); err != nil {
		return "", fmt.Errorf("failed to update group play state: %w", err)
	}

	text := problem.FormatStatement(hasNext)
	if err := s.notifier.Notify(ctx, resolved.ChatID, text); err != nil {
		s.logger.Warn("Failed to publish problem statement",
			"problem_id", problem.ID,
			"group_id", resolved.ID,
			"error", err)
	}

	s.logger.Info("Problem activated",
		"problem_id", problem.ID,
		"group_id", resolved.ID,
		"has_next", hasNext)

	return text, nil
}
