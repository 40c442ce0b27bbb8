package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
)

// emphasizedPositions is how many leading report lines get bold markup.
const emphasizedPositions = 3

type leaderboardService struct {
	repo               repositories.Repository
	logger             *slog.Logger
	notifier           Notifier
	percentageMinScore int
	hardcoreRatio      float64
}

func NewLeaderboardService(repo repositories.Repository, logger *slog.Logger, notifier Notifier, percentageMinScore int, hardcoreRatio float64) LeaderboardService {
	return &leaderboardService{
		repo:               repo,
		logger:             logger,
		notifier:           notifier,
		percentageMinScore: percentageMinScore,
		hardcoreRatio:      hardcoreRatio,
	}
}

// Close settles every pending answer for (problem, group) and builds the
// leaderboard report. The whole batch runs in one transaction under an
// exclusive per-pair lock: a concurrent closer serializes behind it, drains
// nothing, and gets an already-closed report instead of double awards.
func (s *leaderboardService) Close(ctx context.Context, problemID uint, group models.GroupRef) (*Report, error) {
	resolved, err := resolveGroup(ctx, s.repo, group)
	if err != nil {
		return nil, err
	}

	problem, err := s.repo.Problem().GetByID(ctx, problemID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProblemNotFound
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}

	s.logger.Info("Closing problem",
		"problem_id", problem.ID,
		"group_id", resolved.ID)

	var report *Report
	err = s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		var err error
		report, err = s.closeInTransaction(ctx, r, problem, resolved)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Reporting is best-effort: a failed notification never rolls back the
	// settled batch.
	if err := s.notifier.Notify(ctx, resolved.ChatID, report.Text); err != nil {
		s.logger.Warn("Failed to deliver leaderboard report",
			"problem_id", problem.ID,
			"group_id", resolved.ID,
			"error", err)
	}

	s.logger.Info("Problem closed",
		"problem_id", problem.ID,
		"group_id", resolved.ID,
		"total_considered", report.TotalConsidered,
		"right_count", report.RightCount,
		"hardcore", report.Hardcore,
		"already_closed", report.AlreadyClosed)

	return report, nil
}

func (s *leaderboardService) closeInTransaction(ctx context.Context, r repositories.Repository, problem *models.Problem, group *models.Group) (*Report, error) {
	if err := r.LockProblemGroup(ctx, problem.ID, group.ID); err != nil {
		return nil, err
	}

	answers, err := r.Answer().ListUnprocessed(ctx, problem.ID, group.ID)
	if err != nil {
		return nil, err
	}

	// Roles as they stood before the batch, per answer.
	oldRoles := make(map[uint]*models.Role, len(answers))
	for _, a := range answers {
		role, err := highestBindingRole(ctx, r, a.RecordID, bindingStandard)
		if err != nil {
			return nil, err
		}
		oldRoles[a.ID] = role
	}

	for _, a := range answers {
		if _, err := settleAnswer(ctx, r, a); err != nil {
			return nil, err
		}
		if _, err := recalculateRoles(ctx, r, s.logger, a.RecordID); err != nil {
			return nil, err
		}
	}

	// A closed problem is no longer the group's active one.
	if group.ActiveProblemID != nil && *group.ActiveProblemID == problem.ID {
		group.ActiveProblemID = nil
		if err := r.Group().Update(ctx, group); err != nil {
			return nil, fmt.Errorf("failed to clear active problem: %w", err)
		}
	}

	report := &Report{
		ProblemID:       problem.ID,
		GroupID:         group.ID,
		TotalConsidered: len(answers),
	}

	// Only correct answers make the board, in submission order.
	position := 0
	for _, a := range answers {
		if !a.Right {
			continue
		}
		position++

		record, err := r.Record().GetByID(ctx, a.RecordID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload record: %w", err)
		}
		newRole, err := highestBindingRole(ctx, r, a.RecordID, bindingStandard)
		if err != nil {
			return nil, err
		}
		percentage, err := recordPercentage(ctx, r, record, s.percentageMinScore)
		if err != nil {
			return nil, err
		}

		oldRole := oldRoles[a.ID]
		report.Entries = append(report.Entries, ReportEntry{
			RecordID:    record.ID,
			Name:        record.Participant.DisplayName(),
			Score:       record.Score,
			Percentage:  percentage,
			Position:    position,
			OldRole:     oldRole.Name,
			NewRole:     newRole.Name,
			RoleChanged: newRole.Name != oldRole.Name,
		})
	}
	report.RightCount = len(report.Entries)

	if report.TotalConsidered == 0 {
		processed, err := r.Answer().CountProcessed(ctx, problem.ID, group.ID)
		if err != nil {
			return nil, err
		}
		report.AlreadyClosed = processed > 0
	} else {
		report.Hardcore = float64(report.RightCount)/float64(report.TotalConsidered) < s.hardcoreRatio
	}

	report.Text = renderReport(report)
	return report, nil
}

// renderReport builds the human-readable leaderboard text.
func renderReport(report *Report) string {
	var b strings.Builder
	b.WriteString("Right answers:")

	if len(report.Entries) == 0 {
		b.WriteString("\nNo one solved the problem.")
	}
	for _, entry := range report.Entries {
		line := fmt.Sprintf("%d: %s - %d", entry.Position, entry.Name, entry.Score)
		if entry.Percentage != nil {
			line += fmt.Sprintf(" [%.1f%%]", *entry.Percentage)
		}
		if entry.RoleChanged {
			line += fmt.Sprintf(" -> %s", entry.NewRole)
		}
		if entry.Position <= emphasizedPositions {
			line = fmt.Sprintf("<b>%s</b>", line)
		}
		b.WriteString("\n")
		b.WriteString(line)
	}

	// Guard: no ratio line for an empty batch.
	if report.TotalConsidered > 0 {
		fmt.Fprintf(&b, "\n[Right %d/%d]", report.RightCount, report.TotalConsidered)
		if report.Hardcore {
			b.WriteString(" #Hardcore")
		}
	}

	b.WriteString("\n#Problem_Leaderboard")
	return b.String()
}
