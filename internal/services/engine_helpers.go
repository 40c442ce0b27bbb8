package services

import (
	"context"
	"fmt"
	"math"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
)

const (
	// DefaultPercentageMinScore is the lifetime score a participant needs
	// before the right-answer percentage metric is defined.
	DefaultPercentageMinScore = 450
	// DefaultHardcoreRatio marks a closure batch as hardcore when fewer
	// than this share of considered answers were right.
	DefaultHardcoreRatio = 0.4
)

// The helpers below take a Repository handle instead of holding one, so the
// closure path can run them inside a single transaction-bound repository.

// resolveGroup resolves a GroupRef exactly once, at the engine boundary.
func resolveGroup(ctx context.Context, r repositories.Repository, ref models.GroupRef) (*models.Group, error) {
	if !ref.Valid() {
		return nil, ErrInvalidGroupRef
	}

	var (
		group *models.Group
		err   error
	)
	if ref.ID != 0 {
		group, err = r.Group().GetByID(ctx, ref.ID)
	} else {
		group, err = r.Group().GetByHandle(ctx, ref.Handle)
	}
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to resolve group: %w", err)
	}
	return group, nil
}

// awardPoints grants points to a record and the owning participant's
// lifetime total. Negative points are a caller bug, not a runtime state.
func awardPoints(ctx context.Context, r repositories.Repository, recordID uint, points int) error {
	if points < 0 {
		return NewContractError("award", fmt.Sprintf("negative points %d for record %d", points, recordID))
	}

	record, err := r.Record().GetByID(ctx, recordID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return NewContractError("award", fmt.Sprintf("record %d does not exist", recordID))
		}
		return fmt.Errorf("failed to get record: %w", err)
	}

	if err := r.Record().AddScore(ctx, record.ID, points); err != nil {
		return fmt.Errorf("failed to add group score: %w", err)
	}
	if err := r.Participant().AddToTotalScore(ctx, record.ParticipantID, points); err != nil {
		return fmt.Errorf("failed to add lifetime score: %w", err)
	}
	return nil
}

// settleAnswer settles one answer exactly once. The compare-and-set on the
// processed flag decides which caller performs the award; every other caller
// sees ProcessAlreadyProcessed and mutates nothing. The answer must carry
// its preloaded problem.
func settleAnswer(ctx context.Context, r repositories.Repository, answer *models.Answer) (*ProcessOutcome, error) {
	if answer.Processed {
		return &ProcessOutcome{Status: ProcessAlreadyProcessed}, nil
	}

	flipped, err := r.Answer().MarkProcessed(ctx, answer.ID)
	if err != nil {
		return nil, err
	}
	if !flipped {
		return &ProcessOutcome{Status: ProcessAlreadyProcessed}, nil
	}
	answer.Processed = true

	if !answer.Right {
		return &ProcessOutcome{Status: ProcessNoAward}, nil
	}

	if err := awardPoints(ctx, r, answer.RecordID, answer.Problem.Value); err != nil {
		return nil, err
	}
	return &ProcessOutcome{Status: ProcessAwarded, Points: answer.Problem.Value}, nil
}

// densePositions ranks a score snapshot descending; equal scores share a
// rank and the next distinct score takes the immediately following one.
func densePositions(snapshot []repositories.RecordScore) map[uint]int {
	sorted := make([]repositories.RecordScore, len(snapshot))
	copy(sorted, snapshot)
	// Stable keeps input order among ties; their shared rank makes the
	// ordering itself insignificant.
	sortRecordScoresDesc(sorted)

	positions := make(map[uint]int, len(sorted))
	position := 0
	var prev *int
	for i := range sorted {
		if prev == nil || sorted[i].Score != *prev {
			prev = &sorted[i].Score
			position++
		}
		positions[sorted[i].RecordID] = position
	}
	return positions
}

// recordPercentage computes the record's right-answer percentage. The
// metric is undefined until the participant's lifetime score reaches
// minScore; nil means "not yet defined", not zero.
func recordPercentage(ctx context.Context, r repositories.Repository, record *models.GroupParticipantRecord, minScore int) (*float64, error) {
	participant := record.Participant
	if participant.ID == 0 {
		loaded, err := r.Participant().GetByID(ctx, record.ParticipantID)
		if err != nil {
			return nil, fmt.Errorf("failed to get participant: %w", err)
		}
		participant = *loaded
	}

	if participant.TotalScore < minScore {
		return nil, nil
	}

	counts, err := r.Answer().CountByRecord(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	if counts.Total == 0 {
		return nil, nil
	}

	percentage := math.Round(float64(counts.Right)/float64(counts.Total)*1000) / 10
	return &percentage, nil
}
