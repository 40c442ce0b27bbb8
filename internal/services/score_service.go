package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
)

type scoreService struct {
	repo               repositories.Repository
	logger             *slog.Logger
	percentageMinScore int
}

func NewScoreService(repo repositories.Repository, logger *slog.Logger, percentageMinScore int) ScoreService {
	return &scoreService{
		repo:               repo,
		logger:             logger,
		percentageMinScore: percentageMinScore,
	}
}

// Award grants points to a record and the participant's lifetime total in
// one transaction so neither counter can drift from the other.
func (s *scoreService) Award(ctx context.Context, recordID uint, points int) error {
	err := s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		return awardPoints(ctx, r, recordID, points)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("Awarded points",
		"record_id", recordID,
		"points", points)
	return nil
}

func (s *scoreService) Snapshot(ctx context.Context, group models.GroupRef) ([]repositories.RecordScore, error) {
	resolved, err := resolveGroup(ctx, s.repo, group)
	if err != nil {
		return nil, err
	}
	return s.repo.Record().ScoreSnapshot(ctx, resolved.ID)
}

func (s *scoreService) Positions(ctx context.Context, group models.GroupRef) (map[uint]int, error) {
	snapshot, err := s.Snapshot(ctx, group)
	if err != nil {
		return nil, err
	}
	return densePositions(snapshot), nil
}

func (s *scoreService) Percentage(ctx context.Context, recordID uint) (*float64, error) {
	record, err := s.repo.Record().GetByID(ctx, recordID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return recordPercentage(ctx, s.repo, record, s.percentageMinScore)
}

func sortRecordScoresDesc(scores []repositories.RecordScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
}
