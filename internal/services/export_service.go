package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
)

const standingsSheet = "Standings"

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportStandings renders the group's ranked standings to a spreadsheet:
// dense-ranked position, participant, score, and current role per row.
func (s *exportService) ExportStandings(ctx context.Context, group models.GroupRef) (*excelize.File, error) {
	resolved, err := resolveGroup(ctx, s.repo, group)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Record().ListByGroup(ctx, resolved.ID)
	if err != nil {
		return nil, err
	}

	snapshot := make([]repositories.RecordScore, len(records))
	for i, record := range records {
		snapshot[i] = repositories.RecordScore{
			RecordID:      record.ID,
			ParticipantID: record.ParticipantID,
			Score:         record.Score,
		}
	}
	positions := densePositions(snapshot)

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", standingsSheet)

	headers := []string{"Position", "Participant", "Score", "Role"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(standingsSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, record := range records {
		role, err := highestBindingRole(ctx, s.repo, record.ID, bindingAny)
		if err != nil {
			return nil, err
		}

		row := i + 2
		values := []interface{}{
			positions[record.ID],
			record.Participant.DisplayName(),
			record.Score,
			role.Name,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(standingsSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write standings row: %w", err)
			}
		}
	}

	s.logger.Info("Exported standings",
		"group_id", resolved.ID,
		"records", len(records))

	return f, nil
}
