package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
)

type AnswerPostgreSQL struct {
	db *gorm.DB
}

func NewAnswerPostgreSQL(db *gorm.DB) repositories.AnswerRepository {
	return &AnswerPostgreSQL{db: db}
}

func (a *AnswerPostgreSQL) Create(ctx context.Context, answer *models.Answer) error {
	return a.db.WithContext(ctx).Omit("Problem", "Record").Create(answer).Error
}

func (a *AnswerPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	var answer models.Answer
	if err := a.db.WithContext(ctx).First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (a *AnswerPostgreSQL) GetByIDWithDetails(ctx context.Context, id uint) (*models.Answer, error) {
	var answer models.Answer
	if err := a.db.WithContext(ctx).
		Preload("Problem").
		Preload("Record").
		Preload("Record.Participant").
		First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (a *AnswerPostgreSQL) ListUnprocessed(ctx context.Context, problemID, groupID uint) ([]*models.Answer, error) {
	var answers []*models.Answer
	if err := a.db.WithContext(ctx).
		Preload("Problem").
		Preload("Record").
		Preload("Record.Participant").
		Joins("JOIN group_participant_records ON group_participant_records.id = answers.record_id").
		Where("answers.problem_id = ? AND group_participant_records.group_id = ? AND answers.processed = ?",
			problemID, groupID, false).
		Order("answers.id ASC").
		Find(&answers).Error; err != nil {
		return nil, fmt.Errorf("failed to list unprocessed answers: %w", err)
	}
	return answers, nil
}

// MarkProcessed flips the processed flag with a compare-and-set: the WHERE
// guard ensures exactly one caller observes processed=false.
func (a *AnswerPostgreSQL) MarkProcessed(ctx context.Context, id uint) (bool, error) {
	result := a.db.WithContext(ctx).
		Model(&models.Answer{}).
		Where("id = ? AND processed = ?", id, false).
		Update("processed", true)
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark answer processed: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (a *AnswerPostgreSQL) CountProcessed(ctx context.Context, problemID, groupID uint) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Answer{}).
		Joins("JOIN group_participant_records ON group_participant_records.id = answers.record_id").
		Where("answers.problem_id = ? AND group_participant_records.group_id = ? AND answers.processed = ?",
			problemID, groupID, true).
		Count(&count).Error
	return count, err
}

func (a *AnswerPostgreSQL) CountByRecord(ctx context.Context, recordID uint) (repositories.AnswerCounts, error) {
	var counts repositories.AnswerCounts
	err := a.db.WithContext(ctx).
		Model(&models.Answer{}).
		Select(`COUNT(*) AS total, COUNT(*) FILTER (WHERE "right" = true) AS right`).
		Where("record_id = ?", recordID).
		Scan(&counts).Error
	if err != nil {
		return repositories.AnswerCounts{}, fmt.Errorf("failed to count record answers: %w", err)
	}
	return counts, nil
}
