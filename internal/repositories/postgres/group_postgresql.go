package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
)

type GroupPostgreSQL struct {
	db *gorm.DB
}

func NewGroupPostgreSQL(db *gorm.DB) repositories.GroupRepository {
	return &GroupPostgreSQL{db: db}
}

func (g *GroupPostgreSQL) Create(ctx context.Context, group *models.Group) error {
	return g.db.WithContext(ctx).Create(group).Error
}

func (g *GroupPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := g.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (g *GroupPostgreSQL) GetByChatID(ctx context.Context, chatID string) (*models.Group, error) {
	var group models.Group
	if err := g.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (g *GroupPostgreSQL) GetByHandle(ctx context.Context, handle string) (*models.Group, error) {
	var group models.Group
	if err := g.db.WithContext(ctx).Where("handle = ?", handle).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (g *GroupPostgreSQL) GetAdminPage(ctx context.Context, moderatedGroupID uint) (*models.Group, error) {
	var group models.Group
	if err := g.db.WithContext(ctx).
		Where("kind = ? AND moderated_group_id = ?", models.GroupKindAdminPage, moderatedGroupID).
		First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (g *GroupPostgreSQL) Update(ctx context.Context, group *models.Group) error {
	return g.db.WithContext(ctx).Save(group).Error
}

type ParticipantPostgreSQL struct {
	db *gorm.DB
}

func NewParticipantPostgreSQL(db *gorm.DB) repositories.ParticipantRepository {
	return &ParticipantPostgreSQL{db: db}
}

func (p *ParticipantPostgreSQL) Create(ctx context.Context, participant *models.Participant) error {
	return p.db.WithContext(ctx).Create(participant).Error
}

func (p *ParticipantPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Participant, error) {
	var participant models.Participant
	if err := p.db.WithContext(ctx).First(&participant, id).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

func (p *ParticipantPostgreSQL) GetByChatUserID(ctx context.Context, chatUserID string) (*models.Participant, error) {
	var participant models.Participant
	if err := p.db.WithContext(ctx).Where("chat_user_id = ?", chatUserID).First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

func (p *ParticipantPostgreSQL) Update(ctx context.Context, participant *models.Participant) error {
	return p.db.WithContext(ctx).Save(participant).Error
}

// AddToTotalScore increments the lifetime total in the database, so
// concurrent awards never lose updates.
func (p *ParticipantPostgreSQL) AddToTotalScore(ctx context.Context, id uint, points int) error {
	result := p.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ?", id).
		Update("total_score", gorm.Expr("total_score + ?", points))
	if result.Error != nil {
		return fmt.Errorf("failed to add to total score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type RecordPostgreSQL struct {
	db *gorm.DB
}

func NewRecordPostgreSQL(db *gorm.DB) repositories.RecordRepository {
	return &RecordPostgreSQL{db: db}
}

func (r *RecordPostgreSQL) Create(ctx context.Context, record *models.GroupParticipantRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *RecordPostgreSQL) GetByID(ctx context.Context, id uint) (*models.GroupParticipantRecord, error) {
	var record models.GroupParticipantRecord
	if err := r.db.WithContext(ctx).Preload("Participant").First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *RecordPostgreSQL) GetByParticipantGroup(ctx context.Context, participantID, groupID uint) (*models.GroupParticipantRecord, error) {
	var record models.GroupParticipantRecord
	if err := r.db.WithContext(ctx).
		Where("participant_id = ? AND group_id = ?", participantID, groupID).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *RecordPostgreSQL) ListByGroup(ctx context.Context, groupID uint) ([]*models.GroupParticipantRecord, error) {
	var records []*models.GroupParticipantRecord
	if err := r.db.WithContext(ctx).
		Preload("Participant").
		Where("group_id = ?", groupID).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list group records: %w", err)
	}
	return records, nil
}

// AddScore increments the group score in the database, so concurrent awards
// to the same record never lose updates.
func (r *RecordPostgreSQL) AddScore(ctx context.Context, id uint, points int) error {
	result := r.db.WithContext(ctx).
		Model(&models.GroupParticipantRecord{}).
		Where("id = ?", id).
		Update("score", gorm.Expr("score + ?", points))
	if result.Error != nil {
		return fmt.Errorf("failed to add score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ScoreSnapshot reads every record's score in one query, giving ranking a
// consistent view even while awards run elsewhere.
func (r *RecordPostgreSQL) ScoreSnapshot(ctx context.Context, groupID uint) ([]repositories.RecordScore, error) {
	var snapshot []repositories.RecordScore
	if err := r.db.WithContext(ctx).
		Model(&models.GroupParticipantRecord{}).
		Select("id AS record_id, participant_id, score").
		Where("group_id = ?", groupID).
		Scan(&snapshot).Error; err != nil {
		return nil, fmt.Errorf("failed to snapshot group scores: %w", err)
	}
	return snapshot, nil
}

func (r *RecordPostgreSQL) Delete(ctx context.Context, id uint) error {
	// Bindings and violations go with the record (owned, cascade).
	return r.db.WithContext(ctx).Select("Bindings", "Violations").
		Delete(&models.GroupParticipantRecord{ID: id}).Error
}
