package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
)

type ViolationPostgreSQL struct {
	db *gorm.DB
}

func NewViolationPostgreSQL(db *gorm.DB) repositories.ViolationRepository {
	return &ViolationPostgreSQL{db: db}
}

func (v *ViolationPostgreSQL) Create(ctx context.Context, violation *models.Violation) error {
	return v.db.WithContext(ctx).Omit("Record", "Type").Create(violation).Error
}

func (v *ViolationPostgreSQL) ListByRecord(ctx context.Context, recordID uint, filters repositories.ViolationFilters) ([]*models.Violation, int64, error) {
	var violations []*models.Violation
	var total int64

	query := v.db.WithContext(ctx).Model(&models.Violation{}).Where("record_id = ?", recordID)
	if filters.TypeTag != nil {
		query = query.Joins("Type").Where("\"Type\".tag = ?", *filters.TypeTag)
	}
	if filters.DateFrom != nil {
		query = query.Where("occurred_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("occurred_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count violations: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Preload("Type").Order("occurred_at DESC").Find(&violations).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list violations: %w", err)
	}

	return violations, total, nil
}

func (v *ViolationPostgreSQL) CreateType(ctx context.Context, violationType *models.ViolationType) error {
	return v.db.WithContext(ctx).Create(violationType).Error
}

func (v *ViolationPostgreSQL) GetTypeByTag(ctx context.Context, tag string) (*models.ViolationType, error) {
	var violationType models.ViolationType
	if err := v.db.WithContext(ctx).Where("tag = ?", tag).First(&violationType).Error; err != nil {
		return nil, err
	}
	return &violationType, nil
}
