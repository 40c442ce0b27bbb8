package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
)

type ProblemPostgreSQL struct {
	db *gorm.DB
}

func NewProblemPostgreSQL(db *gorm.DB) repositories.ProblemRepository {
	return &ProblemPostgreSQL{db: db}
}

func (p *ProblemPostgreSQL) Create(ctx context.Context, problem *models.Problem) error {
	return p.db.WithContext(ctx).Create(problem).Error
}

func (p *ProblemPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Problem, error) {
	var problem models.Problem
	if err := p.db.WithContext(ctx).First(&problem, id).Error; err != nil {
		return nil, err
	}
	return &problem, nil
}

func (p *ProblemPostgreSQL) GetBySubjectIndex(ctx context.Context, subjectID uint, index int) (*models.Problem, error) {
	var problem models.Problem
	if err := p.db.WithContext(ctx).
		Where(`subject_id = ? AND "index" = ?`, subjectID, index).
		First(&problem).Error; err != nil {
		return nil, err
	}
	return &problem, nil
}

func (p *ProblemPostgreSQL) List(ctx context.Context, filters repositories.ProblemFilters) ([]*models.Problem, int64, error) {
	var problems []*models.Problem
	var total int64

	query := p.db.WithContext(ctx).Model(&models.Problem{})
	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.Chapter != nil {
		query = query.Where("chapter = ?", *filters.Chapter)
	}
	if filters.Special != nil {
		query = query.Where("special = ?", *filters.Special)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count problems: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("index ASC").Find(&problems).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list problems: %w", err)
	}

	return problems, total, nil
}

type SubjectPostgreSQL struct {
	db *gorm.DB
}

func NewSubjectPostgreSQL(db *gorm.DB) repositories.SubjectRepository {
	return &SubjectPostgreSQL{db: db}
}

func (s *SubjectPostgreSQL) Create(ctx context.Context, subject *models.Subject) error {
	return s.db.WithContext(ctx).Create(subject).Error
}

func (s *SubjectPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := s.db.WithContext(ctx).Preload("Discipline").First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *SubjectPostgreSQL) CountProblems(ctx context.Context, subjectID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Problem{}).
		Where("subject_id = ?", subjectID).
		Count(&count).Error
	return count, err
}
