package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizrank/scoring-service/internal/cache"
	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
)

type RolePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewRolePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.RoleRepository {
	return &RolePostgreSQL{db: db, cacheManager: cacheManager}
}

func (r *RolePostgreSQL) Create(ctx context.Context, role *models.Role) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return err
	}
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Role, "*")
	return nil
}

func (r *RolePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByTag serves reserved-role lookups (guest, admin) on the hot path of
// every role resolution, so it is cached.
func (r *RolePostgreSQL) GetByTag(ctx context.Context, tag string) (*models.Role, error) {
	cacheKey := fmt.Sprintf("tag:%s", tag)
	var role models.Role

	err := r.cacheManager.Role.CacheOrExecute(ctx, cacheKey, &role, cache.RoleCacheConfig.TTL, func() (interface{}, error) {
		var dbRole models.Role
		if err := r.db.WithContext(ctx).Where("tag = ?", tag).First(&dbRole).Error; err != nil {
			return nil, err
		}
		return &dbRole, nil
	})
	if err != nil {
		return nil, err
	}

	return &role, nil
}

func (r *RolePostgreSQL) List(ctx context.Context) ([]*models.Role, error) {
	var roles []*models.Role
	if err := r.db.WithContext(ctx).Order("priority DESC").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

type ThresholdPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewThresholdPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ThresholdRepository {
	return &ThresholdPostgreSQL{db: db, cacheManager: cacheManager}
}

func (t *ThresholdPostgreSQL) Create(ctx context.Context, threshold *models.ScoreThreshold) error {
	if err := t.db.WithContext(ctx).Create(threshold).Error; err != nil {
		return err
	}
	cache.SafeDelete(ctx, t.cacheManager.Threshold, "standard")
	return nil
}

func (t *ThresholdPostgreSQL) ListStandard(ctx context.Context) ([]*models.ScoreThreshold, error) {
	var thresholds []*models.ScoreThreshold

	err := t.cacheManager.Threshold.CacheOrExecute(ctx, "standard", &thresholds, cache.ThresholdCacheConfig.TTL, func() (interface{}, error) {
		var dbThresholds []*models.ScoreThreshold
		if err := t.db.WithContext(ctx).
			Joins("Role").
			Where("\"Role\".standard_kit = ?", true).
			Order("min_score ASC").
			Find(&dbThresholds).Error; err != nil {
			return nil, fmt.Errorf("failed to list standard thresholds: %w", err)
		}
		return dbThresholds, nil
	})
	if err != nil {
		return nil, err
	}

	return thresholds, nil
}
