package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
)

type BindingPostgreSQL struct {
	db *gorm.DB
}

func NewBindingPostgreSQL(db *gorm.DB) repositories.BindingRepository {
	return &BindingPostgreSQL{db: db}
}

// Create persists a role binding. A binding resolving to the guest sentinel
// means "no explicit role" and is silently discarded.
func (b *BindingPostgreSQL) Create(ctx context.Context, binding *models.RoleBinding) error {
	role := binding.Role
	if role.ID == 0 || role.ID != binding.RoleID {
		var dbRole models.Role
		if err := b.db.WithContext(ctx).First(&dbRole, binding.RoleID).Error; err != nil {
			return fmt.Errorf("failed to resolve binding role: %w", err)
		}
		role = dbRole
	}
	if role.IsGuest() {
		return nil
	}
	return b.db.WithContext(ctx).Omit("Role", "Record").Create(binding).Error
}

func (b *BindingPostgreSQL) ListByRecord(ctx context.Context, recordID uint) ([]*models.RoleBinding, error) {
	var bindings []*models.RoleBinding
	if err := b.db.WithContext(ctx).
		Preload("Role").
		Where("record_id = ?", recordID).
		Find(&bindings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bindings: %w", err)
	}
	return bindings, nil
}

func (b *BindingPostgreSQL) UpdateRole(ctx context.Context, bindingID, roleID uint) error {
	result := b.db.WithContext(ctx).
		Model(&models.RoleBinding{}).
		Where("id = ?", bindingID).
		Update("role_id", roleID)
	if result.Error != nil {
		return fmt.Errorf("failed to update binding role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (b *BindingPostgreSQL) Delete(ctx context.Context, bindingID uint) error {
	return b.db.WithContext(ctx).Delete(&models.RoleBinding{}, bindingID).Error
}
