package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
)

type roleService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewRoleService(repo repositories.Repository, logger *slog.Logger) RoleService {
	return &roleService{
		repo:   repo,
		logger: logger,
	}
}

// ValidateSeedData refuses to let the engine run without the reserved
// roles and at least one standard-kit threshold: role resolution would
// otherwise have to guess.
func (s *roleService) ValidateSeedData(ctx context.Context) error {
	if _, err := guestRole(ctx, s.repo); err != nil {
		return err
	}
	if _, err := s.repo.Role().GetByTag(ctx, models.RoleTagAdmin); err != nil {
		if repositories.IsNotFoundError(err) {
			return NewConfigurationError("admin role", "seed the reserved 'admin' role before starting")
		}
		return fmt.Errorf("failed to validate admin role: %w", err)
	}

	thresholds, err := s.repo.Threshold().ListStandard(ctx)
	if err != nil {
		return fmt.Errorf("failed to validate thresholds: %w", err)
	}
	if len(thresholds) == 0 {
		return NewConfigurationError("score thresholds", "no standard-kit thresholds are seeded")
	}

	s.logger.Info("Role seed data validated", "standard_thresholds", len(thresholds))
	return nil
}

func (s *roleService) ResolveStandardRole(ctx context.Context, score int) (*models.Role, error) {
	return standardRoleForScore(ctx, s.repo, score)
}

func (s *roleService) Recalculate(ctx context.Context, recordID uint) (*models.Role, error) {
	var role *models.Role
	err := s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		var err error
		role, err = recalculateRoles(ctx, r, s.logger, recordID)
		return err
	})
	return role, err
}

func (s *roleService) HighestRole(ctx context.Context, recordID uint) (*models.Role, error) {
	return highestBindingRole(ctx, s.repo, recordID, bindingAny)
}

func (s *roleService) HighestStandardRole(ctx context.Context, recordID uint) (*models.Role, error) {
	return highestBindingRole(ctx, s.repo, recordID, bindingStandard)
}

func (s *roleService) HighestNonStandardRole(ctx context.Context, recordID uint) (*models.Role, error) {
	return highestBindingRole(ctx, s.repo, recordID, bindingNonStandard)
}

// IsAdmin reports whether the record's highest manually granted role is at
// least as senior as the reserved admin role.
func (s *roleService) IsAdmin(ctx context.Context, recordID uint) (bool, error) {
	admin, err := s.repo.Role().GetByTag(ctx, models.RoleTagAdmin)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, NewConfigurationError("admin role", "seed the reserved 'admin' role before starting")
		}
		return false, fmt.Errorf("failed to get admin role: %w", err)
	}

	highest, err := highestBindingRole(ctx, s.repo, recordID, bindingNonStandard)
	if err != nil {
		return false, err
	}
	if highest.IsGuest() {
		return false, nil
	}
	return highest.Priority >= admin.Priority, nil
}

// ===== SHARED RESOLUTION HELPERS =====

// guestRole fetches the "no explicit role" sentinel; its absence is a fatal
// configuration failure, never a silent default.
func guestRole(ctx context.Context, r repositories.Repository) (*models.Role, error) {
	role, err := r.Role().GetByTag(ctx, models.RoleTagGuest)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewConfigurationError("guest role", "seed the reserved 'guest' role before starting")
		}
		return nil, fmt.Errorf("failed to get guest role: %w", err)
	}
	return role, nil
}

// standardRoleForScore finds the standard-kit role whose threshold contains
// score. Overlapping thresholds are tolerated: the highest role priority
// wins, deterministically. No match resolves to the guest sentinel.
func standardRoleForScore(ctx context.Context, r repositories.Repository, score int) (*models.Role, error) {
	thresholds, err := r.Threshold().ListStandard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list thresholds: %w", err)
	}

	var match *models.Role
	for _, t := range thresholds {
		if !t.Contains(score) {
			continue
		}
		role := t.Role
		if match == nil || role.Priority > match.Priority {
			match = &role
		}
	}
	if match != nil {
		return match, nil
	}
	return guestRole(ctx, r)
}

type bindingFilter int

const (
	bindingAny bindingFilter = iota
	bindingStandard
	bindingNonStandard
)

func (f bindingFilter) matches(role *models.Role) bool {
	switch f {
	case bindingStandard:
		return role.StandardKit
	case bindingNonStandard:
		return !role.StandardKit
	default:
		return true
	}
}

// highestBindingRole scans the record's active bindings under the filter and
// returns the highest-priority role, defaulting to the guest sentinel.
func highestBindingRole(ctx context.Context, r repositories.Repository, recordID uint, filter bindingFilter) (*models.Role, error) {
	bindings, err := r.Binding().ListByRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	var highest *models.Role
	for _, b := range bindings {
		role := b.Role
		if !filter.matches(&role) {
			continue
		}
		if highest == nil || role.Priority > highest.Priority {
			highest = &role
		}
	}
	if highest != nil {
		return highest, nil
	}
	return guestRole(ctx, r)
}

// recalculateRoles applies the promotion rule to one record:
//
//  1. Stale duplicate standard bindings are collapsed to the highest one.
//  2. The record's score resolves to a candidate standard role.
//  3. Promotion is monotonic: the binding changes only when the candidate
//     outranks the current standard role. Demotion never happens here.
//
// Returns the record's highest standard role after the pass.
func recalculateRoles(ctx context.Context, r repositories.Repository, logger *slog.Logger, recordID uint) (*models.Role, error) {
	record, err := r.Record().GetByID(ctx, recordID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	bindings, err := r.Binding().ListByRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	var current *models.RoleBinding
	for _, b := range bindings {
		if !b.Role.StandardKit {
			continue
		}
		if current == nil || b.Role.Priority > current.Role.Priority {
			current = b
		}
	}
	// Collapse stale duplicates left by older data.
	for _, b := range bindings {
		if !b.Role.StandardKit || current == nil || b.ID == current.ID {
			continue
		}
		if err := r.Binding().Delete(ctx, b.ID); err != nil {
			return nil, fmt.Errorf("failed to delete stale binding: %w", err)
		}
	}

	candidate, err := standardRoleForScore(ctx, r, record.Score)
	if err != nil {
		return nil, err
	}

	currentRole, err := guestRole(ctx, r)
	if err != nil {
		return nil, err
	}
	if current != nil {
		role := current.Role
		currentRole = &role
	}

	// Manual-only roles never promote; the guest sentinel never binds.
	if candidate.IsGuest() || candidate.ManualOnly() {
		return currentRole, nil
	}
	if candidate.Priority <= currentRole.Priority {
		return currentRole, nil
	}

	if current != nil {
		if err := r.Binding().UpdateRole(ctx, current.ID, candidate.ID); err != nil {
			return nil, err
		}
	} else {
		binding := &models.RoleBinding{RecordID: record.ID, RoleID: candidate.ID, Role: *candidate}
		if err := r.Binding().Create(ctx, binding); err != nil {
			return nil, fmt.Errorf("failed to create binding: %w", err)
		}
	}

	logger.Info("Promoted participant",
		"record_id", record.ID,
		"score", record.Score,
		"role", candidate.Name)

	return candidate, nil
}
