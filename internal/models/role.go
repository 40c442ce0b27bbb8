package models

import "time"

// Reserved role tags. The engine refuses to start when these are missing
// from seed data.
const (
	RoleTagGuest = "guest"
	RoleTagAdmin = "admin"
)

// ManualOnlyPriority marks a role that is never auto-assigned by score,
// even when a threshold resolves to it.
const ManualOnlyPriority = -1

// Role is a rung on the group role ladder. StandardKit roles are assigned
// automatically from score thresholds; the rest are granted manually.
type Role struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;size:50"`
	Tag         string `json:"tag" gorm:"not null;uniqueIndex;size:50"`
	Priority    int    `json:"priority" gorm:"not null;default:1"`
	StandardKit bool   `json:"standard_kit" gorm:"not null;default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsGuest reports whether the role is the "no explicit role" sentinel.
func (r *Role) IsGuest() bool { return r.Tag == RoleTagGuest }

// ManualOnly reports whether the role may only be granted by hand.
func (r *Role) ManualOnly() bool { return r.Priority == ManualOnlyPriority }

// ScoreThreshold maps an inclusive score range to a role. Ranges for
// standard-kit roles should partition the score axis, but the resolver
// tolerates overlaps and gaps.
type ScoreThreshold struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	RoleID   uint `json:"role_id" gorm:"not null;index"`
	MinScore int  `json:"min_score" gorm:"not null"`
	MaxScore int  `json:"max_score" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Role Role `json:"role" gorm:"foreignKey:RoleID"`
}

// Contains reports whether score falls in the threshold's inclusive range.
func (t *ScoreThreshold) Contains(score int) bool {
	return t.MinScore <= score && score <= t.MaxScore
}

// RoleBinding grants a role to a group participant record. A record holds at
// most one standard-kit binding at a time; bindings resolving to the guest
// sentinel are never persisted.
type RoleBinding struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	RecordID uint `json:"record_id" gorm:"not null;index"`
	RoleID   uint `json:"role_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Record GroupParticipantRecord `json:"record" gorm:"foreignKey:RecordID"`
	Role   Role                   `json:"role" gorm:"foreignKey:RoleID"`
}
