package models

import "time"

// ViolationType is a configured category of disciplinary event. Cost is
// informational metadata; recording a violation never deducts points.
type ViolationType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:50"`
	Tag  string `json:"tag" gorm:"not null;uniqueIndex;size:50"`
	Cost uint   `json:"cost" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Violation is one disciplinary event against a participant's record in a
// group. Append-only: never mutated or deleted.
type Violation struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	RecordID   uint      `json:"record_id" gorm:"not null;index"`
	TypeID     uint      `json:"type_id" gorm:"not null;index"`
	OccurredAt time.Time `json:"occurred_at" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Record GroupParticipantRecord `json:"record" gorm:"foreignKey:RecordID"`
	Type   ViolationType          `json:"type" gorm:"foreignKey:TypeID"`
}
