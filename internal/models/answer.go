package models

import "time"

// Answer is one submitted answer to a problem. Right is derived at
// submission time by comparing the chosen option against the problem's
// correct tag. Processed flips to true exactly once when the answer is
// settled; answers are never deleted.
type Answer struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ProblemID uint `json:"problem_id" gorm:"not null;index;index:idx_answer_pending,where:processed = false"`
	RecordID  uint `json:"record_id" gorm:"not null;index"`

	Option      *string   `json:"option" gorm:"size:1"`
	Right       bool      `json:"right" gorm:"not null;default:false"`
	Processed   bool      `json:"processed" gorm:"not null;default:false"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Problem Problem                `json:"problem" gorm:"foreignKey:ProblemID"`
	Record  GroupParticipantRecord `json:"record" gorm:"foreignKey:RecordID"`
}
