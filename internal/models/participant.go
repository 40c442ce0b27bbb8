package models

import (
	"strings"
	"time"
)

// Participant is a chat user who has interacted with the engine at least
// once. Created on first contact, never deleted. TotalScore is the lifetime
// sum of points earned across all groups.
type Participant struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	ChatUserID string  `json:"chat_user_id" gorm:"not null;uniqueIndex;size:64"`
	Username   *string `json:"username" gorm:"size:100"`
	FirstName  *string `json:"first_name" gorm:"size:50"`
	LastName   *string `json:"last_name" gorm:"size:50"`
	TotalScore int     `json:"total_score" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// presentableAlone reports whether a single name component reads well on its
// own: at least 3 characters, and abbreviations like "Dr." need 6.
func presentableAlone(name string) bool {
	if len(name) < 3 {
		return false
	}
	if len(name) < 6 && strings.HasSuffix(name, ".") {
		return false
	}
	return true
}

// DisplayName picks the best available name for leaderboards and mentions.
func (p *Participant) DisplayName() string {
	var stack []string
	for _, el := range []*string{p.FirstName, p.Username, p.LastName} {
		if el != nil && *el != "" {
			stack = append(stack, *el)
		}
	}
	if len(stack) == 0 {
		return "UNKNOWN"
	}
	if presentableAlone(stack[0]) || len(stack) == 1 {
		return stack[0]
	}
	return strings.Join(stack[:2], " ")
}

// FullName joins first and last name, falling back to the username.
func (p *Participant) FullName() string {
	var parts []string
	for _, el := range []*string{p.FirstName, p.LastName} {
		if el != nil && *el != "" {
			parts = append(parts, *el)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if p.Username != nil {
		return *p.Username
	}
	return ""
}

// GroupParticipantRecord is the per-group state of a participant: its score
// in that group plus the role bindings and violations it owns. One record
// exists per (participant, group) pair, created on first interaction.
type GroupParticipantRecord struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	ParticipantID uint       `json:"participant_id" gorm:"not null;uniqueIndex:idx_participant_group"`
	GroupID       uint       `json:"group_id" gorm:"not null;index;uniqueIndex:idx_participant_group"`
	Score         int        `json:"score" gorm:"not null;default:0"`
	JoinedAt      *time.Time `json:"joined_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations. Bindings and violations are owned exclusively by the record.
	Participant Participant   `json:"participant" gorm:"foreignKey:ParticipantID"`
	Group       Group         `json:"group" gorm:"foreignKey:GroupID"`
	Bindings    []RoleBinding `json:"bindings" gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE"`
	Violations  []Violation   `json:"violations" gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE"`
}
