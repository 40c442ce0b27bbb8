package models

import "time"

type GroupKind string

const (
	// GroupKindParticipant is a chat group where problems are played.
	GroupKindParticipant GroupKind = "participant"
	// GroupKindAdminPage is the moderation counterpart of a participant group.
	GroupKindAdminPage GroupKind = "admin_page"
)

// Group is a chat group known to the engine. Participant groups and their
// admin pages share one table, distinguished by a kind tag plus optional
// links.
type Group struct {
	ID     uint      `json:"id" gorm:"primaryKey"`
	ChatID string    `json:"chat_id" gorm:"not null;uniqueIndex;size:64"`
	Handle *string   `json:"handle" gorm:"uniqueIndex;size:100"`
	Title  string    `json:"title" gorm:"not null;size:150"`
	Kind   GroupKind `json:"kind" gorm:"not null;default:participant;index"`

	// Current play state of a participant group.
	ActiveProblemID *uint `json:"active_problem_id"`
	ActiveSubjectID *uint `json:"active_subject_id"`

	// For an admin page, the participant group it moderates.
	ModeratedGroupID *uint `json:"moderated_group_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	ActiveProblem  *Problem `json:"active_problem" gorm:"foreignKey:ActiveProblemID"`
	ActiveSubject  *Subject `json:"active_subject" gorm:"foreignKey:ActiveSubjectID"`
	ModeratedGroup *Group   `json:"moderated_group" gorm:"foreignKey:ModeratedGroupID"`
}

// GroupRef identifies a group either by numeric id or by chat handle.
// Exactly one side is set; it is resolved once at the API boundary.
type GroupRef struct {
	ID     uint   `json:"id,omitempty"`
	Handle string `json:"handle,omitempty"`
}

func GroupByID(id uint) GroupRef { return GroupRef{ID: id} }

func GroupByHandle(handle string) GroupRef { return GroupRef{Handle: handle} }

// Valid reports whether exactly one of the two identifiers is set.
func (r GroupRef) Valid() bool {
	return (r.ID != 0) != (r.Handle != "")
}
