package repositories

import (
	"context"
	"time"

	"github.com/quizrank/scoring-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type ProblemFilters struct {
	SubjectID *uint   `json:"subject_id"`
	Chapter   *string `json:"chapter"`
	Special   *bool   `json:"special"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}

type ViolationFilters struct {
	TypeTag  *string    `json:"type_tag"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// ===== SHARED RESULT STRUCTS =====

// RecordScore is one row of a group score snapshot.
type RecordScore struct {
	RecordID      uint `json:"record_id"`
	ParticipantID uint `json:"participant_id"`
	Score         int  `json:"score"`
}

// AnswerCounts summarizes a record's answer history within its group.
type AnswerCounts struct {
	Total int64 `json:"total"`
	Right int64 `json:"right"`
}

// ===== ENTITY REPOSITORIES =====

type ProblemRepository interface {
	Create(ctx context.Context, problem *models.Problem) error
	GetByID(ctx context.Context, id uint) (*models.Problem, error)
	GetBySubjectIndex(ctx context.Context, subjectID uint, index int) (*models.Problem, error)
	List(ctx context.Context, filters ProblemFilters) ([]*models.Problem, int64, error)
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id uint) (*models.Subject, error)
	CountProblems(ctx context.Context, subjectID uint) (int64, error)
}

type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, id uint) (*models.Role, error)
	// GetByTag returns the role with the given reserved or configured tag.
	GetByTag(ctx context.Context, tag string) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
}

type ThresholdRepository interface {
	Create(ctx context.Context, threshold *models.ScoreThreshold) error
	// ListStandard returns thresholds whose role is standard-kit, with the
	// role preloaded.
	ListStandard(ctx context.Context) ([]*models.ScoreThreshold, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	GetByChatID(ctx context.Context, chatID string) (*models.Group, error)
	GetByHandle(ctx context.Context, handle string) (*models.Group, error)
	// GetAdminPage returns the admin page moderating the given participant
	// group, if one is registered.
	GetAdminPage(ctx context.Context, moderatedGroupID uint) (*models.Group, error)
	Update(ctx context.Context, group *models.Group) error
}

type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	GetByID(ctx context.Context, id uint) (*models.Participant, error)
	GetByChatUserID(ctx context.Context, chatUserID string) (*models.Participant, error)
	Update(ctx context.Context, participant *models.Participant) error
	// AddToTotalScore atomically increases the lifetime total by points.
	AddToTotalScore(ctx context.Context, id uint, points int) error
}

type RecordRepository interface {
	Create(ctx context.Context, record *models.GroupParticipantRecord) error
	GetByID(ctx context.Context, id uint) (*models.GroupParticipantRecord, error)
	GetByParticipantGroup(ctx context.Context, participantID, groupID uint) (*models.GroupParticipantRecord, error)
	ListByGroup(ctx context.Context, groupID uint) ([]*models.GroupParticipantRecord, error)
	// AddScore atomically increases the record's group score by points.
	AddScore(ctx context.Context, id uint, points int) error
	// ScoreSnapshot returns a point-in-time view of every record's score in
	// the group, from a single query.
	ScoreSnapshot(ctx context.Context, groupID uint) ([]RecordScore, error)
	Delete(ctx context.Context, id uint) error
}

// BindingRepository is the registry of role bindings. Writes resolving to
// the guest sentinel are silently discarded.
type BindingRepository interface {
	Create(ctx context.Context, binding *models.RoleBinding) error
	// ListByRecord returns the record's bindings with roles preloaded.
	ListByRecord(ctx context.Context, recordID uint) ([]*models.RoleBinding, error)
	UpdateRole(ctx context.Context, bindingID, roleID uint) error
	Delete(ctx context.Context, bindingID uint) error
}

type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	GetByID(ctx context.Context, id uint) (*models.Answer, error)
	// GetByIDWithDetails preloads the problem and the record with its
	// participant.
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Answer, error)
	// ListUnprocessed returns the pending answers for (problem, group)
	// ordered by id ascending, details preloaded.
	ListUnprocessed(ctx context.Context, problemID, groupID uint) ([]*models.Answer, error)
	// MarkProcessed flips processed to true if and only if it is still
	// false, as one atomic step. Returns true when this call performed the
	// flip.
	MarkProcessed(ctx context.Context, id uint) (bool, error)
	// CountProcessed counts already-settled answers for (problem, group).
	CountProcessed(ctx context.Context, problemID, groupID uint) (int64, error)
	// CountByRecord returns total and right answer counts for a record.
	CountByRecord(ctx context.Context, recordID uint) (AnswerCounts, error)
}

type ViolationRepository interface {
	Create(ctx context.Context, violation *models.Violation) error
	ListByRecord(ctx context.Context, recordID uint, filters ViolationFilters) ([]*models.Violation, int64, error)
	CreateType(ctx context.Context, violationType *models.ViolationType) error
	GetTypeByTag(ctx context.Context, tag string) (*models.ViolationType, error)
}
