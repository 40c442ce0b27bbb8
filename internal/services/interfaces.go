package services

import (
	"context"
	"time"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ===== REQUEST/RESPONSE DTOs =====

type SubmitAnswerRequest struct {
	ProblemID  uint            `json:"problem_id" validate:"required"`
	Group      models.GroupRef `json:"group"`
	ChatUserID string          `json:"chat_user_id" validate:"required,max=64"`
	Username   *string         `json:"username" validate:"omitempty,max=100"`
	FirstName  *string         `json:"first_name" validate:"omitempty,max=50"`
	LastName   *string         `json:"last_name" validate:"omitempty,max=50"`
	Option     string          `json:"option" validate:"required,len=1"`
}

type RecordViolationRequest struct {
	RecordID uint       `json:"record_id" validate:"required"`
	TypeTag  string     `json:"type_tag" validate:"required,max=50"`
	When     *time.Time `json:"when"`
}

// ProcessStatus is the outcome of settling one answer.
type ProcessStatus string

const (
	// ProcessAlreadyProcessed means a previous call settled the answer;
	// nothing was mutated.
	ProcessAlreadyProcessed ProcessStatus = "already_processed"
	// ProcessAwarded means the answer was right and points were granted.
	ProcessAwarded ProcessStatus = "awarded"
	// ProcessNoAward means the answer was settled but wrong.
	ProcessNoAward ProcessStatus = "no_award"
)

type ProcessOutcome struct {
	Status ProcessStatus `json:"status"`
	Points int           `json:"points"`
}

// ReportEntry is one correct answer's line in a closure report, in
// submission order.
type ReportEntry struct {
	RecordID    uint     `json:"record_id"`
	Name        string   `json:"name"`
	Score       int      `json:"score"`
	Percentage  *float64 `json:"percentage,omitempty"`
	Position    int      `json:"position"`
	OldRole     string   `json:"old_role"`
	NewRole     string   `json:"new_role"`
	RoleChanged bool     `json:"role_changed"`
}

// Report is the result of closing a problem for a group.
type Report struct {
	ProblemID       uint          `json:"problem_id"`
	GroupID         uint          `json:"group_id"`
	Entries         []ReportEntry `json:"entries"`
	TotalConsidered int           `json:"total_considered"`
	RightCount      int           `json:"right_count"`
	Hardcore        bool          `json:"hardcore"`
	AlreadyClosed   bool          `json:"already_closed"`
	Text            string        `json:"text"`
}

// ===== SERVICE INTERFACES =====

// ScoreService is the score ledger plus the group ranking built on it.
type ScoreService interface {
	// Award grants points (>= 0) to a record and the owning participant's
	// lifetime total atomically. Negative points are a contract violation.
	Award(ctx context.Context, recordID uint, points int) error
	// Snapshot returns a point-in-time view of every record's score in the
	// group.
	Snapshot(ctx context.Context, group models.GroupRef) ([]repositories.RecordScore, error)
	// Positions computes dense ranks over the group, descending by score;
	// ties share a rank and no rank values are skipped.
	Positions(ctx context.Context, group models.GroupRef) (map[uint]int, error)
	// Percentage returns the record's right-answer percentage, or nil while
	// the metric is undefined (lifetime score below the threshold).
	Percentage(ctx context.Context, recordID uint) (*float64, error)
}

// AnswerService accepts and settles submitted answers.
type AnswerService interface {
	// Submit stores a new answer, creating the participant and its group
	// record on first contact. Correctness is derived here, once.
	Submit(ctx context.Context, req *SubmitAnswerRequest) (*models.Answer, error)
	// Process settles one answer exactly once; calling it again reports
	// ProcessAlreadyProcessed without mutating anything.
	Process(ctx context.Context, answerID uint) (*ProcessOutcome, error)
}

// ProblemService navigates a subject's problem sequence and drives a
// group's play state.
type ProblemService interface {
	// HasNext reports whether another problem follows in the same subject.
	HasNext(ctx context.Context, problemID uint) (bool, error)
	// Next returns the following problem of the subject, or ErrNoNextProblem
	// from the subject's last one.
	Next(ctx context.Context, problemID uint) (*models.Problem, error)
	// Statement renders the publishable problem text; the subject's last
	// problem is tagged #last.
	Statement(ctx context.Context, problemID uint) (string, error)
	// Activate marks the problem as the group's active one and publishes
	// its statement to the group chat.
	Activate(ctx context.Context, problemID uint, group models.GroupRef) (string, error)
}

// RoleService resolves ladder roles from scores and manages bindings.
type RoleService interface {
	// ResolveStandardRole maps a score to the applicable standard-kit role,
	// or to the guest sentinel when no threshold contains it.
	ResolveStandardRole(ctx context.Context, score int) (*models.Role, error)
	// Recalculate applies the monotonic promotion rule to the record and
	// returns its resulting highest standard role.
	Recalculate(ctx context.Context, recordID uint) (*models.Role, error)
	HighestRole(ctx context.Context, recordID uint) (*models.Role, error)
	HighestStandardRole(ctx context.Context, recordID uint) (*models.Role, error)
	HighestNonStandardRole(ctx context.Context, recordID uint) (*models.Role, error)
	IsAdmin(ctx context.Context, recordID uint) (bool, error)
	// ValidateSeedData fails with a ConfigurationError when the reserved
	// roles or standard thresholds are missing.
	ValidateSeedData(ctx context.Context) error
}

// LeaderboardService closes problems and renders the reports.
type LeaderboardService interface {
	// Close drains the pending answers for (problem, group) under an
	// exclusive per-pair lock, settles each one, recalculates roles, and
	// builds the leaderboard report.
	Close(ctx context.Context, problemID uint, group models.GroupRef) (*Report, error)
}

// ViolationService records disciplinary events.
type ViolationService interface {
	Record(ctx context.Context, req *RecordViolationRequest) (*models.Violation, error)
	List(ctx context.Context, recordID uint, filters repositories.ViolationFilters) ([]*models.Violation, int64, error)
}

// ExportService renders group standings to a spreadsheet.
type ExportService interface {
	ExportStandings(ctx context.Context, group models.GroupRef) (*excelize.File, error)
}

// Notifier surfaces human-readable engine output to an external audience.
// Callers treat failures as non-fatal: logged and ignored.
type Notifier interface {
	Notify(ctx context.Context, target, text string) error
}
