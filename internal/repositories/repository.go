package repositories

import "context"

// Repository aggregates all entity repositories behind one handle.
type Repository interface {
	// Reference data
	Problem() ProblemRepository
	Subject() SubjectRepository
	Role() RoleRepository
	Threshold() ThresholdRepository

	// Group / participant state
	Group() GroupRepository
	Participant() ParticipantRepository
	Record() RecordRepository
	Binding() BindingRepository

	// Engine state
	Answer() AnswerRepository
	Violation() ViolationRepository

	// WithTransaction runs fn against a repository bound to a single
	// transaction; fn returning an error rolls everything back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// LockProblemGroup takes an exclusive lock keyed by (problemID, groupID)
	// held until the surrounding transaction ends. Must be called inside
	// WithTransaction.
	LockProblemGroup(ctx context.Context, problemID, groupID uint) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager handles repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
