package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/quizrank/scoring-service/internal/cache"
	"github.com/quizrank/scoring-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface.
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	// Repository instances
	problem     repositories.ProblemRepository
	subject     repositories.SubjectRepository
	role        repositories.RoleRepository
	threshold   repositories.ThresholdRepository
	group       repositories.GroupRepository
	participant repositories.ParticipantRepository
	record      repositories.RecordRepository
	binding     repositories.BindingRepository
	answer      repositories.AnswerRepository
	violation   repositories.ViolationRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a repository manager with all
// sub-repositories.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	return newWithDB(config.DB, config.RedisClient, cache.NewCacheManager(config.RedisClient))
}

// newWithDB binds all sub-repositories to db; WithTransaction uses it to
// rebind everything to a transaction handle.
func newWithDB(db *gorm.DB, redisClient *redis.Client, cacheManager *cache.CacheManager) *PostgreSQLRepository {
	repo := &PostgreSQLRepository{
		db:           db,
		redisClient:  redisClient,
		cacheManager: cacheManager,
	}

	repo.problem = NewProblemPostgreSQL(db)
	repo.subject = NewSubjectPostgreSQL(db)
	repo.role = NewRolePostgreSQL(db, cacheManager)
	repo.threshold = NewThresholdPostgreSQL(db, cacheManager)
	repo.group = NewGroupPostgreSQL(db)
	repo.participant = NewParticipantPostgreSQL(db)
	repo.record = NewRecordPostgreSQL(db)
	repo.binding = NewBindingPostgreSQL(db)
	repo.answer = NewAnswerPostgreSQL(db)
	repo.violation = NewViolationPostgreSQL(db)

	return repo
}

func (r *PostgreSQLRepository) Problem() repositories.ProblemRepository { return r.problem }

func (r *PostgreSQLRepository) Subject() repositories.SubjectRepository { return r.subject }

func (r *PostgreSQLRepository) Role() repositories.RoleRepository { return r.role }

func (r *PostgreSQLRepository) Threshold() repositories.ThresholdRepository { return r.threshold }

func (r *PostgreSQLRepository) Group() repositories.GroupRepository { return r.group }

func (r *PostgreSQLRepository) Participant() repositories.ParticipantRepository {
	return r.participant
}

func (r *PostgreSQLRepository) Record() repositories.RecordRepository { return r.record }

func (r *PostgreSQLRepository) Binding() repositories.BindingRepository { return r.binding }

func (r *PostgreSQLRepository) Answer() repositories.AnswerRepository { return r.answer }

func (r *PostgreSQLRepository) Violation() repositories.ViolationRepository { return r.violation }

// WithTransaction runs fn against a repository bound to one transaction.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newWithDB(tx, r.redisClient, r.cacheManager))
	})
}

// LockProblemGroup serializes closures of the same (problem, group) pair via
// a transaction-scoped advisory lock; it is released when the surrounding
// transaction commits or rolls back.
func (r *PostgreSQLRepository) LockProblemGroup(ctx context.Context, problemID, groupID uint) error {
	key := int64(problemID)<<32 | int64(groupID)
	if err := r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", key).Error; err != nil {
		return fmt.Errorf("failed to acquire closure lock: %w", err)
	}
	return nil
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// ===== REPOSITORY MANAGER =====

type repositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewRepositoryManager creates a manager over the repository lifecycle.
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &repositoryManager{config: config}
}

func (m *repositoryManager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}
	m.repo = NewPostgreSQLRepository(m.config)
	return nil
}

func (m *repositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *repositoryManager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repositories not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *repositoryManager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
