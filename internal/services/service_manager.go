package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/quizrank/scoring-service/internal/repositories"
	"github.com/quizrank/scoring-service/internal/validator"
)

// ServiceManager aggregates the engine's services behind one lifecycle.
type ServiceManager interface {
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error

	Score() ScoreService
	Answer() AnswerService
	Problem() ProblemService
	Role() RoleService
	Leaderboard() LeaderboardService
	Violation() ViolationService
	Export() ExportService
}

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	EnableDebugLogging bool
	LogLevel           slog.Level

	// PercentageMinScore gates the right-answer percentage metric on a
	// participant's lifetime score.
	PercentageMinScore int
	// HardcoreRatio is the right/considered ratio below which a closure
	// report is tagged hardcore.
	HardcoreRatio float64

	DefaultTimeout time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	notifier  Notifier
	config    ServiceManagerConfig

	// Service instances
	scoreService       ScoreService
	answerService      AnswerService
	problemService     ProblemService
	roleService        RoleService
	leaderboardService LeaderboardService
	violationService   ViolationService
	exportService      ExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, notifier Notifier, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		notifier:  notifier,
		config:    config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, notifier Notifier) ServiceManager {
	config := ServiceManagerConfig{
		EnableDebugLogging: false,
		LogLevel:           slog.LevelInfo,
		PercentageMinScore: DefaultPercentageMinScore,
		HardcoreRatio:      DefaultHardcoreRatio,
		DefaultTimeout:     30 * time.Second,
	}

	return NewServiceManager(db, repo, logger, validator, notifier, config)
}

// Initialize sets up all services and verifies the seed data the engine
// cannot run without.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if err := sm.config.Validate(); err != nil {
		return fmt.Errorf("invalid service manager config: %w", err)
	}

	sm.initializeServices()

	// Reserved roles and standard thresholds are load-bearing; refuse to
	// start without them rather than fail on the first answer.
	if err := sm.roleService.ValidateSeedData(ctx); err != nil {
		return fmt.Errorf("seed data validation failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) initializeServices() {
	sm.scoreService = NewScoreService(sm.repo, sm.logger, sm.config.PercentageMinScore)
	sm.logger.Info("Score service initialized")

	sm.answerService = NewAnswerService(sm.repo, sm.logger, sm.validator)
	sm.logger.Info("Answer service initialized")

	sm.problemService = NewProblemService(sm.repo, sm.logger, sm.notifier)
	sm.logger.Info("Problem service initialized")

	sm.roleService = NewRoleService(sm.repo, sm.logger)
	sm.logger.Info("Role service initialized")

	sm.leaderboardService = NewLeaderboardService(sm.repo, sm.logger, sm.notifier, sm.config.PercentageMinScore, sm.config.HardcoreRatio)
	sm.logger.Info("Leaderboard service initialized")

	sm.violationService = NewViolationService(sm.repo, sm.logger, sm.notifier, sm.validator)
	sm.logger.Info("Violation service initialized")

	sm.exportService = NewExportService(sm.repo, sm.logger)
	sm.logger.Info("Export service initialized")
}

// Service getters
func (sm *serviceManager) Score() ScoreService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.scoreService
}

func (sm *serviceManager) Answer() AnswerService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.answerService
}

func (sm *serviceManager) Problem() ProblemService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.problemService
}

func (sm *serviceManager) Role() RoleService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.roleService
}

func (sm *serviceManager) Leaderboard() LeaderboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.leaderboardService
}

func (sm *serviceManager) Violation() ViolationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.violationService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.exportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if repoManager, ok := sm.repo.(repositories.RepositoryManager); ok {
		if err := repoManager.Shutdown(ctx); err != nil {
			sm.logger.Error("Failed to shutdown repository manager", "error", err)
		}
	} else if err := sm.repo.Close(); err != nil {
		sm.logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

// WithTimeout creates a context with the default timeout
func (sm *serviceManager) WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, sm.config.DefaultTimeout)
}

// Validate checks the service manager configuration.
func (config *ServiceManagerConfig) Validate() error {
	if config.DefaultTimeout <= 0 {
		return fmt.Errorf("default timeout must be positive")
	}
	if config.PercentageMinScore < 0 {
		return fmt.Errorf("percentage minimum score cannot be negative")
	}
	if config.HardcoreRatio <= 0 || config.HardcoreRatio > 1 {
		return fmt.Errorf("hardcore ratio must be in (0, 1]")
	}
	return nil
}
