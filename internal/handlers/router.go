package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/quizrank/scoring-service/internal/services"
)

type HandlerManager struct {
	answerHandler      *AnswerHandler
	problemHandler     *ProblemHandler
	leaderboardHandler *LeaderboardHandler
	groupHandler       *GroupHandler
	violationHandler   *ViolationHandler
	roleHandler        *RoleHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger *slog.Logger) *HandlerManager {
	return &HandlerManager{
		answerHandler:      NewAnswerHandler(serviceManager.Answer(), logger),
		problemHandler:     NewProblemHandler(serviceManager.Problem(), logger),
		leaderboardHandler: NewLeaderboardHandler(serviceManager.Leaderboard(), logger),
		groupHandler:       NewGroupHandler(serviceManager.Score(), serviceManager.Export(), logger),
		violationHandler:   NewViolationHandler(serviceManager.Violation(), logger),
		roleHandler:        NewRoleHandler(serviceManager.Role(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		answers := v1.Group("/answers")
		{
			answers.POST("", hm.answerHandler.SubmitAnswer)
			answers.POST("/:id/process", hm.answerHandler.ProcessAnswer)
		}

		problems := v1.Group("/problems")
		{
			problems.GET("/:id/statement", hm.problemHandler.GetStatement)
			problems.GET("/:id/next", hm.problemHandler.GetNext)
			problems.POST("/:id/activate", hm.problemHandler.Activate)
			problems.POST("/:id/close", hm.leaderboardHandler.CloseProblem)
		}

		groups := v1.Group("/groups")
		{
			groups.GET("/:id/positions", hm.groupHandler.GetPositions)
			groups.GET("/:id/standings/export", hm.groupHandler.ExportStandings)
		}

		violations := v1.Group("/violations")
		{
			violations.POST("", hm.violationHandler.RecordViolation)
		}

		records := v1.Group("/records")
		{
			records.GET("/:id/violations", hm.violationHandler.ListViolations)
			records.GET("/:id/roles/highest", hm.roleHandler.GetHighestRole)
			records.POST("/:id/roles/recalculate", hm.roleHandler.RecalculateRoles)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "scoring-service",
		})
	})
}
