package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/services"
)

type CloseProblemRequest struct {
	Group models.GroupRef `json:"group"`
}

type LeaderboardHandler struct {
	BaseHandler
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		BaseHandler:        NewBaseHandler(logger),
		leaderboardService: leaderboardService,
	}
}

// CloseProblem drains the pending answers for the problem in the given
// group and returns the leaderboard report. A close that finds nothing to
// settle because a previous close already ran answers 409 with the
// already-closed report.
func (h *LeaderboardHandler) CloseProblem(c *gin.Context) {
	problemID := h.parseIDParam(c, "id")
	if problemID == 0 {
		return
	}

	var req CloseProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Closing problem", "problem_id", problemID)

	report, err := h.leaderboardService.Close(c.Request.Context(), problemID, req.Group)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if report.AlreadyClosed {
		status = http.StatusConflict
	}
	c.JSON(status, SuccessResponse{Data: report})
}
