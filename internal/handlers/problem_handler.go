package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/services"
)

// ProblemHandler serves problem navigation and publication.
type ProblemHandler struct {
	BaseHandler
	problemService services.ProblemService
}

func NewProblemHandler(problemService services.ProblemService, logger *slog.Logger) *ProblemHandler {
	return &ProblemHandler{
		BaseHandler:    NewBaseHandler(logger),
		problemService: problemService,
	}
}

// GetStatement handles GET /problems/:id/statement
func (h *ProblemHandler) GetStatement(c *gin.Context) {
	h.LogRequest(c, "get problem statement")

	problemID := h.parseIDParam(c, "id")
	if problemID == 0 {
		return
	}

	text, err := h.problemService.Statement(c.Request.Context(), problemID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: gin.H{"statement": text}})
}

// GetNext handles GET /problems/:id/next
func (h *ProblemHandler) GetNext(c *gin.Context) {
	h.LogRequest(c, "get next problem")

	problemID := h.parseIDParam(c, "id")
	if problemID == 0 {
		return
	}

	next, err := h.problemService.Next(c.Request.Context(), problemID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: next})
}

// ActivateProblemRequest carries the group a problem is published to.
type ActivateProblemRequest struct {
	Group models.GroupRef `json:"group"`
}

// Activate handles POST /problems/:id/activate
func (h *ProblemHandler) Activate(c *gin.Context) {
	h.LogRequest(c, "activate problem")

	problemID := h.parseIDParam(c, "id")
	if problemID == 0 {
		return
	}

	var req ActivateProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	text, err := h.problemService.Activate(c.Request.Context(), problemID, req.Group)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: gin.H{"statement": text}})
}
