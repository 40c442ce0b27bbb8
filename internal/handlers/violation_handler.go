package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quizrank/scoring-service/internal/repositories"
	"github.com/quizrank/scoring-service/internal/services"
)

type ViolationHandler struct {
	BaseHandler
	violationService services.ViolationService
}

func NewViolationHandler(violationService services.ViolationService, logger *slog.Logger) *ViolationHandler {
	return &ViolationHandler{
		BaseHandler:      NewBaseHandler(logger),
		violationService: violationService,
	}
}

// RecordViolation appends one violation to a participant's record. Scores
// are never touched here.
func (h *ViolationHandler) RecordViolation(c *gin.Context) {
	var req services.RecordViolationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Recording violation", "record_id", req.RecordID, "type_tag", req.TypeTag)

	violation, err := h.violationService.Record(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Data: violation})
}

// ListViolations returns a record's violation history, newest first.
func (h *ViolationHandler) ListViolations(c *gin.Context) {
	recordID := h.parseIDParam(c, "id")
	if recordID == 0 {
		return
	}

	filters := repositories.ViolationFilters{}
	if tag := c.Query("type_tag"); tag != "" {
		filters.TypeTag = &tag
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filters.Limit = limit
		}
	}

	violations, total, err := h.violationService.List(c.Request.Context(), recordID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  violations,
		"total": total,
	})
}
