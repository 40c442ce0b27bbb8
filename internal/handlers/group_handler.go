package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/services"
)

type GroupHandler struct {
	BaseHandler
	scoreService  services.ScoreService
	exportService services.ExportService
}

func NewGroupHandler(scoreService services.ScoreService, exportService services.ExportService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{
		BaseHandler:   NewBaseHandler(logger),
		scoreService:  scoreService,
		exportService: exportService,
	}
}

// GetPositions returns the group's dense ranking: record id to position,
// ties sharing a rank.
func (h *GroupHandler) GetPositions(c *gin.Context) {
	groupID := h.parseIDParam(c, "id")
	if groupID == 0 {
		return
	}

	h.LogRequest(c, "Getting group positions", "group_id", groupID)

	positions, err := h.scoreService.Positions(c.Request.Context(), models.GroupByID(groupID))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: positions})
}

// ExportStandings streams the group standings as an xlsx download.
func (h *GroupHandler) ExportStandings(c *gin.Context) {
	groupID := h.parseIDParam(c, "id")
	if groupID == 0 {
		return
	}

	h.LogRequest(c, "Exporting group standings", "group_id", groupID)

	file, err := h.exportService.ExportStandings(c.Request.Context(), models.GroupByID(groupID))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("standings_group_%d.xlsx", groupID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		h.logger.Error("Failed to write export", "error", err, "group_id", groupID)
	}
}
