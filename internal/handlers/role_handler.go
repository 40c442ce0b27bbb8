package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizrank/scoring-service/internal/services"
)

type RoleHandler struct {
	BaseHandler
	roleService services.RoleService
}

func NewRoleHandler(roleService services.RoleService, logger *slog.Logger) *RoleHandler {
	return &RoleHandler{
		BaseHandler: NewBaseHandler(logger),
		roleService: roleService,
	}
}

// RecalculateRoles reruns role resolution for one record. Promotion only;
// an earned role is never taken away here.
func (h *RoleHandler) RecalculateRoles(c *gin.Context) {
	recordID := h.parseIDParam(c, "id")
	if recordID == 0 {
		return
	}

	h.LogRequest(c, "Recalculating roles", "record_id", recordID)

	role, err := h.roleService.Recalculate(c.Request.Context(), recordID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: role})
}

// GetHighestRole returns the record's current highest-priority role.
func (h *RoleHandler) GetHighestRole(c *gin.Context) {
	recordID := h.parseIDParam(c, "id")
	if recordID == 0 {
		return
	}

	role, err := h.roleService.HighestRole(c.Request.Context(), recordID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: role})
}
