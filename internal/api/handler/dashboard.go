package handler

import (
	"net/http"

	"fixitfast/backend/internal/api/middleware"
	"fixitfast/backend/internal/workflow"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns the per-owner complaint counters. Members may only
// read their own dashboard; administrators may read any.
func (h *Handler) GetDashboard(c *gin.Context) {
	ownerID := c.Param("owner")
	if !workflow.CanViewDashboard(middleware.CurrentSubject(c), middleware.CurrentRole(c), ownerID) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
		return
	}

	d, err := h.Dashboard.Get(ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, d)
}

// RecomputeDashboard rebuilds an owner's counters from the live complaints
// (administrator only). This is the on-demand repair path for drift.
func (h *Handler) RecomputeDashboard(c *gin.Context) {
	d, err := h.Dashboard.Recompute(c.Param("owner"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, d)
}
