package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/rentdesk/backend/internal/application/report"
)

// DashboardHandler serves the landlord dashboard
type DashboardHandler struct {
	BaseHandler
	dashboard *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary returns occupancy and revenue figures, served from cache when warm.
// ?refresh=true bypasses the cache.
func (h *DashboardHandler) Summary(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	load := h.dashboard.Summary
	if c.Query("refresh") == "true" {
		load = h.dashboard.Compute
	}

	summary, err := load(ctx, businessID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
