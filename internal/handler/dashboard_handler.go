package handler

import (
	"github.com/gin-gonic/gin"

	"gstbill/internal/service"
)

// DashboardHandler serves the landing-page summary.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles GET /api/v1/dashboard
// @Summary Dashboard statistics
// @Description Invoice count, invoiced revenue and sales ledger totals
// @Tags dashboard
// @Produce json
// @Success 200 {object} APIResponse{data=domain.DashboardStats} "Dashboard statistics"
// @Router /dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
