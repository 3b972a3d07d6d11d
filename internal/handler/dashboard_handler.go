package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-site/backend/internal/response"
	"github.com/portfolio-site/backend/internal/service"
)

// DashboardHandler serves the admin dashboard.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
// GET /api/v1/admin/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}
