// internal/handlers/dashboard/dashboard_handler.go
package dashboard

import (
	"net/http"

	"cctv-service/internal/pkg/response"
	service "cctv-service/internal/service/dashboard"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Overview returns the back-office landing page counters
func (h *DashboardHandler) Overview(c *gin.Context) {
	stats, err := h.dashboardService.Overview(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to load dashboard", err)
		return
	}

	response.Success(c, http.StatusOK, "dashboard retrieved", stats)
}
