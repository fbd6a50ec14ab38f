package handlers

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/Yash913212/Multi-tenant-saas/internal/errors"
	"github.com/Yash913212/Multi-tenant-saas/internal/middleware"
	"github.com/Yash913212/Multi-tenant-saas/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns aggregate counts, global for super admins and tenant-scoped
// for everyone else.
func (h *DashboardHandler) Stats(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	stats, err := h.dashboardService.Stats(principal)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Dashboard stats retrieved", stats)
}
