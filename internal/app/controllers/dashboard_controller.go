package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentportal/internal/app/services"
	"github.com/yigit/studentportal/internal/app/web"
	"github.com/yigit/studentportal/internal/middleware"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

// DashboardController serves the overview page
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Page renders the dashboard
func (c *DashboardController) Page(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}
	view := c.dashboardService.GetDashboard(ctx.Request.Context(), user)
	ctx.HTML(http.StatusOK, web.TemplateDashboard, newPage(ctx, "Dashboard", view))
}

// API returns the dashboard as JSON
func (c *DashboardController) API(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrSessionRequired)
		return
	}
	respond(ctx, http.StatusOK, c.dashboardService.GetDashboard(ctx.Request.Context(), user), "")
}
