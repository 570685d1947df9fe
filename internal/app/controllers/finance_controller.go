package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentportal/internal/app/services"
	"github.com/yigit/studentportal/internal/app/web"
)

// FinanceController serves the finances page
type FinanceController struct {
	financeService *services.FinanceService
}

// NewFinanceController creates a new FinanceController
func NewFinanceController(financeService *services.FinanceService) *FinanceController {
	return &FinanceController{financeService: financeService}
}

// Page renders the finances tabs
func (c *FinanceController) Page(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, false)
	if !ok {
		return
	}
	view := c.financeService.GetFinances(ctx.Request.Context(), studentID, ctx.Query("tab"))
	page := newPage(ctx, "Financial Management", view)
	page.Tabs = web.FinanceTabs
	ctx.HTML(http.StatusOK, web.TemplateFinances, page)
}

// API returns the finances as JSON
func (c *FinanceController) API(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, true)
	if !ok {
		return
	}
	respond(ctx, http.StatusOK, c.financeService.GetFinances(ctx.Request.Context(), studentID, ctx.Query("tab")), "")
}
