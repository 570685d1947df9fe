package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentportal/internal/app/services"
	"github.com/yigit/studentportal/internal/app/web"
)

// VisaController serves the visa and residency page
type VisaController struct {
	visaService *services.VisaService
}

// NewVisaController creates a new VisaController
func NewVisaController(visaService *services.VisaService) *VisaController {
	return &VisaController{visaService: visaService}
}

// Page renders the visa tabs
func (c *VisaController) Page(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, false)
	if !ok {
		return
	}
	view := c.visaService.GetVisa(ctx.Request.Context(), studentID, ctx.Query("tab"))
	page := newPage(ctx, "Visa & Residency", view)
	page.Tabs = web.VisaTabs
	ctx.HTML(http.StatusOK, web.TemplateVisa, page)
}

// API returns the visa data as JSON
func (c *VisaController) API(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, true)
	if !ok {
		return
	}
	respond(ctx, http.StatusOK, c.visaService.GetVisa(ctx.Request.Context(), studentID, ctx.Query("tab")), "")
}
