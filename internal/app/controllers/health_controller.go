package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/web"
	"github.com/yigit/studentportal/internal/middleware"
)

// Backend names reported by the health endpoint
const (
	BackendPostgres = "postgres"
	BackendMock     = "mock"
)

// HealthController reports liveness and the active backend
type HealthController struct {
	backend string
}

// NewHealthController creates a new HealthController
func NewHealthController(backend string) *HealthController {
	return &HealthController{backend: backend}
}

// Health returns the service status
func (c *HealthController) Health(ctx *gin.Context) {
	respond(ctx, http.StatusOK, dto.HealthResponse{Status: "ok", Backend: c.backend}, "")
}

// NotFound answers unknown routes with the 404 page, or JSON under /api/
func NotFound(ctx *gin.Context) {
	if middleware.IsAPIRequest(ctx) {
		ctx.JSON(http.StatusNotFound, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found")))
		return
	}
	ctx.HTML(http.StatusNotFound, web.TemplateNotFound, newPage(ctx, "Page not found", nil))
}
