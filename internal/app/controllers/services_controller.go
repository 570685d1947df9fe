package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/services"
	"github.com/yigit/studentportal/internal/app/web"
	"github.com/yigit/studentportal/internal/middleware"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

// ServicesController serves the hostel accommodation page
type ServicesController struct {
	hostelService *services.HostelService
	logger        zerolog.Logger
}

// NewServicesController creates a new ServicesController
func NewServicesController(hostelService *services.HostelService, logger zerolog.Logger) *ServicesController {
	return &ServicesController{hostelService: hostelService, logger: logger}
}

// Page renders the hostels and the current registration
func (c *ServicesController) Page(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, false)
	if !ok {
		return
	}
	view := c.hostelService.GetServices(ctx.Request.Context(), studentID)
	ctx.HTML(http.StatusOK, web.TemplateServices, newPage(ctx, "Services", view))
}

// Apply submits a hostel application from the page form
func (c *ServicesController) Apply(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, false)
	if !ok {
		return
	}
	var req dto.HostelApplicationRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		redirectWithFlash(ctx, "/services", FlashError, "Please select a hostel")
		return
	}
	if _, err := c.hostelService.Apply(ctx.Request.Context(), studentID, &req); err != nil {
		message := MsgHostelFailed
		if apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrResourceNotFound) {
			message = err.Error()
		}
		redirectWithFlash(ctx, "/services", FlashError, message)
		return
	}
	redirectWithFlash(ctx, "/services", FlashOK, MsgHostelSubmitted)
}

// API returns the services data as JSON
func (c *ServicesController) API(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, true)
	if !ok {
		return
	}
	respond(ctx, http.StatusOK, c.hostelService.GetServices(ctx.Request.Context(), studentID), "")
}

// ApplyAPI submits a hostel application sent as JSON
func (c *ServicesController) ApplyAPI(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, true)
	if !ok {
		return
	}
	var req dto.HostelApplicationRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	id, err := c.hostelService.Apply(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, gin.H{"id": id}, MsgHostelSubmitted)
}
