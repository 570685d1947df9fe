package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/services"
	"github.com/yigit/studentportal/internal/app/web"
	"github.com/yigit/studentportal/internal/middleware"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

// SupportController serves the support page and accepts queries
type SupportController struct {
	supportService *services.SupportService
	logger         zerolog.Logger
}

// NewSupportController creates a new SupportController
func NewSupportController(supportService *services.SupportService, logger zerolog.Logger) *SupportController {
	return &SupportController{
		supportService: supportService,
		logger:         logger,
	}
}

// Page renders the support tabs
func (c *SupportController) Page(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, false)
	if !ok {
		return
	}
	view := c.supportService.GetSupport(ctx.Request.Context(), studentID, ctx.Query("tab"))
	c.render(ctx, http.StatusOK, web.SupportData{SupportView: view})
}

// Submit creates a ticket from the multipart query form
func (c *SupportController) Submit(ctx *gin.Context) {
	user, studentID, ok := sessionStudent(ctx, false)
	if !ok {
		return
	}
	var req dto.TicketRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid support form payload")
	}

	attachment, err := optionalFile(ctx, "attachment")
	if err != nil {
		redirectWithFlash(ctx, "/support", FlashError, MsgTicketFailed)
		return
	}

	ticket, err := c.supportService.SubmitTicket(ctx.Request.Context(), user, &req, attachment)
	if err != nil {
		var formErr *services.FormError
		if errors.As(err, &formErr) {
			view := c.supportService.GetSupport(ctx.Request.Context(), studentID, "submit-query")
			c.render(ctx, http.StatusBadRequest, web.SupportData{SupportView: view, Form: req, Errors: formErr.Fields})
			return
		}
		redirectWithFlash(ctx, "/support", FlashError, MsgTicketFailed)
		return
	}

	redirectWithFlash(ctx, "/support", FlashOK, "Your query "+ticket.TicketNumber+" has been submitted.", "tab", "previous-tickets")
}

// API returns the support data as JSON
func (c *SupportController) API(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, true)
	if !ok {
		return
	}
	respond(ctx, http.StatusOK, c.supportService.GetSupport(ctx.Request.Context(), studentID, ctx.Query("tab")), "")
}

// SubmitAPI creates a ticket from a JSON or multipart body
func (c *SupportController) SubmitAPI(ctx *gin.Context) {
	user, _, ok := sessionStudent(ctx, true)
	if !ok {
		return
	}
	var req dto.TicketRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}
	attachment, err := optionalFile(ctx, "attachment")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid attachment"))
		return
	}

	ticket, err := c.supportService.SubmitTicket(ctx.Request.Context(), user, &req, attachment)
	if err != nil {
		var formErr *services.FormError
		if errors.As(err, &formErr) {
			middleware.HandleAPIError(ctx, validationError(formErr))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, ticket, "Ticket submitted")
}

func (c *SupportController) render(ctx *gin.Context, status int, data web.SupportData) {
	page := newPage(ctx, "Support", data)
	page.Tabs = web.SupportTabs
	ctx.HTML(status, web.TemplateSupport, page)
}

// optionalFile returns the uploaded file or nil when the field is absent
func optionalFile(ctx *gin.Context, field string) (*multipart.FileHeader, error) {
	file, err := ctx.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return file, err
}
