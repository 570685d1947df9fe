package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/services"
	"github.com/yigit/studentportal/internal/app/web"
	"github.com/yigit/studentportal/internal/middleware"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

// Wizard actions
const (
	ActionNext   = "next"
	ActionBack   = "back"
	ActionSubmit = "submit"
)

// ApplicationController handles the four step admission form
type ApplicationController struct {
	applicationService *services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		logger:             logger,
	}
}

// RegisterPage renders the first step of the form
func (c *ApplicationController) RegisterPage(ctx *gin.Context) {
	c.render(ctx, http.StatusOK, &dto.ApplicationForm{}, dto.StepPersonal, nil, "")
}

// RegisterStep moves between steps and submits on the last one
func (c *ApplicationController) RegisterStep(ctx *gin.Context) {
	form := &dto.ApplicationForm{}
	if err := ctx.ShouldBind(form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid application form payload")
	}
	step := dto.ClampStep(form.Step)

	switch form.Action {
	case ActionBack:
		c.render(ctx, http.StatusOK, form, dto.ClampStep(step-1), nil, "")
		return
	case ActionSubmit:
		if step == dto.LastStep {
			c.submit(ctx, form)
			return
		}
	}

	if errs := c.applicationService.ValidateStep(form, step); errs != nil {
		c.render(ctx, http.StatusBadRequest, form, step, errs, "")
		return
	}
	c.render(ctx, http.StatusOK, form, dto.ClampStep(step+1), nil, "")
}

func (c *ApplicationController) submit(ctx *gin.Context, form *dto.ApplicationForm) {
	_, err := c.applicationService.Submit(ctx.Request.Context(), form)
	if err == nil {
		redirectWithFlash(ctx, "/login", FlashOK, MsgApplicationSubmitted)
		return
	}

	var formErr *services.FormError
	switch {
	case errors.As(err, &formErr):
		c.render(ctx, http.StatusBadRequest, form, dto.ClampStep(formErr.Step), formErr.Fields, "")
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.render(ctx, http.StatusBadRequest, form, dto.LastStep, apperrors.FieldErrors(err), "")
	default:
		c.render(ctx, http.StatusInternalServerError, form, dto.LastStep, nil, submitMessage(err))
	}
}

func (c *ApplicationController) render(ctx *gin.Context, status int, form *dto.ApplicationForm, step int, errs map[string]string, banner string) {
	form.Step = step
	data := web.RegisterData{
		Form:    form,
		Step:    step,
		Errors:  errs,
		Options: c.applicationService.Options(ctx.Request.Context()),
	}
	page := newPage(ctx, "Apply for Admission", data)
	if banner != "" {
		page.Error = banner
	}
	ctx.HTML(status, web.TemplateRegister, page)
}

// OptionsAPI returns the dropdown catalogs
func (c *ApplicationController) OptionsAPI(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.applicationService.Options(ctx.Request.Context()), "")
}

// SubmitAPI validates and stores a complete application sent as JSON
func (c *ApplicationController) SubmitAPI(ctx *gin.Context) {
	form := &dto.ApplicationForm{}
	if err := ctx.ShouldBindJSON(form); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request format"))
		return
	}

	id, err := c.applicationService.Submit(ctx.Request.Context(), form)
	if err != nil {
		var formErr *services.FormError
		if errors.As(err, &formErr) {
			err = validationError(formErr)
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, gin.H{"id": id}, MsgApplicationSubmitted)
}

// submitMessage returns the raw backend message, or the generic one
func submitMessage(err error) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return apperrors.ErrApplicationNotSaved.Error()
}
