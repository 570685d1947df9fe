// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/services"
	"github.com/yigit/studentportal/internal/app/web"
	"github.com/yigit/studentportal/internal/middleware"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/auth"
)

// Flash query parameters
const (
	FlashOK    = "ok"
	FlashError = "error"
)

// Flash messages
const (
	MsgApplicationSubmitted = "Application submitted successfully! You will receive an email notification once your application is reviewed."
	MsgSignedOut            = "You have been signed out."
	MsgSessionInvalid       = "Your session is no longer valid. Please sign in again."
	MsgHostelSubmitted      = "Application submitted successfully!"
	MsgHostelFailed         = "Failed to submit application. Please try again."
	MsgTicketFailed         = "Failed to submit your query. Please try again."
	MsgDocumentsFailed      = "Failed to fetch documents"
	MsgDownloadFailed       = "Failed to download document"
)

// newPage builds the template data for the current request
func newPage(ctx *gin.Context, title string, data interface{}) web.Page {
	user, _ := middleware.CurrentUser(ctx)
	return web.Page{
		Title:   title,
		Path:    ctx.Request.URL.Path,
		User:    user,
		Success: ctx.Query(FlashOK),
		Error:   ctx.Query(FlashError),
		Data:    data,
	}
}

// redirectWithFlash redirects to path carrying a flash message
func redirectWithFlash(ctx *gin.Context, path, key, message string, extra ...string) {
	values := url.Values{}
	values.Set(key, message)
	for i := 0; i+1 < len(extra); i += 2 {
		values.Set(extra[i], extra[i+1])
	}
	ctx.Redirect(http.StatusFound, path+"?"+values.Encode())
}

// sessionStudent returns the session user and the numeric student id.
// On failure it has already answered the request.
func sessionStudent(ctx *gin.Context, api bool) (*auth.User, int64, bool) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		if api {
			middleware.HandleAPIError(ctx, auth.ErrInvalidSession)
		} else {
			ctx.Redirect(http.StatusFound, "/login")
		}
		return nil, 0, false
	}
	id, err := services.StudentID(user)
	if err != nil {
		if api {
			middleware.HandleAPIError(ctx, err)
		} else {
			middleware.EndSession(ctx)
			redirectWithFlash(ctx, "/login", FlashError, MsgSessionInvalid)
		}
		return nil, 0, false
	}
	return user, id, true
}

// respond writes a successful JSON envelope
func respond(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, dto.NewSuccessResponse(data, message))
}

// validationError converts form field errors to the JSON validation error
func validationError(formErr *services.FormError) error {
	fields := make(map[string]interface{}, len(formErr.Fields))
	for k, v := range formErr.Fields {
		fields[k] = v
	}
	return (&apperrors.CustomError{Err: apperrors.ErrValidationFailed, Message: "Validation failed"}).WithDetails(fields)
}
