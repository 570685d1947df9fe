package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/auth"
	"github.com/yigit/studentportal/internal/pkg/logger"
)

// HandleAPIError maps service errors onto JSON responses
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	message := ""
	if errors.As(err, &customErr) {
		message = customErr.Message
	}
	orDefault := func(fallback string) string {
		if message != "" {
			return message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, orDefault("Validation failed"))
		if fields := apperrors.FieldErrors(err); len(fields) > 0 {
			errorDetail = errorDetail.WithDetails(fields)
			if len(fields) == 1 {
				for field := range fields {
					errorDetail = errorDetail.WithField(field)
				}
			}
		}
		c.JSON(http.StatusBadRequest, dto.NewFailureResponse(errorDetail))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, apperrors.ErrInvalidCredentials.Error())))
	case errors.Is(err, apperrors.ErrLoginFailed):
		c.JSON(http.StatusUnauthorized, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, orDefault(apperrors.ErrLoginFailed.Error()))))
	case errors.Is(err, apperrors.ErrSessionRequired), errors.Is(err, auth.ErrInvalidSession):
		c.JSON(http.StatusUnauthorized, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidSession, "Invalid session")))
	case errors.Is(err, auth.ErrExpiredSession):
		c.JSON(http.StatusUnauthorized, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredSession, "Session has expired")))
	case errors.Is(err, apperrors.ErrRegistrationDisabled):
		c.JSON(http.StatusForbidden, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeRegistration, apperrors.ErrRegistrationDisabled.Error())))
	case errors.Is(err, apperrors.ErrResourceNotFound), errors.Is(err, apperrors.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, orDefault("Resource not found"))))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, orDefault("Conflict"))))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, orDefault("Bad request"))))
	case errors.Is(err, apperrors.ErrApplicationNotSaved):
		c.JSON(http.StatusInternalServerError, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeDatabaseError, orDefault(apperrors.ErrApplicationNotSaved.Error()))))
	case errors.Is(err, apperrors.ErrHostelNotSubmitted):
		c.JSON(http.StatusInternalServerError, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Failed to submit application. Please try again.")))
	case errors.Is(err, apperrors.ErrTicketNotSubmitted):
		c.JSON(http.StatusInternalServerError, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Failed to submit your query. Please try again.")))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
