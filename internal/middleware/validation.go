package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

// Bind decodes a form or JSON body into obj and turns binding tag failures
// into a validation error carrying per-field messages
func Bind(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBind(obj); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return apperrors.NewBadRequestError("Invalid request format")
		}
		details := make(map[string]interface{}, len(verrs))
		for _, e := range verrs {
			details[e.Field()] = formatValidationError(e)
		}
		return (&apperrors.CustomError{Err: apperrors.ErrValidationFailed, Message: "Validation failed"}).WithDetails(details)
	}
	return nil
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
