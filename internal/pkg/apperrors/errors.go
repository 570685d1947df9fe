package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrBadRequest       = errors.New("bad request")
	ErrValidationFailed = errors.New("validation failed")
	ErrPermissionDenied = errors.New("permission denied")
)

// Session errors
var (
	ErrInvalidCredentials   = errors.New("Invalid username or password")
	ErrLoginFailed          = errors.New("Login failed")
	ErrSessionRequired      = errors.New("authentication required")
	ErrSessionInvalid       = errors.New("invalid session")
	ErrSessionExpired       = errors.New("session expired")
	ErrRegistrationDisabled = errors.New("Please use the application form to register")
)

// Application form errors
var (
	ErrPasswordMismatch     = errors.New("Passwords do not match")
	ErrApplicationNotSaved  = errors.New("Failed to submit application")
	ErrInvalidStudentID     = errors.New("invalid student ID")
	ErrStudentNotFound      = errors.New("student not found")
	ErrActiveRegistration   = errors.New("an active hostel registration already exists")
	ErrHostelNotFound       = errors.New("hostel not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrMockBackendReadOnly  = errors.New("mock backend does not accept this operation")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrTicketNotSubmitted   = errors.New("Failed to submit your query")
	ErrHostelNotSubmitted   = errors.New("Failed to submit application")
	ErrBackendNotConfigured = errors.New("Mock client - configure backend credentials")
)

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// NewResourceNotFoundError creates a custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewBadRequestError creates a custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewFieldError creates a validation error bound to a single form field
func NewFieldError(field, message string) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Code:    "field",
		Details: map[string]interface{}{field: message},
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// FieldErrors extracts per-field messages from a validation CustomError
func FieldErrors(err error) map[string]string {
	var ce *CustomError
	if !errors.As(err, &ce) || ce.Details == nil {
		return nil
	}
	out := make(map[string]string, len(ce.Details))
	for k, v := range ce.Details {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
