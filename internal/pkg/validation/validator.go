package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// messages maps "field.tag" to the text shown next to the field
var messages = map[string]string{
	"first_name.required":          "First name is required",
	"last_name.required":           "Last name is required",
	"father_name.required":         "Father's name is required",
	"mother_name.required":         "Mother's name is required",
	"date_of_birth.required":       "Date of birth is required",
	"phone_number.required":        "Phone number is required",
	"email.required":               "Email is required",
	"email.portal_email":           "Please enter a valid email address",
	"address.required":             "Address is required",
	"city.required":                "City is required",
	"country.required":             "Country is required",
	"aadhaar_number.aadhaar":       "Aadhaar number must be 12 digits",
	"university_id.required":       "Please select a university",
	"university_id.numeric":        "Please select a university",
	"course_id.required":           "Please select a course",
	"course_id.numeric":            "Please select a course",
	"academic_session_id.required": "Please select an academic session",
	"academic_session_id.numeric":  "Please select an academic session",
	"twelfth_marks.required":       "12th grade marks are required",
	"twelfth_marks.marks":          "Marks must be between 0 and 100",
	"password.required":            "Password is required",
	"password.min":                 "Password must be at least 6 characters",
	"confirmPassword.required":     "Please confirm your password",
	"username.required":            "Username is required",
	"subject.required":             "Subject is required",
	"category.required":            "Please select a category",
	"category.oneof":               "Please select a category",
	"message.required":             "Message is required",
	"message.min":                  "Message should be at least 20 characters",
}

// Validator runs struct tag validation and returns per-field messages
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the portal's custom rules registered
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("portal_email", validEmail)
	_ = v.RegisterValidation("aadhaar", validAadhaar)
	_ = v.RegisterValidation("marks", validMarks)
	return &Validator{validate: v}
}

// Struct validates s and returns a field -> message map, nil when valid
func (v *Validator) Struct(s interface{}) map[string]string {
	if s == nil {
		return nil
	}
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = formatValidationError(fe)
	}
	return out
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	if msg, ok := messages[e.Field()+"."+e.Tag()]; ok {
		return msg
	}
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "numeric":
		return e.Field() + " must be a number"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
