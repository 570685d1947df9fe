package validation

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Email validation pattern used by the application form
	EmailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`

	// Aadhaar number pattern - 12 digits
	AadhaarPattern = `^\d{12}$`

	// PasswordMinLength for new applications
	PasswordMinLength = 6

	// Twelfth grade marks range
	MarksMin = 0.0
	MarksMax = 100.0
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email   *regexp.Regexp
	Aadhaar *regexp.Regexp
}{
	Email:   regexp.MustCompile(EmailPattern),
	Aadhaar: regexp.MustCompile(AadhaarPattern),
}

func validEmail(fl validator.FieldLevel) bool {
	return CompiledPatterns.Email.MatchString(fl.Field().String())
}

func validAadhaar(fl validator.FieldLevel) bool {
	return CompiledPatterns.Aadhaar.MatchString(fl.Field().String())
}

func validMarks(fl validator.FieldLevel) bool {
	v, err := strconv.ParseFloat(fl.Field().String(), 64)
	if err != nil {
		return false
	}
	return v >= MarksMin && v <= MarksMax
}
