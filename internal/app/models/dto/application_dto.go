package dto

// Wizard steps
const (
	StepPersonal = 1
	StepAddress  = 2
	StepAcademic = 3
	StepAccount  = 4

	LastStep = StepAccount
)

// PersonalStep holds the first wizard step
type PersonalStep struct {
	FirstName   string `json:"first_name" form:"first_name" validate:"required"`
	LastName    string `json:"last_name" form:"last_name" validate:"required"`
	FatherName  string `json:"father_name" form:"father_name" validate:"required"`
	MotherName  string `json:"mother_name" form:"mother_name" validate:"required"`
	DateOfBirth string `json:"date_of_birth" form:"date_of_birth" validate:"required"`
	PhoneNumber string `json:"phone_number" form:"phone_number" validate:"required"`
	Email       string `json:"email" form:"email" validate:"required,portal_email"`
}

// AddressStep holds the address and identity documents step
type AddressStep struct {
	Address        string `json:"address" form:"address" validate:"required"`
	City           string `json:"city" form:"city" validate:"required"`
	Country        string `json:"country" form:"country" validate:"required"`
	AadhaarNumber  string `json:"aadhaar_number" form:"aadhaar_number" validate:"omitempty,aadhaar"`
	PassportNumber string `json:"passport_number" form:"passport_number"`
}

// AcademicStep holds the program selection step
type AcademicStep struct {
	UniversityID      string `json:"university_id" form:"university_id" validate:"required,numeric"`
	CourseID          string `json:"course_id" form:"course_id" validate:"required,numeric"`
	AcademicSessionID string `json:"academic_session_id" form:"academic_session_id" validate:"required,numeric"`
	TwelfthMarks      string `json:"twelfth_marks" form:"twelfth_marks" validate:"required,marks"`
	SeatNumber        string `json:"seat_number" form:"seat_number"`
	Scores            string `json:"scores" form:"scores"`
}

// AccountStep holds the password step
type AccountStep struct {
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required"`
}

// ApplicationForm is the single form object carried through all wizard steps
type ApplicationForm struct {
	PersonalStep
	AddressStep
	AcademicStep
	AccountStep

	Step   int    `json:"step" form:"step"`
	Action string `json:"-" form:"action"` // next, back or submit
}

// StepFields returns the part of the form validated at step
func (f *ApplicationForm) StepFields(step int) interface{} {
	switch step {
	case StepPersonal:
		return &f.PersonalStep
	case StepAddress:
		return &f.AddressStep
	case StepAcademic:
		return &f.AcademicStep
	case StepAccount:
		return &f.AccountStep
	default:
		return nil
	}
}

// ClampStep keeps step within the wizard range
func ClampStep(step int) int {
	if step < StepPersonal {
		return StepPersonal
	}
	if step > LastStep {
		return LastStep
	}
	return step
}

// RegisterOptions is the dropdown data of the application form
type RegisterOptions struct {
	Universities []OptionItem `json:"universities"`
	Courses      []OptionItem `json:"courses"`
	Sessions     []OptionItem `json:"sessions"`
}

// OptionItem is one dropdown entry
type OptionItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
