package web

import (
	"strconv"

	"github.com/yigit/studentportal/internal/app/models/dto"
)

// Template names
const (
	TemplateLogin     = "login.html"
	TemplateRegister  = "register.html"
	TemplateDashboard = "dashboard.html"
	TemplateDocuments = "documents.html"
	TemplateFinances  = "finances.html"
	TemplateVisa      = "visa.html"
	TemplateProfile   = "profile.html"
	TemplateSupport   = "support.html"
	TemplateServices  = "services.html"
	TemplateNotFound  = "notfound.html"
)

// LoginData is the content of the sign in page
type LoginData struct {
	Username string
	Errors   map[string]string
}

// RegisterData is the content of the application form page
type RegisterData struct {
	Form    *dto.ApplicationForm
	Step    int
	Errors  map[string]string
	Options dto.RegisterOptions
}

// IsStep reports whether step is the one being shown
func (d RegisterData) IsStep(step int) bool {
	return d.Step == step
}

// IsLast reports whether the form is on its final step
func (d RegisterData) IsLast() bool {
	return d.Step == dto.LastStep
}

// SupportData is the support view plus the query form being edited
type SupportData struct {
	*dto.SupportView
	Form   dto.TicketRequest
	Errors map[string]string
}

// FinanceTabs are the headings of the finances page
var FinanceTabs = []Tab{
	{Key: "overview", Label: "Overview"},
	{Key: "history", Label: "Payment History"},
	{Key: "upcoming", Label: "Upcoming Payments"},
	{Key: "structure", Label: "Fee Structure"},
}

// VisaTabs are the headings of the visa page
var VisaTabs = []Tab{
	{Key: "overview", Label: "Overview"},
	{Key: "residency", Label: "Residency"},
	{Key: "deadlines", Label: "Deadlines"},
	{Key: "documents", Label: "Documents"},
}

// SupportTabs are the headings of the support page
var SupportTabs = []Tab{
	{Key: "submit-query", Label: "Submit Query"},
	{Key: "previous-tickets", Label: "Previous Tickets"},
	{Key: "faq", Label: "FAQ"},
}

// FormField is one input of the application form
type FormField struct {
	Name        string
	Label       string
	Type        string // text, email, date, tel, number, password or select
	Value       string
	Error       string
	Required    bool
	Placeholder string
	Options     []dto.OptionItem
}

// Selected reports whether option is the current value of a select
func (f FormField) Selected(option dto.OptionItem) bool {
	return f.Value != "" && f.Value == formatID(option.ID)
}

// Fields returns the inputs owned by step with their current values and errors
func (d RegisterData) Fields(step int) []FormField {
	f := d.Form
	if f == nil {
		f = &dto.ApplicationForm{}
	}

	var fields []FormField
	switch step {
	case dto.StepPersonal:
		fields = []FormField{
			{Name: "first_name", Label: "First Name", Type: "text", Value: f.FirstName, Required: true},
			{Name: "last_name", Label: "Last Name", Type: "text", Value: f.LastName, Required: true},
			{Name: "father_name", Label: "Father's Name", Type: "text", Value: f.FatherName, Required: true},
			{Name: "mother_name", Label: "Mother's Name", Type: "text", Value: f.MotherName, Required: true},
			{Name: "date_of_birth", Label: "Date of Birth", Type: "date", Value: f.DateOfBirth, Required: true},
			{Name: "phone_number", Label: "Phone Number", Type: "tel", Value: f.PhoneNumber, Required: true},
			{Name: "email", Label: "Email", Type: "email", Value: f.Email, Required: true},
		}
	case dto.StepAddress:
		fields = []FormField{
			{Name: "address", Label: "Address", Type: "text", Value: f.Address, Required: true},
			{Name: "city", Label: "City", Type: "text", Value: f.City, Required: true},
			{Name: "country", Label: "Country", Type: "text", Value: f.Country, Required: true},
			{Name: "aadhaar_number", Label: "Aadhaar Number", Type: "text", Value: f.AadhaarNumber, Placeholder: "12 digits"},
			{Name: "passport_number", Label: "Passport Number", Type: "text", Value: f.PassportNumber},
		}
	case dto.StepAcademic:
		fields = []FormField{
			{Name: "university_id", Label: "University", Type: "select", Value: f.UniversityID, Required: true, Options: d.Options.Universities},
			{Name: "course_id", Label: "Course", Type: "select", Value: f.CourseID, Required: true, Options: d.Options.Courses},
			{Name: "academic_session_id", Label: "Academic Session", Type: "select", Value: f.AcademicSessionID, Required: true, Options: d.Options.Sessions},
			{Name: "twelfth_marks", Label: "12th Grade Marks (%)", Type: "number", Value: f.TwelfthMarks, Required: true},
			{Name: "seat_number", Label: "Seat Number", Type: "text", Value: f.SeatNumber},
			{Name: "scores", Label: "Entrance Scores", Type: "text", Value: f.Scores},
		}
	case dto.StepAccount:
		fields = []FormField{
			{Name: "password", Label: "Password", Type: "password", Required: true},
			{Name: "confirmPassword", Label: "Confirm Password", Type: "password", Required: true},
		}
	}

	for i := range fields {
		fields[i].Error = d.Errors[fields[i].Name]
	}
	return fields
}

// CarriedFields returns the values of every other non-password step as hidden inputs
func (d RegisterData) CarriedFields() []FormField {
	var carried []FormField
	for step := dto.StepPersonal; step < dto.StepAccount; step++ {
		if step == d.Step {
			continue
		}
		carried = append(carried, d.Fields(step)...)
	}
	return carried
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
