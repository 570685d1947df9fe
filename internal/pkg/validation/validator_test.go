package validation

import (
	"testing"

	"github.com/yigit/studentportal/internal/app/models/dto"
)

func validForm() dto.ApplicationForm {
	return dto.ApplicationForm{
		PersonalStep: dto.PersonalStep{
			FirstName:   "Priya",
			LastName:    "Verma",
			FatherName:  "Anil Verma",
			MotherName:  "Sunita Verma",
			DateOfBirth: "2004-05-17",
			PhoneNumber: "+91 98765 43210",
			Email:       "priya.verma@example.in",
		},
		AddressStep: dto.AddressStep{
			Address: "12 MG Road",
			City:    "Pune",
			Country: "India",
		},
		AcademicStep: dto.AcademicStep{
			UniversityID:      "1",
			CourseID:          "2",
			AcademicSessionID: "3",
			TwelfthMarks:      "88.5",
		},
		AccountStep: dto.AccountStep{
			Password:        "secret1",
			ConfirmPassword: "secret1",
		},
	}
}

func TestStepsOfValidForm(t *testing.T) {
	v := New()
	form := validForm()
	for step := dto.StepPersonal; step <= dto.LastStep; step++ {
		if errs := v.Struct(form.StepFields(step)); errs != nil {
			t.Errorf("step %d: unexpected errors %v", step, errs)
		}
	}
}

func TestStepValidatesOnlyItsFields(t *testing.T) {
	v := New()
	form := dto.ApplicationForm{}
	form.PersonalStep = validForm().PersonalStep

	if errs := v.Struct(form.StepFields(dto.StepPersonal)); errs != nil {
		t.Fatalf("personal step should pass with later steps empty, got %v", errs)
	}
	errs := v.Struct(form.StepFields(dto.StepAddress))
	if errs["address"] != "Address is required" {
		t.Errorf("address error = %q", errs["address"])
	}
	if _, ok := errs["first_name"]; ok {
		t.Error("address step must not report personal fields")
	}
}

func TestFieldRules(t *testing.T) {
	v := New()
	tests := []struct {
		name  string
		step  int
		edit  func(f *dto.ApplicationForm)
		field string
		want  string
	}{
		{"bad email", dto.StepPersonal, func(f *dto.ApplicationForm) { f.Email = "priya@example" }, "email", "Please enter a valid email address"},
		{"missing phone", dto.StepPersonal, func(f *dto.ApplicationForm) { f.PhoneNumber = "" }, "phone_number", "Phone number is required"},
		{"short aadhaar", dto.StepAddress, func(f *dto.ApplicationForm) { f.AadhaarNumber = "12345" }, "aadhaar_number", "Aadhaar number must be 12 digits"},
		{"marks too high", dto.StepAcademic, func(f *dto.ApplicationForm) { f.TwelfthMarks = "100.5" }, "twelfth_marks", "Marks must be between 0 and 100"},
		{"negative marks", dto.StepAcademic, func(f *dto.ApplicationForm) { f.TwelfthMarks = "-1" }, "twelfth_marks", "Marks must be between 0 and 100"},
		{"no course", dto.StepAcademic, func(f *dto.ApplicationForm) { f.CourseID = "" }, "course_id", "Please select a course"},
		{"short password", dto.StepAccount, func(f *dto.ApplicationForm) { f.Password = "12345" }, "password", "Password must be at least 6 characters"},
		{"no confirmation", dto.StepAccount, func(f *dto.ApplicationForm) { f.ConfirmPassword = "" }, "confirmPassword", "Please confirm your password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.edit(&form)
			errs := v.Struct(form.StepFields(tt.step))
			if errs[tt.field] != tt.want {
				t.Errorf("errs[%q] = %q, want %q (all: %v)", tt.field, errs[tt.field], tt.want, errs)
			}
		})
	}
}

func TestOptionalAadhaar(t *testing.T) {
	form := validForm()
	form.AadhaarNumber = "123456789012"
	if errs := New().Struct(form.StepFields(dto.StepAddress)); errs != nil {
		t.Fatalf("12 digit aadhaar should pass, got %v", errs)
	}
}
