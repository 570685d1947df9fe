package memory

import (
	"time"

	"github.com/yigit/studentportal/internal/app/models"
)

// Demo credential of the development data set
const (
	DemoUsername  = "demo"
	DemoPassword  = "demo1234"
	DemoStudentID = 1
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func strPtr(s string) *string { return &s }

// NewMockStore creates the development data set: one demo student with its
// visa, residency, deadlines and visa document list. Other tables start empty.
func NewMockStore() (*Store, error) {
	s := NewStore()
	s.rejectUnknownLogins = true

	s.AddStudent(&models.Student{
		ID:              DemoStudentID,
		FirstName:       "Demo",
		LastName:        "Student",
		Email:           strPtr("demo.student@example.edu"),
		AdmissionNumber: strPtr("ADM-2024-0001"),
		Status:          strPtr("Active"),
	})
	if err := s.AddCredential(DemoUsername, DemoPassword, DemoStudentID); err != nil {
		return nil, err
	}

	s.SetVisa(&models.VisaRecord{
		ID:                    1,
		StudentID:             DemoStudentID,
		VisaType:              "F-1 Student Visa",
		VisaStatus:            "Approved",
		VisaNumber:            "F1234567890",
		IssueDate:             datePtr("2024-06-15"),
		ExpirationDate:        datePtr("2026-06-15"),
		EntryType:             strPtr("Multiple Entry"),
		ApplicationDate:       datePtr("2024-03-01"),
		InterviewDate:         datePtr("2024-05-15"),
		ApprovalDate:          datePtr("2024-06-01"),
		ApplicationSubmitted:  true,
		VisaInterview:         true,
		VisaApproved:          true,
		ResidencyRegistration: false,
	})

	s.SetResidency(&models.ResidencyRecord{
		ID:                   1,
		StudentID:            DemoStudentID,
		RegistrationStatus:   models.ResidencyPending,
		RegistrationDeadline: datePtr("2025-09-15"),
		CurrentAddress:       strPtr("123 University Ave, College Town, ST 12345"),
	})

	s.AddDeadline(&models.VisaDeadline{
		ID:           1,
		StudentID:    DemoStudentID,
		Title:        "Complete Residency Registration",
		Description:  strPtr("Register with local authorities within 30 days of arrival"),
		DueDate:      date("2025-09-15"),
		DeadlineType: "mandatory",
	})
	s.AddDeadline(&models.VisaDeadline{
		ID:           2,
		StudentID:    DemoStudentID,
		Title:        "Visa Renewal Application",
		Description:  strPtr("Submit visa renewal application 90 days before expiration"),
		DueDate:      date("2026-03-15"),
		DeadlineType: "important",
	})

	s.AddVisaDocument(&models.VisaDocument{ID: 1, StudentID: DemoStudentID, DocumentName: "Visa Approval Letter", IsAvailable: true, DocumentURL: strPtr("#")})
	s.AddVisaDocument(&models.VisaDocument{ID: 2, StudentID: DemoStudentID, DocumentName: "I-20 Form", IsAvailable: true, DocumentURL: strPtr("#")})
	s.AddVisaDocument(&models.VisaDocument{ID: 3, StudentID: DemoStudentID, DocumentName: "Residency Registration Certificate", IsAvailable: false})

	s.nextID = 100
	return s, nil
}
