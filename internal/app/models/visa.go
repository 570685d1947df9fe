package models

import "time"

// Residency statuses used by the badge mapping
const (
	ResidencyRegistered = "Registered"
	ResidencyPending    = "Pending Registration"
)

// VisaRecord is the per-student visa lifecycle snapshot in 'student_visa'
type VisaRecord struct {
	ID                    int64      `json:"id" db:"id"`
	StudentID             int64      `json:"student_id" db:"student_id"`
	VisaType              string     `json:"visa_type" db:"visa_type"`
	VisaStatus            string     `json:"visa_status" db:"visa_status"`
	VisaNumber            string     `json:"visa_number" db:"visa_number"`
	IssueDate             *time.Time `json:"issue_date" db:"issue_date"`
	ExpirationDate        *time.Time `json:"expiration_date" db:"expiration_date"`
	EntryType             *string    `json:"entry_type" db:"entry_type"`
	ApplicationDate       *time.Time `json:"application_date" db:"application_date"`
	InterviewDate         *time.Time `json:"interview_date" db:"interview_date"`
	ApprovalDate          *time.Time `json:"approval_date" db:"approval_date"`
	ApplicationSubmitted  bool       `json:"application_submitted" db:"application_submitted"`
	VisaInterview         bool       `json:"visa_interview" db:"visa_interview"`
	VisaApproved          bool       `json:"visa_approved" db:"visa_approved"`
	ResidencyRegistration bool       `json:"residency_registration" db:"residency_registration"`
}

// ResidencyRecord is the per-student local registration in 'student_residency'
type ResidencyRecord struct {
	ID                   int64      `json:"id" db:"id"`
	StudentID            int64      `json:"student_id" db:"student_id"`
	RegistrationStatus   string     `json:"registration_status" db:"registration_status"`
	RegistrationDeadline *time.Time `json:"registration_deadline" db:"registration_deadline"`
	CurrentAddress       *string    `json:"current_address" db:"current_address"`
	LocalIDNumber        *string    `json:"local_id_number" db:"local_id_number"`
	RegistrationDate     *time.Time `json:"registration_date" db:"registration_date"`
}

// VisaDeadline is a deadline entry in 'visa_deadlines'
type VisaDeadline struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"student_id" db:"student_id"`
	Title        string    `json:"title" db:"title"`
	Description  *string   `json:"description" db:"description"`
	DueDate      time.Time `json:"due_date" db:"due_date"`
	DeadlineType string    `json:"deadline_type" db:"deadline_type"` // mandatory, important, ...
	IsCompleted  bool      `json:"is_completed" db:"is_completed"`
}

// VisaDocument is a document availability flag in 'visa_documents'
type VisaDocument struct {
	ID           int64   `json:"id" db:"id"`
	StudentID    int64   `json:"student_id" db:"student_id"`
	DocumentName string  `json:"document_name" db:"document_name"`
	IsAvailable  bool    `json:"is_available" db:"is_available"`
	DocumentURL  *string `json:"document_url" db:"document_url"`
}
