package models

import "time"

// Application statuses
const (
	ApplicationStatusPending = "pending"
)

// ApplyStudent is an admission application stored in 'apply_students'.
// Created by the application form, reviewed by the backend.
type ApplyStudent struct {
	ID                    int64      `json:"id" db:"id"`
	FirstName             string     `json:"first_name" db:"first_name"`
	LastName              string     `json:"last_name" db:"last_name"`
	FatherName            string     `json:"father_name" db:"father_name"`
	MotherName            string     `json:"mother_name" db:"mother_name"`
	DateOfBirth           string     `json:"date_of_birth" db:"date_of_birth"` // YYYY-MM-DD as entered
	PhoneNumber           *string    `json:"phone_number" db:"phone_number"`
	Email                 *string    `json:"email" db:"email"`
	Address               *string    `json:"address" db:"address"`
	City                  *string    `json:"city" db:"city"`
	Country               *string    `json:"country" db:"country"`
	AadhaarNumber         *string    `json:"aadhaar_number" db:"aadhaar_number"`
	PassportNumber        *string    `json:"passport_number" db:"passport_number"`
	UniversityID          *int64     `json:"university_id" db:"university_id"`
	CourseID              *int64     `json:"course_id" db:"course_id"`
	AcademicSessionID     *int64     `json:"academic_session_id" db:"academic_session_id"`
	TwelfthMarks          *float64   `json:"twelfth_marks" db:"twelfth_marks"`
	SeatNumber            *string    `json:"seat_number" db:"seat_number"`
	Scores                *string    `json:"scores" db:"scores"`
	PhotoURL              *string    `json:"photo_url" db:"photo_url"`
	PassportCopyURL       *string    `json:"passport_copy_url" db:"passport_copy_url"`
	AadhaarCopyURL        *string    `json:"aadhaar_copy_url" db:"aadhaar_copy_url"`
	TwelfthCertificateURL *string    `json:"twelfth_certificate_url" db:"twelfth_certificate_url"`
	Status                string     `json:"status" db:"status"`
	ApplicationStatus     string     `json:"application_status" db:"application_status"`
	AdmissionNumber       *string    `json:"admission_number" db:"admission_number"`
	CreatedAt             *time.Time `json:"created_at" db:"created_at"`
}

// Student is a confirmed student record in 'students'; its ID is the portal-wide student_id
type Student struct {
	ID                int64      `json:"id" db:"id"`
	FirstName         string     `json:"first_name" db:"first_name"`
	LastName          string     `json:"last_name" db:"last_name"`
	FatherName        string     `json:"father_name" db:"father_name"`
	MotherName        string     `json:"mother_name" db:"mother_name"`
	DateOfBirth       *time.Time `json:"date_of_birth" db:"date_of_birth"`
	PhoneNumber       *string    `json:"phone_number" db:"phone_number"`
	Email             *string    `json:"email" db:"email"`
	Address           *string    `json:"address" db:"address"`
	City              *string    `json:"city" db:"city"`
	Country           *string    `json:"country" db:"country"`
	UniversityID      *int64     `json:"university_id" db:"university_id"`
	CourseID          *int64     `json:"course_id" db:"course_id"`
	AcademicSessionID *int64     `json:"academic_session_id" db:"academic_session_id"`
	Status            *string    `json:"status" db:"status"`
	AdmissionNumber   *string    `json:"admission_number" db:"admission_number"`
	UpdatedAt         *time.Time `json:"updated_at" db:"updated_at"`

	// Joined names, filled by the repository
	UniversityName string `json:"university_name,omitempty"`
	CourseName     string `json:"course_name,omitempty"`
}

// LoginRow is one row returned by the verify_student_login procedure
type LoginRow struct {
	StudentID       int64   `json:"student_id" db:"student_id"`
	Username        string  `json:"username" db:"username"`
	FirstName       string  `json:"first_name" db:"first_name"`
	LastName        string  `json:"last_name" db:"last_name"`
	Email           *string `json:"email" db:"email"`
	AdmissionNumber *string `json:"admission_number" db:"admission_number"`
}

// University is an entry of the 'universities' catalog
type University struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Course is an entry of the 'courses' catalog
type Course struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// AcademicSession is an intake session; only active ones are offered on the form
type AcademicSession struct {
	ID          int64  `json:"id" db:"id"`
	SessionName string `json:"session_name" db:"session_name"`
	IsActive    bool   `json:"is_active" db:"is_active"`
}
