package models

import "time"

// Hostel registration statuses
const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"

	HostelStatusActive = "Active"
)

// Hostel is an accommodation option in 'hostels'
type Hostel struct {
	ID               int64   `json:"id" db:"id"`
	Name             string  `json:"name" db:"name"`
	Location         string  `json:"location" db:"location"`
	Capacity         int     `json:"capacity" db:"capacity"`
	CurrentOccupancy int     `json:"current_occupancy" db:"current_occupancy"`
	MonthlyRent      float64 `json:"monthly_rent" db:"monthly_rent"`
	Facilities       string  `json:"facilities" db:"facilities"`
	Status           string  `json:"status" db:"status"`
}

// Available returns the number of free places
func (h Hostel) Available() int {
	if h.CurrentOccupancy >= h.Capacity {
		return 0
	}
	return h.Capacity - h.CurrentOccupancy
}

// HostelRegistration is a student's application in 'hostel_registrations'
type HostelRegistration struct {
	ID          int64      `json:"id" db:"id"`
	StudentID   int64      `json:"student_id" db:"student_id"`
	HostelID    int64      `json:"hostel_id" db:"hostel_id"`
	Status      string     `json:"status" db:"status"`
	RequestedBy string     `json:"requested_by" db:"requested_by"`
	RequestedAt time.Time  `json:"requested_at" db:"requested_at"`
	ApprovedAt  *time.Time `json:"approved_at" db:"approved_at"`
	ApprovedBy  *string    `json:"approved_by" db:"approved_by"`
	Notes       *string    `json:"notes" db:"notes"`
}
