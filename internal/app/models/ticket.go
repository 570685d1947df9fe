package models

import "time"

// TicketStatusPending is the status of a freshly submitted ticket
const TicketStatusPending = "Pending"

// SupportTicket is a query raised from the Support page ('support_tickets')
type SupportTicket struct {
	ID             int64     `json:"id" db:"id"`
	StudentID      int64     `json:"student_id" db:"student_id"`
	TicketNumber   string    `json:"ticket_number" db:"ticket_number"`
	Subject        string    `json:"subject" db:"subject"`
	Category       string    `json:"category" db:"category"`
	Message        string    `json:"message" db:"message"`
	AttachmentPath *string   `json:"attachment_path,omitempty" db:"attachment_path"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
