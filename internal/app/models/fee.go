package models

import "time"

// FeeStatus is the settlement state of a fee instance
type FeeStatus string

const (
	FeeStatusPending FeeStatus = "pending"
	FeeStatusPartial FeeStatus = "partial"
	FeeStatusPaid    FeeStatus = "paid"
)

// FeePayment is one billable fee instance in 'fee_payments'
type FeePayment struct {
	ID              int64      `json:"id" db:"id"`
	StudentID       int64      `json:"student_id" db:"student_id"`
	Description     string     `json:"description" db:"description"`
	FeeType         string     `json:"fee_type" db:"fee_type"` // tuition, technology, library, ...
	AmountDue       float64    `json:"amount_due" db:"amount_due"`
	AmountPaid      float64    `json:"amount_paid" db:"amount_paid"`
	Status          FeeStatus  `json:"status" db:"status"`
	DueDate         *time.Time `json:"due_date" db:"due_date"`
	LastPaymentDate *time.Time `json:"last_payment_date" db:"last_payment_date"`
	PaymentMethod   *string    `json:"payment_method" db:"payment_method"`
}

// Outstanding returns the part of the fee that is still unpaid
func (f FeePayment) Outstanding() float64 {
	if f.AmountPaid >= f.AmountDue {
		return 0
	}
	return f.AmountDue - f.AmountPaid
}
