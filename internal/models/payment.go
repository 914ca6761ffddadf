package models

import "time"

// Payment is a monthly fee record for a student. One row per
// (student, month); month uses the YYYY-MM format.
type Payment struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	StudentID       uint       `gorm:"not null;uniqueIndex:idx_payment_student_month" json:"student_id"`
	Month           string     `gorm:"size:8;not null;uniqueIndex:idx_payment_student_month" json:"month"`
	Amount          float64    `gorm:"not null" json:"amount"`
	Status          string     `gorm:"size:16;not null;default:pending" json:"status"`
	Notes           string     `gorm:"type:text" json:"notes"`
	DepositSlipPath string     `gorm:"size:512" json:"deposit_slip_path"`
	PaidAt          *time.Time `json:"paid_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Student         Student    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)
