package models

import "time"

// Submission is an applicant's initial audition application. One row per
// applicant; the phone is stored exactly as submitted, in whatever format
// the applicant used.
type Submission struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Name             string     `gorm:"size:255;not null" json:"name"`
	Phone            string     `gorm:"size:32;not null" json:"phone"`
	Church           string     `gorm:"size:255" json:"church"`
	Address          string     `gorm:"size:512" json:"address"`
	TelegramUsername string     `gorm:"size:255" json:"telegram_username"`
	AudioPath        string     `gorm:"size:512" json:"audio_path"`
	Status           string     `gorm:"size:32;not null;default:pending" json:"status"`
	ReviewerComments *string    `gorm:"type:text" json:"reviewer_comments"`
	ReviewedBy       *string    `gorm:"size:255" json:"reviewed_by"`
	ReviewedAt       *time.Time `json:"reviewed_at"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

const (
	// SubmissionStatusPending indicates the submission has not been reviewed yet.
	SubmissionStatusPending = "pending"
	// SubmissionStatusApproved indicates a reviewer approved the submission.
	SubmissionStatusApproved = "approved"
	// SubmissionStatusRejected indicates a reviewer rejected the submission.
	SubmissionStatusRejected = "rejected"
)

// IsApproved reports whether the submission passed review.
func (s Submission) IsApproved() bool {
	return s.Status == SubmissionStatusApproved
}
