package dto

import "time"

// EssayRequest submits or replaces the student's application essay.
type EssayRequest struct {
	Essay string `json:"essay" validate:"required,min=10"`
}

// AssignmentView joins an assignment with the student's own submission
// state.
type AssignmentView struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	DueDate      time.Time  `json:"due_date"`
	Status       string     `json:"status"`
	SubmissionID *uint      `json:"submission_id,omitempty"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	Grade        *float64   `json:"grade,omitempty"`
	Feedback     *string    `json:"feedback,omitempty"`
	Overdue      bool       `json:"overdue"`
}

// Assignment submission states as seen by the student.
const (
	AssignmentStatusPending   = "pending"
	AssignmentStatusSubmitted = "submitted"
	AssignmentStatusGraded    = "graded"
)

// PaymentSubmitRequest records a monthly payment with its deposit slip.
// It arrives as multipart form data alongside the slip file.
type PaymentSubmitRequest struct {
	Month  string  `form:"month" validate:"required,len=7"`
	Amount float64 `form:"amount" validate:"required,gt=0"`
	Notes  string  `form:"notes"`
}
