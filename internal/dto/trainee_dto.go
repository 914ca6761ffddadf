package dto

import "time"

// TraineeListQuery filters the admin trainee roster.
type TraineeListQuery struct {
	Search string `query:"search"`
	Status string `query:"status" validate:"omitempty,oneof=active inactive suspended"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// AppointmentInfo summarizes the interview a trainee registered from.
type AppointmentInfo struct {
	ID            uint   `json:"id"`
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
	Status        string `json:"status"`
}

// TraineeView is one row of the admin trainee roster.
type TraineeView struct {
	ID              uint             `json:"id"`
	Username        string           `json:"username"`
	FullNameAmharic string           `json:"full_name_amharic"`
	FullNameEnglish string           `json:"full_name_english"`
	Gender          string           `json:"gender"`
	LocalChurch     string           `json:"local_church"`
	Phone           string           `json:"phone"`
	Status          string           `json:"status"`
	ProfileComplete bool             `json:"profile_complete"`
	Appointment     *AppointmentInfo `json:"appointment,omitempty"`
	SubmissionCount int64            `json:"submission_count"`
	PaymentCount    int64            `json:"payment_count"`
	RegisteredAt    time.Time        `json:"registered_at"`
}

// TraineeStatusRequest changes a trainee's account status.
type TraineeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive suspended"`
}

// AssignmentCreateRequest defines a new coursework assignment.
type AssignmentCreateRequest struct {
	Title       string    `json:"title" validate:"required,min=2,max=255"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

// GradeRequest grades one assignment submission.
type GradeRequest struct {
	Grade    float64 `json:"grade" validate:"gte=0,lte=100"`
	Feedback *string `json:"feedback"`
}

// PaymentStatusRequest changes the status of one payment record.
type PaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid overdue"`
}

// GeneratePaymentsRequest creates pending payment records for all active
// trainees for one month.
type GeneratePaymentsRequest struct {
	Month  string  `json:"month" validate:"required,len=7"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}
