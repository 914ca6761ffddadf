package dto

import "time"

// StatusRequest looks up an applicant's lifecycle status by phone.
type StatusRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// StatusView is the full lifecycle picture for one applicant phone, built
// from their submission and appointment history. When IsApplicant is
// false only Message is populated.
type StatusView struct {
	IsApplicant      bool       `json:"is_applicant"`
	Message          string     `json:"message,omitempty"`
	ApplicantName    string     `json:"applicant_name,omitempty"`
	SubmissionStatus *string    `json:"submission_status"`
	FinalDecision    *string    `json:"final_decision"`
	OverallStatus    string     `json:"overall_status,omitempty"`
	StatusMessage    string     `json:"status_message,omitempty"`
	DecisionMadeAt   *time.Time `json:"decision_made_at"`
	AppointmentDate  *string    `json:"appointment_date"`
	AppointmentTime  *string    `json:"appointment_time"`
	SubmittedAt      *time.Time `json:"submitted_at"`
	ReviewerComments *string    `json:"reviewer_comments"`
}

// Overall lifecycle statuses reported by StatusView.
const (
	OverallStatusPending  = "pending"
	OverallStatusApproved = "approved"
	OverallStatusAccepted = "accepted"
	OverallStatusRejected = "rejected"
)

// EligibilityRequest checks whether a phone may register a student account.
type EligibilityRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// EligibilityView is the outcome of a registration eligibility check.
type EligibilityView struct {
	Eligible        bool             `json:"eligible"`
	Message         string           `json:"message"`
	CanLogin        bool             `json:"can_login"`
	Code            string           `json:"code,omitempty"`
	AppointmentInfo *AppointmentSlot `json:"appointment_info,omitempty"`
}

// AppointmentSlot names the date and time of an accepted interview.
type AppointmentSlot struct {
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
}

// RegisterRequest creates a student account against an accepted interview.
// Field length rules are enforced in the service so each violation can
// return its original message.
type RegisterRequest struct {
	FullNameAmharic string `json:"full_name_amharic" validate:"required"`
	FullNameEnglish string `json:"full_name_english" validate:"required"`
	Gender          string `json:"gender" validate:"required"`
	LocalChurch     string `json:"local_church" validate:"required"`
	Address         string `json:"address" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// RegisteredStudent is returned after a successful registration.
type RegisteredStudent struct {
	Token   string         `json:"token"`
	Role    string         `json:"role"`
	Student StudentProfile `json:"student"`
}
