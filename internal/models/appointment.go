package models

import "time"

// Appointment is a scheduled interview slot booked against an applicant
// phone. Rescheduling creates a new row rather than mutating the old one,
// so one phone may own several appointments over time.
type Appointment struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	ApplicantName         string     `gorm:"size:255;not null" json:"applicant_name"`
	ApplicantEmail        string     `gorm:"size:255" json:"applicant_email"`
	ApplicantPhone        string     `gorm:"size:32;not null" json:"applicant_phone"`
	ScheduledDate         string     `gorm:"size:16;not null" json:"scheduled_date"`
	ScheduledTime         string     `gorm:"size:8;not null" json:"scheduled_time"`
	Status                string     `gorm:"size:32;not null;default:scheduled" json:"status"`
	Notes                 string     `gorm:"type:text" json:"notes"`
	SelectedSong          string     `gorm:"size:255" json:"selected_song"`
	AdditionalSong        string     `gorm:"size:255" json:"additional_song"`
	AdditionalSongSinger  string     `gorm:"size:255" json:"additional_song_singer"`
	CoordinatorVerified   bool       `gorm:"not null;default:false" json:"coordinator_verified"`
	CoordinatorVerifiedAt *time.Time `json:"coordinator_verified_at"`
	CoordinatorApproved   bool       `gorm:"not null;default:false" json:"coordinator_approved"`
	CoordinatorApprovedAt *time.Time `json:"coordinator_approved_at"`
	FinalDecision         *string    `gorm:"size:16" json:"final_decision"`
	DecisionMadeAt        *time.Time `json:"decision_made_at"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// Appointment scheduling statuses.
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusNoShow    = "no_show"
	AppointmentStatusCancelled = "cancelled"
)

// Final decision values, distinct from the scheduling status.
const (
	DecisionAccepted = "accepted"
	DecisionRejected = "rejected"
)

// Decision returns the authoritative accept/reject outcome for the
// appointment. An explicit final decision always wins; without one the
// decision is inferred from the scheduling status: completed means
// accepted and no_show means rejected (legacy rows predate the decision
// column). The second return value is false when no decision can be
// derived yet.
func (a Appointment) Decision() (string, bool) {
	if a.FinalDecision != nil && *a.FinalDecision != "" {
		return *a.FinalDecision, true
	}

	switch a.Status {
	case AppointmentStatusCompleted:
		return DecisionAccepted, true
	case AppointmentStatusNoShow:
		return DecisionRejected, true
	default:
		return "", false
	}
}

// IsAccepted reports whether the appointment resolves to an accepted decision.
func (a Appointment) IsAccepted() bool {
	decision, ok := a.Decision()
	return ok && decision == DecisionAccepted
}
