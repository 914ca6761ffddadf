package models

import "time"

// Student is a provisioned trainee account. Exactly one student may exist
// per accepted appointment; the unique index on AppointmentID is the
// store-level enforcement of that rule, backing up the procedural check
// performed during registration. The phone is stored verbatim as the
// applicant typed it.
type Student struct {
	ID                       uint         `gorm:"primaryKey" json:"id"`
	Username                 string       `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash             string       `gorm:"size:255;not null" json:"-"`
	FullNameAmharic          string       `gorm:"size:255" json:"full_name_amharic"`
	FullNameEnglish          string       `gorm:"size:255" json:"full_name_english"`
	Gender                   string       `gorm:"size:16" json:"gender"`
	LocalChurch              string       `gorm:"size:255" json:"local_church"`
	Address                  string       `gorm:"size:512" json:"address"`
	Phone                    string       `gorm:"size:32;uniqueIndex;not null" json:"phone"`
	AppointmentID            *uint        `gorm:"uniqueIndex" json:"appointment_id"`
	Appointment              *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"appointment,omitempty"`
	IDDocumentPath           string       `gorm:"size:512" json:"id_document_path"`
	RecommendationLetterPath string       `gorm:"size:512" json:"recommendation_letter_path"`
	Essay                    string       `gorm:"type:text" json:"essay"`
	PhotoPath                string       `gorm:"size:512" json:"photo_path"`
	ProfileComplete          bool         `gorm:"not null;default:false" json:"profile_complete"`
	Status                   string       `gorm:"size:32;not null;default:active" json:"status"`
	CheckInCode              string       `gorm:"size:64;uniqueIndex" json:"-"`
	CreatedAt                time.Time    `json:"created_at"`
	UpdatedAt                time.Time    `json:"updated_at"`
}

// Student account statuses.
const (
	StudentStatusActive    = "active"
	StudentStatusInactive  = "inactive"
	StudentStatusSuspended = "suspended"
)

// RecomputeProfileComplete recalculates the profile completeness flag from
// the currently stored profile fields.
func (s *Student) RecomputeProfileComplete() {
	s.ProfileComplete = s.FullNameAmharic != "" &&
		s.FullNameEnglish != "" &&
		s.IDDocumentPath != "" &&
		s.RecommendationLetterPath != "" &&
		s.Essay != "" &&
		s.PhotoPath != ""
}
