package models

import "time"

// Notice is an announcement shown to students. A nil TargetStudentID makes
// the notice public; otherwise it is personal to one student.
type Notice struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Body            string    `gorm:"type:text;not null" json:"body"`
	Active          bool      `gorm:"not null;default:true" json:"active"`
	TargetStudentID *uint     `json:"target_student_id"`
	TargetStudent   *Student  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"target_student,omitempty"`
	CreatedBy       string    `gorm:"size:255" json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsPersonal reports whether the notice targets a single student.
func (n Notice) IsPersonal() bool {
	return n.TargetStudentID != nil
}
