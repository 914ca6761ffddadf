package models

import "time"

// InterviewEvaluation is a single judge's score for one criterion of one
// appointment. The (appointment, judge, criterion) triple is unique;
// re-submitting a score overwrites the previous one.
type InterviewEvaluation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AppointmentID uint      `gorm:"not null;uniqueIndex:idx_eval_appointment_judge_criteria" json:"appointment_id"`
	JudgeName     string    `gorm:"size:255;not null;uniqueIndex:idx_eval_appointment_judge_criteria" json:"judge_name"`
	CriteriaName  string    `gorm:"size:255;not null;uniqueIndex:idx_eval_appointment_judge_criteria" json:"criteria_name"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comments      string    `gorm:"type:text" json:"comments"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
