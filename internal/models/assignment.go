package models

import "time"

// Assignment is a coursework definition created by an administrator.
type Assignment struct {
	ID          uint                   `gorm:"primaryKey" json:"id"`
	Title       string                 `gorm:"size:255;not null" json:"title"`
	Description string                 `gorm:"type:text" json:"description"`
	DueDate     time.Time              `gorm:"not null" json:"due_date"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Submissions []AssignmentSubmission `json:"submissions,omitempty"`
}

// AssignmentSubmission is a student's answer to an assignment. One row per
// (student, assignment); re-submitting overwrites the file/text and bumps
// the submission timestamp.
type AssignmentSubmission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssignmentID uint       `gorm:"not null;uniqueIndex:idx_submission_student_assignment" json:"assignment_id"`
	StudentID    uint       `gorm:"not null;uniqueIndex:idx_submission_student_assignment" json:"student_id"`
	FilePath     string     `gorm:"size:512" json:"file_path"`
	Text         string     `gorm:"type:text" json:"text"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	Grade        *float64   `json:"grade"`
	Feedback     *string    `gorm:"type:text" json:"feedback"`
	GradedAt     *time.Time `json:"graded_at"`
	GradedBy     *string    `gorm:"size:255" json:"graded_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Assignment   Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment"`
	Student      Student    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

// IsGraded reports whether a grade has been recorded.
func (s AssignmentSubmission) IsGraded() bool {
	return s.Grade != nil
}
