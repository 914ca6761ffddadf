package models

import "time"

// SessionNote is a remark attached to an attendance session, written
// either by staff or by a student during class. Image notes keep their
// stored file path alongside an optional caption.
type SessionNote struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	SessionID  uint              `gorm:"not null;index" json:"session_id"`
	AuthorID   *uint             `json:"author_id"`
	AuthorType string            `gorm:"size:16;not null" json:"author_type"`
	Type       string            `gorm:"size:16;not null;default:text" json:"type"`
	Content    string            `gorm:"type:text" json:"content"`
	ImagePath  string            `gorm:"size:512" json:"image_path"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Session    AttendanceSession `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"session"`
	Student    *Student          `gorm:"foreignKey:AuthorID" json:"student,omitempty"`
}

// Session note author and content kinds.
const (
	NoteAuthorAdmin   = "admin"
	NoteAuthorStudent = "student"

	NoteTypeText  = "text"
	NoteTypeImage = "image"
)
