package models

import "time"

// Resource is a shared study file (sheet music, recordings, documents)
// made available to all students.
type Resource struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	FileURL     string    `gorm:"size:512;not null" json:"file_url"`
	MimeType    string    `gorm:"size:128" json:"mime_type"`
	UploadedBy  string    `gorm:"size:255" json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
