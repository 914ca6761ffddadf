package models

import (
	"time"

	"gorm.io/datatypes"
)

// AttendanceSession is a class meeting that students check into by having
// their personal code scanned.
type AttendanceSession struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	Title     string             `gorm:"size:255;not null" json:"title"`
	Date      string             `gorm:"size:16;not null" json:"date"`
	Status    string             `gorm:"size:16;not null;default:open" json:"status"`
	CreatedBy string             `gorm:"size:255" json:"created_by"`
	ClosedAt  *time.Time         `json:"closed_at"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Records   []AttendanceRecord `json:"records,omitempty"`
}

// Attendance session statuses.
const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

// IsOpen reports whether the session still accepts scans.
func (s AttendanceSession) IsOpen() bool {
	return s.Status == SessionStatusOpen
}

// AttendanceRecord marks one student present in one session. Metadata
// carries scanner details (device, offline-sync origin) as raw JSON.
type AttendanceRecord struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	SessionID uint              `gorm:"not null;uniqueIndex:idx_attendance_session_student" json:"session_id"`
	StudentID uint              `gorm:"not null;uniqueIndex:idx_attendance_session_student" json:"student_id"`
	ScannedAt time.Time         `json:"scanned_at"`
	ScannedBy string            `gorm:"size:255" json:"scanned_by"`
	Metadata  datatypes.JSON    `json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
	Session   AttendanceSession `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"session"`
	Student   Student           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}
