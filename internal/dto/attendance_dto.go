package dto

import "time"

// SessionCreateRequest opens a new attendance session.
type SessionCreateRequest struct {
	Title string `json:"title" validate:"required,min=2,max=255"`
	Date  string `json:"date" validate:"required"`
}

// SessionStatusRequest opens or closes a session.
type SessionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open closed"`
}

// ScanRequest records one student check-in by their personal code.
type ScanRequest struct {
	SessionID uint                   `json:"session_id" validate:"required,gt=0"`
	Code      string                 `json:"code" validate:"required"`
	ScannedAt *time.Time             `json:"scanned_at"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// SyncRequest uploads a batch of offline scans.
type SyncRequest struct {
	Scans []ScanRequest `json:"scans" validate:"required,min=1,dive"`
}

// ScanResult reports the outcome of one scan in a batch.
type ScanResult struct {
	Code      string `json:"code"`
	StudentID uint   `json:"student_id,omitempty"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// SessionStats summarizes attendance for one session.
type SessionStats struct {
	SessionID      uint    `json:"session_id"`
	Present        int64   `json:"present"`
	TotalActive    int64   `json:"total_active"`
	AttendanceRate float64 `json:"attendance_rate"`
}
