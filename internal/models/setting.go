package models

import "time"

// Setting is a key/value runtime flag, such as whether applicant
// registration is currently open.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingRegistrationOpen toggles the public application flow.
const SettingRegistrationOpen = "registration_open"
