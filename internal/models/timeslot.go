package models

import "time"

// TimeSlot is a bookable interview slot on a given date.
type TimeSlot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Time      string    `gorm:"size:8;not null;uniqueIndex:idx_slot_date_time" json:"time"`
	Date      string    `gorm:"size:16;not null;uniqueIndex:idx_slot_date_time" json:"date"`
	Label     string    `gorm:"size:32" json:"label"`
	Available bool      `gorm:"not null;default:true" json:"available"`
	Period    *string   `gorm:"size:16" json:"period"`
	Location  *string   `gorm:"size:255" json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Slot periods derived from the start hour.
const (
	SlotPeriodMorning   = "morning"
	SlotPeriodAfternoon = "afternoon"
)
