package models

import "time"

// PrayerSlot is a 15-minute weekly prayer window a student can claim.
// DayOfWeek follows time.Weekday numbering (0 = Sunday).
type PrayerSlot struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	DayOfWeek   int        `gorm:"not null;uniqueIndex:idx_prayer_day_time" json:"day_of_week"`
	StartTime   string     `gorm:"size:8;not null;uniqueIndex:idx_prayer_day_time" json:"start_time"`
	ClaimedByID *uint      `json:"claimed_by_id"`
	ClaimedBy   *Student   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"claimed_by,omitempty"`
	ClaimedAt   *time.Time `json:"claimed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsClaimed reports whether a student currently holds the slot.
func (p PrayerSlot) IsClaimed() bool {
	return p.ClaimedByID != nil
}
