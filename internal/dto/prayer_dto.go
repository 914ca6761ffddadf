package dto

// PrayerSlotView is one prayer window with its claimant, if any.
type PrayerSlotView struct {
	ID          uint    `json:"id"`
	DayOfWeek   int     `json:"day_of_week"`
	StartTime   string  `json:"start_time"`
	Claimed     bool    `json:"claimed"`
	ClaimedByID *uint   `json:"claimed_by_id,omitempty"`
	ClaimedBy   *string `json:"claimed_by,omitempty"`
}

// PrayerDayView groups a day's slots for the weekly schedule response.
type PrayerDayView struct {
	DayOfWeek int              `json:"day_of_week"`
	Slots     []PrayerSlotView `json:"slots"`
}

// PrayerOverview summarizes schedule coverage for administrators.
type PrayerOverview struct {
	TotalSlots   int64   `json:"total_slots"`
	ClaimedSlots int64   `json:"claimed_slots"`
	Coverage     float64 `json:"coverage"`
}
