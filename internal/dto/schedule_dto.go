package dto

// TimeSlotCreateRequest adds a single interview slot.
type TimeSlotCreateRequest struct {
	Date     string  `json:"date" validate:"required"`
	Time     string  `json:"time" validate:"required"`
	Location *string `json:"location"`
}

// BulkSlotRequest generates a run of slots for one date, either by a fixed
// interval between start and end or by an explicit slot count.
type BulkSlotRequest struct {
	Date            string  `json:"date" validate:"required"`
	StartTime       string  `json:"start_time" validate:"required"`
	EndTime         string  `json:"end_time" validate:"required"`
	IntervalMinutes int     `json:"interval_minutes" validate:"omitempty,gt=0"`
	NumberOfSlots   int     `json:"number_of_slots" validate:"omitempty,gt=0"`
	Location        *string `json:"location"`
}

// SlotAvailabilityRequest toggles whether a slot can be booked.
type SlotAvailabilityRequest struct {
	Available bool `json:"available"`
}

// AppointmentCreateRequest books an interview slot for an approved
// applicant.
type AppointmentCreateRequest struct {
	ApplicantName        string `json:"applicant_name" validate:"required,min=2,max=255"`
	ApplicantEmail       string `json:"applicant_email" validate:"omitempty,email"`
	ApplicantPhone       string `json:"applicant_phone" validate:"required"`
	ScheduledDate        string `json:"scheduled_date" validate:"required"`
	ScheduledTime        string `json:"scheduled_time" validate:"required"`
	SelectedSong         string `json:"selected_song"`
	AdditionalSong       string `json:"additional_song"`
	AdditionalSongSinger string `json:"additional_song_singer"`
	Notes                string `json:"notes"`
}

// AppointmentStatusUpdateRequest transitions an appointment's scheduling
// status.
type AppointmentStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed no_show cancelled"`
	Notes  string `json:"notes"`
}

// DecisionRequest records an explicit accept/reject decision.
type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accepted rejected"`
}

// ApprovalRequest marks coordinator approval of an appointment.
type ApprovalRequest struct {
	Approved bool `json:"approved"`
}

// EvaluationSubmitRequest scores one criterion of one appointment by one
// judge. Re-submitting the same triple overwrites the earlier score.
type EvaluationSubmitRequest struct {
	JudgeName    string `json:"judge_name" validate:"required,min=1,max=255"`
	CriteriaName string `json:"criteria_name" validate:"required,min=1,max=255"`
	Rating       int    `json:"rating" validate:"gte=0,lte=5"`
	Comments     string `json:"comments"`
}

// EvaluationsResponse returns all evaluation rows for an appointment with
// per-criterion averages across judges.
type EvaluationsResponse struct {
	Evaluations interface{}        `json:"evaluations"`
	Averages    map[string]float64 `json:"averages"`
}

// VerifyApplicantRequest looks up an applicant by phone for the public
// verification flow.
type VerifyApplicantRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// VerifyApplicantResponse reports whether a phone belongs to a known
// applicant.
type VerifyApplicantResponse struct {
	IsApplicant   bool    `json:"is_applicant"`
	ApplicantName *string `json:"applicant_name"`
}

// BulkSlotResult reports how many slots a bulk generation call created.
type BulkSlotResult struct {
	SlotsCreated int `json:"slots_created"`
	SlotsSkipped int `json:"slots_skipped"`
}

// ScheduleStatsResponse totals appointments by status and derived decision.
type ScheduleStatsResponse struct {
	Total     int64 `json:"total"`
	Scheduled int64 `json:"scheduled"`
	Cancelled int64 `json:"cancelled"`
	Accepted  int64 `json:"accepted"`
	Rejected  int64 `json:"rejected"`
}
