package dto

// NoticeCreateRequest publishes a broadcast notice.
type NoticeCreateRequest struct {
	Title  string `json:"title" validate:"required,min=2,max=255"`
	Body   string `json:"body" validate:"required,min=2"`
	Active *bool  `json:"active"`
}

// PersonalNoticeRequest publishes a notice visible to a single student.
type PersonalNoticeRequest struct {
	Title     string `json:"title" validate:"required,min=2,max=255"`
	Body      string `json:"body" validate:"required,min=2"`
	StudentID uint   `json:"student_id" validate:"required,gt=0"`
}

// NoticeUpdateRequest edits an existing notice.
type NoticeUpdateRequest struct {
	Title  *string `json:"title" validate:"omitempty,min=2,max=255"`
	Body   *string `json:"body" validate:"omitempty,min=2"`
	Active *bool   `json:"active"`
}

// RegistrationStatusRequest toggles the public application flow. A nil
// value defaults to open.
type RegistrationStatusRequest struct {
	RegistrationOpen *bool `json:"registration_open"`
}

// RegistrationStatusResponse reports whether applications are open.
type RegistrationStatusResponse struct {
	RegistrationOpen bool `json:"registration_open"`
}
