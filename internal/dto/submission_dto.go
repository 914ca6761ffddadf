package dto

// SubmissionListQuery describes query string filters for listing applicant
// submissions.
type SubmissionListQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// SubmissionStatusUpdateRequest reviews a submission.
type SubmissionStatusUpdateRequest struct {
	Status   string  `json:"status" validate:"required,oneof=pending approved rejected"`
	Comments *string `json:"comments"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// SubmissionStatsResponse totals submissions by review status.
type SubmissionStatsResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
