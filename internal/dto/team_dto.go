package dto

import "time"

// TeamCreateRequest creates a ministry team. Capacity zero means
// unlimited.
type TeamCreateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
}

// TeamUpdateRequest edits a team.
type TeamUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=255"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gte=0"`
}

// TeamView is a team with its member count.
type TeamView struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Capacity    int          `json:"capacity"`
	MemberCount int          `json:"member_count"`
	Members     []MemberView `json:"members,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// MemberView is one team member row.
type MemberView struct {
	StudentID       uint      `json:"student_id"`
	Username        string    `json:"username"`
	FullNameEnglish string    `json:"full_name_english"`
	JoinedAt        time.Time `json:"joined_at"`
}

// TeamNoticeRequest publishes an announcement scoped to one team.
type TeamNoticeRequest struct {
	Title string `json:"title" validate:"required,min=2,max=255"`
	Body  string `json:"body" validate:"required,min=2"`
}
