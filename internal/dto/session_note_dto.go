package dto

// NoteCreateRequest posts a text note to an attendance session.
type NoteCreateRequest struct {
	SessionID uint   `json:"session_id" validate:"required,gt=0"`
	Content   string `json:"content" validate:"required,min=1"`
}

// NoteListQuery filters and pages the administrative note list.
type NoteListQuery struct {
	SessionID uint `query:"session_id"`
	Page      int  `query:"page"`
	Limit     int  `query:"limit"`
}

// NoteSessionSummary lists a session together with how many notes it has.
type NoteSessionSummary struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	NotesCount int64  `json:"notes_count"`
}
