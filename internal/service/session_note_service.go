package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
)

// ErrNoteNotFound indicates the session note does not exist.
var ErrNoteNotFound = errors.New("note not found")

// maxNoteImageSize caps uploaded note images at 2MB.
const maxNoteImageSize = 2 << 20

// NoteAuthor identifies who is acting on a note. Staff authors post as
// "admin" with no student link; students post under their own account.
type NoteAuthor struct {
	UserID uint
	Role   string
}

func (a NoteAuthor) isStaff() bool {
	return a.Role == RoleAdmin || a.Role == RoleCoordinator
}

// SessionNoteService manages per-session class notes.
type SessionNoteService interface {
	ListForSession(ctx context.Context, sessionID uint) ([]models.SessionNote, error)
	List(ctx context.Context, query dto.NoteListQuery) ([]models.SessionNote, dto.Pagination, error)
	Sessions(ctx context.Context) ([]dto.NoteSessionSummary, error)
	CreateText(ctx context.Context, author NoteAuthor, payload dto.NoteCreateRequest) (models.SessionNote, error)
	CreateImage(ctx context.Context, author NoteAuthor, sessionID uint, content string, file *multipart.FileHeader) (models.SessionNote, error)
	Delete(ctx context.Context, author NoteAuthor, id uint) error
}

type sessionNoteService struct {
	notes     repository.SessionNoteRepository
	sessions  repository.AttendanceRepository
	students  repository.StudentRepository
	validator *validator.Validate
	uploader  FileUploader
	logger    zerolog.Logger
}

// NewSessionNoteService constructs the session note service.
func NewSessionNoteService(
	noteRepo repository.SessionNoteRepository,
	attendanceRepo repository.AttendanceRepository,
	studentRepo repository.StudentRepository,
	validate *validator.Validate,
	uploader FileUploader,
	logger zerolog.Logger,
) SessionNoteService {
	return &sessionNoteService{
		notes:     noteRepo,
		sessions:  attendanceRepo,
		students:  studentRepo,
		validator: validate,
		uploader:  uploader,
		logger:    logger.With().Str("component", "session_note_service").Logger(),
	}
}

func (s *sessionNoteService) requireSession(ctx context.Context, sessionID uint) error {
	if _, err := s.sessions.GetSession(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	return nil
}

func (s *sessionNoteService) ListForSession(ctx context.Context, sessionID uint) ([]models.SessionNote, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}

	return s.notes.ListBySession(ctx, sessionID)
}

func (s *sessionNoteService) List(ctx context.Context, query dto.NoteListQuery) ([]models.SessionNote, dto.Pagination, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var sessionID *uint
	if query.SessionID > 0 {
		sessionID = &query.SessionID
	}

	notes, total, err := s.notes.List(ctx, sessionID, limit, (page-1)*limit)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	pagination := dto.Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}

	return notes, pagination, nil
}

func (s *sessionNoteService) Sessions(ctx context.Context) ([]dto.NoteSessionSummary, error) {
	sessions, err := s.sessions.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.notes.CountsBySession(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.NoteSessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, dto.NoteSessionSummary{
			ID:         session.ID,
			Title:      session.Title,
			Date:       session.Date,
			Status:     session.Status,
			NotesCount: counts[session.ID],
		})
	}

	return summaries, nil
}

func (s *sessionNoteService) CreateText(ctx context.Context, author NoteAuthor, payload dto.NoteCreateRequest) (models.SessionNote, error) {
	payload.Content = strings.TrimSpace(payload.Content)
	if err := s.validator.Struct(payload); err != nil {
		return models.SessionNote{}, NewBusinessError("Content and session_id are required", CodeValidationError)
	}

	return s.create(ctx, author, models.SessionNote{
		SessionID: payload.SessionID,
		Type:      models.NoteTypeText,
		Content:   payload.Content,
	})
}

func (s *sessionNoteService) CreateImage(ctx context.Context, author NoteAuthor, sessionID uint, content string, file *multipart.FileHeader) (models.SessionNote, error) {
	if file == nil {
		return models.SessionNote{}, NewBusinessError("Image file is required", CodeValidationError)
	}
	if sessionID == 0 {
		return models.SessionNote{}, NewBusinessError("session_id is required", CodeValidationError)
	}
	if file.Size > maxNoteImageSize {
		return models.SessionNote{}, NewBusinessError("Image must be 2MB or smaller", CodeValidationError)
	}

	reader, err := file.Open()
	if err != nil {
		return models.SessionNote{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mtype, err := mimetype.DetectReader(reader)
	if err != nil {
		return models.SessionNote{}, fmt.Errorf("failed to detect file type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return models.SessionNote{}, NewBusinessError("Only image files are allowed", CodeValidationError)
	}
	if _, err := reader.Seek(0, 0); err != nil {
		return models.SessionNote{}, fmt.Errorf("failed to rewind file: %w", err)
	}

	storedName := fmt.Sprintf("notes/note-%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	path, err := s.uploader.Upload(ctx, storedName, reader)
	if err != nil {
		return models.SessionNote{}, fmt.Errorf("failed to store note image: %w", err)
	}

	return s.create(ctx, author, models.SessionNote{
		SessionID: sessionID,
		Type:      models.NoteTypeImage,
		Content:   strings.TrimSpace(content),
		ImagePath: path,
	})
}

func (s *sessionNoteService) create(ctx context.Context, author NoteAuthor, note models.SessionNote) (models.SessionNote, error) {
	if err := s.requireSession(ctx, note.SessionID); err != nil {
		return models.SessionNote{}, err
	}

	if author.isStaff() {
		note.AuthorType = models.NoteAuthorAdmin
	} else {
		if _, err := s.students.GetByID(ctx, author.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.SessionNote{}, ErrStudentNotFound
			}
			return models.SessionNote{}, err
		}
		studentID := author.UserID
		note.AuthorID = &studentID
		note.AuthorType = models.NoteAuthorStudent
	}

	if err := s.notes.Create(ctx, &note); err != nil {
		return models.SessionNote{}, err
	}

	s.logger.Info().Uint("session_id", note.SessionID).Str("type", note.Type).
		Str("author_type", note.AuthorType).Msg("session note created")

	return note, nil
}

func (s *sessionNoteService) Delete(ctx context.Context, author NoteAuthor, id uint) error {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	if !author.isStaff() {
		if note.AuthorID == nil || *note.AuthorID != author.UserID {
			return NewForbiddenError("You can only delete your own notes", "")
		}
	}

	return s.notes.Delete(ctx, id)
}
