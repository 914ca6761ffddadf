package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
)

// ErrNoticeNotFound indicates the notice does not exist.
var ErrNoticeNotFound = errors.New("notice not found")

// NoticeService manages broadcast and personal announcements.
type NoticeService interface {
	ListPublic(ctx context.Context) ([]models.Notice, error)
	ListForStudent(ctx context.Context, studentID uint) ([]models.Notice, error)
	ListAll(ctx context.Context) ([]models.Notice, error)
	Create(ctx context.Context, payload dto.NoticeCreateRequest, createdBy string) (models.Notice, error)
	CreatePersonal(ctx context.Context, payload dto.PersonalNoticeRequest, createdBy string) (models.Notice, error)
	Update(ctx context.Context, id uint, payload dto.NoticeUpdateRequest) (models.Notice, error)
	Delete(ctx context.Context, id uint) error
}

type noticeService struct {
	notices   repository.NoticeRepository
	students  repository.StudentRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewNoticeService constructs the notice service. Notice bodies pass
// through an HTML sanitizer before storage.
func NewNoticeService(noticeRepo repository.NoticeRepository, studentRepo repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) NoticeService {
	return &noticeService{
		notices:   noticeRepo,
		students:  studentRepo,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "notice_service").Logger(),
	}
}

func (s *noticeService) ListPublic(ctx context.Context) ([]models.Notice, error) {
	all, err := s.notices.List(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]models.Notice, 0, len(all))
	for _, notice := range all {
		if notice.Active && !notice.IsPersonal() {
			public = append(public, notice)
		}
	}

	return public, nil
}

func (s *noticeService) ListForStudent(ctx context.Context, studentID uint) ([]models.Notice, error) {
	all, err := s.notices.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	active := make([]models.Notice, 0, len(all))
	for _, notice := range all {
		if notice.Active {
			active = append(active, notice)
		}
	}

	return active, nil
}

func (s *noticeService) ListAll(ctx context.Context) ([]models.Notice, error) {
	return s.notices.List(ctx)
}

func (s *noticeService) Create(ctx context.Context, payload dto.NoticeCreateRequest, createdBy string) (models.Notice, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Notice{}, NewBusinessError("Title and body are required", CodeValidationError)
	}

	active := true
	if payload.Active != nil {
		active = *payload.Active
	}

	notice := models.Notice{
		Title:     s.sanitizer.Sanitize(payload.Title),
		Body:      s.sanitizer.Sanitize(payload.Body),
		Active:    active,
		CreatedBy: createdBy,
	}

	if err := s.notices.Create(ctx, &notice); err != nil {
		return models.Notice{}, err
	}

	return notice, nil
}

func (s *noticeService) CreatePersonal(ctx context.Context, payload dto.PersonalNoticeRequest, createdBy string) (models.Notice, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Notice{}, NewBusinessError("Title, body and student_id are required", CodeValidationError)
	}

	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Notice{}, ErrStudentNotFound
		}
		return models.Notice{}, err
	}

	studentID := payload.StudentID
	notice := models.Notice{
		Title:           s.sanitizer.Sanitize(payload.Title),
		Body:            s.sanitizer.Sanitize(payload.Body),
		Active:          true,
		TargetStudentID: &studentID,
		CreatedBy:       createdBy,
	}

	if err := s.notices.Create(ctx, &notice); err != nil {
		return models.Notice{}, err
	}

	return notice, nil
}

func (s *noticeService) Update(ctx context.Context, id uint, payload dto.NoticeUpdateRequest) (models.Notice, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Notice{}, NewBusinessError("Invalid notice payload", CodeValidationError)
	}

	notice, err := s.notices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Notice{}, ErrNoticeNotFound
		}
		return models.Notice{}, err
	}

	if payload.Title != nil {
		notice.Title = s.sanitizer.Sanitize(*payload.Title)
	}
	if payload.Body != nil {
		notice.Body = s.sanitizer.Sanitize(*payload.Body)
	}
	if payload.Active != nil {
		notice.Active = *payload.Active
	}

	if err := s.notices.Update(ctx, &notice); err != nil {
		return models.Notice{}, err
	}

	return notice, nil
}

func (s *noticeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.notices.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoticeNotFound
		}
		return err
	}

	return s.notices.Delete(ctx, id)
}
