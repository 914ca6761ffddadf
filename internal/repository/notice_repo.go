package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

// NoticeRepository stores announcements, both broadcast and per-student.
type NoticeRepository interface {
	Create(ctx context.Context, notice *models.Notice) error
	List(ctx context.Context) ([]models.Notice, error)
	ListForStudent(ctx context.Context, studentID uint) ([]models.Notice, error)
	GetByID(ctx context.Context, id uint) (models.Notice, error)
	Update(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id uint) error
}

type noticeRepository struct {
	db *gorm.DB
}

// NewNoticeRepository constructs a notice repository.
func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	return r.db.WithContext(ctx).Create(notice).Error
}

func (r *noticeRepository) List(ctx context.Context) ([]models.Notice, error) {
	var notices []models.Notice
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&notices).Error; err != nil {
		return nil, err
	}

	return notices, nil
}

// ListForStudent returns broadcast notices plus the student's personal ones.
func (r *noticeRepository) ListForStudent(ctx context.Context, studentID uint) ([]models.Notice, error) {
	var notices []models.Notice
	if err := r.db.WithContext(ctx).
		Where("target_student_id IS NULL OR target_student_id = ?", studentID).
		Order("created_at DESC").
		Find(&notices).Error; err != nil {
		return nil, err
	}

	return notices, nil
}

func (r *noticeRepository) GetByID(ctx context.Context, id uint) (models.Notice, error) {
	var notice models.Notice
	if err := r.db.WithContext(ctx).First(&notice, id).Error; err != nil {
		return models.Notice{}, err
	}

	return notice, nil
}

func (r *noticeRepository) Update(ctx context.Context, notice *models.Notice) error {
	return r.db.WithContext(ctx).Save(notice).Error
}

func (r *noticeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Notice{}, id).Error
}
