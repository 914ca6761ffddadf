package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

// SubmissionFilter narrows submission listings.
type SubmissionFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// SubmissionRepository provides access to audition submissions.
type SubmissionRepository interface {
	List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error)
	ListAll(ctx context.Context) ([]models.Submission, error)
	Count(ctx context.Context, filter SubmissionFilter) (int64, error)
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	Create(ctx context.Context, submission *models.Submission) error
	UpdateStatus(ctx context.Context, id uint, status string, comments, reviewedBy *string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository constructs a submission repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) applyFilter(query *gorm.DB, filter SubmissionFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"name LIKE ? OR phone LIKE ? OR church LIKE ? OR address LIKE ? OR telegram_username LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	return query
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Submission{}), filter).
		Order("submitted_at DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var submissions []models.Submission
	if err := query.Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

// ListAll returns every submission, newest first. The lifecycle resolver
// scans the whole table because the raw store does not hold a normalized
// phone column to index on.
func (r *submissionRepository) ListAll(ctx context.Context) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.WithContext(ctx).Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) Count(ctx context.Context, filter SubmissionFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Submission{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) UpdateStatus(ctx context.Context, id uint, status string, comments, reviewedBy *string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            status,
			"reviewer_comments": comments,
			"reviewed_by":       reviewedBy,
			"reviewed_at":       &now,
		}).Error
}

func (r *submissionRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}

	var rows []row
	if err := r.db.WithContext(ctx).Model(&models.Submission{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}

	return counts, nil
}
