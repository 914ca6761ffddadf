package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

// AssignmentRepository provides access to coursework assignments and their
// submissions.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	List(ctx context.Context) ([]models.Assignment, error)
	GetByID(ctx context.Context, id uint) (models.Assignment, error)
	ListSubmissionsByStudent(ctx context.Context, studentID uint) ([]models.AssignmentSubmission, error)
	GetSubmission(ctx context.Context, assignmentID, studentID uint) (models.AssignmentSubmission, error)
	GetSubmissionByID(ctx context.Context, id uint) (models.AssignmentSubmission, error)
	SaveSubmission(ctx context.Context, submission *models.AssignmentSubmission) error
	Grade(ctx context.Context, submissionID uint, grade float64, feedback *string, gradedBy string, gradedAt time.Time) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository constructs an assignment repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := r.db.WithContext(ctx).Order("due_date DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).
		Preload("Submissions").
		Preload("Submissions.Student").
		First(&assignment, id).Error; err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) ListSubmissionsByStudent(ctx context.Context, studentID uint) ([]models.AssignmentSubmission, error) {
	var submissions []models.AssignmentSubmission
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *assignmentRepository) GetSubmission(ctx context.Context, assignmentID, studentID uint) (models.AssignmentSubmission, error) {
	var submission models.AssignmentSubmission
	if err := r.db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error; err != nil {
		return models.AssignmentSubmission{}, err
	}

	return submission, nil
}

func (r *assignmentRepository) GetSubmissionByID(ctx context.Context, id uint) (models.AssignmentSubmission, error) {
	var submission models.AssignmentSubmission
	if err := r.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Student").
		First(&submission, id).Error; err != nil {
		return models.AssignmentSubmission{}, err
	}

	return submission, nil
}

func (r *assignmentRepository) SaveSubmission(ctx context.Context, submission *models.AssignmentSubmission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *assignmentRepository) Grade(ctx context.Context, submissionID uint, grade float64, feedback *string, gradedBy string, gradedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.AssignmentSubmission{}).
		Where("id = ?", submissionID).
		Updates(map[string]interface{}{
			"grade":     grade,
			"feedback":  feedback,
			"graded_by": gradedBy,
			"graded_at": gradedAt,
		}).Error
}
