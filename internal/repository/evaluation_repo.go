package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chenaniah/academy-api/internal/models"
)

// EvaluationRepository stores per-judge interview scores.
type EvaluationRepository interface {
	Upsert(ctx context.Context, evaluation *models.InterviewEvaluation) error
	ListByAppointment(ctx context.Context, appointmentID uint) ([]models.InterviewEvaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository constructs an evaluation repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

// Upsert inserts the score or overwrites the existing row for the same
// (appointment, judge, criterion) triple.
func (r *evaluationRepository) Upsert(ctx context.Context, evaluation *models.InterviewEvaluation) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "appointment_id"},
			{Name: "judge_name"},
			{Name: "criteria_name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comments", "updated_at"}),
	}).Create(evaluation).Error
}

func (r *evaluationRepository) ListByAppointment(ctx context.Context, appointmentID uint) ([]models.InterviewEvaluation, error) {
	var evaluations []models.InterviewEvaluation
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("judge_name ASC").
		Order("criteria_name ASC").
		Find(&evaluations).Error; err != nil {
		return nil, err
	}

	return evaluations, nil
}
