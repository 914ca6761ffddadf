package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

// AppointmentRepository provides access to interview appointments.
type AppointmentRepository interface {
	ListAll(ctx context.Context) ([]models.Appointment, error)
	Search(ctx context.Context, query string) ([]models.Appointment, error)
	ListForEvaluation(ctx context.Context) ([]models.Appointment, error)
	GetByID(ctx context.Context, id uint) (models.Appointment, error)
	Create(ctx context.Context, appointment *models.Appointment) error
	UpdateStatus(ctx context.Context, id uint, status string, decision *string, decidedAt *time.Time) error
	SetDecision(ctx context.Context, id uint, decision string, decidedAt time.Time) error
	SetApproval(ctx context.Context, id uint, approved bool, at *time.Time) error
	SetVerification(ctx context.Context, id uint, verified bool, at *time.Time) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository constructs an appointment repository.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// ListAll returns every appointment ordered newest first. Phone matching
// happens in the service layer because phones are stored in whatever
// format the applicant used.
func (r *appointmentRepository) ListAll(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := r.db.WithContext(ctx).
		Order("scheduled_date DESC").
		Order("scheduled_time DESC").
		Find(&appointments).Error; err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *appointmentRepository) Search(ctx context.Context, query string) ([]models.Appointment, error) {
	db := r.db.WithContext(ctx).Model(&models.Appointment{})
	if query != "" {
		pattern := "%" + query + "%"
		db = db.Where("applicant_name LIKE ? OR applicant_phone LIKE ?", pattern, pattern)
	}

	var appointments []models.Appointment
	if err := db.Order("scheduled_date DESC").Order("scheduled_time DESC").Find(&appointments).Error; err != nil {
		return nil, err
	}

	return appointments, nil
}

// ListForEvaluation returns coordinator-verified and approved appointments
// in chronological order for the judging panel.
func (r *appointmentRepository) ListForEvaluation(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("coordinator_verified = ? AND coordinator_approved = ?", true, true).
		Order("scheduled_date ASC").
		Order("scheduled_time ASC").
		Find(&appointments).Error; err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (models.Appointment, error) {
	var appointment models.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, id).Error; err != nil {
		return models.Appointment{}, err
	}

	return appointment, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uint, status string, decision *string, decidedAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if decision != nil {
		updates["final_decision"] = *decision
		updates["decision_made_at"] = decidedAt
	}

	return r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *appointmentRepository) SetDecision(ctx context.Context, id uint, decision string, decidedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"final_decision":   decision,
			"decision_made_at": decidedAt,
		}).Error
}

func (r *appointmentRepository) SetApproval(ctx context.Context, id uint, approved bool, at *time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"coordinator_approved":    approved,
			"coordinator_approved_at": at,
		}).Error
}

func (r *appointmentRepository) SetVerification(ctx context.Context, id uint, verified bool, at *time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"coordinator_verified":    verified,
			"coordinator_verified_at": at,
		}).Error
}

func (r *appointmentRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}

	var rows []row
	if err := r.db.WithContext(ctx).Model(&models.Appointment{}).
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
