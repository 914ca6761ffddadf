package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

// ErrPaymentExists is returned when a payment record already exists for a
// student and month.
var ErrPaymentExists = errors.New("payment record already exists for this month")

// PaymentRepository stores monthly payment records.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	ListByStudent(ctx context.Context, studentID uint) ([]models.Payment, error)
	ListByMonth(ctx context.Context, month string) ([]models.Payment, error)
	GetByID(ctx context.Context, id uint) (models.Payment, error)
	UpdateStatus(ctx context.Context, id uint, status string, paidAt *time.Time) error
	Exists(ctx context.Context, studentID uint, month string) (bool, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository constructs a payment repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	exists, err := r.Exists(ctx, payment.StudentID, payment.Month)
	if err != nil {
		return err
	}
	if exists {
		return ErrPaymentExists
	}

	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("month DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) ListByMonth(ctx context.Context, month string) ([]models.Payment, error) {
	var payments []models.Payment
	query := r.db.WithContext(ctx).Preload("Student")
	if month != "" {
		query = query.Where("month = ?", month)
	}
	if err := query.Order("month DESC").Find(&payments).Error; err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id uint) (models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Preload("Student").First(&payment, id).Error; err != nil {
		return models.Payment{}, err
	}

	return payment, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id uint, status string, paidAt *time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  status,
			"paid_at": paidAt,
		}).Error
}

func (r *paymentRepository) Exists(ctx context.Context, studentID uint, month string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("student_id = ? AND month = ?", studentID, month).
		Count(&count).Error

	return count > 0, err
}
