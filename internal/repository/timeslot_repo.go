package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

// ErrSlotExists indicates a time slot already exists for the date/time pair.
var ErrSlotExists = errors.New("time slot already exists")

// TimeSlotRepository provides access to bookable interview slots.
type TimeSlotRepository interface {
	List(ctx context.Context, date string) ([]models.TimeSlot, error)
	FindByDateTime(ctx context.Context, date, slotTime string) (models.TimeSlot, error)
	Create(ctx context.Context, slot *models.TimeSlot) error
	UpdateAvailability(ctx context.Context, id uint, available bool) error
}

type timeSlotRepository struct {
	db *gorm.DB
}

// NewTimeSlotRepository constructs a time slot repository.
func NewTimeSlotRepository(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepository{db: db}
}

func (r *timeSlotRepository) List(ctx context.Context, date string) ([]models.TimeSlot, error) {
	query := r.db.WithContext(ctx).Model(&models.TimeSlot{})
	if date != "" {
		query = query.Where("date = ?", date).Order("time ASC")
	} else {
		query = query.Order("date DESC").Order("time ASC")
	}

	var slots []models.TimeSlot
	if err := query.Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *timeSlotRepository) FindByDateTime(ctx context.Context, date, slotTime string) (models.TimeSlot, error) {
	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).
		Where("date = ? AND time = ?", date, slotTime).
		First(&slot).Error; err != nil {
		return models.TimeSlot{}, err
	}

	return slot, nil
}

// Create inserts a new slot, reporting ErrSlotExists when the date/time
// pair is already taken.
func (r *timeSlotRepository) Create(ctx context.Context, slot *models.TimeSlot) error {
	var existing models.TimeSlot
	err := r.db.WithContext(ctx).
		Where("date = ? AND time = ?", slot.Date, slot.Time).
		First(&existing).Error
	if err == nil {
		return ErrSlotExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *timeSlotRepository) UpdateAvailability(ctx context.Context, id uint, available bool) error {
	return r.db.WithContext(ctx).Model(&models.TimeSlot{}).
		Where("id = ?", id).
		Update("available", available).Error
}
