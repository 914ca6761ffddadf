package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

// ErrSlotClaimed is returned when a prayer slot is already claimed by another
// student.
var ErrSlotClaimed = errors.New("prayer slot is already claimed")

// PrayerRepository stores the weekly prayer schedule.
type PrayerRepository interface {
	BulkCreate(ctx context.Context, slots []models.PrayerSlot) error
	List(ctx context.Context) ([]models.PrayerSlot, error)
	GetByID(ctx context.Context, id uint) (models.PrayerSlot, error)
	Claim(ctx context.Context, id, studentID uint) error
	Release(ctx context.Context, id uint) error
	ReleaseAllForStudent(ctx context.Context, studentID uint) error
	DeleteAll(ctx context.Context) error
}

type prayerRepository struct {
	db *gorm.DB
}

// NewPrayerRepository constructs a prayer schedule repository.
func NewPrayerRepository(db *gorm.DB) PrayerRepository {
	return &prayerRepository{db: db}
}

func (r *prayerRepository) BulkCreate(ctx context.Context, slots []models.PrayerSlot) error {
	if len(slots) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&slots).Error
}

func (r *prayerRepository) List(ctx context.Context) ([]models.PrayerSlot, error) {
	var slots []models.PrayerSlot
	if err := r.db.WithContext(ctx).
		Preload("ClaimedBy").
		Order("day ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *prayerRepository) GetByID(ctx context.Context, id uint) (models.PrayerSlot, error) {
	var slot models.PrayerSlot
	if err := r.db.WithContext(ctx).Preload("ClaimedBy").First(&slot, id).Error; err != nil {
		return models.PrayerSlot{}, err
	}

	return slot, nil
}

// Claim marks a slot as taken. The guarded update keeps two students from
// claiming the same slot concurrently.
func (r *prayerRepository) Claim(ctx context.Context, id, studentID uint) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.PrayerSlot{}).
		Where("id = ? AND claimed_by_id IS NULL", id).
		Updates(map[string]interface{}{
			"claimed_by_id": studentID,
			"claimed_at":    now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSlotClaimed
	}

	return nil
}

func (r *prayerRepository) Release(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.PrayerSlot{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"claimed_by_id": nil,
			"claimed_at":    nil,
		}).Error
}

func (r *prayerRepository) ReleaseAllForStudent(ctx context.Context, studentID uint) error {
	return r.db.WithContext(ctx).Model(&models.PrayerSlot{}).
		Where("claimed_by_id = ?", studentID).
		Updates(map[string]interface{}{
			"claimed_by_id": nil,
			"claimed_at":    nil,
		}).Error
}

func (r *prayerRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.PrayerSlot{}).Error
}
