package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

// SessionNoteRepository stores notes attached to attendance sessions.
type SessionNoteRepository interface {
	Create(ctx context.Context, note *models.SessionNote) error
	ListBySession(ctx context.Context, sessionID uint) ([]models.SessionNote, error)
	List(ctx context.Context, sessionID *uint, limit, offset int) ([]models.SessionNote, int64, error)
	CountsBySession(ctx context.Context) (map[uint]int64, error)
	GetByID(ctx context.Context, id uint) (models.SessionNote, error)
	Delete(ctx context.Context, id uint) error
}

type sessionNoteRepository struct {
	db *gorm.DB
}

// NewSessionNoteRepository constructs a session note repository.
func NewSessionNoteRepository(db *gorm.DB) SessionNoteRepository {
	return &sessionNoteRepository{db: db}
}

func (r *sessionNoteRepository) Create(ctx context.Context, note *models.SessionNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *sessionNoteRepository) ListBySession(ctx context.Context, sessionID uint) ([]models.SessionNote, error) {
	var notes []models.SessionNote
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Session").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *sessionNoteRepository) List(ctx context.Context, sessionID *uint, limit, offset int) ([]models.SessionNote, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SessionNote{})
	if sessionID != nil {
		query = query.Where("session_id = ?", *sessionID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notes []models.SessionNote
	if err := query.
		Preload("Student").
		Preload("Session").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notes).Error; err != nil {
		return nil, 0, err
	}

	return notes, total, nil
}

func (r *sessionNoteRepository) CountsBySession(ctx context.Context) (map[uint]int64, error) {
	var rows []struct {
		SessionID uint
		Total     int64
	}
	if err := r.db.WithContext(ctx).Model(&models.SessionNote{}).
		Select("session_id, COUNT(*) AS total").
		Group("session_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.SessionID] = row.Total
	}

	return counts, nil
}

func (r *sessionNoteRepository) GetByID(ctx context.Context, id uint) (models.SessionNote, error) {
	var note models.SessionNote
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		return models.SessionNote{}, err
	}

	return note, nil
}

func (r *sessionNoteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.SessionNote{}, id).Error
}
