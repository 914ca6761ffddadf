package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

// ErrAlreadyRecorded is returned when a student's attendance is recorded
// twice for the same session.
var ErrAlreadyRecorded = errors.New("attendance already recorded for this session")

// AttendanceRepository stores attendance sessions and per-student records.
type AttendanceRepository interface {
	CreateSession(ctx context.Context, session *models.AttendanceSession) error
	ListSessions(ctx context.Context) ([]models.AttendanceSession, error)
	GetSession(ctx context.Context, id uint) (models.AttendanceSession, error)
	GetOpenSession(ctx context.Context) (models.AttendanceSession, error)
	UpdateSessionStatus(ctx context.Context, id uint, status string, closedAt *time.Time) error

	CreateRecord(ctx context.Context, record *models.AttendanceRecord) error
	ListRecords(ctx context.Context, sessionID uint) ([]models.AttendanceRecord, error)
	ListRecordsByStudent(ctx context.Context, studentID uint) ([]models.AttendanceRecord, error)
	HasRecord(ctx context.Context, sessionID, studentID uint) (bool, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs an attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) CreateSession(ctx context.Context, session *models.AttendanceSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *attendanceRepository) ListSessions(ctx context.Context) ([]models.AttendanceSession, error) {
	var sessions []models.AttendanceSession
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *attendanceRepository) GetSession(ctx context.Context, id uint) (models.AttendanceSession, error) {
	var session models.AttendanceSession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return models.AttendanceSession{}, err
	}

	return session, nil
}

func (r *attendanceRepository) GetOpenSession(ctx context.Context) (models.AttendanceSession, error) {
	var session models.AttendanceSession
	if err := r.db.WithContext(ctx).
		Where("status = ?", models.SessionStatusOpen).
		Order("created_at DESC").
		First(&session).Error; err != nil {
		return models.AttendanceSession{}, err
	}

	return session, nil
}

func (r *attendanceRepository) UpdateSessionStatus(ctx context.Context, id uint, status string, closedAt *time.Time) error {
	return r.db.WithContext(ctx).Model(&models.AttendanceSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    status,
			"closed_at": closedAt,
		}).Error
}

func (r *attendanceRepository) CreateRecord(ctx context.Context, record *models.AttendanceRecord) error {
	exists, err := r.HasRecord(ctx, record.SessionID, record.StudentID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyRecorded
	}

	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepository) ListRecords(ctx context.Context, sessionID uint) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("session_id = ?", sessionID).
		Order("scanned_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *attendanceRepository) ListRecordsByStudent(ctx context.Context, studentID uint) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("scanned_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *attendanceRepository) HasRecord(ctx context.Context, sessionID, studentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AttendanceRecord{}).
		Where("session_id = ? AND student_id = ?", sessionID, studentID).
		Count(&count).Error

	return count > 0, err
}
