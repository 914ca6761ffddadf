package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
)

// ErrSessionNotFound indicates the attendance session does not exist.
var ErrSessionNotFound = errors.New("attendance session not found")

// Scan outcomes reported per batch entry.
const (
	ScanStatusRecorded  = "recorded"
	ScanStatusDuplicate = "duplicate"
	ScanStatusFailed    = "failed"
)

// AttendanceService records class attendance via per-student check-in
// codes.
type AttendanceService interface {
	CreateSession(ctx context.Context, payload dto.SessionCreateRequest, createdBy string) (models.AttendanceSession, error)
	ListSessions(ctx context.Context) ([]models.AttendanceSession, error)
	GetSession(ctx context.Context, id uint) (models.AttendanceSession, []models.AttendanceRecord, error)
	SetSessionStatus(ctx context.Context, id uint, payload dto.SessionStatusRequest) error
	SessionStats(ctx context.Context, id uint) (dto.SessionStats, error)
	Scan(ctx context.Context, payload dto.ScanRequest, scannedBy string) (dto.ScanResult, error)
	Sync(ctx context.Context, payload dto.SyncRequest, scannedBy string) ([]dto.ScanResult, error)
}

type attendanceService struct {
	attendance repository.AttendanceRepository
	students   repository.StudentRepository
	validator  *validator.Validate
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(attendanceRepo repository.AttendanceRepository, studentRepo repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		attendance: attendanceRepo,
		students:   studentRepo,
		validator:  validate,
		logger:     logger.With().Str("component", "attendance_service").Logger(),
		now:        time.Now,
	}
}

func (s *attendanceService) CreateSession(ctx context.Context, payload dto.SessionCreateRequest, createdBy string) (models.AttendanceSession, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.AttendanceSession{}, NewBusinessError("Title and date are required", CodeValidationError)
	}

	session := models.AttendanceSession{
		Title:     payload.Title,
		Date:      payload.Date,
		Status:    models.SessionStatusOpen,
		CreatedBy: createdBy,
	}

	if err := s.attendance.CreateSession(ctx, &session); err != nil {
		return models.AttendanceSession{}, err
	}

	return session, nil
}

func (s *attendanceService) ListSessions(ctx context.Context) ([]models.AttendanceSession, error) {
	return s.attendance.ListSessions(ctx)
}

func (s *attendanceService) GetSession(ctx context.Context, id uint) (models.AttendanceSession, []models.AttendanceRecord, error) {
	session, err := s.attendance.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AttendanceSession{}, nil, ErrSessionNotFound
		}
		return models.AttendanceSession{}, nil, err
	}

	records, err := s.attendance.ListRecords(ctx, id)
	if err != nil {
		return models.AttendanceSession{}, nil, err
	}

	return session, records, nil
}

func (s *attendanceService) SetSessionStatus(ctx context.Context, id uint, payload dto.SessionStatusRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return NewBusinessError("Status must be open or closed", CodeValidationError)
	}

	if _, err := s.attendance.GetSession(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	var closedAt *time.Time
	if payload.Status == models.SessionStatusClosed {
		now := s.now()
		closedAt = &now
	}

	return s.attendance.UpdateSessionStatus(ctx, id, payload.Status, closedAt)
}

func (s *attendanceService) SessionStats(ctx context.Context, id uint) (dto.SessionStats, error) {
	if _, err := s.attendance.GetSession(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionStats{}, ErrSessionNotFound
		}
		return dto.SessionStats{}, err
	}

	records, err := s.attendance.ListRecords(ctx, id)
	if err != nil {
		return dto.SessionStats{}, err
	}

	active, err := s.students.ListActive(ctx)
	if err != nil {
		return dto.SessionStats{}, err
	}

	stats := dto.SessionStats{
		SessionID:   id,
		Present:     int64(len(records)),
		TotalActive: int64(len(active)),
	}
	if stats.TotalActive > 0 {
		stats.AttendanceRate = float64(stats.Present) / float64(stats.TotalActive)
	}

	return stats, nil
}

// Scan records one student as present. Duplicate scans for the same
// session succeed without creating a second record.
func (s *attendanceService) Scan(ctx context.Context, payload dto.ScanRequest, scannedBy string) (dto.ScanResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ScanResult{}, NewBusinessError("session_id and code are required", CodeValidationError)
	}

	session, err := s.attendance.GetSession(ctx, payload.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ScanResult{}, ErrSessionNotFound
		}
		return dto.ScanResult{}, err
	}
	if !session.IsOpen() {
		return dto.ScanResult{}, NewBusinessError("This attendance session is closed", "")
	}

	student, err := s.students.FindByCheckInCode(ctx, payload.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ScanResult{}, NewBusinessError("Unknown check-in code", "")
		}
		return dto.ScanResult{}, err
	}

	scannedAt := s.now()
	if payload.ScannedAt != nil {
		scannedAt = *payload.ScannedAt
	}

	var metadata datatypes.JSON
	if payload.Metadata != nil {
		if raw, err := json.Marshal(payload.Metadata); err == nil {
			metadata = raw
		}
	}

	record := models.AttendanceRecord{
		SessionID: session.ID,
		StudentID: student.ID,
		ScannedAt: scannedAt,
		ScannedBy: scannedBy,
		Metadata:  metadata,
	}

	if err := s.attendance.CreateRecord(ctx, &record); err != nil {
		if errors.Is(err, repository.ErrAlreadyRecorded) {
			return dto.ScanResult{Code: payload.Code, StudentID: student.ID, Status: ScanStatusDuplicate}, nil
		}
		return dto.ScanResult{}, err
	}

	s.logger.Info().Uint("session_id", session.ID).Uint("student_id", student.ID).Msg("attendance recorded")

	return dto.ScanResult{Code: payload.Code, StudentID: student.ID, Status: ScanStatusRecorded}, nil
}

// Sync replays a batch of offline scans, reporting each outcome
// individually.
func (s *attendanceService) Sync(ctx context.Context, payload dto.SyncRequest, scannedBy string) ([]dto.ScanResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, NewBusinessError("At least one scan is required", CodeValidationError)
	}

	results := make([]dto.ScanResult, 0, len(payload.Scans))
	for _, scan := range payload.Scans {
		result, err := s.Scan(ctx, scan, scannedBy)
		if err != nil {
			results = append(results, dto.ScanResult{
				Code:   scan.Code,
				Status: ScanStatusFailed,
				Error:  err.Error(),
			})
			continue
		}
		results = append(results, result)
	}

	return results, nil
}
