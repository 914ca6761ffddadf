package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
	"github.com/chenaniah/academy-api/internal/utils"
)

// ErrAppointmentNotFound indicates the appointment does not exist.
var ErrAppointmentNotFound = errors.New("appointment not found")

// ExistingAppointment names the slot already held by an applicant who
// tries to book a second interview.
type ExistingAppointment struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ErrAppointmentExists is returned when an applicant already has a
// scheduled interview.
type ErrAppointmentExists struct {
	Existing ExistingAppointment
}

func (e *ErrAppointmentExists) Error() string {
	return "You already have a scheduled interview appointment."
}

// ScheduleService manages interview slots, appointments and evaluations.
type ScheduleService interface {
	Stats(ctx context.Context) (dto.ScheduleStatsResponse, error)
	ListSlots(ctx context.Context, date string) ([]models.TimeSlot, error)
	CreateSlot(ctx context.Context, payload dto.TimeSlotCreateRequest) (models.TimeSlot, error)
	BulkCreateSlots(ctx context.Context, payload dto.BulkSlotRequest) (dto.BulkSlotResult, error)
	SetSlotAvailability(ctx context.Context, id uint, available bool) error

	ListAppointments(ctx context.Context, search string) ([]models.Appointment, error)
	BookAppointment(ctx context.Context, payload dto.AppointmentCreateRequest) (models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id uint, payload dto.AppointmentStatusUpdateRequest) error
	Approve(ctx context.Context, id uint, approved bool) error
	SetDecision(ctx context.Context, id uint, decision string) error

	ListForEvaluation(ctx context.Context) ([]models.Appointment, error)
	SubmitEvaluation(ctx context.Context, appointmentID uint, payload dto.EvaluationSubmitRequest) error
	Evaluations(ctx context.Context, appointmentID uint) ([]models.InterviewEvaluation, map[string]float64, error)

	VerifyApplicant(ctx context.Context, phone string) (dto.VerifyApplicantResponse, error)
	CheckExistingAppointment(ctx context.Context, phone string) ([]models.Appointment, error)
}

type scheduleService struct {
	appointments repository.AppointmentRepository
	slots        repository.TimeSlotRepository
	submissions  repository.SubmissionRepository
	evaluations  repository.EvaluationRepository
	validator    *validator.Validate
	logger       zerolog.Logger
	now          func() time.Time
}

// NewScheduleService constructs the scheduling service.
func NewScheduleService(
	appointmentRepo repository.AppointmentRepository,
	slotRepo repository.TimeSlotRepository,
	submissionRepo repository.SubmissionRepository,
	evaluationRepo repository.EvaluationRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) ScheduleService {
	return &scheduleService{
		appointments: appointmentRepo,
		slots:        slotRepo,
		submissions:  submissionRepo,
		evaluations:  evaluationRepo,
		validator:    validate,
		logger:       logger.With().Str("component", "schedule_service").Logger(),
		now:          time.Now,
	}
}

func (s *scheduleService) Stats(ctx context.Context) (dto.ScheduleStatsResponse, error) {
	all, err := s.appointments.ListAll(ctx)
	if err != nil {
		return dto.ScheduleStatsResponse{}, err
	}

	stats := dto.ScheduleStatsResponse{Total: int64(len(all))}
	for _, apt := range all {
		switch apt.Status {
		case models.AppointmentStatusScheduled:
			stats.Scheduled++
		case models.AppointmentStatusCancelled:
			stats.Cancelled++
		}

		if decision, ok := apt.Decision(); ok {
			if decision == models.DecisionAccepted {
				stats.Accepted++
			} else {
				stats.Rejected++
			}
		}
	}

	return stats, nil
}

func (s *scheduleService) ListSlots(ctx context.Context, date string) ([]models.TimeSlot, error) {
	return s.slots.List(ctx, date)
}

func (s *scheduleService) CreateSlot(ctx context.Context, payload dto.TimeSlotCreateRequest) (models.TimeSlot, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.TimeSlot{}, NewBusinessError("date and time are required", CodeValidationError)
	}

	slot, err := newTimeSlot(payload.Date, payload.Time, payload.Location)
	if err != nil {
		return models.TimeSlot{}, err
	}

	if err := s.slots.Create(ctx, &slot); err != nil {
		if errors.Is(err, repository.ErrSlotExists) {
			return models.TimeSlot{}, NewBusinessError("A time slot already exists at this date and time", "")
		}
		return models.TimeSlot{}, err
	}

	return slot, nil
}

// newTimeSlot derives the display label and day period from the slot time.
func newTimeSlot(date, slotTime string, location *string) (models.TimeSlot, error) {
	parsed, err := time.Parse("15:04", slotTime)
	if err != nil {
		return models.TimeSlot{}, NewBusinessError("Invalid time format. Use HH:MM", CodeValidationError)
	}

	var period *string
	hour := parsed.Hour()
	switch {
	case hour >= 9 && hour < 14:
		p := models.SlotPeriodMorning
		period = &p
	case hour >= 14 && hour <= 17:
		p := models.SlotPeriodAfternoon
		period = &p
	}

	return models.TimeSlot{
		Date:      date,
		Time:      slotTime,
		Label:     parsed.Format("3:04 PM"),
		Available: true,
		Period:    period,
		Location:  location,
	}, nil
}

func (s *scheduleService) BulkCreateSlots(ctx context.Context, payload dto.BulkSlotRequest) (dto.BulkSlotResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BulkSlotResult{}, NewBusinessError("date, start_time, and end_time are required", CodeValidationError)
	}

	start, err := time.Parse("15:04", payload.StartTime)
	if err != nil {
		return dto.BulkSlotResult{}, NewBusinessError("Invalid time format. Use HH:MM", CodeValidationError)
	}
	end, err := time.Parse("15:04", payload.EndTime)
	if err != nil {
		return dto.BulkSlotResult{}, NewBusinessError("Invalid time format. Use HH:MM", CodeValidationError)
	}
	if !end.After(start) {
		return dto.BulkSlotResult{}, NewBusinessError("end_time must be after start_time", CodeValidationError)
	}

	interval := payload.IntervalMinutes
	if interval <= 0 {
		interval = 30
	}
	if payload.NumberOfSlots > 0 {
		total := int(end.Sub(start).Minutes())
		interval = total / payload.NumberOfSlots
		if interval < 1 {
			interval = 1
		}
	}

	var result dto.BulkSlotResult
	created := 0
	for current := start; current.Before(end); current = current.Add(time.Duration(interval) * time.Minute) {
		slot, err := newTimeSlot(payload.Date, current.Format("15:04"), payload.Location)
		if err != nil {
			return result, err
		}

		if err := s.slots.Create(ctx, &slot); err != nil {
			if errors.Is(err, repository.ErrSlotExists) {
				result.SlotsSkipped++
				continue
			}
			return result, err
		}

		result.SlotsCreated++
		created++
		if payload.NumberOfSlots > 0 && created >= payload.NumberOfSlots {
			break
		}
	}

	s.logger.Info().Str("date", payload.Date).Int("created", result.SlotsCreated).
		Int("skipped", result.SlotsSkipped).Msg("bulk slots generated")

	return result, nil
}

func (s *scheduleService) SetSlotAvailability(ctx context.Context, id uint, available bool) error {
	return s.slots.UpdateAvailability(ctx, id, available)
}

func (s *scheduleService) ListAppointments(ctx context.Context, search string) ([]models.Appointment, error) {
	if search != "" {
		return s.appointments.Search(ctx, search)
	}

	return s.appointments.ListAll(ctx)
}

// matchingByPhone filters appointments down to those sharing the phone's
// trailing-digit key.
func matchingByPhone(appointments []models.Appointment, phone string) []models.Appointment {
	key, ok := utils.PhoneKey(phone)
	if !ok {
		return nil
	}

	var matched []models.Appointment
	for _, apt := range appointments {
		if aptKey, ok := utils.PhoneKey(apt.ApplicantPhone); ok && aptKey == key {
			matched = append(matched, apt)
		}
	}

	return matched
}

func (s *scheduleService) BookAppointment(ctx context.Context, payload dto.AppointmentCreateRequest) (models.Appointment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Appointment{}, NewBusinessError("applicant_name, applicant_phone, scheduled_date and scheduled_time are required", CodeValidationError)
	}

	key, ok := utils.PhoneKey(payload.ApplicantPhone)
	if !ok {
		return models.Appointment{}, NewBusinessError("Invalid phone number format", CodeValidationError)
	}

	all, err := s.appointments.ListAll(ctx)
	if err != nil {
		return models.Appointment{}, err
	}

	for _, apt := range matchingByPhone(all, payload.ApplicantPhone) {
		if apt.Status == models.AppointmentStatusScheduled {
			return models.Appointment{}, &ErrAppointmentExists{Existing: ExistingAppointment{
				Date: apt.ScheduledDate,
				Time: apt.ScheduledTime,
			}}
		}
	}

	submissions, err := s.submissions.ListAll(ctx)
	if err != nil {
		return models.Appointment{}, err
	}

	var submission *models.Submission
	for i := range submissions {
		if subKey, ok := utils.PhoneKey(submissions[i].Phone); ok && subKey == key {
			submission = &submissions[i]
			break
		}
	}

	if submission == nil {
		return models.Appointment{}, NewBusinessError(
			"Phone number not found in our system. Please ensure you have submitted an application first.", "")
	}

	switch submission.Status {
	case models.SubmissionStatusApproved:
	case models.SubmissionStatusPending:
		return models.Appointment{}, NewBusinessError(
			"Your application is still under review. Please wait for approval before scheduling an interview.", "")
	case models.SubmissionStatusRejected:
		return models.Appointment{}, NewBusinessError(
			"Your application was not approved. You cannot schedule an interview at this time.", "")
	default:
		return models.Appointment{}, NewBusinessError(
			"Your application must be approved before you can schedule an interview.", "")
	}

	appointment := models.Appointment{
		ApplicantName:        payload.ApplicantName,
		ApplicantEmail:       payload.ApplicantEmail,
		ApplicantPhone:       payload.ApplicantPhone,
		ScheduledDate:        payload.ScheduledDate,
		ScheduledTime:        payload.ScheduledTime,
		Status:               models.AppointmentStatusScheduled,
		Notes:                payload.Notes,
		SelectedSong:         payload.SelectedSong,
		AdditionalSong:       payload.AdditionalSong,
		AdditionalSongSinger: payload.AdditionalSongSinger,
	}

	if err := s.appointments.Create(ctx, &appointment); err != nil {
		return models.Appointment{}, err
	}

	// Booked slots stop accepting new appointments.
	if slot, err := s.slots.FindByDateTime(ctx, payload.ScheduledDate, payload.ScheduledTime); err == nil {
		if err := s.slots.UpdateAvailability(ctx, slot.ID, false); err != nil {
			s.logger.Warn().Err(err).Uint("slot_id", slot.ID).Msg("failed to mark slot unavailable")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn().Err(err).Msg("failed to look up booked slot")
	}

	s.logger.Info().Uint("appointment_id", appointment.ID).Str("date", appointment.ScheduledDate).
		Msg("appointment booked")

	return appointment, nil
}

func (s *scheduleService) UpdateAppointmentStatus(ctx context.Context, id uint, payload dto.AppointmentStatusUpdateRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return NewBusinessError("Status is required", CodeValidationError)
	}

	if _, err := s.appointments.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}

	// Terminal statuses settle the final decision as well.
	var decision *string
	var decidedAt *time.Time
	switch payload.Status {
	case models.AppointmentStatusCompleted:
		d := models.DecisionAccepted
		at := s.now()
		decision, decidedAt = &d, &at
	case models.AppointmentStatusNoShow:
		d := models.DecisionRejected
		at := s.now()
		decision, decidedAt = &d, &at
	}

	return s.appointments.UpdateStatus(ctx, id, payload.Status, decision, decidedAt)
}

func (s *scheduleService) Approve(ctx context.Context, id uint, approved bool) error {
	if _, err := s.appointments.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}

	var at *time.Time
	if approved {
		now := s.now()
		at = &now
	}

	return s.appointments.SetApproval(ctx, id, approved, at)
}

func (s *scheduleService) SetDecision(ctx context.Context, id uint, decision string) error {
	if decision != models.DecisionAccepted && decision != models.DecisionRejected {
		return NewBusinessError(`Decision must be "accepted" or "rejected"`, CodeValidationError)
	}

	if _, err := s.appointments.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}

	return s.appointments.SetDecision(ctx, id, decision, s.now())
}

func (s *scheduleService) ListForEvaluation(ctx context.Context) ([]models.Appointment, error) {
	return s.appointments.ListForEvaluation(ctx)
}

func (s *scheduleService) SubmitEvaluation(ctx context.Context, appointmentID uint, payload dto.EvaluationSubmitRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return NewBusinessError("Missing required fields", CodeValidationError)
	}
	if payload.Rating < 0 || payload.Rating > 5 {
		return NewBusinessError("Rating must be between 0 and 5", CodeValidationError)
	}

	if _, err := s.appointments.GetByID(ctx, appointmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}

	evaluation := models.InterviewEvaluation{
		AppointmentID: appointmentID,
		JudgeName:     payload.JudgeName,
		CriteriaName:  payload.CriteriaName,
		Rating:        payload.Rating,
		Comments:      payload.Comments,
	}

	if err := s.evaluations.Upsert(ctx, &evaluation); err != nil {
		return fmt.Errorf("failed to store evaluation: %w", err)
	}

	s.logger.Info().Uint("appointment_id", appointmentID).Str("judge", payload.JudgeName).
		Str("criteria", payload.CriteriaName).Msg("evaluation recorded")

	return nil
}

func (s *scheduleService) Evaluations(ctx context.Context, appointmentID uint) ([]models.InterviewEvaluation, map[string]float64, error) {
	evaluations, err := s.evaluations.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, nil, err
	}

	return evaluations, EvaluationAverages(evaluations), nil
}

func (s *scheduleService) VerifyApplicant(ctx context.Context, phone string) (dto.VerifyApplicantResponse, error) {
	key, err := validPhoneKey(phone)
	if err != nil {
		return dto.VerifyApplicantResponse{}, err
	}

	submissions, err := s.submissions.ListAll(ctx)
	if err != nil {
		return dto.VerifyApplicantResponse{}, err
	}

	for _, submission := range submissions {
		if subKey, ok := utils.PhoneKey(submission.Phone); ok && subKey == key {
			name := submission.Name
			return dto.VerifyApplicantResponse{IsApplicant: true, ApplicantName: &name}, nil
		}
	}

	return dto.VerifyApplicantResponse{IsApplicant: false}, nil
}

func (s *scheduleService) CheckExistingAppointment(ctx context.Context, phone string) ([]models.Appointment, error) {
	if phone == "" {
		return nil, NewBusinessError("Phone number is required", "")
	}

	all, err := s.appointments.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var active []models.Appointment
	for _, apt := range matchingByPhone(all, phone) {
		if apt.Status == models.AppointmentStatusScheduled {
			active = append(active, apt)
		}
	}

	return active, nil
}
