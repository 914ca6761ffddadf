package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
)

// ErrPrayerSlotNotFound indicates the prayer slot does not exist.
var ErrPrayerSlotNotFound = errors.New("prayer slot not found")

// DayNames indexes weekday display names by time.Weekday numbering.
var DayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// PrayerService manages the weekly round-the-clock prayer schedule.
type PrayerService interface {
	Generate(ctx context.Context) (int, error)
	Slots(ctx context.Context, day *int) ([]dto.PrayerDayView, error)
	MySlot(ctx context.Context, studentID uint) (*models.PrayerSlot, error)
	Claim(ctx context.Context, slotID, studentID uint) error
	Release(ctx context.Context, slotID, studentID uint) error
	Overview(ctx context.Context) (dto.PrayerOverview, error)
}

type prayerService struct {
	slots  repository.PrayerRepository
	logger zerolog.Logger
}

// NewPrayerService constructs the prayer schedule service.
func NewPrayerService(slotRepo repository.PrayerRepository, logger zerolog.Logger) PrayerService {
	return &prayerService{
		slots:  slotRepo,
		logger: logger.With().Str("component", "prayer_service").Logger(),
	}
}

// excludedSlot reports whether a window falls inside the weekly service
// hours: Wednesday 17:00-19:00 and Sunday 15:00-18:00.
func excludedSlot(dayOfWeek, hour, minute int) bool {
	minutes := hour*60 + minute
	if dayOfWeek == 3 && minutes >= 17*60 && minutes < 19*60 {
		return true
	}
	if dayOfWeek == 0 && minutes >= 15*60 && minutes < 18*60 {
		return true
	}

	return false
}

// Generate rebuilds the full week of 15-minute slots, dropping all claims.
func (s *prayerService) Generate(ctx context.Context) (int, error) {
	if err := s.slots.DeleteAll(ctx); err != nil {
		return 0, err
	}

	var slots []models.PrayerSlot
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			for minute := 0; minute < 60; minute += 15 {
				if excludedSlot(day, hour, minute) {
					continue
				}
				slots = append(slots, models.PrayerSlot{
					DayOfWeek: day,
					StartTime: fmt.Sprintf("%02d:%02d", hour, minute),
				})
			}
		}
	}

	if err := s.slots.BulkCreate(ctx, slots); err != nil {
		return 0, err
	}

	s.logger.Info().Int("slots", len(slots)).Msg("prayer schedule generated")

	return len(slots), nil
}

func newPrayerSlotView(slot models.PrayerSlot) dto.PrayerSlotView {
	view := dto.PrayerSlotView{
		ID:          slot.ID,
		DayOfWeek:   slot.DayOfWeek,
		StartTime:   slot.StartTime,
		Claimed:     slot.IsClaimed(),
		ClaimedByID: slot.ClaimedByID,
	}
	if slot.ClaimedBy != nil {
		name := slot.ClaimedBy.FullNameEnglish
		if name == "" {
			name = slot.ClaimedBy.Username
		}
		view.ClaimedBy = &name
	}

	return view
}

// Slots returns the schedule grouped by day, optionally restricted to one
// day of the week.
func (s *prayerService) Slots(ctx context.Context, day *int) ([]dto.PrayerDayView, error) {
	all, err := s.slots.List(ctx)
	if err != nil {
		return nil, err
	}

	days := make([]dto.PrayerDayView, 7)
	for i := range days {
		days[i].DayOfWeek = i
		days[i].Slots = []dto.PrayerSlotView{}
	}
	for _, slot := range all {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			continue
		}
		days[slot.DayOfWeek].Slots = append(days[slot.DayOfWeek].Slots, newPrayerSlotView(slot))
	}

	if day != nil {
		if *day < 0 || *day > 6 {
			return nil, NewBusinessError("Day must be between 0 and 6", CodeValidationError)
		}
		return days[*day : *day+1], nil
	}

	return days, nil
}

func (s *prayerService) MySlot(ctx context.Context, studentID uint) (*models.PrayerSlot, error) {
	all, err := s.slots.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range all {
		if all[i].ClaimedByID != nil && *all[i].ClaimedByID == studentID {
			return &all[i], nil
		}
	}

	return nil, nil
}

// Claim assigns a slot to a student. Each student holds at most one slot.
func (s *prayerService) Claim(ctx context.Context, slotID, studentID uint) error {
	if _, err := s.slots.GetByID(ctx, slotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPrayerSlotNotFound
		}
		return err
	}

	existing, err := s.MySlot(ctx, studentID)
	if err != nil {
		return err
	}
	if existing != nil {
		return NewBusinessError(
			"You already have a prayer slot claimed. Please release it first before claiming a new one.", "")
	}

	if err := s.slots.Claim(ctx, slotID, studentID); err != nil {
		if errors.Is(err, repository.ErrSlotClaimed) {
			return NewBusinessError("This slot is already claimed", "")
		}
		return err
	}

	s.logger.Info().Uint("slot_id", slotID).Uint("student_id", studentID).Msg("prayer slot claimed")

	return nil
}

func (s *prayerService) Release(ctx context.Context, slotID, studentID uint) error {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPrayerSlotNotFound
		}
		return err
	}

	if slot.ClaimedByID == nil || *slot.ClaimedByID != studentID {
		return NewBusinessError("You can only release your own prayer slot", "")
	}

	return s.slots.Release(ctx, slotID)
}

func (s *prayerService) Overview(ctx context.Context) (dto.PrayerOverview, error) {
	all, err := s.slots.List(ctx)
	if err != nil {
		return dto.PrayerOverview{}, err
	}

	overview := dto.PrayerOverview{TotalSlots: int64(len(all))}
	for _, slot := range all {
		if slot.IsClaimed() {
			overview.ClaimedSlots++
		}
	}
	if overview.TotalSlots > 0 {
		overview.Coverage = float64(overview.ClaimedSlots) / float64(overview.TotalSlots)
	}

	return overview, nil
}
