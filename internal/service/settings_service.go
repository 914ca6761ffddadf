package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
)

// SettingsService exposes runtime flags such as whether applicant
// registration is open.
type SettingsService interface {
	RegistrationOpen(ctx context.Context) (bool, error)
	SetRegistrationOpen(ctx context.Context, open bool) error
}

type settingsService struct {
	settings repository.SettingRepository
	logger   zerolog.Logger
}

// NewSettingsService constructs the settings service.
func NewSettingsService(settingRepo repository.SettingRepository, logger zerolog.Logger) SettingsService {
	return &settingsService{
		settings: settingRepo,
		logger:   logger.With().Str("component", "settings_service").Logger(),
	}
}

// RegistrationOpen defaults to open when the flag has never been set.
func (s *settingsService) RegistrationOpen(ctx context.Context) (bool, error) {
	value, err := s.settings.Get(ctx, models.SettingRegistrationOpen)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, err
	}

	return value != "false", nil
}

func (s *settingsService) SetRegistrationOpen(ctx context.Context, open bool) error {
	value := "true"
	if !open {
		value = "false"
	}

	s.logger.Info().Bool("open", open).Msg("registration flag changed")

	return s.settings.Set(ctx, models.SettingRegistrationOpen, value)
}
