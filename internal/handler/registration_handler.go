package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/service"
	"github.com/chenaniah/academy-api/internal/utils"
)

// RegistrationHandler exposes the registration window flag.
type RegistrationHandler struct {
	service service.SettingsService
	logger  zerolog.Logger
}

// NewRegistrationHandler builds a registration handler instance.
func NewRegistrationHandler(service service.SettingsService, logger zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		service: service,
		logger:  logger.With().Str("component", "registration_handler").Logger(),
	}
}

// RegisterPublic attaches the public status lookup.
func (h *RegistrationHandler) RegisterPublic(router fiber.Router) {
	router.Get("/status", h.status)
}

// RegisterAdmin attaches the admin toggle.
func (h *RegistrationHandler) RegisterAdmin(router fiber.Router) {
	router.Put("/status", h.setStatus)
}

func (h *RegistrationHandler) status(c *fiber.Ctx) error {
	open, err := h.service.RegistrationOpen(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "registration status retrieved", dto.RegistrationStatusResponse{RegistrationOpen: open})
}

func (h *RegistrationHandler) setStatus(c *fiber.Ctx) error {
	var payload dto.RegistrationStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	// Default to true if not specified.
	open := payload.RegistrationOpen == nil || *payload.RegistrationOpen

	if err := h.service.SetRegistrationOpen(c.Context(), open); err != nil {
		return h.handleError(c, err)
	}

	verb := "opened"
	if !open {
		verb = "closed"
	}
	message := fmt.Sprintf("Registration %s successfully", verb)
	return utils.SendSuccess(c, message, dto.RegistrationStatusResponse{RegistrationOpen: open})
}

func (h *RegistrationHandler) handleError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
