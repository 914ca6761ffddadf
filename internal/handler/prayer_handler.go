package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/chenaniah/academy-api/internal/service"
	"github.com/chenaniah/academy-api/internal/utils"
)

// PrayerHandler manages the prayer chain endpoints.
type PrayerHandler struct {
	service service.PrayerService
	logger  zerolog.Logger
}

// NewPrayerHandler builds a prayer handler instance.
func NewPrayerHandler(service service.PrayerService, logger zerolog.Logger) *PrayerHandler {
	return &PrayerHandler{
		service: service,
		logger:  logger.With().Str("component", "prayer_handler").Logger(),
	}
}

// RegisterStudent attaches the student-facing routes.
func (h *PrayerHandler) RegisterStudent(router fiber.Router) {
	router.Get("/slots", h.slots)
	router.Get("/my-slot", h.mySlot)
	router.Post("/slots/:id/claim", h.claim)
	router.Delete("/slots/:id/claim", h.release)
}

// RegisterAdmin attaches the admin-only routes.
func (h *PrayerHandler) RegisterAdmin(router fiber.Router) {
	router.Post("/generate", h.generate)
	router.Get("/admin/overview", h.overview)
}

func (h *PrayerHandler) generate(c *fiber.Ctx) error {
	created, err := h.service.Generate(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	message := fmt.Sprintf("Generated %d prayer slots", created)
	return utils.SendSuccess(c, message, fiber.Map{"created": created})
}

func (h *PrayerHandler) slots(c *fiber.Ctx) error {
	var day *int
	if raw := strings.TrimSpace(c.Query("day")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "day must be a number between 0 and 6")
		}
		day = &parsed
	}

	days, err := h.service.Slots(c.Context(), day)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "prayer slots retrieved", days)
}

func (h *PrayerHandler) mySlot(c *fiber.Ctx) error {
	slot, err := h.service.MySlot(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "prayer slot retrieved", slot)
}

func (h *PrayerHandler) claim(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Claim(c.Context(), id, userIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "prayer slot claimed", nil)
}

func (h *PrayerHandler) release(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Release(c.Context(), id, userIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "prayer slot released", nil)
}

func (h *PrayerHandler) overview(c *fiber.Ctx) error {
	overview, err := h.service.Overview(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "prayer overview retrieved", overview)
}

func (h *PrayerHandler) handleError(c *fiber.Ctx, err error) error {
	if response, handled := sendBusiness(c, err); handled {
		return response
	}

	switch {
	case errors.Is(err, service.ErrPrayerSlotNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "prayer slot not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
