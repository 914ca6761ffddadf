package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/service"
	"github.com/chenaniah/academy-api/internal/utils"
)

// ApplicantHandler exposes the public application status lookup.
type ApplicantHandler struct {
	lifecycle service.LifecycleService
	logger    zerolog.Logger
}

// NewApplicantHandler builds an applicant handler instance.
func NewApplicantHandler(lifecycle service.LifecycleService, logger zerolog.Logger) *ApplicantHandler {
	return &ApplicantHandler{
		lifecycle: lifecycle,
		logger:    logger.With().Str("component", "applicant_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ApplicantHandler) Register(router fiber.Router) {
	router.Post("/status", h.status)
}

func (h *ApplicantHandler) status(c *fiber.Ctx) error {
	var payload dto.StatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(payload.Phone) == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "Phone number is required")
	}

	result, err := h.lifecycle.ResolveStatus(c.Context(), payload.Phone)
	if err != nil {
		if response, handled := sendBusiness(c, err); handled {
			return response
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "status resolved", result)
}
