package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/service"
	"github.com/chenaniah/academy-api/internal/utils"
)

// AttendanceHandler manages attendance sessions and QR scan endpoints.
type AttendanceHandler struct {
	service   service.AttendanceService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAttendanceHandler builds an attendance handler instance.
func NewAttendanceHandler(service service.AttendanceService, validator *validator.Validate, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Post("/sessions", h.createSession)
	router.Get("/sessions", h.listSessions)
	router.Get("/sessions/:id", h.getSession)
	router.Put("/sessions/:id/status", h.setSessionStatus)
	router.Get("/sessions/:id/stats", h.sessionStats)
	router.Post("/scan", h.scan)
	router.Post("/sync", h.sync)
}

func (h *AttendanceHandler) createSession(c *fiber.Ctx) error {
	var payload dto.SessionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "title and date are required")
	}

	session, err := h.service.CreateSession(c.Context(), payload, usernameFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "session created", session)
}

func (h *AttendanceHandler) listSessions(c *fiber.Ctx) error {
	sessions, err := h.service.ListSessions(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "sessions retrieved", sessions)
}

func (h *AttendanceHandler) getSession(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	session, records, err := h.service.GetSession(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "session retrieved", fiber.Map{
		"session": session,
		"records": records,
	})
}

func (h *AttendanceHandler) setSessionStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SessionStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "status must be open or closed")
	}

	if err := h.service.SetSessionStatus(c.Context(), id, payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "session status updated", nil)
}

func (h *AttendanceHandler) sessionStats(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	stats, err := h.service.SessionStats(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "session stats retrieved", stats)
}

func (h *AttendanceHandler) scan(c *fiber.Ctx) error {
	var payload dto.ScanRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "session_id and code are required")
	}

	result, err := h.service.Scan(c.Context(), payload, usernameFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "scan recorded", result)
}

func (h *AttendanceHandler) sync(c *fiber.Ctx) error {
	var payload dto.SyncRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "at least one scan is required")
	}

	results, err := h.service.Sync(c.Context(), payload, usernameFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "scans synced", results)
}

func (h *AttendanceHandler) handleError(c *fiber.Ctx, err error) error {
	if response, handled := sendBusiness(c, err); handled {
		return response
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "attendance session not found")
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
