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

// NoticeHandler manages public and administrative notice endpoints.
type NoticeHandler struct {
	service   service.NoticeService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewNoticeHandler builds a notice handler instance.
func NewNoticeHandler(service service.NoticeService, validator *validator.Validate, logger zerolog.Logger) *NoticeHandler {
	return &NoticeHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "notice_handler").Logger(),
	}
}

// RegisterPublic attaches the unauthenticated routes.
func (h *NoticeHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.listPublic)
}

// RegisterAuthed attaches routes available to any authenticated user.
func (h *NoticeHandler) RegisterAuthed(router fiber.Router) {
	router.Get("/student/:id", h.listForStudent)
}

// RegisterAdmin attaches the admin-only routes.
func (h *NoticeHandler) RegisterAdmin(router fiber.Router) {
	router.Get("/all", h.listAll)
	router.Post("", h.create)
	router.Post("/personal", h.createPersonal)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *NoticeHandler) listPublic(c *fiber.Ctx) error {
	notices, err := h.service.ListPublic(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "notices retrieved", notices)
}

func (h *NoticeHandler) listForStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	// Students may only read their own notices.
	if userRoleFromContext(c) == service.RoleStudent && userIDFromContext(c) != id {
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}

	notices, err := h.service.ListForStudent(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "notices retrieved", notices)
}

func (h *NoticeHandler) listAll(c *fiber.Ctx) error {
	notices, err := h.service.ListAll(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "notices retrieved", notices)
}

func (h *NoticeHandler) create(c *fiber.Ctx) error {
	var payload dto.NoticeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	notice, err := h.service.Create(c.Context(), payload, usernameFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "notice created", notice)
}

func (h *NoticeHandler) createPersonal(c *fiber.Ctx) error {
	var payload dto.PersonalNoticeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	notice, err := h.service.CreatePersonal(c.Context(), payload, usernameFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "notice created", notice)
}

func (h *NoticeHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.NoticeUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	notice, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "notice updated", notice)
}

func (h *NoticeHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "notice deleted", nil)
}

func (h *NoticeHandler) handleError(c *fiber.Ctx, err error) error {
	if response, handled := sendBusiness(c, err); handled {
		return response
	}

	switch {
	case errors.Is(err, service.ErrNoticeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "notice not found")
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
