package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/service"
	"github.com/chenaniah/academy-api/internal/utils"
)

// SessionNoteHandler manages class note endpoints.
type SessionNoteHandler struct {
	service   service.SessionNoteService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSessionNoteHandler builds a session note handler instance.
func NewSessionNoteHandler(service service.SessionNoteService, validator *validator.Validate, logger zerolog.Logger) *SessionNoteHandler {
	return &SessionNoteHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "session_note_handler").Logger(),
	}
}

// RegisterAuthed attaches routes available to any authenticated user.
func (h *SessionNoteHandler) RegisterAuthed(router fiber.Router) {
	router.Get("/sessions", h.sessions)
	router.Get("/session/:id", h.listForSession)
	router.Post("", h.createText)
	router.Post("/image", h.createImage)
	router.Delete("/:id", h.delete)
}

// RegisterStaff attaches the staff-only routes.
func (h *SessionNoteHandler) RegisterStaff(router fiber.Router) {
	router.Get("", h.list)
}

func noteAuthor(c *fiber.Ctx) service.NoteAuthor {
	return service.NoteAuthor{
		UserID: userIDFromContext(c),
		Role:   userRoleFromContext(c),
	}
}

func (h *SessionNoteHandler) sessions(c *fiber.Ctx) error {
	summaries, err := h.service.Sessions(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "sessions retrieved", summaries)
}

func (h *SessionNoteHandler) listForSession(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	notes, err := h.service.ListForSession(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "notes retrieved", notes)
}

func (h *SessionNoteHandler) list(c *fiber.Ctx) error {
	var query dto.NoteListQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	notes, pagination, err := h.service.List(c.Context(), query)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "notes retrieved", fiber.Map{
		"notes":      notes,
		"pagination": pagination,
	})
}

func (h *SessionNoteHandler) createText(c *fiber.Ctx) error {
	var payload dto.NoteCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	note, err := h.service.CreateText(c.Context(), noteAuthor(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "note created", note)
}

func (h *SessionNoteHandler) createImage(c *fiber.Ctx) error {
	sessionID, _ := parseUint(c.FormValue("session_id"))
	content := strings.TrimSpace(c.FormValue("content"))
	file, _ := c.FormFile("file")

	note, err := h.service.CreateImage(c.Context(), noteAuthor(c), sessionID, content, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "note created", note)
}

func (h *SessionNoteHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), noteAuthor(c), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "note deleted", nil)
}

func (h *SessionNoteHandler) handleError(c *fiber.Ctx, err error) error {
	if response, handled := sendBusiness(c, err); handled {
		return response
	}

	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "note not found")
	case errors.Is(err, service.ErrSessionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
