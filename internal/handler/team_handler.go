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

// TeamHandler manages ministry team endpoints.
type TeamHandler struct {
	service   service.TeamService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTeamHandler builds a team handler instance.
func NewTeamHandler(service service.TeamService, validator *validator.Validate, logger zerolog.Logger) *TeamHandler {
	return &TeamHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "team_handler").Logger(),
	}
}

// RegisterAuthed attaches routes available to any authenticated user.
// Literal segments are registered before the :id routes so fiber matches
// them first.
func (h *TeamHandler) RegisterAuthed(router fiber.Router) {
	router.Get("/my", h.myTeams)
	router.Get("/student/:id", h.teamsForStudent)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("/:id/join", h.join)
	router.Post("/:id/leave", h.leave)
	router.Get("/:id/notices", h.listNotices)
}

// RegisterAdmin attaches the admin-only routes.
func (h *TeamHandler) RegisterAdmin(router fiber.Router) {
	router.Delete("/notices/:id", h.deleteNotice)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/notices", h.createNotice)
}

func (h *TeamHandler) list(c *fiber.Ctx) error {
	teams, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "teams retrieved", teams)
}

func (h *TeamHandler) create(c *fiber.Ctx) error {
	var payload dto.TeamCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	team, err := h.service.Create(c.Context(), payload, usernameFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "team created", team)
}

func (h *TeamHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	team, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "team retrieved", team)
}

func (h *TeamHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.TeamUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	team, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "team updated", team)
}

func (h *TeamHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "team deleted", nil)
}

func (h *TeamHandler) join(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Join(c.Context(), id, userIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "joined team", nil)
}

func (h *TeamHandler) leave(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Leave(c.Context(), id, userIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "left team", nil)
}

func (h *TeamHandler) myTeams(c *fiber.Ctx) error {
	teams, err := h.service.TeamsForStudent(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "teams retrieved", teams)
}

func (h *TeamHandler) teamsForStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	teams, err := h.service.TeamsForStudent(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "teams retrieved", teams)
}

func (h *TeamHandler) createNotice(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.TeamNoticeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	notice, err := h.service.CreateNotice(c.Context(), id, payload, usernameFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "team notice created", notice)
}

func (h *TeamHandler) listNotices(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	notices, err := h.service.ListNotices(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "team notices retrieved", notices)
}

func (h *TeamHandler) deleteNotice(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteNotice(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "team notice deleted", nil)
}

func (h *TeamHandler) handleError(c *fiber.Ctx, err error) error {
	if response, handled := sendBusiness(c, err); handled {
		return response
	}

	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "team not found")
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
