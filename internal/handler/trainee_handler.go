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

// TraineeHandler manages the admin trainee oversight endpoints.
type TraineeHandler struct {
	service   service.TraineeAdminService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTraineeHandler builds a trainee handler instance.
func NewTraineeHandler(service service.TraineeAdminService, validator *validator.Validate, logger zerolog.Logger) *TraineeHandler {
	return &TraineeHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "trainee_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *TraineeHandler) Register(router fiber.Router) {
	router.Get("/assignments", h.listAssignments)
	router.Post("/assignments", h.createAssignment)
	router.Get("/assignments/:id", h.getAssignment)
	router.Put("/assignments/submissions/:id/grade", h.gradeSubmission)
	router.Get("/payments", h.listPayments)
	router.Put("/payments/:id/status", h.updatePaymentStatus)
	router.Post("/payments/generate", h.generatePayments)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Put("/:id/status", h.updateStatus)
}

func (h *TraineeHandler) list(c *fiber.Ctx) error {
	query := dto.TraineeListQuery{
		Search: strings.TrimSpace(c.Query("search")),
		Status: strings.TrimSpace(c.Query("status")),
	}
	if page, err := parseQueryInt(c, "page"); err == nil {
		query.Page = page
	}
	if limit, err := parseQueryInt(c, "limit"); err == nil {
		query.Limit = limit
	}

	trainees, pagination, err := h.service.List(c.Context(), query)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "trainees retrieved", fiber.Map{
		"trainees":   trainees,
		"pagination": pagination,
	})
}

func (h *TraineeHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	student, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "trainee retrieved", student)
}

func (h *TraineeHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.TraineeStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "status must be one of active, inactive, suspended")
	}

	if err := h.service.UpdateStatus(c.Context(), id, payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "trainee status updated", nil)
}

func (h *TraineeHandler) createAssignment(c *fiber.Ctx) error {
	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "title, description and due date are required")
	}

	assignment, err := h.service.CreateAssignment(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created", assignment)
}

func (h *TraineeHandler) listAssignments(c *fiber.Ctx) error {
	assignments, err := h.service.ListAssignments(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *TraineeHandler) getAssignment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	assignment, err := h.service.GetAssignment(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment retrieved", assignment)
}

func (h *TraineeHandler) gradeSubmission(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "grade must be between 0 and 100")
	}

	submission, err := h.service.GradeSubmission(c.Context(), id, payload, usernameFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission graded", submission)
}

func (h *TraineeHandler) listPayments(c *fiber.Ctx) error {
	payments, err := h.service.ListPayments(c.Context(), strings.TrimSpace(c.Query("month")))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "payments retrieved", payments)
}

func (h *TraineeHandler) updatePaymentStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.PaymentStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "status must be one of pending, paid, overdue")
	}

	if err := h.service.UpdatePaymentStatus(c.Context(), id, payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "payment status updated", nil)
}

func (h *TraineeHandler) generatePayments(c *fiber.Ctx) error {
	var payload dto.GeneratePaymentsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "month and a positive amount are required")
	}

	created, err := h.service.GeneratePayments(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "payments generated", fiber.Map{"created": created})
}

func (h *TraineeHandler) handleError(c *fiber.Ctx, err error) error {
	if response, handled := sendBusiness(c, err); handled {
		return response
	}

	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "trainee not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
