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

// StudentHandler manages the authenticated student portal endpoints.
type StudentHandler struct {
	service   service.StudentPortalService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentHandler builds a student handler instance.
func NewStudentHandler(service service.StudentPortalService, validator *validator.Validate, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("/profile", h.profile)
	router.Post("/upload-document", h.uploadDocument)
	router.Post("/submit-essay", h.submitEssay)
	router.Get("/assignments", h.assignments)
	router.Post("/submit-assignment", h.submitAssignment)
	router.Post("/submit-payment", h.submitPayment)
	router.Get("/payments", h.payments)
}

func (h *StudentHandler) profile(c *fiber.Ctx) error {
	profile, err := h.service.Profile(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *StudentHandler) uploadDocument(c *fiber.Ctx) error {
	docType := strings.TrimSpace(c.FormValue("type"))
	if docType == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "document type is required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	profile, err := h.service.UploadDocument(c.Context(), userIDFromContext(c), docType, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "document uploaded", profile)
}

func (h *StudentHandler) submitEssay(c *fiber.Ctx) error {
	var payload dto.EssayRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "essay must be at least 10 characters")
	}

	profile, err := h.service.SubmitEssay(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "essay submitted", profile)
}

func (h *StudentHandler) assignments(c *fiber.Ctx) error {
	assignments, err := h.service.Assignments(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *StudentHandler) submitAssignment(c *fiber.Ctx) error {
	assignmentID, err := parseFormUint(c, "assignment_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	text := strings.TrimSpace(c.FormValue("text"))
	file, _ := c.FormFile("file")

	submission, err := h.service.SubmitAssignment(c.Context(), userIDFromContext(c), assignmentID, text, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment submitted", submission)
}

func (h *StudentHandler) submitPayment(c *fiber.Ctx) error {
	var payload dto.PaymentSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "month and a positive amount are required")
	}

	slip, _ := c.FormFile("slip")

	payment, err := h.service.SubmitPayment(c.Context(), userIDFromContext(c), payload, slip)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "payment submitted", payment)
}

func (h *StudentHandler) payments(c *fiber.Ctx) error {
	payments, err := h.service.Payments(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "payments retrieved", payments)
}

func (h *StudentHandler) handleError(c *fiber.Ctx, err error) error {
	if response, handled := sendBusiness(c, err); handled {
		return response
	}

	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func parseFormUint(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.FormValue(key))
	if value == "" {
		return 0, errors.New("missing " + key)
	}
	parsed, err := parseUint(value)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return parsed, nil
}
