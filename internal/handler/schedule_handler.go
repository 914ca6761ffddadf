package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/repository"
	"github.com/chenaniah/academy-api/internal/service"
	"github.com/chenaniah/academy-api/internal/utils"
)

// ScheduleHandler manages interview slots, appointments and evaluations.
type ScheduleHandler struct {
	service   service.ScheduleService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewScheduleHandler builds a schedule handler instance.
func NewScheduleHandler(service service.ScheduleService, validator *validator.Validate, logger zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "schedule_handler").Logger(),
	}
}

// RegisterPublic attaches the unauthenticated routes.
func (h *ScheduleHandler) RegisterPublic(router fiber.Router) {
	router.Get("/time-slots", h.listSlots)
	router.Post("/appointments", h.bookAppointment)
	router.Post("/appointments/check", h.checkAppointment)
	router.Post("/verify-applicant", h.verifyApplicant)
}

// RegisterProtected attaches the staff-only routes.
func (h *ScheduleHandler) RegisterProtected(router fiber.Router) {
	router.Get("/stats", h.stats)
	router.Post("/time-slots", h.createSlot)
	router.Post("/time-slots/bulk", h.bulkCreateSlots)
	router.Put("/time-slots/:id", h.setSlotAvailability)
	router.Get("/appointments", h.listAppointments)
	router.Get("/appointments/evaluation", h.listForEvaluation)
	router.Put("/appointments/:id", h.updateAppointmentStatus)
	router.Put("/appointments/:id/approve", h.approve)
	router.Post("/appointments/:id/evaluation", h.submitEvaluation)
	router.Get("/appointments/:id/evaluations", h.evaluations)
	router.Put("/appointments/:id/decision", h.setDecision)
}

func (h *ScheduleHandler) stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "schedule stats retrieved", stats)
}

func (h *ScheduleHandler) listSlots(c *fiber.Ctx) error {
	slots, err := h.service.ListSlots(c.Context(), strings.TrimSpace(c.Query("date")))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "time slots retrieved", slots)
}

func (h *ScheduleHandler) createSlot(c *fiber.Ctx) error {
	var payload dto.TimeSlotCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "date and time are required")
	}

	slot, err := h.service.CreateSlot(c.Context(), payload)
	if err != nil {
		if errors.Is(err, repository.ErrSlotExists) {
			return utils.SendError(c, fiber.StatusBadRequest, "Time slot already exists")
		}
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "time slot created", slot)
}

func (h *ScheduleHandler) bulkCreateSlots(c *fiber.Ctx) error {
	var payload dto.BulkSlotRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "date, start time and end time are required")
	}

	result, err := h.service.BulkCreateSlots(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	message := fmt.Sprintf("Created %d time slots, skipped %d existing slots", result.SlotsCreated, result.SlotsSkipped)
	return utils.SendSuccess(c, message, result)
}

func (h *ScheduleHandler) setSlotAvailability(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SlotAvailabilityRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.SetSlotAvailability(c.Context(), id, payload.Available); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "time slot updated", nil)
}

func (h *ScheduleHandler) listAppointments(c *fiber.Ctx) error {
	appointments, err := h.service.ListAppointments(c.Context(), strings.TrimSpace(c.Query("search")))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "appointments retrieved", appointments)
}

func (h *ScheduleHandler) bookAppointment(c *fiber.Ctx) error {
	var payload dto.AppointmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "name, phone, date and time are required")
	}

	appointment, err := h.service.BookAppointment(c.Context(), payload)
	if err != nil {
		var exists *service.ErrAppointmentExists
		if errors.As(err, &exists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   exists.Error(),
				"existing_appointment": fiber.Map{
					"date": exists.Existing.Date,
					"time": exists.Existing.Time,
				},
			})
		}
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "appointment booked", appointment)
}

func (h *ScheduleHandler) checkAppointment(c *fiber.Ctx) error {
	var payload dto.VerifyApplicantRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(payload.Phone) == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "Phone number is required")
	}

	appointments, err := h.service.CheckExistingAppointment(c.Context(), payload.Phone)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":                  true,
		"has_existing_appointment": len(appointments) > 0,
		"appointments":             appointments,
	})
}

func (h *ScheduleHandler) verifyApplicant(c *fiber.Ctx) error {
	var payload dto.VerifyApplicantRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(payload.Phone) == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "Phone number is required")
	}

	result, err := h.service.VerifyApplicant(c.Context(), payload.Phone)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "applicant verified", result)
}

func (h *ScheduleHandler) updateAppointmentStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AppointmentStatusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "status must be one of scheduled, completed, no_show, cancelled")
	}

	if err := h.service.UpdateAppointmentStatus(c.Context(), id, payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "appointment updated", nil)
}

func (h *ScheduleHandler) approve(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ApprovalRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.Approve(c.Context(), id, payload.Approved); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "appointment approval updated", nil)
}

func (h *ScheduleHandler) setDecision(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.DecisionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.SetDecision(c.Context(), id, payload.Decision); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "decision recorded", nil)
}

func (h *ScheduleHandler) listForEvaluation(c *fiber.Ctx) error {
	appointments, err := h.service.ListForEvaluation(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "appointments retrieved", appointments)
}

func (h *ScheduleHandler) submitEvaluation(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.EvaluationSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "judge name, criteria name and a rating between 0 and 5 are required")
	}

	if err := h.service.SubmitEvaluation(c.Context(), id, payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluation saved", nil)
}

func (h *ScheduleHandler) evaluations(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	rows, averages, err := h.service.Evaluations(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluations retrieved", dto.EvaluationsResponse{
		Evaluations: rows,
		Averages:    averages,
	})
}

func (h *ScheduleHandler) handleError(c *fiber.Ctx, err error) error {
	if response, handled := sendBusiness(c, err); handled {
		return response
	}

	switch {
	case errors.Is(err, service.ErrAppointmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "appointment not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
