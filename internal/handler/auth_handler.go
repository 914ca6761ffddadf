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

// AuthHandler manages login, password reset and student onboarding endpoints.
type AuthHandler struct {
	auth      service.AuthService
	lifecycle service.LifecycleService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthHandler builds an auth handler instance.
func NewAuthHandler(auth service.AuthService, lifecycle service.LifecycleService, validator *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		lifecycle: lifecycle,
		validator: validator,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.adminLogin)
	router.Post("/coordinator/login", h.coordinatorLogin)
	router.Post("/student/login", h.studentLogin)
	router.Post("/student/reset-password", h.resetPassword)
	router.Post("/student/check-eligibility", h.checkEligibility)
	router.Post("/student/register", h.register)
}

func (h *AuthHandler) adminLogin(c *fiber.Ctx) error {
	payload, err := h.parseLogin(c)
	if err != nil {
		return err
	}

	result, err := h.auth.AdminLogin(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "login successful", result)
}

func (h *AuthHandler) coordinatorLogin(c *fiber.Ctx) error {
	payload, err := h.parseLogin(c)
	if err != nil {
		return err
	}

	result, err := h.auth.CoordinatorLogin(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "login successful", result)
}

func (h *AuthHandler) studentLogin(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(payload.Username) == "" || payload.Password == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "Username and password are required")
	}

	result, err := h.auth.StudentLogin(c.Context(), payload)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "login successful", result)
}

func (h *AuthHandler) resetPassword(c *fiber.Ctx) error {
	var payload dto.ResetPasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Username, phone number and new password are required")
	}

	if err := h.auth.ResetStudentPassword(c.Context(), payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "password reset successful", nil)
}

func (h *AuthHandler) checkEligibility(c *fiber.Ctx) error {
	var payload dto.EligibilityRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(payload.Phone) == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "Phone number is required")
	}

	result, err := h.lifecycle.CheckEligibility(c.Context(), payload.Phone)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "eligibility checked", result)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.lifecycle.Register(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "registration successful", result)
}

func (h *AuthHandler) parseLogin(c *fiber.Ctx) (dto.LoginRequest, error) {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return payload, utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return payload, utils.SendError(c, fiber.StatusBadRequest, "Username and password are required")
	}
	return payload, nil
}

func (h *AuthHandler) handleError(c *fiber.Ctx, err error) error {
	if response, handled := sendBusiness(c, err); handled {
		return response
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "No account found with the provided username and phone number")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
