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

// ResourceHandler manages shared study resource endpoints.
type ResourceHandler struct {
	service   service.ResourceService
	files     *FilesHandler
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewResourceHandler builds a resource handler instance.
func NewResourceHandler(service service.ResourceService, files *FilesHandler, validator *validator.Validate, logger zerolog.Logger) *ResourceHandler {
	return &ResourceHandler{
		service:   service,
		files:     files,
		validator: validator,
		logger:    logger.With().Str("component", "resource_handler").Logger(),
	}
}

// RegisterAuthed attaches the read-only routes available to any
// authenticated user.
func (h *ResourceHandler) RegisterAuthed(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/files/:filename", h.serveFile)
	router.Get("/:id", h.get)
}

// RegisterAdmin attaches the admin-only routes.
func (h *ResourceHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.upload)
	router.Delete("/:id", h.delete)
}

func (h *ResourceHandler) list(c *fiber.Ctx) error {
	resources, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "resources retrieved", resources)
}

func (h *ResourceHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	resource, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "resource retrieved", resource)
}

func (h *ResourceHandler) upload(c *fiber.Ctx) error {
	payload := dto.ResourceUploadRequest{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: strings.TrimSpace(c.FormValue("description")),
	}

	file, _ := c.FormFile("file")

	resource, err := h.service.Upload(c.Context(), payload, file, usernameFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "resource uploaded", resource)
}

func (h *ResourceHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "resource deleted", nil)
}

func (h *ResourceHandler) serveFile(c *fiber.Ctx) error {
	return h.files.serve(c, "resources", c.Params("filename"))
}

func (h *ResourceHandler) handleError(c *fiber.Ctx, err error) error {
	if response, handled := sendBusiness(c, err); handled {
		return response
	}

	switch {
	case errors.Is(err, service.ErrResourceNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "resource not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
