package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/chenaniah/academy-api/internal/utils"
)

var allowedUploadTypes = map[string]struct{}{
	"assignments":       {},
	"payments":          {},
	"resources":         {},
	"student-documents": {},
}

// FilesHandler serves locally stored uploads.
type FilesHandler struct {
	uploadsDir string
	logger     zerolog.Logger
}

// NewFilesHandler builds a files handler rooted at the uploads directory.
func NewFilesHandler(uploadsDir string, logger zerolog.Logger) *FilesHandler {
	return &FilesHandler{
		uploadsDir: uploadsDir,
		logger:     logger.With().Str("component", "files_handler").Logger(),
	}
}

// Register attaches the download route.
func (h *FilesHandler) Register(router fiber.Router) {
	router.Get("/:type/:filename", h.download)
}

func (h *FilesHandler) download(c *fiber.Ctx) error {
	return h.serve(c, c.Params("type"), c.Params("filename"))
}

func (h *FilesHandler) serve(c *fiber.Ctx, fileType, filename string) error {
	fileType = strings.TrimSpace(fileType)
	if _, ok := allowedUploadTypes[fileType]; !ok {
		return utils.SendError(c, fiber.StatusNotFound, "file not found")
	}

	filename, err := safeFilename(filename)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid filename")
	}

	path := filepath.Join(h.uploadsDir, fileType, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return utils.SendError(c, fiber.StatusNotFound, "file not found")
	}

	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	} else {
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	}

	return c.SendFile(path)
}

// safeFilename rejects any name that could escape the uploads directory.
func safeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, "/\\") {
		return "", fmt.Errorf("invalid filename")
	}
	if filepath.Base(name) != name {
		return "", fmt.Errorf("invalid filename")
	}
	return name, nil
}
