package handler

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/chenaniah/academy-api/internal/utils"
)

// audioContentTypes maps file extensions to the MIME type served.
// Anything else falls back to audio/mpeg.
var audioContentTypes = map[string]string{
	".mp3": "audio/mpeg",
	".ogg": "audio/ogg",
	".oga": "audio/ogg",
	".wav": "audio/wav",
}

// AudioHandler streams practice recordings to authenticated users.
type AudioHandler struct {
	audioDir string
	logger   zerolog.Logger
}

// NewAudioHandler builds an audio handler rooted at the audio directory.
func NewAudioHandler(audioDir string, logger zerolog.Logger) *AudioHandler {
	return &AudioHandler{
		audioDir: audioDir,
		logger:   logger.With().Str("component", "audio_handler").Logger(),
	}
}

// Register attaches the streaming route.
func (h *AudioHandler) Register(router fiber.Router) {
	router.Get("/*", h.serve)
}

func (h *AudioHandler) serve(c *fiber.Ctx) error {
	root, err := filepath.Abs(h.audioDir)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to resolve audio directory")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	relative := c.Params("*")
	if decoded, err := url.PathUnescape(relative); err == nil {
		relative = decoded
	}

	requested := filepath.Join(root, filepath.FromSlash(relative))
	if !strings.HasPrefix(requested, root+string(os.PathSeparator)) {
		return utils.SendError(c, fiber.StatusForbidden, "Access denied")
	}

	info, err := os.Stat(requested)
	if err != nil || info.IsDir() {
		return utils.SendError(c, fiber.StatusNotFound, "Audio file not found")
	}

	if err := c.SendFile(requested); err != nil {
		return utils.SendError(c, fiber.StatusNotFound, "Audio file not found")
	}

	// SendFile guesses the type from the extension; force the audio
	// variants we actually serve.
	contentType, ok := audioContentTypes[strings.ToLower(filepath.Ext(requested))]
	if !ok {
		contentType = "audio/mpeg"
	}
	c.Set(fiber.HeaderContentType, contentType)

	return nil
}
