package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Store implements the FileUploader interface against a local directory.
// Uploaded files are served back under the /uploads route.
type Store struct {
	root   string
	logger zerolog.Logger
}

// New constructs a local file store rooted at dir.
func New(dir string, logger zerolog.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("uploads directory must be provided")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	return &Store{
		root:   dir,
		logger: logger.With().Str("component", "localfs").Logger(),
	}, nil
}

// Upload writes the file under the store root and returns its public path.
func (s *Store) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	clean := filepath.Clean(strings.TrimPrefix(name, "/"))
	if clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	path := filepath.Join(s.root, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Info().Str("path", clean).Msg("file stored locally")

	return "/uploads/" + filepath.ToSlash(clean), nil
}
