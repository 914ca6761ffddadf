package cloudinary

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// Config holds Cloudinary credentials and the root folder for this app.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Service stores uploads in Cloudinary. Upload names carry a category
// prefix (student-documents/, assignments/, payments/, resources/) which
// becomes a subfolder under the configured root.
type Service struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// New constructs a Cloudinary-backed uploader.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("initialize cloudinary: %w", err)
	}

	return &Service{
		client: client,
		folder: strings.Trim(cfg.Folder, "/"),
		logger: logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// Upload stores the file and returns its secure URL.
func (s *Service) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	dir, base := path.Split(name)

	result, err := s.client.Upload.Upload(ctx, reader, uploader.UploadParams{
		Folder:       path.Join(s.folder, strings.Trim(dir, "/")),
		PublicID:     publicID(base),
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("upload asset: %w", err)
	}

	s.logger.Info().Str("public_id", result.PublicID).Msg("file uploaded to cloudinary")

	return result.SecureURL, nil
}

// publicID slugs the original filename and appends a timestamp so repeat
// uploads of the same document never overwrite each other.
func publicID(base string) string {
	base = strings.TrimSuffix(base, path.Ext(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "upload"
	}

	return fmt.Sprintf("%s-%d", slug, time.Now().UnixNano())
}
