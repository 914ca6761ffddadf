package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
)

// ErrResourceNotFound indicates the resource does not exist.
var ErrResourceNotFound = errors.New("resource not found")

// ResourceService manages shared study files.
type ResourceService interface {
	List(ctx context.Context) ([]models.Resource, error)
	Get(ctx context.Context, id uint) (models.Resource, error)
	Upload(ctx context.Context, payload dto.ResourceUploadRequest, file *multipart.FileHeader, uploadedBy string) (models.Resource, error)
	Delete(ctx context.Context, id uint) error
}

type resourceService struct {
	resources repository.ResourceRepository
	validator *validator.Validate
	uploader  FileUploader
	logger    zerolog.Logger
}

// NewResourceService constructs the resource service.
func NewResourceService(resourceRepo repository.ResourceRepository, validate *validator.Validate, uploader FileUploader, logger zerolog.Logger) ResourceService {
	return &resourceService{
		resources: resourceRepo,
		validator: validate,
		uploader:  uploader,
		logger:    logger.With().Str("component", "resource_service").Logger(),
	}
}

func (s *resourceService) List(ctx context.Context) ([]models.Resource, error) {
	return s.resources.List(ctx)
}

func (s *resourceService) Get(ctx context.Context, id uint) (models.Resource, error) {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Resource{}, ErrResourceNotFound
		}
		return models.Resource{}, err
	}

	return resource, nil
}

func (s *resourceService) Upload(ctx context.Context, payload dto.ResourceUploadRequest, file *multipart.FileHeader, uploadedBy string) (models.Resource, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Resource{}, NewBusinessError("Title is required", CodeValidationError)
	}
	if file == nil {
		return models.Resource{}, NewBusinessError("No file uploaded", CodeValidationError)
	}

	reader, err := file.Open()
	if err != nil {
		return models.Resource{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mtype, err := mimetype.DetectReader(reader)
	if err != nil {
		return models.Resource{}, fmt.Errorf("failed to detect file type: %w", err)
	}
	if _, err := reader.Seek(0, 0); err != nil {
		return models.Resource{}, fmt.Errorf("failed to rewind file: %w", err)
	}

	storedName := fmt.Sprintf("resources/%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	url, err := s.uploader.Upload(ctx, storedName, reader)
	if err != nil {
		return models.Resource{}, fmt.Errorf("failed to store resource: %w", err)
	}

	resource := models.Resource{
		Title:       payload.Title,
		Description: payload.Description,
		FileName:    file.Filename,
		FileURL:     url,
		MimeType:    mtype.String(),
		UploadedBy:  uploadedBy,
	}

	if err := s.resources.Create(ctx, &resource); err != nil {
		return models.Resource{}, err
	}

	s.logger.Info().Uint("resource_id", resource.ID).Str("file", resource.FileName).
		Msg("resource uploaded")

	return resource, nil
}

func (s *resourceService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	return s.resources.Delete(ctx, id)
}
