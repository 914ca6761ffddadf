package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

// ResourceRepository stores shared learning resources.
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	List(ctx context.Context) ([]models.Resource, error)
	GetByID(ctx context.Context, id uint) (models.Resource, error)
	Delete(ctx context.Context, id uint) error
}

type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository constructs a resource repository.
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *resourceRepository) List(ctx context.Context) ([]models.Resource, error) {
	var resources []models.Resource
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&resources).Error; err != nil {
		return nil, err
	}

	return resources, nil
}

func (r *resourceRepository) GetByID(ctx context.Context, id uint) (models.Resource, error) {
	var resource models.Resource
	if err := r.db.WithContext(ctx).First(&resource, id).Error; err != nil {
		return models.Resource{}, err
	}

	return resource, nil
}

func (r *resourceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Resource{}, id).Error
}
