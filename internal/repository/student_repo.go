package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

// StudentFilter narrows trainee listings.
type StudentFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// StudentRepository provides access to provisioned student accounts.
type StudentRepository interface {
	GetByID(ctx context.Context, id uint) (models.Student, error)
	FindByUsername(ctx context.Context, username string) (models.Student, error)
	FindByExactPhone(ctx context.Context, phone string) (models.Student, error)
	FindByAppointmentID(ctx context.Context, appointmentID uint) (models.Student, error)
	FindByCheckInCode(ctx context.Context, code string) (models.Student, error)
	ListAll(ctx context.Context) ([]models.Student, error)
	ListActive(ctx context.Context) ([]models.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Preload("Appointment").First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) FindByUsername(ctx context.Context, username string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) FindByExactPhone(ctx context.Context, phone string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) FindByAppointmentID(ctx context.Context, appointmentID uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) FindByCheckInCode(ctx context.Context, code string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("check_in_code = ?", code).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

// ListAll returns every student. Used for the normalized-phone duplicate
// scan during registration, which cannot be expressed as an indexed query.
func (r *studentRepository) ListAll(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) ListActive(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Where("status = ?", models.StudentStatusActive).Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"full_name_english LIKE ? OR full_name_amharic LIKE ? OR phone LIKE ? OR username LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Appointment").Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var students []models.Student
	if err := query.Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Update("status", status).Error
}
