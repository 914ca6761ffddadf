package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
)

// TraineeAdminService backs the admin views over registered students,
// their coursework and payments.
type TraineeAdminService interface {
	List(ctx context.Context, query dto.TraineeListQuery) ([]dto.TraineeView, dto.Pagination, error)
	Get(ctx context.Context, id uint) (models.Student, error)
	UpdateStatus(ctx context.Context, id uint, payload dto.TraineeStatusRequest) error

	CreateAssignment(ctx context.Context, payload dto.AssignmentCreateRequest) (models.Assignment, error)
	ListAssignments(ctx context.Context) ([]models.Assignment, error)
	GetAssignment(ctx context.Context, id uint) (models.Assignment, error)
	GradeSubmission(ctx context.Context, submissionID uint, payload dto.GradeRequest, gradedBy string) (models.AssignmentSubmission, error)

	ListPayments(ctx context.Context, month string) ([]models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id uint, payload dto.PaymentStatusRequest) error
	GeneratePayments(ctx context.Context, payload dto.GeneratePaymentsRequest) (int, error)
}

type traineeAdminService struct {
	students    repository.StudentRepository
	assignments repository.AssignmentRepository
	payments    repository.PaymentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewTraineeAdminService constructs the trainee administration service.
func NewTraineeAdminService(
	studentRepo repository.StudentRepository,
	assignmentRepo repository.AssignmentRepository,
	paymentRepo repository.PaymentRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) TraineeAdminService {
	return &traineeAdminService{
		students:    studentRepo,
		assignments: assignmentRepo,
		payments:    paymentRepo,
		validator:   validate,
		logger:      logger.With().Str("component", "trainee_admin_service").Logger(),
		now:         time.Now,
	}
}

func (s *traineeAdminService) List(ctx context.Context, query dto.TraineeListQuery) ([]dto.TraineeView, dto.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, dto.Pagination{}, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	students, total, err := s.students.List(ctx, repository.StudentFilter{
		Search: query.Search,
		Status: query.Status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	views := make([]dto.TraineeView, 0, len(students))
	for _, student := range students {
		view := dto.TraineeView{
			ID:              student.ID,
			Username:        student.Username,
			FullNameAmharic: student.FullNameAmharic,
			FullNameEnglish: student.FullNameEnglish,
			Gender:          student.Gender,
			LocalChurch:     student.LocalChurch,
			Phone:           student.Phone,
			Status:          student.Status,
			ProfileComplete: student.ProfileComplete,
			RegisteredAt:    student.CreatedAt,
		}

		if student.Appointment != nil {
			view.Appointment = &dto.AppointmentInfo{
				ID:            student.Appointment.ID,
				ScheduledDate: student.Appointment.ScheduledDate,
				ScheduledTime: student.Appointment.ScheduledTime,
				Status:        student.Appointment.Status,
			}
		}

		if submissions, err := s.assignments.ListSubmissionsByStudent(ctx, student.ID); err == nil {
			view.SubmissionCount = int64(len(submissions))
		}
		if payments, err := s.payments.ListByStudent(ctx, student.ID); err == nil {
			view.PaymentCount = int64(len(payments))
		}

		views = append(views, view)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	pagination := dto.Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}

	return views, pagination, nil
}

func (s *traineeAdminService) Get(ctx context.Context, id uint) (models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, err
	}

	return student, nil
}

func (s *traineeAdminService) UpdateStatus(ctx context.Context, id uint, payload dto.TraineeStatusRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return NewBusinessError("Status must be one of active, inactive or suspended", CodeValidationError)
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Uint("student_id", id).Str("status", payload.Status).Msg("trainee status changed")

	return s.students.UpdateStatus(ctx, id, payload.Status)
}

func (s *traineeAdminService) CreateAssignment(ctx context.Context, payload dto.AssignmentCreateRequest) (models.Assignment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Assignment{}, NewBusinessError("Title and due date are required", CodeValidationError)
	}

	assignment := models.Assignment{
		Title:       payload.Title,
		Description: payload.Description,
		DueDate:     payload.DueDate,
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (s *traineeAdminService) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	return s.assignments.List(ctx)
}

func (s *traineeAdminService) GetAssignment(ctx context.Context, id uint) (models.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, NewBusinessError("Assignment not found", "")
		}
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (s *traineeAdminService) GradeSubmission(ctx context.Context, submissionID uint, payload dto.GradeRequest, gradedBy string) (models.AssignmentSubmission, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.AssignmentSubmission{}, NewBusinessError("Grade must be between 0 and 100", CodeValidationError)
	}

	if _, err := s.assignments.GetSubmissionByID(ctx, submissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AssignmentSubmission{}, NewBusinessError("Submission not found", "")
		}
		return models.AssignmentSubmission{}, err
	}

	if err := s.assignments.Grade(ctx, submissionID, payload.Grade, payload.Feedback, gradedBy, s.now()); err != nil {
		return models.AssignmentSubmission{}, err
	}

	s.logger.Info().Uint("submission_id", submissionID).Float64("grade", payload.Grade).
		Str("graded_by", gradedBy).Msg("submission graded")

	return s.assignments.GetSubmissionByID(ctx, submissionID)
}

func (s *traineeAdminService) ListPayments(ctx context.Context, month string) ([]models.Payment, error) {
	return s.payments.ListByMonth(ctx, month)
}

func (s *traineeAdminService) UpdatePaymentStatus(ctx context.Context, id uint, payload dto.PaymentStatusRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return NewBusinessError("Status must be one of pending, paid or overdue", CodeValidationError)
	}

	if _, err := s.payments.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewBusinessError("Payment not found", "")
		}
		return err
	}

	var paidAt *time.Time
	if payload.Status == models.PaymentStatusPaid {
		now := s.now()
		paidAt = &now
	}

	return s.payments.UpdateStatus(ctx, id, payload.Status, paidAt)
}

// GeneratePayments creates a pending record for every active trainee for
// the month, skipping students that already have one.
func (s *traineeAdminService) GeneratePayments(ctx context.Context, payload dto.GeneratePaymentsRequest) (int, error) {
	if err := s.validator.Struct(payload); err != nil || !monthPattern.MatchString(payload.Month) {
		return 0, NewBusinessError("Month must use the YYYY-MM format and amount must be positive", CodeValidationError)
	}

	students, err := s.students.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, student := range students {
		payment := models.Payment{
			StudentID: student.ID,
			Month:     payload.Month,
			Amount:    payload.Amount,
			Status:    models.PaymentStatusPending,
		}

		if err := s.payments.Create(ctx, &payment); err != nil {
			if errors.Is(err, repository.ErrPaymentExists) {
				continue
			}
			return created, err
		}
		created++
	}

	s.logger.Info().Str("month", payload.Month).Int("created", created).Msg("payments generated")

	return created, nil
}
