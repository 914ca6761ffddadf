package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
)

// FileUploader abstracts uploading binary data and returning a URL or
// stored path.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// ErrStudentNotFound indicates the student account does not exist.
var ErrStudentNotFound = errors.New("student not found")

// Document kinds accepted by the profile upload endpoint.
const (
	DocumentTypeID             = "id"
	DocumentTypeRecommendation = "recommendation"
	DocumentTypePortrait       = "portrait"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// StudentPortalService backs the student self-service endpoints.
type StudentPortalService interface {
	Profile(ctx context.Context, studentID uint) (dto.StudentProfile, error)
	UploadDocument(ctx context.Context, studentID uint, docType string, file *multipart.FileHeader) (dto.StudentProfile, error)
	SubmitEssay(ctx context.Context, studentID uint, payload dto.EssayRequest) (dto.StudentProfile, error)
	Assignments(ctx context.Context, studentID uint) ([]dto.AssignmentView, error)
	SubmitAssignment(ctx context.Context, studentID, assignmentID uint, text string, file *multipart.FileHeader) (models.AssignmentSubmission, error)
	SubmitPayment(ctx context.Context, studentID uint, payload dto.PaymentSubmitRequest, slip *multipart.FileHeader) (models.Payment, error)
	Payments(ctx context.Context, studentID uint) ([]models.Payment, error)
}

type studentPortalService struct {
	students    repository.StudentRepository
	assignments repository.AssignmentRepository
	payments    repository.PaymentRepository
	validator   *validator.Validate
	uploader    FileUploader
	logger      zerolog.Logger
	now         func() time.Time
}

// NewStudentPortalService constructs the student portal service.
func NewStudentPortalService(
	studentRepo repository.StudentRepository,
	assignmentRepo repository.AssignmentRepository,
	paymentRepo repository.PaymentRepository,
	validate *validator.Validate,
	uploader FileUploader,
	logger zerolog.Logger,
) StudentPortalService {
	return &studentPortalService{
		students:    studentRepo,
		assignments: assignmentRepo,
		payments:    paymentRepo,
		validator:   validate,
		uploader:    uploader,
		logger:      logger.With().Str("component", "student_portal_service").Logger(),
		now:         time.Now,
	}
}

func (s *studentPortalService) getStudent(ctx context.Context, studentID uint) (models.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, err
	}

	return student, nil
}

func (s *studentPortalService) Profile(ctx context.Context, studentID uint) (dto.StudentProfile, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return dto.StudentProfile{}, err
	}

	return NewStudentProfile(student), nil
}

func (s *studentPortalService) UploadDocument(ctx context.Context, studentID uint, docType string, file *multipart.FileHeader) (dto.StudentProfile, error) {
	switch docType {
	case DocumentTypeID, DocumentTypeRecommendation, DocumentTypePortrait:
	default:
		return dto.StudentProfile{}, NewBusinessError(
			"Document type must be one of: id, recommendation, portrait", CodeValidationError)
	}
	if file == nil {
		return dto.StudentProfile{}, NewBusinessError("No file uploaded", CodeValidationError)
	}

	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return dto.StudentProfile{}, err
	}

	reader, err := file.Open()
	if err != nil {
		return dto.StudentProfile{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	if docType == DocumentTypePortrait {
		if err := requireImage(reader); err != nil {
			return dto.StudentProfile{}, err
		}
		if _, err := reader.Seek(0, io.SeekStart); err != nil {
			return dto.StudentProfile{}, fmt.Errorf("failed to rewind file: %w", err)
		}
	}

	name := fmt.Sprintf("student-documents/%d-%s-%s", studentID, docType, file.Filename)
	path, err := s.uploader.Upload(ctx, name, reader)
	if err != nil {
		return dto.StudentProfile{}, fmt.Errorf("failed to store document: %w", err)
	}

	switch docType {
	case DocumentTypeID:
		student.IDDocumentPath = path
	case DocumentTypeRecommendation:
		student.RecommendationLetterPath = path
	case DocumentTypePortrait:
		student.PhotoPath = path
	}
	student.RecomputeProfileComplete()

	if err := s.students.Update(ctx, &student); err != nil {
		return dto.StudentProfile{}, err
	}

	s.logger.Info().Uint("student_id", studentID).Str("type", docType).Msg("document uploaded")

	return NewStudentProfile(student), nil
}

// requireImage sniffs the file content and rejects non-image uploads.
func requireImage(reader io.Reader) error {
	mtype, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return NewBusinessError("Portrait must be an image file (JPG, PNG)", CodeValidationError)
	}

	return nil
}

func (s *studentPortalService) SubmitEssay(ctx context.Context, studentID uint, payload dto.EssayRequest) (dto.StudentProfile, error) {
	payload.Essay = strings.TrimSpace(payload.Essay)
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentProfile{}, NewBusinessError("Essay text is required", CodeValidationError)
	}

	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return dto.StudentProfile{}, err
	}

	student.Essay = payload.Essay
	student.RecomputeProfileComplete()

	if err := s.students.Update(ctx, &student); err != nil {
		return dto.StudentProfile{}, err
	}

	return NewStudentProfile(student), nil
}

func (s *studentPortalService) Assignments(ctx context.Context, studentID uint) ([]dto.AssignmentView, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, err
	}

	submissions, err := s.assignments.ListSubmissionsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	byAssignment := make(map[uint]models.AssignmentSubmission, len(submissions))
	for _, submission := range submissions {
		byAssignment[submission.AssignmentID] = submission
	}

	now := s.now()
	views := make([]dto.AssignmentView, 0, len(assignments))
	for _, assignment := range assignments {
		view := dto.AssignmentView{
			ID:          assignment.ID,
			Title:       assignment.Title,
			Description: assignment.Description,
			DueDate:     assignment.DueDate,
			Status:      dto.AssignmentStatusPending,
			Overdue:     now.After(assignment.DueDate),
		}

		if submission, ok := byAssignment[assignment.ID]; ok {
			id := submission.ID
			submittedAt := submission.SubmittedAt
			view.SubmissionID = &id
			view.SubmittedAt = &submittedAt
			view.Overdue = false
			if submission.IsGraded() {
				view.Status = dto.AssignmentStatusGraded
				view.Grade = submission.Grade
				view.Feedback = submission.Feedback
			} else {
				view.Status = dto.AssignmentStatusSubmitted
			}
		}

		views = append(views, view)
	}

	return views, nil
}

func (s *studentPortalService) SubmitAssignment(ctx context.Context, studentID, assignmentID uint, text string, file *multipart.FileHeader) (models.AssignmentSubmission, error) {
	text = strings.TrimSpace(text)
	if text == "" && file == nil {
		return models.AssignmentSubmission{}, NewBusinessError(
			"Either a file or answer text is required", CodeValidationError)
	}

	if _, err := s.assignments.GetByID(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AssignmentSubmission{}, NewBusinessError("Assignment not found", "")
		}
		return models.AssignmentSubmission{}, err
	}

	var filePath string
	if file != nil {
		reader, err := file.Open()
		if err != nil {
			return models.AssignmentSubmission{}, fmt.Errorf("failed to open file: %w", err)
		}
		defer reader.Close()

		name := fmt.Sprintf("assignments/%d-%d-%s", assignmentID, studentID, file.Filename)
		filePath, err = s.uploader.Upload(ctx, name, reader)
		if err != nil {
			return models.AssignmentSubmission{}, fmt.Errorf("failed to store submission: %w", err)
		}
	}

	// Re-submission replaces the earlier answer in place.
	submission, err := s.assignments.GetSubmission(ctx, assignmentID, studentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AssignmentSubmission{}, err
	}

	submission.AssignmentID = assignmentID
	submission.StudentID = studentID
	submission.SubmittedAt = s.now()
	if filePath != "" {
		submission.FilePath = filePath
	}
	if text != "" {
		submission.Text = text
	}

	if err := s.assignments.SaveSubmission(ctx, &submission); err != nil {
		return models.AssignmentSubmission{}, err
	}

	s.logger.Info().Uint("student_id", studentID).Uint("assignment_id", assignmentID).
		Msg("assignment submitted")

	return submission, nil
}

func (s *studentPortalService) SubmitPayment(ctx context.Context, studentID uint, payload dto.PaymentSubmitRequest, slip *multipart.FileHeader) (models.Payment, error) {
	if err := s.validator.Struct(payload); err != nil || !monthPattern.MatchString(payload.Month) {
		return models.Payment{}, NewBusinessError("Month must use the YYYY-MM format and amount must be positive", CodeValidationError)
	}

	var slipPath string
	if slip != nil {
		reader, err := slip.Open()
		if err != nil {
			return models.Payment{}, fmt.Errorf("failed to open file: %w", err)
		}
		defer reader.Close()

		name := fmt.Sprintf("payments/%d-%s-%s", studentID, payload.Month, slip.Filename)
		slipPath, err = s.uploader.Upload(ctx, name, reader)
		if err != nil {
			return models.Payment{}, fmt.Errorf("failed to store deposit slip: %w", err)
		}
	}

	payment := models.Payment{
		StudentID:       studentID,
		Month:           payload.Month,
		Amount:          payload.Amount,
		Status:          models.PaymentStatusPending,
		Notes:           payload.Notes,
		DepositSlipPath: slipPath,
	}

	if err := s.payments.Create(ctx, &payment); err != nil {
		if errors.Is(err, repository.ErrPaymentExists) {
			return models.Payment{}, NewBusinessError(
				"A payment record already exists for this month", "")
		}
		return models.Payment{}, err
	}

	s.logger.Info().Uint("student_id", studentID).Str("month", payload.Month).Msg("payment submitted")

	return payment, nil
}

func (s *studentPortalService) Payments(ctx context.Context, studentID uint) ([]models.Payment, error) {
	return s.payments.ListByStudent(ctx, studentID)
}
