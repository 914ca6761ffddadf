package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
	"github.com/chenaniah/academy-api/internal/utils"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

// Applicant-facing status messages.
const (
	msgPhoneNotFound     = "Phone number not found in our system"
	msgAccepted          = "Congratulations! You have been accepted."
	msgRejectedDecision  = "Unfortunately, your application was not approved at this time."
	msgInterviewBooked   = "Your interview has been scheduled."
	msgUnderReview       = "Your application is still under review. Please check back later."
	msgApprovedForSlot   = "Your application has been approved. Interview scheduling will be available soon."
	msgSubmissionDenied  = "Your application was not approved at this time."
	msgAlreadyRegistered = "This phone number is already registered. Please login instead."
	msgAppointmentUsed   = "This interview appointment has already been used to create a student account. Each accepted interview can only be used once for registration."
	msgInterviewRequired = "You must have passed the interview to register as a student. Please check your interview status or contact us for assistance."
	msgPhoneMismatch     = "The phone number provided does not match the phone number associated with your accepted interview appointment."
)

// LifecycleService resolves an applicant's journey from submission through
// interview to student registration. Resolution is read-only; only
// Register mutates state.
type LifecycleService interface {
	ResolveStatus(ctx context.Context, phone string) (dto.StatusView, error)
	CheckEligibility(ctx context.Context, phone string) (dto.EligibilityView, error)
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.RegisteredStudent, error)
}

type lifecycleService struct {
	submissions  repository.SubmissionRepository
	appointments repository.AppointmentRepository
	students     repository.StudentRepository
	validator    *validator.Validate
	tokens       *TokenIssuer
	tracer       trace.Tracer
	logger       zerolog.Logger
	now          func() time.Time
}

// NewLifecycleService constructs the applicant lifecycle service.
func NewLifecycleService(
	submissionRepo repository.SubmissionRepository,
	appointmentRepo repository.AppointmentRepository,
	studentRepo repository.StudentRepository,
	validate *validator.Validate,
	tokens *TokenIssuer,
	logger zerolog.Logger,
) LifecycleService {
	return &lifecycleService{
		submissions:  submissionRepo,
		appointments: appointmentRepo,
		students:     studentRepo,
		validator:    validate,
		tokens:       tokens,
		tracer:       otel.Tracer("github.com/chenaniah/academy-api/internal/service/lifecycle"),
		logger:       logger.With().Str("component", "lifecycle_service").Logger(),
		now:          time.Now,
	}
}

// validPhoneKey validates the raw phone and returns its 8-digit matching
// key.
func validPhoneKey(phone string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", NewBusinessError("Phone number is required", "")
	}
	key, ok := utils.PhoneKey(phone)
	if !ok {
		return "", NewBusinessError("Phone number too short", "")
	}

	return key, nil
}

// matchingAppointments returns the appointments whose phone shares the
// applicant's trailing-digit key, preserving newest-first store order.
func (s *lifecycleService) matchingAppointments(ctx context.Context, key string) ([]models.Appointment, error) {
	all, err := s.appointments.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []models.Appointment
	for _, apt := range all {
		if aptKey, ok := utils.PhoneKey(apt.ApplicantPhone); ok && aptKey == key {
			matched = append(matched, apt)
		}
	}

	return matched, nil
}

// matchingSubmission returns the first submission whose phone shares the
// key, or nil.
func (s *lifecycleService) matchingSubmission(ctx context.Context, key string) (*models.Submission, error) {
	all, err := s.submissions.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range all {
		if subKey, ok := utils.PhoneKey(all[i].Phone); ok && subKey == key {
			return &all[i], nil
		}
	}

	return nil, nil
}

// appointmentOutcome is the result of the newest-first scan over an
// applicant's appointments.
type appointmentOutcome struct {
	decision       string
	decisionMadeAt *time.Time
	date           string
	timeOfDay      string
	status         string
	applicantName  string
}

// scanAppointments walks appointments newest-first. The first appointment
// with a derivable decision settles the outcome; failing that, the first
// appointment's scheduling status stands as the current state.
func scanAppointments(appointments []models.Appointment) appointmentOutcome {
	var out appointmentOutcome
	for _, apt := range appointments {
		if apt.ApplicantName != "" && out.applicantName == "" {
			out.applicantName = apt.ApplicantName
		}

		if decision, ok := apt.Decision(); ok {
			out.decision = decision
			out.decisionMadeAt = apt.DecisionMadeAt
			out.date = apt.ScheduledDate
			out.timeOfDay = apt.ScheduledTime
			out.status = apt.Status
			break
		}

		if apt.Status != "" && out.status == "" {
			out.status = apt.Status
			out.date = apt.ScheduledDate
			out.timeOfDay = apt.ScheduledTime
		}
	}

	return out
}

// acceptedAppointment finds the newest appointment resolving to an
// accepted decision.
func acceptedAppointment(appointments []models.Appointment) (models.Appointment, bool) {
	for _, apt := range appointments {
		if apt.IsAccepted() {
			return apt, true
		}
	}

	return models.Appointment{}, false
}

func (s *lifecycleService) ResolveStatus(ctx context.Context, phone string) (dto.StatusView, error) {
	ctx, span := s.tracer.Start(ctx, "lifecycle.resolve_status")
	defer span.End()

	key, err := validPhoneKey(phone)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid_phone")
		return dto.StatusView{}, err
	}

	submission, err := s.matchingSubmission(ctx, key)
	if err != nil {
		span.RecordError(err)
		return dto.StatusView{}, err
	}
	appointments, err := s.matchingAppointments(ctx, key)
	if err != nil {
		span.RecordError(err)
		return dto.StatusView{}, err
	}

	span.SetAttributes(
		attribute.Bool("lifecycle.has_submission", submission != nil),
		attribute.Int("lifecycle.appointment_count", len(appointments)),
	)

	if submission == nil && len(appointments) == 0 {
		return dto.StatusView{IsApplicant: false, Message: msgPhoneNotFound}, nil
	}

	outcome := scanAppointments(appointments)

	if submission == nil {
		return statusFromAppointmentOnly(outcome), nil
	}

	return statusFromBoth(*submission, outcome), nil
}

// statusFromAppointmentOnly builds a status view for a phone that booked
// an interview without a matching submission on record.
func statusFromAppointmentOnly(outcome appointmentOutcome) dto.StatusView {
	view := dto.StatusView{
		IsApplicant:   true,
		ApplicantName: outcome.applicantName,
	}
	if view.ApplicantName == "" {
		view.ApplicantName = "Applicant"
	}

	switch {
	case outcome.decision == models.DecisionAccepted:
		view.OverallStatus = dto.OverallStatusAccepted
		view.StatusMessage = msgAccepted
	case outcome.decision != "":
		view.OverallStatus = dto.OverallStatusRejected
		view.StatusMessage = msgRejectedDecision
	case outcome.status == models.AppointmentStatusScheduled:
		view.OverallStatus = dto.OverallStatusApproved
		view.StatusMessage = msgInterviewBooked
	default:
		view.OverallStatus = dto.OverallStatusPending
		view.StatusMessage = msgUnderReview
	}

	applyOutcome(&view, outcome)

	return view
}

// statusFromBoth builds a status view from a submission and the
// appointment scan outcome. An interview decision outranks the submission
// review status.
func statusFromBoth(submission models.Submission, outcome appointmentOutcome) dto.StatusView {
	submissionStatus := submission.Status
	view := dto.StatusView{
		IsApplicant:      true,
		ApplicantName:    submission.Name,
		SubmissionStatus: &submissionStatus,
		SubmittedAt:      &submission.SubmittedAt,
		ReviewerComments: submission.ReviewerComments,
	}

	switch {
	case outcome.decision == models.DecisionAccepted:
		view.OverallStatus = dto.OverallStatusAccepted
		view.StatusMessage = msgAccepted
	case outcome.decision != "":
		view.OverallStatus = dto.OverallStatusRejected
		view.StatusMessage = msgRejectedDecision
	case submission.Status == models.SubmissionStatusApproved:
		view.OverallStatus = dto.OverallStatusApproved
		view.StatusMessage = msgApprovedForSlot
	case submission.Status == models.SubmissionStatusRejected:
		view.OverallStatus = dto.OverallStatusRejected
		view.StatusMessage = msgSubmissionDenied
	default:
		view.OverallStatus = dto.OverallStatusPending
		view.StatusMessage = msgUnderReview
	}

	applyOutcome(&view, outcome)

	return view
}

func applyOutcome(view *dto.StatusView, outcome appointmentOutcome) {
	if outcome.decision != "" {
		decision := outcome.decision
		view.FinalDecision = &decision
		view.DecisionMadeAt = outcome.decisionMadeAt
	}
	if outcome.date != "" {
		date, timeOfDay := outcome.date, outcome.timeOfDay
		view.AppointmentDate = &date
		view.AppointmentTime = &timeOfDay
	}
}

func (s *lifecycleService) CheckEligibility(ctx context.Context, phone string) (dto.EligibilityView, error) {
	ctx, span := s.tracer.Start(ctx, "lifecycle.check_eligibility")
	defer span.End()

	key, err := validPhoneKey(phone)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid_phone")
		return dto.EligibilityView{}, err
	}

	registered, err := s.phoneRegistered(ctx, phone, key)
	if err != nil {
		return dto.EligibilityView{}, err
	}
	if registered {
		return dto.EligibilityView{
			Eligible: false,
			Message:  msgAlreadyRegistered,
			CanLogin: true,
		}, nil
	}

	appointments, err := s.matchingAppointments(ctx, key)
	if err != nil {
		return dto.EligibilityView{}, err
	}

	accepted, ok := acceptedAppointment(appointments)
	if !ok {
		return ineligibleView(appointments), nil
	}

	if _, err := s.students.FindByAppointmentID(ctx, accepted.ID); err == nil {
		return dto.EligibilityView{
			Eligible: false,
			Message:  msgAppointmentUsed,
			CanLogin: true,
			Code:     CodeAppointmentAlreadyUsed,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.EligibilityView{}, err
	}

	return dto.EligibilityView{
		Eligible: true,
		Message:  "You are eligible to register!",
		AppointmentInfo: &dto.AppointmentSlot{
			ScheduledDate: accepted.ScheduledDate,
			ScheduledTime: accepted.ScheduledTime,
		},
	}, nil
}

// ineligibleView explains why no accepted appointment exists, from most
// specific to least.
func ineligibleView(appointments []models.Appointment) dto.EligibilityView {
	if len(appointments) == 0 {
		return dto.EligibilityView{
			Eligible: false,
			Message:  "No interview record found for this phone number. Please complete the application and interview process first.",
		}
	}

	latest := appointments[0]
	switch {
	case latest.Status == models.AppointmentStatusScheduled:
		return dto.EligibilityView{
			Eligible: false,
			Message:  "Your interview is scheduled but not yet completed. Please complete your interview first.",
		}
	case latest.FinalDecision != nil && *latest.FinalDecision == models.DecisionRejected:
		return dto.EligibilityView{
			Eligible: false,
			Message:  "Unfortunately, your application was not accepted. Please contact us for more information.",
		}
	default:
		return dto.EligibilityView{
			Eligible: false,
			Message:  "You must have passed the interview to register as a student. Please check your interview status.",
		}
	}
}

// phoneRegistered reports whether any student account holds this phone,
// first by exact match and then by trailing-digit key.
func (s *lifecycleService) phoneRegistered(ctx context.Context, phone, key string) (bool, error) {
	if _, err := s.students.FindByExactPhone(ctx, phone); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	students, err := s.students.ListAll(ctx)
	if err != nil {
		return false, err
	}
	for _, student := range students {
		if studentKey, ok := utils.PhoneKey(student.Phone); ok && studentKey == key {
			return true, nil
		}
	}

	return false, nil
}

func (s *lifecycleService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.RegisteredStudent, error) {
	ctx, span := s.tracer.Start(ctx, "lifecycle.register")
	defer span.End()

	payload.FullNameAmharic = strings.TrimSpace(payload.FullNameAmharic)
	payload.FullNameEnglish = strings.TrimSpace(payload.FullNameEnglish)
	payload.LocalChurch = strings.TrimSpace(payload.LocalChurch)
	payload.Address = strings.TrimSpace(payload.Address)

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.RegisteredStudent{}, NewBusinessError("All fields are required", CodeValidationError)
	}
	if err := validateRegistration(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.RegisteredStudent{}, err
	}

	key, _ := utils.PhoneKey(payload.Phone)

	if _, err := s.students.FindByUsername(ctx, payload.Username); err == nil {
		return dto.RegisteredStudent{}, NewBusinessError(
			"Username already exists. Please choose a different username.", CodeUsernameTaken)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.RegisteredStudent{}, err
	}

	registered, err := s.phoneRegistered(ctx, payload.Phone, key)
	if err != nil {
		return dto.RegisteredStudent{}, err
	}
	if registered {
		return dto.RegisteredStudent{}, &BusinessError{
			Status:   400,
			Message:  msgAlreadyRegistered,
			Code:     CodePhoneTaken,
			CanLogin: true,
		}
	}

	appointments, err := s.matchingAppointments(ctx, key)
	if err != nil {
		return dto.RegisteredStudent{}, err
	}

	accepted, ok := acceptedAppointment(appointments)
	if !ok {
		return dto.RegisteredStudent{}, NewForbiddenError(msgInterviewRequired, CodeInterviewNotAccepted)
	}

	if _, err := s.students.FindByAppointmentID(ctx, accepted.ID); err == nil {
		return dto.RegisteredStudent{}, NewBusinessError(msgAppointmentUsed, CodeAppointmentAlreadyUsed)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.RegisteredStudent{}, err
	}

	if !utils.SamePhone(accepted.ApplicantPhone, payload.Phone) {
		return dto.RegisteredStudent{}, NewForbiddenError(msgPhoneMismatch, CodePhoneMismatch)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.RegisteredStudent{}, fmt.Errorf("failed to hash password: %w", err)
	}

	appointmentID := accepted.ID
	student := models.Student{
		Username:        payload.Username,
		PasswordHash:    string(hash),
		FullNameAmharic: payload.FullNameAmharic,
		FullNameEnglish: payload.FullNameEnglish,
		Gender:          strings.ToLower(payload.Gender),
		LocalChurch:     payload.LocalChurch,
		Address:         payload.Address,
		Phone:           payload.Phone,
		AppointmentID:   &appointmentID,
		Status:          models.StudentStatusActive,
		CheckInCode:     uuid.NewString(),
	}

	if err := s.students.Create(ctx, &student); err != nil {
		span.RecordError(err)
		// The unique index on appointment_id closes the window between
		// the availability check above and the insert.
		if isDuplicateKey(err) {
			return dto.RegisteredStudent{}, NewBusinessError(msgAppointmentUsed, CodeAppointmentAlreadyUsed)
		}
		return dto.RegisteredStudent{}, err
	}

	token, err := s.tokens.IssueStudent(student.ID, student.Username)
	if err != nil {
		return dto.RegisteredStudent{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Uint("student_id", student.ID).Uint("appointment_id", accepted.ID).
		Msg("student registered")
	span.SetAttributes(attribute.Int64("lifecycle.student_id", int64(student.ID)))

	return dto.RegisteredStudent{
		Token:   token,
		Role:    RoleStudent,
		Student: NewStudentProfile(student),
	}, nil
}

// isDuplicateKey detects a unique constraint violation from the driver.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// validateRegistration enforces the registration field rules with their
// user-facing messages.
func validateRegistration(payload dto.RegisterRequest) error {
	if n := len([]rune(payload.FullNameAmharic)); n < 2 || n > 100 {
		return NewBusinessError("Full name (Amharic) must be between 2 and 100 characters", CodeValidationError)
	}
	if n := len([]rune(payload.FullNameEnglish)); n < 2 || n > 100 {
		return NewBusinessError("Full name (English) must be between 2 and 100 characters", CodeValidationError)
	}
	if n := len([]rune(payload.LocalChurch)); n < 2 || n > 200 {
		return NewBusinessError("Local church must be between 2 and 200 characters", CodeValidationError)
	}
	if n := len([]rune(payload.Address)); n < 5 || n > 500 {
		return NewBusinessError("Address must be between 5 and 500 characters", CodeValidationError)
	}
	if digits := utils.PhoneDigits(payload.Phone); len(digits) < 8 || len(digits) > 15 {
		return NewBusinessError("Invalid phone number format. Phone number must contain 8-15 digits", CodeValidationError)
	}
	if !usernamePattern.MatchString(payload.Username) {
		return NewBusinessError("Username must be 3-30 characters long and contain only letters, numbers, underscores, or hyphens", CodeValidationError)
	}
	if len(payload.Password) < 6 {
		return NewBusinessError("Password must be at least 6 characters long", CodeValidationError)
	}
	if len(payload.Password) > 128 {
		return NewBusinessError("Password must be less than 128 characters", CodeValidationError)
	}
	switch strings.ToLower(payload.Gender) {
	case "male", "female":
	default:
		return NewBusinessError(`Gender must be either "male" or "female"`, CodeValidationError)
	}

	return nil
}

// NewStudentProfile converts a student model into its API payload.
func NewStudentProfile(student models.Student) dto.StudentProfile {
	return dto.StudentProfile{
		ID:                student.ID,
		Username:          student.Username,
		FullNameAmharic:   student.FullNameAmharic,
		FullNameEnglish:   student.FullNameEnglish,
		Gender:            student.Gender,
		LocalChurch:       student.LocalChurch,
		Address:           student.Address,
		Phone:             student.Phone,
		Status:            student.Status,
		ProfileComplete:   student.ProfileComplete,
		HasIDDocument:     student.IDDocumentPath != "",
		HasRecommendation: student.RecommendationLetterPath != "",
		HasEssay:          student.Essay != "",
		HasPhoto:          student.PhotoPath != "",
		AppointmentID:     student.AppointmentID,
		CheckInCode:       student.CheckInCode,
	}
}

// EvaluationAverages computes the per-criterion mean rating across judges.
// Criteria with no recorded ratings do not appear in the result.
func EvaluationAverages(evaluations []models.InterviewEvaluation) map[string]float64 {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, eval := range evaluations {
		sums[eval.CriteriaName] += eval.Rating
		counts[eval.CriteriaName]++
	}

	averages := make(map[string]float64, len(sums))
	for criteria, sum := range sums {
		averages[criteria] = float64(sum) / float64(counts[criteria])
	}

	return averages
}
