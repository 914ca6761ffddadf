package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
)

func newTraineeFixture() (*fakeStudentRepo, *fakeAssignmentRepo, *fakePaymentRepo, TraineeAdminService) {
	students := &fakeStudentRepo{students: []models.Student{
		{
			ID:       1,
			Username: "abebe_k",
			Status:   models.StudentStatusActive,
			Appointment: &models.Appointment{
				ID:            4,
				ScheduledDate: "2026-09-10",
				ScheduledTime: "09:30",
				Status:        models.AppointmentStatusCompleted,
			},
		},
		{ID: 2, Username: "marta_t", Status: models.StudentStatusActive},
		{ID: 3, Username: "dawit_g", Status: models.StudentStatusSuspended},
	}}
	assignments := &fakeAssignmentRepo{}
	payments := &fakePaymentRepo{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewTraineeAdminService(students, assignments, payments, validate, testLogger())

	return students, assignments, payments, svc
}

func TestTraineeListBuildsViews(t *testing.T) {
	_, assignments, payments, svc := newTraineeFixture()
	assignments.submissions = []models.AssignmentSubmission{
		{ID: 1, AssignmentID: 1, StudentID: 1},
		{ID: 2, AssignmentID: 2, StudentID: 1},
	}
	payments.payments = []models.Payment{{ID: 1, StudentID: 1, Month: "2026-08", Amount: 500}}

	views, pagination, err := svc.List(context.Background(), dto.TraineeListQuery{})
	require.NoError(t, err)
	require.Len(t, views, 3)

	require.Equal(t, "abebe_k", views[0].Username)
	require.Equal(t, int64(2), views[0].SubmissionCount)
	require.Equal(t, int64(1), views[0].PaymentCount)
	require.NotNil(t, views[0].Appointment)
	require.Equal(t, "2026-09-10", views[0].Appointment.ScheduledDate)
	require.Equal(t, "09:30", views[0].Appointment.ScheduledTime)

	require.Nil(t, views[1].Appointment)
	require.Zero(t, views[1].SubmissionCount)

	require.Equal(t, 1, pagination.Page)
	require.Equal(t, 20, pagination.Limit)
	require.Equal(t, int64(3), pagination.TotalCount)
	require.Equal(t, 1, pagination.TotalPages)
	require.False(t, pagination.HasNext)
	require.False(t, pagination.HasPrev)
}

func TestTraineeListRejectsUnknownStatus(t *testing.T) {
	_, _, _, svc := newTraineeFixture()

	_, _, err := svc.List(context.Background(), dto.TraineeListQuery{Status: "expelled"})
	require.Error(t, err)
}

func TestTraineeGetNotFound(t *testing.T) {
	_, _, _, svc := newTraineeFixture()

	_, err := svc.Get(context.Background(), 99)
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestTraineeUpdateStatus(t *testing.T) {
	students, _, _, svc := newTraineeFixture()

	err := svc.UpdateStatus(context.Background(), 2, dto.TraineeStatusRequest{Status: models.StudentStatusSuspended})
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusSuspended, students.students[1].Status)
}

func TestTraineeUpdateStatusRejectsUnknownValue(t *testing.T) {
	_, _, _, svc := newTraineeFixture()

	err := svc.UpdateStatus(context.Background(), 2, dto.TraineeStatusRequest{Status: "expelled"})

	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Status must be one of active, inactive or suspended", be.Message)
}

func TestTraineeUpdateStatusUnknownStudent(t *testing.T) {
	_, _, _, svc := newTraineeFixture()

	err := svc.UpdateStatus(context.Background(), 99, dto.TraineeStatusRequest{Status: models.StudentStatusActive})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestCreateAssignmentValidates(t *testing.T) {
	_, _, _, svc := newTraineeFixture()

	_, err := svc.CreateAssignment(context.Background(), dto.AssignmentCreateRequest{Description: "no title"})

	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Title and due date are required", be.Message)
}

func TestCreateAssignment(t *testing.T) {
	_, assignments, _, svc := newTraineeFixture()

	assignment, err := svc.CreateAssignment(context.Background(), dto.AssignmentCreateRequest{
		Title:       "Psalms essay",
		Description: "Write about Psalm 23",
		DueDate:     time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, uint(1), assignment.ID)
	require.Len(t, assignments.assignments, 1)
}

func TestGetAssignmentNotFound(t *testing.T) {
	_, _, _, svc := newTraineeFixture()

	_, err := svc.GetAssignment(context.Background(), 42)

	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Assignment not found", be.Message)
}

func TestGradeSubmission(t *testing.T) {
	_, assignments, _, svc := newTraineeFixture()
	assignments.submissions = []models.AssignmentSubmission{{ID: 10, AssignmentID: 1, StudentID: 1, Text: "answer"}}

	feedback := "Solid work"
	graded, err := svc.GradeSubmission(context.Background(), 10, dto.GradeRequest{Grade: 85, Feedback: &feedback}, "admin")
	require.NoError(t, err)
	require.True(t, graded.IsGraded())
	require.Equal(t, 85.0, *graded.Grade)
	require.Equal(t, "Solid work", *graded.Feedback)
	require.Equal(t, "admin", *graded.GradedBy)
	require.NotNil(t, graded.GradedAt)
}

func TestGradeSubmissionRejectsOutOfRange(t *testing.T) {
	_, assignments, _, svc := newTraineeFixture()
	assignments.submissions = []models.AssignmentSubmission{{ID: 10, AssignmentID: 1, StudentID: 1}}

	_, err := svc.GradeSubmission(context.Background(), 10, dto.GradeRequest{Grade: 150}, "admin")

	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Grade must be between 0 and 100", be.Message)
}

func TestGradeSubmissionNotFound(t *testing.T) {
	_, _, _, svc := newTraineeFixture()

	_, err := svc.GradeSubmission(context.Background(), 42, dto.GradeRequest{Grade: 85}, "admin")

	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Submission not found", be.Message)
}

func TestUpdatePaymentStatus(t *testing.T) {
	_, _, payments, svc := newTraineeFixture()
	payments.payments = []models.Payment{{ID: 1, StudentID: 1, Month: "2026-08", Amount: 500, Status: models.PaymentStatusPending}}

	err := svc.UpdatePaymentStatus(context.Background(), 1, dto.PaymentStatusRequest{Status: models.PaymentStatusPaid})
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPaid, payments.payments[0].Status)
	require.NotNil(t, payments.payments[0].PaidAt)

	err = svc.UpdatePaymentStatus(context.Background(), 1, dto.PaymentStatusRequest{Status: models.PaymentStatusPending})
	require.NoError(t, err)
	require.Nil(t, payments.payments[0].PaidAt)
}

func TestUpdatePaymentStatusRejectsUnknownValue(t *testing.T) {
	_, _, _, svc := newTraineeFixture()

	err := svc.UpdatePaymentStatus(context.Background(), 1, dto.PaymentStatusRequest{Status: "waived"})

	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Status must be one of pending, paid or overdue", be.Message)
}

func TestUpdatePaymentStatusNotFound(t *testing.T) {
	_, _, _, svc := newTraineeFixture()

	err := svc.UpdatePaymentStatus(context.Background(), 42, dto.PaymentStatusRequest{Status: models.PaymentStatusPaid})

	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Payment not found", be.Message)
}

func TestGeneratePaymentsSkipsExistingAndInactive(t *testing.T) {
	_, _, payments, svc := newTraineeFixture()
	payments.payments = []models.Payment{{ID: 1, StudentID: 1, Month: "2026-09", Amount: 500}}

	created, err := svc.GeneratePayments(context.Background(), dto.GeneratePaymentsRequest{Month: "2026-09", Amount: 500})
	require.NoError(t, err)
	require.Equal(t, 1, created)
	require.Len(t, payments.payments, 2)
	require.Equal(t, uint(2), payments.payments[1].StudentID)
	require.Equal(t, models.PaymentStatusPending, payments.payments[1].Status)
}

func TestGeneratePaymentsValidatesMonth(t *testing.T) {
	_, _, _, svc := newTraineeFixture()

	_, err := svc.GeneratePayments(context.Background(), dto.GeneratePaymentsRequest{Month: "2026-00", Amount: 500})

	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Month must use the YYYY-MM format and amount must be positive", be.Message)
}
