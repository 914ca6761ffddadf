package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
)

func newScheduleFixture() (*fakeAppointmentRepo, *fakeTimeSlotRepo, *fakeSubmissionRepo, *fakeEvaluationRepo, ScheduleService) {
	appointments := &fakeAppointmentRepo{}
	slots := &fakeTimeSlotRepo{}
	submissions := &fakeSubmissionRepo{}
	evaluations := &fakeEvaluationRepo{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewScheduleService(appointments, slots, submissions, evaluations, validate, testLogger())
	return appointments, slots, submissions, evaluations, svc
}

func approvedSubmission(phone string) models.Submission {
	return models.Submission{
		ID:     1,
		Name:   "Abebe Kebede",
		Phone:  phone,
		Status: models.SubmissionStatusApproved,
	}
}

func bookingRequest() dto.AppointmentCreateRequest {
	return dto.AppointmentCreateRequest{
		ApplicantName:  "Abebe Kebede",
		ApplicantPhone: "0911234567",
		ScheduledDate:  "2026-09-10",
		ScheduledTime:  "09:30",
	}
}

func TestCreateSlotDerivesLabelAndPeriod(t *testing.T) {
	_, slots, _, _, svc := newScheduleFixture()

	slot, err := svc.CreateSlot(context.Background(), dto.TimeSlotCreateRequest{Date: "2026-09-10", Time: "09:30"})
	require.NoError(t, err)
	require.Equal(t, "9:30 AM", slot.Label)
	require.NotNil(t, slot.Period)
	require.Equal(t, models.SlotPeriodMorning, *slot.Period)
	require.True(t, slot.Available)
	require.Len(t, slots.slots, 1)

	afternoon, err := svc.CreateSlot(context.Background(), dto.TimeSlotCreateRequest{Date: "2026-09-10", Time: "14:00"})
	require.NoError(t, err)
	require.Equal(t, "2:00 PM", afternoon.Label)
	require.Equal(t, models.SlotPeriodAfternoon, *afternoon.Period)

	evening, err := svc.CreateSlot(context.Background(), dto.TimeSlotCreateRequest{Date: "2026-09-10", Time: "19:00"})
	require.NoError(t, err)
	require.Nil(t, evening.Period)
}

func TestCreateSlotRejectsBadTimeAndDuplicates(t *testing.T) {
	_, _, _, _, svc := newScheduleFixture()

	_, err := svc.CreateSlot(context.Background(), dto.TimeSlotCreateRequest{Date: "2026-09-10", Time: "930"})
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Invalid time format. Use HH:MM", be.Message)

	_, err = svc.CreateSlot(context.Background(), dto.TimeSlotCreateRequest{Date: "2026-09-10", Time: "09:30"})
	require.NoError(t, err)

	_, err = svc.CreateSlot(context.Background(), dto.TimeSlotCreateRequest{Date: "2026-09-10", Time: "09:30"})
	be, ok = AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "A time slot already exists at this date and time", be.Message)
}

func TestBulkCreateSlotsByInterval(t *testing.T) {
	_, slots, _, _, svc := newScheduleFixture()

	result, err := svc.BulkCreateSlots(context.Background(), dto.BulkSlotRequest{
		Date:      "2026-09-10",
		StartTime: "09:00",
		EndTime:   "11:00",
	})
	require.NoError(t, err)
	// Default 30-minute interval: 09:00, 09:30, 10:00, 10:30.
	require.Equal(t, 4, result.SlotsCreated)
	require.Equal(t, 0, result.SlotsSkipped)
	require.Len(t, slots.slots, 4)
}

func TestBulkCreateSlotsSkipsExisting(t *testing.T) {
	_, slots, _, _, svc := newScheduleFixture()
	slots.slots = []models.TimeSlot{{ID: 1, Date: "2026-09-10", Time: "09:30"}}
	slots.nextID = 1

	result, err := svc.BulkCreateSlots(context.Background(), dto.BulkSlotRequest{
		Date:      "2026-09-10",
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.SlotsCreated)
	require.Equal(t, 1, result.SlotsSkipped)
}

func TestBulkCreateSlotsByCount(t *testing.T) {
	_, _, _, _, svc := newScheduleFixture()

	result, err := svc.BulkCreateSlots(context.Background(), dto.BulkSlotRequest{
		Date:          "2026-09-10",
		StartTime:     "09:00",
		EndTime:       "10:00",
		NumberOfSlots: 6,
	})
	require.NoError(t, err)
	require.Equal(t, 6, result.SlotsCreated)
}

func TestBulkCreateSlotsRejectsInvertedRange(t *testing.T) {
	_, _, _, _, svc := newScheduleFixture()

	_, err := svc.BulkCreateSlots(context.Background(), dto.BulkSlotRequest{
		Date:      "2026-09-10",
		StartTime: "11:00",
		EndTime:   "09:00",
	})
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "end_time must be after start_time", be.Message)
}

func TestBookAppointmentRejectsActiveDuplicate(t *testing.T) {
	appointments, _, submissions, _, svc := newScheduleFixture()
	submissions.submissions = []models.Submission{approvedSubmission("0911234567")}
	appointments.appointments = []models.Appointment{{
		ID:             1,
		ApplicantPhone: "+251911234567",
		ScheduledDate:  "2026-09-08",
		ScheduledTime:  "10:00",
		Status:         models.AppointmentStatusScheduled,
	}}

	_, err := svc.BookAppointment(context.Background(), bookingRequest())
	var exists *ErrAppointmentExists
	require.ErrorAs(t, err, &exists)
	require.Equal(t, "2026-09-08", exists.Existing.Date)
	require.Equal(t, "10:00", exists.Existing.Time)
}

func TestBookAppointmentRequiresSubmission(t *testing.T) {
	_, _, _, _, svc := newScheduleFixture()

	_, err := svc.BookAppointment(context.Background(), bookingRequest())
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Phone number not found in our system. Please ensure you have submitted an application first.", be.Message)
}

func TestBookAppointmentSubmissionGates(t *testing.T) {
	cases := []struct {
		status  string
		message string
	}{
		{models.SubmissionStatusPending,
			"Your application is still under review. Please wait for approval before scheduling an interview."},
		{models.SubmissionStatusRejected,
			"Your application was not approved. You cannot schedule an interview at this time."},
		{"unknown",
			"Your application must be approved before you can schedule an interview."},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			_, _, submissions, _, svc := newScheduleFixture()
			sub := approvedSubmission("0911234567")
			sub.Status = tc.status
			submissions.submissions = []models.Submission{sub}

			_, err := svc.BookAppointment(context.Background(), bookingRequest())
			be, ok := AsBusinessError(err)
			require.True(t, ok)
			require.Equal(t, tc.message, be.Message)
		})
	}
}

func TestBookAppointmentMarksSlotUnavailable(t *testing.T) {
	appointments, slots, submissions, _, svc := newScheduleFixture()
	submissions.submissions = []models.Submission{approvedSubmission("+251911234567")}
	slots.slots = []models.TimeSlot{{ID: 1, Date: "2026-09-10", Time: "09:30", Available: true}}
	slots.nextID = 1

	booked, err := svc.BookAppointment(context.Background(), bookingRequest())
	require.NoError(t, err)
	require.Equal(t, models.AppointmentStatusScheduled, booked.Status)
	require.NotZero(t, booked.ID)
	require.Len(t, appointments.appointments, 1)
	require.False(t, slots.slots[0].Available)
}

func TestUpdateAppointmentStatusSettlesDecision(t *testing.T) {
	appointments, _, _, _, svc := newScheduleFixture()
	appointments.appointments = []models.Appointment{{ID: 1, Status: models.AppointmentStatusScheduled}}

	err := svc.UpdateAppointmentStatus(context.Background(), 1, dto.AppointmentStatusUpdateRequest{Status: models.AppointmentStatusCompleted})
	require.NoError(t, err)
	require.Len(t, appointments.statusCalls, 1)
	call := appointments.statusCalls[0]
	require.Equal(t, models.AppointmentStatusCompleted, call.status)
	require.NotNil(t, call.decision)
	require.Equal(t, models.DecisionAccepted, *call.decision)
	require.NotNil(t, call.decidedAt)

	err = svc.UpdateAppointmentStatus(context.Background(), 1, dto.AppointmentStatusUpdateRequest{Status: models.AppointmentStatusNoShow})
	require.NoError(t, err)
	call = appointments.statusCalls[1]
	require.Equal(t, models.DecisionRejected, *call.decision)

	err = svc.UpdateAppointmentStatus(context.Background(), 1, dto.AppointmentStatusUpdateRequest{Status: models.AppointmentStatusCancelled})
	require.NoError(t, err)
	call = appointments.statusCalls[2]
	require.Nil(t, call.decision)
}

func TestUpdateAppointmentStatusNotFound(t *testing.T) {
	_, _, _, _, svc := newScheduleFixture()

	err := svc.UpdateAppointmentStatus(context.Background(), 99, dto.AppointmentStatusUpdateRequest{Status: models.AppointmentStatusCompleted})
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestSetDecisionValidatesValue(t *testing.T) {
	appointments, _, _, _, svc := newScheduleFixture()
	appointments.appointments = []models.Appointment{{ID: 1, Status: models.AppointmentStatusCompleted}}

	err := svc.SetDecision(context.Background(), 1, "maybe")
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, `Decision must be "accepted" or "rejected"`, be.Message)

	require.NoError(t, svc.SetDecision(context.Background(), 1, models.DecisionRejected))
	require.NotNil(t, appointments.appointments[0].FinalDecision)
	require.Equal(t, models.DecisionRejected, *appointments.appointments[0].FinalDecision)
	require.NotNil(t, appointments.appointments[0].DecisionMadeAt)
}

func TestSubmitEvaluationBoundsAndUpsert(t *testing.T) {
	appointments, _, _, evaluations, svc := newScheduleFixture()
	appointments.appointments = []models.Appointment{{ID: 1}}

	err := svc.SubmitEvaluation(context.Background(), 1, dto.EvaluationSubmitRequest{
		JudgeName: "Judge A", CriteriaName: "Voice", Rating: 9,
	})
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Missing required fields", be.Message)

	err = svc.SubmitEvaluation(context.Background(), 1, dto.EvaluationSubmitRequest{
		JudgeName: "Judge A", CriteriaName: "Voice", Rating: 4,
	})
	require.NoError(t, err)

	// Resubmitting the same judge/criteria pair overwrites the rating.
	err = svc.SubmitEvaluation(context.Background(), 1, dto.EvaluationSubmitRequest{
		JudgeName: "Judge A", CriteriaName: "Voice", Rating: 2,
	})
	require.NoError(t, err)
	require.Len(t, evaluations.evaluations, 1)
	require.Equal(t, 2, evaluations.evaluations[0].Rating)
}

func TestEvaluationsAverages(t *testing.T) {
	appointments, _, _, evaluations, svc := newScheduleFixture()
	appointments.appointments = []models.Appointment{{ID: 1}}
	evaluations.evaluations = []models.InterviewEvaluation{
		{ID: 1, AppointmentID: 1, JudgeName: "A", CriteriaName: "Voice", Rating: 4},
		{ID: 2, AppointmentID: 1, JudgeName: "B", CriteriaName: "Voice", Rating: 2},
		{ID: 3, AppointmentID: 1, JudgeName: "A", CriteriaName: "Pitch", Rating: 5},
	}

	rows, averages, err := svc.Evaluations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.InDelta(t, 3.0, averages["Voice"], 0.001)
	require.InDelta(t, 5.0, averages["Pitch"], 0.001)
}

func TestStatsCountsDerivedDecisions(t *testing.T) {
	appointments, _, _, _, svc := newScheduleFixture()
	appointments.appointments = []models.Appointment{
		{ID: 1, Status: models.AppointmentStatusScheduled},
		{ID: 2, Status: models.AppointmentStatusCompleted},
		{ID: 3, Status: models.AppointmentStatusNoShow},
		{ID: 4, Status: models.AppointmentStatusCancelled, FinalDecision: strPtr(models.DecisionAccepted)},
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(4), stats.Total)
	require.Equal(t, int64(1), stats.Scheduled)
	require.Equal(t, int64(1), stats.Cancelled)
	require.Equal(t, int64(2), stats.Accepted)
	require.Equal(t, int64(1), stats.Rejected)
}

func TestVerifyApplicant(t *testing.T) {
	_, _, submissions, _, svc := newScheduleFixture()
	submissions.submissions = []models.Submission{approvedSubmission("+251911234567")}

	found, err := svc.VerifyApplicant(context.Background(), "0911234567")
	require.NoError(t, err)
	require.True(t, found.IsApplicant)
	require.NotNil(t, found.ApplicantName)
	require.Equal(t, "Abebe Kebede", *found.ApplicantName)

	missing, err := svc.VerifyApplicant(context.Background(), "0999999999")
	require.NoError(t, err)
	require.False(t, missing.IsApplicant)
	require.Nil(t, missing.ApplicantName)
}

func TestCheckExistingAppointmentReturnsActiveOnly(t *testing.T) {
	appointments, _, _, _, svc := newScheduleFixture()
	appointments.appointments = []models.Appointment{
		{ID: 1, ApplicantPhone: "0911234567", Status: models.AppointmentStatusScheduled},
		{ID: 2, ApplicantPhone: "0911234567", Status: models.AppointmentStatusCancelled},
	}

	active, err := svc.CheckExistingAppointment(context.Background(), "+251911234567")
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, uint(1), active[0].ID)
}
