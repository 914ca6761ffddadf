package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// fakeAppointmentRepo holds appointments newest-first, mirroring the real
// repository ordering.
type fakeAppointmentRepo struct {
	appointments []models.Appointment
	nextID       uint
	statusCalls  []statusCall
}

type statusCall struct {
	id        uint
	status    string
	decision  *string
	decidedAt *time.Time
}

func (f *fakeAppointmentRepo) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeAppointmentRepo) Search(ctx context.Context, query string) ([]models.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeAppointmentRepo) ListForEvaluation(ctx context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, apt := range f.appointments {
		if apt.CoordinatorVerified {
			out = append(out, apt)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id uint) (models.Appointment, error) {
	for _, apt := range f.appointments {
		if apt.ID == id {
			return apt, nil
		}
	}
	return models.Appointment{}, gorm.ErrRecordNotFound
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	f.nextID++
	appointment.ID = f.nextID
	f.appointments = append([]models.Appointment{*appointment}, f.appointments...)
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id uint, status string, decision *string, decidedAt *time.Time) error {
	f.statusCalls = append(f.statusCalls, statusCall{id: id, status: status, decision: decision, decidedAt: decidedAt})
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments[i].Status = status
			f.appointments[i].FinalDecision = decision
			f.appointments[i].DecisionMadeAt = decidedAt
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) SetDecision(ctx context.Context, id uint, decision string, decidedAt time.Time) error {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments[i].FinalDecision = &decision
			f.appointments[i].DecisionMadeAt = &decidedAt
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) SetApproval(ctx context.Context, id uint, approved bool, at *time.Time) error {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments[i].CoordinatorApproved = approved
			f.appointments[i].CoordinatorApprovedAt = at
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) SetVerification(ctx context.Context, id uint, verified bool, at *time.Time) error {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments[i].CoordinatorVerified = verified
			f.appointments[i].CoordinatorVerifiedAt = at
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, apt := range f.appointments {
		counts[apt.Status]++
	}
	return counts, nil
}

type fakeSubmissionRepo struct {
	submissions []models.Submission
}

func (f *fakeSubmissionRepo) List(ctx context.Context, filter repository.SubmissionFilter) ([]models.Submission, error) {
	return f.submissions, nil
}

func (f *fakeSubmissionRepo) ListAll(ctx context.Context) ([]models.Submission, error) {
	return f.submissions, nil
}

func (f *fakeSubmissionRepo) Count(ctx context.Context, filter repository.SubmissionFilter) (int64, error) {
	return int64(len(f.submissions)), nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	for _, sub := range f.submissions {
		if sub.ID == id {
			return sub, nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	submission.ID = uint(len(f.submissions) + 1)
	f.submissions = append(f.submissions, *submission)
	return nil
}

func (f *fakeSubmissionRepo) UpdateStatus(ctx context.Context, id uint, status string, comments, reviewedBy *string) error {
	for i := range f.submissions {
		if f.submissions[i].ID == id {
			f.submissions[i].Status = status
			f.submissions[i].ReviewerComments = comments
			f.submissions[i].ReviewedBy = reviewedBy
		}
	}
	return nil
}

func (f *fakeSubmissionRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, sub := range f.submissions {
		counts[sub.Status]++
	}
	return counts, nil
}

type fakeStudentRepo struct {
	students  []models.Student
	createErr error
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, id uint) (models.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (f *fakeStudentRepo) FindByUsername(ctx context.Context, username string) (models.Student, error) {
	for _, s := range f.students {
		if s.Username == username {
			return s, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (f *fakeStudentRepo) FindByExactPhone(ctx context.Context, phone string) (models.Student, error) {
	for _, s := range f.students {
		if s.Phone == phone {
			return s, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (f *fakeStudentRepo) FindByAppointmentID(ctx context.Context, appointmentID uint) (models.Student, error) {
	for _, s := range f.students {
		if s.AppointmentID != nil && *s.AppointmentID == appointmentID {
			return s, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (f *fakeStudentRepo) FindByCheckInCode(ctx context.Context, code string) (models.Student, error) {
	for _, s := range f.students {
		if s.CheckInCode == code {
			return s, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (f *fakeStudentRepo) ListAll(ctx context.Context) ([]models.Student, error) {
	return f.students, nil
}

func (f *fakeStudentRepo) ListActive(ctx context.Context) ([]models.Student, error) {
	var active []models.Student
	for _, s := range f.students {
		if s.Status == models.StudentStatusActive {
			active = append(active, s)
		}
	}
	return active, nil
}

func (f *fakeStudentRepo) List(ctx context.Context, filter repository.StudentFilter) ([]models.Student, int64, error) {
	return f.students, int64(len(f.students)), nil
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if f.createErr != nil {
		return f.createErr
	}
	student.ID = uint(len(f.students) + 1)
	f.students = append(f.students, *student)
	return nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	for i := range f.students {
		if f.students[i].ID == student.ID {
			f.students[i] = *student
		}
	}
	return nil
}

func (f *fakeStudentRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	for i := range f.students {
		if f.students[i].ID == id {
			f.students[i].Status = status
		}
	}
	return nil
}

type fakeTimeSlotRepo struct {
	slots  []models.TimeSlot
	nextID uint
}

func (f *fakeTimeSlotRepo) List(ctx context.Context, date string) ([]models.TimeSlot, error) {
	if date == "" {
		return f.slots, nil
	}
	var out []models.TimeSlot
	for _, slot := range f.slots {
		if slot.Date == date {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (f *fakeTimeSlotRepo) FindByDateTime(ctx context.Context, date, slotTime string) (models.TimeSlot, error) {
	for _, slot := range f.slots {
		if slot.Date == date && slot.Time == slotTime {
			return slot, nil
		}
	}
	return models.TimeSlot{}, gorm.ErrRecordNotFound
}

func (f *fakeTimeSlotRepo) Create(ctx context.Context, slot *models.TimeSlot) error {
	if _, err := f.FindByDateTime(ctx, slot.Date, slot.Time); err == nil {
		return repository.ErrSlotExists
	}
	f.nextID++
	slot.ID = f.nextID
	f.slots = append(f.slots, *slot)
	return nil
}

func (f *fakeTimeSlotRepo) UpdateAvailability(ctx context.Context, id uint, available bool) error {
	for i := range f.slots {
		if f.slots[i].ID == id {
			f.slots[i].Available = available
		}
	}
	return nil
}

type fakeEvaluationRepo struct {
	evaluations []models.InterviewEvaluation
}

func (f *fakeEvaluationRepo) Upsert(ctx context.Context, evaluation *models.InterviewEvaluation) error {
	for i := range f.evaluations {
		existing := &f.evaluations[i]
		if existing.AppointmentID == evaluation.AppointmentID &&
			existing.JudgeName == evaluation.JudgeName &&
			existing.CriteriaName == evaluation.CriteriaName {
			existing.Rating = evaluation.Rating
			existing.Comments = evaluation.Comments
			return nil
		}
	}
	evaluation.ID = uint(len(f.evaluations) + 1)
	f.evaluations = append(f.evaluations, *evaluation)
	return nil
}

func (f *fakeEvaluationRepo) ListByAppointment(ctx context.Context, appointmentID uint) ([]models.InterviewEvaluation, error) {
	var out []models.InterviewEvaluation
	for _, eval := range f.evaluations {
		if eval.AppointmentID == appointmentID {
			out = append(out, eval)
		}
	}
	return out, nil
}

type fakePrayerRepo struct {
	slots  []models.PrayerSlot
	nextID uint
}

func (f *fakePrayerRepo) BulkCreate(ctx context.Context, slots []models.PrayerSlot) error {
	for i := range slots {
		f.nextID++
		slots[i].ID = f.nextID
	}
	f.slots = append(f.slots, slots...)
	return nil
}

func (f *fakePrayerRepo) List(ctx context.Context) ([]models.PrayerSlot, error) {
	return f.slots, nil
}

func (f *fakePrayerRepo) GetByID(ctx context.Context, id uint) (models.PrayerSlot, error) {
	for _, slot := range f.slots {
		if slot.ID == id {
			return slot, nil
		}
	}
	return models.PrayerSlot{}, gorm.ErrRecordNotFound
}

func (f *fakePrayerRepo) Claim(ctx context.Context, id, studentID uint) error {
	for i := range f.slots {
		if f.slots[i].ID == id {
			if f.slots[i].ClaimedByID != nil {
				return repository.ErrSlotClaimed
			}
			now := time.Now()
			f.slots[i].ClaimedByID = &studentID
			f.slots[i].ClaimedAt = &now
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePrayerRepo) Release(ctx context.Context, id uint) error {
	for i := range f.slots {
		if f.slots[i].ID == id {
			f.slots[i].ClaimedByID = nil
			f.slots[i].ClaimedAt = nil
		}
	}
	return nil
}

func (f *fakePrayerRepo) ReleaseAllForStudent(ctx context.Context, studentID uint) error {
	for i := range f.slots {
		if f.slots[i].ClaimedByID != nil && *f.slots[i].ClaimedByID == studentID {
			f.slots[i].ClaimedByID = nil
			f.slots[i].ClaimedAt = nil
		}
	}
	return nil
}

func (f *fakePrayerRepo) DeleteAll(ctx context.Context) error {
	f.slots = nil
	return nil
}

type fakeAttendanceRepo struct {
	sessions []models.AttendanceSession
	records  []models.AttendanceRecord
}

func (f *fakeAttendanceRepo) CreateSession(ctx context.Context, session *models.AttendanceSession) error {
	session.ID = uint(len(f.sessions) + 1)
	f.sessions = append(f.sessions, *session)
	return nil
}

func (f *fakeAttendanceRepo) ListSessions(ctx context.Context) ([]models.AttendanceSession, error) {
	return f.sessions, nil
}

func (f *fakeAttendanceRepo) GetSession(ctx context.Context, id uint) (models.AttendanceSession, error) {
	for _, session := range f.sessions {
		if session.ID == id {
			return session, nil
		}
	}
	return models.AttendanceSession{}, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetOpenSession(ctx context.Context) (models.AttendanceSession, error) {
	for _, session := range f.sessions {
		if session.IsOpen() {
			return session, nil
		}
	}
	return models.AttendanceSession{}, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) UpdateSessionStatus(ctx context.Context, id uint, status string, closedAt *time.Time) error {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			f.sessions[i].Status = status
			f.sessions[i].ClosedAt = closedAt
		}
	}
	return nil
}

func (f *fakeAttendanceRepo) CreateRecord(ctx context.Context, record *models.AttendanceRecord) error {
	if has, _ := f.HasRecord(ctx, record.SessionID, record.StudentID); has {
		return repository.ErrAlreadyRecorded
	}
	record.ID = uint(len(f.records) + 1)
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeAttendanceRepo) ListRecords(ctx context.Context, sessionID uint) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, record := range f.records {
		if record.SessionID == sessionID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListRecordsByStudent(ctx context.Context, studentID uint) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, record := range f.records {
		if record.StudentID == studentID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) HasRecord(ctx context.Context, sessionID, studentID uint) (bool, error) {
	for _, record := range f.records {
		if record.SessionID == sessionID && record.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

type fakeAssignmentRepo struct {
	assignments []models.Assignment
	submissions []models.AssignmentSubmission
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	assignment.ID = uint(len(f.assignments) + 1)
	f.assignments = append(f.assignments, *assignment)
	return nil
}

func (f *fakeAssignmentRepo) List(ctx context.Context) ([]models.Assignment, error) {
	return f.assignments, nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	for _, a := range f.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Assignment{}, gorm.ErrRecordNotFound
}

func (f *fakeAssignmentRepo) ListSubmissionsByStudent(ctx context.Context, studentID uint) ([]models.AssignmentSubmission, error) {
	var out []models.AssignmentSubmission
	for _, s := range f.submissions {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) GetSubmission(ctx context.Context, assignmentID, studentID uint) (models.AssignmentSubmission, error) {
	for _, s := range f.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			return s, nil
		}
	}
	return models.AssignmentSubmission{}, gorm.ErrRecordNotFound
}

func (f *fakeAssignmentRepo) GetSubmissionByID(ctx context.Context, id uint) (models.AssignmentSubmission, error) {
	for _, s := range f.submissions {
		if s.ID == id {
			return s, nil
		}
	}
	return models.AssignmentSubmission{}, gorm.ErrRecordNotFound
}

func (f *fakeAssignmentRepo) SaveSubmission(ctx context.Context, submission *models.AssignmentSubmission) error {
	if submission.ID != 0 {
		for i := range f.submissions {
			if f.submissions[i].ID == submission.ID {
				f.submissions[i] = *submission
				return nil
			}
		}
	}
	submission.ID = uint(len(f.submissions) + 1)
	f.submissions = append(f.submissions, *submission)
	return nil
}

func (f *fakeAssignmentRepo) Grade(ctx context.Context, submissionID uint, grade float64, feedback *string, gradedBy string, gradedAt time.Time) error {
	for i := range f.submissions {
		if f.submissions[i].ID == submissionID {
			f.submissions[i].Grade = &grade
			f.submissions[i].Feedback = feedback
			f.submissions[i].GradedBy = &gradedBy
			f.submissions[i].GradedAt = &gradedAt
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakePaymentRepo struct {
	payments []models.Payment
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	exists, _ := f.Exists(ctx, payment.StudentID, payment.Month)
	if exists {
		return repository.ErrPaymentExists
	}
	payment.ID = uint(len(f.payments) + 1)
	f.payments = append(f.payments, *payment)
	return nil
}

func (f *fakePaymentRepo) ListByStudent(ctx context.Context, studentID uint) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) ListByMonth(ctx context.Context, month string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if month == "" || p.Month == month {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id uint) (models.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Payment{}, gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) UpdateStatus(ctx context.Context, id uint, status string, paidAt *time.Time) error {
	for i := range f.payments {
		if f.payments[i].ID == id {
			f.payments[i].Status = status
			f.payments[i].PaidAt = paidAt
		}
	}
	return nil
}

func (f *fakePaymentRepo) Exists(ctx context.Context, studentID uint, month string) (bool, error) {
	for _, p := range f.payments {
		if p.StudentID == studentID && p.Month == month {
			return true, nil
		}
	}
	return false, nil
}
