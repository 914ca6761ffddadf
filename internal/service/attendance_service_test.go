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

func newAttendanceFixture() (*fakeAttendanceRepo, *fakeStudentRepo, AttendanceService) {
	attendance := &fakeAttendanceRepo{}
	students := &fakeStudentRepo{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewAttendanceService(attendance, students, validate, testLogger())
	return attendance, students, svc
}

func openSession() models.AttendanceSession {
	return models.AttendanceSession{
		ID:     1,
		Title:  "Saturday Class",
		Date:   "2026-09-05",
		Status: models.SessionStatusOpen,
	}
}

func TestCreateSession(t *testing.T) {
	attendance, _, svc := newAttendanceFixture()

	session, err := svc.CreateSession(context.Background(), dto.SessionCreateRequest{
		Title: "Saturday Class", Date: "2026-09-05",
	}, "admin")
	require.NoError(t, err)
	require.NotZero(t, session.ID)
	require.Equal(t, models.SessionStatusOpen, session.Status)
	require.Equal(t, "admin", session.CreatedBy)
	require.Len(t, attendance.sessions, 1)

	_, err = svc.CreateSession(context.Background(), dto.SessionCreateRequest{}, "admin")
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Title and date are required", be.Message)
}

func TestScanRecordsAttendance(t *testing.T) {
	attendance, students, svc := newAttendanceFixture()
	attendance.sessions = []models.AttendanceSession{openSession()}
	students.students = []models.Student{{ID: 4, Username: "abebe", CheckInCode: "code-abebe", Status: models.StudentStatusActive}}

	result, err := svc.Scan(context.Background(), dto.ScanRequest{SessionID: 1, Code: "code-abebe"}, "admin")
	require.NoError(t, err)
	require.Equal(t, ScanStatusRecorded, result.Status)
	require.Equal(t, uint(4), result.StudentID)
	require.Len(t, attendance.records, 1)
	require.Equal(t, "admin", attendance.records[0].ScannedBy)

	// A second scan of the same code is reported as a duplicate, not an
	// error, and no second record is created.
	result, err = svc.Scan(context.Background(), dto.ScanRequest{SessionID: 1, Code: "code-abebe"}, "admin")
	require.NoError(t, err)
	require.Equal(t, ScanStatusDuplicate, result.Status)
	require.Len(t, attendance.records, 1)
}

func TestScanRejectsClosedSessionAndUnknownCode(t *testing.T) {
	attendance, students, svc := newAttendanceFixture()
	closed := openSession()
	closed.Status = models.SessionStatusClosed
	attendance.sessions = []models.AttendanceSession{closed}
	students.students = []models.Student{{ID: 4, CheckInCode: "code-abebe"}}

	_, err := svc.Scan(context.Background(), dto.ScanRequest{SessionID: 1, Code: "code-abebe"}, "admin")
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "This attendance session is closed", be.Message)

	attendance.sessions = []models.AttendanceSession{openSession()}
	_, err = svc.Scan(context.Background(), dto.ScanRequest{SessionID: 1, Code: "bad-code"}, "admin")
	be, ok = AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Unknown check-in code", be.Message)

	_, err = svc.Scan(context.Background(), dto.ScanRequest{SessionID: 9, Code: "code-abebe"}, "admin")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestScanHonorsExplicitTimestamp(t *testing.T) {
	attendance, students, svc := newAttendanceFixture()
	attendance.sessions = []models.AttendanceSession{openSession()}
	students.students = []models.Student{{ID: 4, CheckInCode: "code-abebe"}}

	at := time.Date(2026, 9, 5, 8, 42, 0, 0, time.UTC)
	_, err := svc.Scan(context.Background(), dto.ScanRequest{SessionID: 1, Code: "code-abebe", ScannedAt: &at}, "admin")
	require.NoError(t, err)
	require.True(t, attendance.records[0].ScannedAt.Equal(at))
}

func TestSyncReportsPerScanOutcome(t *testing.T) {
	attendance, students, svc := newAttendanceFixture()
	attendance.sessions = []models.AttendanceSession{openSession()}
	students.students = []models.Student{
		{ID: 4, CheckInCode: "code-a"},
		{ID: 5, CheckInCode: "code-b"},
	}

	results, err := svc.Sync(context.Background(), dto.SyncRequest{Scans: []dto.ScanRequest{
		{SessionID: 1, Code: "code-a"},
		{SessionID: 1, Code: "code-a"},
		{SessionID: 1, Code: "unknown"},
		{SessionID: 1, Code: "code-b"},
	}}, "admin")
	require.NoError(t, err)
	require.Len(t, results, 4)
	require.Equal(t, ScanStatusRecorded, results[0].Status)
	require.Equal(t, ScanStatusDuplicate, results[1].Status)
	require.Equal(t, ScanStatusFailed, results[2].Status)
	require.NotEmpty(t, results[2].Error)
	require.Equal(t, ScanStatusRecorded, results[3].Status)
	require.Len(t, attendance.records, 2)
}

func TestSetSessionStatusStampsClosedAt(t *testing.T) {
	attendance, _, svc := newAttendanceFixture()
	attendance.sessions = []models.AttendanceSession{openSession()}

	err := svc.SetSessionStatus(context.Background(), 1, dto.SessionStatusRequest{Status: models.SessionStatusClosed})
	require.NoError(t, err)
	require.Equal(t, models.SessionStatusClosed, attendance.sessions[0].Status)
	require.NotNil(t, attendance.sessions[0].ClosedAt)

	err = svc.SetSessionStatus(context.Background(), 1, dto.SessionStatusRequest{Status: models.SessionStatusOpen})
	require.NoError(t, err)
	require.Nil(t, attendance.sessions[0].ClosedAt)

	err = svc.SetSessionStatus(context.Background(), 9, dto.SessionStatusRequest{Status: models.SessionStatusClosed})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStats(t *testing.T) {
	attendance, students, svc := newAttendanceFixture()
	attendance.sessions = []models.AttendanceSession{openSession()}
	attendance.records = []models.AttendanceRecord{
		{ID: 1, SessionID: 1, StudentID: 4},
		{ID: 2, SessionID: 1, StudentID: 5},
		{ID: 3, SessionID: 2, StudentID: 6},
	}
	students.students = []models.Student{
		{ID: 4, Status: models.StudentStatusActive},
		{ID: 5, Status: models.StudentStatusActive},
		{ID: 6, Status: models.StudentStatusActive},
		{ID: 7, Status: models.StudentStatusActive},
		{ID: 8, Status: models.StudentStatusInactive},
	}

	stats, err := svc.SessionStats(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.Present)
	require.Equal(t, int64(4), stats.TotalActive)
	require.InDelta(t, 0.5, stats.AttendanceRate, 0.001)
}
