package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
)

func newReviewFixture(t *testing.T) (*fakeSubmissionRepo, *miniredis.Miniredis, SubmissionReviewService) {
	t.Helper()

	submissions := &fakeSubmissionRepo{}
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewSubmissionReviewService(submissions, validate, cache, time.Minute, testLogger())
	return submissions, mr, svc
}

func TestListPaginationDefaults(t *testing.T) {
	submissions, _, svc := newReviewFixture(t)
	submissions.submissions = []models.Submission{
		{ID: 1, Name: "A", Status: models.SubmissionStatusPending},
		{ID: 2, Name: "B", Status: models.SubmissionStatusPending},
	}

	_, pagination, err := svc.List(context.Background(), dto.SubmissionListQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, pagination.Page)
	require.Equal(t, 20, pagination.Limit)
	require.Equal(t, int64(2), pagination.TotalCount)
	require.Equal(t, 1, pagination.TotalPages)
	require.False(t, pagination.HasNext)
	require.False(t, pagination.HasPrev)
}

func TestGetNotFound(t *testing.T) {
	_, _, svc := newReviewFixture(t)

	_, err := svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestUpdateStatusRecordsReviewer(t *testing.T) {
	submissions, _, svc := newReviewFixture(t)
	submissions.submissions = []models.Submission{{ID: 1, Name: "A", Status: models.SubmissionStatusPending}}

	comments := "sounds good"
	updated, err := svc.UpdateStatus(context.Background(), 1, dto.SubmissionStatusUpdateRequest{
		Status:   models.SubmissionStatusApproved,
		Comments: &comments,
	}, "admin")
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusApproved, updated.Status)
	require.NotNil(t, updated.ReviewedBy)
	require.Equal(t, "admin", *updated.ReviewedBy)
	require.NotNil(t, updated.ReviewerComments)
	require.Equal(t, "sounds good", *updated.ReviewerComments)

	_, err = svc.UpdateStatus(context.Background(), 1, dto.SubmissionStatusUpdateRequest{Status: "bogus"}, "admin")
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Status must be one of pending, approved or rejected", be.Message)
}

func TestStatsServedFromCache(t *testing.T) {
	submissions, _, svc := newReviewFixture(t)
	submissions.submissions = []models.Submission{
		{ID: 1, Status: models.SubmissionStatusPending},
		{ID: 2, Status: models.SubmissionStatusApproved},
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.Total)
	require.Equal(t, int64(1), stats.Pending)

	// Mutating the store without invalidation leaves the cached totals
	// in place.
	submissions.submissions = append(submissions.submissions,
		models.Submission{ID: 3, Status: models.SubmissionStatusRejected})

	stats, err = svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.Total)
	require.Equal(t, int64(0), stats.Rejected)
}

func TestUpdateStatusInvalidatesStatsCache(t *testing.T) {
	submissions, mr, svc := newReviewFixture(t)
	submissions.submissions = []models.Submission{{ID: 1, Status: models.SubmissionStatusPending}}

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.True(t, mr.Exists("stats:submissions"))

	_, err = svc.UpdateStatus(context.Background(), 1, dto.SubmissionStatusUpdateRequest{
		Status: models.SubmissionStatusApproved,
	}, "admin")
	require.NoError(t, err)
	require.False(t, mr.Exists("stats:submissions"))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.Approved)
	require.Equal(t, int64(0), stats.Pending)
}
