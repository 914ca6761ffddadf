package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chenaniah/academy-api/internal/models"
)

func newPrayerFixture() (*fakePrayerRepo, PrayerService) {
	slots := &fakePrayerRepo{}
	return slots, NewPrayerService(slots, testLogger())
}

func TestGenerateExcludesServiceHours(t *testing.T) {
	slots, svc := newPrayerFixture()

	created, err := svc.Generate(context.Background())
	require.NoError(t, err)
	// A full week of 15-minute slots is 672; Wednesday 17:00-19:00 drops 8
	// and Sunday 15:00-18:00 drops 12.
	require.Equal(t, 652, created)
	require.Len(t, slots.slots, 652)

	for _, slot := range slots.slots {
		if slot.DayOfWeek == 3 {
			require.NotEqual(t, "17:00", slot.StartTime)
			require.NotEqual(t, "18:45", slot.StartTime)
		}
		if slot.DayOfWeek == 0 {
			require.NotEqual(t, "15:00", slot.StartTime)
			require.NotEqual(t, "17:45", slot.StartTime)
		}
	}
}

func TestGenerateDropsExistingClaims(t *testing.T) {
	slots, svc := newPrayerFixture()
	studentID := uint(5)
	slots.slots = []models.PrayerSlot{{ID: 1, DayOfWeek: 1, StartTime: "08:00", ClaimedByID: &studentID}}

	_, err := svc.Generate(context.Background())
	require.NoError(t, err)

	for _, slot := range slots.slots {
		require.Nil(t, slot.ClaimedByID)
	}
}

func TestExcludedSlotBoundaries(t *testing.T) {
	require.True(t, excludedSlot(3, 17, 0))
	require.True(t, excludedSlot(3, 18, 45))
	require.False(t, excludedSlot(3, 19, 0))
	require.False(t, excludedSlot(3, 16, 45))
	require.True(t, excludedSlot(0, 15, 0))
	require.True(t, excludedSlot(0, 17, 45))
	require.False(t, excludedSlot(0, 18, 0))
	require.False(t, excludedSlot(1, 17, 0))
}

func TestSlotsGroupedByDay(t *testing.T) {
	slots, svc := newPrayerFixture()
	slots.slots = []models.PrayerSlot{
		{ID: 1, DayOfWeek: 0, StartTime: "08:00"},
		{ID: 2, DayOfWeek: 0, StartTime: "08:15"},
		{ID: 3, DayOfWeek: 4, StartTime: "10:00"},
	}

	days, err := svc.Slots(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, days, 7)
	require.Len(t, days[0].Slots, 2)
	require.Len(t, days[4].Slots, 1)
	require.Empty(t, days[1].Slots)

	day := 4
	filtered, err := svc.Slots(context.Background(), &day)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, 4, filtered[0].DayOfWeek)

	bad := 9
	_, err = svc.Slots(context.Background(), &bad)
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "Day must be between 0 and 6", be.Message)
}

func TestClaimOneSlotPerStudent(t *testing.T) {
	slots, svc := newPrayerFixture()
	slots.slots = []models.PrayerSlot{
		{ID: 1, DayOfWeek: 1, StartTime: "08:00"},
		{ID: 2, DayOfWeek: 1, StartTime: "08:15"},
	}

	require.NoError(t, svc.Claim(context.Background(), 1, 7))

	err := svc.Claim(context.Background(), 2, 7)
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "You already have a prayer slot claimed. Please release it first before claiming a new one.", be.Message)

	// Another student cannot take a held slot.
	err = svc.Claim(context.Background(), 1, 8)
	be, ok = AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "This slot is already claimed", be.Message)

	err = svc.Claim(context.Background(), 99, 8)
	require.ErrorIs(t, err, ErrPrayerSlotNotFound)
}

func TestReleaseOwnSlotOnly(t *testing.T) {
	slots, svc := newPrayerFixture()
	owner := uint(7)
	slots.slots = []models.PrayerSlot{{ID: 1, DayOfWeek: 1, StartTime: "08:00", ClaimedByID: &owner}}

	err := svc.Release(context.Background(), 1, 8)
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "You can only release your own prayer slot", be.Message)

	require.NoError(t, svc.Release(context.Background(), 1, 7))
	require.Nil(t, slots.slots[0].ClaimedByID)

	mine, err := svc.MySlot(context.Background(), 7)
	require.NoError(t, err)
	require.Nil(t, mine)
}

func TestOverviewCoverage(t *testing.T) {
	slots, svc := newPrayerFixture()
	owner := uint(7)
	slots.slots = []models.PrayerSlot{
		{ID: 1, DayOfWeek: 1, StartTime: "08:00", ClaimedByID: &owner},
		{ID: 2, DayOfWeek: 1, StartTime: "08:15"},
		{ID: 3, DayOfWeek: 1, StartTime: "08:30"},
		{ID: 4, DayOfWeek: 1, StartTime: "08:45"},
	}

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(4), overview.TotalSlots)
	require.Equal(t, int64(1), overview.ClaimedSlots)
	require.InDelta(t, 0.25, overview.Coverage, 0.001)
}
