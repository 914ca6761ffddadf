package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

func TestSettingSetOverwrites(t *testing.T) {
	db := setupRepoTestDB(t, &models.Setting{})
	repo := NewSettingRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "registration_open")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Set(ctx, "registration_open", "true"))
	value, err := repo.Get(ctx, "registration_open")
	require.NoError(t, err)
	require.Equal(t, "true", value)

	require.NoError(t, repo.Set(ctx, "registration_open", "false"))
	value, err = repo.Get(ctx, "registration_open")
	require.NoError(t, err)
	require.Equal(t, "false", value)
}

func TestTimeSlotCreateRejectsDuplicate(t *testing.T) {
	db := setupRepoTestDB(t, &models.TimeSlot{})
	repo := NewTimeSlotRepository(db)
	ctx := context.Background()

	slot := models.TimeSlot{Date: "2026-09-10", Time: "09:30", Available: true}
	require.NoError(t, repo.Create(ctx, &slot))

	dup := models.TimeSlot{Date: "2026-09-10", Time: "09:30", Available: true}
	require.ErrorIs(t, repo.Create(ctx, &dup), ErrSlotExists)

	other := models.TimeSlot{Date: "2026-09-10", Time: "10:00", Available: true}
	require.NoError(t, repo.Create(ctx, &other))

	require.NoError(t, repo.UpdateAvailability(ctx, slot.ID, false))
	found, err := repo.FindByDateTime(ctx, "2026-09-10", "09:30")
	require.NoError(t, err)
	require.False(t, found.Available)
}
