package service_test

import (
	"context"
	"testing"

	"timetrack-backend/internal/model"
	"timetrack-backend/internal/service"
	"timetrack-backend/pkg/workdays"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftService_Upsert_SingleCellPerUserAndDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)

	first, err := env.shifts.Upsert(ctx, user.ID.String(), model.RoleUser, service.UpsertShiftDTO{
		Date:     "2024-06-03",
		Location: model.ShiftLocationOffice,
	})
	require.NoError(t, err)
	assert.Equal(t, model.SourceManual, first.Source)

	second, err := env.shifts.Upsert(ctx, user.ID.String(), model.RoleUser, service.UpsertShiftDTO{
		Date:     "2024-06-03",
		Location: model.ShiftLocationHome,
		Notes:    "plumber visit",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.ShiftLocationHome, second.Location)

	start, _ := workdays.ParseDate("2024-06-03")
	shifts, err := env.shiftRepo.ListRange(ctx, user.ID, start, start)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "plumber visit", shifts[0].Notes)
}

func TestShiftService_Upsert_ManualWriteTakesOverGeneratedCell(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	req, err := env.requests.Submit(ctx, user.ID.String(), service.SubmitRequestDTO{
		Type:      model.RequestTypeVacation,
		StartDate: "2024-06-03",
		EndDate:   "2024-06-03",
	})
	require.NoError(t, err)
	_, err = env.requests.Approve(ctx, admin.ID.String(), req.ID)
	require.NoError(t, err)

	shift, err := env.shifts.Upsert(ctx, user.ID.String(), model.RoleUser, service.UpsertShiftDTO{
		Date:     "2024-06-03",
		Location: model.ShiftLocationOffice,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ShiftLocationOffice, shift.Location)
	assert.Equal(t, model.SourceManual, shift.Source)

	// The stored row lost its request back-reference along with the takeover
	date, _ := workdays.ParseDate("2024-06-03")
	stored, err := env.shiftRepo.FindByUserDate(ctx, user.ID, date)
	require.NoError(t, err)
	assert.Nil(t, stored.SourceRequestID)
}

func TestShiftService_Upsert_AdminWritesOtherUsersCell(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)
	other := createTestUser(t, env.db, "bob", model.RoleUser)

	shift, err := env.shifts.Upsert(ctx, admin.ID.String(), model.RoleAdmin, service.UpsertShiftDTO{
		UserID:   user.ID.String(),
		Date:     "2024-06-03",
		Location: model.ShiftLocationOffice,
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), shift.UserID)

	_, err = env.shifts.Upsert(ctx, other.ID.String(), model.RoleUser, service.UpsertShiftDTO{
		UserID:   user.ID.String(),
		Date:     "2024-06-03",
		Location: model.ShiftLocationHome,
	})
	require.Error(t, err)
	assert.Equal(t, "cannot edit another user's shift", err.Error())
}

func TestShiftService_Delete_OwnerOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	other := createTestUser(t, env.db, "bob", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	shift, err := env.shifts.Upsert(ctx, user.ID.String(), model.RoleUser, service.UpsertShiftDTO{
		Date:     "2024-06-03",
		Location: model.ShiftLocationOffice,
	})
	require.NoError(t, err)

	err = env.shifts.Delete(ctx, other.ID.String(), model.RoleUser, shift.ID)
	require.Error(t, err)
	assert.Equal(t, "shift not found", err.Error())

	require.NoError(t, env.shifts.Delete(ctx, admin.ID.String(), model.RoleAdmin, shift.ID))
}

func TestShiftService_ListRange_AdminViewsOtherUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	other := createTestUser(t, env.db, "bob", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	_, err := env.shifts.Upsert(ctx, user.ID.String(), model.RoleUser, service.UpsertShiftDTO{
		Date:     "2024-06-03",
		Location: model.ShiftLocationOffice,
	})
	require.NoError(t, err)

	own, err := env.shifts.ListRange(ctx, user.ID.String(), model.RoleUser, "", "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Len(t, own, 1)

	viewed, err := env.shifts.ListRange(ctx, admin.ID.String(), model.RoleAdmin, user.ID.String(), "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Len(t, viewed, 1)

	_, err = env.shifts.ListRange(ctx, other.ID.String(), model.RoleUser, user.ID.String(), "2024-06-01", "2024-06-30")
	require.Error(t, err)
	assert.Equal(t, "cannot view another user's shifts", err.Error())
}
