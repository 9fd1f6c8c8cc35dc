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

func TestHolidayService_Create_RejectsDuplicateDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	_, err := env.holidays.Create(ctx, admin.ID.String(), service.HolidayDTO{
		Date: "2024-12-25",
		Name: "Christmas",
	})
	require.NoError(t, err)

	_, err = env.holidays.Create(ctx, admin.ID.String(), service.HolidayDTO{
		Date: "2024-12-25",
		Name: "Another Christmas",
	})
	require.Error(t, err)
	assert.Equal(t, "a holiday already exists on this date", err.Error())
}

func TestHolidayService_Update_RejectsMoveOntoExistingDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	_, err := env.holidays.Create(ctx, admin.ID.String(), service.HolidayDTO{
		Date: "2024-12-25",
		Name: "Christmas",
	})
	require.NoError(t, err)

	boxing, err := env.holidays.Create(ctx, admin.ID.String(), service.HolidayDTO{
		Date: "2024-12-26",
		Name: "Boxing Day",
	})
	require.NoError(t, err)

	_, err = env.holidays.Update(ctx, admin.ID.String(), boxing.ID, service.HolidayDTO{
		Date: "2024-12-25",
		Name: "Boxing Day",
	})
	require.Error(t, err)
	assert.Equal(t, "a holiday already exists on this date", err.Error())

	// Updating in place without moving the date is fine
	updated, err := env.holidays.Update(ctx, admin.ID.String(), boxing.ID, service.HolidayDTO{
		Date:        "2024-12-26",
		Name:        "Boxing Day",
		Description: "office closed",
	})
	require.NoError(t, err)
	assert.Equal(t, "office closed", updated.Description)
}

func TestHolidayService_SetForRange_ExpandsRecurring(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	// Recurring holiday first observed in 2020
	_, err := env.holidays.Create(ctx, admin.ID.String(), service.HolidayDTO{
		Date:        "2020-12-25",
		Name:        "Christmas",
		IsRecurring: true,
	})
	require.NoError(t, err)

	// Concrete one-off inside the queried year
	_, err = env.holidays.Create(ctx, admin.ID.String(), service.HolidayDTO{
		Date: "2024-06-05",
		Name: "Founders Day",
	})
	require.NoError(t, err)

	start, _ := workdays.ParseDate("2024-01-01")
	end, _ := workdays.ParseDate("2024-12-31")
	set, err := env.holidays.SetForRange(ctx, start, end)
	require.NoError(t, err)

	christmas, _ := workdays.ParseDate("2024-12-25")
	founders, _ := workdays.ParseDate("2024-06-05")
	newYears, _ := workdays.ParseDate("2024-01-01")

	assert.True(t, set.Contains(christmas))
	assert.True(t, set.Contains(founders))
	assert.False(t, set.Contains(newYears))
}

func TestHolidayService_Delete_RemovesHoliday(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	holiday, err := env.holidays.Create(ctx, admin.ID.String(), service.HolidayDTO{
		Date: "2024-12-25",
		Name: "Christmas",
	})
	require.NoError(t, err)

	require.NoError(t, env.holidays.Delete(ctx, admin.ID.String(), holiday.ID))

	list, err := env.holidays.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = env.holidays.Delete(ctx, admin.ID.String(), holiday.ID)
	require.Error(t, err)
	assert.Equal(t, "holiday not found", err.Error())
}
