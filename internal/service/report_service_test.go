package service_test

import (
	"context"
	"testing"

	"timetrack-backend/internal/model"
	"timetrack-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_Overtime_HolidayAwareExpectation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	// GIVEN: Wed Jun 5 2024 is a holiday, so Mon Jun 3 - Fri Jun 7 has 4 working days
	_, err := env.holidays.Create(ctx, admin.ID.String(), service.HolidayDTO{
		Date: "2024-06-05",
		Name: "Founders Day",
	})
	require.NoError(t, err)

	// AND: the user logged 9h on each of the 5 weekdays
	_, err = env.hours.BulkCreate(ctx, user.ID.String(), service.BulkCreateDTO{
		StartDate:   "2024-06-03",
		EndDate:     "2024-06-07",
		HoursPerDay: hours(9),
		Type:        model.HourTypeWork,
	})
	require.NoError(t, err)

	report, err := env.reports.Overtime(ctx, user.ID.String(), model.RoleUser, "", "2024-06-03", "2024-06-07")
	require.NoError(t, err)

	assert.Equal(t, 4, report.WorkingDays)
	assert.Equal(t, "32", report.ExpectedHours.String())
	assert.Equal(t, "45", report.TotalHours.String())
	assert.Equal(t, "13", report.Overtime.String())
}

func TestReportService_Overtime_NegativeWhenUnderLogged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)

	_, err := env.hours.Create(ctx, user.ID.String(), service.HourEntryDTO{
		Date:  "2024-06-03",
		Hours: hours(4),
		Type:  model.HourTypeWork,
	})
	require.NoError(t, err)

	report, err := env.reports.Overtime(ctx, user.ID.String(), model.RoleUser, "", "2024-06-03", "2024-06-03")
	require.NoError(t, err)

	assert.Equal(t, 1, report.WorkingDays)
	assert.Equal(t, "-4", report.Overtime.String())
}

func TestReportService_AccessControl(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	other := createTestUser(t, env.db, "bob", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	_, err := env.reports.Overtime(ctx, other.ID.String(), model.RoleUser, user.ID.String(), "2024-06-03", "2024-06-07")
	require.Error(t, err)
	assert.Equal(t, "cannot view another user's report", err.Error())

	report, err := env.reports.Overtime(ctx, admin.ID.String(), model.RoleAdmin, user.ID.String(), "2024-06-03", "2024-06-07")
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), report.UserID)
}

func TestReportService_TotalsByType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)

	_, err := env.hours.BulkCreate(ctx, user.ID.String(), service.BulkCreateDTO{
		StartDate:   "2024-06-03",
		EndDate:     "2024-06-04",
		HoursPerDay: hours(8),
		Type:        model.HourTypeWork,
	})
	require.NoError(t, err)
	_, err = env.hours.Create(ctx, user.ID.String(), service.HourEntryDTO{
		Date:  "2024-06-05",
		Hours: hours(3),
		Type:  model.HourTypeOther,
	})
	require.NoError(t, err)

	totals, err := env.reports.TotalsByType(ctx, user.ID.String(), model.RoleUser, "", "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byType := map[string]struct {
		total string
		days  int
	}{}
	for _, row := range totals {
		byType[row.Type] = struct {
			total string
			days  int
		}{row.TotalHours, row.Days}
	}

	assert.Equal(t, "16", byType[model.HourTypeWork].total)
	assert.Equal(t, 2, byType[model.HourTypeWork].days)
	assert.Equal(t, "3", byType[model.HourTypeOther].total)
	assert.Equal(t, 1, byType[model.HourTypeOther].days)
}
