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

func submitVacation(t *testing.T, env *testEnv, userID, start, end string) service.RequestResponse {
	t.Helper()

	resp, err := env.requests.Submit(context.Background(), userID, service.SubmitRequestDTO{
		Type:      model.RequestTypeVacation,
		StartDate: start,
		EndDate:   end,
		Reason:    "summer trip",
	})
	require.NoError(t, err)
	return resp
}

func TestRequestService_Submit_CreatesPending(t *testing.T) {
	env := newTestEnv(t)
	user := createTestUser(t, env.db, "alice", model.RoleUser)

	resp := submitVacation(t, env, user.ID.String(), "2024-06-03", "2024-06-07")

	assert.Equal(t, model.RequestStatusPending, resp.Status)
	assert.Equal(t, model.RequestTypeVacation, resp.Type)
	assert.Equal(t, "2024-06-03", resp.StartDate)
	assert.Equal(t, "2024-06-07", resp.EndDate)
	assert.Equal(t, user.ID.String(), resp.UserID)
}

func TestRequestService_Submit_RejectsInvertedRange(t *testing.T) {
	env := newTestEnv(t)
	user := createTestUser(t, env.db, "alice", model.RoleUser)

	_, err := env.requests.Submit(context.Background(), user.ID.String(), service.SubmitRequestDTO{
		Type:      model.RequestTypeVacation,
		StartDate: "2024-06-07",
		EndDate:   "2024-06-03",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start date must be before or equal to end date")
}

func TestRequestService_Approve_Vacation_GeneratesWeekdayRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	// GIVEN: a vacation request spanning Mon Jun 3 through Sun Jun 9 2024
	req := submitVacation(t, env, user.ID.String(), "2024-06-03", "2024-06-09")

	// WHEN: an admin approves it
	resp, err := env.requests.Approve(ctx, admin.ID.String(), req.ID)
	require.NoError(t, err)

	// THEN: the request is stamped with approver and timestamp
	assert.Equal(t, model.RequestStatusApproved, resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, admin.ID.String(), *resp.ApprovedBy)
	assert.NotNil(t, resp.ApprovedAt)

	// AND: one 8h entry exists per weekday, none for the weekend
	start, _ := workdays.ParseDate("2024-06-03")
	end, _ := workdays.ParseDate("2024-06-09")
	entries, err := env.hourRepo.ListRange(ctx, user.ID, start, end, "")
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for _, entry := range entries {
		assert.Equal(t, model.SourceRequestApproval, entry.Source)
		assert.Equal(t, model.HourTypeVacation, entry.Type)
		assert.True(t, entry.Hours.Equal(entries[0].Hours))
		assert.Equal(t, "8", entry.Hours.String())
		require.NotNil(t, entry.SourceRequestID)
		assert.Equal(t, req.ID, entry.SourceRequestID.String())
		assert.False(t, workdays.IsWeekend(entry.Date))
	}

	// AND: a VACATION shift cell per weekday
	shifts, err := env.shiftRepo.ListRange(ctx, user.ID, start, end)
	require.NoError(t, err)
	require.Len(t, shifts, 5)
	for _, shift := range shifts {
		assert.Equal(t, model.ShiftLocationVacation, shift.Location)
		assert.Equal(t, model.SourceRequestApproval, shift.Source)
	}

	// AND: the summary reflects the generated hours as tracked
	summaries, err := env.summaryRepo.ListRange(ctx, user.ID, start, end, "")
	require.NoError(t, err)
	require.Len(t, summaries, 5)
	for _, summary := range summaries {
		assert.Equal(t, "8", summary.TrackedHours.String())
		assert.True(t, summary.ManualHours.IsZero())
		assert.Equal(t, "8", summary.TotalHours.String())
	}
}

func TestRequestService_Approve_WorkFromHome_NoHourEntries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	req, err := env.requests.Submit(ctx, user.ID.String(), service.SubmitRequestDTO{
		Type:      model.RequestTypeWorkFromHome,
		StartDate: "2024-06-03",
		EndDate:   "2024-06-05",
	})
	require.NoError(t, err)

	_, err = env.requests.Approve(ctx, admin.ID.String(), req.ID)
	require.NoError(t, err)

	start, _ := workdays.ParseDate("2024-06-03")
	end, _ := workdays.ParseDate("2024-06-05")

	entries, err := env.hourRepo.ListRange(ctx, user.ID, start, end, "")
	require.NoError(t, err)
	assert.Empty(t, entries)

	shifts, err := env.shiftRepo.ListRange(ctx, user.ID, start, end)
	require.NoError(t, err)
	require.Len(t, shifts, 3)
	for _, shift := range shifts {
		assert.Equal(t, model.ShiftLocationHome, shift.Location)
	}
}

func TestRequestService_Approve_OverwritesExistingShiftCell(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	// GIVEN: the user already marked Jun 4 as an office day
	_, err := env.shifts.Upsert(ctx, user.ID.String(), model.RoleUser, service.UpsertShiftDTO{
		Date:     "2024-06-04",
		Location: model.ShiftLocationOffice,
	})
	require.NoError(t, err)

	req := submitVacation(t, env, user.ID.String(), "2024-06-03", "2024-06-05")
	_, err = env.requests.Approve(ctx, admin.ID.String(), req.ID)
	require.NoError(t, err)

	// THEN: the cell is taken over, not duplicated
	start, _ := workdays.ParseDate("2024-06-03")
	end, _ := workdays.ParseDate("2024-06-05")
	shifts, err := env.shiftRepo.ListRange(ctx, user.ID, start, end)
	require.NoError(t, err)
	require.Len(t, shifts, 3)
	for _, shift := range shifts {
		assert.Equal(t, model.ShiftLocationVacation, shift.Location)
		assert.Equal(t, model.SourceRequestApproval, shift.Source)
	}
}

func TestRequestService_Approve_NonPending_Fails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	req := submitVacation(t, env, user.ID.String(), "2024-06-03", "2024-06-07")

	_, err := env.requests.Approve(ctx, admin.ID.String(), req.ID)
	require.NoError(t, err)

	_, err = env.requests.Approve(ctx, admin.ID.String(), req.ID)
	require.Error(t, err)
	assert.Equal(t, "can only approve pending requests", err.Error())

	_, err = env.requests.Reject(ctx, admin.ID.String(), req.ID, "nope")
	require.Error(t, err)
	assert.Equal(t, "can only reject pending requests", err.Error())
}

func TestRequestService_Update_ApprovedRequest_FailsAndLeavesFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	req := submitVacation(t, env, user.ID.String(), "2024-06-03", "2024-06-07")
	_, err := env.requests.Approve(ctx, admin.ID.String(), req.ID)
	require.NoError(t, err)

	_, err = env.requests.Update(ctx, user.ID.String(), req.ID, service.UpdateRequestDTO{
		StartDate: "2024-07-01",
		EndDate:   "2024-07-05",
	})
	require.Error(t, err)
	assert.Equal(t, "can only update pending requests", err.Error())

	list, _, err := env.requests.ListForUser(ctx, user.ID.String(), service.RequestListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2024-06-03", list[0].StartDate)
	assert.Equal(t, "2024-06-07", list[0].EndDate)
}

func TestRequestService_Update_NotOwner_Fails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	other := createTestUser(t, env.db, "mallory", model.RoleUser)

	req := submitVacation(t, env, user.ID.String(), "2024-06-03", "2024-06-07")

	_, err := env.requests.Update(ctx, other.ID.String(), req.ID, service.UpdateRequestDTO{Reason: "mine now"})
	require.Error(t, err)
	assert.Equal(t, "request not found", err.Error())
}

func TestRequestService_Cancel_PendingOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)

	req := submitVacation(t, env, user.ID.String(), "2024-06-03", "2024-06-07")

	resp, err := env.requests.Cancel(ctx, user.ID.String(), req.ID, "plans changed")
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusCancelled, resp.Status)
	assert.Equal(t, "plans changed", resp.CancellationReason)

	_, err = env.requests.Cancel(ctx, user.ID.String(), req.ID, "again")
	require.Error(t, err)
	assert.Equal(t, "can only cancel pending requests", err.Error())
}

func TestRequestService_CancelApproved_ReversesGeneratedRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	req := submitVacation(t, env, user.ID.String(), "2024-06-03", "2024-06-07")
	_, err := env.requests.Approve(ctx, admin.ID.String(), req.ID)
	require.NoError(t, err)

	// A manual entry on one of the days must survive the reversal
	_, err = env.hours.Create(ctx, user.ID.String(), service.HourEntryDTO{
		Date:  "2024-06-04",
		Hours: hours(2),
		Type:  model.HourTypeWork,
	})
	require.NoError(t, err)

	resp, err := env.requests.CancelApproved(ctx, admin.ID.String(), req.ID, "project emergency")
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusCancelled, resp.Status)
	assert.Equal(t, "project emergency", resp.CancellationReason)

	start, _ := workdays.ParseDate("2024-06-03")
	end, _ := workdays.ParseDate("2024-06-09")

	entries, err := env.hourRepo.ListRange(ctx, user.ID, start, end, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.SourceManual, entries[0].Source)
	assert.Equal(t, model.HourTypeWork, entries[0].Type)

	shifts, err := env.shiftRepo.ListRange(ctx, user.ID, start, end)
	require.NoError(t, err)
	assert.Empty(t, shifts)

	// The summary was refreshed: only the manual entry remains
	summaries, err := env.summaryRepo.ListRange(ctx, user.ID, start, end, "")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "2", summaries[0].ManualHours.String())
	assert.True(t, summaries[0].TrackedHours.IsZero())
}

func TestRequestService_CancelApproved_RequiresReason(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	req := submitVacation(t, env, user.ID.String(), "2024-06-03", "2024-06-07")
	_, err := env.requests.Approve(ctx, admin.ID.String(), req.ID)
	require.NoError(t, err)

	_, err = env.requests.CancelApproved(ctx, admin.ID.String(), req.ID, "")
	require.Error(t, err)
	assert.Equal(t, "cancellation reason is required", err.Error())

	_, err = env.requests.CancelApproved(ctx, admin.ID.String(), req.ID, "valid reason")
	require.NoError(t, err)

	// Only APPROVED requests can be late-cancelled
	_, err = env.requests.CancelApproved(ctx, admin.ID.String(), req.ID, "twice")
	require.Error(t, err)
	assert.Equal(t, "can only cancel approved requests", err.Error())
}

func TestRequestService_Approve_NotifiesOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, env.db, "alice", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	req := submitVacation(t, env, user.ID.String(), "2024-06-03", "2024-06-07")
	_, err := env.requests.Approve(ctx, admin.ID.String(), req.ID)
	require.NoError(t, err)

	notifications, total, err := env.notifications.ListForUser(ctx, user.ID.String(), false, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationRequestApproved, notifications[0].Type)
	require.NotNil(t, notifications[0].RequestID)
	assert.Equal(t, req.ID, *notifications[0].RequestID)
	assert.False(t, notifications[0].Read)
}

func TestRequestService_ListForUser_ScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := createTestUser(t, env.db, "alice", model.RoleUser)
	bob := createTestUser(t, env.db, "bob", model.RoleUser)

	submitVacation(t, env, alice.ID.String(), "2024-06-03", "2024-06-07")
	submitVacation(t, env, bob.ID.String(), "2024-06-10", "2024-06-14")

	own, total, err := env.requests.ListForUser(ctx, alice.ID.String(), service.RequestListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, own, 1)
	assert.Equal(t, alice.ID.String(), own[0].UserID)

	all, total, err := env.requests.ListAll(ctx, service.RequestListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	pending, _, err := env.requests.ListAll(ctx, service.RequestListFilter{Status: model.RequestStatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	approved, _, err := env.requests.ListAll(ctx, service.RequestListFilter{Status: model.RequestStatusApproved})
	require.NoError(t, err)
	assert.Empty(t, approved)
}

func TestRequestService_Get_OwnerOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := createTestUser(t, env.db, "alice", model.RoleUser)
	bob := createTestUser(t, env.db, "bob", model.RoleUser)
	admin := createTestUser(t, env.db, "boss", model.RoleAdmin)

	req := submitVacation(t, env, alice.ID.String(), "2024-06-03", "2024-06-07")

	got, err := env.requests.Get(ctx, alice.ID.String(), model.RoleUser, req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ID, got.ID)

	_, err = env.requests.Get(ctx, bob.ID.String(), model.RoleUser, req.ID)
	require.Error(t, err)
	assert.Equal(t, "request not found", err.Error())

	viewed, err := env.requests.Get(ctx, admin.ID.String(), model.RoleAdmin, req.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID.String(), viewed.UserID)
}
