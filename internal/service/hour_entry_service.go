package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"timetrack-backend/internal/model"
	"timetrack-backend/internal/repository"
	"timetrack-backend/pkg/workdays"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Row kinds for the synthesized read path. A "manual" row is a stored entry;
// "tracked", "total" and "grand_total" rows are derived from the summary table.
const (
	RowKindManual     = "manual"
	RowKindTracked    = "tracked"
	RowKindTotal      = "total"
	RowKindGrandTotal = "grand_total"
)

// --- DTOs ---

type HourEntryDTO struct {
	Date        string          `json:"date" binding:"required"`
	Hours       decimal.Decimal `json:"hours" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=WORK VACATION SICK_LEAVE WORK_FROM_HOME OTHER"`
	Description string          `json:"description"`
}

type BulkCreateDTO struct {
	StartDate    string          `json:"start_date" binding:"required"`
	EndDate      string          `json:"end_date" binding:"required"`
	HoursPerDay  decimal.Decimal `json:"hours_per_day" binding:"required"`
	Type         string          `json:"type" binding:"required,oneof=WORK VACATION SICK_LEAVE WORK_FROM_HOME OTHER"`
	Description  string          `json:"description"`
	SkipWeekends bool            `json:"skip_weekends"`
	SkipHolidays bool            `json:"skip_holidays"`
}

type BatchChangeDTO struct {
	Action      string          `json:"action" binding:"required,oneof=create update delete"`
	EntryID     string          `json:"entry_id"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
}

type HourEntryResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Source      string          `json:"source"`
}

// HourRow is one display row of the read path. EntryID is set only for
// manual rows.
type HourRow struct {
	Kind        string          `json:"kind"`
	Date        string          `json:"date"`
	Type        string          `json:"type,omitempty"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description,omitempty"`
	EntryID     *string         `json:"entry_id,omitempty"`
}

// --- Interface ---

type HourEntryService interface {
	Create(ctx context.Context, userID string, req HourEntryDTO) (HourEntryResponse, error)
	Update(ctx context.Context, userID string, id string, req HourEntryDTO) (HourEntryResponse, error)
	Delete(ctx context.Context, userID string, id string) error
	BulkCreate(ctx context.Context, userID string, req BulkCreateDTO) (int, error)
	BatchUpdate(ctx context.Context, userID string, changes []BatchChangeDTO) error
	List(ctx context.Context, userID string, startStr, endStr, hourType string) ([]HourRow, error)
}

type hourEntryService struct {
	txManager   repository.TransactionManager
	hourRepo    repository.HourEntryRepository
	summaryRepo repository.SummaryRepository
	auditRepo   repository.AuditRepository
	holidays    HolidayService
	logger      *logrus.Logger
}

func NewHourEntryService(
	txManager repository.TransactionManager,
	hourRepo repository.HourEntryRepository,
	summaryRepo repository.SummaryRepository,
	auditRepo repository.AuditRepository,
	holidays HolidayService,
) HourEntryService {
	return &hourEntryService{
		txManager:   txManager,
		hourRepo:    hourRepo,
		summaryRepo: summaryRepo,
		auditRepo:   auditRepo,
		holidays:    holidays,
		logger:      logrus.New(),
	}
}

var maxDailyHours = decimal.NewFromInt(24)

func validateHours(hours decimal.Decimal) error {
	if !hours.IsPositive() || hours.GreaterThan(maxDailyHours) {
		return errors.New("hours must be greater than 0 and at most 24")
	}
	return nil
}

// --- Implementation ---

// Create is an upsert keyed on (user, date, type): a second write to the same
// manual slot updates the stored row instead of duplicating it.
func (s *hourEntryService) Create(ctx context.Context, userID string, req HourEntryDTO) (HourEntryResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return HourEntryResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	date, err := workdays.ParseDate(req.Date)
	if err != nil {
		return HourEntryResponse{}, err
	}
	if err := validateHours(req.Hours); err != nil {
		return HourEntryResponse{}, err
	}

	var entry *model.HourEntry
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var upsertErr error
		entry, upsertErr = s.upsertManualSlot(txCtx, uid, date, req.Type, req.Hours, req.Description)
		if upsertErr != nil {
			return upsertErr
		}
		return s.audit(txCtx, &uid, model.ActionCreateHourEntry, entry)
	})
	if err != nil {
		return HourEntryResponse{}, err
	}

	s.refresh(ctx)
	return toHourEntryResponse(entry), nil
}

func (s *hourEntryService) Update(ctx context.Context, userID string, id string, req HourEntryDTO) (HourEntryResponse, error) {
	uid, entryID, err := parseIDs(userID, id)
	if err != nil {
		return HourEntryResponse{}, err
	}
	if err := validateHours(req.Hours); err != nil {
		return HourEntryResponse{}, err
	}

	var entry *model.HourEntry
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		entry, err = s.hourRepo.FindByID(txCtx, entryID)
		if err != nil || entry.UserID != uid {
			return errors.New("hour entry not found")
		}
		if entry.Source != model.SourceManual {
			return errors.New("can only update manual hour entries")
		}

		if req.Date != "" {
			date, parseErr := workdays.ParseDate(req.Date)
			if parseErr != nil {
				return parseErr
			}
			entry.Date = date
		}
		if req.Type != "" {
			entry.Type = req.Type
		}
		entry.Hours = req.Hours
		entry.Description = req.Description

		if saveErr := s.hourRepo.Update(txCtx, entry); saveErr != nil {
			return fmt.Errorf("failed to update hour entry: %w", saveErr)
		}
		return s.audit(txCtx, &uid, model.ActionUpdateHourEntry, entry)
	})
	if err != nil {
		return HourEntryResponse{}, err
	}

	s.refresh(ctx)
	return toHourEntryResponse(entry), nil
}

func (s *hourEntryService) Delete(ctx context.Context, userID string, id string) error {
	uid, entryID, err := parseIDs(userID, id)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		entry, findErr := s.hourRepo.FindByID(txCtx, entryID)
		if findErr != nil || entry.UserID != uid {
			return errors.New("hour entry not found")
		}
		if entry.Source != model.SourceManual {
			return errors.New("can only delete manual hour entries")
		}
		if delErr := s.hourRepo.Delete(txCtx, entryID); delErr != nil {
			return fmt.Errorf("failed to delete hour entry: %w", delErr)
		}
		return s.audit(txCtx, &uid, model.ActionDeleteHourEntry, entry)
	})
	if err != nil {
		return err
	}

	s.refresh(ctx)
	return nil
}

// BulkCreate fills a date range with one manual entry per remaining day after
// the weekend/holiday filters, all inside one transaction. Returns the number
// of days written.
func (s *hourEntryService) BulkCreate(ctx context.Context, userID string, req BulkCreateDTO) (int, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return 0, fmt.Errorf("invalid user id: %w", err)
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return 0, err
	}
	if err := validateHours(req.HoursPerDay); err != nil {
		return 0, err
	}

	holidaySet := workdays.HolidaySet{}
	if req.SkipHolidays {
		holidaySet, err = s.holidays.SetForRange(ctx, start, end)
		if err != nil {
			return 0, err
		}
	}

	written := 0
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for _, day := range workdays.Days(start, end) {
			if req.SkipWeekends && workdays.IsWeekend(day) {
				continue
			}
			if req.SkipHolidays && holidaySet.Contains(day) {
				continue
			}
			if _, upsertErr := s.upsertManualSlot(txCtx, uid, day, req.Type, req.HoursPerDay, req.Description); upsertErr != nil {
				return upsertErr
			}
			written++
		}

		details, _ := json.Marshal(map[string]interface{}{
			"start": start.Format(workdays.DateLayout),
			"end":   end.Format(workdays.DateLayout),
			"type":  req.Type,
			"days":  written,
		})
		entry := model.AuditLog{
			UserID:   &uid,
			Action:   model.ActionBulkHourEntries,
			EntityID: uid.String(),
			Details:  string(details),
		}
		return s.auditRepo.Log(txCtx, &entry)
	})
	if err != nil {
		return 0, err
	}

	s.refresh(ctx)
	return written, nil
}

// BatchUpdate applies a list of heterogeneous grid edits in order inside one
// transaction; any failing change rolls back the whole batch.
func (s *hourEntryService) BatchUpdate(ctx context.Context, userID string, changes []BatchChangeDTO) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	if len(changes) == 0 {
		return errors.New("no changes supplied")
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for i, change := range changes {
			if applyErr := s.applyChange(txCtx, uid, change); applyErr != nil {
				return fmt.Errorf("change %d: %w", i+1, applyErr)
			}
		}

		details, _ := json.Marshal(map[string]interface{}{"changes": len(changes)})
		entry := model.AuditLog{
			UserID:   &uid,
			Action:   model.ActionBatchHourEntries,
			EntityID: uid.String(),
			Details:  string(details),
		}
		return s.auditRepo.Log(txCtx, &entry)
	})
	if err != nil {
		return err
	}

	s.refresh(ctx)
	return nil
}

// List assembles the display rows for a range: for every summary bucket a
// total row, a tracked row when auto-generated hours exist, and the manual
// entry when present; plus one grand_total row per date across all types.
func (s *hourEntryService) List(ctx context.Context, userID string, startStr, endStr, hourType string) ([]HourRow, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	start, end, err := parseDateRange(startStr, endStr)
	if err != nil {
		return nil, err
	}
	if hourType != "" && !model.ValidHourType(hourType) {
		return nil, errors.New("invalid hour type")
	}

	summaries, err := s.summaryRepo.ListRange(ctx, uid, start, end, hourType)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hour summary: %w", err)
	}
	manualEntries, err := s.hourRepo.ListManualRange(ctx, uid, start, end, hourType)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manual entries: %w", err)
	}

	manualBySlot := make(map[string]*model.HourEntry, len(manualEntries))
	for i := range manualEntries {
		e := &manualEntries[i]
		manualBySlot[slotKey(e.Date, e.Type)] = e
	}

	var rows []HourRow
	grandTotals := make(map[string]decimal.Decimal)
	var dateOrder []string

	for _, summary := range summaries {
		day := workdays.Normalize(summary.Date).Format(workdays.DateLayout)

		rows = append(rows, HourRow{
			Kind:  RowKindTotal,
			Date:  day,
			Type:  summary.Type,
			Hours: summary.TotalHours,
		})
		if summary.TrackedHours.IsPositive() {
			rows = append(rows, HourRow{
				Kind:  RowKindTracked,
				Date:  day,
				Type:  summary.Type,
				Hours: summary.TrackedHours,
			})
		}
		if manual, ok := manualBySlot[slotKey(summary.Date, summary.Type)]; ok {
			entryID := manual.ID.String()
			rows = append(rows, HourRow{
				Kind:        RowKindManual,
				Date:        day,
				Type:        manual.Type,
				Hours:       manual.Hours,
				Description: manual.Description,
				EntryID:     &entryID,
			})
		}

		if _, seen := grandTotals[day]; !seen {
			dateOrder = append(dateOrder, day)
		}
		grandTotals[day] = grandTotals[day].Add(summary.TotalHours)
	}

	for _, day := range dateOrder {
		rows = append(rows, HourRow{
			Kind:  RowKindGrandTotal,
			Date:  day,
			Hours: grandTotals[day],
		})
	}

	return rows, nil
}

// --- Internals ---

func (s *hourEntryService) upsertManualSlot(txCtx context.Context, uid uuid.UUID, date time.Time, hourType string, hours decimal.Decimal, description string) (*model.HourEntry, error) {
	if !model.ValidHourType(hourType) {
		return nil, errors.New("invalid hour type")
	}

	existing, err := s.hourRepo.FindManualSlot(txCtx, uid, date, hourType)
	if err == nil {
		existing.Hours = hours
		existing.Description = description
		if updateErr := s.hourRepo.Update(txCtx, existing); updateErr != nil {
			return nil, fmt.Errorf("failed to update hour entry: %w", updateErr)
		}
		return existing, nil
	}

	entry := model.HourEntry{
		UserID:      uid,
		Date:        date,
		Hours:       hours,
		Type:        hourType,
		Description: description,
		Source:      model.SourceManual,
	}
	if createErr := s.hourRepo.Create(txCtx, &entry); createErr != nil {
		return nil, fmt.Errorf("failed to create hour entry: %w", createErr)
	}
	return &entry, nil
}

func (s *hourEntryService) applyChange(txCtx context.Context, uid uuid.UUID, change BatchChangeDTO) error {
	switch change.Action {
	case "create":
		date, err := workdays.ParseDate(change.Date)
		if err != nil {
			return err
		}
		if err := validateHours(change.Hours); err != nil {
			return err
		}
		_, err = s.upsertManualSlot(txCtx, uid, date, change.Type, change.Hours, change.Description)
		return err

	case "update":
		entryID, err := uuid.Parse(change.EntryID)
		if err != nil {
			return fmt.Errorf("invalid entry id: %w", err)
		}
		if err := validateHours(change.Hours); err != nil {
			return err
		}
		entry, err := s.hourRepo.FindByID(txCtx, entryID)
		if err != nil || entry.UserID != uid || entry.Source != model.SourceManual {
			return errors.New("hour entry not found")
		}
		entry.Hours = change.Hours
		if change.Description != "" {
			entry.Description = change.Description
		}
		return s.hourRepo.Update(txCtx, entry)

	case "delete":
		entryID, err := uuid.Parse(change.EntryID)
		if err != nil {
			return fmt.Errorf("invalid entry id: %w", err)
		}
		entry, err := s.hourRepo.FindByID(txCtx, entryID)
		if err != nil || entry.UserID != uid || entry.Source != model.SourceManual {
			return errors.New("hour entry not found")
		}
		return s.hourRepo.Delete(txCtx, entryID)

	default:
		return fmt.Errorf("unknown action: %s", change.Action)
	}
}

func (s *hourEntryService) refresh(ctx context.Context) {
	if err := s.summaryRepo.Refresh(ctx); err != nil {
		s.logger.WithError(err).Error("summary refresh failed")
	}
}

func (s *hourEntryService) audit(txCtx context.Context, actorID *uuid.UUID, action string, entry *model.HourEntry) error {
	details, _ := json.Marshal(map[string]interface{}{
		"date":  entry.Date.Format(workdays.DateLayout),
		"type":  entry.Type,
		"hours": entry.Hours.String(),
	})
	record := model.AuditLog{
		UserID:   actorID,
		Action:   action,
		EntityID: entry.ID.String(),
		Details:  string(details),
	}
	if err := s.auditRepo.Log(txCtx, &record); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func slotKey(date time.Time, hourType string) string {
	return workdays.Normalize(date).Format(workdays.DateLayout) + "|" + hourType
}

func toHourEntryResponse(e *model.HourEntry) HourEntryResponse {
	return HourEntryResponse{
		ID:          e.ID.String(),
		Date:        e.Date.Format(workdays.DateLayout),
		Hours:       e.Hours,
		Type:        e.Type,
		Description: e.Description,
		Source:      e.Source,
	}
}
