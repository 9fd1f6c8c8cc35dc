package service

import (
	"context"
	"errors"
	"fmt"

	"timetrack-backend/internal/model"
	"timetrack-backend/internal/repository"
	"timetrack-backend/pkg/workdays"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type OvertimeReport struct {
	UserID        string          `json:"user_id"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	WorkingDays   int             `json:"working_days"`
	ExpectedHours decimal.Decimal `json:"expected_hours"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	Overtime      decimal.Decimal `json:"overtime"`
}

// --- Interface ---

type ReportService interface {
	Overtime(ctx context.Context, actorID, actorRole, forUserID, startStr, endStr string) (OvertimeReport, error)
	TotalsByType(ctx context.Context, actorID, actorRole, forUserID, startStr, endStr string) ([]repository.TypeTotal, error)
}

type reportService struct {
	summaryRepo repository.SummaryRepository
	holidays    HolidayService
}

func NewReportService(summaryRepo repository.SummaryRepository, holidays HolidayService) ReportService {
	return &reportService{summaryRepo: summaryRepo, holidays: holidays}
}

var hoursPerWorkingDay = decimal.NewFromInt(8)

// --- Implementation ---

// Overtime compares logged hours against the holiday-aware working-day
// expectation for the range: overtime = total - workingDays * 8.
func (s *reportService) Overtime(ctx context.Context, actorID, actorRole, forUserID, startStr, endStr string) (OvertimeReport, error) {
	target, err := resolveTarget(actorID, actorRole, forUserID)
	if err != nil {
		return OvertimeReport{}, err
	}
	start, end, err := parseDateRange(startStr, endStr)
	if err != nil {
		return OvertimeReport{}, err
	}

	holidaySet, err := s.holidays.SetForRange(ctx, start, end)
	if err != nil {
		return OvertimeReport{}, err
	}
	workingDays := workdays.CountWorkingDays(start, end, holidaySet)
	expected := hoursPerWorkingDay.Mul(decimal.NewFromInt(int64(workingDays)))

	summaries, err := s.summaryRepo.ListRange(ctx, target, start, end, "")
	if err != nil {
		return OvertimeReport{}, fmt.Errorf("failed to fetch hour summary: %w", err)
	}
	total := decimal.Zero
	for _, row := range summaries {
		total = total.Add(row.TotalHours)
	}

	return OvertimeReport{
		UserID:        target.String(),
		StartDate:     start.Format(workdays.DateLayout),
		EndDate:       end.Format(workdays.DateLayout),
		WorkingDays:   workingDays,
		ExpectedHours: expected,
		TotalHours:    total,
		Overtime:      total.Sub(expected),
	}, nil
}

func (s *reportService) TotalsByType(ctx context.Context, actorID, actorRole, forUserID, startStr, endStr string) ([]repository.TypeTotal, error) {
	target, err := resolveTarget(actorID, actorRole, forUserID)
	if err != nil {
		return nil, err
	}
	start, end, err := parseDateRange(startStr, endStr)
	if err != nil {
		return nil, err
	}
	return s.summaryRepo.TotalsByType(ctx, target, start, end)
}

// resolveTarget lets admins report on any user; everyone else on themselves.
func resolveTarget(actorID, actorRole, forUserID string) (uuid.UUID, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id: %w", err)
	}
	if forUserID == "" || forUserID == actorID {
		return actor, nil
	}
	if actorRole != model.RoleAdmin {
		return uuid.Nil, errors.New("cannot view another user's report")
	}
	target, err := uuid.Parse(forUserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id: %w", err)
	}
	return target, nil
}
