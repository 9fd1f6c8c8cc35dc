package repository

import (
	"context"
	"fmt"
	"time"

	"timetrack-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TypeTotal is one row of the per-type aggregate report.
type TypeTotal struct {
	Type       string `json:"type"`
	TotalHours string `json:"total_hours"`
	Days       int    `json:"days"`
}

// SummaryRepository owns the daily_hour_summaries table. The table is derived
// state: Refresh recomputes it wholesale from hour_entries, and every write
// path to hour entries is expected to call Refresh after commit. Reads between
// a write and the next refresh see the previous aggregate.
type SummaryRepository interface {
	Refresh(ctx context.Context) error
	ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time, hourType string) ([]model.DailyHourSummary, error)
	TotalsByType(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]TypeTotal, error)
}

type summaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) Refresh(ctx context.Context) error {
	db := GetDB(ctx, r.db)

	if err := db.Exec("DELETE FROM daily_hour_summaries").Error; err != nil {
		return fmt.Errorf("failed to clear hour summary: %w", err)
	}

	err := db.Exec(`
		INSERT INTO daily_hour_summaries (user_id, date, type, manual_hours, tracked_hours, total_hours)
		SELECT user_id, date, type,
			COALESCE(SUM(CASE WHEN source = ? THEN hours ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN source = ? THEN hours ELSE 0 END), 0),
			COALESCE(SUM(hours), 0)
		FROM hour_entries
		GROUP BY user_id, date, type
	`, model.SourceManual, model.SourceRequestApproval).Error
	if err != nil {
		return fmt.Errorf("failed to rebuild hour summary: %w", err)
	}
	return nil
}

func (r *summaryRepository) ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time, hourType string) ([]model.DailyHourSummary, error) {
	query := GetDB(ctx, r.db).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end)
	if hourType != "" {
		query = query.Where("type = ?", hourType)
	}

	var rows []model.DailyHourSummary
	if err := query.Order("date asc, type asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *summaryRepository) TotalsByType(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]TypeTotal, error) {
	var totals []TypeTotal
	err := GetDB(ctx, r.db).Table("daily_hour_summaries").
		Select("type, COALESCE(CAST(SUM(total_hours) AS TEXT), '0') as total_hours, COUNT(*) as days").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Group("type").
		Order("type asc").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate hour totals: %w", err)
	}
	return totals, nil
}
