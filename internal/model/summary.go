package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyHourSummary aggregates hour entries per (user, date, type). The table is
// maintained exclusively by SummaryRepository.Refresh; the application never
// writes rows directly and reads are stale until the next refresh.
type DailyHourSummary struct {
	UserID       uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	Date         time.Time       `gorm:"type:date;primaryKey" json:"date"`
	Type         string          `gorm:"type:varchar(20);primaryKey" json:"type"`
	ManualHours  decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"manual_hours"`
	TrackedHours decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"tracked_hours"`
	TotalHours   decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"total_hours"`
}

func (DailyHourSummary) TableName() string { return "daily_hour_summaries" }
