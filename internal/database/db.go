package database

import (
	"timetrack-backend/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		logrus.WithError(err).Warn("Failed to auto-migrate models")
	}

	return db, nil
}

// Migrate creates or updates the schema for all core models, including the
// derived daily_hour_summaries table (rebuilt by SummaryRepository.Refresh).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Request{},
		&model.HourEntry{},
		&model.Shift{},
		&model.Holiday{},
		&model.DailyHourSummary{},
		&model.Notification{},
		&model.AuditLog{},
	)
}
