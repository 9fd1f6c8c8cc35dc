package service_test

import (
	"testing"

	"timetrack-backend/internal/database"
	"timetrack-backend/internal/model"
	"timetrack-backend/internal/repository"
	"timetrack-backend/internal/service"
	ws "timetrack-backend/internal/websocket"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type testEnv struct {
	db *gorm.DB

	requests      service.RequestService
	hours         service.HourEntryService
	shifts        service.ShiftService
	holidays      service.HolidayService
	reports       service.ReportService
	users         service.UserService
	notifications service.NotificationService

	hourRepo         repository.HourEntryRepository
	shiftRepo        repository.ShiftRepository
	summaryRepo      repository.SummaryRepository
	notificationRepo repository.NotificationRepository
	auditRepo        repository.AuditRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	hourRepo := repository.NewHourEntryRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, ws.NewHub())
	holidayService := service.NewHolidayService(txManager, holidayRepo, auditRepo)

	return &testEnv{
		db:            db,
		requests:      service.NewRequestService(txManager, requestRepo, hourRepo, shiftRepo, summaryRepo, auditRepo, notificationService),
		hours:         service.NewHourEntryService(txManager, hourRepo, summaryRepo, auditRepo, holidayService),
		shifts:        service.NewShiftService(txManager, shiftRepo, auditRepo),
		holidays:      holidayService,
		reports:       service.NewReportService(summaryRepo, holidayService),
		users:         service.NewUserService(userRepo),
		notifications: notificationService,

		hourRepo:         hourRepo,
		shiftRepo:        shiftRepo,
		summaryRepo:      summaryRepo,
		notificationRepo: notificationRepo,
		auditRepo:        auditRepo,
	}
}

func hours(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func createTestUser(t *testing.T, db *gorm.DB, name, role string) *model.User {
	t.Helper()

	user := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
