package repository

import (
	"context"
	"time"

	"timetrack-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HourEntryRepository interface {
	Create(ctx context.Context, entry *model.HourEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.HourEntry, error)
	// FindManualSlot returns the single MANUAL entry for (user, date, type), if any.
	FindManualSlot(ctx context.Context, userID uuid.UUID, date time.Time, hourType string) (*model.HourEntry, error)
	ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time, hourType string) ([]model.HourEntry, error)
	ListManualRange(ctx context.Context, userID uuid.UUID, start, end time.Time, hourType string) ([]model.HourEntry, error)
	Update(ctx context.Context, entry *model.HourEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySourceRequest(ctx context.Context, requestID uuid.UUID) error
}

type hourEntryRepository struct {
	db *gorm.DB
}

func NewHourEntryRepository(db *gorm.DB) HourEntryRepository {
	return &hourEntryRepository{db: db}
}

func (r *hourEntryRepository) Create(ctx context.Context, entry *model.HourEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *hourEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.HourEntry, error) {
	var entry model.HourEntry
	if err := GetDB(ctx, r.db).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *hourEntryRepository) FindManualSlot(ctx context.Context, userID uuid.UUID, date time.Time, hourType string) (*model.HourEntry, error) {
	var entry model.HourEntry
	err := GetDB(ctx, r.db).
		Where("user_id = ? AND date = ? AND type = ? AND source = ?",
			userID, date, hourType, model.SourceManual).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *hourEntryRepository) ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time, hourType string) ([]model.HourEntry, error) {
	return r.listRange(ctx, userID, start, end, hourType, "")
}

func (r *hourEntryRepository) ListManualRange(ctx context.Context, userID uuid.UUID, start, end time.Time, hourType string) ([]model.HourEntry, error) {
	return r.listRange(ctx, userID, start, end, hourType, model.SourceManual)
}

func (r *hourEntryRepository) listRange(ctx context.Context, userID uuid.UUID, start, end time.Time, hourType, source string) ([]model.HourEntry, error) {
	query := GetDB(ctx, r.db).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end)
	if hourType != "" {
		query = query.Where("type = ?", hourType)
	}
	if source != "" {
		query = query.Where("source = ?", source)
	}

	var entries []model.HourEntry
	if err := query.Order("date asc, type asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *hourEntryRepository) Update(ctx context.Context, entry *model.HourEntry) error {
	return GetDB(ctx, r.db).Save(entry).Error
}

func (r *hourEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.HourEntry{}, "id = ?", id).Error
}

func (r *hourEntryRepository) DeleteBySourceRequest(ctx context.Context, requestID uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.HourEntry{}, "source_request_id = ?", requestID).Error
}
