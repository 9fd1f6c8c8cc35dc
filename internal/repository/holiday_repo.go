package repository

import (
	"context"
	"time"

	"timetrack-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HolidayRepository interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Holiday, error)
	FindByDate(ctx context.Context, date time.Time) (*model.Holiday, error)
	List(ctx context.Context) ([]model.Holiday, error)
	// ListForRange returns holidays relevant to [start, end]: concrete ones
	// inside the range plus every recurring holiday regardless of its stored
	// year (recurrence expansion happens in the service).
	ListForRange(ctx context.Context, start, end time.Time) ([]model.Holiday, error)
	Update(ctx context.Context, holiday *model.Holiday) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type holidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) Create(ctx context.Context, holiday *model.Holiday) error {
	return GetDB(ctx, r.db).Create(holiday).Error
}

func (r *holidayRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Holiday, error) {
	var holiday model.Holiday
	if err := GetDB(ctx, r.db).First(&holiday, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *holidayRepository) FindByDate(ctx context.Context, date time.Time) (*model.Holiday, error) {
	var holiday model.Holiday
	if err := GetDB(ctx, r.db).First(&holiday, "date = ?", date).Error; err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *holidayRepository) List(ctx context.Context) ([]model.Holiday, error) {
	var holidays []model.Holiday
	if err := GetDB(ctx, r.db).Order("date asc").Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *holidayRepository) ListForRange(ctx context.Context, start, end time.Time) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := GetDB(ctx, r.db).
		Where("(date >= ? AND date <= ?) OR is_recurring = ?", start, end, true).
		Order("date asc").
		Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *holidayRepository) Update(ctx context.Context, holiday *model.Holiday) error {
	return GetDB(ctx, r.db).Save(holiday).Error
}

func (r *holidayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Holiday{}, "id = ?", id).Error
}
