package repository

import (
	"context"
	"time"

	"timetrack-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Shift, error)
	FindByUserDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.Shift, error)
	ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.Shift, error)
	Update(ctx context.Context, shift *model.Shift) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySourceRequest(ctx context.Context, requestID uuid.UUID) error
}

type shiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, shift *model.Shift) error {
	return GetDB(ctx, r.db).Create(shift).Error
}

func (r *shiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	var shift model.Shift
	if err := GetDB(ctx, r.db).First(&shift, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) FindByUserDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.Shift, error) {
	var shift model.Shift
	err := GetDB(ctx, r.db).
		Where("user_id = ? AND date = ?", userID, date).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.Shift, error) {
	query := GetDB(ctx, r.db).Where("date >= ? AND date <= ?", start, end)
	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	var shifts []model.Shift
	if err := query.Order("date asc").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftRepository) Update(ctx context.Context, shift *model.Shift) error {
	return GetDB(ctx, r.db).Save(shift).Error
}

func (r *shiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Shift{}, "id = ?", id).Error
}

func (r *shiftRepository) DeleteBySourceRequest(ctx context.Context, requestID uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Shift{}, "source_request_id = ?", requestID).Error
}
