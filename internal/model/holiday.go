package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Holiday is a calendar entry excluded from working-day counts. Recurring
// holidays repeat yearly on the same month/day; Date stores the first occurrence.
type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date        time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	IsRecurring bool      `gorm:"not null;default:false" json:"is_recurring"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (h *Holiday) BeforeCreate(_ *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
