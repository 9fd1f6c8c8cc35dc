package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HourType enum constants
const (
	HourTypeWork         = "WORK"
	HourTypeVacation     = "VACATION"
	HourTypeSickLeave    = "SICK_LEAVE"
	HourTypeWorkFromHome = "WORK_FROM_HOME"
	HourTypeOther        = "OTHER"
)

// EntrySource enum constants. REQUEST_APPROVAL rows are written as a side effect
// of approving a request and carry SourceRequestID for exact reversal.
const (
	SourceManual          = "MANUAL"
	SourceRequestApproval = "REQUEST_APPROVAL"
)

// HourEntry is a recorded number of hours of a given type for one user and day.
// At most one MANUAL row exists per (user, date, type); writes go through an upsert.
type HourEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_hour_entries_user_date" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Date        time.Time       `gorm:"type:date;not null;index:idx_hour_entries_user_date" json:"date"`
	Hours       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"hours"`
	Type        string          `gorm:"type:varchar(20);not null;index" json:"type"`
	Description string          `gorm:"type:text" json:"description,omitempty"`

	Source          string     `gorm:"type:varchar(20);not null;default:'MANUAL';index" json:"source"`
	SourceRequestID *uuid.UUID `gorm:"type:uuid;index" json:"source_request_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *HourEntry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ValidHourType reports whether t is one of the hour type constants.
func ValidHourType(t string) bool {
	switch t {
	case HourTypeWork, HourTypeVacation, HourTypeSickLeave, HourTypeWorkFromHome, HourTypeOther:
		return true
	}
	return false
}
