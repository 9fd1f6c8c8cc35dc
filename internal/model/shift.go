package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShiftLocation enum constants
const (
	ShiftLocationOffice    = "OFFICE"
	ShiftLocationHome      = "HOME"
	ShiftLocationVacation  = "VACATION"
	ShiftLocationSickLeave = "SICK_LEAVE"
	ShiftLocationOther     = "OTHER"
)

// Shift is the resolved work-location assignment for one user on one calendar day.
// Exactly one row exists per (user, date); manual edits and approval-generated
// writes share the cell, last write wins.
type Shift struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shifts_user_date" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Date     time.Time `gorm:"type:date;not null;uniqueIndex:idx_shifts_user_date" json:"date"`
	Location string    `gorm:"type:varchar(20);not null" json:"location"`
	Notes    string    `gorm:"type:text" json:"notes,omitempty"`

	Source          string     `gorm:"type:varchar(20);not null;default:'MANUAL'" json:"source"`
	SourceRequestID *uuid.UUID `gorm:"type:uuid;index" json:"source_request_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Shift) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ValidShiftLocation reports whether l is one of the shift location constants.
func ValidShiftLocation(l string) bool {
	switch l {
	case ShiftLocationOffice, ShiftLocationHome, ShiftLocationVacation, ShiftLocationSickLeave, ShiftLocationOther:
		return true
	}
	return false
}
