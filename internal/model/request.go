package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestType enum constants
const (
	RequestTypeVacation     = "VACATION"
	RequestTypeSickLeave    = "SICK_LEAVE"
	RequestTypeWorkFromHome = "WORK_FROM_HOME"
	RequestTypeOther        = "OTHER"
)

// RequestStatus enum constants
const (
	RequestStatusPending   = "PENDING"
	RequestStatusApproved  = "APPROVED"
	RequestStatusRejected  = "REJECTED"
	RequestStatusCancelled = "CANCELLED"
)

// Request represents a leave / work-location application subject to admin approval.
// Status moves one-way out of PENDING; the only transition out of a terminal state
// is APPROVED -> CANCELLED (admin late cancellation, which reverses side effects).
type Request struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Type      string    `gorm:"type:varchar(20);not null;index" json:"type"`
	Status    string    `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Reason    string    `gorm:"type:text" json:"reason,omitempty"`
	Location  string    `gorm:"type:varchar(100)" json:"location,omitempty"`

	ApprovedBy *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	Approver   *User      `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`

	RejectedBy      *uuid.UUID `gorm:"type:uuid" json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`

	CancelledBy        *uuid.UUID `gorm:"type:uuid" json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `gorm:"type:text" json:"cancellation_reason,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Request) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ValidRequestType reports whether t is one of the request type constants.
func ValidRequestType(t string) bool {
	switch t {
	case RequestTypeVacation, RequestTypeSickLeave, RequestTypeWorkFromHome, RequestTypeOther:
		return true
	}
	return false
}

// ShiftLocationForRequestType maps a request type to the shift location written on approval.
func ShiftLocationForRequestType(t string) string {
	switch t {
	case RequestTypeVacation:
		return ShiftLocationVacation
	case RequestTypeSickLeave:
		return ShiftLocationSickLeave
	case RequestTypeWorkFromHome:
		return ShiftLocationHome
	default:
		return ShiftLocationOther
	}
}
