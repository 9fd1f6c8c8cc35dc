package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionSubmitRequest         = "SUBMIT_REQUEST"
	ActionUpdateRequest         = "UPDATE_REQUEST"
	ActionCancelRequest         = "CANCEL_REQUEST"
	ActionApproveRequest        = "APPROVE_REQUEST"
	ActionRejectRequest         = "REJECT_REQUEST"
	ActionCancelApprovedRequest = "CANCEL_APPROVED_REQUEST"

	ActionCreateHourEntry  = "CREATE_HOUR_ENTRY"
	ActionUpdateHourEntry  = "UPDATE_HOUR_ENTRY"
	ActionDeleteHourEntry  = "DELETE_HOUR_ENTRY"
	ActionBulkHourEntries  = "BULK_CREATE_HOUR_ENTRIES"
	ActionBatchHourEntries = "BATCH_UPDATE_HOUR_ENTRIES"

	ActionUpsertShift   = "UPSERT_SHIFT"
	ActionDeleteShift   = "DELETE_SHIFT"
	ActionCreateHoliday = "CREATE_HOLIDAY"
	ActionUpdateHoliday = "UPDATE_HOLIDAY"
	ActionDeleteHoliday = "DELETE_HOLIDAY"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated job
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:text" json:"details"`                       // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
