package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification event types
const (
	NotificationRequestApproved  = "REQUEST_APPROVED"
	NotificationRequestRejected  = "REQUEST_REJECTED"
	NotificationRequestCancelled = "REQUEST_CANCELLED"
	NotificationRequestSubmitted = "REQUEST_SUBMITTED"
)

// Notification is an inbox row for a request lifecycle event.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string     `gorm:"type:varchar(30);not null" json:"type"`
	Title     string     `gorm:"type:varchar(255);not null" json:"title"`
	Body      string     `gorm:"type:text" json:"body,omitempty"`
	RequestID *uuid.UUID `gorm:"type:uuid;index" json:"request_id,omitempty"`
	Read      bool       `gorm:"not null;default:false;index" json:"read"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
