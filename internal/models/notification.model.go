package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeMessage NotificationType = "message"
	NotificationTypeAlert   NotificationType = "alert"
	NotificationTypeDanger  NotificationType = "danger"
)

// Notification is a user-facing message produced by the dispatcher. Rows are
// write-once: the engine only ever inserts (after the dedup check); the read
// flag is flipped by the notification read endpoint.
type Notification struct {
	BaseUUIDModel
	RecipientID uuid.UUID        `gorm:"type:uuid;not null;index:idx_notifications_recipient" json:"recipientId" validate:"required"`
	Type        NotificationType `gorm:"type:text;not null;default:'message'" json:"type"`
	Title       string           `gorm:"type:text;not null"                   json:"title" validate:"required"`
	Message     string           `gorm:"type:text;not null"                   json:"message"`
	Read        bool             `gorm:"default:false;index:idx_notifications_read" json:"read"`
	Metadata    datatypes.JSON   `gorm:"type:jsonb"                           json:"metadata,omitempty"`

	// Relationships
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.RecipientID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if n.Title == "" {
		return gorm.ErrInvalidValue
	}
	if n.Type == "" {
		n.Type = NotificationTypeMessage
	}
	return nil
}
