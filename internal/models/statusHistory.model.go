package models

import (
	"github.com/google/uuid"
)

type HistoryEntityType string

const (
	HistoryEntityRental HistoryEntityType = "rental"
	HistoryEntityUnit   HistoryEntityType = "unit"
)

const (
	StatusChangedByReconciliation = "reconciliation"
	StatusChangedByManual         = "manual"
)

// StatusHistory is the audit record written for every status change, one row
// per transition. Written fire-and-forget; failures never block the change.
type StatusHistory struct {
	BaseUUIDModel
	EntityType HistoryEntityType `gorm:"type:text;not null;index:idx_status_histories_entity,priority:1" json:"entityType"`
	EntityID   uuid.UUID         `gorm:"type:uuid;not null;index:idx_status_histories_entity,priority:2" json:"entityId"`
	FromStatus string            `gorm:"type:text;not null" json:"fromStatus"`
	ToStatus   string            `gorm:"type:text;not null" json:"toStatus"`
	ChangedBy  string            `gorm:"type:text;not null;default:'reconciliation'" json:"changedBy"`
}
