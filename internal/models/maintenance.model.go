package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaintenanceStatus string

const (
	MaintenanceStatusOpen       MaintenanceStatus = "open"
	MaintenanceStatusInProgress MaintenanceStatus = "in-progress"
	MaintenanceStatusClosed     MaintenanceStatus = "closed"
)

type MaintenancePriority string

const (
	MaintenancePriorityLow    MaintenancePriority = "low"
	MaintenancePriorityMedium MaintenancePriority = "medium"
	MaintenancePriorityHigh   MaintenancePriority = "high"
	MaintenancePriorityUrgent MaintenancePriority = "urgent"
)

// MaintenanceRequest tracks repair work against a unit. Any non-closed
// request forces the unit into under_maintenance regardless of rental state.
type MaintenanceRequest struct {
	BaseUUIDModel
	UnitID       uuid.UUID           `gorm:"type:uuid;not null;index:idx_maintenance_requests_unit" json:"unitId" validate:"required"`
	ReportedByID uuid.UUID           `gorm:"type:uuid;not null"                                     json:"reportedById" validate:"required"`
	Title        string              `gorm:"type:text;not null"                                     json:"title" validate:"required"`
	Description  string              `gorm:"type:text"                                              json:"description"`
	Status       MaintenanceStatus   `gorm:"type:text;not null;default:'open';index:idx_maintenance_requests_status" json:"status"`
	Priority     MaintenancePriority `gorm:"type:text;not null;default:'medium'"                    json:"priority"`

	// Relationships
	Unit       *Unit `gorm:"foreignKey:UnitID"       json:"unit,omitempty"`
	ReportedBy *User `gorm:"foreignKey:ReportedByID" json:"reportedBy,omitempty"`
}

func (mr *MaintenanceRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if mr.UnitID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if mr.Title == "" {
		return gorm.ErrInvalidValue
	}
	if mr.Status == "" {
		mr.Status = MaintenanceStatusOpen
	}
	if mr.Priority == "" {
		mr.Priority = MaintenancePriorityMedium
	}
	return nil
}

// BlocksUnit reports whether this request forces its unit into
// under_maintenance. The legacy data set also carried a transitional
// "pending" status, so it stays in the blocking set even though new
// requests are never written with it.
func (mr *MaintenanceRequest) BlocksUnit() bool {
	switch mr.Status {
	case MaintenanceStatusOpen, MaintenanceStatusInProgress, "pending":
		return true
	}
	return false
}
