package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnitStatus string

const (
	UnitStatusAvailable        UnitStatus = "available"
	UnitStatusReserved         UnitStatus = "reserved"
	UnitStatusUnderMaintenance UnitStatus = "under_maintenance"
)

// Unit is a physical rentable property. Status is derived state: it is only
// written by the unit status resolver or by an explicit administrative edit,
// and at rest must match what the resolver would compute from the unit's
// current rental and maintenance records.
type Unit struct {
	BaseUUIDModel
	OwnerID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_units_owner" json:"ownerId" validate:"required"`
	Name      string     `gorm:"type:text;not null"                       json:"name" validate:"required"`
	Address   string     `gorm:"type:text"                                json:"address"`
	Bedrooms  int        `gorm:"type:int"                                 json:"bedrooms"`
	Bathrooms int        `gorm:"type:int"                                 json:"bathrooms"`
	AreaSqM   float64    `gorm:"type:numeric"                             json:"areaSqM"`
	Status    UnitStatus `gorm:"type:text;not null;default:'available';index:idx_units_status" json:"status"`

	// Relationships
	Owner               *User                `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Rentals             []Rental             `gorm:"foreignKey:UnitID"  json:"rentals,omitempty"`
	MaintenanceRequests []MaintenanceRequest `gorm:"foreignKey:UnitID"  json:"maintenanceRequests,omitempty"`
}

func (u *Unit) BeforeCreate(tx *gorm.DB) (err error) {
	if u.OwnerID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if u.Name == "" {
		return gorm.ErrInvalidValue
	}
	if u.Status == "" {
		u.Status = UnitStatusAvailable
	}
	return nil
}
