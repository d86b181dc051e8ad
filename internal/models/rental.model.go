package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RentalStatus string

const (
	RentalStatusPending    RentalStatus = "pending"
	RentalStatusScheduled  RentalStatus = "scheduled"
	RentalStatusConfirmed  RentalStatus = "confirmed"
	RentalStatusCheckedIn  RentalStatus = "checked_in"
	RentalStatusActive     RentalStatus = "active"
	RentalStatusCompleted  RentalStatus = "completed"
	RentalStatusCancelled  RentalStatus = "cancelled"
	RentalStatusTerminated RentalStatus = "terminated"
	RentalStatusInactive   RentalStatus = "inactive"
	RentalStatusOnHold     RentalStatus = "on_hold"
)

// IsSticky reports whether the status may only be changed manually.
// Reconciliation never overwrites a sticky status.
func (s RentalStatus) IsSticky() bool {
	return s == RentalStatusCancelled || s == RentalStatusTerminated || s == RentalStatusOnHold
}

// PeriodicIncrease describes how the rent grows over the contract duration,
// either compounding (percentage) or by a fixed increment, applied every
// PeriodicDuration years.
type PeriodicIncrease struct {
	IncreaseValue    decimal.Decimal `json:"increaseValue"`
	PeriodicDuration int             `json:"periodicDuration"`
	IsPercentage     bool            `json:"isPercentage"`
}

// Rental is a tenancy contract for a unit. A rental is either date-bounded
// (explicit EndDate) or monthly (IsMonthly with MonthsCount). Status is
// written by the lifecycle state machine during reconciliation, and by
// explicit manual edits; rentals are never deleted by the engine.
type Rental struct {
	BaseUUIDModel
	UnitID   uuid.UUID `gorm:"type:uuid;not null;index:idx_rentals_unit"   json:"unitId" validate:"required"`
	OwnerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_rentals_owner"  json:"ownerId" validate:"required"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index:idx_rentals_tenant" json:"tenantId" validate:"required"`

	StartDate   time.Time  `gorm:"type:timestamp;not null" json:"startDate" validate:"required"`
	EndDate     *time.Time `gorm:"type:timestamp"          json:"endDate,omitempty"`
	IsMonthly   bool       `gorm:"default:false"           json:"isMonthly"`
	MonthsCount int        `gorm:"type:int"                json:"monthsCount"`

	StartPrice   decimal.Decimal `gorm:"type:decimal(12,5);not null" json:"startPrice"`
	CurrentPrice decimal.Decimal `gorm:"type:decimal(12,5)"          json:"currentPrice"`
	RentalAmount decimal.Decimal `gorm:"type:decimal(14,5)"          json:"rentalAmount"`

	IncreaseValue    *decimal.Decimal `gorm:"type:decimal(12,5)" json:"increaseValue,omitempty"`
	PeriodicDuration *int             `gorm:"type:int"           json:"periodicDuration,omitempty"`
	IsPercentage     bool             `gorm:"default:false"      json:"isPercentage"`

	Status RentalStatus `gorm:"type:text;not null;default:'pending';index:idx_rentals_status" json:"rentalStatus"`

	// Derived on read for monthly contracts, never persisted.
	RestMonthsLeft int `gorm:"-" json:"restMonthsLeft"`

	// Relationships
	Unit   *Unit `gorm:"foreignKey:UnitID"   json:"unit,omitempty"`
	Owner  *User `gorm:"foreignKey:OwnerID"  json:"owner,omitempty"`
	Tenant *User `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
}

func (r *Rental) BeforeCreate(tx *gorm.DB) (err error) {
	if r.UnitID == uuid.Nil || r.OwnerID == uuid.Nil || r.TenantID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if r.StartDate.IsZero() {
		return gorm.ErrInvalidValue
	}
	if r.Status == "" {
		r.Status = RentalStatusPending
	}
	if r.CurrentPrice.IsZero() {
		r.CurrentPrice = r.StartPrice
	}
	return nil
}

// PeriodicIncrease assembles the optional increase rule from its columns,
// nil when the contract has no periodic increase.
func (r *Rental) PeriodicIncrease() *PeriodicIncrease {
	if r.IncreaseValue == nil {
		return nil
	}

	duration := 1
	if r.PeriodicDuration != nil && *r.PeriodicDuration > 0 {
		duration = *r.PeriodicDuration
	}

	return &PeriodicIncrease{
		IncreaseValue:    *r.IncreaseValue,
		PeriodicDuration: duration,
		IsPercentage:     r.IsPercentage,
	}
}

// MonthlyEndDate returns StartDate + MonthsCount months for monthly
// contracts, nil otherwise.
func (r *Rental) MonthlyEndDate() *time.Time {
	if !r.IsMonthly || r.StartDate.IsZero() || r.MonthsCount <= 0 {
		return nil
	}
	end := r.StartDate.AddDate(0, r.MonthsCount, 0)
	return &end
}

// EffectiveEndDate is the calculated monthly end date when present,
// otherwise the stored EndDate.
func (r *Rental) EffectiveEndDate() *time.Time {
	if end := r.MonthlyEndDate(); end != nil {
		return end
	}
	return r.EndDate
}

// TermYears is the contract duration in whole years, rounded up, floor 1.
// Used as the compounding horizon when rent is derived at creation.
func (r *Rental) TermYears() int {
	months := r.MonthsCount
	if !r.IsMonthly {
		if r.EndDate == nil {
			return 1
		}
		months = (r.EndDate.Year()-r.StartDate.Year())*12 +
			int(r.EndDate.Month()) - int(r.StartDate.Month())
	}

	years := (months + 11) / 12
	if years < 1 {
		years = 1
	}
	return years
}
