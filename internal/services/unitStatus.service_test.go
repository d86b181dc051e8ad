package services

import (
	"testing"
	"time"

	. "renthub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveUnitStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)
	farFuture := now.AddDate(1, 0, 0)

	tests := []struct {
		name        string
		maintenance []*MaintenanceRequest
		rentals     []*Rental
		expected    UnitStatus
	}{
		{
			name:     "no records means available",
			expected: UnitStatusAvailable,
		},
		{
			name: "open maintenance forces under_maintenance",
			maintenance: []*MaintenanceRequest{
				{Status: MaintenanceStatusOpen},
			},
			expected: UnitStatusUnderMaintenance,
		},
		{
			name: "maintenance beats an active rental",
			maintenance: []*MaintenanceRequest{
				{Status: MaintenanceStatusInProgress},
			},
			rentals: []*Rental{
				{Status: RentalStatusActive, StartDate: past},
			},
			expected: UnitStatusUnderMaintenance,
		},
		{
			name: "closed maintenance does not block",
			maintenance: []*MaintenanceRequest{
				{Status: MaintenanceStatusClosed},
			},
			expected: UnitStatusAvailable,
		},
		{
			name: "active rental reserves the unit",
			rentals: []*Rental{
				{Status: RentalStatusActive, StartDate: past},
			},
			expected: UnitStatusReserved,
		},
		{
			name: "confirmed rental inside its window reserves",
			rentals: []*Rental{
				{Status: RentalStatusConfirmed, StartDate: past, EndDate: &farFuture},
			},
			expected: UnitStatusReserved,
		},
		{
			name: "checked_in rental inside its window reserves",
			rentals: []*Rental{
				{Status: RentalStatusCheckedIn, StartDate: past, EndDate: &farFuture},
			},
			expected: UnitStatusReserved,
		},
		{
			name: "future scheduled rental reserves",
			rentals: []*Rental{
				{Status: RentalStatusScheduled, StartDate: future, EndDate: &farFuture},
			},
			expected: UnitStatusReserved,
		},
		{
			name: "future confirmed rental reserves",
			rentals: []*Rental{
				{Status: RentalStatusConfirmed, StartDate: future, EndDate: &farFuture},
			},
			expected: UnitStatusReserved,
		},
		{
			name: "future pending rental does not reserve",
			rentals: []*Rental{
				{Status: RentalStatusPending, StartDate: future, EndDate: &farFuture},
			},
			expected: UnitStatusAvailable,
		},
		{
			name: "completed and cancelled rentals free the unit",
			rentals: []*Rental{
				{Status: RentalStatusCompleted, StartDate: past},
				{Status: RentalStatusCancelled, StartDate: past},
			},
			expected: UnitStatusAvailable,
		},
		{
			name: "monthly rental inside its calculated window reserves",
			rentals: []*Rental{
				{
					Status:      RentalStatusCheckedIn,
					StartDate:   past,
					IsMonthly:   true,
					MonthsCount: 6,
				},
			},
			expected: UnitStatusReserved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveUnitStatus(tt.maintenance, tt.rentals, now))
		})
	}
}
