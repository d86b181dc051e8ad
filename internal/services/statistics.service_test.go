package services

import (
	"context"
	"testing"

	"renthub/internal/database"
	"renthub/internal/logger"
	. "renthub/internal/models"
	"renthub/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_MonthlyRevenueSumsCurrentPriceOfActiveRentals(t *testing.T) {
	rentals := newFakeRentalRepo()
	units := newFakeUnitRepo()
	maintenance := &fakeMaintenanceRepo{}

	service := &StatisticsService{
		db: database.DB{},
		repos: repositories.Repository{
			Rental:      rentals,
			Unit:        units,
			Maintenance: maintenance,
		},
		log: logger.New("StatisticsService"),
	}

	owner := uuid.New()
	other := uuid.New()

	units.add(&Unit{OwnerID: owner, Name: "1A", Status: UnitStatusReserved})
	units.add(&Unit{OwnerID: owner, Name: "1B", Status: UnitStatusAvailable})
	units.add(&Unit{OwnerID: other, Name: "9Z", Status: UnitStatusReserved})

	rentals.add(&Rental{
		UnitID:       uuid.New(),
		OwnerID:      owner,
		TenantID:     uuid.New(),
		Status:       RentalStatusActive,
		CurrentPrice: decimal.NewFromInt(1200),
		RentalAmount: decimal.NewFromInt(43200),
	})
	rentals.add(&Rental{
		UnitID:       uuid.New(),
		OwnerID:      owner,
		TenantID:     uuid.New(),
		Status:       RentalStatusActive,
		CurrentPrice: decimal.NewFromInt(950),
		RentalAmount: decimal.NewFromInt(11400),
	})
	// Not yet active: contributes nothing yet.
	rentals.add(&Rental{
		UnitID:       uuid.New(),
		OwnerID:      owner,
		TenantID:     uuid.New(),
		Status:       RentalStatusScheduled,
		CurrentPrice: decimal.NewFromInt(800),
	})
	// Another owner's rental.
	rentals.add(&Rental{
		UnitID:       uuid.New(),
		OwnerID:      other,
		TenantID:     uuid.New(),
		Status:       RentalStatusActive,
		CurrentPrice: decimal.NewFromInt(9999),
	})

	stats, err := service.compute(context.Background(), owner, false)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ActiveRentals)
	assert.Equal(t, int64(2), stats.TotalUnits)
	assert.Equal(t, int64(1), stats.UnitsByStatus[UnitStatusReserved])

	// Revenue is the current monthly rate, not the whole-contract total.
	assert.True(t, stats.MonthlyRevenue.Equal(decimal.NewFromInt(2150)),
		"expected 1200+950, got %s", stats.MonthlyRevenue)
}
