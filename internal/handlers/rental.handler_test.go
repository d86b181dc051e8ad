package handlers

import (
	"testing"
	"time"

	"renthub/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyRentalPatch_DateEdit(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newEnd := start.AddDate(2, 0, 0)

	rental := &models.Rental{
		StartDate:    start,
		StartPrice:   decimal.NewFromInt(100),
		RentalAmount: decimal.NewFromInt(330),
	}

	changed := applyRentalPatch(rental, updateRentalRequest{EndDate: &newEnd})

	assert.True(t, changed)
	assert.Equal(t, newEnd, *rental.EndDate)
	// A pure date edit keeps the agreed contract total.
	assert.True(t, rental.RentalAmount.Equal(decimal.NewFromInt(330)))
}

func TestApplyRentalPatch_PricingEditZeroesAmount(t *testing.T) {
	rental := &models.Rental{
		StartDate:    time.Now(),
		StartPrice:   decimal.NewFromInt(100),
		RentalAmount: decimal.NewFromInt(330),
	}

	newPrice := decimal.NewFromInt(150)
	changed := applyRentalPatch(rental, updateRentalRequest{StartPrice: &newPrice})

	assert.True(t, changed)
	assert.True(t, rental.StartPrice.Equal(newPrice))
	assert.True(t, rental.RentalAmount.IsZero(),
		"repricing must clear the amount so the lifecycle service recomputes it")
}

func TestApplyRentalPatch_EmptyRequest(t *testing.T) {
	rental := &models.Rental{StartDate: time.Now()}
	assert.False(t, applyRentalPatch(rental, updateRentalRequest{}))
}

func TestApplyUnitPatch(t *testing.T) {
	unit := &models.Unit{Name: "12A", Address: "Old Street 1", Status: models.UnitStatusReserved}

	name := "12B"
	bedrooms := 3
	changed := applyUnitPatch(unit, updateUnitRequest{Name: &name, Bedrooms: &bedrooms})

	assert.True(t, changed)
	assert.Equal(t, "12B", unit.Name)
	assert.Equal(t, 3, unit.Bedrooms)
	assert.Equal(t, models.UnitStatusReserved, unit.Status, "patch must never touch resolver-owned status")
}

func TestApplyUnitPatch_RejectsEmpty(t *testing.T) {
	unit := &models.Unit{Name: "12A"}

	empty := ""
	assert.False(t, applyUnitPatch(unit, updateUnitRequest{Name: &empty}))
	assert.Equal(t, "12A", unit.Name)
}
