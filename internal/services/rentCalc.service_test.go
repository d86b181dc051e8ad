package services

import (
	"testing"

	. "renthub/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFixedIncrementTotal(t *testing.T) {
	tests := []struct {
		name        string
		startAmount string
		increase    string
		years       int
		expected    string
	}{
		{
			name:        "three years with flat increase",
			startAmount: "100",
			increase:    "10",
			years:       3,
			expected:    "330", // 100 + 110 + 120
		},
		{
			name:        "single year is just the start amount",
			startAmount: "100",
			increase:    "10",
			years:       1,
			expected:    "100",
		},
		{
			name:        "zero years yields zero",
			startAmount: "100",
			increase:    "10",
			years:       0,
			expected:    "0",
		},
		{
			name:        "fractional amounts are not rounded",
			startAmount: "99.999999",
			increase:    "0.000001",
			years:       2,
			expected:    "199.999999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := decimal.RequireFromString(tt.startAmount)
			increase := decimal.RequireFromString(tt.increase)
			expected := decimal.RequireFromString(tt.expected)

			total := FixedIncrementTotal(start, increase, tt.years)
			assert.True(t, expected.Equal(total), "expected %s, got %s", expected, total)
		})
	}
}

func TestPercentageCompoundTotal(t *testing.T) {
	tests := []struct {
		name        string
		startAmount string
		rate        string
		years       int
		expected    string
	}{
		{
			name:        "three years at ten percent",
			startAmount: "100",
			rate:        "0.10",
			years:       3,
			expected:    "331", // 100 + 110 + 121
		},
		{
			name:        "single year is just the start amount",
			startAmount: "100",
			rate:        "0.10",
			years:       1,
			expected:    "100",
		},
		{
			name:        "zero years yields zero",
			startAmount: "100",
			rate:        "0.10",
			years:       0,
			expected:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := decimal.RequireFromString(tt.startAmount)
			rate := decimal.RequireFromString(tt.rate)
			expected := decimal.RequireFromString(tt.expected)

			total := PercentageCompoundTotal(start, rate, tt.years)
			assert.True(t, expected.Equal(total), "expected %s, got %s", expected, total)
		})
	}
}

func TestPercentageCompoundTotal_RoundsFinalSum(t *testing.T) {
	// The sum is rounded to 5 places as a whole, not term by term.
	start := decimal.RequireFromString("100")
	rate := decimal.RequireFromString("0.123456789")

	total := PercentageCompoundTotal(start, rate, 2)
	// 100 + 112.3456789 = 212.3456789, rounded to 212.34568
	assert.Equal(t, "212.34568", total.String())
}

func TestComputeRentAmount(t *testing.T) {
	duration := 1
	increaseTen := decimal.NewFromInt(10)

	tests := []struct {
		name     string
		start    string
		increase *PeriodicIncrease
		years    int
		expected string
	}{
		{
			name:     "no increase rule returns start price",
			start:    "1500",
			increase: nil,
			years:    3,
			expected: "1500",
		},
		{
			name:  "percentage increase compounds yearly",
			start: "100",
			increase: &PeriodicIncrease{
				IncreaseValue:    increaseTen,
				PeriodicDuration: duration,
				IsPercentage:     true,
			},
			years:    3,
			expected: "331",
		},
		{
			name:  "fixed increase accumulates yearly",
			start: "100",
			increase: &PeriodicIncrease{
				IncreaseValue:    increaseTen,
				PeriodicDuration: duration,
				IsPercentage:     false,
			},
			years:    3,
			expected: "330",
		},
		{
			name:  "two year step applies the increase every other year",
			start: "100",
			increase: &PeriodicIncrease{
				IncreaseValue:    increaseTen,
				PeriodicDuration: 2,
				IsPercentage:     false,
			},
			years: 4,
			// years 0,1 at 100; years 2,3 at 110
			expected: "420",
		},
		{
			name:  "zero duration is treated as yearly",
			start: "100",
			increase: &PeriodicIncrease{
				IncreaseValue:    increaseTen,
				PeriodicDuration: 0,
				IsPercentage:     false,
			},
			years:    3,
			expected: "330",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := decimal.RequireFromString(tt.start)
			expected := decimal.RequireFromString(tt.expected)

			total := ComputeRentAmount(start, tt.increase, tt.years)
			assert.True(t, expected.Equal(total), "expected %s, got %s", expected, total)
		})
	}
}
