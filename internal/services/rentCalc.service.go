package services

import (
	. "renthub/internal/models"

	"github.com/shopspring/decimal"
)

// Rent totals are derived once, at contract creation, and must reproduce the
// amounts already stored for existing contracts. The two total functions
// round differently: the compound total rounds the final sum to 5 decimal
// places, the fixed-increment total applies no rounding at all. Existing
// contract rows were produced with exactly these semantics, so both are kept
// as-is.

const rentTotalPrecision = 5

// PercentageCompoundTotal sums startAmount * (1+rate)^y for y in [0, years).
// Per-year terms are not individually rounded; only the final sum is rounded
// to 5 decimal places.
func PercentageCompoundTotal(startAmount, rate decimal.Decimal, years int) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(rate)

	total := decimal.Zero
	term := startAmount
	for y := 0; y < years; y++ {
		total = total.Add(term)
		term = term.Mul(factor)
	}

	return total.Round(rentTotalPrecision)
}

// FixedIncrementTotal sums startAmount + increasePerYear*i for i in [0, years).
// No rounding is applied.
func FixedIncrementTotal(startAmount, increasePerYear decimal.Decimal, years int) decimal.Decimal {
	total := decimal.Zero
	for i := 0; i < years; i++ {
		step := increasePerYear.Mul(decimal.NewFromInt(int64(i)))
		total = total.Add(startAmount.Add(step))
	}

	return total
}

// ComputeRentAmount derives the total contract amount from the starting
// price and the optional periodic-increase rule. Without a rule the amount
// is simply the starting price. IncreaseValue is a percentage (10 means 10%)
// when IsPercentage is set, a currency increment otherwise; the increase
// steps once every PeriodicDuration years.
func ComputeRentAmount(startPrice decimal.Decimal, increase *PeriodicIncrease, years int) decimal.Decimal {
	if increase == nil {
		return startPrice
	}

	duration := increase.PeriodicDuration
	if duration <= 0 {
		duration = 1
	}

	if increase.IsPercentage {
		rate := increase.IncreaseValue.Div(decimal.NewFromInt(100))
		if duration == 1 {
			return PercentageCompoundTotal(startPrice, rate, years)
		}
		return steppedCompoundTotal(startPrice, rate, years, duration)
	}

	if duration == 1 {
		return FixedIncrementTotal(startPrice, increase.IncreaseValue, years)
	}
	return steppedIncrementTotal(startPrice, increase.IncreaseValue, years, duration)
}

func steppedCompoundTotal(startAmount, rate decimal.Decimal, years, duration int) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(rate)

	total := decimal.Zero
	for y := 0; y < years; y++ {
		steps := int64(y / duration)
		total = total.Add(startAmount.Mul(factor.Pow(decimal.NewFromInt(steps))))
	}

	return total.Round(rentTotalPrecision)
}

func steppedIncrementTotal(startAmount, increase decimal.Decimal, years, duration int) decimal.Decimal {
	total := decimal.Zero
	for y := 0; y < years; y++ {
		steps := int64(y / duration)
		total = total.Add(startAmount.Add(increase.Mul(decimal.NewFromInt(steps))))
	}

	return total
}
