package services

import (
	"time"

	. "renthub/internal/models"
)

// DerivedRentalFields holds the values computed from a rental's stored
// fields and the current time. They are applied to every rental read, so a
// caller always sees the derivation even when the stored row has gone stale
// between sweeps.
type DerivedRentalFields struct {
	EndDate        *time.Time   `json:"endDate,omitempty"`
	Status         RentalStatus `json:"rentalStatus"`
	RestMonthsLeft int          `json:"restMonthsLeft"`
}

// DeriveRentalFields computes endDate, rentalStatus and restMonthsLeft for a
// rental at the given instant. Pure: nothing is persisted.
//
// For monthly contracts the derived status is purely time-based (terminated
// past the calculated end, active otherwise) and overrides whatever the
// state machine last wrote. Non-monthly contracts keep their stored status.
func DeriveRentalFields(rental *Rental, now time.Time) DerivedRentalFields {
	derived := DerivedRentalFields{
		EndDate: rental.EndDate,
		Status:  rental.Status,
	}

	monthlyEnd := rental.MonthlyEndDate()
	if monthlyEnd != nil {
		derived.EndDate = monthlyEnd
	}

	if rental.IsMonthly {
		if derived.EndDate != nil && derived.EndDate.Before(now) {
			derived.Status = RentalStatusTerminated
		} else {
			derived.Status = RentalStatusActive
		}
	}

	derived.RestMonthsLeft = restMonthsLeft(rental, now)

	return derived
}

// ApplyDerivedFields overwrites the in-memory rental with its derived values
// for response serialization. The stored row is untouched.
func ApplyDerivedFields(rental *Rental, now time.Time) {
	derived := DeriveRentalFields(rental, now)
	rental.EndDate = derived.EndDate
	rental.Status = derived.Status
	rental.RestMonthsLeft = derived.RestMonthsLeft
}

func restMonthsLeft(rental *Rental, now time.Time) int {
	if !rental.IsMonthly || rental.StartDate.IsZero() || rental.MonthsCount <= 0 {
		return 0
	}

	if now.Before(rental.StartDate) {
		return rental.MonthsCount
	}

	rest := rental.MonthsCount - elapsedWholeMonths(rental.StartDate, now)
	if rest < 0 {
		return 0
	}
	return rest
}

// elapsedWholeMonths counts calendar-month boundaries crossed between start
// and now. Day-of-month is ignored: a contract started on the 31st already
// counts one elapsed month on the 1st of the next month.
func elapsedWholeMonths(start, now time.Time) int {
	return (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
}
