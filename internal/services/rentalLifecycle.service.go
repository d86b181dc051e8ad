package services

import (
	"context"
	"time"

	"renthub/internal/database"
	"renthub/internal/events"
	"renthub/internal/logger"
	. "renthub/internal/models"
	"renthub/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RentalLifecycleService owns automatic rental status transitions.
// Transitions are decided by NextStatus and persisted here; history,
// timeline alerts and event publication happen off the write path.
type RentalLifecycleService struct {
	db            database.DB
	repos         repositories.Repository
	transaction   *TransactionService
	notifications *NotificationService
	deferred      *DeferredTaskService
	eventBus      *events.EventBus
	log           logger.Logger
}

func NewRentalLifecycleService(
	db database.DB,
	repos repositories.Repository,
	transaction *TransactionService,
	notifications *NotificationService,
	deferred *DeferredTaskService,
	eventBus *events.EventBus,
) *RentalLifecycleService {
	return &RentalLifecycleService{
		db:            db,
		repos:         repos,
		transaction:   transaction,
		notifications: notifications,
		deferred:      deferred,
		eventBus:      eventBus,
		log:           logger.New("RentalLifecycleService"),
	}
}

// NextStatus decides the status a rental should hold at the given
// instant. Sticky statuses (cancelled, terminated, on_hold) are manual
// states and are never moved automatically.
func NextStatus(rental *Rental, now time.Time) RentalStatus {
	current := rental.Status

	if current.IsSticky() {
		return current
	}

	// A monthly contract whose computed end has passed is completed
	// regardless of the date-window rules below.
	if rental.IsMonthly {
		if end := rental.MonthlyEndDate(); end != nil && end.Before(now) {
			return RentalStatusCompleted
		}
	}

	if now.Before(rental.StartDate) {
		if current == RentalStatusConfirmed {
			return RentalStatusConfirmed
		}
		return RentalStatusScheduled
	}

	if rental.EndDate != nil && now.After(*rental.EndDate) {
		return RentalStatusCompleted
	}

	switch current {
	case RentalStatusScheduled, RentalStatusConfirmed:
		return RentalStatusCheckedIn
	case RentalStatusCheckedIn:
		return RentalStatusActive
	case RentalStatusPending:
		return RentalStatusConfirmed
	default:
		return RentalStatusActive
	}
}

// RecomputeRentalStatus re-evaluates one rental's status against the
// clock and persists the result when it changed. Returns the effective
// status and whether a write happened. A no-change recompute performs
// no write and no side effects.
func (s *RentalLifecycleService) RecomputeRentalStatus(
	ctx context.Context,
	rentalID uuid.UUID,
) (RentalStatus, bool, error) {
	log := s.log.Function("RecomputeRentalStatus")

	rental, err := s.repos.Rental.GetByID(ctx, s.db.SQL, rentalID)
	if err != nil {
		return "", false, err
	}

	now := time.Now()
	next := NextStatus(rental, now)

	if next == rental.Status {
		return next, false, nil
	}

	previous := rental.Status
	if err := s.repos.Rental.UpdateStatus(ctx, s.db.SQL, rentalID, next); err != nil {
		return previous, false, log.Err(
			"failed to persist rental status",
			err,
			"rentalID", rentalID,
			"from", previous,
			"to", next,
		)
	}

	log.Info("Rental status changed", "rentalID", rentalID, "from", previous, "to", next)

	rental.Status = next
	s.dispatchStatusChange(rental, previous, next, now)

	return next, true, nil
}

// dispatchStatusChange hands history, alerts and event publication to
// the deferred queue so the caller's latency is unaffected.
func (s *RentalLifecycleService) dispatchStatusChange(
	rental *Rental,
	from RentalStatus,
	to RentalStatus,
	now time.Time,
) {
	rentalID := rental.ID

	s.deferred.Go("rental-status-history", func(ctx context.Context) error {
		return s.repos.History.Create(ctx, s.db.SQL, &StatusHistory{
			EntityType: HistoryEntityRental,
			EntityID:   rentalID,
			FromStatus: string(from),
			ToStatus:   string(to),
			ChangedBy:  StatusChangedByReconciliation,
		})
	})

	timelineCopy := *rental
	s.deferred.Go("rental-timeline-check", func(ctx context.Context) error {
		s.notifications.CheckRentalTimeline(ctx, &timelineCopy, to, now)
		return nil
	})

	if s.eventBus != nil {
		if err := s.eventBus.PublishStatusChange(events.RENTAL_STATUS_CHANGED, rentalID, string(from), string(to)); err != nil {
			s.log.Function("dispatchStatusChange").
				Er("failed to publish rental status event", err, "rentalID", rentalID)
		}
	}
}

// GetRental reads one rental and overlays its derived fields for
// display. The stored row is not modified.
func (s *RentalLifecycleService) GetRental(
	ctx context.Context,
	rentalID uuid.UUID,
) (*Rental, error) {
	rental, err := s.repos.Rental.GetByID(ctx, s.db.SQL, rentalID)
	if err != nil {
		return nil, err
	}

	ApplyDerivedFields(rental, time.Now())
	return rental, nil
}

// GetRentalsByOwner lists an owner's rentals with derived fields applied.
func (s *RentalLifecycleService) GetRentalsByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*Rental, error) {
	rentals, err := s.repos.Rental.GetByOwner(ctx, s.db.SQL, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, rental := range rentals {
		ApplyDerivedFields(rental, now)
	}

	return rentals, nil
}

// CreateRental populates pricing at creation time and persists the
// rental. RentalAmount is only computed when the caller left it unset.
func (s *RentalLifecycleService) CreateRental(ctx context.Context, rental *Rental) error {
	log := s.log.Function("CreateRental")

	if rental.RentalAmount.IsZero() {
		rental.RentalAmount = ComputeRentAmount(
			rental.StartPrice,
			rental.PeriodicIncrease(),
			rental.TermYears(),
		)
	}

	if err := s.repos.Rental.Create(ctx, s.db.SQL, rental); err != nil {
		return err
	}

	log.Info("Rental created",
		"rentalID", rental.ID,
		"unitID", rental.UnitID,
		"rentalAmount", rental.RentalAmount,
	)

	return nil
}

// UpdateRental persists edited contract terms. Callers that change
// pricing inputs zero RentalAmount so it is recomputed here under the
// same rule as creation.
func (s *RentalLifecycleService) UpdateRental(ctx context.Context, rental *Rental) error {
	log := s.log.Function("UpdateRental")

	if rental.RentalAmount.IsZero() {
		rental.RentalAmount = ComputeRentAmount(
			rental.StartPrice,
			rental.PeriodicIncrease(),
			rental.TermYears(),
		)
	}

	if err := s.repos.Rental.Update(ctx, s.db.SQL, rental); err != nil {
		return err
	}

	log.Info("Rental updated", "rentalID", rental.ID, "unitID", rental.UnitID)
	return nil
}

// OverrideStatus is the manual status edit path. The status write and
// its history record commit or roll back together. Sticky statuses are
// entered and exited only here, never by reconciliation.
func (s *RentalLifecycleService) OverrideStatus(
	ctx context.Context,
	rentalID uuid.UUID,
	to RentalStatus,
) (RentalStatus, error) {
	log := s.log.Function("OverrideStatus")

	rental, err := s.repos.Rental.GetByID(ctx, s.db.SQL, rentalID)
	if err != nil {
		return "", err
	}

	previous := rental.Status
	err = s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := s.repos.Rental.UpdateStatus(ctx, tx, rentalID, to); err != nil {
			return err
		}
		return s.repos.History.Create(ctx, tx, &StatusHistory{
			EntityType: HistoryEntityRental,
			EntityID:   rentalID,
			FromStatus: string(previous),
			ToStatus:   string(to),
			ChangedBy:  StatusChangedByManual,
		})
	})
	if err != nil {
		return previous, err
	}

	log.Info("Manual status change", "rentalID", rentalID, "from", previous, "to", to)
	return previous, nil
}
