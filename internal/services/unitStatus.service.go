package services

import (
	"context"
	"fmt"
	"time"

	"renthub/internal/database"
	"renthub/internal/events"
	"renthub/internal/logger"
	. "renthub/internal/models"
	"renthub/internal/repositories"

	"github.com/google/uuid"
)

// UnitStatusService keeps a unit's status consistent with its current
// maintenance and rental records.
type UnitStatusService struct {
	db            database.DB
	repos         repositories.Repository
	notifications *NotificationService
	deferred      *DeferredTaskService
	eventBus      *events.EventBus
	log           logger.Logger
}

func NewUnitStatusService(
	db database.DB,
	repos repositories.Repository,
	notifications *NotificationService,
	deferred *DeferredTaskService,
	eventBus *events.EventBus,
) *UnitStatusService {
	return &UnitStatusService{
		db:            db,
		repos:         repos,
		notifications: notifications,
		deferred:      deferred,
		eventBus:      eventBus,
		log:           logger.New("UnitStatusService"),
	}
}

// ResolveUnitStatus decides a unit's status from its related records.
// Priority order, first match wins:
//  1. a blocking maintenance request forces under_maintenance
//  2. an active or in-window confirmed/checked_in rental means reserved
//  3. a future scheduled/confirmed rental means reserved
//  4. otherwise available
func ResolveUnitStatus(
	maintenance []*MaintenanceRequest,
	rentals []*Rental,
	now time.Time,
) UnitStatus {
	for _, request := range maintenance {
		if request.BlocksUnit() {
			return UnitStatusUnderMaintenance
		}
	}

	for _, rental := range rentals {
		if rental.Status == RentalStatusActive {
			return UnitStatusReserved
		}

		if rental.Status == RentalStatusConfirmed || rental.Status == RentalStatusCheckedIn {
			end := rental.EffectiveEndDate()
			if end != nil && !now.Before(rental.StartDate) && !now.After(*end) {
				return UnitStatusReserved
			}
		}
	}

	for _, rental := range rentals {
		if rental.StartDate.After(now) &&
			(rental.Status == RentalStatusScheduled || rental.Status == RentalStatusConfirmed) {
			return UnitStatusReserved
		}
	}

	return UnitStatusAvailable
}

// RecomputeUnitStatus re-resolves and persists one unit's status.
// Returns the resolved status and whether a write happened. Becoming
// available additionally notifies the owner, off the write path.
func (s *UnitStatusService) RecomputeUnitStatus(
	ctx context.Context,
	unitID uuid.UUID,
) (UnitStatus, bool, error) {
	log := s.log.Function("RecomputeUnitStatus")

	unit, err := s.repos.Unit.GetByID(ctx, s.db.SQL, unitID)
	if err != nil {
		return "", false, err
	}

	maintenance, err := s.repos.Maintenance.GetBlockingByUnit(ctx, s.db.SQL, unitID)
	if err != nil {
		return unit.Status, false, err
	}

	rentals, err := s.repos.Rental.GetByUnit(ctx, s.db.SQL, unitID)
	if err != nil {
		return unit.Status, false, err
	}

	now := time.Now()
	resolved := ResolveUnitStatus(maintenance, rentals, now)

	if resolved == unit.Status {
		return resolved, false, nil
	}

	previous := unit.Status
	if err := s.repos.Unit.UpdateStatus(ctx, s.db.SQL, unitID, resolved); err != nil {
		return previous, false, log.Err(
			"failed to persist unit status",
			err,
			"unitID", unitID,
			"from", previous,
			"to", resolved,
		)
	}

	log.Info("Unit status changed", "unitID", unitID, "from", previous, "to", resolved)

	s.dispatchStatusChange(unit, previous, resolved)

	return resolved, true, nil
}

func (s *UnitStatusService) dispatchStatusChange(
	unit *Unit,
	from UnitStatus,
	to UnitStatus,
) {
	unitID := unit.ID
	ownerID := unit.OwnerID
	unitName := unit.Name

	s.deferred.Go("unit-status-history", func(ctx context.Context) error {
		return s.repos.History.Create(ctx, s.db.SQL, &StatusHistory{
			EntityType: HistoryEntityUnit,
			EntityID:   unitID,
			FromStatus: string(from),
			ToStatus:   string(to),
			ChangedBy:  StatusChangedByReconciliation,
		})
	})

	if to == UnitStatusAvailable {
		s.deferred.Go("unit-available-notification", func(ctx context.Context) error {
			_, err := s.notifications.Notify(
				ctx,
				ownerID,
				NotificationTypeMessage,
				"Unit available",
				fmt.Sprintf("Your unit %q is available again.", unitName),
				NotifyOriginSystem,
			)
			return err
		})
	}

	if s.eventBus != nil {
		if err := s.eventBus.PublishStatusChange(events.UNIT_STATUS_CHANGED, unitID, string(from), string(to)); err != nil {
			s.log.Function("dispatchStatusChange").
				Er("failed to publish unit status event", err, "unitID", unitID)
		}
	}
}
