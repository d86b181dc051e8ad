package services

import (
	"context"
	"sync"
	"time"

	"renthub/internal/database"
	"renthub/internal/events"
	"renthub/internal/logger"
	"renthub/internal/repositories"

	"github.com/google/uuid"
)

const (
	// writeCascadeDelay decouples the post-write recompute from the
	// triggering request so write latency is unaffected.
	writeCascadeDelay = 2 * time.Second

	// sweepConcurrency bounds the per-phase fan-out so a large sweep
	// cannot exhaust the database connection pool.
	sweepConcurrency = 8
)

// SweepResult reports how many entities a full sweep actually rewrote.
type SweepResult struct {
	RentalsChecked int           `json:"rentalsChecked"`
	RentalsUpdated int           `json:"rentalsUpdated"`
	RentalsFailed  int           `json:"rentalsFailed"`
	UnitsChecked   int           `json:"unitsChecked"`
	UnitsUpdated   int           `json:"unitsUpdated"`
	UnitsFailed    int           `json:"unitsFailed"`
	Duration       time.Duration `json:"duration"`
}

// ReconciliationService drives targeted recomputes after writes and the
// full two-phase sweep. All rental statuses settle before any unit is
// resolved so unit resolution never reads stale rental status.
type ReconciliationService struct {
	db         database.DB
	repos      repositories.Repository
	lifecycle  *RentalLifecycleService
	unitStatus *UnitStatusService
	statistics *StatisticsService
	deferred   *DeferredTaskService
	eventBus   *events.EventBus
	log        logger.Logger
	sweepMu    sync.Mutex
}

func NewReconciliationService(
	db database.DB,
	repos repositories.Repository,
	lifecycle *RentalLifecycleService,
	unitStatus *UnitStatusService,
	statistics *StatisticsService,
	deferred *DeferredTaskService,
	eventBus *events.EventBus,
) *ReconciliationService {
	return &ReconciliationService{
		db:         db,
		repos:      repos,
		lifecycle:  lifecycle,
		unitStatus: unitStatus,
		statistics: statistics,
		deferred:   deferred,
		eventBus:   eventBus,
		log:        logger.New("ReconciliationService"),
	}
}

// OnRentalWrite schedules a cascade recompute for a rental and its unit
// after a create or edit. Fire-and-forget: the triggering request does
// not wait, and cascade failures never reach it.
func (s *ReconciliationService) OnRentalWrite(rentalID, unitID uuid.UUID) {
	log := s.log.Function("OnRentalWrite")

	queued := s.deferred.Go("rental-write-cascade", func(ctx context.Context) error {
		select {
		case <-time.After(writeCascadeDelay):
		case <-ctx.Done():
			return ctx.Err()
		}

		if _, _, err := s.lifecycle.RecomputeRentalStatus(ctx, rentalID); err != nil {
			log.Er("cascade rental recompute failed", err, "rentalID", rentalID)
		}

		// The unit is re-resolved even when the rental status did not
		// change: date edits can move the unit without a status write.
		if _, _, err := s.unitStatus.RecomputeUnitStatus(ctx, unitID); err != nil {
			log.Er("cascade unit recompute failed", err, "unitID", unitID)
		}

		return nil
	})

	if !queued {
		log.Warn("rental write cascade dropped", "rentalID", rentalID, "unitID", unitID)
	}
}

// OnMaintenanceWrite recomputes the owning unit synchronously, since
// maintenance is the highest-priority resolver input, then refreshes
// the owner's aggregate statistics off the request path.
func (s *ReconciliationService) OnMaintenanceWrite(
	ctx context.Context,
	unitID uuid.UUID,
	ownerID uuid.UUID,
) error {
	if _, _, err := s.unitStatus.RecomputeUnitStatus(ctx, unitID); err != nil {
		return err
	}

	s.deferred.Go("owner-statistics-refresh", func(ctx context.Context) error {
		return s.statistics.Refresh(ctx, ownerID)
	})

	return nil
}

// RunFullSweep recomputes every non-terminal rental, then every unit.
// Per-entity failures are logged and skipped. Idempotent: a second
// sweep over unchanged data produces zero writes. Concurrent callers
// are serialized so two sweeps never interleave phases.
func (s *ReconciliationService) RunFullSweep(ctx context.Context) (SweepResult, error) {
	s.sweepMu.Lock()
	defer s.sweepMu.Unlock()

	log := s.log.Function("RunFullSweep")
	defer log.Timer("full reconciliation sweep")()

	start := time.Now()
	var result SweepResult

	rentals, err := s.repos.Rental.GetReconcilable(ctx, s.db.SQL)
	if err != nil {
		return result, err
	}
	result.RentalsChecked = len(rentals)

	rentalIDs := make([]uuid.UUID, 0, len(rentals))
	for _, rental := range rentals {
		rentalIDs = append(rentalIDs, rental.ID)
	}

	result.RentalsUpdated, result.RentalsFailed = s.fanOut(ctx, rentalIDs, func(ctx context.Context, id uuid.UUID) (bool, error) {
		_, changed, err := s.lifecycle.RecomputeRentalStatus(ctx, id)
		return changed, err
	})

	// Phase two only starts once every rental in phase one settled.
	units, err := s.repos.Unit.GetAll(ctx, s.db.SQL)
	if err != nil {
		result.Duration = time.Since(start)
		return result, err
	}
	result.UnitsChecked = len(units)

	unitIDs := make([]uuid.UUID, 0, len(units))
	for _, unit := range units {
		unitIDs = append(unitIDs, unit.ID)
	}

	result.UnitsUpdated, result.UnitsFailed = s.fanOut(ctx, unitIDs, func(ctx context.Context, id uuid.UUID) (bool, error) {
		_, changed, err := s.unitStatus.RecomputeUnitStatus(ctx, id)
		return changed, err
	})

	result.Duration = time.Since(start)

	log.Info("Sweep completed",
		"rentalsChecked", result.RentalsChecked,
		"rentalsUpdated", result.RentalsUpdated,
		"rentalsFailed", result.RentalsFailed,
		"unitsChecked", result.UnitsChecked,
		"unitsUpdated", result.UnitsUpdated,
		"unitsFailed", result.UnitsFailed,
		"duration", result.Duration,
	)

	if s.eventBus != nil {
		if err := s.eventBus.Publish(events.RECONCILIATION_CHANNEL, events.Event{
			Type: events.SWEEP_COMPLETED,
			Data: map[string]any{
				"rentalsUpdated": result.RentalsUpdated,
				"unitsUpdated":   result.UnitsUpdated,
			},
		}); err != nil {
			log.Er("failed to publish sweep event", err)
		}
	}

	return result, nil
}

// fanOut runs one recompute per ID with bounded concurrency. A failed
// entity is counted and logged but never aborts its siblings.
func (s *ReconciliationService) fanOut(
	ctx context.Context,
	ids []uuid.UUID,
	recompute func(ctx context.Context, id uuid.UUID) (bool, error),
) (updated int, failed int) {
	log := s.log.Function("fanOut")

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		sem = make(chan struct{}, sweepConcurrency)
	)

	for _, id := range ids {
		wg.Add(1)
		sem <- struct{}{}

		go func(id uuid.UUID) {
			defer wg.Done()
			defer func() { <-sem }()

			changed, err := recompute(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				log.Er("sweep entity recompute failed", err, "entityID", id)
				return
			}
			if changed {
				updated++
			}
		}(id)
	}

	wg.Wait()
	return updated, failed
}
