package services

import (
	"context"
	"time"

	"renthub/internal/database"
	"renthub/internal/logger"
	. "renthub/internal/models"
	"renthub/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ownerStatsCachePrefix = "owner_stats"
	ownerStatsCacheTTL    = 10 * time.Minute
)

// OwnerStatistics is the owner-facing dashboard aggregate. Recomputed
// after maintenance writes and served cache-first elsewhere.
type OwnerStatistics struct {
	OwnerID         uuid.UUID            `json:"ownerId"`
	UnitsByStatus   map[UnitStatus]int64 `json:"unitsByStatus"`
	TotalUnits      int64                `json:"totalUnits"`
	ActiveRentals   int                  `json:"activeRentals"`
	OpenMaintenance int64                `json:"openMaintenance"`
	MonthlyRevenue  decimal.Decimal      `json:"monthlyRevenue"`
	ComputedAt      time.Time            `json:"computedAt"`
}

type StatisticsService struct {
	db    database.DB
	repos repositories.Repository
	log   logger.Logger
}

func NewStatisticsService(db database.DB, repos repositories.Repository) *StatisticsService {
	return &StatisticsService{
		db:    db,
		repos: repos,
		log:   logger.New("StatisticsService"),
	}
}

// Get returns the owner's statistics, serving the cached aggregate when
// present and recomputing on a miss.
func (s *StatisticsService) Get(ctx context.Context, ownerID uuid.UUID) (*OwnerStatistics, error) {
	var cached OwnerStatistics
	found, err := database.NewCacheBuilder(s.db.Cache.Owner, ownerID).
		WithHash(ownerStatsCachePrefix).
		WithContext(ctx).
		Get(&cached)
	if err != nil {
		s.log.Function("Get").Er("owner statistics cache read failed", err, "ownerID", ownerID)
	}
	if found {
		return &cached, nil
	}

	return s.compute(ctx, ownerID, true)
}

// Refresh recomputes and re-caches the aggregate unconditionally.
func (s *StatisticsService) Refresh(ctx context.Context, ownerID uuid.UUID) error {
	_, err := s.compute(ctx, ownerID, true)
	return err
}

// Invalidate drops the cached aggregate so the next read recomputes.
func (s *StatisticsService) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	return database.NewCacheBuilder(s.db.Cache.Owner, ownerID).
		WithHash(ownerStatsCachePrefix).
		WithContext(ctx).
		Delete()
}

func (s *StatisticsService) compute(
	ctx context.Context,
	ownerID uuid.UUID,
	cacheResult bool,
) (*OwnerStatistics, error) {
	log := s.log.Function("compute")

	unitsByStatus, err := s.repos.Unit.CountByOwnerAndStatus(ctx, s.db.SQL, ownerID)
	if err != nil {
		return nil, err
	}

	activeRentals, err := s.repos.Rental.ActiveByOwner(ctx, s.db.SQL, ownerID)
	if err != nil {
		return nil, err
	}

	openMaintenance, err := s.repos.Maintenance.CountOpenByOwner(ctx, s.db.SQL, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &OwnerStatistics{
		OwnerID:         ownerID,
		UnitsByStatus:   unitsByStatus,
		ActiveRentals:   len(activeRentals),
		OpenMaintenance: openMaintenance,
		MonthlyRevenue:  decimal.Zero,
		ComputedAt:      time.Now(),
	}

	for _, count := range unitsByStatus {
		stats.TotalUnits += count
	}
	for _, rental := range activeRentals {
		stats.MonthlyRevenue = stats.MonthlyRevenue.Add(rental.CurrentPrice)
	}

	if cacheResult {
		err := database.NewCacheBuilder(s.db.Cache.Owner, ownerID).
			WithHash(ownerStatsCachePrefix).
			WithStruct(stats).
			WithTTL(ownerStatsCacheTTL).
			WithContext(ctx).
			Set()
		if err != nil {
			log.Er("owner statistics cache write failed", err, "ownerID", ownerID)
		}
	}

	return stats, nil
}
