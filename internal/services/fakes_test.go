package services

import (
	"context"
	"sync"
	"time"

	. "renthub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. The tx parameter is ignored; state lives in
// the fake itself. All methods are safe for the sweep's concurrent fan-out.

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, tx *gorm.DB, notification *Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	f.notifications = append(f.notifications, notification)
	return nil
}

func (f *fakeNotificationRepo) FindRecentDuplicate(
	ctx context.Context,
	tx *gorm.DB,
	recipientID uuid.UUID,
	title string,
	message string,
	since time.Time,
) (*Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, n := range f.notifications {
		if n.RecipientID == recipientID && n.Title == title && n.Message == message &&
			!n.CreatedAt.Before(since) {
			return n, nil
		}
	}
	return nil, nil
}

func (f *fakeNotificationRepo) GetByRecipient(
	ctx context.Context,
	tx *gorm.DB,
	recipientID uuid.UUID,
	unreadOnly bool,
) ([]*Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && (!unreadOnly || !n.Read) {
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *fakeNotificationRepo) MarkRead(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	recipientID uuid.UUID,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, n := range f.notifications {
		if n.ID == id && n.RecipientID == recipientID {
			n.Read = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) DeleteReadOlderThan(
	ctx context.Context,
	tx *gorm.DB,
	cutoff time.Time,
) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var kept []*Notification
	var deleted int64
	for _, n := range f.notifications {
		if n.Read && n.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	f.notifications = kept
	return deleted, nil
}

func (f *fakeNotificationRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notifications)
}

type fakeRentalRepo struct {
	mu      sync.Mutex
	rentals map[uuid.UUID]*Rental
	writes  int
}

func newFakeRentalRepo() *fakeRentalRepo {
	return &fakeRentalRepo{rentals: make(map[uuid.UUID]*Rental)}
}

func (f *fakeRentalRepo) add(rental *Rental) *Rental {
	f.mu.Lock()
	defer f.mu.Unlock()

	if rental.ID == uuid.Nil {
		rental.ID = uuid.New()
	}
	f.rentals[rental.ID] = rental
	return rental
}

func (f *fakeRentalRepo) Create(ctx context.Context, tx *gorm.DB, rental *Rental) error {
	f.add(rental)
	return nil
}

func (f *fakeRentalRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rental, ok := f.rentals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *rental
	return &copy, nil
}

func (f *fakeRentalRepo) GetByUnit(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]*Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*Rental
	for _, rental := range f.rentals {
		if rental.UnitID == unitID {
			copy := *rental
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (f *fakeRentalRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*Rental
	for _, rental := range f.rentals {
		if rental.OwnerID == ownerID {
			copy := *rental
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (f *fakeRentalRepo) GetReconcilable(ctx context.Context, tx *gorm.DB) ([]*Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*Rental
	for _, rental := range f.rentals {
		if rental.Status == RentalStatusCancelled || rental.Status == RentalStatusTerminated {
			continue
		}
		copy := *rental
		result = append(result, &copy)
	}
	return result, nil
}

func (f *fakeRentalRepo) ActiveByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*Rental
	for _, rental := range f.rentals {
		if rental.OwnerID == ownerID && rental.Status == RentalStatusActive {
			copy := *rental
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (f *fakeRentalRepo) Update(ctx context.Context, tx *gorm.DB, rental *Rental) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rentals[rental.ID] = rental
	f.writes++
	return nil
}

func (f *fakeRentalRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status RentalStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rental, ok := f.rentals[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rental.Status = status
	f.writes++
	return nil
}

func (f *fakeRentalRepo) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

type fakeUnitRepo struct {
	mu     sync.Mutex
	units  map[uuid.UUID]*Unit
	writes int
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{units: make(map[uuid.UUID]*Unit)}
}

func (f *fakeUnitRepo) add(unit *Unit) *Unit {
	f.mu.Lock()
	defer f.mu.Unlock()

	if unit.ID == uuid.Nil {
		unit.ID = uuid.New()
	}
	if unit.Status == "" {
		unit.Status = UnitStatusAvailable
	}
	f.units[unit.ID] = unit
	return unit
}

func (f *fakeUnitRepo) Create(ctx context.Context, tx *gorm.DB, unit *Unit) error {
	f.add(unit)
	return nil
}

func (f *fakeUnitRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	unit, ok := f.units[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *unit
	return &copy, nil
}

func (f *fakeUnitRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*Unit
	for _, unit := range f.units {
		if unit.OwnerID == ownerID {
			copy := *unit
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (f *fakeUnitRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*Unit
	for _, unit := range f.units {
		copy := *unit
		result = append(result, &copy)
	}
	return result, nil
}

func (f *fakeUnitRepo) Update(ctx context.Context, tx *gorm.DB, unit *Unit) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.units[unit.ID] = unit
	f.writes++
	return nil
}

func (f *fakeUnitRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status UnitStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	unit, ok := f.units[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	unit.Status = status
	f.writes++
	return nil
}

func (f *fakeUnitRepo) CountByOwnerAndStatus(
	ctx context.Context,
	tx *gorm.DB,
	ownerID uuid.UUID,
) (map[UnitStatus]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	counts := make(map[UnitStatus]int64)
	for _, unit := range f.units {
		if unit.OwnerID == ownerID {
			counts[unit.Status]++
		}
	}
	return counts, nil
}

func (f *fakeUnitRepo) statusOf(id uuid.UUID) UnitStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.units[id].Status
}

func (f *fakeUnitRepo) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

type fakeMaintenanceRepo struct {
	mu       sync.Mutex
	requests []*MaintenanceRequest
}

func (f *fakeMaintenanceRepo) add(request *MaintenanceRequest) *MaintenanceRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	f.requests = append(f.requests, request)
	return request
}

func (f *fakeMaintenanceRepo) Create(ctx context.Context, tx *gorm.DB, request *MaintenanceRequest) error {
	f.add(request)
	return nil
}

func (f *fakeMaintenanceRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*MaintenanceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, request := range f.requests {
		if request.ID == id {
			copy := *request
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMaintenanceRepo) GetByUnit(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]*MaintenanceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*MaintenanceRequest
	for _, request := range f.requests {
		if request.UnitID == unitID {
			copy := *request
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (f *fakeMaintenanceRepo) GetBlockingByUnit(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]*MaintenanceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*MaintenanceRequest
	for _, request := range f.requests {
		if request.UnitID == unitID && request.BlocksUnit() {
			copy := *request
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (f *fakeMaintenanceRepo) CountOpenByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, request := range f.requests {
		if request.BlocksUnit() {
			count++
		}
	}
	return count, nil
}

func (f *fakeMaintenanceRepo) Update(ctx context.Context, tx *gorm.DB, request *MaintenanceRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, existing := range f.requests {
		if existing.ID == request.ID {
			f.requests[i] = request
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	records []*StatusHistory
}

func (f *fakeHistoryRepo) Create(ctx context.Context, tx *gorm.DB, record *StatusHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeHistoryRepo) GetByEntity(
	ctx context.Context,
	tx *gorm.DB,
	entityType HistoryEntityType,
	entityID uuid.UUID,
) ([]*StatusHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*StatusHistory
	for _, record := range f.records {
		if record.EntityType == entityType && record.EntityID == entityID {
			copy := *record
			result = append(result, &copy)
		}
	}
	return result, nil
}
