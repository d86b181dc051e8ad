package repositories

import (
	"context"
	"renthub/internal/logger"
	. "renthub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RentalRepository interface {
	Create(ctx context.Context, tx *gorm.DB, rental *Rental) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Rental, error)
	GetByUnit(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]*Rental, error)
	GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*Rental, error)
	GetReconcilable(ctx context.Context, tx *gorm.DB) ([]*Rental, error)
	ActiveByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*Rental, error)
	Update(ctx context.Context, tx *gorm.DB, rental *Rental) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status RentalStatus) error
}

type rentalRepository struct{}

func NewRentalRepository() RentalRepository {
	return &rentalRepository{}
}

func (r *rentalRepository) Create(ctx context.Context, tx *gorm.DB, rental *Rental) error {
	log := logger.NewWithContext(ctx, "rentalRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(rental).Error; err != nil {
		return log.Err("failed to create rental", err, "unitID", rental.UnitID)
	}

	log.Info("Rental created", "rentalID", rental.ID, "unitID", rental.UnitID)
	return nil
}

func (r *rentalRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*Rental, error) {
	log := logger.NewWithContext(ctx, "rentalRepository").Function("GetByID")

	var rental Rental
	if err := tx.WithContext(ctx).First(&rental, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get rental", err, "rentalID", id)
	}

	return &rental, nil
}

func (r *rentalRepository) GetByUnit(
	ctx context.Context,
	tx *gorm.DB,
	unitID uuid.UUID,
) ([]*Rental, error) {
	log := logger.NewWithContext(ctx, "rentalRepository").Function("GetByUnit")

	var rentals []*Rental
	if err := tx.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("start_date DESC").
		Find(&rentals).Error; err != nil {
		return nil, log.Err("failed to get rentals by unit", err, "unitID", unitID)
	}

	return rentals, nil
}

func (r *rentalRepository) GetByOwner(
	ctx context.Context,
	tx *gorm.DB,
	ownerID uuid.UUID,
) ([]*Rental, error) {
	log := logger.NewWithContext(ctx, "rentalRepository").Function("GetByOwner")

	var rentals []*Rental
	if err := tx.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("start_date DESC").
		Find(&rentals).Error; err != nil {
		return nil, log.Err("failed to get rentals by owner", err, "ownerID", ownerID)
	}

	return rentals, nil
}

// GetReconcilable returns every rental the sweep must visit: anything not in
// a manually-exited terminal state.
func (r *rentalRepository) GetReconcilable(
	ctx context.Context,
	tx *gorm.DB,
) ([]*Rental, error) {
	log := logger.NewWithContext(ctx, "rentalRepository").Function("GetReconcilable")

	var rentals []*Rental
	if err := tx.WithContext(ctx).
		Where("status NOT IN ?", []RentalStatus{RentalStatusCancelled, RentalStatusTerminated}).
		Find(&rentals).Error; err != nil {
		return nil, log.Err("failed to get reconcilable rentals", err)
	}

	return rentals, nil
}

func (r *rentalRepository) ActiveByOwner(
	ctx context.Context,
	tx *gorm.DB,
	ownerID uuid.UUID,
) ([]*Rental, error) {
	log := logger.NewWithContext(ctx, "rentalRepository").Function("ActiveByOwner")

	var rentals []*Rental
	if err := tx.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, RentalStatusActive).
		Find(&rentals).Error; err != nil {
		return nil, log.Err("failed to get active rentals", err, "ownerID", ownerID)
	}

	return rentals, nil
}

func (r *rentalRepository) Update(ctx context.Context, tx *gorm.DB, rental *Rental) error {
	log := logger.NewWithContext(ctx, "rentalRepository").Function("Update")

	result := tx.WithContext(ctx).
		Model(&Rental{}).
		Where("id = ?", rental.ID).
		Updates(rental)
	if result.Error != nil {
		return log.Err("failed to update rental", result.Error, "rentalID", rental.ID)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *rentalRepository) UpdateStatus(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	status RentalStatus,
) error {
	log := logger.NewWithContext(ctx, "rentalRepository").Function("UpdateStatus")

	result := tx.WithContext(ctx).
		Model(&Rental{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return log.Err("failed to update rental status", result.Error, "rentalID", id, "status", status)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	log.Info("Rental status updated", "rentalID", id, "status", status)
	return nil
}
