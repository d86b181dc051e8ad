package repositories

import (
	"context"
	"renthub/internal/logger"
	. "renthub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnitRepository interface {
	Create(ctx context.Context, tx *gorm.DB, unit *Unit) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Unit, error)
	GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*Unit, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*Unit, error)
	Update(ctx context.Context, tx *gorm.DB, unit *Unit) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status UnitStatus) error
	CountByOwnerAndStatus(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (map[UnitStatus]int64, error)
}

type unitRepository struct{}

func NewUnitRepository() UnitRepository {
	return &unitRepository{}
}

func (r *unitRepository) Create(ctx context.Context, tx *gorm.DB, unit *Unit) error {
	log := logger.NewWithContext(ctx, "unitRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(unit).Error; err != nil {
		return log.Err("failed to create unit", err, "ownerID", unit.OwnerID)
	}

	log.Info("Unit created", "unitID", unit.ID, "ownerID", unit.OwnerID)
	return nil
}

func (r *unitRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*Unit, error) {
	log := logger.NewWithContext(ctx, "unitRepository").Function("GetByID")

	var unit Unit
	if err := tx.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get unit", err, "unitID", id)
	}

	return &unit, nil
}

func (r *unitRepository) GetByOwner(
	ctx context.Context,
	tx *gorm.DB,
	ownerID uuid.UUID,
) ([]*Unit, error) {
	log := logger.NewWithContext(ctx, "unitRepository").Function("GetByOwner")

	var units []*Unit
	if err := tx.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&units).Error; err != nil {
		return nil, log.Err("failed to get units by owner", err, "ownerID", ownerID)
	}

	return units, nil
}

func (r *unitRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]*Unit, error) {
	log := logger.NewWithContext(ctx, "unitRepository").Function("GetAll")

	var units []*Unit
	if err := tx.WithContext(ctx).Find(&units).Error; err != nil {
		return nil, log.Err("failed to get all units", err)
	}

	return units, nil
}

func (r *unitRepository) Update(ctx context.Context, tx *gorm.DB, unit *Unit) error {
	log := logger.NewWithContext(ctx, "unitRepository").Function("Update")

	result := tx.WithContext(ctx).
		Model(&Unit{}).
		Where("id = ?", unit.ID).
		Updates(unit)
	if result.Error != nil {
		return log.Err("failed to update unit", result.Error, "unitID", unit.ID)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *unitRepository) UpdateStatus(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	status UnitStatus,
) error {
	log := logger.NewWithContext(ctx, "unitRepository").Function("UpdateStatus")

	result := tx.WithContext(ctx).
		Model(&Unit{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return log.Err("failed to update unit status", result.Error, "unitID", id, "status", status)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	log.Info("Unit status updated", "unitID", id, "status", status)
	return nil
}

func (r *unitRepository) CountByOwnerAndStatus(
	ctx context.Context,
	tx *gorm.DB,
	ownerID uuid.UUID,
) (map[UnitStatus]int64, error) {
	log := logger.NewWithContext(ctx, "unitRepository").Function("CountByOwnerAndStatus")

	type statusCount struct {
		Status UnitStatus `gorm:"column:status"`
		Count  int64      `gorm:"column:count"`
	}

	var results []statusCount
	if err := tx.WithContext(ctx).
		Model(&Unit{}).
		Select("status, COUNT(*) as count").
		Where("owner_id = ?", ownerID).
		Group("status").
		Scan(&results).Error; err != nil {
		return nil, log.Err("failed to count units by status", err, "ownerID", ownerID)
	}

	counts := make(map[UnitStatus]int64, len(results))
	for _, row := range results {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
