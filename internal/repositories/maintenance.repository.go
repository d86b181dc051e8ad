package repositories

import (
	"context"
	"renthub/internal/logger"
	. "renthub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// blockingStatuses force a unit into under_maintenance. "pending" survives
// from a legacy data set, see MaintenanceRequest.BlocksUnit.
var blockingStatuses = []MaintenanceStatus{
	MaintenanceStatusOpen,
	MaintenanceStatusInProgress,
	"pending",
}

type MaintenanceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, request *MaintenanceRequest) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*MaintenanceRequest, error)
	GetByUnit(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]*MaintenanceRequest, error)
	GetBlockingByUnit(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]*MaintenanceRequest, error)
	CountOpenByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, request *MaintenanceRequest) error
}

type maintenanceRepository struct{}

func NewMaintenanceRepository() MaintenanceRepository {
	return &maintenanceRepository{}
}

func (r *maintenanceRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	request *MaintenanceRequest,
) error {
	log := logger.NewWithContext(ctx, "maintenanceRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(request).Error; err != nil {
		return log.Err("failed to create maintenance request", err, "unitID", request.UnitID)
	}

	log.Info("Maintenance request created", "requestID", request.ID, "unitID", request.UnitID)
	return nil
}

func (r *maintenanceRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*MaintenanceRequest, error) {
	log := logger.NewWithContext(ctx, "maintenanceRepository").Function("GetByID")

	var request MaintenanceRequest
	if err := tx.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get maintenance request", err, "requestID", id)
	}

	return &request, nil
}

func (r *maintenanceRepository) GetByUnit(
	ctx context.Context,
	tx *gorm.DB,
	unitID uuid.UUID,
) ([]*MaintenanceRequest, error) {
	log := logger.NewWithContext(ctx, "maintenanceRepository").Function("GetByUnit")

	var requests []*MaintenanceRequest
	if err := tx.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, log.Err("failed to get maintenance requests by unit", err, "unitID", unitID)
	}

	return requests, nil
}

func (r *maintenanceRepository) GetBlockingByUnit(
	ctx context.Context,
	tx *gorm.DB,
	unitID uuid.UUID,
) ([]*MaintenanceRequest, error) {
	log := logger.NewWithContext(ctx, "maintenanceRepository").Function("GetBlockingByUnit")

	var requests []*MaintenanceRequest
	if err := tx.WithContext(ctx).
		Where("unit_id = ? AND status IN ?", unitID, blockingStatuses).
		Find(&requests).Error; err != nil {
		return nil, log.Err("failed to get blocking maintenance requests", err, "unitID", unitID)
	}

	return requests, nil
}

func (r *maintenanceRepository) CountOpenByOwner(
	ctx context.Context,
	tx *gorm.DB,
	ownerID uuid.UUID,
) (int64, error) {
	log := logger.NewWithContext(ctx, "maintenanceRepository").Function("CountOpenByOwner")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&MaintenanceRequest{}).
		Joins("JOIN units ON units.id = maintenance_requests.unit_id").
		Where("units.owner_id = ? AND maintenance_requests.status IN ?", ownerID, blockingStatuses).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count open maintenance requests", err, "ownerID", ownerID)
	}

	return count, nil
}

func (r *maintenanceRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	request *MaintenanceRequest,
) error {
	log := logger.NewWithContext(ctx, "maintenanceRepository").Function("Update")

	result := tx.WithContext(ctx).
		Model(&MaintenanceRequest{}).
		Where("id = ?", request.ID).
		Updates(request)
	if result.Error != nil {
		return log.Err("failed to update maintenance request", result.Error, "requestID", request.ID)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
