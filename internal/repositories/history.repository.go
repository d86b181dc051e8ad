package repositories

import (
	"context"
	"renthub/internal/logger"
	. "renthub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HistoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, record *StatusHistory) error
	GetByEntity(ctx context.Context, tx *gorm.DB, entityType HistoryEntityType, entityID uuid.UUID) ([]*StatusHistory, error)
}

type historyRepository struct{}

func NewHistoryRepository() HistoryRepository {
	return &historyRepository{}
}

func (r *historyRepository) Create(ctx context.Context, tx *gorm.DB, record *StatusHistory) error {
	log := logger.NewWithContext(ctx, "historyRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(record).Error; err != nil {
		return log.Err(
			"failed to create status history record",
			err,
			"entityType", record.EntityType,
			"entityID", record.EntityID,
		)
	}

	return nil
}

func (r *historyRepository) GetByEntity(
	ctx context.Context,
	tx *gorm.DB,
	entityType HistoryEntityType,
	entityID uuid.UUID,
) ([]*StatusHistory, error) {
	log := logger.NewWithContext(ctx, "historyRepository").Function("GetByEntity")

	var records []*StatusHistory
	if err := tx.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, log.Err("failed to get status history", err, "entityID", entityID)
	}

	return records, nil
}
