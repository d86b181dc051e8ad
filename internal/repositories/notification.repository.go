package repositories

import (
	"context"
	"time"

	"renthub/internal/logger"
	. "renthub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, notification *Notification) error
	// FindRecentDuplicate returns a notification with the same recipient,
	// title and message created at or after since, nil when none exists.
	FindRecentDuplicate(
		ctx context.Context,
		tx *gorm.DB,
		recipientID uuid.UUID,
		title string,
		message string,
		since time.Time,
	) (*Notification, error)
	GetByRecipient(ctx context.Context, tx *gorm.DB, recipientID uuid.UUID, unreadOnly bool) ([]*Notification, error)
	MarkRead(ctx context.Context, tx *gorm.DB, id uuid.UUID, recipientID uuid.UUID) error
	DeleteReadOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type notificationRepository struct{}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	notification *Notification,
) error {
	log := logger.NewWithContext(ctx, "notificationRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(notification).Error; err != nil {
		return log.Err(
			"failed to create notification",
			err,
			"recipientID",
			notification.RecipientID,
			"title",
			notification.Title,
		)
	}

	return nil
}

func (r *notificationRepository) FindRecentDuplicate(
	ctx context.Context,
	tx *gorm.DB,
	recipientID uuid.UUID,
	title string,
	message string,
	since time.Time,
) (*Notification, error) {
	log := logger.NewWithContext(ctx, "notificationRepository").Function("FindRecentDuplicate")

	var notification Notification
	err := tx.WithContext(ctx).
		Where("recipient_id = ? AND title = ? AND message = ? AND created_at >= ?",
			recipientID, title, message, since).
		First(&notification).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, log.Err("failed to query duplicate notification", err, "recipientID", recipientID)
	}

	return &notification, nil
}

func (r *notificationRepository) GetByRecipient(
	ctx context.Context,
	tx *gorm.DB,
	recipientID uuid.UUID,
	unreadOnly bool,
) ([]*Notification, error) {
	log := logger.NewWithContext(ctx, "notificationRepository").Function("GetByRecipient")

	query := tx.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []*Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, log.Err("failed to get notifications", err, "recipientID", recipientID)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	recipientID uuid.UUID,
) error {
	log := logger.NewWithContext(ctx, "notificationRepository").Function("MarkRead")

	result := tx.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if result.Error != nil {
		return log.Err("failed to mark notification read", result.Error, "notificationID", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *notificationRepository) DeleteReadOlderThan(
	ctx context.Context,
	tx *gorm.DB,
	cutoff time.Time,
) (int64, error) {
	log := logger.NewWithContext(ctx, "notificationRepository").Function("DeleteReadOlderThan")

	result := tx.WithContext(ctx).
		Where("read = ? AND created_at < ?", true, cutoff).
		Delete(&Notification{})
	if result.Error != nil {
		return 0, log.Err("failed to delete old notifications", result.Error)
	}

	return result.RowsAffected, nil
}
