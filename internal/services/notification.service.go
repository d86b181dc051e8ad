package services

import (
	"context"
	"fmt"
	"time"

	"renthub/internal/database"
	"renthub/internal/logger"
	. "renthub/internal/models"
	"renthub/internal/repositories"

	"github.com/google/uuid"
)

// NotifyOrigin distinguishes automated (sweep, cascade) triggers from
// direct user-initiated ones. The dedup window differs per origin.
type NotifyOrigin int

const (
	NotifyOriginSystem NotifyOrigin = iota
	NotifyOriginUser
)

const (
	systemDedupWindow = 10 * time.Minute
	userDedupWindow   = 5 * time.Minute
)

type NotificationService struct {
	db               database.DB
	notificationRepo repositories.NotificationRepository
	log              logger.Logger
}

func NewNotificationService(db database.DB, repos repositories.Repository) *NotificationService {
	return &NotificationService{
		db:               db,
		notificationRepo: repos.Notification,
		log:              logger.New("NotificationService"),
	}
}

func (o NotifyOrigin) dedupWindow() time.Duration {
	if o == NotifyOriginUser {
		return userDedupWindow
	}
	return systemDedupWindow
}

// Notify inserts a notification unless an identical one (same recipient,
// title and message) already exists inside the origin's dedup window.
// A suppressed duplicate returns (nil, nil).
func (s *NotificationService) Notify(
	ctx context.Context,
	recipientID uuid.UUID,
	notificationType NotificationType,
	title string,
	message string,
	origin NotifyOrigin,
) (*Notification, error) {
	log := s.log.Function("Notify")

	since := time.Now().Add(-origin.dedupWindow())

	existing, err := s.notificationRepo.FindRecentDuplicate(
		ctx,
		s.db.SQL,
		recipientID,
		title,
		message,
		since,
	)
	if err != nil {
		return nil, log.Err("failed duplicate lookup", err, "recipientID", recipientID, "title", title)
	}

	if existing != nil {
		log.Debug(
			"duplicate notification suppressed",
			"recipientID", recipientID,
			"title", title,
			"existingID", existing.ID,
		)
		return nil, nil
	}

	notification := &Notification{
		RecipientID: recipientID,
		Type:        notificationType,
		Title:       title,
		Message:     message,
	}

	if err := s.notificationRepo.Create(ctx, s.db.SQL, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

// CheckRentalTimeline fires end-of-contract alerts for a rental. The
// thresholds are exact matches against whole days or hours remaining,
// so the caller must evaluate at least once inside each day and hour
// window for the alert to fire.
func (s *NotificationService) CheckRentalTimeline(
	ctx context.Context,
	rental *Rental,
	status RentalStatus,
	now time.Time,
) {
	log := s.log.Function("CheckRentalTimeline")

	if status == RentalStatusCompleted {
		s.notifyBestEffort(ctx, log, rental.TenantID, NotificationTypeMessage,
			"Rental completed",
			fmt.Sprintf("Your rental contract %s has been completed.", rental.ID),
		)
	}

	end := rental.EffectiveEndDate()
	if end == nil {
		return
	}

	until := end.Sub(now)
	daysUntilEnd := int(until.Hours() / 24)
	hoursUntilEnd := int(until.Hours())

	switch {
	case daysUntilEnd == 7:
		s.notifyBestEffort(ctx, log, rental.TenantID, NotificationTypeAlert,
			"Rental ending in one week",
			fmt.Sprintf("Your rental contract %s ends on %s.", rental.ID, end.Format("2006-01-02")),
		)
	case daysUntilEnd == 1:
		s.notifyBestEffort(ctx, log, rental.TenantID, NotificationTypeAlert,
			"Rental ending tomorrow",
			fmt.Sprintf("Your rental contract %s ends on %s.", rental.ID, end.Format("2006-01-02")),
		)
	case hoursUntilEnd == 1 && until > 0:
		s.notifyBestEffort(ctx, log, rental.TenantID, NotificationTypeDanger,
			"Rental ending in one hour",
			fmt.Sprintf("Your rental contract %s ends at %s.", rental.ID, end.Format("15:04 MST")),
		)
	}
}

// notifyBestEffort logs and swallows dispatch failures. Timeline alerts
// are side effects of reconciliation and must never fail it.
func (s *NotificationService) notifyBestEffort(
	ctx context.Context,
	log logger.Logger,
	recipientID uuid.UUID,
	notificationType NotificationType,
	title string,
	message string,
) {
	if _, err := s.Notify(ctx, recipientID, notificationType, title, message, NotifyOriginSystem); err != nil {
		log.Er("failed to dispatch timeline notification", err, "recipientID", recipientID, "title", title)
	}
}

// GetForUser lists a recipient's notifications, optionally unread only.
func (s *NotificationService) GetForUser(
	ctx context.Context,
	recipientID uuid.UUID,
	unreadOnly bool,
) ([]*Notification, error) {
	return s.notificationRepo.GetByRecipient(ctx, s.db.SQL, recipientID, unreadOnly)
}

// MarkRead flips the read flag on a notification owned by the recipient.
func (s *NotificationService) MarkRead(
	ctx context.Context,
	id uuid.UUID,
	recipientID uuid.UUID,
) error {
	return s.notificationRepo.MarkRead(ctx, s.db.SQL, id, recipientID)
}

// CleanupRead deletes read notifications older than the retention cutoff.
func (s *NotificationService) CleanupRead(ctx context.Context, retentionDays int) (int64, error) {
	log := s.log.Function("CleanupRead")

	if retentionDays <= 0 {
		retentionDays = 90
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	deleted, err := s.notificationRepo.DeleteReadOlderThan(ctx, s.db.SQL, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		log.Info("Cleaned up read notifications", "deleted", deleted, "cutoff", cutoff)
	}

	return deleted, nil
}
