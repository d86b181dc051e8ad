package jobs

import (
	"context"

	"renthub/internal/logger"
	"renthub/internal/services"
)

type NotificationCleanupJob struct {
	notificationService *services.NotificationService
	retentionDays       int
	log                 logger.Logger
	schedule            services.Schedule
}

func NewNotificationCleanupJob(
	notificationService *services.NotificationService,
	retentionDays int,
	schedule services.Schedule,
) *NotificationCleanupJob {
	return &NotificationCleanupJob{
		notificationService: notificationService,
		retentionDays:       retentionDays,
		log:                 logger.New("notificationCleanupJob"),
		schedule:            schedule,
	}
}

func (j *NotificationCleanupJob) Name() string {
	return "NotificationCleanup"
}

func (j *NotificationCleanupJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	deleted, err := j.notificationService.CleanupRead(ctx, j.retentionDays)
	if err != nil {
		return log.Err("notification cleanup failed", err)
	}

	log.Info("Notification cleanup completed", "deleted", deleted)
	return nil
}

func (j *NotificationCleanupJob) Schedule() services.Schedule {
	return j.schedule
}
