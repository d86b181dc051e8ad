package services

import (
	"context"
	"testing"
	"time"

	"renthub/internal/database"
	"renthub/internal/logger"
	. "renthub/internal/models"
	"renthub/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotificationService(repo *fakeNotificationRepo) *NotificationService {
	return &NotificationService{
		db:               database.DB{},
		notificationRepo: repo,
		log:              logger.New("NotificationService"),
	}
}

func TestNotify_SuppressesDuplicatesInsideWindow(t *testing.T) {
	repo := &fakeNotificationRepo{}
	service := newTestNotificationService(repo)
	recipient := uuid.New()
	ctx := context.Background()

	first, err := service.Notify(ctx, recipient, NotificationTypeAlert, "Rental ending tomorrow", "Contract X", NotifyOriginSystem)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := service.Notify(ctx, recipient, NotificationTypeAlert, "Rental ending tomorrow", "Contract X", NotifyOriginSystem)
	require.NoError(t, err)
	assert.Nil(t, second, "duplicate inside the window must be suppressed")
	assert.Equal(t, 1, repo.count())
}

func TestNotify_AllowsDuplicateAfterWindowExpires(t *testing.T) {
	repo := &fakeNotificationRepo{}
	service := newTestNotificationService(repo)
	recipient := uuid.New()
	ctx := context.Background()

	first, err := service.Notify(ctx, recipient, NotificationTypeAlert, "Rental ending tomorrow", "Contract X", NotifyOriginSystem)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Age the stored notification past the system window.
	first.CreatedAt = time.Now().Add(-systemDedupWindow - time.Minute)

	second, err := service.Notify(ctx, recipient, NotificationTypeAlert, "Rental ending tomorrow", "Contract X", NotifyOriginSystem)
	require.NoError(t, err)
	assert.NotNil(t, second, "a duplicate after the window is a fresh notification")
	assert.Equal(t, 2, repo.count())
}

func TestNotify_UserOriginUsesShorterWindow(t *testing.T) {
	repo := &fakeNotificationRepo{}
	service := newTestNotificationService(repo)
	recipient := uuid.New()
	ctx := context.Background()

	first, err := service.Notify(ctx, recipient, NotificationTypeMessage, "Welcome", "Hello", NotifyOriginUser)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Seven minutes old: outside the 5 minute user window, inside the
	// 10 minute system window.
	first.CreatedAt = time.Now().Add(-7 * time.Minute)

	viaUser, err := service.Notify(ctx, recipient, NotificationTypeMessage, "Welcome", "Hello", NotifyOriginUser)
	require.NoError(t, err)
	assert.NotNil(t, viaUser)

	viaSystem, err := service.Notify(ctx, recipient, NotificationTypeMessage, "Welcome", "Hello", NotifyOriginSystem)
	require.NoError(t, err)
	assert.Nil(t, viaSystem)
}

func TestNotify_DifferentRecipientsAreIndependent(t *testing.T) {
	repo := &fakeNotificationRepo{}
	service := newTestNotificationService(repo)
	ctx := context.Background()

	first, err := service.Notify(ctx, uuid.New(), NotificationTypeAlert, "Same title", "Same message", NotifyOriginSystem)
	require.NoError(t, err)
	assert.NotNil(t, first)

	second, err := service.Notify(ctx, uuid.New(), NotificationTypeAlert, "Same title", "Same message", NotifyOriginSystem)
	require.NoError(t, err)
	assert.NotNil(t, second)
}

func TestCheckRentalTimeline_ExactThresholds(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tenant := uuid.New()

	tests := []struct {
		name          string
		end           time.Time
		status        RentalStatus
		expectedTitle string
	}{
		{
			name:          "exactly seven days out fires the week alert",
			end:           now.Add(7*24*time.Hour + 30*time.Minute),
			status:        RentalStatusActive,
			expectedTitle: "Rental ending in one week",
		},
		{
			name:          "exactly one day out fires the tomorrow alert",
			end:           now.Add(24*time.Hour + 30*time.Minute),
			status:        RentalStatusActive,
			expectedTitle: "Rental ending tomorrow",
		},
		{
			name:          "one hour out fires the danger alert",
			end:           now.Add(90 * time.Minute),
			status:        RentalStatusActive,
			expectedTitle: "Rental ending in one hour",
		},
		{
			name:          "completed status fires the completion message",
			end:           now.Add(-time.Hour),
			status:        RentalStatusCompleted,
			expectedTitle: "Rental completed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeNotificationRepo{}
			service := newTestNotificationService(repo)

			end := tt.end
			rental := &Rental{
				TenantID:  tenant,
				StartDate: now.AddDate(0, -6, 0),
				EndDate:   &end,
				Status:    tt.status,
			}
			rental.ID = uuid.New()

			service.CheckRentalTimeline(context.Background(), rental, tt.status, now)

			require.Equal(t, 1, repo.count())
			assert.Equal(t, tt.expectedTitle, repo.notifications[0].Title)
			assert.Equal(t, tenant, repo.notifications[0].RecipientID)
		})
	}
}

func TestCheckRentalTimeline_OutsideThresholdsIsSilent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ends := []time.Time{
		now.Add(8 * 24 * time.Hour), // eight days: not seven
		now.Add(3 * 24 * time.Hour), // three days: neither seven nor one
		now.Add(3 * time.Hour),      // three hours: not one
		now.Add(-30 * time.Minute),  // already past, not completed status
	}

	for _, end := range ends {
		repo := &fakeNotificationRepo{}
		service := newTestNotificationService(repo)

		e := end
		rental := &Rental{
			TenantID:  uuid.New(),
			StartDate: now.AddDate(0, -6, 0),
			EndDate:   &e,
			Status:    RentalStatusActive,
		}
		rental.ID = uuid.New()

		service.CheckRentalTimeline(context.Background(), rental, RentalStatusActive, now)
		assert.Equal(t, 0, repo.count(), "no alert expected for end %s", end)
	}
}

var _ repositories.NotificationRepository = (*fakeNotificationRepo)(nil)
