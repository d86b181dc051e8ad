package services

import (
	"renthub/config"
	"renthub/internal/database"
	"renthub/internal/events"
	"renthub/internal/repositories"
)

type Service struct {
	Transaction     *TransactionService
	Auth            *AuthService
	Scheduler       *SchedulerService
	Deferred        *DeferredTaskService
	Notification    *NotificationService
	RentalLifecycle *RentalLifecycleService
	UnitStatus      *UnitStatusService
	Statistics      *StatisticsService
	Reconciliation  *ReconciliationService
}

func New(db database.DB, config config.Config, eventBus *events.EventBus) (Service, error) {
	transactionService := NewTransactionService(db)
	repos := repositories.New(db)

	authService, err := NewAuthService(config)
	if err != nil {
		return Service{}, err
	}

	schedulerService := NewSchedulerService()
	deferredService := NewDeferredTaskService(config)
	notificationService := NewNotificationService(db, repos)
	statisticsService := NewStatisticsService(db, repos)
	lifecycleService := NewRentalLifecycleService(db, repos, transactionService, notificationService, deferredService, eventBus)
	unitStatusService := NewUnitStatusService(db, repos, notificationService, deferredService, eventBus)
	reconciliationService := NewReconciliationService(
		db,
		repos,
		lifecycleService,
		unitStatusService,
		statisticsService,
		deferredService,
		eventBus,
	)

	deferredService.Start()

	return Service{
		Transaction:     transactionService,
		Auth:            authService,
		Scheduler:       schedulerService,
		Deferred:        deferredService,
		Notification:    notificationService,
		RentalLifecycle: lifecycleService,
		UnitStatus:      unitStatusService,
		Statistics:      statisticsService,
		Reconciliation:  reconciliationService,
	}, nil
}
