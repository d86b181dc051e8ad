package app

import (
	"context"
	"time"

	"renthub/config"
	"renthub/internal/database"
	"renthub/internal/events"
	"renthub/internal/handlers/middleware"
	"renthub/internal/jobs"
	"renthub/internal/logger"
	"renthub/internal/repositories"
	"renthub/internal/services"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	EventBus   *events.EventBus
	Config     config.Config
	Services   services.Service
	Repos      repositories.Repository
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	service, err := services.New(db, config, eventBus)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	repos := repositories.New(db)
	middleware := middleware.New(db, eventBus, config, repos)

	if config.SchedulerEnabled {
		sweepJob := jobs.NewReconciliationSweepJob(service.Reconciliation, services.Hourly)
		if err := service.Scheduler.AddJob(sweepJob); err != nil {
			return &App{}, log.Err("failed to register reconciliation sweep job", err)
		}

		cleanupJob := jobs.NewNotificationCleanupJob(
			service.Notification,
			config.NotificationRetDays,
			services.Daily,
		)
		if err := service.Scheduler.AddJob(cleanupJob); err != nil {
			return &App{}, log.Err("failed to register notification cleanup job", err)
		}

		if err := service.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:   db,
		Middleware: middleware,
		EventBus:   eventBus,
		Config:     config,
		Services:   service,
		Repos:      repos,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.EventBus,
		a.Services.Transaction,
		a.Services.Auth,
		a.Services.Scheduler,
		a.Services.Deferred,
		a.Services.Notification,
		a.Services.RentalLifecycle,
		a.Services.UnitStatus,
		a.Services.Statistics,
		a.Services.Reconciliation,
		a.Repos.User,
		a.Repos.Unit,
		a.Repos.Rental,
		a.Repos.Maintenance,
		a.Repos.Notification,
		a.Repos.History,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Deferred != nil {
		if closeErr := a.Services.Deferred.Stop(10 * time.Second); closeErr != nil {
			err = closeErr
		}
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
