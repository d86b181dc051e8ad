package jobs

import (
	"context"

	"renthub/internal/logger"
	"renthub/internal/services"
)

type ReconciliationSweepJob struct {
	reconciliationService *services.ReconciliationService
	log                   logger.Logger
	schedule              services.Schedule
}

func NewReconciliationSweepJob(
	reconciliationService *services.ReconciliationService,
	schedule services.Schedule,
) *ReconciliationSweepJob {
	log := logger.New("reconciliationSweepJob")
	log.Info("Creating reconciliation sweep job", "schedule", schedule)

	return &ReconciliationSweepJob{
		reconciliationService: reconciliationService,
		log:                   log,
		schedule:              schedule,
	}
}

func (j *ReconciliationSweepJob) Name() string {
	return "ReconciliationSweep"
}

func (j *ReconciliationSweepJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	result, err := j.reconciliationService.RunFullSweep(ctx)
	if err != nil {
		return log.Err("reconciliation sweep failed", err)
	}

	log.Info("Reconciliation sweep completed",
		"rentalsUpdated", result.RentalsUpdated,
		"unitsUpdated", result.UnitsUpdated,
		"duration", result.Duration,
	)
	return nil
}

func (j *ReconciliationSweepJob) Schedule() services.Schedule {
	return j.schedule
}
