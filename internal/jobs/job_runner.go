package jobs

import (
	"time"

	"rentacar-backend/internal/config"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/service"
	"rentacar-backend/internal/utils"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
	now      func() time.Time
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Fleet   service.FleetService
	Rentals service.RentalService
	Email   service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
		now:      time.Now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// today is the current UTC calendar day at midnight.
func (jr *JobRunner) today() time.Time {
	return utils.StartOfDay(jr.now().UTC())
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
}

// RunAllDailyJobs runs every job once (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() {
	jr.StartScheduledRentals()
	jr.SendMaintenanceReminders()
}
