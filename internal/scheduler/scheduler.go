package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"rentacar-backend/internal/jobs"
	"rentacar-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler and registers the daily jobs. It fails on an invalid cron spec.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision; cron's own messages go through slog
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
		cron.WithLogger(cron.PrintfLogger(slog.NewLogLogger(logger.Get().Handler(), slog.LevelInfo))),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	// Start rentals whose reservation begins today
	if _, err := s.cron.AddFunc(cfg.StartScheduledRentals, s.jobs.StartScheduledRentals); err != nil {
		return fmt.Errorf("register StartScheduledRentals: %w", err)
	}

	// Remind the fleet manager of vehicles still in maintenance
	if _, err := s.cron.AddFunc(cfg.SendMaintenanceReminders, s.jobs.SendMaintenanceReminders); err != nil {
		return fmt.Errorf("register SendMaintenanceReminders: %w", err)
	}

	logger.Info("All cron jobs registered successfully", "jobs", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// NextRuns returns the next activation of every registered job.
func (s *Scheduler) NextRuns() []time.Time {
	entries := s.cron.Entries()
	next := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		next = append(next, e.Schedule.Next(time.Now().UTC()))
	}
	return next
}
