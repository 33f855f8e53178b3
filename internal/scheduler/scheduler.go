package scheduler

import (
	"time"

	"asociacion-backend/internal/jobs"
	"asociacion-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.SendPaymentReminders, s.jobs.SendPaymentReminders); err != nil {
		logger.Error("Failed to register SendPaymentReminders job", "error", err)
	}
	if _, err := s.cron.AddFunc(cfg.SendEnrollmentReminders, s.jobs.SendEnrollmentReminders); err != nil {
		logger.Error("Failed to register SendEnrollmentReminders job", "error", err)
	}
}

// Start begins the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Scheduler stopped")
}
