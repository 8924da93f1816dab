package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"memberclub-rental/internal/config"
	"memberclub-rental/internal/jobs"
	"memberclub-rental/internal/logger"
)

// Scheduler runs the report jobs on cron schedules for the watch command
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler in the club timezone with seconds precision.
// An empty spec leaves that report unscheduled.
func NewScheduler(jobRunner *jobs.JobRunner, cfg config.SchedulerConfig, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.register("OverdueReport", cfg.OverdueReport, jobRunner.RunOverdueReport); err != nil {
		return nil, err
	}
	if err := s.register("RevenueReport", cfg.RevenueReport, jobRunner.RunRevenueReport); err != nil {
		return nil, err
	}

	logger.Info("Cron jobs registered", "count", len(c.Entries()))
	return s, nil
}

func (s *Scheduler) register(name, spec string, job func()) error {
	if spec == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		logger.Error("Failed to register job", "job", name, "spec", spec, "error", err)
		return fmt.Errorf("job %s: %w", name, err)
	}
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries reports how many jobs are scheduled
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
