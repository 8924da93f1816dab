package jobs

import (
	"time"

	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/service"
	"memberclub-rental/internal/utils"
)

// JobRunner coordinates the report jobs
type JobRunner struct {
	services *Services
	clock    utils.Clock
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Ledger     service.RentalLedger
	Revenue    service.RevenueLedger
	Returns    service.ReturnService
	Inventory  service.InventoryService
	Membership service.MembershipService
}

func NewJobRunner(services *Services, clock utils.Clock) *JobRunner {
	return &JobRunner{
		services: services,
		clock:    clock,
	}
}

// runWithRecovery wraps job execution with panic recovery. It reports
// whether the job ran to completion.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func() error) (ok bool) {
	started := jr.clock.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			ok = false
		}
	}()

	logger.Info("Starting job", "job", jobName)
	if err := jobFunc(); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		return false
	}
	logger.Info("Job completed", "job", jobName, "duration", jr.clock.Now().Sub(started).Round(time.Millisecond))
	return true
}

// RunAll runs every report. A failing report does not stop the others.
func (jr *JobRunner) RunAll() bool {
	overdueOK := jr.runWithRecovery("OverdueReport", func() error {
		_, err := jr.OverdueReport(utils.Today(jr.clock))
		return err
	})
	revenueOK := jr.runWithRecovery("RevenueReport", func() error {
		_, err := jr.RevenueReport()
		return err
	})
	return overdueOK && revenueOK
}

// RunOverdueReport runs the overdue report for today. Used by the scheduler.
func (jr *JobRunner) RunOverdueReport() {
	jr.runWithRecovery("OverdueReport", func() error {
		_, err := jr.OverdueReport(utils.Today(jr.clock))
		return err
	})
}

// RunRevenueReport runs the revenue report. Used by the scheduler.
func (jr *JobRunner) RunRevenueReport() {
	jr.runWithRecovery("RevenueReport", func() error {
		_, err := jr.RevenueReport()
		return err
	})
}
