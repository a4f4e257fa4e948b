package CronJobs

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"Sanitrack/Engine"
)

// StalenessChecker runs the overdue sweep on a schedule. The default schedule
// fires every 10 minutes; the interval is a tunable, not a correctness knob —
// the next run re-evaluates whatever is still overdue.
type StalenessChecker struct {
	cronScheduler  *cron.Cron
	engine         *Engine.TaskEngine
	schedule       string
	runImmediately bool
	jobID          cron.EntryID
}

// NewStalenessChecker creates a checker with the default 10-minute schedule
func NewStalenessChecker(engine *Engine.TaskEngine, runImmediately bool) *StalenessChecker {
	return &StalenessChecker{
		cronScheduler:  cron.New(cron.WithSeconds()),
		engine:         engine,
		schedule:       "0 */10 * * * *",
		runImmediately: runImmediately,
	}
}

// Start initiates the staleness sweep cron job
func (s *StalenessChecker) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc(s.schedule, func() {
		s.runSweep()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	log.Printf("Staleness sweep scheduler started (schedule: %s)", s.schedule)

	if s.runImmediately {
		s.runSweep()
	}
	return nil
}

// Stop terminates the checker
func (s *StalenessChecker) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Staleness sweep scheduler stopped")
	}
}

// UpdateSchedule changes the sweep schedule.
// Format: "0 */10 * * * *" = every 10 minutes.
func (s *StalenessChecker) UpdateSchedule(schedule string) error {
	s.cronScheduler.Remove(s.jobID)

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(schedule, func() {
		s.runSweep()
	})
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	s.schedule = schedule
	log.Printf("Staleness sweep schedule updated to: %s\n", schedule)
	return nil
}

// RunManualSweep executes a sweep outside the schedule
func (s *StalenessChecker) RunManualSweep() {
	log.Println("Running manual staleness sweep")
	s.runSweep()
}

func (s *StalenessChecker) runSweep() {
	count, err := s.engine.SweepOverdue()
	if err != nil {
		log.Printf("Error in staleness sweep: %v\n", err)
		return
	}
	if count > 0 {
		log.Printf("Staleness sweep marked %d task(s) as LATE\n", count)
	}
}
