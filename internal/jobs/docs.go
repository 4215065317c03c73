// Package jobs provides scheduled background tasks for the distribution
// service, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// AssignmentExpiryJob sweeps assignments still in assigned status past their
// accept deadline. Reads that list assignments expire stale rows themselves,
// so the job only bounds how long a courier slot stays held when nobody is
// looking.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(expireHandler, cfg.ExpirySchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions with seconds. An overlapping run
// is skipped rather than queued. A failed sweep is logged and retried at the
// next tick.
package jobs
