package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates the scheduled jobs of the service.
type JobManager struct {
	assignmentExpiryJob *AssignmentExpiryJob
}

// NewJobManager creates the manager with the assignment expiry job on
// expirySchedule, a cron expression.
func NewJobManager(expirer StaleAssignmentExpirer, expirySchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		assignmentExpiryJob: NewAssignmentExpiryJob(expirer, expirySchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start assignment expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.assignmentExpiryJob.Stop()
}
