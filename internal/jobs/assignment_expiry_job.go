package jobs

import (
	"context"
	"log/slog"

	"distribution/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultExpirySchedule runs the sweep every thirty seconds.
const DefaultExpirySchedule = "*/30 * * * * *"

// StaleAssignmentExpirer is satisfied by
// commands.ExpireStaleAssignmentsCommandHandler.
type StaleAssignmentExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireStaleAssignmentsCommand) (int, error)
}

// AssignmentExpiryJob periodically expires assignments whose accept
// deadline has passed, releasing the courier slot and returning the order
// to ready.
type AssignmentExpiryJob struct {
	expirer  StaleAssignmentExpirer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAssignmentExpiryJob creates the sweep. schedule is a six-field cron
// expression (with seconds); empty means DefaultExpirySchedule.
func NewAssignmentExpiryJob(expirer StaleAssignmentExpirer, schedule string, logger *slog.Logger) *AssignmentExpiryJob {
	if schedule == "" {
		schedule = DefaultExpirySchedule
	}
	return &AssignmentExpiryJob{
		expirer:  expirer,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "assignment_expiry_job"),
	}
}

// Start schedules the sweep.
func (j *AssignmentExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment expiry job started", "schedule", j.schedule)
	return nil
}

// Run performs one sweep.
func (j *AssignmentExpiryJob) Run() {
	ctx := context.Background()

	expired, err := j.expirer.Handle(ctx, commands.NewExpireStaleAssignmentsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Assignment expiry job failed", "error", err, "expired", expired)
		return
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired stale assignments", "count", expired)
	}
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *AssignmentExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Assignment expiry job stopped")
}
