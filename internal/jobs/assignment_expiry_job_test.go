package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"distribution/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExpirer struct {
	calls   atomic.Int32
	expired int
	err     error
}

func (e *countingExpirer) Handle(_ context.Context, cmd commands.ExpireStaleAssignmentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	e.calls.Add(1)
	return e.expired, e.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAssignmentExpiryJob_RunInvokesExpirer(t *testing.T) {
	expirer := &countingExpirer{expired: 2}
	job := NewAssignmentExpiryJob(expirer, "", discardLogger())

	job.Run()
	job.Run()

	assert.Equal(t, int32(2), expirer.calls.Load())
	assert.Equal(t, DefaultExpirySchedule, job.schedule)
}

func TestAssignmentExpiryJob_RunSurvivesFailure(t *testing.T) {
	expirer := &countingExpirer{err: errors.New("db down")}
	job := NewAssignmentExpiryJob(expirer, "", discardLogger())

	assert.NotPanics(t, job.Run)
	assert.Equal(t, int32(1), expirer.calls.Load())
}

func TestAssignmentExpiryJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewAssignmentExpiryJob(&countingExpirer{}, "every minute", discardLogger())

	require.Error(t, job.Start())
}

func TestJobManager_StartStop(t *testing.T) {
	jm := NewJobManager(&countingExpirer{}, "@every 1h", discardLogger())

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
