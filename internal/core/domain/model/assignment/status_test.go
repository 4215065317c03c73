package assignment_test

import (
	"fmt"
	"testing"

	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTable(t *testing.T) {
	legal := map[[2]assignment.Status]bool{
		{assignment.Assigned, assignment.Accepted}:  true,
		{assignment.Assigned, assignment.Expired}:   true,
		{assignment.Assigned, assignment.Rejected}:  true,
		{assignment.Assigned, assignment.Cancelled}: true,
		{assignment.Accepted, assignment.PickedUp}:  true,
		{assignment.Accepted, assignment.Cancelled}: true,
		{assignment.PickedUp, assignment.Arriving}:  true,
		{assignment.PickedUp, assignment.Cancelled}: true,
		{assignment.Arriving, assignment.Delivered}: true,
		{assignment.Arriving, assignment.Cancelled}: true,
	}

	for _, from := range assignment.AllStatuses() {
		for _, to := range assignment.AllStatuses() {
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				next, err := from.TransitionTo(to)

				if legal[[2]assignment.Status{from, to}] {
					require.NoError(t, err)
					assert.Equal(t, to, next)
					return
				}
				require.ErrorIs(t, err, errs.ErrInvalidState)
				assert.Equal(t, assignment.Unknown, next)
			})
		}
	}
}

func TestStatus_ActiveAndTerminal(t *testing.T) {
	active := map[assignment.Status]bool{}
	for _, s := range assignment.ActiveStatuses() {
		active[s] = true
	}

	for _, s := range assignment.AllStatuses() {
		assert.Equal(t, active[s], s.IsActive(), s.String())
		assert.Equal(t, !active[s], s.IsTerminal(), s.String())
	}
	assert.False(t, assignment.Unknown.IsTerminal())
	assert.False(t, assignment.Unknown.IsActive())
}

func TestParseStatus(t *testing.T) {
	for _, s := range assignment.AllStatuses() {
		parsed, err := assignment.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := assignment.ParseStatus("unknown")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "unknown", assignment.Status(99).String())
	assert.Error(t, assignment.Status(99).Validate())
}
