package queries

import (
	"context"

	"distribution/internal/core/application/usecases/commands"
)

// StaleAssignmentExpirer is satisfied by
// commands.ExpireStaleAssignmentsCommandHandler.
type StaleAssignmentExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireStaleAssignmentsCommand) (int, error)
}

func expireStale(ctx context.Context, expirer StaleAssignmentExpirer) error {
	if expirer == nil {
		return nil
	}
	_, err := expirer.Handle(ctx, commands.NewExpireStaleAssignmentsCommand())
	return err
}
