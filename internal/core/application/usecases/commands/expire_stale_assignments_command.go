package commands

import (
	"errors"

	"distribution/internal/pkg/guard"
)

// ErrExpireStaleAssignmentsCommandIsNotConstructed reports a ExpireStaleAssignmentsCommand built without NewExpireStaleAssignmentsCommand.
var ErrExpireStaleAssignmentsCommandIsNotConstructed = errors.New(
	"ExpireStaleAssignmentsCommand must be created via NewExpireStaleAssignmentsCommand constructor",
)

// ExpireStaleAssignmentsCommand closes every assignment whose accept window
// passed without an answer. It is safe to send at any time and any number
// of times.
type ExpireStaleAssignmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireStaleAssignmentsCommand creates a sweep request. It carries no
// parameters: the handler's clock decides what is stale.
func NewExpireStaleAssignmentsCommand() ExpireStaleAssignmentsCommand {
	return ExpireStaleAssignmentsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ExpireStaleAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleAssignmentsCommandIsNotConstructed)
}
