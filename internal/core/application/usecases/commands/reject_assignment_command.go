package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrRejectAssignmentCommandIsNotConstructed reports a RejectAssignmentCommand built without NewRejectAssignmentCommand.
var ErrRejectAssignmentCommandIsNotConstructed = errors.New(
	"RejectAssignmentCommand must be created via NewRejectAssignmentCommand constructor",
)

// RejectAssignmentCommand is the courier declining an assignment. The reason
// is free text kept for audit.
type RejectAssignmentCommand struct {
	assignmentTarget
	reason string

	guard guard.ConstructorGuard
}

// NewRejectAssignmentCommand creates the command. The reason may be empty.
func NewRejectAssignmentCommand(orderID kernel.UUID, courierID *kernel.UUID, reason string) (RejectAssignmentCommand, error) {
	target, err := newAssignmentTarget(orderID, courierID)
	if err != nil {
		return RejectAssignmentCommand{}, err
	}
	return RejectAssignmentCommand{
		assignmentTarget: target,
		reason:           reason,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRejectAssignmentCommandIsNotConstructed)
}

// Reason returns the courier's explanation.
func (c RejectAssignmentCommand) Reason() string { return c.reason }
