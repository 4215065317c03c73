package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrTogglePreparationItemCommandIsNotConstructed reports a TogglePreparationItemCommand built without NewTogglePreparationItemCommand.
var ErrTogglePreparationItemCommandIsNotConstructed = errors.New(
	"TogglePreparationItemCommand must be created via NewTogglePreparationItemCommand constructor",
)

// TogglePreparationItemCommand sets the completion flag of one checklist
// item. A nil notes pointer leaves the notes unchanged.
type TogglePreparationItemCommand struct {
	itemID     kernel.UUID
	isPrepared bool
	notes      *string

	guard guard.ConstructorGuard
}

// NewTogglePreparationItemCommand creates the command. Notes may be nil to
// keep the current notes.
func NewTogglePreparationItemCommand(
	itemID kernel.UUID,
	isPrepared bool,
	notes *string,
) (TogglePreparationItemCommand, error) {
	if err := itemID.Validate(); err != nil {
		return TogglePreparationItemCommand{}, err
	}
	return TogglePreparationItemCommand{
		itemID:     itemID,
		isPrepared: isPrepared,
		notes:      notes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TogglePreparationItemCommand) Validate() error {
	return c.guard.Validate(ErrTogglePreparationItemCommandIsNotConstructed)
}

// ItemID returns the checklist item.
func (c TogglePreparationItemCommand) ItemID() kernel.UUID { return c.itemID }

// IsPrepared returns the requested state of the item.
func (c TogglePreparationItemCommand) IsPrepared() bool { return c.isPrepared }

// Notes returns the picker's notes, nil when unchanged.
func (c TogglePreparationItemCommand) Notes() *string { return c.notes }
