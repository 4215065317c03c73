package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrSetStaffAvailabilityCommandIsNotConstructed reports a SetStaffAvailabilityCommand built without NewSetStaffAvailabilityCommand.
var ErrSetStaffAvailabilityCommandIsNotConstructed = errors.New(
	"SetStaffAvailabilityCommand must be created via NewSetStaffAvailabilityCommand constructor",
)

// SetStaffAvailabilityCommand puts a courier on or off shift.
type SetStaffAvailabilityCommand struct {
	staffID     kernel.UUID
	isAvailable bool

	guard guard.ConstructorGuard
}

// NewSetStaffAvailabilityCommand creates the command for the given courier.
func NewSetStaffAvailabilityCommand(staffID kernel.UUID, isAvailable bool) (SetStaffAvailabilityCommand, error) {
	if err := staffID.Validate(); err != nil {
		return SetStaffAvailabilityCommand{}, err
	}
	return SetStaffAvailabilityCommand{
		staffID:     staffID,
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetStaffAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetStaffAvailabilityCommandIsNotConstructed)
}

// StaffID returns the courier.
func (c SetStaffAvailabilityCommand) StaffID() kernel.UUID { return c.staffID }

// IsAvailable returns the requested availability.
func (c SetStaffAvailabilityCommand) IsAvailable() bool { return c.isAvailable }
