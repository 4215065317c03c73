package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrCreateDeliveryStaffCommandIsNotConstructed reports a CreateDeliveryStaffCommand built without NewCreateDeliveryStaffCommand.
var ErrCreateDeliveryStaffCommandIsNotConstructed = errors.New(
	"CreateDeliveryStaffCommand must be created via NewCreateDeliveryStaffCommand constructor",
)

// CreateDeliveryStaffCommand registers a courier for one or more branches.
type CreateDeliveryStaffCommand struct {
	staffID   kernel.UUID
	name      string
	phone     string
	branchIDs []kernel.UUID
	maxOrders int

	guard guard.ConstructorGuard
}

// NewCreateDeliveryStaffCommand only checks the id; the remaining fields are
// validated by the DeliveryStaff constructor.
func NewCreateDeliveryStaffCommand(
	staffID kernel.UUID,
	name, phone string,
	branchIDs []kernel.UUID,
	maxOrders int,
) (CreateDeliveryStaffCommand, error) {
	if err := staffID.Validate(); err != nil {
		return CreateDeliveryStaffCommand{}, err
	}
	return CreateDeliveryStaffCommand{
		staffID:   staffID,
		name:      name,
		phone:     phone,
		branchIDs: branchIDs,
		maxOrders: maxOrders,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryStaffCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryStaffCommandIsNotConstructed)
}

// StaffID returns the identifier of the new courier.
func (c CreateDeliveryStaffCommand) StaffID() kernel.UUID { return c.staffID }

// Name returns the courier's display name.
func (c CreateDeliveryStaffCommand) Name() string { return c.name }

// Phone returns the courier's contact number.
func (c CreateDeliveryStaffCommand) Phone() string { return c.phone }

// BranchIDs returns the branches the courier serves.
func (c CreateDeliveryStaffCommand) BranchIDs() []kernel.UUID { return c.branchIDs }

// MaxOrders returns the number of orders the courier may carry at once.
func (c CreateDeliveryStaffCommand) MaxOrders() int { return c.maxOrders }
