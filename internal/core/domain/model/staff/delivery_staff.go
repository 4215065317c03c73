package staff

import (
	"errors"
	"fmt"
	"strings"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

// Validation errors of the courier registry.
var (
	ErrNameIsRequired                = errs.NewValueIsRequiredError("name")
	ErrBranchesAreRequired           = errs.NewValueIsRequiredError("branchIds")
	ErrDeliveryStaffIsNotConstructed = errors.New("DeliveryStaff must be created via NewDeliveryStaff constructor")
)

// DeliveryStaff is the aggregate root for one courier.
//
// currentOrders stays within [0, maxOrders]. A courier at capacity is not
// offered for new assignments even when flagged available.
type DeliveryStaff struct {
	id            kernel.UUID
	name          string
	phone         string
	branchIDs     []kernel.UUID
	isAvailable   bool
	maxOrders     int
	currentOrders int
	version       int

	guard guard.ConstructorGuard
}

// NewDeliveryStaff registers an available courier with no open assignments.
func NewDeliveryStaff(id kernel.UUID, name, phone string, branchIDs []kernel.UUID, maxOrders int) (*DeliveryStaff, error) {
	s := &DeliveryStaff{
		phone:       phone,
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setBranchIDs(branchIDs),
		s.setMaxOrders(maxOrders),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreDeliveryStaff rebuilds a courier read from storage.
func RestoreDeliveryStaff(
	id kernel.UUID,
	name, phone string,
	branchIDs []kernel.UUID,
	isAvailable bool,
	maxOrders, currentOrders, version int,
) (*DeliveryStaff, error) {
	s := &DeliveryStaff{
		phone:       phone,
		isAvailable: isAvailable,
		version:     version,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setBranchIDs(branchIDs),
		s.setMaxOrders(maxOrders),
	); err != nil {
		return nil, err
	}
	if currentOrders < 0 || currentOrders > s.maxOrders {
		return nil, errs.NewValueIsOutOfRangeError("currentOrders", currentOrders, 0, s.maxOrders)
	}
	s.currentOrders = currentOrders

	return s, nil
}

// Validate reports whether the courier was built by a constructor.
func (s *DeliveryStaff) Validate() error {
	if s == nil {
		return ErrDeliveryStaffIsNotConstructed
	}
	return s.guard.Validate(ErrDeliveryStaffIsNotConstructed)
}

// IsEqual compares couriers by identity.
func (s *DeliveryStaff) IsEqual(other *DeliveryStaff) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID identifies the courier.
func (s *DeliveryStaff) ID() kernel.UUID { return s.id }

// Name is the display name of the courier.
func (s *DeliveryStaff) Name() string { return s.name }

// Phone is the courier contact number.
func (s *DeliveryStaff) Phone() string { return s.phone }

// IsAvailable is the courier's own on-shift flag.
func (s *DeliveryStaff) IsAvailable() bool { return s.isAvailable }

// MaxOrders is how many active assignments the courier may hold.
func (s *DeliveryStaff) MaxOrders() int { return s.maxOrders }

// CurrentOrders counts the active assignments the courier holds.
func (s *DeliveryStaff) CurrentOrders() int { return s.currentOrders }

// Version is the optimistic-lock counter read from storage.
func (s *DeliveryStaff) Version() int { return s.version }

// BranchIDs returns a copy of the branches the courier serves.
func (s *DeliveryStaff) BranchIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), s.branchIDs...)
}

// ServesBranch reports whether the courier delivers for branchID.
func (s *DeliveryStaff) ServesBranch(branchID kernel.UUID) bool {
	for _, id := range s.branchIDs {
		if id.IsEqual(branchID) {
			return true
		}
	}
	return false
}

// HasCapacity reports a free slot, regardless of availability.
func (s *DeliveryStaff) HasCapacity() bool {
	return s.currentOrders < s.maxOrders
}

// CanTake reports why the courier cannot receive a new assignment for an
// order of branchID, or nil if it can.
func (s *DeliveryStaff) CanTake(branchID kernel.UUID) error {
	switch {
	case !s.isAvailable:
		return errs.NewStaffUnavailableError(s.id.String(), "not available")
	case !s.ServesBranch(branchID):
		return errs.NewStaffUnavailableError(s.id.String(), fmt.Sprintf("does not serve branch %s", branchID))
	case !s.HasCapacity():
		return errs.NewStaffUnavailableError(s.id.String(),
			fmt.Sprintf("at capacity (%d/%d)", s.currentOrders, s.maxOrders))
	}
	return nil
}

// IncrementLoad reserves one slot for a new assignment.
func (s *DeliveryStaff) IncrementLoad(branchID kernel.UUID) error {
	if err := s.CanTake(branchID); err != nil {
		return err
	}
	s.currentOrders++
	return nil
}

// DecrementLoad releases the slot of an assignment that reached a terminal
// status. Releasing with no open slot means the release was already applied.
func (s *DeliveryStaff) DecrementLoad() error {
	if s.currentOrders == 0 {
		return errs.NewValueIsOutOfRangeError("currentOrders", -1, 0, s.maxOrders)
	}
	s.currentOrders--
	return nil
}

// SetAvailability toggles whether the courier is on shift. Open assignments
// are not affected.
func (s *DeliveryStaff) SetAvailability(available bool) {
	s.isAvailable = available
}

func (s *DeliveryStaff) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *DeliveryStaff) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *DeliveryStaff) setBranchIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return ErrBranchesAreRequired
	}
	set := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("branchIds", err)
		}
		seen := false
		for _, existing := range set {
			if existing.IsEqual(id) {
				seen = true
				break
			}
		}
		if !seen {
			set = append(set, id)
		}
	}
	s.branchIDs = set
	return nil
}

func (s *DeliveryStaff) setMaxOrders(maxOrders int) error {
	if maxOrders <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxOrders", fmt.Errorf("%d is not greater than 0", maxOrders))
	}
	s.maxOrders = maxOrders
	return nil
}
