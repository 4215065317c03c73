package commands

import (
	"context"
	"errors"
	"fmt"

	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/ports"
)

// ErrAssignmentBelongsToAnotherCourier is returned when a courier acts on an
// assignment that is not theirs.
var ErrAssignmentBelongsToAnotherCourier = errors.New("assignment belongs to another courier")

// assignmentTarget addresses the current assignment of an order. When
// courierID is set only that courier may act on it.
type assignmentTarget struct {
	orderID   kernel.UUID
	courierID *kernel.UUID
}

func newAssignmentTarget(orderID kernel.UUID, courierID *kernel.UUID) (assignmentTarget, error) {
	if err := orderID.Validate(); err != nil {
		return assignmentTarget{}, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return assignmentTarget{}, err
		}
	}
	return assignmentTarget{orderID: orderID, courierID: courierID}, nil
}

// OrderID returns the order whose active assignment is targeted.
func (t assignmentTarget) OrderID() kernel.UUID { return t.orderID }

// CourierID returns the acting courier, if the caller is one.
func (t assignmentTarget) CourierID() (kernel.UUID, bool) {
	if t.courierID == nil {
		return kernel.UUID{}, false
	}
	return *t.courierID, true
}

// load returns the latest assignment of the order. Earlier assignments are
// always finished, so the latest one is the active one whenever any is.
func (t assignmentTarget) load(ctx context.Context, repo ports.AssignmentRepository) (*assignment.Assignment, error) {
	a, err := repo.GetLatestByOrder(ctx, t.orderID)
	if err != nil {
		return nil, err
	}
	if courierID, ok := t.CourierID(); ok && !a.StaffID().IsEqual(courierID) {
		return nil, fmt.Errorf("%w: order %s", ErrAssignmentBelongsToAnotherCourier, t.orderID)
	}
	return a, nil
}
