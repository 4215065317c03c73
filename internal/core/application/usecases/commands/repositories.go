// Package commands contains the operations that change distribution state.
// Every handler validates its command, runs in one unit of work and commits
// only when every precondition held; notifications go out after the commit.
package commands

import (
	"context"

	"distribution/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PreparationRepoFactory interface {
		PreparationRepository() ports.PreparationRepository
	}

	StaffRepoFactory interface {
		StaffRepository() ports.StaffRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// OrderUoW is used by commands that touch only the order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StaffUoW is used by courier registry commands.
	StaffUoW interface {
		TxManager
		StaffRepoFactory
	}

	StaffUoWFactory interface {
		Create() StaffUoW
	}

	// PreparationUoW spans an order and its checklist.
	PreparationUoW interface {
		TxManager
		OrderRepoFactory
		PreparationRepoFactory
	}

	PreparationUoWFactory interface {
		Create() PreparationUoW
	}

	// UoW spans orders, couriers and assignments.
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//
	//	// ... load, mutate through the dispatcher, update
	//
	//	return uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		StaffRepoFactory
		AssignmentRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
