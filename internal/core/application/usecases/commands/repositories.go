// Package commands contains the operations that modify transport orders.
// Every command is built through its constructor, validated by its handler and
// executed inside its own unit of work.
package commands

import (
	"context"

	"tms/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// TransportOrderRepoFactory provides the repository bound to a transaction.
	TransportOrderRepoFactory interface {
		TransportOrderRepository() ports.TransportOrderRepository
	}

	// TransportOrderUoW is the unit of work used by every handler.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.TransportOrderRepository()
	//   // ... load, mutate, update
	//
	//   err = uow.Commit(ctx)
	TransportOrderUoW interface {
		TxManager
		TransportOrderRepoFactory
	}

	TransportOrderUoWFactory interface {
		Create() TransportOrderUoW
	}
)
