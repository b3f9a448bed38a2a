// Package ports defines the contracts between the transport order core and
// its infrastructure: storage, transactions and event delivery.
package ports

import (
	"context"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"
)

// TransportOrderRepository defines the persistence contract for transport
// order aggregates. Implementations own identity, version and the update
// timestamp and report them back through TransportOrder.MarkPersisted.
type TransportOrderRepository interface {
	// Add persists a new order. Orders that already carry an identity are
	// rejected. The stored order starts at version 0.
	Add(ctx context.Context, aggregate *transportorder.TransportOrder) error

	// Update persists changes to an existing order if the stored version still
	// equals aggregate.Version(). It returns an errs.ObjectNotFoundError if the
	// order is gone and an errs.VersionIsInvalidError if another writer was
	// faster.
	Update(ctx context.Context, aggregate *transportorder.TransportOrder) error

	// Get returns the order with the given identity or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*transportorder.TransportOrder, error)

	// FindAll returns every order, oldest first.
	FindAll(ctx context.Context) ([]*transportorder.TransportOrder, error)

	// FindByTransportUnit returns the orders of a transport unit, oldest first.
	FindByTransportUnit(ctx context.Context, unit kernel.Barcode) ([]*transportorder.TransportOrder, error)

	// FindByTransportUnitInStates returns the orders of a transport unit that are
	// in one of the given states, oldest first.
	FindByTransportUnitInStates(
		ctx context.Context,
		unit kernel.Barcode,
		states ...transportorder.State,
	) ([]*transportorder.TransportOrder, error)

	// FindStartableForTransportUnit returns the INITIALIZED and INTERRUPTED
	// orders of a transport unit ordered by priority (highest first), then by
	// creation date (oldest first).
	FindStartableForTransportUnit(ctx context.Context, unit kernel.Barcode) ([]*transportorder.TransportOrder, error)

	// FindTransportUnitsWithStartableOrders returns the distinct transport units
	// that have at least one startable order.
	FindTransportUnitsWithStartableOrders(ctx context.Context) ([]kernel.Barcode, error)
}
