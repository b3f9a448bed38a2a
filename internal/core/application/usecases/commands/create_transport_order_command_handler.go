package commands

import (
	"context"
	"errors"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"

	"github.com/jonboulle/clockwork"
)

// CreateTransportOrderCommandHandler creates transport orders in state CREATED
// and returns the identity assigned by the repository.
type CreateTransportOrderCommandHandler struct {
	uowFactory TransportOrderUoWFactory
	clock      clockwork.Clock
}

// NewCreateTransportOrderCommandHandler builds the handler with the clock stamped on new orders.
func NewCreateTransportOrderCommandHandler(
	uowFactory TransportOrderUoWFactory,
	clock clockwork.Clock,
) CreateTransportOrderCommandHandler {
	return CreateTransportOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle stores a new CREATED order and returns its identifier.
func (h CreateTransportOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateTransportOrderCommand,
) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	order := transportorder.NewTransportOrder(transportorder.WithClock(h.clock))
	if err := errors.Join(
		order.SetTransportUnit(cmd.TransportUnit()),
		order.SetSourceLocation(cmd.SourceLocation()),
		order.SetTargetLocation(cmd.TargetLocation()),
		order.SetTargetLocationGroup(cmd.TargetLocationGroup()),
		order.SetPriority(cmd.Priority()),
	); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.TransportOrderRepository().Add(ctx, order); err != nil {
		return kernel.UUID{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	id := order.ID()
	if id == nil {
		return kernel.UUID{}, errors.New("transport order was stored without identity")
	}
	return *id, nil
}
