package commands

import (
	"context"
)

// ChangeTransportOrderStateCommandHandler loads an order, applies the
// requested transition and stores it under optimistic locking.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, transportorder.ErrInvalidState):
//	    // transition not allowed from the current state
//	case errors.Is(err, transportorder.ErrIncompleteOrder):
//	    // unit or target missing
//	case errors.Is(err, errs.ErrVersionIsInvalid):
//	    // someone else changed the order first
//	}
type ChangeTransportOrderStateCommandHandler struct {
	uowFactory TransportOrderUoWFactory
}

// NewChangeTransportOrderStateCommandHandler builds the handler on top of a unit of work factory.
func NewChangeTransportOrderStateCommandHandler(
	uowFactory TransportOrderUoWFactory,
) ChangeTransportOrderStateCommandHandler {
	return ChangeTransportOrderStateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the transition. A request for the current state writes nothing.
func (h ChangeTransportOrderStateCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeTransportOrderStateCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TransportOrderRepository()
	order, err := repo.Get(ctx, cmd.ID())
	if err != nil {
		return err
	}

	if err = checkVersion(cmd.ExpectedVersion(), order); err != nil {
		return err
	}

	unchanged := order.State() == cmd.State()
	if err = order.SetState(cmd.State()); err != nil {
		return err
	}
	if unchanged {
		return nil
	}

	if err = repo.Update(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
