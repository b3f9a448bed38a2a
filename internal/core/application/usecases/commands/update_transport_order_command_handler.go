package commands

import (
	"context"
)

// UpdateTransportOrderCommandHandler changes the assignment fields of an
// existing order under optimistic locking.
type UpdateTransportOrderCommandHandler struct {
	uowFactory TransportOrderUoWFactory
}

// NewUpdateTransportOrderCommandHandler builds the handler on top of a unit of work factory.
func NewUpdateTransportOrderCommandHandler(uowFactory TransportOrderUoWFactory) UpdateTransportOrderCommandHandler {
	return UpdateTransportOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the patch under optimistic locking.
func (h UpdateTransportOrderCommandHandler) Handle(ctx context.Context, cmd UpdateTransportOrderCommand) error {
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

	if err = cmd.ApplyTo(order); err != nil {
		return err
	}

	if err = repo.Update(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
