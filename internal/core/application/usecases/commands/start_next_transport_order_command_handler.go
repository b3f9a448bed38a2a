package commands

import (
	"context"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"
	"tms/internal/core/domain/services"
)

// StartNextTransportOrderCommandHandler starts the next order of a transport
// unit using services.TransportOrderStarter.
//
// Example:
//
//	id, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrTransportUnitIsBusy):
//	    // the unit is still moving
//	case errors.Is(err, services.ErrNoStartableOrder):
//	    // nothing waiting for this unit
//	}
type StartNextTransportOrderCommandHandler struct {
	uowFactory TransportOrderUoWFactory
	starter    services.TransportOrderStarter
}

// NewStartNextTransportOrderCommandHandler wires the starter service to a unit of work factory.
func NewStartNextTransportOrderCommandHandler(
	uowFactory TransportOrderUoWFactory,
) StartNextTransportOrderCommandHandler {
	return StartNextTransportOrderCommandHandler{
		uowFactory: uowFactory,
		starter:    services.NewTransportOrderStarter(),
	}
}

// Handle returns the identity of the started order.
func (h StartNextTransportOrderCommandHandler) Handle(
	ctx context.Context,
	cmd StartNextTransportOrderCommand,
) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TransportOrderRepository()
	orders, err := repo.FindByTransportUnitInStates(ctx, cmd.TransportUnit(),
		transportorder.Initialized, transportorder.Interrupted, transportorder.Started)
	if err != nil {
		return kernel.UUID{}, err
	}

	started, err := h.starter.StartNext(orders)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = repo.Update(ctx, started); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return *started.ID(), nil
}
