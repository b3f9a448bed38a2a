package commands

import (
	"context"

	"tms/internal/core/domain/model/kernel"

	"github.com/jonboulle/clockwork"
)

// ReportProblemCommandHandler replaces the last problem of an order. The state
// is not changed; moving the order to ONFAILURE is a separate transition.
type ReportProblemCommandHandler struct {
	uowFactory TransportOrderUoWFactory
	clock      clockwork.Clock
}

// NewReportProblemCommandHandler builds the handler on top of a unit of work factory.
func NewReportProblemCommandHandler(
	uowFactory TransportOrderUoWFactory,
	clock clockwork.Clock,
) ReportProblemCommandHandler {
	return ReportProblemCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle attaches the problem to the order and stores it.
func (h ReportProblemCommandHandler) Handle(ctx context.Context, cmd ReportProblemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	occurred := cmd.Occurred()
	if occurred.IsZero() {
		occurred = h.clock.Now().UTC()
	}
	problem, err := kernel.NewProblem(cmd.Message(), cmd.MessageNo(), occurred)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = order.SetProblem(&problem); err != nil {
		return err
	}

	if err = repo.Update(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
