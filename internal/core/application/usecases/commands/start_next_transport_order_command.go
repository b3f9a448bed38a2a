package commands

import (
	"errors"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/pkg/guard"
)

// ErrStartNextTransportOrderCommandIsNotConstructed is returned for a zero command.
var ErrStartNextTransportOrderCommandIsNotConstructed = errors.New(
	"StartNextTransportOrderCommand must be created via NewStartNextTransportOrderCommand constructor",
)

// StartNextTransportOrderCommand asks to start the next waiting order of a
// transport unit.
type StartNextTransportOrderCommand struct { //nolint:recvcheck //using for validation
	transportUnit kernel.Barcode

	guard guard.ConstructorGuard
}

// NewStartNextTransportOrderCommand targets the given transport unit.
func NewStartNextTransportOrderCommand(transportUnit kernel.Barcode) (StartNextTransportOrderCommand, error) {
	if err := transportUnit.Validate(); err != nil {
		return StartNextTransportOrderCommand{}, err
	}

	return StartNextTransportOrderCommand{
		transportUnit: transportUnit,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate reports a command that was not built by its constructor.
func (c StartNextTransportOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartNextTransportOrderCommandIsNotConstructed)
}

// TransportUnit is the unit whose next order should start.
func (c StartNextTransportOrderCommand) TransportUnit() kernel.Barcode { return c.transportUnit }
