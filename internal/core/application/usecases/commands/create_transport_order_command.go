package commands

import (
	"errors"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"
	"tms/internal/pkg/guard"
)

// ErrCreateTransportOrderCommandIsNotConstructed is returned for a zero command.
var ErrCreateTransportOrderCommandIsNotConstructed = errors.New(
	"CreateTransportOrderCommand must be created via NewCreateTransportOrderCommand constructor",
)

// CreateTransportOrderCommand requests a new transport order in state CREATED.
// All assignment fields are optional; empty strings are treated as absent and
// an empty priority selects NORMAL.
//
// Example:
//
//	cmd, err := NewCreateTransportOrderCommand("4711", "", "", "STOCK", "HIGH")
//	if err != nil {
//	    return fmt.Errorf("invalid transport order: %w", err)
//	}
//	id, err := handler.Handle(ctx, cmd)
type CreateTransportOrderCommand struct { //nolint:recvcheck //using for validation
	transportUnit       *kernel.Barcode
	sourceLocation      *kernel.LocationID
	targetLocation      *kernel.LocationID
	targetLocationGroup *kernel.LocationGroupName
	priority            transportorder.Priority

	guard guard.ConstructorGuard
}

// NewCreateTransportOrderCommand parses the raw request values and collects every invalid field.
func NewCreateTransportOrderCommand(
	transportUnit, sourceLocation, targetLocation, targetLocationGroup, priority string,
) (CreateTransportOrderCommand, error) {
	cmd := CreateTransportOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	var errUnit, errSource, errTarget, errGroup, errPriority error
	cmd.transportUnit, errUnit = optionalBarcode(transportUnit)
	cmd.sourceLocation, errSource = optionalLocationID(sourceLocation)
	cmd.targetLocation, errTarget = optionalLocationID(targetLocation)
	cmd.targetLocationGroup, errGroup = optionalLocationGroupName(targetLocationGroup)
	cmd.priority, errPriority = priorityOrDefault(priority)

	if err := errors.Join(errUnit, errSource, errTarget, errGroup, errPriority); err != nil {
		return CreateTransportOrderCommand{}, err
	}

	return cmd, nil
}

// Validate reports a command that was not built by its constructor.
func (c CreateTransportOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateTransportOrderCommandIsNotConstructed)
}

// TransportUnit is the unit to move, or nil.
func (c CreateTransportOrderCommand) TransportUnit() *kernel.Barcode { return c.transportUnit }

// SourceLocation is the pickup location, or nil.
func (c CreateTransportOrderCommand) SourceLocation() *kernel.LocationID { return c.sourceLocation }

// TargetLocation is the concrete destination, or nil.
func (c CreateTransportOrderCommand) TargetLocation() *kernel.LocationID { return c.targetLocation }

// TargetLocationGroup is the destination group, or nil.
func (c CreateTransportOrderCommand) TargetLocationGroup() *kernel.LocationGroupName {
	return c.targetLocationGroup
}

// Priority defaults to Normal when the request left it empty.
func (c CreateTransportOrderCommand) Priority() transportorder.Priority { return c.priority }
