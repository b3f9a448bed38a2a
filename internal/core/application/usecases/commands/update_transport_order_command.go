package commands

import (
	"errors"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"
	"tms/internal/pkg/errs"
	"tms/internal/pkg/guard"
)

// ErrUpdateTransportOrderCommandIsNotConstructed is returned for a zero command.
var ErrUpdateTransportOrderCommandIsNotConstructed = errors.New(
	"UpdateTransportOrderCommand must be created via NewUpdateTransportOrderCommand constructor",
)

// TransportOrderChanges lists the assignment fields to change. A nil field is
// left as is; an empty string clears the field. Priority cannot be cleared.
type TransportOrderChanges struct {
	TransportUnit       *string
	SourceLocation      *string
	TargetLocation      *string
	TargetLocationGroup *string
	Priority            *string
}

// UpdateTransportOrderCommand changes assignment fields of an order. It does
// not touch the state: the fields may be changed in every state.
type UpdateTransportOrderCommand struct { //nolint:recvcheck //using for validation
	id              kernel.UUID
	expectedVersion *int64

	transportUnit       field[kernel.Barcode]
	sourceLocation      field[kernel.LocationID]
	targetLocation      field[kernel.LocationID]
	targetLocationGroup field[kernel.LocationGroupName]
	priority            *transportorder.Priority

	guard guard.ConstructorGuard
}

// field is a patch value: set reports whether it is part of the change, a nil
// value clears it.
type field[T any] struct {
	set   bool
	value *T
}

func patch[T any](raw *string, parse func(string) (*T, error)) (field[T], error) {
	if raw == nil {
		return field[T]{}, nil
	}
	v, err := parse(*raw)
	if err != nil {
		return field[T]{}, err
	}
	return field[T]{set: true, value: v}, nil
}

// NewUpdateTransportOrderCommand parses the fields present in the patch and collects every invalid one.
func NewUpdateTransportOrderCommand(
	id kernel.UUID,
	changes TransportOrderChanges,
	expectedVersion *int64,
) (UpdateTransportOrderCommand, error) {
	cmd := UpdateTransportOrderCommand{
		id:              id,
		expectedVersion: expectedVersion,
		guard:           guard.NewConstructorGuard(),
	}

	var errUnit, errSource, errTarget, errGroup, errPriority error
	cmd.transportUnit, errUnit = patch(changes.TransportUnit, optionalBarcode)
	cmd.sourceLocation, errSource = patch(changes.SourceLocation, optionalLocationID)
	cmd.targetLocation, errTarget = patch(changes.TargetLocation, optionalLocationID)
	cmd.targetLocationGroup, errGroup = patch(changes.TargetLocationGroup, optionalLocationGroupName)
	if changes.Priority != nil {
		var p transportorder.Priority
		if p, errPriority = transportorder.ParsePriority(*changes.Priority); errPriority == nil {
			cmd.priority = &p
		}
	}

	if err := errors.Join(
		id.Validate(),
		validateExpectedVersion(expectedVersion),
		errUnit, errSource, errTarget, errGroup, errPriority,
	); err != nil {
		return UpdateTransportOrderCommand{}, err
	}

	if cmd.IsEmpty() {
		return UpdateTransportOrderCommand{}, errs.NewValueIsRequiredError("at least one field to change")
	}

	return cmd, nil
}

// Validate reports a command that was not built by its constructor.
func (c UpdateTransportOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTransportOrderCommandIsNotConstructed)
}

// ID identifies the order to patch.
func (c UpdateTransportOrderCommand) ID() kernel.UUID { return c.id }

// ExpectedVersion is the version the caller last saw, or nil to skip the check.
func (c UpdateTransportOrderCommand) ExpectedVersion() *int64 { return c.expectedVersion }

// IsEmpty reports whether the command changes nothing.
func (c UpdateTransportOrderCommand) IsEmpty() bool {
	return !c.transportUnit.set && !c.sourceLocation.set && !c.targetLocation.set &&
		!c.targetLocationGroup.set && c.priority == nil
}

// ApplyTo writes the requested changes to order.
func (c UpdateTransportOrderCommand) ApplyTo(order *transportorder.TransportOrder) error {
	var results []error
	if c.transportUnit.set {
		results = append(results, order.SetTransportUnit(c.transportUnit.value))
	}
	if c.sourceLocation.set {
		results = append(results, order.SetSourceLocation(c.sourceLocation.value))
	}
	if c.targetLocation.set {
		results = append(results, order.SetTargetLocation(c.targetLocation.value))
	}
	if c.targetLocationGroup.set {
		results = append(results, order.SetTargetLocationGroup(c.targetLocationGroup.value))
	}
	if c.priority != nil {
		results = append(results, order.SetPriority(*c.priority))
	}
	return errors.Join(results...)
}
