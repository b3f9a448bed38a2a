package commands

import (
	"errors"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"
	"tms/internal/pkg/guard"
)

// ErrChangeTransportOrderStateCommandIsNotConstructed is returned for a zero command.
var ErrChangeTransportOrderStateCommandIsNotConstructed = errors.New(
	"ChangeTransportOrderStateCommand must be created via NewChangeTransportOrderStateCommand constructor",
)

// ChangeTransportOrderStateCommand requests a state transition. When
// expectedVersion is set, the transition is only applied to that version of
// the order.
type ChangeTransportOrderStateCommand struct { //nolint:recvcheck //using for validation
	id              kernel.UUID
	state           transportorder.State
	expectedVersion *int64

	guard guard.ConstructorGuard
}

// NewChangeTransportOrderStateCommand only checks the inputs themselves; the
// legality of the transition is decided by the order.
func NewChangeTransportOrderStateCommand(
	id kernel.UUID,
	state transportorder.State,
	expectedVersion *int64,
) (ChangeTransportOrderStateCommand, error) {
	cmd := ChangeTransportOrderStateCommand{
		id:              id,
		state:           state,
		expectedVersion: expectedVersion,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		validateExpectedVersion(expectedVersion),
	); err != nil {
		return ChangeTransportOrderStateCommand{}, err
	}

	return cmd, nil
}

// Validate reports a command that was not built by its constructor.
func (c ChangeTransportOrderStateCommand) Validate() error {
	return c.guard.Validate(ErrChangeTransportOrderStateCommandIsNotConstructed)
}

// ID identifies the order to change.
func (c ChangeTransportOrderStateCommand) ID() kernel.UUID { return c.id }

// State is the requested target state.
func (c ChangeTransportOrderStateCommand) State() transportorder.State { return c.state }

// ExpectedVersion is the version the caller last saw, or nil to skip the check.
func (c ChangeTransportOrderStateCommand) ExpectedVersion() *int64 { return c.expectedVersion }
