package transportorder

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidState matches every InvalidStateError.
	ErrInvalidState = errors.New("invalid state transition")

	// ErrIncompleteOrder matches every IncompleteOrderError.
	ErrIncompleteOrder = errors.New("transport order is incomplete")

	// ErrTransportOrderIsNotConstructed is returned by Validate for orders that were
	// not built by NewTransportOrder or RestoreTransportOrder.
	ErrTransportOrderIsNotConstructed = errors.New(
		"TransportOrder must be created via NewTransportOrder or RestoreTransportOrder")
)

// InvalidStateError is returned when a transition is illegal: the new state is
// absent, lower than the current one, leaves a terminal state, or skips the
// initialization of a created order.
type InvalidStateError struct {
	From   State
	To     State
	Reason string
}

func newInvalidStateError(from, to State, reason string) *InvalidStateError {
	return &InvalidStateError{From: from, To: to, Reason: reason}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s from %s to %s: %s", ErrInvalidState, e.From, e.To, e.Reason)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// IncompleteOrderError is returned when an order is to be initialized without
// a transport unit or without any target.
type IncompleteOrderError struct {
	Missing []string
}

func (e *IncompleteOrderError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrIncompleteOrder, strings.Join(e.Missing, ", "))
}

func (e *IncompleteOrderError) Unwrap() error {
	return ErrIncompleteOrder
}
