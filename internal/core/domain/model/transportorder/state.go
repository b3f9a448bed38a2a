package transportorder

import (
	"fmt"
	"strings"

	"tms/internal/pkg/errs"
)

// State is the lifecycle state of a transport order. The numeric value is the
// state's rank: a transition may never lead to a lower rank.
//
//	CREATED ──┬──> INITIALIZED ──> INTERRUPTED ──> ONFAILURE ──> STARTED ──> FINISHED
//	          │         │               │               │           │
//	          └─────────┴───────────────┴───────────────┴───────────┴──> CANCELED
//
// Any forward jump along the chain is allowed once the order has been
// initialized. FINISHED and CANCELED are terminal.
type State int

const (
	// Unknown is the zero value and stands for an absent state.
	Unknown State = 0

	// Created is the initial state of every new order.
	Created State = 10

	// Initialized orders have a transport unit and a target and may be started.
	Initialized State = 20

	// Interrupted orders were stopped before completion and may be started again.
	Interrupted State = 30

	// OnFailure orders hit a problem; see TransportOrder.Problem.
	OnFailure State = 40

	// Started orders are being executed by a mover.
	Started State = 50

	// Canceled is terminal.
	Canceled State = 60

	// Finished is terminal; the unit arrived at its target.
	Finished State = 70
)

var stateNames = map[State]string{
	Created:     "CREATED",
	Initialized: "INITIALIZED",
	Interrupted: "INTERRUPTED",
	OnFailure:   "ONFAILURE",
	Started:     "STARTED",
	Canceled:    "CANCELED",
	Finished:    "FINISHED",
}

// States returns all valid states in ascending rank.
func States() []State {
	return []State{Created, Initialized, Interrupted, OnFailure, Started, Canceled, Finished}
}

// ParseState converts a state name (case-insensitive) into a State.
func ParseState(name string) (State, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for s, n := range stateNames {
		if n == normalized {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", name))
}

// Validate reports values outside the enumeration, including Unknown.
func (s State) Validate() error {
	if _, ok := stateNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", int(s)))
	}
	return nil
}

// String returns the state name, or UNKNOWN.
func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s State) IsTerminal() bool {
	return s == Finished || s == Canceled
}

// IsStartable reports whether an order in s may be picked up by a mover.
func (s State) IsStartable() bool {
	return s == Initialized || s == Interrupted
}

// ValidateTransition checks the state machine rules for moving from s to next.
// Completeness of the order is not checked here; see TransportOrder.SetState.
func (s State) ValidateTransition(next State) error {
	if next == Unknown {
		return newInvalidStateError(s, next, "new state must not be absent")
	}
	if err := next.Validate(); err != nil {
		return newInvalidStateError(s, next, "new state is not a known state")
	}
	if next < s {
		return newInvalidStateError(s, next, "turning back the state is not allowed")
	}
	if s.IsTerminal() {
		return newInvalidStateError(s, next, "order is already in a terminal state")
	}
	if s == Created && next != Initialized && next != Canceled {
		return newInvalidStateError(s, next, "order must be initialized or canceled after creation")
	}
	return nil
}
