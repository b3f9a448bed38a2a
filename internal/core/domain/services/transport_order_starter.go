package services

import (
	"errors"
	"fmt"
	"slices"

	"tms/internal/core/domain/model/transportorder"
)

var (
	// ErrTransportUnitIsBusy is returned when the unit already has a started order.
	ErrTransportUnitIsBusy = errors.New("transport unit already has a started transport order")

	// ErrNoStartableOrder is returned when none of the given orders may be started.
	ErrNoStartableOrder = errors.New("no startable transport order")
)

// TransportOrderStarter starts the next transport order of a single transport
// unit.
//
// Business rules:
//   - At most one order per transport unit is STARTED
//   - Only INITIALIZED and INTERRUPTED orders are started
//   - Higher priority wins; among equal priorities the oldest order wins
//
// Example usage:
//
//	starter := services.NewTransportOrderStarter()
//	started, err := starter.StartNext(ordersOfUnit)
//	if errors.Is(err, services.ErrTransportUnitIsBusy) {
//	    // try again after the running order finished
//	}
type TransportOrderStarter struct{}

// NewTransportOrderStarter returns the stateless starter service.
func NewTransportOrderStarter() TransportOrderStarter {
	return TransportOrderStarter{}
}

// StartNext starts the best candidate among orders, which must all belong to
// the same transport unit, and returns it. Orders in other states are ignored
// except for STARTED ones, which make the unit busy.
func (s TransportOrderStarter) StartNext(orders []*transportorder.TransportOrder) (*transportorder.TransportOrder, error) {
	var candidates []*transportorder.TransportOrder
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		switch {
		case o.State() == transportorder.Started:
			return nil, fmt.Errorf("%w: %s", ErrTransportUnitIsBusy, describe(o))
		case o.State().IsStartable():
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoStartableOrder
	}

	slices.SortStableFunc(candidates, ComparePriority)
	next := candidates[0]
	if err := next.SetState(transportorder.Started); err != nil {
		return nil, err
	}
	return next, nil
}

// ComparePriority orders transport orders by priority descending, then by
// creation date ascending.
func ComparePriority(a, b *transportorder.TransportOrder) int {
	if a.Priority() != b.Priority() {
		return int(b.Priority()) - int(a.Priority())
	}
	return a.CreationDate().Compare(b.CreationDate())
}

func describe(o *transportorder.TransportOrder) string {
	if id := o.ID(); id != nil {
		return id.String()
	}
	return "unsaved order"
}
