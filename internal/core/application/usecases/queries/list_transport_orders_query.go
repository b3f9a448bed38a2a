package queries

import (
	"errors"
	"slices"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"
	"tms/internal/pkg/guard"
)

// ErrListTransportOrdersQueryIsNotConstructed is returned for a zero query.
var ErrListTransportOrdersQueryIsNotConstructed = errors.New(
	"ListTransportOrdersQuery must be created via NewListTransportOrdersQuery constructor",
)

// ListTransportOrdersQuery lists orders, optionally restricted to one
// transport unit and to a set of states.
//
// Example:
//
//	unit, _ := kernel.NewBarcode("4711")
//	query, err := NewListTransportOrdersQuery(&unit, transportorder.Initialized, transportorder.Started)
type ListTransportOrdersQuery struct { //nolint:recvcheck //using for validation
	transportUnit *kernel.Barcode
	states        []transportorder.State
	guard         guard.ConstructorGuard
}

// NewListTransportOrdersQuery filters by unit and states. Nil and empty filters match everything.
func NewListTransportOrdersQuery(
	transportUnit *kernel.Barcode,
	states ...transportorder.State,
) (ListTransportOrdersQuery, error) {
	q := ListTransportOrdersQuery{guard: guard.NewConstructorGuard()}

	if transportUnit != nil {
		if err := transportUnit.Validate(); err != nil {
			return ListTransportOrdersQuery{}, err
		}
		unit := *transportUnit
		q.transportUnit = &unit
	}

	var invalid []error
	for _, s := range states {
		if err := s.Validate(); err != nil {
			invalid = append(invalid, err)
		}
	}
	if err := errors.Join(invalid...); err != nil {
		return ListTransportOrdersQuery{}, err
	}
	q.states = slices.Clone(states)

	return q, nil
}

// Validate reports a query that was not built by its constructor.
func (q ListTransportOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListTransportOrdersQueryIsNotConstructed)
}

// TransportUnit is the unit filter, or nil.
func (q ListTransportOrdersQuery) TransportUnit() *kernel.Barcode { return q.transportUnit }

// States is the state filter. Empty means any state.
func (q ListTransportOrdersQuery) States() []transportorder.State { return q.states }
