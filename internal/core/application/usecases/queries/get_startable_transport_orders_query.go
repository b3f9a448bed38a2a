package queries

import (
	"errors"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/pkg/guard"
)

// ErrGetStartableTransportOrdersQueryIsNotConstructed is returned for a zero query.
var ErrGetStartableTransportOrdersQueryIsNotConstructed = errors.New(
	"GetStartableTransportOrdersQuery must be created via NewGetStartableTransportOrdersQuery constructor",
)

// GetStartableTransportOrdersQuery lists the orders of a transport unit that
// may be started next, best candidate first.
type GetStartableTransportOrdersQuery struct { //nolint:recvcheck //using for validation
	transportUnit kernel.Barcode
	guard         guard.ConstructorGuard
}

// NewGetStartableTransportOrdersQuery targets the given transport unit.
func NewGetStartableTransportOrdersQuery(transportUnit kernel.Barcode) (GetStartableTransportOrdersQuery, error) {
	if err := transportUnit.Validate(); err != nil {
		return GetStartableTransportOrdersQuery{}, err
	}
	return GetStartableTransportOrdersQuery{
		transportUnit: transportUnit,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate reports a query that was not built by its constructor.
func (q GetStartableTransportOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStartableTransportOrdersQueryIsNotConstructed)
}

// TransportUnit is the unit whose candidates are listed.
func (q GetStartableTransportOrdersQuery) TransportUnit() kernel.Barcode { return q.transportUnit }
