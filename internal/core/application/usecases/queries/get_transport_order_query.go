package queries

import (
	"errors"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/pkg/guard"
)

// ErrGetTransportOrderQueryIsNotConstructed is returned for a zero query.
var ErrGetTransportOrderQueryIsNotConstructed = errors.New(
	"GetTransportOrderQuery must be created via NewGetTransportOrderQuery constructor",
)

// GetTransportOrderQuery reads a single order by identity.
type GetTransportOrderQuery struct { //nolint:recvcheck //using for validation
	id    kernel.UUID
	guard guard.ConstructorGuard
}

// NewGetTransportOrderQuery looks up a single order by id.
func NewGetTransportOrderQuery(id kernel.UUID) (GetTransportOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetTransportOrderQuery{}, err
	}
	return GetTransportOrderQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports a query that was not built by its constructor.
func (q GetTransportOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetTransportOrderQueryIsNotConstructed)
}

// ID identifies the order.
func (q GetTransportOrderQuery) ID() kernel.UUID { return q.id }
