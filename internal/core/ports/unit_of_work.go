package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Aggregates written through
// its repository are tracked, and their domain events are handed to the
// EventPublisher once Commit succeeded.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit commits the transaction and then publishes pending domain events.
	// A publishing failure does not undo the commit; it is logged.
	Commit(ctx context.Context) error

	// Rollback is a no-op after a successful Commit, so it can always be deferred.
	Rollback(ctx context.Context) error

	// TransportOrderRepository returns a repository bound to the transaction
	// started by Begin.
	TransportOrderRepository() TransportOrderRepository
}
