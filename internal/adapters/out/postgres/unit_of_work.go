// Package postgres provides the GORM-based storage of transport orders: the
// database connection, schema migration and the Unit of Work.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// run inside that transaction and report every written aggregate back to it.
// After a successful Commit the unit of work hands the domain events of those
// aggregates to the configured ports.EventPublisher.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger, clockwork.NewRealClock())
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.TransportOrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance belongs to a single goroutine.
package postgres

import (
	"context"

	"tms/internal/adapters/out/postgres/transportorderrepo"
	"tms/internal/core/domain/model/transportorder"
	"tms/internal/core/ports"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *zap.Logger
	clock     clockwork.Clock
}

// NewGormUnitOfWorkFactory creates units of work that publish events through publisher after commit.
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	publisher ports.EventPublisher,
	logger *zap.Logger,
	clock clockwork.Clock,
) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With(zap.String("component", "unit_of_work")),
		clock:     clock,
	}
}

// Create returns a fresh unit of work.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
		clock:     f.clock,
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// written in it.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	publisher ports.EventPublisher
	logger    *zap.Logger
	clock     clockwork.Clock

	tracked []*transportorder.TransportOrder
}

// Begin starts the transaction. Calling it twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	uow.tracked = nil
	return nil
}

// Commit commits the transaction and publishes the pending events of every
// tracked aggregate. Events are cleared from the aggregates once handed over;
// a publishing failure is logged and does not fail the commit.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.tracked = nil
		return err
	}

	uow.publishEvents(ctx)
	return nil
}

// Rollback discards the transaction. Without an active transaction, e.g. after
// Commit, it does nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = nil
	return err
}

// TransportOrderRepository returns a repository bound to the active
// transaction, or to the plain connection when no transaction is active.
func (uow *GormUnitOfWork) TransportOrderRepository() ports.TransportOrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return transportorderrepo.NewGormTransportOrderRepository(db, uow, uow.clock)
}

// TrackAggregate registers an order written in this unit of work. Tracking
// the same order twice has no effect.
func (uow *GormUnitOfWork) TrackAggregate(aggregate *transportorder.TransportOrder) {
	for _, t := range uow.tracked {
		if t == aggregate {
			return
		}
	}
	uow.tracked = append(uow.tracked, aggregate)
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	tracked := uow.tracked
	uow.tracked = nil

	var events []transportorder.StateChanged
	for _, aggregate := range tracked {
		events = append(events, aggregate.DomainEvents()...)
		aggregate.ClearDomainEvents()
	}
	if len(events) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.PublishStateChanged(ctx, events...); err != nil {
		uow.logger.Warn("failed to publish state changes",
			zap.Int("events", len(events)),
			zap.Error(err))
	}
}
