package transportorderrepo

import (
	"context"
	"errors"
	"fmt"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"
	"tms/internal/pkg/errs"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// aggregateTracker is implemented by the unit of work to collect the orders
// whose domain events are published after commit.
type aggregateTracker interface {
	TrackAggregate(aggregate *transportorder.TransportOrder)
}

// GormTransportOrderRepository implements ports.TransportOrderRepository using GORM.
type GormTransportOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	clock   clockwork.Clock
}

// NewGormTransportOrderRepository stores orders through db and registers changed aggregates with tracker.
func NewGormTransportOrderRepository(
	db *gorm.DB,
	tracker aggregateTracker,
	clock clockwork.Clock,
) *GormTransportOrderRepository {
	return &GormTransportOrderRepository{
		db:      db,
		tracker: tracker,
		clock:   clock,
	}
}

// Add inserts a new order, assigning identity, version 0 and the update time.
func (r *GormTransportOrderRepository) Add(ctx context.Context, aggregate *transportorder.TransportOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.IsNew() {
		return errs.NewValueIsInvalidErrorWithCause("transport order",
			fmt.Errorf("order %s is already persisted", aggregate.ID()))
	}

	id := kernel.NewUUID()
	now := r.clock.Now().UTC()
	dto := fromDomain(aggregate, id, 0, now)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := aggregate.MarkPersisted(id, 0, now); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update writes all fields of the order if the stored version still matches,
// incrementing the version and refreshing the update time.
func (r *GormTransportOrderRepository) Update(ctx context.Context, aggregate *transportorder.TransportOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	id := aggregate.ID()
	if id == nil {
		return errs.NewValueIsRequiredError("id of the transport order to update")
	}

	expected := aggregate.Version()
	now := r.clock.Now().UTC()
	dto := fromDomain(aggregate, *id, expected+1, now)

	result := r.db.WithContext(ctx).
		Model(&TransportOrderDTO{}).
		Where("id = ? AND c_version = ?", dto.ID, expected).
		Updates(dto.updateColumns())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.conflict(ctx, *id, expected)
	}

	if err := aggregate.MarkPersisted(*id, expected+1, now); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate)
	return nil
}

// conflict explains why an update matched no row.
func (r *GormTransportOrderRepository) conflict(ctx context.Context, id kernel.UUID, expected int64) error {
	var current TransportOrderDTO
	err := r.db.WithContext(ctx).Select("id", "c_version").Take(&current, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("transport order", id.String())
	}
	if err != nil {
		return err
	}
	return errs.NewVersionIsInvalidError("transport order", expected, current.Version)
}

// Get loads one order or returns an ObjectNotFoundError.
func (r *GormTransportOrderRepository) Get(ctx context.Context, id kernel.UUID) (*transportorder.TransportOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransportOrderDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transport order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindAll returns every order by creation date.
func (r *GormTransportOrderRepository) FindAll(ctx context.Context) ([]*transportorder.TransportOrder, error) {
	return r.find(r.db.WithContext(ctx).Order("creation_date ASC, id ASC"))
}

// FindByTransportUnit returns all orders of one unit.
func (r *GormTransportOrderRepository) FindByTransportUnit(
	ctx context.Context,
	unit kernel.Barcode,
) ([]*transportorder.TransportOrder, error) {
	if err := unit.Validate(); err != nil {
		return nil, err
	}

	return r.find(r.db.WithContext(ctx).
		Where("transport_unit = ?", unit.String()).
		Order("creation_date ASC, id ASC"))
}

// FindByTransportUnitInStates returns the unit's orders in any of states.
func (r *GormTransportOrderRepository) FindByTransportUnitInStates(
	ctx context.Context,
	unit kernel.Barcode,
	states ...transportorder.State,
) ([]*transportorder.TransportOrder, error) {
	if err := unit.Validate(); err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return []*transportorder.TransportOrder{}, nil
	}

	return r.find(r.db.WithContext(ctx).
		Where("transport_unit = ? AND state IN ?", unit.String(), stateNames(states)).
		Order("creation_date ASC, id ASC"))
}

// FindStartableForTransportUnit returns the unit's startable orders, best candidate first.
func (r *GormTransportOrderRepository) FindStartableForTransportUnit(
	ctx context.Context,
	unit kernel.Barcode,
) ([]*transportorder.TransportOrder, error) {
	if err := unit.Validate(); err != nil {
		return nil, err
	}

	return r.find(r.db.WithContext(ctx).
		Where("transport_unit = ? AND state IN ?", unit.String(), startableStateNames()).
		Order("priority DESC, creation_date ASC, id ASC"))
}

// FindTransportUnitsWithStartableOrders lists the units that have at least one startable order.
func (r *GormTransportOrderRepository) FindTransportUnitsWithStartableOrders(
	ctx context.Context,
) ([]kernel.Barcode, error) {
	var raw []string
	err := r.db.WithContext(ctx).
		Model(&TransportOrderDTO{}).
		Distinct("transport_unit").
		Where("transport_unit IS NOT NULL AND state IN ?", startableStateNames()).
		Order("transport_unit").
		Pluck("transport_unit", &raw).Error
	if err != nil {
		return nil, err
	}

	units := make([]kernel.Barcode, 0, len(raw))
	for _, v := range raw {
		unit, unitErr := kernel.NewBarcode(v)
		if unitErr != nil {
			return nil, unitErr
		}
		units = append(units, unit)
	}
	return units, nil
}

func (r *GormTransportOrderRepository) find(query *gorm.DB) ([]*transportorder.TransportOrder, error) {
	var dtos []TransportOrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*transportorder.TransportOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func stateNames(states []transportorder.State) []string {
	names := make([]string, 0, len(states))
	for _, s := range states {
		names = append(names, s.String())
	}
	return names
}

func startableStateNames() []string {
	var names []string
	for _, s := range transportorder.States() {
		if s.IsStartable() {
			names = append(names, s.String())
		}
	}
	return names
}
