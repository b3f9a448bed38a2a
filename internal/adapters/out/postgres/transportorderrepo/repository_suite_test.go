package transportorderrepo_test

import (
	"context"
	"time"

	"tms/internal/adapters/out/postgres/transportorderrepo"
	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"
	"tms/internal/pkg/errs"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(aggregate *transportorder.TransportOrder) {
	m.Called(aggregate)
}

var startOfShift = time.Date(2024, 3, 4, 6, 0, 0, 0, time.UTC)

// RepositorySuite holds the repository behavior shared by the SQLite and the
// PostgreSQL runs. newDB returns an empty, migrated database for every test.
type RepositorySuite struct {
	suite.Suite
	newDB func() *gorm.DB

	db         *gorm.DB
	clock      *clockwork.FakeClock
	tracker    *MockAggregateTracker
	repository *transportorderrepo.GormTransportOrderRepository
}

func (s *RepositorySuite) SetupTest() {
	s.db = s.newDB()
	s.clock = clockwork.NewFakeClockAt(startOfShift)
	s.tracker = new(MockAggregateTracker)
	s.tracker.On("TrackAggregate", mock.Anything).Return()
	s.repository = transportorderrepo.NewGormTransportOrderRepository(s.db, s.tracker, s.clock)
}

func (s *RepositorySuite) TestAdd_AssignsIdentityAndVersion() {
	ctx := context.Background()
	order := s.newOrder("4711", transportorder.Normal)
	s.clock.Advance(time.Second)
	now := s.clock.Now()

	err := s.repository.Add(ctx, order)

	s.Require().NoError(err)
	s.False(order.IsNew())
	s.Zero(order.Version())
	s.True(order.DateUpdated().Equal(now))
	s.tracker.AssertCalled(s.T(), "TrackAggregate", order)
	s.assertCount(1)
}

func (s *RepositorySuite) TestAdd_RejectsPersistedOrder() {
	ctx := context.Background()
	order := s.newOrder("4711", transportorder.Normal)
	s.Require().NoError(s.repository.Add(ctx, order))

	err := s.repository.Add(ctx, order)

	s.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	s.assertCount(1)
}

func (s *RepositorySuite) TestGet_RoundTrip() {
	ctx := context.Background()
	order := s.newOrder("4711", transportorder.High)
	source, err := kernel.ParseLocationID("EXT_/0000/0000/0000/0000")
	s.Require().NoError(err)
	s.Require().NoError(order.SetSourceLocation(&source))
	problem, err := kernel.NewProblem("conveyor blocked", 7, startOfShift)
	s.Require().NoError(err)
	s.Require().NoError(order.SetProblem(&problem))
	s.Require().NoError(order.SetState(transportorder.Initialized))
	s.Require().NoError(s.repository.Add(ctx, order))

	loaded, err := s.repository.Get(ctx, *order.ID())

	s.Require().NoError(err)
	s.True(loaded.ID().IsEqual(*order.ID()))
	s.Equal("4711", loaded.TransportUnit().String())
	s.Equal("EXT_/0000/0000/0000/0000", loaded.SourceLocation().String())
	s.Equal("STOCK", loaded.TargetLocationGroup().String())
	s.Nil(loaded.TargetLocation())
	s.Equal(transportorder.High, loaded.Priority())
	s.Equal(transportorder.Initialized, loaded.State())
	s.Require().NotNil(loaded.Problem())
	s.Equal("conveyor blocked", loaded.Problem().Message())
	s.Equal(7, loaded.Problem().MessageNo())
	s.True(loaded.Problem().Occurred().Equal(startOfShift))
	s.True(loaded.CreationDate().Equal(order.CreationDate()))
	s.Nil(loaded.StartDate())
	s.Nil(loaded.EndDate())
	s.Zero(loaded.Version())
	s.Empty(loaded.DomainEvents())
}

func (s *RepositorySuite) TestGet_NotFound() {
	_, err := s.repository.Get(context.Background(), kernel.NewUUID())

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *RepositorySuite) TestUpdate_IncrementsVersion() {
	ctx := context.Background()
	order := s.newOrder("4711", transportorder.Normal)
	s.Require().NoError(s.repository.Add(ctx, order))
	s.Require().NoError(order.SetState(transportorder.Initialized))
	s.Require().NoError(order.SetTargetLocationGroup(nil))
	target, err := kernel.ParseLocationID("HRL/0001/0002/0003/0004")
	s.Require().NoError(err)
	s.Require().NoError(order.SetTargetLocation(&target))
	s.clock.Advance(time.Minute)
	now := s.clock.Now()

	s.Require().NoError(s.repository.Update(ctx, order))

	s.Equal(int64(1), order.Version())
	s.True(order.DateUpdated().Equal(now))

	loaded, err := s.repository.Get(ctx, *order.ID())
	s.Require().NoError(err)
	s.Equal(int64(1), loaded.Version())
	s.Equal(transportorder.Initialized, loaded.State())
	s.Nil(loaded.TargetLocationGroup())
	s.Equal("HRL/0001/0002/0003/0004", loaded.TargetLocation().String())
	s.True(loaded.DateUpdated().Equal(now))
}

func (s *RepositorySuite) TestUpdate_StaleVersionFails() {
	ctx := context.Background()
	order := s.newOrder("4711", transportorder.Normal)
	s.Require().NoError(s.repository.Add(ctx, order))

	first, err := s.repository.Get(ctx, *order.ID())
	s.Require().NoError(err)
	second, err := s.repository.Get(ctx, *order.ID())
	s.Require().NoError(err)

	s.Require().NoError(first.SetState(transportorder.Initialized))
	s.Require().NoError(s.repository.Update(ctx, first))

	s.Require().NoError(second.SetState(transportorder.Canceled))
	err = s.repository.Update(ctx, second)

	var versionErr *errs.VersionIsInvalidError
	s.Require().ErrorAs(err, &versionErr)
	s.Equal(int64(0), versionErr.Expected)
	s.Equal(int64(1), versionErr.Actual)
	s.Zero(second.Version())

	loaded, err := s.repository.Get(ctx, *order.ID())
	s.Require().NoError(err)
	s.Equal(transportorder.Initialized, loaded.State())
}

func (s *RepositorySuite) TestUpdate_DeletedOrderFails() {
	ctx := context.Background()
	order := s.newOrder("4711", transportorder.Normal)
	s.Require().NoError(s.repository.Add(ctx, order))
	s.Require().NoError(s.db.Delete(&transportorderrepo.TransportOrderDTO{}, "id = ?", order.ID().Bytes()).Error)

	err := s.repository.Update(ctx, order)

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *RepositorySuite) TestUpdate_RejectsNewOrder() {
	err := s.repository.Update(context.Background(), s.newOrder("4711", transportorder.Normal))

	s.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func (s *RepositorySuite) TestFindByTransportUnit() {
	ctx := context.Background()
	a := s.addOrder("4711", transportorder.Normal, transportorder.Initialized)
	s.addOrder("0815", transportorder.Normal, transportorder.Initialized)
	b := s.addOrder("4711", transportorder.Low, transportorder.Canceled)

	orders, err := s.repository.FindByTransportUnit(ctx, s.barcode("4711"))

	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.True(orders[0].IsEqual(a))
	s.True(orders[1].IsEqual(b))
}

func (s *RepositorySuite) TestFindByTransportUnitInStates() {
	ctx := context.Background()
	s.addOrder("4711", transportorder.Normal, transportorder.Initialized)
	started := s.addOrder("4711", transportorder.Normal, transportorder.Started)
	s.addOrder("4711", transportorder.Normal, transportorder.Finished)

	orders, err := s.repository.FindByTransportUnitInStates(ctx, s.barcode("4711"),
		transportorder.Started, transportorder.OnFailure)
	s.Require().NoError(err)
	s.Require().Len(orders, 1)
	s.True(orders[0].IsEqual(started))

	none, err := s.repository.FindByTransportUnitInStates(ctx, s.barcode("4711"))
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *RepositorySuite) TestFindStartableForTransportUnit_OrdersByPriorityThenAge() {
	ctx := context.Background()
	oldNormal := s.addOrder("4711", transportorder.Normal, transportorder.Initialized)
	s.addOrder("4711", transportorder.Highest, transportorder.Started)
	newNormal := s.addOrder("4711", transportorder.Normal, transportorder.Interrupted)
	high := s.addOrder("4711", transportorder.High, transportorder.Initialized)
	s.addOrder("4711", transportorder.Highest, transportorder.OnFailure)
	s.addOrder("0815", transportorder.Highest, transportorder.Initialized)

	orders, err := s.repository.FindStartableForTransportUnit(ctx, s.barcode("4711"))

	s.Require().NoError(err)
	s.Require().Len(orders, 3)
	s.True(orders[0].IsEqual(high))
	s.True(orders[1].IsEqual(oldNormal))
	s.True(orders[2].IsEqual(newNormal))
}

func (s *RepositorySuite) TestFindTransportUnitsWithStartableOrders() {
	ctx := context.Background()
	s.addOrder("4711", transportorder.Normal, transportorder.Initialized)
	s.addOrder("4711", transportorder.Normal, transportorder.Interrupted)
	s.addOrder("0815", transportorder.Normal, transportorder.Initialized)
	s.addOrder("9999", transportorder.Normal, transportorder.Finished)

	units, err := s.repository.FindTransportUnitsWithStartableOrders(ctx)

	s.Require().NoError(err)
	s.Require().Len(units, 2)
	s.Equal("0815", units[0].String())
	s.Equal("4711", units[1].String())
}

func (s *RepositorySuite) TestFindAll() {
	ctx := context.Background()
	first := s.addOrder("4711", transportorder.Normal, transportorder.Initialized)
	second := s.addOrder("0815", transportorder.Normal, transportorder.Initialized)

	orders, err := s.repository.FindAll(ctx)

	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.True(orders[0].IsEqual(first))
	s.True(orders[1].IsEqual(second))
}

func (s *RepositorySuite) barcode(v string) kernel.Barcode {
	b, err := kernel.NewBarcode(v)
	s.Require().NoError(err)
	return b
}

// newOrder returns an unsaved order of unit heading to group STOCK. Every
// call advances the clock so creation dates are distinct.
func (s *RepositorySuite) newOrder(unit string, priority transportorder.Priority) *transportorder.TransportOrder {
	order := transportorder.NewTransportOrder(transportorder.WithClock(s.clock))
	b := s.barcode(unit)
	group, err := kernel.NewLocationGroupName("STOCK")
	s.Require().NoError(err)
	s.Require().NoError(order.SetTransportUnit(&b))
	s.Require().NoError(order.SetTargetLocationGroup(&group))
	s.Require().NoError(order.SetPriority(priority))
	s.clock.Advance(time.Second)
	return order
}

func (s *RepositorySuite) addOrder(
	unit string,
	priority transportorder.Priority,
	state transportorder.State,
) *transportorder.TransportOrder {
	order := s.newOrder(unit, priority)
	s.Require().NoError(order.SetState(transportorder.Initialized))
	if state != transportorder.Initialized {
		s.Require().NoError(order.SetState(state))
	}
	s.Require().NoError(s.repository.Add(context.Background(), order))
	return order
}

func (s *RepositorySuite) assertCount(expected int) {
	var count int64
	s.Require().NoError(s.db.Model(&transportorderrepo.TransportOrderDTO{}).Count(&count).Error)
	s.Equal(int64(expected), count)
}
