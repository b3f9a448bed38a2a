package commands_test

import (
	"context"
	"testing"
	"time"

	"tms/internal/core/application/usecases/commands"
	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"
	"tms/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransportOrderRepository struct{ mock.Mock }

func (m *MockTransportOrderRepository) Add(ctx context.Context, o *transportorder.TransportOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockTransportOrderRepository) Update(ctx context.Context, o *transportorder.TransportOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockTransportOrderRepository) Get(ctx context.Context, id kernel.UUID) (*transportorder.TransportOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*transportorder.TransportOrder)
	return o, args.Error(1)
}

func (m *MockTransportOrderRepository) FindAll(ctx context.Context) ([]*transportorder.TransportOrder, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).([]*transportorder.TransportOrder)
	return o, args.Error(1)
}

func (m *MockTransportOrderRepository) FindByTransportUnit(
	ctx context.Context, unit kernel.Barcode,
) ([]*transportorder.TransportOrder, error) {
	args := m.Called(ctx, unit)
	o, _ := args.Get(0).([]*transportorder.TransportOrder)
	return o, args.Error(1)
}

func (m *MockTransportOrderRepository) FindByTransportUnitInStates(
	ctx context.Context, unit kernel.Barcode, states ...transportorder.State,
) ([]*transportorder.TransportOrder, error) {
	args := m.Called(ctx, unit, states)
	o, _ := args.Get(0).([]*transportorder.TransportOrder)
	return o, args.Error(1)
}

func (m *MockTransportOrderRepository) FindStartableForTransportUnit(
	ctx context.Context, unit kernel.Barcode,
) ([]*transportorder.TransportOrder, error) {
	args := m.Called(ctx, unit)
	o, _ := args.Get(0).([]*transportorder.TransportOrder)
	return o, args.Error(1)
}

func (m *MockTransportOrderRepository) FindTransportUnitsWithStartableOrders(
	ctx context.Context,
) ([]kernel.Barcode, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).([]kernel.Barcode)
	return u, args.Error(1)
}

type MockTransportOrderUoW struct{ mock.Mock }

func (m *MockTransportOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransportOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransportOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransportOrderUoW) TransportOrderRepository() ports.TransportOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.TransportOrderRepository)
}

type MockTransportOrderUoWFactory struct{ mock.Mock }

func (m *MockTransportOrderUoWFactory) Create() commands.TransportOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.TransportOrderUoW)
}

var createdAt = time.Date(2024, 3, 4, 6, 0, 0, 0, time.UTC)

func mustBarcode(t *testing.T, v string) kernel.Barcode {
	t.Helper()
	b, err := kernel.NewBarcode(v)
	require.NoError(t, err)
	return b
}

// storedOrder returns a persisted order of unit "4711" heading to group STOCK.
func storedOrder(
	t *testing.T,
	state transportorder.State,
	priority transportorder.Priority,
	version int64,
) *transportorder.TransportOrder {
	t.Helper()
	unit := mustBarcode(t, "4711")
	group, err := kernel.NewLocationGroupName("STOCK")
	require.NoError(t, err)

	params := transportorder.RestoreParams{
		ID:                  kernel.NewUUID(),
		TransportUnit:       &unit,
		TargetLocationGroup: &group,
		Priority:            priority,
		State:               state,
		CreationDate:        createdAt,
		DateUpdated:         createdAt,
		Version:             version,
	}
	if state == transportorder.Started {
		params.StartDate = &createdAt
	}
	o, err := transportorder.RestoreTransportOrder(params)
	require.NoError(t, err)
	return o
}

func expectCommitted(
	ctx context.Context,
	factory *MockTransportOrderUoWFactory,
	uow *MockTransportOrderUoW,
	repo *MockTransportOrderRepository,
) {
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TransportOrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
}
