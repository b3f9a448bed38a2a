package http_test

import (
	"context"

	"tms/internal/core/application/usecases/commands"
	"tms/internal/core/application/usecases/queries"
	"tms/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
)

type MockCreateTransportOrderHandler struct{ mock.Mock }

func (m *MockCreateTransportOrderHandler) Handle(
	ctx context.Context,
	cmd commands.CreateTransportOrderCommand,
) (kernel.UUID, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockUpdateTransportOrderHandler struct{ mock.Mock }

func (m *MockUpdateTransportOrderHandler) Handle(ctx context.Context, cmd commands.UpdateTransportOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockChangeTransportOrderStateHandler struct{ mock.Mock }

func (m *MockChangeTransportOrderStateHandler) Handle(
	ctx context.Context,
	cmd commands.ChangeTransportOrderStateCommand,
) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockReportProblemHandler struct{ mock.Mock }

func (m *MockReportProblemHandler) Handle(ctx context.Context, cmd commands.ReportProblemCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockStartNextTransportOrderHandler struct{ mock.Mock }

func (m *MockStartNextTransportOrderHandler) Handle(
	ctx context.Context,
	cmd commands.StartNextTransportOrderCommand,
) (kernel.UUID, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockGetTransportOrderHandler struct{ mock.Mock }

func (m *MockGetTransportOrderHandler) Handle(
	ctx context.Context,
	query queries.GetTransportOrderQuery,
) (queries.TransportOrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.TransportOrderView), args.Error(1)
}

type MockListTransportOrdersHandler struct{ mock.Mock }

func (m *MockListTransportOrdersHandler) Handle(
	ctx context.Context,
	query queries.ListTransportOrdersQuery,
) ([]queries.TransportOrderView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.TransportOrderView)
	return views, args.Error(1)
}

type MockGetStartableTransportOrdersHandler struct{ mock.Mock }

func (m *MockGetStartableTransportOrdersHandler) Handle(
	ctx context.Context,
	query queries.GetStartableTransportOrdersQuery,
) ([]queries.TransportOrderView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.TransportOrderView)
	return views, args.Error(1)
}

type MockPinger struct{ mock.Mock }

func (m *MockPinger) PingContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
