package commands_test

import (
	"errors"
	"testing"

	"tms/internal/core/application/usecases/commands"
	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"
	"tms/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewUpdateTransportOrderCommand(t *testing.T) {
	t.Run("should require at least one change", func(t *testing.T) {
		_, err := commands.NewUpdateTransportOrderCommand(kernel.NewUUID(), commands.TransportOrderChanges{}, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject an empty priority", func(t *testing.T) {
		_, err := commands.NewUpdateTransportOrderCommand(kernel.NewUUID(), commands.TransportOrderChanges{
			Priority: ptr(""),
		}, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should collect invalid fields", func(t *testing.T) {
		_, err := commands.NewUpdateTransportOrderCommand(kernel.NewUUID(), commands.TransportOrderChanges{
			TransportUnit:  ptr("000000000000000000004711"),
			TargetLocation: ptr("HRL/1/2"),
		}, nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "location")
	})
}

func TestUpdateTransportOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	order := storedOrder(t, transportorder.Started, transportorder.Normal, 1)
	cmd, err := commands.NewUpdateTransportOrderCommand(*order.ID(), commands.TransportOrderChanges{
		SourceLocation:      ptr("HRL/0001/0001/0001/0001"),
		TargetLocation:      ptr("HRL/0002/0001/0001/0001"),
		TargetLocationGroup: ptr(""),
		Priority:            ptr("HIGHEST"),
	}, ptr(int64(1)))
	require.NoError(t, err)

	repo := new(MockTransportOrderRepository)
	uow := new(MockTransportOrderUoW)
	factory := new(MockTransportOrderUoWFactory)
	expectCommitted(ctx, factory, uow, repo)
	repo.On("Get", ctx, *order.ID()).Return(order, nil).Once()
	repo.On("Update", ctx, order).Return(nil).Once()

	h := commands.NewUpdateTransportOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "4711", order.TransportUnit().String())
	assert.Equal(t, "HRL/0001/0001/0001/0001", order.SourceLocation().String())
	assert.Equal(t, "HRL/0002/0001/0001/0001", order.TargetLocation().String())
	assert.Nil(t, order.TargetLocationGroup())
	assert.Equal(t, transportorder.Highest, order.Priority())
	assert.Equal(t, transportorder.Started, order.State())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateTransportOrderCommandHandler_Handle_UpdateConflict(t *testing.T) {
	ctx := t.Context()
	order := storedOrder(t, transportorder.Initialized, transportorder.Normal, 1)
	cmd, _ := commands.NewUpdateTransportOrderCommand(*order.ID(), commands.TransportOrderChanges{
		Priority: ptr("LOW"),
	}, nil)
	conflict := errs.NewVersionIsInvalidError("transport order", 1, 2)

	repo := new(MockTransportOrderRepository)
	uow := new(MockTransportOrderUoW)
	factory := new(MockTransportOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TransportOrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, *order.ID()).Return(order, nil).Once()
	repo.On("Update", ctx, order).Return(conflict).Once()

	h := commands.NewUpdateTransportOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdateTransportOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewUpdateTransportOrderCommand(kernel.NewUUID(), commands.TransportOrderChanges{
		Priority: ptr("LOW"),
	}, nil)

	uow := new(MockTransportOrderUoW)
	factory := new(MockTransportOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	h := commands.NewUpdateTransportOrderCommandHandler(factory)

	require.EqualError(t, h.Handle(ctx, cmd), "begin error")
}
