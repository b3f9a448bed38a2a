package commands_test

import (
	"testing"

	"tms/internal/core/application/usecases/commands"
	"tms/internal/core/domain/model/transportorder"
	"tms/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateTransportOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewCreateTransportOrderCommand(
		"4711", "EXT_/0000/0000/0000/0000", "HRL/0001/0002/0003/0004", "STOCK", "high")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "4711", cmd.TransportUnit().String())
	assert.Equal(t, "EXT_/0000/0000/0000/0000", cmd.SourceLocation().String())
	assert.Equal(t, "HRL/0001/0002/0003/0004", cmd.TargetLocation().String())
	assert.Equal(t, "STOCK", cmd.TargetLocationGroup().String())
	assert.Equal(t, transportorder.High, cmd.Priority())
}

func TestNewCreateTransportOrderCommand_EmptyInput(t *testing.T) {
	cmd, err := commands.NewCreateTransportOrderCommand("", "", "  ", "", "")

	require.NoError(t, err)
	assert.Nil(t, cmd.TransportUnit())
	assert.Nil(t, cmd.SourceLocation())
	assert.Nil(t, cmd.TargetLocation())
	assert.Nil(t, cmd.TargetLocationGroup())
	assert.Equal(t, transportorder.Normal, cmd.Priority())
}

func TestNewCreateTransportOrderCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateTransportOrderCommand("47 11", "HRL", "", "", "URGENT")

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "barcode")
	assert.Contains(t, err.Error(), "priority")
}

func TestCreateTransportOrderCommand_NotConstructed(t *testing.T) {
	var cmd commands.CreateTransportOrderCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateTransportOrderCommandIsNotConstructed)
}
