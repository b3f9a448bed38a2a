package transportorder_test

import (
	"testing"

	"tms/internal/core/domain/model/transportorder"
	"tms/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	t.Run("should parse every state name case-insensitively", func(t *testing.T) {
		for _, s := range transportorder.States() {
			parsed, err := transportorder.ParseState(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}

		parsed, err := transportorder.ParseState(" started ")
		require.NoError(t, err)
		assert.Equal(t, transportorder.Started, parsed)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		parsed, err := transportorder.ParseState("PAUSED")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, transportorder.Unknown, parsed)
	})
}

func TestState_Validate(t *testing.T) {
	require.NoError(t, transportorder.Initialized.Validate())
	require.ErrorIs(t, transportorder.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, transportorder.State(15).Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "UNKNOWN", transportorder.State(15).String())
}

func TestState_Ranks(t *testing.T) {
	states := transportorder.States()
	for i := 1; i < len(states); i++ {
		assert.Less(t, states[i-1], states[i])
	}
	assert.True(t, transportorder.Finished.IsTerminal())
	assert.True(t, transportorder.Canceled.IsTerminal())
	assert.False(t, transportorder.Started.IsTerminal())
	assert.True(t, transportorder.Initialized.IsStartable())
	assert.True(t, transportorder.Interrupted.IsStartable())
	assert.False(t, transportorder.OnFailure.IsStartable())
}

func TestState_ValidateTransition(t *testing.T) {
	t.Run("should never allow turning back", func(t *testing.T) {
		for _, from := range transportorder.States() {
			for _, to := range transportorder.States() {
				if to >= from {
					continue
				}
				err := from.ValidateTransition(to)

				var stateErr *transportorder.InvalidStateError
				require.ErrorAs(t, err, &stateErr, "%s -> %s", from, to)
				assert.Equal(t, from, stateErr.From)
				assert.Equal(t, to, stateErr.To)
			}
		}
	})

	t.Run("should reject an absent or unknown target from every state", func(t *testing.T) {
		for _, from := range transportorder.States() {
			require.ErrorIs(t, from.ValidateTransition(transportorder.Unknown), transportorder.ErrInvalidState)
			require.ErrorIs(t, from.ValidateTransition(transportorder.State(99)), transportorder.ErrInvalidState)
		}
	})

	t.Run("should only allow INITIALIZED or CANCELED after CREATED", func(t *testing.T) {
		for _, to := range transportorder.States() {
			err := transportorder.Created.ValidateTransition(to)
			if to == transportorder.Initialized || to == transportorder.Canceled {
				require.NoError(t, err, to.String())
				continue
			}
			require.ErrorIs(t, err, transportorder.ErrInvalidState, to.String())
		}
	})

	t.Run("should reject everything from a terminal state", func(t *testing.T) {
		for _, from := range []transportorder.State{transportorder.Finished, transportorder.Canceled} {
			for _, to := range transportorder.States() {
				require.ErrorIs(t, from.ValidateTransition(to), transportorder.ErrInvalidState)
			}
		}
	})

	t.Run("should allow forward jumps once initialized", func(t *testing.T) {
		require.NoError(t, transportorder.Initialized.ValidateTransition(transportorder.Finished))
		require.NoError(t, transportorder.Interrupted.ValidateTransition(transportorder.Started))
		require.NoError(t, transportorder.OnFailure.ValidateTransition(transportorder.Started))
		require.NoError(t, transportorder.Started.ValidateTransition(transportorder.Started))
	})
}

func TestPriority(t *testing.T) {
	assert.Less(t, transportorder.Lowest, transportorder.Low)
	assert.Less(t, transportorder.Low, transportorder.Normal)
	assert.Less(t, transportorder.Normal, transportorder.High)
	assert.Less(t, transportorder.High, transportorder.Highest)

	p, err := transportorder.ParsePriority("highest")
	require.NoError(t, err)
	assert.Equal(t, transportorder.Highest, p)

	_, err = transportorder.ParsePriority("URGENT")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	require.ErrorIs(t, transportorder.UnknownPriority.Validate(), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, transportorder.Priority(6).Validate(), errs.ErrValueIsOutOfRange)
}
