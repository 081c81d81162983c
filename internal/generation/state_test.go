package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateMachine_HappyPath(t *testing.T) {
	m := newStateMachine()
	require.NoError(t, m.transition(StateGenerated))
	require.NoError(t, m.transition(StateValid))
	require.NoError(t, m.transition(StateFinal))
	assert.Equal(t, StateFinal, m.current)
}

func TestStateMachine_SingleRetry(t *testing.T) {
	m := newStateMachine()
	require.NoError(t, m.transition(StateGenerated))
	require.NoError(t, m.transition(StateInvalid))
	require.NoError(t, m.transition(StateGenerated))
	require.NoError(t, m.transition(StateInvalid))

	// Second regeneration exceeds the retry budget.
	err := m.transition(StateGenerated)
	assert.Error(t, err)

	// Giving up is still allowed.
	require.NoError(t, m.transition(StateFinal))
}

func TestStateMachine_IllegalTransitions(t *testing.T) {
	m := newStateMachine()
	assert.Error(t, m.transition(StateValid))
	assert.Error(t, m.transition(StateFinal))

	require.NoError(t, m.transition(StateGenerated))
	assert.Error(t, m.transition(StateFinal))
}
