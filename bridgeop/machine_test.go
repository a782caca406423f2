package bridgeop

import (
	"errors"
	"testing"

	"github.com/InvArch/invarch-bridge-service/chainman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineTransitions(t *testing.T) {
	testCases := []struct {
		name     string
		events   []chainman.LifecycleEvent
		state    State
		statuses []Status
		last     string
	}{
		{
			name:     "finalized ok",
			events:   []chainman.LifecycleEvent{{Kind: chainman.EventPending}, {Kind: chainman.EventInFlight, BlockHash: "0x01"}, {Kind: chainman.EventFinalized, OK: true, BlockHash: "0x01"}},
			state:    StateSucceeded,
			statuses: []Status{StatusPending, StatusPending, StatusSuccess},
			last:     MsgBridgeInSuccess,
		},
		{
			name:     "finalized not ok",
			events:   []chainman.LifecycleEvent{{Kind: chainman.EventFinalized}},
			state:    StateFailed,
			statuses: []Status{StatusError},
			last:     MsgTransactionFailed,
		},
		{
			name:     "error event",
			events:   []chainman.LifecycleEvent{{Kind: chainman.EventInFlight}, {Kind: chainman.EventError, Err: errors.New("1010: Invalid Transaction")}},
			state:    StateFailed,
			statuses: []Status{StatusPending, StatusError},
			last:     "1010: Invalid Transaction",
		},
		{
			name:     "error without cause",
			events:   []chainman.LifecycleEvent{{Kind: chainman.EventError}},
			state:    StateFailed,
			statuses: []Status{StatusError},
			last:     MsgTransactionFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMachine(MsgBridgeInSuccess)
			start, err := m.Start()
			require.NoError(t, err)
			assert.Equal(t, StatusPending, start.Status)
			assert.Equal(t, MsgSubmitted, start.Message)

			var statuses []Status
			var last StatusChange
			for _, ev := range tc.events {
				change, changed := m.Apply(ev)
				require.True(t, changed)
				statuses = append(statuses, change.Status)
				last = change
			}
			assert.Equal(t, tc.state, m.State())
			assert.Equal(t, tc.statuses, statuses)
			assert.Equal(t, tc.last, last.Message)
		})
	}
}

func TestMachineTerminalAbsorbs(t *testing.T) {
	m := NewMachine(MsgBridgeOutSuccess)
	_, err := m.Start()
	require.NoError(t, err)

	change, changed := m.Apply(chainman.LifecycleEvent{Kind: chainman.EventFinalized, OK: true, BlockHash: "0xab"})
	require.True(t, changed)
	assert.Equal(t, map[string]string{"blockHash": "0xab"}, change.Details)

	for _, ev := range []chainman.LifecycleEvent{
		{Kind: chainman.EventInFlight},
		{Kind: chainman.EventFinalized, OK: true},
		{Kind: chainman.EventError},
	} {
		_, changed = m.Apply(ev)
		assert.False(t, changed)
	}
	assert.Equal(t, StateSucceeded, m.State())
	assert.True(t, m.State().Terminal())
}

func TestMachineStartWhilePending(t *testing.T) {
	m := NewMachine(MsgBridgeInSuccess)
	_, changed := m.Apply(chainman.LifecycleEvent{Kind: chainman.EventFinalized, OK: true})
	assert.False(t, changed, "idle machine ignores events")

	_, err := m.Start()
	require.NoError(t, err)
	_, err = m.Start()
	require.Error(t, err)

	m.Reset()
	assert.Equal(t, StateIdle, m.State())
	_, err = m.Start()
	require.NoError(t, err)

	_, _ = m.Apply(chainman.LifecycleEvent{Kind: chainman.EventError})
	_, err = m.Start()
	require.NoError(t, err, "a failed operation can be retried")
}
