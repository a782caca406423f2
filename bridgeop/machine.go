package bridgeop

import (
	"fmt"

	"github.com/InvArch/invarch-bridge-service/chainman"
)

// State of an operation's state machine.
type State string

const (
	StateIdle      = State("idle")
	StatePending   = State("pending")
	StateSucceeded = State("succeeded")
	StateFailed    = State("failed")
)

// Terminal reports whether no further event changes the state.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Machine tracks one submission: Idle, then Pending until a terminal event
// moves it to Succeeded or Failed. Terminal states absorb further events.
type Machine struct {
	state          State
	successMessage string
}

// NewMachine creates an idle machine reporting successMessage on success.
func NewMachine(successMessage string) *Machine {
	return &Machine{state: StateIdle, successMessage: successMessage}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Start moves the machine to Pending for a new submission. It fails while a
// submission is pending.
func (m *Machine) Start() (StatusChange, error) {
	if m.state == StatePending {
		return StatusChange{}, fmt.Errorf("machine already %s", m.state)
	}
	m.state = StatePending
	return StatusChange{Status: StatusPending, Message: MsgSubmitted}, nil
}

// Reset forgets a pending submission that is no longer observed.
func (m *Machine) Reset() {
	m.state = StateIdle
}

// Apply consumes a lifecycle event. changed is false when the event is
// absorbed, i.e. the machine is not pending.
func (m *Machine) Apply(ev chainman.LifecycleEvent) (change StatusChange, changed bool) {
	if m.state != StatePending {
		return StatusChange{}, false
	}
	switch ev.Kind {
	case chainman.EventError:
		m.state = StateFailed
		msg := MsgTransactionFailed
		if ev.Err != nil {
			msg = ev.Err.Error()
		}
		return StatusChange{Status: StatusError, Message: msg}, true
	case chainman.EventFinalized:
		if !ev.OK {
			m.state = StateFailed
			return StatusChange{Status: StatusError, Message: MsgTransactionFailed, Details: blockDetails(ev)}, true
		}
		m.state = StateSucceeded
		return StatusChange{Status: StatusSuccess, Message: m.successMessage, Details: blockDetails(ev)}, true
	default:
		return StatusChange{Status: StatusPending, Message: MsgInProgress, Details: blockDetails(ev)}, true
	}
}

func blockDetails(ev chainman.LifecycleEvent) interface{} {
	if ev.BlockHash == "" {
		return nil
	}
	return map[string]string{"blockHash": ev.BlockHash}
}
