package chainman

import (
	"fmt"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
)

// EventKind discriminates lifecycle events.
type EventKind int

const (
	// EventPending is emitted once the extrinsic is accepted by the node.
	EventPending EventKind = iota
	// EventInFlight is any intermediate status (ready, broadcast, in block).
	EventInFlight
	// EventError means the submission failed before finalization.
	EventError
	// EventFinalized is the terminal event; OK tells the dispatch outcome.
	EventFinalized
)

func (k EventKind) String() string {
	switch k {
	case EventPending:
		return "pending"
	case EventInFlight:
		return "inflight"
	case EventError:
		return "error"
	case EventFinalized:
		return "finalized"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// LifecycleEvent is one step of a submission.
type LifecycleEvent struct {
	Kind      EventKind
	OK        bool
	Err       error
	BlockHash string
}

// Terminal reports whether no event follows this one.
func (e LifecycleEvent) Terminal() bool {
	return e.Kind == EventError || e.Kind == EventFinalized
}

// eventFromStatus maps a transaction pool status onto a lifecycle event.
// The dispatch result is not decoded, so finalized extrinsics are reported
// as successful.
func eventFromStatus(status types.ExtrinsicStatus) LifecycleEvent {
	switch {
	case status.IsFinalized:
		return LifecycleEvent{Kind: EventFinalized, OK: true, BlockHash: status.AsFinalized.Hex()}
	case status.IsInBlock:
		return LifecycleEvent{Kind: EventInFlight, BlockHash: status.AsInBlock.Hex()}
	case status.IsDropped:
		return LifecycleEvent{Kind: EventError, Err: errors.Wrap(gerror.ErrTransactionFailed, "dropped from the pool")}
	case status.IsInvalid:
		return LifecycleEvent{Kind: EventError, Err: errors.Wrap(gerror.ErrTransactionFailed, "invalid")}
	case status.IsUsurped:
		return LifecycleEvent{Kind: EventError, Err: errors.Wrap(gerror.ErrTransactionFailed, "usurped")}
	case status.IsFinalityTimeout:
		return LifecycleEvent{Kind: EventError, Err: errors.Wrap(gerror.ErrTransactionFailed, "finality timeout")}
	}
	return LifecycleEvent{Kind: EventInFlight}
}
