package bridgeop

import (
	"context"
	"sync"

	"github.com/InvArch/invarch-bridge-service/chainman"
	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/messagepush"
	"github.com/InvArch/invarch-bridge-service/metrics"
	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"
)

// Notifier shows the outcome of an operation to the user.
type Notifier interface {
	ShowNotification(messagepush.Notification)
}

// tracker owns the processing state of one operation and fans its status
// changes out to the callback, the subscribers and the notifier.
type tracker struct {
	direction string
	notifier  Notifier

	lock    sync.Mutex
	machine *Machine
	status  StatusChange
	// running is set while a submit loop owns the machine, terminal or not.
	running bool

	feed event.Feed
}

func newTracker(direction, successMessage string, notifier Notifier) tracker {
	return tracker{
		direction: direction,
		notifier:  notifier,
		machine:   NewMachine(successMessage),
	}
}

// IsProcessing reports whether a submission is being observed.
func (t *tracker) IsProcessing() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.machine.State() == StatePending
}

// State returns the state of the operation's machine.
func (t *tracker) State() State {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.machine.State()
}

// Status returns the last status change, zero before the first Execute.
func (t *tracker) Status() StatusChange {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.status
}

// SubscribeStatus delivers every following status change to ch. Sends block
// until every subscriber received the change, so ch should be buffered and
// drained.
func (t *tracker) SubscribeStatus(ch chan<- StatusChange) event.Subscription {
	return t.feed.Subscribe(ch)
}

// submit runs one submission to completion: it returns once the machine is
// terminal, the submission stream ends, ctx is done, or the call could not be
// submitted. The stream is closed on return, so later events of this
// submission never reach the next one.
func (t *tracker) submit(ctx context.Context, m chainman.Mutator, call chainman.Call, onStatus func(StatusChange), onComplete func()) error {
	t.lock.Lock()
	if t.running {
		t.lock.Unlock()
		return errors.Wrap(gerror.ErrOperationInProgress, "previous submission still observed")
	}
	start, err := t.machine.Start()
	if err != nil {
		t.lock.Unlock()
		return errors.Wrap(gerror.ErrOperationInProgress, err.Error())
	}
	t.running = true
	t.status = start
	t.lock.Unlock()
	defer func() {
		t.lock.Lock()
		t.running = false
		t.lock.Unlock()
	}()
	t.publish(start, onStatus)

	sub, err := m.Submit(ctx, call)
	if err != nil {
		t.apply(chainman.LifecycleEvent{Kind: chainman.EventError, Err: err}, onStatus, onComplete)
		return errors.Wrapf(err, "submit %s", call.Name())
	}
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			t.abandon()
			return ctx.Err()
		case ev, ok := <-sub.Events():
			if !ok {
				if t.IsProcessing() {
					t.apply(chainman.LifecycleEvent{
						Kind: chainman.EventError,
						Err:  errors.Wrap(gerror.ErrTransactionFailed, "submission ended before finalization"),
					}, onStatus, onComplete)
				}
				return nil
			}
			if t.apply(ev, onStatus, onComplete) {
				return nil
			}
		}
	}
}

// apply feeds ev to the machine and reports whether the machine is terminal.
func (t *tracker) apply(ev chainman.LifecycleEvent, onStatus func(StatusChange), onComplete func()) bool {
	t.lock.Lock()
	change, changed := t.machine.Apply(ev)
	if changed {
		t.status = change
	}
	state := t.machine.State()
	t.lock.Unlock()

	if !changed {
		log.Debugf("%s operation ignores %s event in state %s", t.direction, ev.Kind, state)
		return state.Terminal()
	}
	t.publish(change, onStatus)
	if !state.Terminal() {
		return false
	}

	metrics.RecordOperation(t.direction, change.Status.String())
	if state == StateFailed {
		log.Warnf("%s operation failed: %s", t.direction, change.Message)
		t.notify(messagepush.VariantError, change.Message)
		return true
	}
	log.Infof("%s operation succeeded", t.direction)
	t.notify(messagepush.VariantSuccess, change.Message)
	if onComplete != nil {
		onComplete()
	}
	return true
}

// abandon stops tracking a pending submission; the extrinsic may still be
// included on chain.
func (t *tracker) abandon() {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.machine.State() == StatePending {
		log.Warnf("%s operation stopped observing a pending submission", t.direction)
		t.machine.Reset()
	}
}

func (t *tracker) publish(change StatusChange, onStatus func(StatusChange)) {
	if onStatus != nil {
		onStatus(change)
	}
	t.feed.Send(change)
}

func (t *tracker) notify(variant messagepush.Variant, message string) {
	if t.notifier == nil {
		return
	}
	t.notifier.ShowNotification(messagepush.Notification{Variant: variant, Message: message})
}
