package chainman

import (
	"context"
	"sync"
	"time"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
)

const eventBuffer = 8

// statusSource is the part of an extrinsic status subscription a
// submission reads from.
type statusSource interface {
	Chan() <-chan types.ExtrinsicStatus
	Err() <-chan error
	Unsubscribe()
}

// watchedSubmission turns a status subscription into lifecycle events.
type watchedSubmission struct {
	src    statusSource
	events chan LifecycleEvent
	done   chan struct{}
	once   sync.Once
}

func watch(ctx context.Context, src statusSource, timeout time.Duration) *watchedSubmission {
	s := &watchedSubmission{
		src:    src,
		events: make(chan LifecycleEvent, eventBuffer),
		done:   make(chan struct{}),
	}
	go s.run(ctx, timeout)
	return s
}

// Events implements Submission.
func (s *watchedSubmission) Events() <-chan LifecycleEvent {
	return s.events
}

// Close implements Submission.
func (s *watchedSubmission) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *watchedSubmission) run(ctx context.Context, timeout time.Duration) {
	defer close(s.events)
	defer s.src.Unsubscribe()

	if !s.emit(ctx, LifecycleEvent{Kind: EventPending}) {
		return
	}
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-expired:
			s.emit(ctx, LifecycleEvent{Kind: EventError, Err: errors.Wrapf(gerror.ErrTransactionFailed, "not finalized within %s", timeout)})
			return
		case err, ok := <-s.src.Err():
			if !ok || err == nil {
				err = errors.New("status subscription closed")
			}
			s.emit(ctx, LifecycleEvent{Kind: EventError, Err: errors.Wrap(err, "watch extrinsic")})
			return
		case status, ok := <-s.src.Chan():
			if !ok {
				s.emit(ctx, LifecycleEvent{Kind: EventError, Err: errors.New("status subscription closed")})
				return
			}
			ev := eventFromStatus(status)
			if !s.emit(ctx, ev) || ev.Terminal() {
				return
			}
		}
	}
}

func (s *watchedSubmission) emit(ctx context.Context, ev LifecycleEvent) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	case <-s.done:
		return false
	}
}
