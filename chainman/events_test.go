package chainman

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	statuses     chan types.ExtrinsicStatus
	errs         chan error
	once         sync.Once
	unsubscribed chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		statuses:     make(chan types.ExtrinsicStatus, 8),
		errs:         make(chan error, 1),
		unsubscribed: make(chan struct{}),
	}
}

func (f *fakeSource) Chan() <-chan types.ExtrinsicStatus { return f.statuses }
func (f *fakeSource) Err() <-chan error                  { return f.errs }
func (f *fakeSource) Unsubscribe()                       { f.once.Do(func() { close(f.unsubscribed) }) }

func collect(t *testing.T, s Submission) []LifecycleEvent {
	t.Helper()
	var events []LifecycleEvent
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-s.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatal("submission did not finish")
		}
	}
}

func TestEventFromStatus(t *testing.T) {
	hash := types.NewHash([]byte{0x01})
	cases := []struct {
		name   string
		status types.ExtrinsicStatus
		kind   EventKind
		ok     bool
	}{
		{"ready", types.ExtrinsicStatus{IsReady: true}, EventInFlight, false},
		{"future", types.ExtrinsicStatus{IsFuture: true}, EventInFlight, false},
		{"in block", types.ExtrinsicStatus{IsInBlock: true, AsInBlock: hash}, EventInFlight, false},
		{"retracted", types.ExtrinsicStatus{IsRetracted: true}, EventInFlight, false},
		{"finalized", types.ExtrinsicStatus{IsFinalized: true, AsFinalized: hash}, EventFinalized, true},
		{"dropped", types.ExtrinsicStatus{IsDropped: true}, EventError, false},
		{"invalid", types.ExtrinsicStatus{IsInvalid: true}, EventError, false},
		{"usurped", types.ExtrinsicStatus{IsUsurped: true}, EventError, false},
		{"finality timeout", types.ExtrinsicStatus{IsFinalityTimeout: true}, EventError, false},
	}
	for _, c := range cases {
		ev := eventFromStatus(c.status)
		assert.Equal(t, c.kind, ev.Kind, c.name)
		assert.Equal(t, c.ok, ev.OK, c.name)
		if c.kind == EventError {
			assert.True(t, errors.Is(ev.Err, gerror.ErrTransactionFailed), c.name)
		}
	}
	assert.Equal(t, hash.Hex(), eventFromStatus(types.ExtrinsicStatus{IsFinalized: true, AsFinalized: hash}).BlockHash)
}

func TestWatchUntilFinalized(t *testing.T) {
	src := newFakeSource()
	src.statuses <- types.ExtrinsicStatus{IsReady: true}
	src.statuses <- types.ExtrinsicStatus{IsInBlock: true}
	src.statuses <- types.ExtrinsicStatus{IsFinalized: true}

	events := collect(t, watch(context.Background(), src, 0))
	require.Len(t, events, 4)
	assert.Equal(t, EventPending, events[0].Kind)
	assert.Equal(t, EventInFlight, events[1].Kind)
	assert.Equal(t, EventInFlight, events[2].Kind)
	assert.Equal(t, EventFinalized, events[3].Kind)
	assert.True(t, events[3].OK)
	<-src.unsubscribed
}

func TestWatchSubscriptionError(t *testing.T) {
	src := newFakeSource()
	src.errs <- errors.New("connection reset")

	events := collect(t, watch(context.Background(), src, 0))
	require.Len(t, events, 2)
	assert.Equal(t, EventError, events[1].Kind)
	assert.Contains(t, events[1].Err.Error(), "connection reset")
}

func TestWatchTimeout(t *testing.T) {
	src := newFakeSource()
	events := collect(t, watch(context.Background(), src, 10*time.Millisecond))
	require.Len(t, events, 2)
	assert.Equal(t, EventError, events[1].Kind)
	assert.True(t, errors.Is(events[1].Err, gerror.ErrTransactionFailed))
}

func TestWatchCancel(t *testing.T) {
	src := newFakeSource()
	ctx, cancel := context.WithCancel(context.Background())
	s := watch(ctx, src, 0)
	ev := <-s.Events()
	assert.Equal(t, EventPending, ev.Kind)

	cancel()
	events := collect(t, s)
	assert.Empty(t, events)
	<-src.unsubscribed
}

func TestWatchClose(t *testing.T) {
	src := newFakeSource()
	s := watch(context.Background(), src, 0)
	<-s.Events()
	s.Close()
	s.Close()
	collect(t, s)
	<-src.unsubscribed
}
