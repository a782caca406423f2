package chainman

import (
	"context"
	"encoding/hex"
	"sort"
	"strings"
	"sync"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
)

// MemoryChain is an in-memory Querier used by tests and by the offline
// validate command.
type MemoryChain struct {
	lock      sync.RWMutex
	storage   map[string][]byte
	entries   map[string][]StorageEntry
	constants map[string][]byte
}

// NewMemoryChain creates an empty chain.
func NewMemoryChain() *MemoryChain {
	return &MemoryChain{
		storage:   make(map[string][]byte),
		entries:   make(map[string][]StorageEntry),
		constants: make(map[string][]byte),
	}
}

func storagePath(pallet, item string, keyArgs [][]byte) string {
	parts := make([]string, 0, len(keyArgs)+1)
	parts = append(parts, pallet+"."+item)
	for _, arg := range keyArgs {
		parts = append(parts, hex.EncodeToString(arg))
	}
	return strings.Join(parts, "/")
}

// PutStorage SCALE encodes value at pallet.item[keyArgs].
func (m *MemoryChain) PutStorage(pallet, item string, value interface{}, keyArgs ...[]byte) error {
	raw, err := codec.Encode(value)
	if err != nil {
		return err
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.storage[storagePath(pallet, item, keyArgs)] = raw
	return nil
}

// PutEntry SCALE encodes value as a map entry listed by ReadStorageEntries.
func (m *MemoryChain) PutEntry(pallet, item string, keyArgs []byte, value interface{}) error {
	raw, err := codec.Encode(value)
	if err != nil {
		return err
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	key := pallet + "." + item
	m.entries[key] = append(m.entries[key], StorageEntry{KeyArgs: keyArgs, Value: raw})
	return nil
}

// PutConstant SCALE encodes a runtime constant.
func (m *MemoryChain) PutConstant(pallet, name string, value interface{}) error {
	raw, err := codec.Encode(value)
	if err != nil {
		return err
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.constants[pallet+"."+name] = raw
	return nil
}

// ReadStorage implements Querier.
func (m *MemoryChain) ReadStorage(ctx context.Context, pallet, item string, target interface{}, keyArgs ...[]byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.lock.RLock()
	raw, ok := m.storage[storagePath(pallet, item, keyArgs)]
	m.lock.RUnlock()
	if !ok {
		return false, nil
	}
	return true, codec.Decode(raw, target)
}

// ReadStorageEntries implements Querier. Entries are ordered by key.
func (m *MemoryChain) ReadStorageEntries(ctx context.Context, pallet, item string) ([]StorageEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.lock.RLock()
	entries := append([]StorageEntry(nil), m.entries[pallet+"."+item]...)
	m.lock.RUnlock()
	sort.Slice(entries, func(i, j int) bool {
		return hex.EncodeToString(entries[i].KeyArgs) < hex.EncodeToString(entries[j].KeyArgs)
	})
	return entries, nil
}

// GetConstant implements Querier.
func (m *MemoryChain) GetConstant(ctx context.Context, pallet, name string, target interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.lock.RLock()
	raw, ok := m.constants[pallet+"."+name]
	m.lock.RUnlock()
	if !ok {
		return errors.Wrapf(gerror.ErrStorageNotFound, "constant %s.%s", pallet, name)
	}
	return codec.Decode(raw, target)
}

// MockMutator is a testify mock of Mutator.
type MockMutator struct {
	mock.Mock
}

// Submit implements Mutator.
func (m *MockMutator) Submit(ctx context.Context, call Call) (Submission, error) {
	args := m.Called(ctx, call)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Submission), args.Error(1)
}

// FakeSubmission is a Submission driven by the test through Send.
type FakeSubmission struct {
	events chan LifecycleEvent
	once   sync.Once
	closed chan struct{}
}

// NewFakeSubmission creates a submission with room for buffer events.
func NewFakeSubmission(buffer int) *FakeSubmission {
	return &FakeSubmission{
		events: make(chan LifecycleEvent, buffer),
		closed: make(chan struct{}),
	}
}

// Send queues an event.
func (f *FakeSubmission) Send(ev LifecycleEvent) {
	f.events <- ev
}

// Finish closes the event stream.
func (f *FakeSubmission) Finish() {
	close(f.events)
}

// Events implements Submission.
func (f *FakeSubmission) Events() <-chan LifecycleEvent {
	return f.events
}

// Close implements Submission.
func (f *FakeSubmission) Close() {
	f.once.Do(func() { close(f.closed) })
}

// Closed reports whether Close was called.
func (f *FakeSubmission) Closed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}
