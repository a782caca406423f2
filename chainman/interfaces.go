package chainman

import (
	"context"
)

// Querier reads chain state.
type Querier interface {
	// ReadStorage decodes the value at pallet.item[keyArgs] into target.
	// keyArgs are SCALE encoded, the hashers come from the metadata.
	ReadStorage(ctx context.Context, pallet, item string, target interface{}, keyArgs ...[]byte) (bool, error)
	// ReadStorageEntries lists every entry of a storage map.
	ReadStorageEntries(ctx context.Context, pallet, item string) ([]StorageEntry, error)
	// GetConstant decodes a runtime constant into target.
	GetConstant(ctx context.Context, pallet, name string, target interface{}) error
}

// Mutator signs and submits calls.
type Mutator interface {
	Submit(ctx context.Context, call Call) (Submission, error)
}

// Submission is a submitted extrinsic being watched.
type Submission interface {
	// Events yields the lifecycle of the extrinsic, in order. The channel is
	// closed after a terminal event or when watching stops.
	Events() <-chan LifecycleEvent
	// Close stops watching. The extrinsic itself is not retracted.
	Close()
}

// StorageEntry is one raw key/value pair of a storage map. KeyArgs is the
// key without the pallet and item prefix.
type StorageEntry struct {
	KeyArgs []byte
	Value   []byte
}

// Call is a runtime call by name. Args are SCALE encodable values; an arg of
// type Call is resolved into a nested call.
type Call struct {
	Pallet string
	Method string
	Args   []interface{}
}

// Name returns "Pallet.method".
func (c Call) Name() string {
	return c.Pallet + "." + c.Method
}
