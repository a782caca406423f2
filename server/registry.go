package server

import (
	"context"
	"sync"
	"time"

	"github.com/InvArch/invarch-bridge-service/bridgectrl"
	"github.com/InvArch/invarch-bridge-service/bridgeop"
	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/metrics"
	"github.com/InvArch/invarch-bridge-service/utils"
	"github.com/ethereum/go-ethereum/event"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pkg/errors"
)

const (
	defaultOperationTTL   = time.Hour
	maxFinishedOperations = 10000
)

// operation is what the registry needs from a bridge operation.
type operation interface {
	Execute(ctx context.Context) error
	IsProcessing() bool
	State() bridgeop.State
	Status() bridgeop.StatusChange
	SubscribeStatus(ch chan<- bridgeop.StatusChange) event.Subscription
}

type operationEntry struct {
	ID        string
	Direction bridgectrl.Direction
	Account   string
	CreatedAt time.Time
	op        operation
}

// OperationView is the API representation of an operation.
type OperationView struct {
	ID        string                `json:"id"`
	Direction bridgectrl.Direction  `json:"direction"`
	Account   string                `json:"account"`
	CreatedAt int64                 `json:"createdAt"`
	State     bridgeop.State        `json:"state"`
	Status    bridgeop.StatusChange `json:"status"`
}

func (e *operationEntry) view() OperationView {
	return OperationView{
		ID:        e.ID,
		Direction: e.Direction,
		Account:   e.Account,
		CreatedAt: e.CreatedAt.UnixMilli(),
		State:     e.op.State(),
		Status:    e.op.Status(),
	}
}

// OperationRegistry runs the operations started through the API and keeps
// them queryable until ttl after they finished.
type OperationRegistry struct {
	clock utils.TimeProvider

	lock     sync.RWMutex
	running  map[string]*operationEntry
	finished *expirable.LRU[string, *operationEntry]
	wg       sync.WaitGroup
}

// NewOperationRegistry creates an empty registry.
func NewOperationRegistry(ttl time.Duration, clock utils.TimeProvider) *OperationRegistry {
	if ttl <= 0 {
		ttl = defaultOperationTTL
	}
	if clock == nil {
		clock = utils.SystemTime{}
	}
	return &OperationRegistry{
		clock:    clock,
		running:  make(map[string]*operationEntry),
		finished: expirable.NewLRU[string, *operationEntry](maxFinishedOperations, nil, ttl),
	}
}

// Run registers op under id and executes it in the background until the
// submission ends or ctx is done.
func (r *OperationRegistry) Run(ctx context.Context, id string, direction bridgectrl.Direction, account string, op operation) {
	entry := &operationEntry{ID: id, Direction: direction, Account: account, CreatedAt: r.clock.Now(), op: op}
	r.lock.Lock()
	r.running[id] = entry
	r.lock.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.updateInFlight()
		defer r.finish(entry)
		logger := log.WithFields("operationID", id, "direction", direction)
		if err := op.Execute(ctx); err != nil {
			logger.Warnf("operation ended with error: %v", err)
			return
		}
		logger.Infof("operation ended in state %s", op.State())
	}()
	r.updateInFlight()
}

// Get returns the operation registered under id.
func (r *OperationRegistry) Get(id string) (*operationEntry, error) {
	r.lock.RLock()
	entry, ok := r.running[id]
	r.lock.RUnlock()
	if ok {
		return entry, nil
	}
	if entry, ok = r.finished.Get(id); ok {
		return entry, nil
	}
	return nil, errors.Wrapf(gerror.ErrOperationNotFound, "operation %s", id)
}

// Wait blocks until every running operation returned.
func (r *OperationRegistry) Wait() {
	r.wg.Wait()
}

// finish moves entry to the finished operations, where it expires after the
// ttl.
func (r *OperationRegistry) finish(entry *operationEntry) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.finished.Add(entry.ID, entry)
	delete(r.running, entry.ID)
}

func (r *OperationRegistry) updateInFlight() {
	r.lock.RLock()
	n := 0
	for _, e := range r.running {
		if e.op.IsProcessing() {
			n++
		}
	}
	r.lock.RUnlock()
	metrics.SetOperationsInFlight(n)
}
