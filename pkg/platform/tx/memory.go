package tx

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	dErrors "carbonledger/pkg/domain-errors"
)

type (
	contextKeyJournal struct{}
	contextKeyView    struct{}
)

// journal collects undo closures recorded by in-memory stores during one
// transaction. They run in reverse order when the transaction fails.
type journal struct {
	undo []func()
	gate *callbackGate
}

// callbackGate counts collaborator callbacks running under the current
// transaction holder. While it is open, a caller that is not joined to the
// holder's transaction can only be a re-entry from inside the callback, or
// must wait on it, so it fails instead of queueing behind the holder.
type callbackGate struct {
	depth atomic.Int32
}

func (g *callbackGate) inCallback() bool {
	return g.depth.Load() > 0
}

func reentered() error {
	return dErrors.NewReason(dErrors.CodeConflict, dErrors.ReasonReentrantCall,
		"transaction requested from inside a collaborator callback")
}

// Callback runs fn as a collaborator callback of the transaction bound to ctx.
// New transactions started on the same boundary while fn runs, including ones
// on a detached context, fail with conflict/reentrant_call.
func Callback(ctx context.Context, fn func() error) error {
	j, ok := ctx.Value(contextKeyJournal{}).(*journal)
	if !ok || j.gate == nil {
		return fn()
	}
	j.gate.depth.Add(1)
	defer j.gate.depth.Add(-1)
	return fn()
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// Record registers an undo step for the write just performed. Outside a
// transaction it is a no-op.
func Record(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(contextKeyJournal{}).(*journal); ok {
		j.undo = append(j.undo, undo)
	}
}

// InTx reports whether ctx is inside a write transaction of either kind.
func InTx(ctx context.Context) bool {
	if _, ok := ctx.Value(contextKeyJournal{}).(*journal); ok {
		return true
	}
	_, ok := From(ctx)
	return ok
}

// MemoryTx serializes mutations for in-memory stores. One MemoryTx must be
// shared by every store taking part in the same transactions.
type MemoryTx struct {
	mu      sync.RWMutex
	gate    callbackGate
	timeout time.Duration
}

func NewMemory() *MemoryTx {
	return &MemoryTx{timeout: defaultTxTimeout}
}

// RunInTx holds the write lock for the duration of fn. If fn fails every
// recorded write is undone before the lock is released.
func (t *MemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, ok := ctx.Value(contextKeyJournal{}).(*journal); ok {
		return fn(ctx)
	}
	if _, ok := ctx.Value(contextKeyView{}).(bool); ok {
		return dErrors.New(dErrors.CodeInternal, "write transaction requested inside a read view")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	if !t.mu.TryLock() {
		if t.gate.inCallback() {
			return reentered()
		}
		t.mu.Lock()
	}
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	j := &journal{gate: &t.gate}
	if err := fn(context.WithValue(ctx, contextKeyJournal{}, j)); err != nil {
		j.rollback()
		return err
	}
	return nil
}

// View holds the read lock for the duration of fn.
func (t *MemoryTx) View(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(contextKeyJournal{}).(*journal); ok {
		return fn(ctx)
	}
	if _, ok := ctx.Value(contextKeyView{}).(bool); ok {
		return fn(ctx)
	}
	if !t.mu.TryRLock() {
		if t.gate.inCallback() {
			return reentered()
		}
		t.mu.RLock()
	}
	defer t.mu.RUnlock()
	return fn(context.WithValue(ctx, contextKeyView{}, true))
}
