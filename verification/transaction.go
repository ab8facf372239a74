// Package verification provides the DUT-agnostic sequencer/driver/
// monitor/scoreboard/coverage framework layered on top of the kernel
// package's simulation primitives.
package verification

import (
	"sync"
	"sync/atomic"

	"github.com/Vincentho711/bob-sub000/kernel"
)

var txnIDCounter atomic.Uint64

// Transaction[P] is a pooled, reference-held payload shared between a
// producer (sequence/driver) and a consumer (monitor/scoreboard). Id is
// drawn from a process-wide monotonic counter at construction and
// remains unique for the life of the process even when the payload slot
// is later recycled by a TxnPool.
type Transaction[P any] struct {
	ID       uint64
	Payload  P
	Response error
	Done     *kernel.Event

	pool *TxnPool[P]
}

// NewTransaction constructs a standalone (unpooled) transaction.
func NewTransaction[P any](payload P) *Transaction[P] {
	return &Transaction[P]{
		ID:      txnIDCounter.Add(1),
		Payload: payload,
		Done:    kernel.NewEvent(),
	}
}

// Release returns the transaction to its owning pool, if it was drawn
// from one; it is a no-op for standalone transactions.
func (t *Transaction[P]) Release() {
	if t.pool != nil {
		t.pool.release(t)
	}
}

// TxnPool[P] wraps a sync.Pool of *Transaction[P], grounded on the same
// object-pooling idiom logiface itself uses internally for its builder
// objects (see logiface's ref-pool), generalised here to the
// verification framework's transaction reuse need described by the
// original object-pool component.
type TxnPool[P any] struct {
	pool    sync.Pool
	factory func() P
	reset   func(*P)
}

// NewTxnPool constructs a pool whose payloads are created by factory.
// reset, if non-nil, is called on a recycled payload before reuse.
func NewTxnPool[P any](factory func() P, reset func(*P)) *TxnPool[P] {
	p := &TxnPool[P]{factory: factory, reset: reset}
	p.pool.New = func() any {
		return &Transaction[P]{pool: p}
	}
	return p
}

// Get draws a recycled or freshly allocated transaction, assigning it a
// fresh id and a fresh Done event (an Event cannot be safely reused
// across triggers without Reset, and Reset disallows pending waiters, so
// a fresh Event per checkout is simpler and avoids that contract risk
// entirely).
func (p *TxnPool[P]) Get() *Transaction[P] {
	txn := p.pool.Get().(*Transaction[P])
	recycled := txn.ID != 0
	txn.ID = txnIDCounter.Add(1)
	txn.Done = kernel.NewEvent()
	txn.Response = nil
	if recycled && p.reset != nil {
		p.reset(&txn.Payload)
	} else {
		txn.Payload = p.factory()
	}
	return txn
}

func (p *TxnPool[P]) release(txn *Transaction[P]) {
	p.pool.Put(txn)
}
