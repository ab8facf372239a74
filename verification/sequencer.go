package verification

import "github.com/Vincentho711/bob-sub000/kernel"

// Sequencer[P] arbitrates access to a driver: sequences enqueue
// transactions via Send, and the driver pulls them in FIFO order via
// NextTransaction. It is a thin, typed wrapper over a TLMQueue, matching
// the generic sequencer/driver handshake described by the original
// verification core (sequencer.h/driver.h).
type Sequencer[P any] struct {
	queue  *kernel.TLMQueue[*Transaction[P]]
	closed bool
}

// NewSequencer constructs an empty Sequencer.
func NewSequencer[P any]() *Sequencer[P] {
	return &Sequencer[P]{queue: kernel.NewTLMQueue[*Transaction[P]]()}
}

// Send enqueues txn and awaits its completion (Done), returning the
// Response recorded by whichever driver eventually processed it.
func (s *Sequencer[P]) Send(tc *kernel.TaskContext, txn *Transaction[P]) error {
	s.queue.Put(txn)
	txn.Done.Wait(tc)
	return txn.Response
}

// NextTransaction is the driver-side pull: it blocks until a
// transaction is available.
func (s *Sequencer[P]) NextTransaction(tc *kernel.TaskContext) *Transaction[P] {
	return s.queue.BlockingGet(tc)
}

// Close marks the sequencer as having no further transactions; drivers
// observe this via Closed after draining any transactions already
// queued.
func (s *Sequencer[P]) Close() { s.closed = true }

// Closed reports whether Close has been called.
func (s *Sequencer[P]) Closed() bool { return s.closed }
