package verification

import "github.com/Vincentho711/bob-sub000/kernel"

// Monitor[P] samples DUT state once per configured clock phase and
// publishes reconstructed transactions to an output queue. Grounded on
// the original verification core's monitor.h, generalised to an
// arbitrary payload type P and output queue.
type Monitor[P any] struct {
	kernel.BaseComponent

	Clock  *kernel.Clock
	Step   kernel.ClockStep
	Phase  kernel.ClockStep // conventionally kernel.Monitor
	Sample func(tc *kernel.TaskContext) (P, bool)
	Out    *kernel.TLMQueue[*Transaction[P]]
	Pool   *TxnPool[P] // optional; nil means allocate unpooled transactions

	stop func() bool // optional termination predicate; nil runs forever
}

// WithStopCondition sets a predicate checked once per cycle; when it
// returns true, RunPhase returns instead of sampling again.
func (m *Monitor[P]) WithStopCondition(stop func() bool) *Monitor[P] {
	m.stop = stop
	return m
}

// RunPhase implements kernel.SimulationComponent.
func (m *Monitor[P]) RunPhase(tc *kernel.TaskContext) error {
	for {
		if m.stop != nil && m.stop() {
			return nil
		}
		m.Clock.WaitEdge(tc, m.Step, m.Phase)

		payload, ok := m.Sample(tc)
		if !ok {
			continue
		}

		var txn *Transaction[P]
		if m.Pool != nil {
			txn = m.Pool.Get()
			txn.Payload = payload
		} else {
			txn = NewTransaction(payload)
		}
		m.Out.Put(txn)
	}
}
