package verification

import "github.com/Vincentho711/bob-sub000/kernel"

// Driver[P] pulls transactions from a Sequencer and drives them onto
// the DUT at a configured clock edge/phase, signalling each
// transaction's Done event once driven. Grounded on the original
// verification core's driver.h, generalised from its DUT-specific form
// to an arbitrary payload type P.
type Driver[P any] struct {
	kernel.BaseComponent

	Sequencer *Sequencer[P]
	Clock     *kernel.Clock
	Step      kernel.ClockStep
	Phase     kernel.ClockStep // sub-phase within Step; conventionally kernel.Drive
	Drive     func(tc *kernel.TaskContext, payload P) error
}

// RunPhase implements kernel.SimulationComponent: it loops, pulling the
// next transaction, driving it at the configured edge, and signalling
// completion, until the sequencer is closed and its queue is empty. A
// driver already blocked on an empty queue when Close is called stays
// blocked.
func (d *Driver[P]) RunPhase(tc *kernel.TaskContext) error {
	for {
		var txn *Transaction[P]
		if d.Sequencer.Closed() {
			queued, ok := d.Sequencer.queue.Get()
			if !ok {
				return nil
			}
			txn = queued
		} else {
			txn = d.Sequencer.NextTransaction(tc)
		}

		d.Clock.WaitEdge(tc, d.Step, d.Phase)

		err := d.Drive(tc, txn.Payload)
		txn.Response = err
		txn.Done.Trigger()

		if err != nil {
			return err
		}
	}
}
