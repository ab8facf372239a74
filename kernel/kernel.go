package kernel

import "fmt"

// RootTask is the non-generic surface the Kernel needs to start and
// exception-check root tasks without depending on their result type.
type RootTask interface {
	Start()
	CheckException() error
	Name() string
}

// Kernel is the outer loop that drains the Scheduler, advances virtual
// time, dispatches events, and surfaces exceptions. It exclusively owns
// the Scheduler, every Clock, and the root task list.
type Kernel struct {
	ctx       *Context
	clocks    []*Clock
	rootTasks []RootTask
	now       Time
}

// NewKernel constructs a Kernel bound to ctx. Only one Kernel may be
// constructed per process: globalRunContext is the single well-defined
// module-level binding the design notes call for in place of a mutable
// global singleton, and assigning it twice is a contract violation:
// this kernel only ever drives a single simulation per process.
func NewKernel(ctx *Context, clocks []*Clock, rootTasks []RootTask) *Kernel {
	if globalRunContext != nil {
		panic(newContractError("a Kernel has already been constructed in this process"))
	}
	globalRunContext = ctx
	return &Kernel{ctx: ctx, clocks: clocks, rootTasks: rootTasks}
}

// Initialise asks every clock to self-schedule its first event.
func (k *Kernel) Initialise() {
	for _, c := range k.clocks {
		c.Register(k.ctx.Scheduler)
	}
}

// StartRootTasks calls Start on every root task. A synchronous failure
// is captured and re-raised here via CheckException.
func (k *Kernel) StartRootTasks() error {
	for _, t := range k.rootTasks {
		t.Start()
		if err := t.CheckException(); err != nil {
			return err
		}
	}
	return nil
}

func (k *Kernel) checkRootTasks() error {
	for _, t := range k.rootTasks {
		if err := t.CheckException(); err != nil {
			return fmt.Errorf("task %q: %w", t.Name(), err)
		}
	}
	return nil
}

// Run drives the scheduler until either maxTime is reached or no events
// remain, per the fixed event-batch order: clock events, a barrier
// check, async events (each followed by dut.Eval()), a barrier check,
// the immediate queue drained once, dut.Eval(), a final barrier check,
// then a waveform sample.
func (k *Kernel) Run(maxTime Time) error {
	s := k.ctx.Scheduler
	for {
		nextT := s.PeekNextTime()
		if nextT >= maxTime {
			k.advanceTo(maxTime)
			return nil
		}
		k.advanceTo(nextT)

		batch := s.GetNextBatch()

		for _, ce := range batch.ClockEvents {
			ce.clock.Step(s, k.now, ce.step)
		}
		if err := k.checkRootTasks(); err != nil {
			return err
		}

		for _, ae := range batch.AsyncEvents {
			ae.callback()
			if k.ctx.DUT != nil {
				k.ctx.DUT.Eval()
			}
		}
		if err := k.checkRootTasks(); err != nil {
			return err
		}

		s.ProcessAsyncImmediateEvents()
		if k.ctx.DUT != nil {
			k.ctx.DUT.Eval()
		}
		if err := k.checkRootTasks(); err != nil {
			return err
		}

		if k.ctx.Waveform != nil {
			k.ctx.Waveform.Dump(k.now)
		}
	}
}

func (k *Kernel) advanceTo(t Time) {
	k.now = t
	k.ctx.now = t
	k.ctx.Scheduler.SetCurrentTime(t)
}

// Now returns the kernel's current virtual time.
func (k *Kernel) Now() Time { return k.now }
