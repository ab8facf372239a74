package main

import (
	"fmt"
	"math/rand"

	"github.com/Vincentho711/bob-sub000/kernel"
	"github.com/Vincentho711/bob-sub000/verification"
)

// loopbackDUT is the smallest possible opaque DUT: each Eval copies the
// last driven input straight to the output, wired through a pair of
// plain fields rather than real pin simulation since this binary has no
// real Verilog-derived model to link against.
type loopbackDUT struct {
	in, out int
}

func (d *loopbackDUT) Eval() { d.out = d.in }

// runDemo wires up two independent 4ns clocks, a sequencer/driver
// pushing pseudo-random ints onto the DUT's input at
// the Drive sub-phase of clk0's rising edge, and a monitor/scoreboard
// pair sampling the output at the Monitor sub-phase of the same edge and
// checking each sample against the sent values in send order.
func runDemo(cfg config, logger *kernel.Logger) error {
	rng := rand.New(rand.NewSource(int64(cfg.seed)))

	dut := &loopbackDUT{}
	sched := kernel.NewScheduler()
	ctx := &kernel.Context{Scheduler: sched, DUT: dut, Logger: logger}

	clk0 := kernel.NewClock("clk0", 4*kernel.Nanosecond, nil)
	clk1 := kernel.NewClock("clk1", 4*kernel.Nanosecond, nil)

	seq := verification.NewSequencer[int]()
	sent := make([]int, 0, cfg.cycles)

	drv := &verification.Driver[int]{
		Sequencer: seq,
		Clock:     clk0,
		Step:      kernel.RisingEdge,
		Phase:     kernel.Drive,
		Drive: func(tc *kernel.TaskContext, payload int) error {
			dut.in = payload
			dut.Eval()
			return nil
		},
	}

	out := kernel.NewTLMQueue[*verification.Transaction[int]]()
	mon := &verification.Monitor[int]{
		Clock:  clk0,
		Step:   kernel.RisingEdge,
		Phase:  kernel.Monitor,
		Out:    out,
		Sample: func(tc *kernel.TaskContext) (int, bool) { return dut.out, true },
	}

	i := 0
	sb := &verification.Scoreboard[int]{
		Checker: verification.Checker{Logger: logger},
		In:      out,
		Want: func() (int, bool) {
			if i >= len(sent) {
				return 0, false
			}
			v := sent[i]
			i++
			return v, true
		},
		Compare: func(got, want int) error {
			if got != want {
				return fmt.Errorf("got %d, want %d", got, want)
			}
			return nil
		},
	}
	sb.WithStopAfter(int(cfg.cycles))

	producer := kernel.NewTask[struct{}]("producer", func(tc *kernel.TaskContext) (struct{}, error) {
		for n := uint64(0); n < cfg.cycles; n++ {
			v := rng.Intn(1 << 16)
			sent = append(sent, v)
			txn := verification.NewTransaction(v)
			if err := seq.Send(tc, txn); err != nil {
				return struct{}{}, err
			}
		}
		seq.Close()
		return struct{}{}, nil
	})

	driverTask := kernel.NewTask[struct{}]("driver", func(tc *kernel.TaskContext) (struct{}, error) {
		return struct{}{}, drv.RunPhase(tc)
	})
	monitorTask := kernel.NewTask[struct{}]("monitor", func(tc *kernel.TaskContext) (struct{}, error) {
		mon.WithStopCondition(func() bool { return seq.Closed() && len(sent) == i })
		return struct{}{}, mon.RunPhase(tc)
	})
	scoreboardTask := kernel.NewTask[struct{}]("scoreboard", func(tc *kernel.TaskContext) (struct{}, error) {
		return struct{}{}, sb.RunPhase(tc)
	})

	k := kernel.NewKernel(ctx, []*kernel.Clock{clk0, clk1}, []kernel.RootTask{
		producer, driverTask, monitorTask, scoreboardTask,
	})
	k.Initialise()
	if err := k.StartRootTasks(); err != nil {
		return err
	}
	if err := k.Run(Time(cfg.cycles+4) * clk0Period()); err != nil {
		return err
	}
	logger.Info("run complete", kernel.Field("cycles", fmt.Sprint(cfg.cycles)))
	return nil
}

type Time = kernel.Time

func clk0Period() Time { return 4 * kernel.Nanosecond }
