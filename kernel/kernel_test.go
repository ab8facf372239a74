package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// resetGlobalRunContext lets each test construct its own Kernel despite
// the single-kernel-per-process guard, since tests run in the same
// process but each wants an isolated Context.
func resetGlobalRunContext() { globalRunContext = nil }

func TestKernelRunAdvancesTimeAndDrivesClock(t *testing.T) {
	resetGlobalRunContext()

	var levels []bool
	clk := NewClock("clk", 4, func(level bool) { levels = append(levels, level) })

	sched := NewScheduler()
	ctx := &Context{Scheduler: sched}
	k := NewKernel(ctx, []*Clock{clk}, nil)
	k.Initialise()

	err := k.Run(16)
	assert.NoError(t, err)
	assert.Equal(t, Time(16), k.Now())
	assert.Equal(t, []bool{
		true, true, false, false,
		true, true, false, false,
		true, true, false, false,
		true, true, false, false,
	}, levels)
}

func TestKernelRunSurfacesRootTaskVerificationFailure(t *testing.T) {
	resetGlobalRunContext()

	sched := NewScheduler()
	ctx := &Context{Scheduler: sched}

	clk := NewClock("clk", 4, nil)
	failer := NewTask("failer", func(tc *TaskContext) (struct{}, error) {
		clk.WaitEdge(tc, RisingEdge, Monitor)
		return struct{}{}, NewVerificationFailure("mismatch")
	})

	k := NewKernel(ctx, []*Clock{clk}, []RootTask{failer})
	k.Initialise()
	assert.NoError(t, k.StartRootTasks())

	err := k.Run(100)
	assert.Error(t, err)
	assert.Equal(t, FailureVerification, ClassifyFailure(err))
}

func TestKernelNewKernelTwiceIsContractError(t *testing.T) {
	resetGlobalRunContext()
	ctx1 := &Context{Scheduler: NewScheduler()}
	NewKernel(ctx1, nil, nil)

	ctx2 := &Context{Scheduler: NewScheduler()}
	assert.Panics(t, func() { NewKernel(ctx2, nil, nil) })
	resetGlobalRunContext()
}

func TestDelayZeroReturnsImmediately(t *testing.T) {
	resetGlobalRunContext()
	sched := NewScheduler()
	ctx := &Context{Scheduler: sched}
	globalRunContext = ctx

	tk := NewTask("t", func(tc *TaskContext) (struct{}, error) {
		Delay(tc, 0)
		return struct{}{}, nil
	})
	tk.Start()
	assert.True(t, tk.Done())
	resetGlobalRunContext()
}

func TestDelaySuspendsUntilScheduledTime(t *testing.T) {
	resetGlobalRunContext()
	sched := NewScheduler()
	ctx := &Context{Scheduler: sched}

	tk := NewTask("t", func(tc *TaskContext) (Time, error) {
		Delay(tc, 10)
		return tc.Now(), nil
	})
	k := NewKernel(ctx, nil, []RootTask{tk})
	assert.NoError(t, k.StartRootTasks())
	assert.False(t, tk.Done())

	assert.NoError(t, k.Run(MaxTime))
	assert.True(t, tk.Done())
	resetGlobalRunContext()
}
