package kernel

// DUT is the opaque design-under-test contract: the kernel only ever
// re-evaluates combinational logic and writes input pins through it.
// The actual pin layout is DUT-specific and lives entirely outside this
// package.
type DUT interface {
	Eval()
}

// WaveformSink receives one sample per virtual-time instant the Kernel
// advances to.
type WaveformSink interface {
	Dump(t Time)
}

// Context is the explicit, process-wide binding of the active
// simulation's shared facilities: the scheduler, the DUT, the waveform
// sink, and the logger. It replaces the original design's
// SimulationContext::current() singleton and global current_time_ps:
// components receive it explicitly, task bodies receive it through
// their TaskContext (filled from the package-level globalRunContext,
// which NewKernel writes once), and NewKernel forbids constructing a
// second Kernel in the same process.
type Context struct {
	Scheduler *Scheduler
	DUT       DUT
	Waveform  WaveformSink
	Logger    *Logger

	now Time
}

// Now returns the current virtual time. Mutated only by the Kernel.
func (c *Context) Now() Time { return c.now }

// TaskContext is the per-task view of the shared Context: it adds the
// implicit "which task is currently running" binding that awaitables
// need, without resorting to a goroutine-local global. Because exactly
// one task goroutine is ever active at a time, passing this down through
// body calls is equivalent to (and safer than) a thread-local.
type TaskContext struct {
	*Context
	self handle
}

// SimulationComponent is a named node with access to the shared
// scheduler and DUT via its embedded Context. The test environment
// calls BuildPhase then ConnectPhase on every component before
// collecting root tasks from RunPhase.
type SimulationComponent interface {
	Name() string
	BuildPhase(ctx *Context)
	ConnectPhase(ctx *Context)
	RunPhase(tc *TaskContext) error
}

// BaseComponent provides no-op BuildPhase/ConnectPhase hooks so concrete
// components only need to override what they use, matching the
// original's default-hook design.
type BaseComponent struct {
	ComponentName string
}

func (b *BaseComponent) Name() string               { return b.ComponentName }
func (b *BaseComponent) BuildPhase(ctx *Context)     {}
func (b *BaseComponent) ConnectPhase(ctx *Context)   {}
