package verification

import "github.com/Vincentho711/bob-sub000/kernel"

// Checker provides the "fatal" helper referenced by the error handling
// design: a verification check that, on failure, logs and raises a
// VerificationFailure. It is deliberately tiny: the panic/recover
// machinery that turns this into a captured per-task failure already
// lives in kernel.Task.
type Checker struct {
	Logger *kernel.Logger
}

// Fatal logs an error-level message and raises a VerificationFailure,
// unwinding to the owning task's recover wrapper.
func (c *Checker) Fatal(format string, args ...any) {
	vf := kernel.NewVerificationFailure(format, args...)
	if c.Logger != nil {
		c.Logger.Error(vf.Error(), nil)
	}
	panic(vf)
}

// Scoreboard[P] consumes transactions from a single monitor queue (In)
// and compares them against a reference model, raising a
// VerificationFailure on mismatch. Grounded on the original
// verification core's scoreboard.h.
type Scoreboard[P any] struct {
	kernel.BaseComponent
	Checker

	In      *kernel.TLMQueue[*Transaction[P]]
	Want    func() (P, bool) // produces the next expected value; false means "none expected yet"
	Compare func(got, want P) error

	stop func(count int) bool
}

// WithStopAfter sets RunPhase to return once count transactions have
// been compared.
func (s *Scoreboard[P]) WithStopAfter(count int) *Scoreboard[P] {
	s.stop = func(n int) bool { return n >= count }
	return s
}

// RunPhase implements kernel.SimulationComponent.
func (s *Scoreboard[P]) RunPhase(tc *kernel.TaskContext) error {
	n := 0
	for {
		if s.stop != nil && s.stop(n) {
			return nil
		}
		txn := s.In.BlockingGet(tc)

		want, ok := s.Want()
		if !ok {
			continue
		}
		if err := s.Compare(txn.Payload, want); err != nil {
			s.Fatal("scoreboard mismatch: %v", err)
		}
		txn.Release()
		n++
	}
}
