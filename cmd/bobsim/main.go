// Command bobsim is the test-harness entry point: it parses --seed and
// --cycles, builds a small demonstration simulation (two independent
// 4ns clocks), runs it, and maps the outcome to an exit code. A
// concrete DUT-specific harness would replace runDemo with its own
// component wiring but reuse parseFlags/exitCode as-is.
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/pflag"

	"github.com/Vincentho711/bob-sub000/kernel"
)

type config struct {
	seed   uint32
	cycles uint64
}

func parseFlags(args []string) (config, error) {
	fs := pflag.NewFlagSet("bobsim", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: bobsim [--seed=<u32>] [--cycles=<u64>]")
		fs.PrintDefaults()
	}

	var cfg config
	fs.Uint32Var(&cfg.seed, "seed", 0, "non-zero random seed (derived from entropy if absent)")
	fs.Uint64Var(&cfg.cycles, "cycles", 100, "maximum number of clock cycles to run")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		return cfg, err
	}

	if cfg.seed == 0 {
		cfg.seed = rand.Uint32()
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "bobsim:", err)
		os.Exit(2)
	}

	logger := kernel.NewLogger(os.Stderr)
	logger.Info("starting run", kernel.Field("seed", fmt.Sprint(cfg.seed)))

	runErr := runDemo(cfg, logger)
	os.Exit(exitCode(runErr))
}

// exitCode maps a run's outcome to the process exit code: 0 for a clean
// pass, 1 for a VerificationFailure, 2 for any other failure class.
func exitCode(err error) int {
	switch kernel.ClassifyFailure(err) {
	case kernel.FailureNone:
		return 0
	case kernel.FailureVerification:
		return 1
	default:
		return 2
	}
}
