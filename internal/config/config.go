// Package config handles application configuration and setup
package config

import (
	"time"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// VMOptions returns the machine options for the program options.
func VMOptions(opts options.Program) vm.Options {
	vmOpts := vm.DefaultOptions()
	vmOpts.CarrySetOnly = opts.CarrySetOnly
	vmOpts.ShiftLeftMSB = opts.ShiftLeftMSB
	if opts.Seed != 0 {
		vmOpts.Random = vm.SeededRandom(opts.Seed)
	}
	return vmOpts
}

// DisasmOptions returns the listing options for the program options.
func DisasmOptions(opts options.Program) disasm.Options {
	disasmOpts := disasm.DefaultOptions()
	disasmOpts.HexComments = !opts.NoHexComments
	disasmOpts.OffsetComments = !opts.NoOffsets
	disasmOpts.ZeroBytes = opts.ZeroBytes
	return disasmOpts
}

// RunnerConfig returns the runner settings for the program options.
// Observer and key input are wired by the caller.
func RunnerConfig(opts options.Program) runner.Config {
	return runner.Config{
		Interval:   Interval(opts),
		MaxCycles:  opts.Cycles,
		StopOnHalt: opts.StopOnHalt,
	}
}

// Interval returns the tick interval, slow mode overrides the configured one.
func Interval(opts options.Program) time.Duration {
	if opts.Slow {
		return runner.DefaultSlowInterval
	}
	if opts.Interval < 0 {
		return 0
	}
	return opts.Interval
}
