// Package runner drives a VM: it executes one cycle per tick at a configurable
// interval and hands the machine state to an observer after every frame.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/debugger"
	"github.com/retroenv/retrogolib/log"
)

// Default tick intervals.
const (
	DefaultInterval     = 16 * time.Millisecond
	DefaultSlowInterval = 500 * time.Millisecond
)

// StopReason describes why a run ended.
type StopReason int

// Stop reasons.
const (
	StopCancelled StopReason = iota
	StopHalt
	StopBreakpoint
	StopCycleLimit
	StopError
)

// String returns the name of the stop reason.
func (s StopReason) String() string {
	switch s {
	case StopHalt:
		return "halt"
	case StopBreakpoint:
		return "breakpoint"
	case StopCycleLimit:
		return "cycle limit"
	case StopError:
		return "error"
	default:
		return "cancelled"
	}
}

// KeyEvent is a key press or release forwarded to the VM.
type KeyEvent struct {
	Key     byte
	Pressed bool
}

// Control changes the execution state of a run.
type Control int

// Run controls.
const (
	// ControlPause pauses a running and resumes a paused run.
	ControlPause Control = iota
	// ControlStep pauses the run and executes a single cycle.
	ControlStep
)

// FrameFunc is called with the debugger after every executed frame.
type FrameFunc func(dbg *debugger.Debugger) error

// Config contains the runner settings.
type Config struct {
	Interval   time.Duration // tick interval, 0 runs as fast as possible
	MaxCycles  uint64        // stop after this many cycles, 0 for no limit
	FrameEvery uint64        // call the frame observer every n cycles, 0 is treated as 1
	StopOnHalt bool          // stop when the program jumps to itself

	Keys     <-chan KeyEvent // key events, applied between cycles
	Controls <-chan Control  // pause and single step requests
	OnFrame  FrameFunc
}

// Result summarizes a run.
type Result struct {
	Cycles uint64
	Reason StopReason
}

// Runner executes VM cycles through a debugger.
type Runner struct {
	logger *log.Logger
	dbg    *debugger.Debugger
	cfg    Config

	cycles uint64
	paused bool
	steps  int // cycles granted while paused
}

// New returns a runner for the debugger with the given configuration.
func New(logger *log.Logger, dbg *debugger.Debugger, cfg Config) *Runner {
	if cfg.FrameEvery == 0 {
		cfg.FrameEvery = 1
	}
	return &Runner{
		logger: logger,
		dbg:    dbg,
		cfg:    cfg,
	}
}

// Cycles returns the number of cycles executed.
func (r *Runner) Cycles() uint64 {
	return r.cycles
}

// Run executes cycles until the context is cancelled, the program halts, a
// breakpoint is reached, the cycle limit is hit or an instruction fails.
// Cancellation of the context is not reported as an error.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var tick <-chan time.Time
	if r.cfg.Interval > 0 {
		ticker := time.NewTicker(r.cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	start := r.cycles
	for {
		if err := r.wait(ctx, tick); err != nil {
			return r.result(start, StopCancelled), nil
		}
		if err := r.waitResume(ctx); err != nil {
			return r.result(start, StopCancelled), nil
		}

		if r.cfg.MaxCycles > 0 && r.cycles-start >= r.cfg.MaxCycles {
			return r.result(start, StopCycleLimit), nil
		}

		event, err := r.Step()
		if err != nil {
			return r.result(start, StopError), err
		}

		switch event {
		case debugger.EventHalt:
			if r.cfg.StopOnHalt {
				r.logger.Info("Program halted", log.Hex("address", r.dbg.Machine().PC()))
				return r.result(start, StopHalt), nil
			}
		case debugger.EventBreakpoint:
			r.logger.Info("Breakpoint reached", log.Hex("address", r.dbg.Machine().PC()))
			return r.result(start, StopBreakpoint), nil
		}
	}
}

// Step applies pending key events and executes a single cycle.
func (r *Runner) Step() (debugger.Event, error) {
	if err := r.applyKeys(); err != nil {
		return debugger.EventNone, err
	}

	_, event, err := r.dbg.Step()
	r.cycles++
	if err != nil {
		return event, fmt.Errorf("cycle %d: %w", r.cycles, err)
	}

	if r.cfg.OnFrame != nil && r.cycles%r.cfg.FrameEvery == 0 {
		if err := r.cfg.OnFrame(r.dbg); err != nil {
			return event, fmt.Errorf("rendering frame: %w", err)
		}
	}
	return event, nil
}

// wait blocks until the next tick or the cancellation of the context.
func (r *Runner) wait(ctx context.Context, tick <-chan time.Time) error {
	if err := ctx.Err(); err != nil || tick == nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tick:
		return nil
	}
}

// waitResume applies pending controls and blocks while the run is paused
// until it is resumed or a single step is requested.
func (r *Runner) waitResume(ctx context.Context) error {
	r.applyControls()
	for r.paused && r.steps == 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c, ok := <-r.cfg.Controls:
			if !ok {
				r.cfg.Controls = nil
				r.paused = false
				continue
			}
			r.control(c)
		}
	}
	if r.steps > 0 {
		r.steps--
	}
	return nil
}

// applyControls handles all queued controls without blocking.
func (r *Runner) applyControls() {
	for {
		select {
		case c, ok := <-r.cfg.Controls:
			if !ok {
				r.cfg.Controls = nil
				r.paused = false
				return
			}
			r.control(c)
		default:
			return
		}
	}
}

func (r *Runner) control(c Control) {
	switch c {
	case ControlPause:
		r.paused = !r.paused
		r.steps = 0
		r.logger.Debug("Run paused", log.Bool("paused", r.paused), log.Uint64("cycle", r.cycles))
	case ControlStep:
		r.paused = true
		r.steps++
	}
}

// applyKeys forwards all queued key events to the VM without blocking.
func (r *Runner) applyKeys() error {
	machine := r.dbg.Machine()
	for {
		select {
		case ev, ok := <-r.cfg.Keys:
			if !ok {
				r.cfg.Keys = nil
				return nil
			}

			var err error
			if ev.Pressed {
				err = machine.Press(ev.Key)
			} else {
				err = machine.Release(ev.Key)
			}
			if err != nil {
				return fmt.Errorf("applying key event: %w", err)
			}

		default:
			return nil
		}
	}
}

func (r *Runner) result(start uint64, reason StopReason) Result {
	return Result{
		Cycles: r.cycles - start,
		Reason: reason,
	}
}
