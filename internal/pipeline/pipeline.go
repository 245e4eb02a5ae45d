// Package pipeline orchestrates the interpreter workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/debugger"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/chip8vm/internal/terminal"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// ErrNoTerminal is returned when an interactive run is requested without a terminal.
var ErrNoTerminal = errors.New("standard input is not a terminal, use -headless")

// Pipeline orchestrates loading, disassembling and running a program.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
	input  *os.File
}

// New creates a new pipeline that reads interactive input from stdin.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(logger),
		input:  os.Stdin,
	}
}

// Execute loads the program file and either prints its disassembly or runs it.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	image, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	p.printInfo(opts, image)

	if opts.Disasm {
		return p.Disassemble(image, opts, writer)
	}

	result, err := p.Run(ctx, image, opts, writer)
	if err != nil {
		return err
	}
	if result.Reason == runner.StopCancelled {
		return context.Canceled
	}
	return nil
}

// Disassemble writes the listing of the program image.
func (p *Pipeline) Disassemble(image []byte, opts options.Program, writer io.Writer) error {
	if err := disasm.Listing(writer, image, config.DisasmOptions(opts)); err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}
	return nil
}

// Run executes the program image on a new VM until it stops.
func (p *Pipeline) Run(ctx context.Context, image []byte, opts options.Program, writer io.Writer) (runner.Result, error) {
	machine := vm.New(config.VMOptions(opts))
	if err := machine.Load(image); err != nil {
		return runner.Result{}, fmt.Errorf("loading program into memory: %w", err)
	}

	dbg := debugger.New(p.logger, machine, opts.History)
	for _, address := range opts.Breakpoints {
		dbg.AddBreakpoint(address)
	}

	cfg := config.RunnerConfig(opts)

	var result runner.Result
	var err error
	if opts.Headless {
		result, err = p.runHeadless(ctx, dbg, cfg, writer)
	} else {
		result, err = p.runTerminal(ctx, dbg, cfg, writer)
	}

	p.printResult(opts, dbg, result)
	return result, err
}

// runHeadless runs without display output and dumps the machine state on exit.
func (p *Pipeline) runHeadless(ctx context.Context, dbg *debugger.Debugger,
	cfg runner.Config, writer io.Writer) (runner.Result, error) {

	result, runErr := runner.New(p.logger, dbg, cfg).Run(ctx)

	if err := dbg.DumpDisplay(writer); err != nil {
		return result, errors.Join(runErr, err)
	}
	if err := dbg.DumpCPU(writer); err != nil {
		return result, errors.Join(runErr, err)
	}
	if runErr != nil {
		return result, fmt.Errorf("running program: %w", runErr)
	}
	return result, nil
}

// runTerminal renders every frame to the terminal and forwards typed keys.
func (p *Pipeline) runTerminal(ctx context.Context, dbg *debugger.Debugger,
	cfg runner.Config, writer io.Writer) (runner.Result, error) {

	fd := int(p.input.Fd())
	if !terminal.IsTerminal(fd) {
		return runner.Result{}, ErrNoTerminal
	}

	state, err := terminal.MakeRaw(fd)
	if err != nil {
		return runner.Result{}, fmt.Errorf("entering raw terminal mode: %w", err)
	}
	defer func() {
		if err := state.Restore(); err != nil {
			p.logger.Error("Restoring terminal failed", log.Err(err))
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := terminal.NewInput(p.logger, terminal.DefaultHold, cancel)
	go func() {
		if err := input.Run(ctx, p.input); err != nil {
			p.logger.Error("Reading keyboard input failed", log.Err(err))
		}
	}()

	screen := terminal.NewScreen(writer)
	if err := screen.Open(); err != nil {
		return runner.Result{}, err
	}
	defer func() {
		if err := screen.Close(); err != nil {
			p.logger.Error("Closing screen failed", log.Err(err))
		}
	}()

	cfg.Keys = input.Events()
	cfg.Controls = input.Controls()
	cfg.OnFrame = func(dbg *debugger.Debugger) error {
		fb := dbg.Machine().Framebuffer()
		return screen.Render(&fb, dbg.Status())
	}

	result, err := runner.New(p.logger, dbg, cfg).Run(ctx)
	if err != nil {
		return result, fmt.Errorf("running program: %w", err)
	}
	return result, nil
}

// printInfo prints information about the program being processed.
func (p *Pipeline) printInfo(opts options.Program, image []byte) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(image)),
	)
}

// printResult logs why execution stopped and the recorded errors.
func (p *Pipeline) printResult(opts options.Program, dbg *debugger.Debugger, result runner.Result) {
	for _, msg := range dbg.Errors() {
		p.logger.Debug("Execution error", log.String("error", msg))
	}

	if unknown := dbg.UnknownCount(); unknown > 0 {
		p.logger.Warn("Program used unsupported opcodes", log.Int("count", unknown))
	}

	if opts.Quiet {
		return
	}
	p.logger.Info("Execution stopped",
		log.Stringer("reason", result.Reason),
		log.Int("cycles", int(result.Cycles)),
		log.String("status", dbg.Status()),
	)
}
