// Package debugger observes a running VM: it records the executed instructions and
// errors, stops on breakpoints and halts and renders the machine state as text.
package debugger

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// DefaultHistorySize is the number of executed instructions kept by default.
const DefaultHistorySize = 64

// maxErrors is the number of error messages kept.
const maxErrors = 16

// Event describes why the debugger suggests the driver to pause.
type Event int

const (
	// EventNone signals that execution can continue.
	EventNone Event = iota
	// EventHalt signals that the program jumped to itself.
	EventHalt
	// EventBreakpoint signals that the program counter reached a breakpoint.
	EventBreakpoint
)

// String returns the name of the event.
func (e Event) String() string {
	switch e {
	case EventHalt:
		return "halt"
	case EventBreakpoint:
		return "breakpoint"
	default:
		return "none"
	}
}

// Debugger executes VM cycles and records them.
type Debugger struct {
	logger  *log.Logger
	machine *vm.VM

	historySize int
	history     []vm.Instruction
	errors      []string
	unknown     int // number of unknown instructions executed

	breakpoints set.Set[uint16]
}

// New returns a debugger for the VM that keeps the last historySize executed instructions.
func New(logger *log.Logger, machine *vm.VM, historySize int) *Debugger {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	return &Debugger{
		logger:      logger,
		machine:     machine,
		historySize: historySize,
		history:     make([]vm.Instruction, 0, historySize),
		breakpoints: set.New[uint16](),
	}
}

// Machine returns the observed VM.
func (d *Debugger) Machine() *vm.VM {
	return d.machine
}

// AddBreakpoint pauses execution when the program counter reaches the address.
func (d *Debugger) AddBreakpoint(address uint16) {
	d.breakpoints.Add(address)
	d.logger.Debug("Breakpoint added", log.Hex("address", address))
}

// Step executes one VM cycle, records the executed instruction and returns the
// event that the driver should react to.
func (d *Debugger) Step() (vm.Instruction, Event, error) {
	ins, err := d.machine.Step()
	d.record(ins)

	if err != nil {
		d.logError(fmt.Sprintf("%04X at $%03X: %s", ins.Opcode, ins.Address, err))
		return ins, EventNone, fmt.Errorf("executing instruction at $%03X: %w", ins.Address, err)
	}

	if ins.Unknown() {
		d.unknown++
		d.logError(fmt.Sprintf("opcode not supported: %04X", ins.Opcode))
		d.logger.Debug("Unsupported opcode",
			log.Hex("address", ins.Address),
			log.Hex("opcode", ins.Opcode))
	} else {
		d.trace(ins)
	}

	switch {
	case ins.Halts():
		return ins, EventHalt, nil
	case d.breakpoints.Contains(d.machine.PC()):
		d.logger.Debug("Breakpoint reached", log.Hex("address", d.machine.PC()))
		return ins, EventBreakpoint, nil
	default:
		return ins, EventNone, nil
	}
}

// History returns the recorded instructions, the most recent last.
func (d *Debugger) History() []vm.Instruction {
	history := make([]vm.Instruction, len(d.history))
	copy(history, d.history)
	return history
}

// Errors returns the recorded error messages, the most recent last.
func (d *Debugger) Errors() []string {
	errs := make([]string, len(d.errors))
	copy(errs, d.errors)
	return errs
}

// UnknownCount returns the number of executed unknown instructions.
func (d *Debugger) UnknownCount() int {
	return d.unknown
}

// LastOp returns the raw opcode of the last executed instruction as hex value.
func (d *Debugger) LastOp() string {
	ins, ok := d.last()
	if !ok {
		return "---"
	}
	return fmt.Sprintf("%04X", ins.Opcode)
}

// LastInstruction returns the disassembly of the last executed instruction.
func (d *Debugger) LastInstruction() string {
	ins, ok := d.last()
	if !ok {
		return "NULL"
	}
	return disasm.Format(ins.Opcode)
}

// Clear removes the recorded history and errors, used after loading a new program.
func (d *Debugger) Clear() {
	d.history = d.history[:0]
	d.errors = nil
	d.unknown = 0
}

func (d *Debugger) last() (vm.Instruction, bool) {
	if len(d.history) == 0 {
		return vm.Instruction{}, false
	}
	return d.history[len(d.history)-1], true
}

func (d *Debugger) record(ins vm.Instruction) {
	if len(d.history) == d.historySize {
		copy(d.history, d.history[1:])
		d.history = d.history[:len(d.history)-1]
	}
	d.history = append(d.history, ins)
}

// trace logs the memory accesses and skips of an executed instruction.
func (d *Debugger) trace(ins vm.Instruction) {
	switch ins.Kind {
	case vm.KindStore, vm.KindDecimal:
		d.logger.Debug("Memory write",
			log.Hex("address", ins.Address),
			log.Hex("index", d.machine.Registers().I))
	case vm.KindRestore, vm.KindDraw:
		d.logger.Debug("Memory read",
			log.Hex("address", ins.Address),
			log.Hex("index", d.machine.Registers().I))
	case vm.KindSkipEqual, vm.KindSkipNotEqual, vm.KindSkipEqualRegister, vm.KindSkipNotEqualRegister:
		d.logger.Debug("Conditional skip",
			log.Hex("address", ins.Address),
			log.Hex("next", d.machine.PC()))
	}
}

func (d *Debugger) logError(msg string) {
	if len(d.errors) == maxErrors {
		d.errors = d.errors[1:]
	}
	d.errors = append(d.errors, msg)
}
