// Package options contains the program options.
package options

import "time"

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	Debug      bool `flag:"debug" usage:"enable debug logging"`
	Quiet      bool `flag:"q" usage:"quiet mode"`
	Disasm     bool `flag:"disasm" usage:"print a disassembly listing instead of running the program"`
	Headless   bool `flag:"headless" usage:"run without terminal display and keyboard input"`
	Slow       bool `flag:"slow" usage:"execute one instruction every 500ms"`
	StopOnHalt bool `flag:"stop-on-halt" usage:"stop when the program jumps to itself" default:"true"`
}

// CompatFlags contains interpreter compatibility options.
type CompatFlags struct {
	CarrySetOnly bool `flag:"carry-set-only" usage:"only ever set VF in add and subtract instructions, never clear it"`
	ShiftLeftMSB bool `flag:"shl-msb" usage:"set VF to the shifted out bit in shift left"`
}

// RunFlags contains execution control options.
type RunFlags struct {
	Cycles      uint64        `flag:"cycles" usage:"stop after the given number of cycles, 0 for no limit"`
	Interval    time.Duration `flag:"interval" usage:"delay between instructions" default:"16ms"`
	Seed        uint64        `flag:"seed" usage:"seed for the random number generator, 0 for a random seed"`
	History     int           `flag:"history" usage:"number of executed instructions to keep" default:"64"`
	Breakpoints []uint16      `flag:"break" usage:"comma separated list of breakpoint addresses"`
}

// OutputFlags contains disassembly output formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in comments"`
	ZeroBytes     bool `flag:"z" usage:"include trailing zero bytes"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	CompatFlags
	RunFlags
	OutputFlags
}
