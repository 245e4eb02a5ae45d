// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/chip8vm/internal/debugger"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/chip8vm/internal/vm"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	var breakpoints string
	readOptionFlags(flags, &opts, &breakpoints)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	opts.Breakpoints, err = parseBreakpoints(breakpoints)
	if err != nil {
		return opts, err
	}

	if opts.History < 0 {
		return opts, fmt.Errorf("invalid history size %d", opts.History)
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// parseBreakpoints parses a comma separated list of hexadecimal addresses.
// Addresses can be prefixed with $ or 0x.
func parseBreakpoints(s string) ([]uint16, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var addresses []uint16
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		field = strings.TrimPrefix(field, "$")
		field = strings.TrimPrefix(strings.ToLower(field), "0x")

		address, err := strconv.ParseUint(field, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing breakpoint address '%s': %w", field, err)
		}
		if address > vm.MaxAddress {
			return nil, fmt.Errorf("breakpoint address $%X exceeds memory size", address)
		}
		addresses = append(addresses, uint16(address))
	}
	return addresses, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, breakpoints *string) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the ROM instead of running it")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal display and keyboard, dump display and CPU state on exit")
	flags.BoolVar(&opts.Slow, "slow", false, "slow mode, execute one instruction every 500ms")
	flags.BoolVar(&opts.StopOnHalt, "stop-on-halt", true, "stop when the program jumps to its own address")
	flags.BoolVar(&opts.CarrySetOnly, "carry-set-only", false, "add and subtract only ever set VF, they never clear it")
	flags.BoolVar(&opts.ShiftLeftMSB, "shl-msb", false, "shift left sets VF to the shifted out bit")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after the given number of cycles, 0 runs without limit")
	flags.DurationVar(&opts.Interval, "interval", runner.DefaultInterval, "delay between two instructions")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a random seed")
	flags.IntVar(&opts.History, "history", debugger.DefaultHistorySize, "number of executed instructions to keep for the debugger")
	flags.StringVar(breakpoints, "break", "", "comma separated list of hexadecimal breakpoint addresses, for example 200,2A4")

	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the program")
}
