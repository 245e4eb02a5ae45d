package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// haltingProgram adds 5 and 3 into V0, draws the font glyph 0 and jumps to itself.
var haltingProgram = []byte{
	0x60, 0x05, // 200: LD V0, $05
	0x70, 0x03, // 202: ADD V0, $03
	0xA0, 0x00, // 204: LD I, $000
	0x61, 0x00, // 206: LD V1, $00
	0xD1, 0x15, // 208: DRW V1, V1, 5
	0x12, 0x0A, // 20A: JP $20A
}

func headlessOptions(input string) options.Program {
	return options.Program{
		Parameters: options.Parameters{Input: input},
		Flags:      options.Flags{Headless: true, StopOnHalt: true, Quiet: true},
	}
}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.loader)
	assert.NotNil(t, p.input)
}

func TestExecuteDisasm(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := headlessOptions(createTempFile(t, haltingProgram))
	opts.Disasm = true

	var buf bytes.Buffer
	assert.NoError(t, p.Execute(context.Background(), opts, &buf))

	out := buf.String()
	assert.Contains(t, out, "; CHIP-8 ROM Disassembly")
	assert.Contains(t, out, ".org $200")
	assert.False(t, strings.Contains(out, "DISPLAY"))
}

func TestExecuteHeadless(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := headlessOptions(createTempFile(t, haltingProgram))

	var buf bytes.Buffer
	assert.NoError(t, p.Execute(context.Background(), opts, &buf))

	out := buf.String()
	assert.Contains(t, out, "DISPLAY")
	assert.Contains(t, out, "R0\toooo")
	assert.Contains(t, out, "PC: 20A")
	assert.Contains(t, out, "V0: 08")
}

func TestExecuteLoadError(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := headlessOptions(filepath.Join(t.TempDir(), "missing.ch8"))

	err := p.Execute(context.Background(), opts, &bytes.Buffer{})
	assert.ErrorContains(t, err, "loading program")
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(log.NewTestLogger(t))
	opts := headlessOptions(createTempFile(t, haltingProgram))

	err := p.Execute(ctx, opts, &bytes.Buffer{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		modify func(opts *options.Program)
		reason runner.StopReason
		cycles uint64
	}{
		{
			name:   "halt",
			modify: func(*options.Program) {},
			reason: runner.StopHalt,
			cycles: 6,
		},
		{
			name:   "cycle limit",
			modify: func(opts *options.Program) { opts.Cycles = 3 },
			reason: runner.StopCycleLimit,
			cycles: 3,
		},
		{
			name:   "breakpoint",
			modify: func(opts *options.Program) { opts.Breakpoints = []uint16{0x206} },
			reason: runner.StopBreakpoint,
			cycles: 3,
		},
		{
			name: "run past halt",
			modify: func(opts *options.Program) {
				opts.StopOnHalt = false
				opts.Cycles = 10
			},
			reason: runner.StopCycleLimit,
			cycles: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(log.NewTestLogger(t))
			opts := headlessOptions("")
			tt.modify(&opts)

			result, err := p.Run(context.Background(), haltingProgram, opts, &bytes.Buffer{})
			assert.NoError(t, err)
			assert.Equal(t, tt.reason, result.Reason)
			assert.Equal(t, tt.cycles, result.Cycles)
		})
	}
}

func TestRunStackError(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := headlessOptions("")

	var buf bytes.Buffer
	result, err := p.Run(context.Background(), []byte{0x00, 0xEE}, opts, &buf)
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.Equal(t, runner.StopError, result.Reason)
	assert.Contains(t, buf.String(), "CPU")
}

func TestRunTooLarge(t *testing.T) {
	p := New(log.NewTestLogger(t))

	_, err := p.Run(context.Background(), make([]byte, vm.MaxProgramSize+1), headlessOptions(""), &bytes.Buffer{})
	assert.True(t, errors.Is(err, vm.ErrProgramTooLarge))
}

func TestRunNoTerminal(t *testing.T) {
	p := New(log.NewTestLogger(t))
	file, err := os.Open(createTempFile(t, nil))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	p.input = file

	opts := headlessOptions("")
	opts.Headless = false

	_, err = p.Run(context.Background(), haltingProgram, opts, &bytes.Buffer{})
	assert.True(t, errors.Is(err, ErrNoTerminal))
}

func TestDisassembleOptions(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := headlessOptions("")
	opts.NoHexComments = true
	opts.NoOffsets = true

	var buf bytes.Buffer
	assert.NoError(t, p.Disassemble(haltingProgram, opts, &buf))
	assert.False(t, strings.Contains(buf.String(), " ; "))
	assert.Contains(t, buf.String(), "V0, $05\n")
}

// createTempFile creates a temporary ROM file with the given content for testing.
func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
