package terminal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestKey(t *testing.T) {
	tests := []struct {
		typed byte
		key   byte
		ok    bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'q', 0x4, true},
		{'R', 0xD, true},
		{'s', 0x8, true},
		{'f', 0xE, true},
		{'x', 0x0, true},
		{'v', 0xF, true},
		{'5', 0, false},
		{'p', 0, false},
		{escape, 0, false},
	}

	for _, tt := range tests {
		key, ok := Key(tt.typed)
		assert.Equal(t, tt.ok, ok, string(tt.typed))
		assert.Equal(t, tt.key, key, string(tt.typed))
	}
}

func TestKeymapCoversKeypad(t *testing.T) {
	var seen [vm.KeyCount]bool
	for _, key := range keymap {
		seen[key] = true
	}
	for key, ok := range seen {
		assert.True(t, ok, "key %X not mapped", key)
	}
}

func TestRender(t *testing.T) {
	var fb vm.Framebuffer
	set := func(x, y int) { fb[y*vm.Width+x] = true }
	set(0, 0)
	set(1, 1)
	set(2, 0)
	set(2, 1)
	set(0, vm.Height-1)

	var buf bytes.Buffer
	screen := NewScreen(&buf)
	assert.NoError(t, screen.Render(&fb, "pc: 200"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, cursorHome))

	assert.True(t, strings.HasSuffix(out, "\r\n"))

	// top border, pixel rows, bottom border and status line
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, cursorHome), "\r\n"), "\r\n")
	assert.Len(t, lines, vm.Height/2+3)
	assert.Equal(t, "+"+strings.Repeat("-", vm.Width)+"+", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "|▀▄█ "))
	assert.True(t, strings.HasPrefix(lines[vm.Height/2], "|▄ "))
	assert.Equal(t, "pc: 200"+clearLine, lines[vm.Height/2+2])
}

func TestScreenOpenClose(t *testing.T) {
	var buf bytes.Buffer
	screen := NewScreen(&buf)
	assert.NoError(t, screen.Open())
	assert.NoError(t, screen.Close())
	assert.Contains(t, buf.String(), hideCursor)
	assert.Contains(t, buf.String(), showCursor)
}

func collect(in *Input) []runner.KeyEvent {
	var events []runner.KeyEvent
	for ev := range in.Events() {
		events = append(events, ev)
	}
	return events
}

func TestInputPressRelease(t *testing.T) {
	in := NewInput(log.NewTestLogger(t), time.Millisecond, nil)

	err := in.Run(context.Background(), strings.NewReader("q"))
	assert.NoError(t, err)

	assert.Equal(t, []runner.KeyEvent{
		{Key: 0x4, Pressed: true},
		{Key: 0x4, Pressed: false},
	}, collect(in))
}

func TestInputIgnoresUnmappedAndRepeats(t *testing.T) {
	in := NewInput(log.NewTestLogger(t), time.Hour, nil)

	err := in.Run(context.Background(), strings.NewReader("pzzk"))
	assert.NoError(t, err)

	assert.Equal(t, []runner.KeyEvent{
		{Key: 0xA, Pressed: true},
		{Key: 0xA, Pressed: false},
	}, collect(in))
}

func TestInputControls(t *testing.T) {
	in := NewInput(log.NewTestLogger(t), time.Hour, nil)

	err := in.Run(context.Background(), strings.NewReader(" ..1 "))
	assert.NoError(t, err)

	var controls []runner.Control
	for c := range in.Controls() {
		controls = append(controls, c)
	}
	assert.Equal(t, []runner.Control{
		runner.ControlPause,
		runner.ControlStep,
		runner.ControlStep,
		runner.ControlPause,
	}, controls)

	assert.Equal(t, []runner.KeyEvent{
		{Key: 0x1, Pressed: true},
		{Key: 0x1, Pressed: false},
	}, collect(in))
}

func TestInputEscape(t *testing.T) {
	var escaped bool
	in := NewInput(log.NewTestLogger(t), time.Hour, func() { escaped = true })

	err := in.Run(context.Background(), strings.NewReader("1\x1b2"))
	assert.NoError(t, err)
	assert.True(t, escaped)

	assert.Equal(t, []runner.KeyEvent{
		{Key: 0x1, Pressed: true},
		{Key: 0x1, Pressed: false},
	}, collect(in))
}

func TestInputCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })

	in := NewInput(log.NewTestLogger(t), time.Millisecond, nil)
	assert.NoError(t, in.Run(ctx, reader))
	assert.Empty(t, collect(in))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken")
}

func TestInputReadError(t *testing.T) {
	in := NewInput(log.NewTestLogger(t), time.Millisecond, nil)
	err := in.Run(context.Background(), failingReader{})
	assert.ErrorContains(t, err, "broken")
}
