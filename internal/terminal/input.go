package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

const (
	// DefaultHold is the time a key stays pressed after it was typed.
	// Terminals do not report key releases.
	DefaultHold = 150 * time.Millisecond

	escape      = 0x1b
	pause       = ' '
	singleStep  = '.'
	eventBuffer = 32
)

// Input translates terminal input into keypad events and run controls.
// Space pauses and resumes the run, a dot executes a single cycle.
type Input struct {
	logger   *log.Logger
	hold     time.Duration
	onEscape func()
	events   chan runner.KeyEvent
	controls chan runner.Control
}

// NewInput returns a new input reader. Typed keys are released after hold,
// onEscape is called when the escape key is typed.
func NewInput(logger *log.Logger, hold time.Duration, onEscape func()) *Input {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Input{
		logger:   logger,
		hold:     hold,
		onEscape: onEscape,
		events:   make(chan runner.KeyEvent, eventBuffer),
		controls: make(chan runner.Control, eventBuffer),
	}
}

// Events returns the channel of key events. It is closed when Run returns.
func (in *Input) Events() <-chan runner.KeyEvent {
	return in.events
}

// Controls returns the channel of run controls. It is closed when Run returns.
func (in *Input) Controls() <-chan runner.Control {
	return in.controls
}

// Run reads r until the context is cancelled, the escape key is typed or the
// reader is exhausted. Keys that are still held are released before returning.
func (in *Input) Run(ctx context.Context, r io.Reader) error {
	defer close(in.events)
	defer close(in.controls)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	typed := make(chan byte)
	readErr := make(chan error, 1)
	go func() {
		defer close(typed)
		buf := make([]byte, 16)
		for {
			n, err := r.Read(buf)
			for _, c := range buf[:n] {
				select {
				case typed <- c:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(in.hold / 4)
	defer ticker.Stop()
	held := map[byte]time.Time{}

	for {
		select {
		case <-ctx.Done():
			in.releaseAll(ctx, held)
			return nil

		case now := <-ticker.C:
			for key, deadline := range held {
				if now.After(deadline) {
					delete(held, key)
					send(ctx, in.events, runner.KeyEvent{Key: key})
				}
			}

		case c, ok := <-typed:
			if !ok {
				in.releaseAll(ctx, held)
				select {
				case err := <-readErr:
					return fmt.Errorf("reading terminal input: %w", err)
				default:
					return nil
				}
			}

			if c == escape {
				in.logger.Debug("Escape key typed")
				if in.onEscape != nil {
					in.onEscape()
				}
				in.releaseAll(ctx, held)
				return nil
			}

			switch c {
			case pause:
				in.logger.Debug("Pause toggled")
				send(ctx, in.controls, runner.ControlPause)
				continue
			case singleStep:
				send(ctx, in.controls, runner.ControlStep)
				continue
			}

			key, ok := Key(c)
			if !ok {
				continue
			}
			if _, pressed := held[key]; !pressed {
				send(ctx, in.events, runner.KeyEvent{Key: key, Pressed: true})
			}
			held[key] = time.Now().Add(in.hold)
		}
	}
}

func (in *Input) releaseAll(ctx context.Context, held map[byte]time.Time) {
	for key := range held {
		delete(held, key)
		send(ctx, in.events, runner.KeyEvent{Key: key})
	}
}

// send drops the value if the context is cancelled and the buffer is full.
func send[T any](ctx context.Context, ch chan<- T, v T) {
	select {
	case ch <- v:
	case <-ctx.Done():
		select {
		case ch <- v:
		default:
		}
	}
}
