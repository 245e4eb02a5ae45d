package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/vm"
)

const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	clearLine   = "\x1b[K"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// halfBlocks is indexed by the state of the upper pixel in bit 1 and the
// lower pixel in bit 0, two framebuffer rows share one terminal line.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// Screen renders frames to a terminal.
type Screen struct {
	w   io.Writer
	buf strings.Builder
}

// NewScreen returns a screen writing to w.
func NewScreen(w io.Writer) *Screen {
	return &Screen{w: w}
}

// Open clears the terminal and hides the cursor.
func (s *Screen) Open() error {
	if _, err := io.WriteString(s.w, clearScreen+hideCursor); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	return nil
}

// Close shows the cursor again and moves it below the rendered frame.
func (s *Screen) Close() error {
	if _, err := fmt.Fprintf(s.w, "\x1b[%d;1H%s", vm.Height/2+4, showCursor); err != nil {
		return fmt.Errorf("restoring screen: %w", err)
	}
	return nil
}

// Render draws the framebuffer inside a border followed by a status line.
func (s *Screen) Render(fb *vm.Framebuffer, status string) error {
	s.buf.Reset()
	s.buf.WriteString(cursorHome)

	border := "+" + strings.Repeat("-", vm.Width) + "+\r\n"
	s.buf.WriteString(border)
	for y := 0; y < vm.Height; y += 2 {
		s.buf.WriteByte('|')
		for x := range vm.Width {
			var cell int
			if fb.Pixel(x, y) {
				cell |= 2
			}
			if fb.Pixel(x, y+1) {
				cell |= 1
			}
			s.buf.WriteString(halfBlocks[cell])
		}
		s.buf.WriteString("|\r\n")
	}
	s.buf.WriteString(border)
	s.buf.WriteString(status)
	s.buf.WriteString(clearLine + "\r\n")

	if _, err := io.WriteString(s.w, s.buf.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}
