//go:build linux || darwin || freebsd || netbsd || openbsd

package terminal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// State is the terminal state saved before entering raw mode.
type State struct {
	fd      int
	termios unix.Termios
}

// MakeRaw disables echo and line buffering on the terminal referred to by fd.
// Signal generation stays enabled so that Ctrl+C still interrupts the program.
func MakeRaw(fd int) (*State, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("getting terminal attributes: %w", err)
	}

	state := &State{fd: fd, termios: *termios}
	raw := *termios

	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL | unix.IXON
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8

	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, fmt.Errorf("setting terminal attributes: %w", err)
	}
	return state, nil
}

// Restore resets the terminal to the saved state.
func (s *State) Restore() error {
	if err := unix.IoctlSetTermios(s.fd, ioctlSetTermios, &s.termios); err != nil {
		return fmt.Errorf("restoring terminal attributes: %w", err)
	}
	return nil
}

// IsTerminal returns whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	_, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	return err == nil
}
