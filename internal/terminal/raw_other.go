//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package terminal

import "errors"

// ErrUnsupported is returned when raw mode is not available on the platform.
var ErrUnsupported = errors.New("raw terminal mode is not supported on this platform")

// State is the terminal state saved before entering raw mode.
type State struct{}

// MakeRaw is not supported on this platform.
func MakeRaw(int) (*State, error) {
	return nil, ErrUnsupported
}

// Restore does nothing on this platform.
func (s *State) Restore() error {
	return nil
}

// IsTerminal always reports false on this platform.
func IsTerminal(int) bool {
	return false
}
