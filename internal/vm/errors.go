package vm

import "errors"

var (
	// ErrProgramTooLarge is returned when a program image does not fit into memory.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrStackOverflow is returned when a call exceeds the call stack capacity.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is executed on an empty call stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrInvalidKey is returned for key events outside of the 16 hexadecimal keys.
	ErrInvalidKey = errors.New("invalid key")
)
