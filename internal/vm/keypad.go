package vm

import "fmt"

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

// Keypad contains the pressed state of every key.
type Keypad [KeyCount]bool

// Press marks the key as held down. Pressing a held key has no effect.
func (v *VM) Press(key byte) error {
	return v.setKey(key, true)
}

// Release marks the key as released. Releasing a released key has no effect.
func (v *VM) Release(key byte) error {
	return v.setKey(key, false)
}

// Keys returns the current state of the keypad.
func (v *VM) Keys() Keypad {
	return v.keys
}

func (v *VM) setKey(key byte, pressed bool) error {
	if key >= KeyCount {
		return fmt.Errorf("key %d: %w", key, ErrInvalidKey)
	}
	v.keys[key] = pressed
	return nil
}
