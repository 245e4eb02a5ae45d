// Package terminal presents a running VM on an ANSI terminal: it renders the
// framebuffer, maps keyboard input onto the hexadecimal keypad and switches
// the terminal into raw mode.
package terminal

// keymap maps the left hand block of a QWERTY keyboard onto the keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var keymap = map[byte]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Key returns the keypad key for the typed character.
// Upper case letters map to the same keys as lower case ones.
func Key(c byte) (byte, bool) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	key, ok := keymap[c]
	return key, ok
}
