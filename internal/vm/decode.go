package vm

import "github.com/retroenv/retrogolib/arch/cpu/chip8"

// recognized returns whether the word encodes an instruction of the CHIP-8
// opcode table. Words outside of it are never dispatched.
func recognized(word uint16) bool {
	for _, op := range chip8.Opcodes[word>>12] {
		if op.Info.Mask&word == op.Info.Value {
			return true
		}
	}
	return false
}
