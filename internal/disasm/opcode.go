// Package disasm formats CHIP-8 opcodes as assembly mnemonics and writes
// listings of program images.
package disasm

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Lookup returns the opcode table entry matching the 16-bit instruction word.
// It returns false for words that do not encode a known instruction.
func Lookup(word uint16) (chip8.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return op, op.Instruction != nil
		}
	}
	return chip8.Opcode{}, false
}

// decodeWord extracts the 16-bit instruction word from instruction bytes.
func decodeWord(data []byte) (uint16, bool) {
	if len(data) < opcodeSize {
		return 0, false
	}
	return uint16(data[0])<<8 | uint16(data[1]), true
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(word uint16) uint16 {
	return (word & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(word uint16) uint16 {
	return (word & 0x00F0) >> 4
}
