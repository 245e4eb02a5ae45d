package vm

import "fmt"

// Kind classifies an executed instruction.
type Kind uint8

// Instruction kinds, one per supported instruction.
const (
	KindUnknown Kind = iota
	KindClear                     // 00E0
	KindReturn                    // 00EE
	KindJump                      // 1NNN
	KindHalt                      // 1NNN jumping to itself
	KindCall                      // 2NNN
	KindSkipEqual                 // 3XNN
	KindSkipNotEqual              // 4XNN
	KindSkipEqualRegister         // 5XY0
	KindLoad                      // 6XNN
	KindAdd                       // 7XNN
	KindMove                      // 8XY0
	KindOr                        // 8XY1
	KindAnd                       // 8XY2
	KindXor                       // 8XY3
	KindAddRegister               // 8XY4
	KindSub                       // 8XY5
	KindShiftRight                // 8XY6
	KindSubReverse                // 8XY7
	KindShiftLeft                 // 8XYE
	KindSkipNotEqualRegister      // 9XY0
	KindLoadIndex                 // ANNN
	KindJumpOffset                // BNNN
	KindRandom                    // CXNN
	KindDraw                      // DXYN
	KindReadDelay                 // FX07
	KindSetDelay                  // FX15
	KindSetSound                  // FX18
	KindAddIndex                  // FX1E
	KindDecimal                   // FX33
	KindStore                     // FX55
	KindRestore                   // FX65
)

var kindNames = [...]string{
	KindUnknown:              "unknown",
	KindClear:                "clear",
	KindReturn:               "return",
	KindJump:                 "jump",
	KindHalt:                 "halt",
	KindCall:                 "call",
	KindSkipEqual:            "skip-equal",
	KindSkipNotEqual:         "skip-not-equal",
	KindSkipEqualRegister:    "skip-equal-register",
	KindLoad:                 "load",
	KindAdd:                  "add",
	KindMove:                 "move",
	KindOr:                   "or",
	KindAnd:                  "and",
	KindXor:                  "xor",
	KindAddRegister:          "add-register",
	KindSub:                  "sub",
	KindShiftRight:           "shift-right",
	KindSubReverse:           "sub-reverse",
	KindShiftLeft:            "shift-left",
	KindSkipNotEqualRegister: "skip-not-equal-register",
	KindLoadIndex:            "load-index",
	KindJumpOffset:           "jump-offset",
	KindRandom:               "random",
	KindDraw:                 "draw",
	KindReadDelay:            "read-delay",
	KindSetDelay:             "set-delay",
	KindSetSound:             "set-sound",
	KindAddIndex:             "add-index",
	KindDecimal:              "decimal",
	KindStore:                "store",
	KindRestore:              "restore",
}

// String returns the name of the instruction kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Instruction describes an executed instruction.
type Instruction struct {
	Kind    Kind
	Opcode  uint16 // raw instruction word
	Address uint16 // address the instruction was fetched from
}

// Halts returns whether the instruction is a jump to itself, which programs
// use to signal that they finished.
func (i Instruction) Halts() bool {
	return i.Kind == KindHalt
}

// Unknown returns whether the opcode is not supported.
func (i Instruction) Unknown() bool {
	return i.Kind == KindUnknown
}

// String returns the kind and the raw opcode of the instruction.
func (i Instruction) String() string {
	return fmt.Sprintf("%s %04X", i.Kind, i.Opcode)
}

// X returns the first register index nibble of the opcode.
func (i Instruction) X() byte {
	return byte(i.Opcode>>8) & 0x0F
}

// Y returns the second register index nibble of the opcode.
func (i Instruction) Y() byte {
	return byte(i.Opcode>>4) & 0x0F
}

// N returns the lowest nibble of the opcode.
func (i Instruction) N() byte {
	return byte(i.Opcode) & 0x0F
}

// NN returns the lowest byte of the opcode.
func (i Instruction) NN() byte {
	return byte(i.Opcode)
}

// NNN returns the 12-bit address of the opcode.
func (i Instruction) NNN() uint16 {
	return i.Opcode & 0x0FFF
}
