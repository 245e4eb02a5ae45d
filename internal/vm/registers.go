package vm

// RegisterCount is the number of general-purpose registers.
const RegisterCount = 16

// FlagRegister is the index of VF, the carry, borrow and collision flag.
const FlagRegister = 0xF

// Registers contains the register file of the VM.
type Registers struct {
	V  [RegisterCount]byte // general-purpose registers V0-VF
	I  uint16              // address register
	PC uint16              // program counter
	SP uint8               // stack pointer, points one past the top of the stack

	DT uint8 // delay timer
	ST uint8 // sound timer
}

// decrementTimers counts both timers down by one, they saturate at 0.
func (r *Registers) decrementTimers() {
	if r.DT > 0 {
		r.DT--
	}
	if r.ST > 0 {
		r.ST--
	}
}
