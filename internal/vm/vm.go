package vm

import "fmt"

// VM is a CHIP-8 virtual machine.
type VM struct {
	opts   Options
	random func() byte

	memory  Memory
	regs    Registers
	stack   Stack
	display Framebuffer
	keys    Keypad

	last Instruction // last executed instruction
}

// New returns a new VM in its reset state.
func New(opts Options) *VM {
	v := &VM{
		opts:   opts,
		random: opts.Random,
	}
	if v.random == nil {
		v.random = defaultRandom
	}
	v.Reset()
	return v
}

// Reset returns the complete machine state to its power-on state, the font glyphs
// are loaded into the interpreter area.
func (v *VM) Reset() {
	v.memory.reset()
	v.regs = Registers{PC: ProgramStart}
	v.stack = Stack{}
	v.display.Clear()
	v.keys = Keypad{}
	v.last = Instruction{}
}

// Load copies the program image into memory at ProgramStart and resets the
// general-purpose registers, the address register and the program counter.
// The framebuffer, call stack and timers are left untouched, use Reset for a full reset.
// An image that does not fit into memory is rejected without changing any state.
func (v *VM) Load(image []byte) error {
	if len(image) > MaxProgramSize {
		return fmt.Errorf("loading %d bytes, maximum is %d: %w", len(image), MaxProgramSize, ErrProgramTooLarge)
	}

	v.regs.V = [RegisterCount]byte{}
	v.regs.I = 0
	v.regs.PC = ProgramStart
	copy(v.memory[ProgramStart:], image)
	return nil
}

// Step executes one fetch-decode-execute cycle: the instruction at the program
// counter is fetched, the program counter advanced, both timers decremented and the
// instruction executed. It returns the classification of the executed instruction.
// Unsupported opcodes are classified as KindUnknown and do not return an error.
func (v *VM) Step() (Instruction, error) {
	address := v.regs.PC
	opcode := v.memory.ReadWord(address)
	v.regs.PC += 2
	v.regs.decrementTimers()

	ins := Instruction{
		Opcode:  opcode,
		Address: address,
	}
	var err error
	ins.Kind, err = v.execute(ins)
	v.last = ins
	return ins, err
}

// Registers returns a copy of the register file.
func (v *VM) Registers() Registers {
	return v.regs
}

// PC returns the program counter.
func (v *VM) PC() uint16 {
	return v.regs.PC
}

// Last returns the last executed instruction.
func (v *VM) Last() Instruction {
	return v.last
}

// Framebuffer returns a copy of the display.
func (v *VM) Framebuffer() Framebuffer {
	return v.display
}

// Pixel returns whether the pixel at the given coordinates is set.
func (v *VM) Pixel(x, y int) bool {
	return v.display.Pixel(x, y)
}

// Stack returns the return addresses of the active calls, the innermost call last.
func (v *VM) Stack() []uint16 {
	addresses := make([]uint16, v.regs.SP)
	copy(addresses, v.stack[:v.regs.SP])
	return addresses
}

// ReadMemory returns the byte at the given address.
func (v *VM) ReadMemory(address uint16) byte {
	return v.memory.Read(address)
}

// Memory returns a copy of the memory.
func (v *VM) Memory() Memory {
	return v.memory
}
