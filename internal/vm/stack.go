package vm

import "fmt"

// StackSize is the capacity of the call stack.
const StackSize = 16

// Stack holds the return addresses of active subroutine calls.
type Stack [StackSize]uint16

// push stores the current program counter on the stack and jumps to the target.
func (v *VM) push(target uint16) error {
	if int(v.regs.SP) >= StackSize {
		return fmt.Errorf("calling $%03X with %d active calls: %w", target, v.regs.SP, ErrStackOverflow)
	}
	v.stack[v.regs.SP] = v.regs.PC
	v.regs.SP++
	v.regs.PC = target
	return nil
}

// pop loads the program counter from the top of the stack and clears the vacated slot.
func (v *VM) pop() error {
	if v.regs.SP == 0 {
		return fmt.Errorf("returning to caller: %w", ErrStackUnderflow)
	}
	v.regs.SP--
	v.regs.PC = v.stack[v.regs.SP]
	v.stack[v.regs.SP] = 0
	return nil
}
