// Package vm implements the CHIP-8 virtual machine core.
//
// # Machine State
//
// A VM owns all of its state, multiple instances are independent:
//   - 4KB of memory (0x000-MaxAddress), programs are loaded at ProgramStart (0x200)
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as carry, borrow and collision flag
//   - the address register I, the program counter PC and the stack pointer SP
//   - the delay and sound timers, decremented once per executed cycle
//   - a call stack of StackSize return addresses
//   - a 64x32 monochrome framebuffer with wraparound coordinates
//   - the state of the 16 hexadecimal keys
//
// # Execution
//
// The VM does not schedule itself. The caller invokes Step once per tick, every call
// fetches one instruction, advances the program counter, decrements the timers and
// executes the instruction. Step returns the classification of the executed
// instruction so that observers like a debugger can render or break on it.
//
// Mutating calls (Load, Reset, Step, Press, Release) are not synchronized and have to
// be serialized by the caller.
//
// # Usage Example
//
//	machine := vm.New(vm.DefaultOptions())
//	if err := machine.Load(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		ins, err := machine.Step()
//		if err != nil {
//			return err
//		}
//		if ins.Halts() {
//			break
//		}
//	}
package vm
