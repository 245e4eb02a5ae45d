package vm

// execute dispatches the instruction on its highest nibble.
func (v *VM) execute(ins Instruction) (Kind, error) {
	if !recognized(ins.Opcode) {
		return KindUnknown, nil
	}

	switch ins.Opcode >> 12 {
	case 0x0:
		return v.executeSystem(ins)

	case 0x1:
		v.regs.PC = ins.NNN()
		if ins.NNN() == ins.Address {
			return KindHalt, nil
		}
		return KindJump, nil

	case 0x2:
		if err := v.push(ins.NNN()); err != nil {
			return KindCall, err
		}
		return KindCall, nil

	case 0x3:
		v.skipIf(v.regs.V[ins.X()] == ins.NN())
		return KindSkipEqual, nil

	case 0x4:
		v.skipIf(v.regs.V[ins.X()] != ins.NN())
		return KindSkipNotEqual, nil

	case 0x5:
		if ins.N() != 0 {
			return KindUnknown, nil
		}
		v.skipIf(v.regs.V[ins.X()] == v.regs.V[ins.Y()])
		return KindSkipEqualRegister, nil

	case 0x6:
		v.regs.V[ins.X()] = ins.NN()
		return KindLoad, nil

	case 0x7:
		v.regs.V[ins.X()] += ins.NN()
		return KindAdd, nil

	case 0x8:
		return v.executeALU(ins), nil

	case 0x9:
		if ins.N() != 0 {
			return KindUnknown, nil
		}
		v.skipIf(v.regs.V[ins.X()] != v.regs.V[ins.Y()])
		return KindSkipNotEqualRegister, nil

	case 0xA:
		v.regs.I = ins.NNN()
		return KindLoadIndex, nil

	case 0xB:
		v.regs.PC = ins.NNN() + uint16(v.regs.V[0])
		return KindJumpOffset, nil

	case 0xC:
		v.regs.V[ins.X()] = v.random() & ins.NN()
		return KindRandom, nil

	case 0xD:
		v.draw(ins)
		return KindDraw, nil

	case 0xF:
		return v.executeMisc(ins), nil

	default:
		// EX9E and EXA1 key skips are not supported
		return KindUnknown, nil
	}
}

func (v *VM) executeSystem(ins Instruction) (Kind, error) {
	switch ins.Opcode {
	case 0x00E0:
		v.display.Clear()
		return KindClear, nil

	case 0x00EE:
		if err := v.pop(); err != nil {
			return KindReturn, err
		}
		return KindReturn, nil

	default:
		return KindUnknown, nil
	}
}

// executeALU executes the register to register operations 8XYN.
// The result and the flag are calculated from the operands before any register is
// written, VF is written last.
func (v *VM) executeALU(ins Instruction) Kind {
	x, y := ins.X(), ins.Y()
	vx, vy := v.regs.V[x], v.regs.V[y]

	switch ins.N() {
	case 0x0:
		v.regs.V[x] = vy
		return KindMove

	case 0x1:
		v.regs.V[x] = vx | vy
		return KindOr

	case 0x2:
		v.regs.V[x] = vx & vy
		return KindAnd

	case 0x3:
		v.regs.V[x] = vx ^ vy
		return KindXor

	case 0x4:
		sum := uint16(vx) + uint16(vy)
		v.regs.V[x] = byte(sum)
		v.setCarry(sum > 0xFF)
		return KindAddRegister

	case 0x5:
		v.regs.V[x] = vx - vy
		v.setCarry(vx > vy)
		return KindSub

	case 0x6:
		v.regs.V[x] = vx >> 1
		v.regs.V[FlagRegister] = vx & 1
		return KindShiftRight

	case 0x7:
		v.regs.V[x] = vy - vx
		v.setCarry(vy > vx)
		return KindSubReverse

	case 0xE:
		v.regs.V[x] = vx << 1
		if v.opts.ShiftLeftMSB {
			v.regs.V[FlagRegister] = vx >> 7
		} else {
			v.regs.V[FlagRegister] = boolToByte(vx != 0)
		}
		return KindShiftLeft

	default:
		return KindUnknown
	}
}

// executeMisc executes the timer and memory operations FXNN.
func (v *VM) executeMisc(ins Instruction) Kind {
	x := ins.X()

	switch ins.NN() {
	case 0x07:
		v.regs.V[x] = v.regs.DT
		return KindReadDelay

	case 0x15:
		v.regs.DT = v.regs.V[x]
		return KindSetDelay

	case 0x18:
		v.regs.ST = v.regs.V[x]
		return KindSetSound

	case 0x1E:
		sum := uint32(v.regs.I) + uint32(v.regs.V[x])
		v.regs.I = uint16(sum)
		v.setCarry(sum > MaxAddress)
		return KindAddIndex

	case 0x33:
		value := v.regs.V[x]
		v.memory.Write(v.regs.I, value/100)
		v.memory.Write(v.regs.I+1, value/10%10)
		v.memory.Write(v.regs.I+2, value%10)
		return KindDecimal

	case 0x55:
		for i := range uint16(x) + 1 {
			v.memory.Write(v.regs.I+i, v.regs.V[i])
		}
		return KindStore

	case 0x65:
		for i := range uint16(x) + 1 {
			v.regs.V[i] = v.memory.Read(v.regs.I + i)
		}
		return KindRestore

	default:
		// FX0A key wait and FX29 font lookup are not supported
		return KindUnknown
	}
}

// draw blits an N rows high sprite read from memory at I to the coordinates
// stored in VX and VY. VF is set if any set pixel gets cleared.
func (v *VM) draw(ins Instruction) {
	sprite := make([]byte, ins.N())
	for row := range sprite {
		sprite[row] = v.memory.Read(v.regs.I + uint16(row))
	}

	x := int(v.regs.V[ins.X()])
	y := int(v.regs.V[ins.Y()])
	v.regs.V[FlagRegister] = 0
	if v.display.blit(x, y, sprite) {
		v.regs.V[FlagRegister] = 1
	}
}

func (v *VM) skipIf(condition bool) {
	if condition {
		v.regs.PC += 2
	}
}

// setCarry writes the carry or borrow flag. With CarrySetOnly a cleared flag
// leaves VF untouched.
func (v *VM) setCarry(set bool) {
	switch {
	case set:
		v.regs.V[FlagRegister] = 1
	case !v.opts.CarrySetOnly:
		v.regs.V[FlagRegister] = 0
	}
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
