package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Format returns the assembly representation of the instruction word,
// unknown words are formatted as a data directive.
func Format(word uint16) string {
	op, ok := Lookup(word)
	if !ok {
		return fmt.Sprintf(".word $%04X", word)
	}

	name := op.Instruction.Name
	if params := formatParams(name, word); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the parameters of a CHIP-8 instruction.
func formatParams(name string, word uint16) string {
	switch name {
	case chip8.ClsName, chip8.RetName:
		return ""
	case chip8.JpName:
		return formatJump(word)
	case chip8.CallName:
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case chip8.SeName, chip8.SneName:
		return formatCompare(word)
	case chip8.LdName:
		return formatLoad(word)
	case chip8.AddName:
		return formatAdd(word)
	case chip8.OrName, chip8.AndName, chip8.XorName, chip8.SubName, chip8.SubnName:
		return fmt.Sprintf("V%X, V%X", extractRegisterX(word), extractRegisterY(word))
	case chip8.ShrName, chip8.ShlName, chip8.SkpName, chip8.SknpName:
		return fmt.Sprintf("V%X", extractRegisterX(word))
	case chip8.RndName:
		return fmt.Sprintf("V%X, $%02X", extractRegisterX(word), word&0x00FF)
	case chip8.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", extractRegisterX(word), extractRegisterY(word), word&0x000F)
	}
	return ""
}

// formatJump formats jump instructions (JP addr, JP V0+addr).
func formatJump(word uint16) string {
	switch word & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", word&0x0FFF)
	}
	return ""
}

// formatCompare formats comparison instructions (SE, SNE).
func formatCompare(word uint16) string {
	x := extractRegisterX(word)
	switch word & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(word))
	}
	return ""
}

// formatLoad formats the load instructions of the register, address register,
// timer and memory transfer variants.
func formatLoad(word uint16) string {
	x := extractRegisterX(word)
	switch word & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(word))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", word&0x0FFF)
	case 0xF000:
		return formatLoadMisc(x, word&0x00FF)
	}
	return ""
}

func formatLoadMisc(x, low uint16) string {
	switch low {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// formatAdd formats add instructions (ADD Vx, byte / Vx, Vy / I, Vx).
func formatAdd(word uint16) string {
	x := extractRegisterX(word)
	switch word & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(word))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}
