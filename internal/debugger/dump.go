package debugger

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/vm"
)

// DumpDisplay writes the framebuffer of the VM as text, one line per row.
func (d *Debugger) DumpDisplay(w io.Writer) error {
	if _, err := io.WriteString(w, "DISPLAY\n========================\n"); err != nil {
		return fmt.Errorf("writing display header: %w", err)
	}

	fb := d.machine.Framebuffer()
	var row strings.Builder
	for y := range vm.Height {
		row.Reset()
		fmt.Fprintf(&row, "R%d\t", y)
		for x := range vm.Width {
			if fb.Pixel(x, y) {
				row.WriteByte('o')
			} else {
				row.WriteByte(' ')
			}
		}
		row.WriteByte('\n')

		if _, err := io.WriteString(w, row.String()); err != nil {
			return fmt.Errorf("writing display row %d: %w", y, err)
		}
	}
	return nil
}

// DumpCPU writes the register file, the call stack and the last executed
// instruction of the VM as text.
func (d *Debugger) DumpCPU(w io.Writer) error {
	regs := d.machine.Registers()

	var buf strings.Builder
	buf.WriteString("CPU\n========================\n")
	fmt.Fprintf(&buf, "PC: %03X  I: %03X  SP: %X  DT: %02X  ST: %02X\n",
		regs.PC, regs.I, regs.SP, regs.DT, regs.ST)

	for i, value := range regs.V {
		fmt.Fprintf(&buf, "V%X: %02X", i, value)
		if i%8 == 7 {
			buf.WriteByte('\n')
		} else {
			buf.WriteString("  ")
		}
	}

	buf.WriteString("Stack:")
	for _, address := range d.machine.Stack() {
		fmt.Fprintf(&buf, " %03X", address)
	}
	buf.WriteByte('\n')

	fmt.Fprintf(&buf, "Last: %s (%s)\n", d.LastOp(), d.LastInstruction())

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("writing cpu state: %w", err)
	}
	return nil
}

// Status returns a single line summary of the program counter and the last opcode.
func (d *Debugger) Status() string {
	return fmt.Sprintf("pc: %03X opc: %s %s", d.machine.PC(), d.LastOp(), d.LastInstruction())
}
