package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	dataNaming  = "_data_%04x"
	startLabel  = "Start"
)

// Options controls the listing output.
type Options struct {
	HexComments    bool // output instruction bytes as hex values in comments
	OffsetComments bool // output memory addresses in comments
	ZeroBytes      bool // output trailing zero bytes of the program
}

// DefaultOptions returns the default listing options.
func DefaultOptions() Options {
	return Options{
		HexComments:    true,
		OffsetComments: true,
	}
}

// Listing writes a linear disassembly of the program image to the writer.
// The image is mapped to memory at vm.ProgramStart, targets of jumps, calls and
// address register loads inside the image are labeled.
func Listing(w io.Writer, image []byte, opts Options) error {
	if len(image) > vm.MaxProgramSize {
		return fmt.Errorf("listing %d bytes: %w", len(image), vm.ErrProgramTooLarge)
	}

	end := endIndex(image, opts.ZeroBytes)
	image = image[:end]
	labels := collectLabels(image)

	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n\n.org $%03X\n\n", vm.ProgramStart); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := 0; i < len(image); {
		address := uint16(vm.ProgramStart + i)
		size := opcodeSize
		_, oddLabel := labels[address+1]
		if i+opcodeSize > len(image) || oddLabel {
			size = 1
		}

		data := image[i : i+size]
		if err := writeLabel(w, labels[address]); err != nil {
			return err
		}
		if err := writeLine(w, address, data, opts); err != nil {
			return err
		}
		i += size
	}
	return nil
}

// collectLabels names all addresses inside the image that are referenced by
// jumps, calls and address register loads.
func collectLabels(image []byte) map[uint16]string {
	labels := map[uint16]string{}
	if len(image) > 0 {
		labels[vm.ProgramStart] = startLabel
	}

	for i := 0; i+opcodeSize <= len(image); i += opcodeSize {
		word, _ := decodeWord(image[i:])
		op, ok := Lookup(word)
		if !ok {
			continue
		}

		target, ok := extractTargetAddressInImage(word, len(image))
		if !ok {
			continue
		}
		if _, exists := labels[target]; exists {
			continue
		}

		switch {
		case op.Instruction == chip8.CallInst:
			labels[target] = fmt.Sprintf(funcNaming, target)
		case word&0xF000 == 0x1000:
			labels[target] = fmt.Sprintf(labelNaming, target)
		case word&0xF000 == 0xA000:
			labels[target] = fmt.Sprintf(dataNaming, target)
		}
	}
	return labels
}

// extractTargetAddressInImage returns the target address of a JP, CALL or LD I
// instruction if it points inside of the program image.
func extractTargetAddressInImage(word uint16, size int) (uint16, bool) {
	switch word & 0xF000 {
	case 0x1000, 0x2000, 0xA000:
	default:
		return 0, false
	}

	target := word & 0x0FFF
	if target < vm.ProgramStart || int(target) >= vm.ProgramStart+size {
		return 0, false
	}
	return target, true
}

func writeLabel(w io.Writer, label string) error {
	if label == "" {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s:\n", label); err != nil {
		return fmt.Errorf("writing label %s: %w", label, err)
	}
	return nil
}

// writeLine writes either an instruction or a data directive for the given bytes.
func writeLine(w io.Writer, address uint16, data []byte, opts Options) error {
	var line string
	word, ok := decodeWord(data)
	if _, known := Lookup(word); ok && known {
		line = "    " + Format(word)
	} else {
		line = "    " + formatData(data)
	}

	comment := formatComment(address, data, opts)
	if comment == "" {
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w, "%-32s ; %s\n", line, comment); err != nil {
		return fmt.Errorf("writing line with comment: %w", err)
	}
	return nil
}

func formatData(data []byte) string {
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf(".byte $%02X", data[0]))
	for _, b := range data[1:] {
		buf.WriteString(fmt.Sprintf(", $%02X", b))
	}
	return buf.String()
}

func formatComment(address uint16, data []byte, opts Options) string {
	var parts []string
	if opts.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", address))
	}
	if opts.HexComments {
		hex := make([]string, len(data))
		for i, b := range data {
			hex[i] = fmt.Sprintf("%02X", b)
		}
		parts = append(parts, strings.Join(hex, " "))
	}
	return strings.Join(parts, "  ")
}

// endIndex returns the length of the image without trailing zero bytes.
func endIndex(image []byte, zeroBytes bool) int {
	if zeroBytes {
		return len(image)
	}
	for i := len(image) - 1; i >= 0; i-- {
		if image[i] == 0 {
			continue
		}
		// keep instruction words intact
		if end := i + 1; end%opcodeSize != 0 && end < len(image) {
			return end + 1
		}
		return i + 1
	}
	return 0
}
