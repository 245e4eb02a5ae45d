package vm

// CHIP-8 memory layout constants.
//
//	0x000-0x1FF: Interpreter area, holds the built-in font glyphs
//	0x200-0xFFF: Program space
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the memory address where programs are loaded and begin execution.
	ProgramStart = 0x200

	// MaxAddress is the highest valid memory address.
	MaxAddress = MemorySize - 1

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// FontAddress is the memory address of the first built-in font glyph.
	FontAddress = 0x000

	// FontGlyphSize is the size of a single font glyph in bytes.
	FontGlyphSize = 5
)

// Memory is the flat byte addressable memory of the VM.
type Memory [MemorySize]byte

// font contains the glyphs of the hexadecimal digits 0-F, each glyph is 4 pixels wide
// and FontGlyphSize rows high.
var font = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Read returns the byte at the given address. Addresses wrap around at MemorySize.
func (m *Memory) Read(address uint16) byte {
	return m[address&MaxAddress]
}

// Write sets the byte at the given address. Addresses wrap around at MemorySize.
func (m *Memory) Write(address uint16, value byte) {
	m[address&MaxAddress] = value
}

// ReadWord returns the big-endian 16-bit word starting at the given address.
func (m *Memory) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address))<<8 | uint16(m.Read(address+1))
}

func (m *Memory) reset() {
	*m = Memory{}
	copy(m[FontAddress:], font[:])
}
