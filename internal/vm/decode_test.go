package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestRecognized(t *testing.T) {
	supported := []uint16{
		0x00E0, 0x00EE, 0x1234, 0x2345, 0x3A12, 0x4B34, 0x5120,
		0x6A42, 0x7A01, 0x8120, 0x8121, 0x8122, 0x8123, 0x8124,
		0x8125, 0x8126, 0x8127, 0x812E, 0x9120, 0xA123, 0xB123,
		0xC1FF, 0xD125, 0xF107, 0xF115, 0xF118, 0xF11E, 0xF133,
		0xF155, 0xF165,
	}
	for _, word := range supported {
		assert.True(t, recognized(word), "opcode %04X", word)
	}

	for _, word := range []uint16{0x0000, 0x0123, 0x5121, 0x8128, 0x812F, 0x9121, 0xE1FF, 0xF1FF} {
		assert.False(t, recognized(word), "opcode %04X", word)
	}
}

func TestUnrecognizedVariantsAreUnknown(t *testing.T) {
	for _, opcode := range []uint16{0x5121, 0x8128, 0x9121} {
		v := newTestVM(t, DefaultOptions(), opcode)
		ins := step(t, v, 1)
		assert.True(t, ins.Unknown(), "opcode %04X", opcode)
		assert.Equal(t, uint16(0x202), v.PC())
	}
}
