package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// spriteVM returns a VM that draws the sprite stored at $300 to the coordinates
// in V0 and V1 on every DRW V0, V1, N instruction.
func spriteVM(t *testing.T, x, y byte, sprite []byte, opcodes ...uint16) *VM {
	t.Helper()

	program := append([]uint16{
		0x6000 | uint16(x), // LD V0, x
		0x6100 | uint16(y), // LD V1, y
		0xA300,             // LD I, $300
	}, opcodes...)

	image := make([]byte, 0x100+len(sprite))
	for i, op := range program {
		image[2*i] = byte(op >> 8)
		image[2*i+1] = byte(op)
	}
	copy(image[0x100:], sprite)

	v := New(DefaultOptions())
	assert.NoError(t, v.Load(image))
	step(t, v, 3)
	return v
}

func TestDrawSprite(t *testing.T) {
	v := spriteVM(t, 2, 3, []byte{0b10000001, 0b01000010}, 0xD012)
	ins := step(t, v, 1)
	assert.Equal(t, KindDraw, ins.Kind)

	fb := v.Framebuffer()
	assert.Equal(t, 4, fb.Lit())
	assert.True(t, fb.Pixel(2, 3))
	assert.True(t, fb.Pixel(9, 3))
	assert.True(t, fb.Pixel(3, 4))
	assert.True(t, fb.Pixel(8, 4))
	assert.False(t, fb.Pixel(4, 3))
	assert.Equal(t, byte(0), v.Registers().V[FlagRegister])
}

func TestDrawSelfInverse(t *testing.T) {
	sprite := []byte{0xFF, 0x81, 0xA5, 0x81, 0xFF}
	v := spriteVM(t, 30, 10, sprite, 0x00E0, 0xD015, 0xD015)
	step(t, v, 1)

	step(t, v, 1)
	assert.Equal(t, 8+2+4+2+8, v.Framebuffer().Lit())
	assert.Equal(t, byte(0), v.Registers().V[FlagRegister])

	step(t, v, 1)
	assert.Equal(t, 0, v.Framebuffer().Lit())
	assert.Equal(t, byte(1), v.Registers().V[FlagRegister])
}

func TestDrawCollisionIsSetOnly(t *testing.T) {
	// the first row collides, the second row does not
	v := spriteVM(t, 0, 0, []byte{0x80, 0x40},
		0xD011, // DRW V0, V1, 1
		0xD012, // DRW V0, V1, 2
	)
	step(t, v, 2)

	assert.Equal(t, byte(1), v.Registers().V[FlagRegister])
	assert.False(t, v.Pixel(0, 0))
	assert.True(t, v.Pixel(1, 1))
}

func TestDrawWrapsHorizontally(t *testing.T) {
	v := spriteVM(t, 60, 5, []byte{0xFF}, 0xD011)
	step(t, v, 1)

	fb := v.Framebuffer()
	assert.Equal(t, 8, fb.Lit())
	for _, x := range []int{60, 61, 62, 63, 0, 1, 2, 3} {
		assert.True(t, fb.Pixel(x, 5), "column %d", x)
	}
}

func TestDrawWrapsVertically(t *testing.T) {
	v := spriteVM(t, 0, 31, []byte{0x80, 0x80, 0x80}, 0xD013)
	step(t, v, 1)

	fb := v.Framebuffer()
	assert.Equal(t, 3, fb.Lit())
	assert.True(t, fb.Pixel(0, 31))
	assert.True(t, fb.Pixel(0, 0))
	assert.True(t, fb.Pixel(0, 1))
}

func TestDrawLargeCoordinates(t *testing.T) {
	v := spriteVM(t, 200, 100, []byte{0x80}, 0xD011)
	step(t, v, 1)

	assert.True(t, v.Pixel(200%Width, 100%Height))
}

func TestDrawZeroRows(t *testing.T) {
	v := spriteVM(t, 0, 0, []byte{0xFF}, 0x6F01, 0xD010)
	ins := step(t, v, 2)

	assert.Equal(t, KindDraw, ins.Kind)
	assert.Equal(t, 0, v.Framebuffer().Lit())
	assert.Equal(t, byte(0), v.Registers().V[FlagRegister])
}

func TestClearScreen(t *testing.T) {
	v := spriteVM(t, 0, 0, []byte{0xFF, 0xFF, 0xFF}, 0xD013, 0x00E0)
	step(t, v, 1)
	assert.Equal(t, 24, v.Framebuffer().Lit())

	ins := step(t, v, 1)
	assert.Equal(t, KindClear, ins.Kind)
	fb := v.Framebuffer()
	for y := range Height {
		for x := range Width {
			assert.False(t, fb.Pixel(x, y))
		}
	}
}

func TestPixelWraps(t *testing.T) {
	var fb Framebuffer
	fb[0] = true
	assert.True(t, fb.Pixel(Width, Height))
	assert.True(t, fb.Pixel(-Width, -Height))
	assert.False(t, fb.Pixel(1, 0))
}
