package vm

// Framebuffer dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Framebuffer is the monochrome display surface, stored row-major.
type Framebuffer [Width * Height]bool

// Pixel returns whether the pixel at the given coordinates is set.
// Coordinates wrap around at the framebuffer edges.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f[index(x, y)]
}

// Clear resets all pixels.
func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// Lit returns the number of set pixels.
func (f Framebuffer) Lit() int {
	var count int
	for _, set := range f {
		if set {
			count++
		}
	}
	return count
}

// blit XORs the sprite rows onto the framebuffer starting at the given origin.
// Each row is 8 pixels wide with the most significant bit on the left.
// Sprites wrap around at the edges. It returns whether any set pixel was cleared.
func (f *Framebuffer) blit(x, y int, sprite []byte) bool {
	var collision bool
	for row, data := range sprite {
		for bit := range 8 {
			if data&(1<<bit) == 0 {
				continue
			}
			i := index(x+7-bit, y+row)
			if f[i] {
				collision = true
			}
			f[i] = !f[i]
		}
	}
	return collision
}

func index(x, y int) int {
	x %= Width
	if x < 0 {
		x += Width
	}
	y %= Height
	if y < 0 {
		y += Height
	}
	return y*Width + x
}
