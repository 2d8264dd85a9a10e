package gfx

import "image"

// Indexed is an 8-bit chunky buffer. Colors come from Palette at blit time, so
// rotating the palette animates the picture without touching Pix.
type Indexed struct {
	Pix     []uint8
	W, H    int
	Palette *Palette
}

// NewIndexed allocates a cleared w x h buffer with a gray palette.
func NewIndexed(w, h int) *Indexed {
	return &Indexed{
		Pix:     make([]uint8, w*h),
		W:       w,
		H:       h,
		Palette: GrayPalette(),
	}
}

// Clear sets every pixel to index c.
func (b *Indexed) Clear(c uint8) {
	for i := range b.Pix {
		b.Pix[i] = c
	}
}

// Set writes index c at (x, y); out of range coordinates are ignored.
func (b *Indexed) Set(x, y int, c uint8) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	b.Pix[y*b.W+x] = c
}

// At returns the index at (x, y), or 0 outside the buffer.
func (b *Indexed) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return 0
	}
	return b.Pix[y*b.W+x]
}

// Blit converts the buffer through its palette into dst. The overlapping area
// is copied; dst may be a different size.
func (b *Indexed) Blit(dst *image.RGBA) {
	r := dst.Bounds()
	w := min(b.W, r.Dx())
	h := min(b.H, r.Dy())
	pal := b.Palette
	for y := 0; y < h; y++ {
		src := b.Pix[y*b.W : y*b.W+w]
		off := dst.PixOffset(r.Min.X, r.Min.Y+y)
		row := dst.Pix[off : off+w*4]
		for x, idx := range src {
			c := pal[idx]
			row[x*4] = c.R
			row[x*4+1] = c.G
			row[x*4+2] = c.B
			row[x*4+3] = 0xff
		}
	}
}
