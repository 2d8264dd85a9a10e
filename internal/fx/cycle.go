package fx

import (
	"image"
	"image/color"
	"math"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

// Cycle draws a spiral once and then only rotates the palette. Index 0 is the
// fixed background; 1..255 cycle.
type Cycle struct {
	buf   *gfx.Indexed
	speed int
}

func NewCycle() *Cycle { return &Cycle{speed: 2} }

func (c *Cycle) Name() string { return "cycle" }

func (c *Cycle) Init(env *Env) error {
	c.buf = gfx.NewIndexed(env.Width, env.Height)
	pal := c.buf.Palette
	pal[0] = color.RGBA{0, 0, 0, 0xff}
	gfx.GradientPalette(pal, 1, 255, []gfx.GradientStop{
		{color.RGBA{0xff, 0x00, 0x40, 0xff}, 0.0},
		{color.RGBA{0xff, 0xc0, 0x00, 0xff}, 0.25},
		{color.RGBA{0x00, 0xff, 0x80, 0xff}, 0.5},
		{color.RGBA{0x00, 0x60, 0xff, 0xff}, 0.75},
		{color.RGBA{0xff, 0x00, 0x40, 0xff}, 1.0},
	})
	c.paint()
	return nil
}

// paint fills the buffer with a spiral of indices 1..255 inside a disc.
func (c *Cycle) paint() {
	w, h := c.buf.W, c.buf.H
	cx, cy := float64(w)/2, float64(h)/2
	radius := math.Min(cx, cy) * 1.1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			r := math.Hypot(dx, dy)
			if r > radius {
				c.buf.Pix[y*w+x] = 0
				continue
			}
			a := (math.Atan2(dy, dx) + math.Pi) / (2 * math.Pi)
			v := int(r*2+a*255*3) % 255
			c.buf.Pix[y*w+x] = uint8(1 + v)
		}
	}
}

func (c *Cycle) Update() error {
	c.buf.Palette.Rotate(1, 255, c.speed)
	return nil
}

func (c *Cycle) Draw(dst *image.RGBA) {
	c.buf.Blit(dst)
}
