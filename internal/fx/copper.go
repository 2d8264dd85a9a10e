package fx

import (
	"cmp"
	"image"
	"image/color"
	"slices"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

const (
	numCopperBars = 7
	copperBarH    = 24
	kefrensBars   = 36
)

var copperStops = [][]gfx.GradientStop{
	{{color.RGBA{0x00, 0x00, 0x00, 0xff}, 0.0}, {color.RGBA{0xff, 0x33, 0x00, 0xff}, 0.5}, {color.RGBA{0x00, 0x00, 0x00, 0xff}, 1.0}},
	{{color.RGBA{0x55, 0x55, 0x55, 0xff}, 0.0}, {color.RGBA{0xff, 0xff, 0xff, 0xff}, 0.5}, {color.RGBA{0x55, 0x55, 0x55, 0xff}, 1.0}},
	{{color.RGBA{0x34, 0x22, 0x55, 0xff}, 0.0}, {color.RGBA{0x60, 0x4e, 0x98, 0xff}, 0.5}, {color.RGBA{0x34, 0x22, 0x55, 0xff}, 1.0}},
	{{color.RGBA{0x44, 0x00, 0x44, 0xff}, 0.0}, {color.RGBA{0xff, 0xdd, 0xff, 0xff}, 0.5}, {color.RGBA{0x11, 0x11, 0x44, 0xff}, 1.0}},
	{{color.RGBA{0x00, 0x20, 0x00, 0xff}, 0.0}, {color.RGBA{0x60, 0xff, 0x60, 0xff}, 0.5}, {color.RGBA{0x00, 0x20, 0x00, 0xff}, 1.0}},
	{{color.RGBA{0x00, 0x10, 0x30, 0xff}, 0.0}, {color.RGBA{0x40, 0xc0, 0xff, 0xff}, 0.5}, {color.RGBA{0x00, 0x10, 0x30, 0xff}, 1.0}},
	{{color.RGBA{0x30, 0x20, 0x00, 0xff}, 0.0}, {color.RGBA{0xff, 0xe0, 0x40, 0xff}, 0.5}, {color.RGBA{0x30, 0x20, 0x00, 0xff}, 1.0}},
}

// Copper is raster bars: a set of gradient bars swinging on a sine path in
// the upper part, and a kefrens style staircase of vertical bars below.
type Copper struct {
	bars  [numCopperBars][copperBarH]color.RGBA
	sin   *gfx.SinTable
	w, h  int
	cnt   int
	cnt2  int
	phase int
}

func NewCopper() *Copper { return &Copper{} }

func (c *Copper) Name() string { return "copper" }

func (c *Copper) Init(env *Env) error {
	c.w, c.h = env.Width, env.Height
	c.sin = gfx.NewSinTable(1024, 1024)
	for i := range c.bars {
		pal := &gfx.Palette{}
		gfx.GradientPalette(pal, 0, copperBarH-1, copperStops[i%len(copperStops)])
		copy(c.bars[i][:], pal[:copperBarH])
	}
	return nil
}

func (c *Copper) Update() error {
	c.cnt = (c.cnt + 3) & 0x3ff
	c.cnt2 = (c.cnt2 - 5) & 0x3ff
	c.phase += 6
	return nil
}

type copperBar struct {
	index int
	y     int
	depth int
}

// barOrder places every bar and returns them back to front.
func (c *Copper) barOrder() []copperBar {
	span := c.h/2 - copperBarH
	out := make([]copperBar, numCopperBars)
	for i := range out {
		a := c.phase + i*1024/numCopperBars
		out[i] = copperBar{
			index: i,
			y:     span/2 + c.sin.Sin(a)*span/2/1024,
			depth: c.sin.Cos(a),
		}
	}
	slices.SortStableFunc(out, func(a, b copperBar) int { return cmp.Compare(a.depth, b.depth) })
	return out
}

func (c *Copper) Draw(dst *image.RGBA) {
	gfx.Clear(dst, color.RGBA{0x00, 0x00, 0x10, 0xff})
	for _, b := range c.barOrder() {
		// bars further back are darker
		f := 0.55 + 0.45*float64(b.depth+1024)/2048
		for j, col := range c.bars[b.index] {
			gfx.HLine(dst, 0, c.w-1, b.y+j, gfx.Shade(col, f))
		}
	}
	c.drawKefrens(dst)
}

// drawKefrens starts one bar per line and extends it to the bottom. Later bars
// paint over earlier ones, which leaves the familiar staircase.
func (c *Copper) drawKefrens(dst *image.RGBA) {
	top := c.h / 2
	lines := c.h - top
	bar := c.bars[0]
	const barW = copperBarH
	for i := 0; i < lines; i++ {
		k := i * kefrensBars / max(lines, 1)
		val := c.sin.Sin(c.cnt+k*7) + c.sin.Sin(c.cnt2+k*10)
		x := c.w/2 - barW/2 + val*(c.w/2-barW)/2048
		for y := top + i; y < c.h; y++ {
			for j := 0; j < barW; j++ {
				gfx.PutPixel(dst, x+j, y, bar[j])
			}
		}
	}
}
