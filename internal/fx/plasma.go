package fx

import (
	"image"
	"image/color"
	"math"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

// Plasma is the 8-bit sine plasma: four table lookups summed per pixel into an
// index, with the palette cycling on top.
type Plasma struct {
	buf *gfx.Indexed
	sin *gfx.SinTable

	p1, p2, p3, p4 int
}

func NewPlasma() *Plasma { return &Plasma{} }

func (p *Plasma) Name() string { return "plasma" }

func (p *Plasma) Init(env *Env) error {
	p.buf = gfx.NewIndexed(env.Width, env.Height)
	p.sin = gfx.NewSinTable(256, 64)
	p.buf.Palette = plasmaPalette()
	return nil
}

func plasmaPalette() *gfx.Palette {
	pal := &gfx.Palette{}
	for i := range pal {
		a := 2 * math.Pi * float64(i) / 256
		pal[i] = color.RGBA{
			uint8(128 + 127*math.Cos(a)),
			uint8(128 + 127*math.Sin(a*2)),
			uint8(128 - 127*math.Cos(a*3)),
			0xff,
		}
	}
	return pal
}

func (p *Plasma) Update() error {
	p.p1 += 2
	p.p2 -= 1
	p.p3 += 3
	p.p4 += 1
	p.buf.Palette.Rotate(0, 255, 1)
	return nil
}

func (p *Plasma) Draw(dst *image.RGBA) {
	p.render()
	p.buf.Blit(dst)
}

func (p *Plasma) render() {
	s := p.sin
	w := p.buf.W
	for y := 0; y < p.buf.H; y++ {
		ty := s.Sin(y*2+p.p3) + s.Cos(y+p.p4)
		row := p.buf.Pix[y*w : (y+1)*w]
		for x := range row {
			v := s.Sin(x*3/2+p.p1) + s.Cos(x+p.p2) + s.Sin((x+y)/2+p.p1) + ty
			row[x] = uint8(v + 256)
		}
	}
}
