package fx

import (
	"image"
	"math"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

const (
	numBobs    = 5
	bobRadius  = 14
	bobGain    = 3
	bobsPeriod = 60 * 12 // ticks before the canvas is wiped
)

// ShadeBobs stamps discs that add to whatever index is already there, so
// overlapping paths build up bright bands. The palette wraps on purpose.
type ShadeBobs struct {
	buf  *gfx.Indexed
	mask []bool
	t    float64
	tick int
}

func NewShadeBobs() *ShadeBobs { return &ShadeBobs{} }

func (s *ShadeBobs) Name() string { return "shadebobs" }

func (s *ShadeBobs) Init(env *Env) error {
	s.buf = gfx.NewIndexed(env.Width, env.Height)
	s.buf.Palette = gfx.HSLPalette(0.9, 0.5)
	s.buf.Palette[0].R, s.buf.Palette[0].G, s.buf.Palette[0].B = 0, 0, 0

	d := bobRadius*2 + 1
	s.mask = make([]bool, d*d)
	for y := -bobRadius; y <= bobRadius; y++ {
		for x := -bobRadius; x <= bobRadius; x++ {
			s.mask[(y+bobRadius)*d+x+bobRadius] = x*x+y*y <= bobRadius*bobRadius
		}
	}
	return nil
}

// Stamp adds gain to every index under a bob centered at (cx, cy).
func (s *ShadeBobs) Stamp(cx, cy int, gain uint8) {
	d := bobRadius*2 + 1
	for y := 0; y < d; y++ {
		py := cy + y - bobRadius
		if py < 0 || py >= s.buf.H {
			continue
		}
		for x := 0; x < d; x++ {
			px := cx + x - bobRadius
			if px < 0 || px >= s.buf.W || !s.mask[y*d+x] {
				continue
			}
			s.buf.Pix[py*s.buf.W+px] += gain
		}
	}
}

func (s *ShadeBobs) Update() error {
	s.tick++
	if s.tick%bobsPeriod == 0 {
		s.buf.Clear(0)
	}
	s.t += 1.0 / 60
	w, h := float64(s.buf.W), float64(s.buf.H)
	for i := 0; i < numBobs; i++ {
		k := float64(i) * 0.7
		x := w/2 + (w/2-bobRadius)*math.Sin(s.t*(1.1+k*0.13)+k)
		y := h/2 + (h/2-bobRadius)*math.Cos(s.t*(0.7+k*0.21)+k*2)
		s.Stamp(int(x), int(y), bobGain)
	}
	return nil
}

func (s *ShadeBobs) Draw(dst *image.RGBA) {
	s.buf.Blit(dst)
}
