package fx

import (
	"image"
	"image/color"
	"math"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

const (
	scrollScale = 3
	scrollSpeed = 2
	scrollAmp   = 24
)

const scrollMessage = "     HELLO FROM THE GFXLIB DEMO COLLECTION!    " +
	"PLASMA, FIRE, TUNNELS, STARS, VOXELS AND RAYCASTING, ALL DRAWN ONE PIXEL AT A TIME...    " +
	"PRESS ENTER FOR THE NEXT EFFECT OR ESCAPE TO LEAVE.    GREETINGS TO ALL DEMOSCENERS!     "

// Scroller is a sine scroller: the message is rendered once into a strip,
// every screen column is lifted by a sine, every text line is pushed sideways
// by a distortion wave, and the lot is mirrored into a darker reflection.
type Scroller struct {
	strip *image.RGBA
	wave  gfx.WaveTable
	sin   *gfx.SinTable
	tint  []color.RGBA
	w, h  int

	scroll int
	phase  int
	tick   int
}

func NewScroller() *Scroller { return &Scroller{} }

func (s *Scroller) Name() string { return "scroller" }

func (s *Scroller) Init(env *Env) error {
	s.w, s.h = env.Width, env.Height
	text := gfx.RenderText(scrollMessage, color.RGBA{0xff, 0xff, 0xff, 0xff})
	s.strip = gfx.Resize(text, text.Rect.Dx()*scrollScale, text.Rect.Dy()*scrollScale)
	s.sin = gfx.NewSinTable(512, scrollAmp)

	slow := gfx.BuildWave(0.20, 360, 140, func(rad float64) float64 { return 12 * math.Sin(rad) })
	dist := gfx.BuildWave(0.12, 360, 175, func(rad float64) float64 {
		return 12*math.Sin(rad) + 3*math.Sin(rad*10)
	})
	flat := gfx.BuildWave(2.25, 360, 0, func(float64) float64 { return 0 })
	s.wave = gfx.Concat(slow, slow, dist, flat, slow, dist)

	pal := &gfx.Palette{}
	gfx.GradientPalette(pal, 0, 255, []gfx.GradientStop{
		{color.RGBA{0xff, 0xff, 0x80, 0xff}, 0.0},
		{color.RGBA{0xff, 0x60, 0x00, 0xff}, 0.5},
		{color.RGBA{0x80, 0x00, 0x80, 0xff}, 1.0},
	})
	rows := s.strip.Rect.Dy()
	s.tint = make([]color.RGBA, rows)
	for i := range s.tint {
		s.tint[i] = pal[i*255/max(rows-1, 1)]
	}
	return nil
}

func (s *Scroller) Update() error {
	s.scroll = (s.scroll + scrollSpeed) % s.strip.Rect.Dx()
	s.phase += 4
	s.tick++
	return nil
}

// lineShift is the sideways distortion of strip row r, never negative.
func (s *Scroller) lineShift(r int) int {
	base := s.wave.Sum(s.tick)
	return max(s.wave.Sum(s.tick+r)-base+scrollAmp, 0)
}

// columnLift is the vertical offset of screen column x.
func (s *Scroller) columnLift(x int) int {
	return s.sin.Sin(x*2 + s.phase)
}

func (s *Scroller) Draw(dst *image.RGBA) {
	gfx.Clear(dst, color.RGBA{0, 0, 0x18, 0xff})
	s.drawBars(dst)

	sw, sh := s.strip.Rect.Dx(), s.strip.Rect.Dy()
	baseY := s.h/2 - sh/2 - scrollAmp/2
	mirror := baseY + sh + scrollAmp*2

	for r := 0; r < sh; r++ {
		shift := s.lineShift(r)
		tint := s.tint[r]
		for x := 0; x < s.w; x++ {
			sx := (x + s.scroll + shift) % sw
			if s.strip.Pix[s.strip.PixOffset(sx, r)+3] == 0 {
				continue
			}
			lift := s.columnLift(x)
			gfx.PutPixel(dst, x, baseY+r+lift, tint)
			gfx.PutPixel(dst, x, mirror+(sh-1-r)-lift/2, gfx.Shade(tint, 0.35))
		}
	}
}

// drawBars paints slow raster bars behind the text.
func (s *Scroller) drawBars(dst *image.RGBA) {
	for i := 0; i < 3; i++ {
		stops := copperStops[(i+3)%len(copperStops)]
		pal := &gfx.Palette{}
		gfx.GradientPalette(pal, 0, 15, stops)
		y := s.h/2 + s.sin.Sin(s.phase/2+i*170)*s.h/(3*scrollAmp) - 8
		for j := 0; j < 16; j++ {
			gfx.HLine(dst, 0, s.w-1, y+j, gfx.Shade(pal[j], 0.6))
		}
	}
}
