package fx

import (
	"image"
	"math/rand/v2"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

// Fire is the classic flame: two hidden rows of random heat at the bottom,
// every pixel above becomes the decayed average of its neighbours below.
type Fire struct {
	buf *gfx.Indexed // two rows taller than the screen
	rng *rand.Rand
	h   int

	decay int
}

func NewFire() *Fire { return &Fire{decay: 1} }

func (f *Fire) Name() string { return "fire" }

func (f *Fire) Init(env *Env) error {
	f.h = env.Height
	f.buf = gfx.NewIndexed(env.Width, env.Height+2)
	f.buf.Palette = gfx.FirePalette()
	f.rng = env.Rand()
	return nil
}

func (f *Fire) Update() error {
	f.seed()
	f.spread()
	return nil
}

// seed refills the two hidden rows with random hot spots.
func (f *Fire) seed() {
	w := f.buf.W
	bottom := f.buf.Pix[f.h*w:]
	for x := 0; x < w; x++ {
		v := uint8(0)
		if f.rng.IntN(3) > 0 {
			v = 255
		}
		bottom[x] = v
		bottom[w+x] = v
	}
	// occasional ember
	if f.rng.IntN(8) == 0 {
		x := f.rng.IntN(w)
		for dx := -3; dx <= 3; dx++ {
			f.buf.Set(x+dx, f.h-1, 255)
		}
	}
}

// spread moves heat one step upward. Each visible pixel averages the three
// pixels below it and the one two rows below, minus the decay.
func (f *Fire) spread() {
	w := f.buf.W
	pix := f.buf.Pix
	for y := 0; y < f.h; y++ {
		below := (y + 1) * w
		below2 := min(y+2, f.h+1) * w
		for x := 0; x < w; x++ {
			l := x - 1
			if l < 0 {
				l = w - 1
			}
			r := x + 1
			if r >= w {
				r = 0
			}
			sum := int(pix[below+l]) + int(pix[below+x]) + int(pix[below+r]) + int(pix[below2+x])
			v := sum/4 - f.decay
			if v < 0 {
				v = 0
			}
			pix[y*w+x] = uint8(v)
		}
	}
}

func (f *Fire) Draw(dst *image.RGBA) {
	visible := *f.buf
	visible.H = f.h
	visible.Pix = f.buf.Pix[:f.h*f.buf.W]
	visible.Blit(dst)
}
