package fx

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

const (
	waterDamping = 5 // height loses 1/32 per step
	dropDepth    = 512
)

// Water is the two buffer ripple: each step a cell becomes half the sum of its
// neighbours minus its own previous height, damped. The height slope refracts
// a background picture.
type Water struct {
	cur, prev []int32
	bg        *image.RGBA
	rng       *rand.Rand
	w, h      int
	tick      int
}

func NewWater() *Water { return &Water{} }

func (wt *Water) Name() string { return "water" }

func (wt *Water) Init(env *Env) error {
	wt.w, wt.h = env.Width, env.Height
	wt.cur = make([]int32, wt.w*wt.h)
	wt.prev = make([]int32, wt.w*wt.h)
	wt.rng = env.Rand()

	tex := env.Texture("water.png", 256, func() *gfx.Texture {
		return gfx.NewTextureFunc(256, func(x, y int) color.RGBA {
			base := color.RGBA{0x10, 0x60, 0x90, 0xff}
			if (x/32+y/32)%2 == 0 {
				base = color.RGBA{0x20, 0x90, 0xb0, 0xff}
			}
			f := 0.8 + 0.2*math.Sin(float64(x)*0.1)*math.Cos(float64(y)*0.1)
			return gfx.Shade(base, f)
		})
	})
	wt.bg = gfx.NewFrame(wt.w, wt.h)
	for y := 0; y < wt.h; y++ {
		for x := 0; x < wt.w; x++ {
			gfx.PutPixel(wt.bg, x, y, tex.At(x, y))
		}
	}
	return nil
}

// Drop pushes a small disc down at (x, y).
func (wt *Water) Drop(x, y, radius int, depth int32) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			px, py := x+dx, y+dy
			if dx*dx+dy*dy > radius*radius || px < 1 || py < 1 || px >= wt.w-1 || py >= wt.h-1 {
				continue
			}
			wt.cur[py*wt.w+px] -= depth
		}
	}
}

// Step advances the ripple simulation once.
func (wt *Water) Step() {
	w := wt.w
	for y := 1; y < wt.h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			v := (wt.cur[i-1]+wt.cur[i+1]+wt.cur[i-w]+wt.cur[i+w])>>1 - wt.prev[i]
			v -= v >> waterDamping
			wt.prev[i] = v
		}
	}
	wt.cur, wt.prev = wt.prev, wt.cur
}

// Energy is the sum of absolute heights, for tests and debugging.
func (wt *Water) Energy() int64 {
	var e int64
	for _, v := range wt.cur {
		if v < 0 {
			e -= int64(v)
		} else {
			e += int64(v)
		}
	}
	return e
}

func (wt *Water) Update() error {
	wt.tick++
	// frames under 3x3 have no inner cell to drop into
	if wt.tick%12 == 0 && wt.w > 2 && wt.h > 2 {
		wt.Drop(1+wt.rng.IntN(wt.w-2), 1+wt.rng.IntN(wt.h-2), 2+wt.rng.IntN(3), dropDepth)
	}
	// a drop trailing a figure eight
	t := float64(wt.tick) / 60
	wt.Drop(wt.w/2+int(float64(wt.w/3)*math.Sin(t)), wt.h/2+int(float64(wt.h/3)*math.Sin(t*2)), 1, dropDepth/4)
	wt.Step()
	return nil
}

func (wt *Water) Draw(dst *image.RGBA) {
	w, h := wt.w, wt.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			var dx, dy int32
			if x > 0 && x < w-1 {
				dx = wt.cur[i-1] - wt.cur[i+1]
			}
			if y > 0 && y < h-1 {
				dy = wt.cur[i-w] - wt.cur[i+w]
			}
			sx := min(max(x+int(dx>>3), 0), w-1)
			sy := min(max(y+int(dy>>3), 0), h-1)
			c := wt.bg.RGBAAt(sx, sy)
			light := 1 + float64(dx)/1024
			if light > 1 {
				c = gfx.Lerp(c, color.RGBA{0xff, 0xff, 0xff, 0xff}, math.Min(light-1, 1))
			} else {
				c = gfx.Shade(c, light)
			}
			gfx.PutPixel(dst, x, y, c)
		}
	}
}
