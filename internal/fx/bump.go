package fx

import (
	"image"
	"image/color"
	"math"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

const envMapSize = 256

// Bump lights a relief with a moving spot. The surface normal at each pixel
// offsets the lookup into a precomputed spot (environment) map.
type Bump struct {
	buf    *gfx.Indexed
	bumpX  []int8
	bumpY  []int8
	envMap []uint8
	t      float64
}

func NewBump() *Bump { return &Bump{} }

func (b *Bump) Name() string { return "bump" }

func (b *Bump) Init(env *Env) error {
	w, h := env.Width, env.Height
	b.buf = gfx.NewIndexed(w, h)
	gfx.GradientPalette(b.buf.Palette, 0, 255, []gfx.GradientStop{
		{color.RGBA{0x00, 0x00, 0x00, 0xff}, 0.0},
		{color.RGBA{0x20, 0x40, 0x90, 0xff}, 0.5},
		{color.RGBA{0x90, 0xc0, 0xff, 0xff}, 0.85},
		{color.RGBA{0xff, 0xff, 0xff, 0xff}, 1.0},
	})
	b.envMap = env.Table("envmap", envMapSize*envMapSize, EnvMap)
	b.buildNormals(reliefMap(w, h))
	return nil
}

// EnvMap is a radial spot: 255 in the center falling to 0 at the rim.
func EnvMap() []byte {
	out := make([]byte, envMapSize*envMapSize)
	half := float64(envMapSize) / 2
	for y := 0; y < envMapSize; y++ {
		for x := 0; x < envMapSize; x++ {
			dx := (float64(x) - half + 0.5) / half
			dy := (float64(y) - half + 0.5) / half
			v := 1 - math.Sqrt(dx*dx+dy*dy)
			if v < 0 {
				v = 0
			}
			out[y*envMapSize+x] = uint8(255 * v * v)
		}
	}
	return out
}

// reliefMap is the height field being lit: interfering rings with a raised
// text label.
func reliefMap(w, h int) []uint8 {
	hm := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ax := float64(x) / float64(w) * 2 * math.Pi
			ay := float64(y) / float64(h) * 2 * math.Pi
			v := math.Sin(ax*3)*math.Cos(ay*2) + 0.5*math.Sin(math.Hypot(ax-math.Pi, ay-math.Pi)*4)
			hm[y*w+x] = uint8(128 + 60*v)
		}
	}

	label := gfx.RenderText("GFXLIB", color.RGBA{0xff, 0xff, 0xff, 0xff})
	big := gfx.Resize(label, label.Rect.Dx()*4, label.Rect.Dy()*4)
	ox := (w - big.Rect.Dx()) / 2
	oy := (h - big.Rect.Dy()) / 2
	for y := 0; y < big.Rect.Dy(); y++ {
		for x := 0; x < big.Rect.Dx(); x++ {
			if big.Pix[big.PixOffset(x, y)+3] == 0 {
				continue
			}
			px, py := ox+x, oy+y
			if px >= 0 && py >= 0 && px < w && py < h {
				hm[py*w+px] = 255
			}
		}
	}
	return hm
}

func (b *Bump) buildNormals(hm []uint8) {
	w, h := b.buf.W, b.buf.H
	b.bumpX = make([]int8, w*h)
	b.bumpY = make([]int8, w*h)
	at := func(x, y int) int {
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
		return int(hm[y*w+x])
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.bumpX[y*w+x] = int8(clampInt((at(x+1, y)-at(x-1, y))/2, -127, 127))
			b.bumpY[y*w+x] = int8(clampInt((at(x, y+1)-at(x, y-1))/2, -127, 127))
		}
	}
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func (b *Bump) Update() error {
	b.t += 1.0 / 60
	return nil
}

// light returns the spot position for the current time.
func (b *Bump) light() (int, int) {
	w, h := float64(b.buf.W), float64(b.buf.H)
	return int(w/2 + w/3*math.Cos(b.t*0.9)), int(h/2 + h/3*math.Sin(b.t*1.3))
}

func (b *Bump) Draw(dst *image.RGBA) {
	lx, ly := b.light()
	b.shade(lx, ly)
	b.buf.Blit(dst)
}

func (b *Bump) shade(lx, ly int) {
	w := b.buf.W
	for y := 0; y < b.buf.H; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			ex := x - lx + int(b.bumpX[i]) + envMapSize/2
			ey := y - ly + int(b.bumpY[i]) + envMapSize/2
			var c uint8
			if ex >= 0 && ey >= 0 && ex < envMapSize && ey < envMapSize {
				c = b.envMap[ey*envMapSize+ex]
			}
			b.buf.Pix[i] = c
		}
	}
}
