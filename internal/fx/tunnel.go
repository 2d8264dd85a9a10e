package fx

import (
	"image"
	"image/color"
	"math"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

const tunnelTexSize = 256

// Tunnel maps a texture through precomputed distance and angle tables. The
// tables cover twice the screen so the view can wander around the center.
type Tunnel struct {
	tex   *gfx.Texture
	dist  []int
	angle []int
	shade []uint8
	tw    int
	w, h  int

	t float64
}

func NewTunnel() *Tunnel { return &Tunnel{} }

func (t *Tunnel) Name() string { return "tunnel" }

func (t *Tunnel) Init(env *Env) error {
	t.w, t.h = env.Width, env.Height
	t.tex = env.Texture("tunnel.png", tunnelTexSize, func() *gfx.Texture {
		return gfx.XORTexture(tunnelTexSize, color.RGBA{0x60, 0xa0, 0xff, 0xff})
	})
	t.buildTables()
	return nil
}

func (t *Tunnel) buildTables() {
	tw, th := t.w*2, t.h*2
	t.tw = tw
	t.dist = make([]int, tw*th)
	t.angle = make([]int, tw*th)
	t.shade = make([]uint8, tw*th)

	const ratio = 32.0
	fade := float64(t.w) / 2
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			dx := float64(x - t.w)
			dy := float64(y - t.h)
			r := math.Sqrt(dx*dx + dy*dy)
			i := y*tw + x
			if r < 1 {
				r = 1
			}
			t.dist[i] = int(ratio*tunnelTexSize/r) % tunnelTexSize
			t.angle[i] = int(0.5 * tunnelTexSize * math.Atan2(dy, dx) / math.Pi)
			t.shade[i] = uint8(255 * math.Min(1, r/fade))
		}
	}
}

func (t *Tunnel) Update() error {
	t.t += 1.0 / 60
	return nil
}

func (t *Tunnel) Draw(dst *image.RGBA) {
	t.render(dst, t.t)
}

func (t *Tunnel) render(dst *image.RGBA, at float64) {
	shiftX := int(tunnelTexSize * at)
	shiftY := int(tunnelTexSize * 0.25 * at)
	lookX := t.w/2 + int(float64(t.w/2)*math.Sin(at*0.7))
	lookY := t.h/2 + int(float64(t.h/2)*math.Sin(at*1.1))

	r := dst.Bounds()
	w, h := min(t.w, r.Dx()), min(t.h, r.Dy())
	for y := 0; y < h; y++ {
		src := (y+lookY)*t.tw + lookX
		off := dst.PixOffset(r.Min.X, r.Min.Y+y)
		for x := 0; x < w; x++ {
			i := src + x
			c := t.tex.At(t.dist[i]+shiftX, t.angle[i]+shiftY)
			s := int(t.shade[i])
			dst.Pix[off] = uint8(int(c.R) * s >> 8)
			dst.Pix[off+1] = uint8(int(c.G) * s >> 8)
			dst.Pix[off+2] = uint8(int(c.B) * s >> 8)
			dst.Pix[off+3] = 0xff
			off += 4
		}
	}
}
