package fx

import (
	"image"
	"image/color"
	"math"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

const rotoTexSize = 256

// Rotozoom maps a tiled texture through a rotating, zooming affine transform,
// stepping the texture coordinates in 16.16 fixed point along each line.
type Rotozoom struct {
	tex *gfx.Texture
	t   float64
}

func NewRotozoom() *Rotozoom { return &Rotozoom{} }

func (r *Rotozoom) Name() string { return "rotozoom" }

func (r *Rotozoom) Init(env *Env) error {
	r.tex = env.Texture("rotozoom.png", rotoTexSize, rotoTexture)
	return nil
}

// rotoTexture is a checkerboard with a ring in every tile.
func rotoTexture() *gfx.Texture {
	a := color.RGBA{0xff, 0x90, 0x20, 0xff}
	b := color.RGBA{0x20, 0x30, 0x80, 0xff}
	return gfx.NewTextureFunc(rotoTexSize, func(x, y int) color.RGBA {
		c := a
		if (x/32+y/32)%2 == 1 {
			c = b
		}
		dx, dy := float64(x%32)-15.5, float64(y%32)-15.5
		if d := math.Hypot(dx, dy); d > 9 && d < 12 {
			return color.RGBA{0xff, 0xff, 0xff, 0xff}
		}
		return c
	})
}

func (r *Rotozoom) Update() error {
	r.t += 1.0 / 60
	return nil
}

func (r *Rotozoom) Draw(dst *image.RGBA) {
	angle := r.t * 0.7
	zoom := 1.1 + 0.5*math.Sin(r.t*0.9)
	cu := rotoTexSize/2 + 100*math.Cos(r.t*0.3)
	cv := rotoTexSize/2 + 100*math.Sin(r.t*0.4)
	drawRoto(dst, r.tex, angle, zoom, cu, cv)
}

// drawRoto renders tex so the screen center shows texel (cu, cv). One screen
// pixel spans zoom texels.
func drawRoto(dst *image.RGBA, tex *gfx.Texture, angle, zoom, cu, cv float64) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()

	du := int(math.Cos(angle) * zoom * 65536)
	dv := int(math.Sin(angle) * zoom * 65536)

	// texture position of pixel (0,0)
	u0 := int(cu*65536) - (w/2)*du + (h/2)*dv
	v0 := int(cv*65536) - (w/2)*dv - (h/2)*du

	for y := 0; y < h; y++ {
		u, v := u0, v0
		off := dst.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			c := tex.At(u>>16, v>>16)
			dst.Pix[off] = c.R
			dst.Pix[off+1] = c.G
			dst.Pix[off+2] = c.B
			dst.Pix[off+3] = 0xff
			off += 4
			u += du
			v += dv
		}
		u0 -= dv
		v0 += du
	}
}
