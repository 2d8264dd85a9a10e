package fx

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

const (
	voxelMapSize  = 256
	voxelMapMask  = voxelMapSize - 1
	voxelDistance = 400.0
	voxelScale    = 120.0
)

// Voxel is the heightmap landscape: for every screen column the terrain is
// stepped front to back and a per column y-buffer hides what is behind.
type Voxel struct {
	height []uint8
	colors []color.RGBA
	ybuf   []int
	w, h   int

	x, y    float64
	angle   float64
	camH    float64
	horizon float64
	t       float64
}

func NewVoxel() *Voxel { return &Voxel{} }

func (v *Voxel) Name() string { return "voxel" }

func (v *Voxel) Init(env *Env) error {
	v.w, v.h = env.Width, env.Height
	v.ybuf = make([]int, v.w)
	v.height = env.Table(fmt.Sprintf("voxel_height_%d", env.Seed), voxelMapSize*voxelMapSize, func() []byte {
		return Heightmap(voxelMapSize, env.Rand())
	})
	v.colors = colorMap(v.height)
	v.horizon = float64(v.h) / 3
	v.camH = 160
	return nil
}

// Heightmap generates a wrapping size x size terrain with diamond-square
// midpoint displacement, normalised to 0..255. size is a power of two.
func Heightmap(size int, rng *rand.Rand) []byte {
	mask := size - 1
	hm := make([]float64, size*size)
	at := func(x, y int) *float64 { return &hm[(y&mask)*size+(x&mask)] }

	rough := 1.0
	for step := size; step > 1; step /= 2 {
		half := step / 2
		// diamond
		for y := 0; y < size; y += step {
			for x := 0; x < size; x += step {
				avg := (*at(x, y) + *at(x+step, y) + *at(x, y+step) + *at(x+step, y+step)) / 4
				*at(x+half, y+half) = avg + (rng.Float64()*2-1)*rough
			}
		}
		// square
		for y := 0; y < size; y += half {
			for x := (y/half%2 + 1) % 2 * half; x < size; x += step {
				avg := (*at(x-half, y) + *at(x+half, y) + *at(x, y-half) + *at(x, y+half)) / 4
				*at(x, y) = avg + (rng.Float64()*2-1)*rough
			}
		}
		rough *= 0.55
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, h := range hm {
		lo = math.Min(lo, h)
		hi = math.Max(hi, h)
	}
	out := make([]byte, len(hm))
	span := hi - lo
	if span == 0 {
		span = 1
	}
	for i, h := range hm {
		out[i] = uint8(255 * (h - lo) / span)
	}
	return out
}

var terrainStops = []gfx.GradientStop{
	{color.RGBA{0x10, 0x30, 0x90, 0xff}, 0.0},
	{color.RGBA{0x30, 0x60, 0xc0, 0xff}, 0.3},
	{color.RGBA{0xd0, 0xc0, 0x80, 0xff}, 0.33},
	{color.RGBA{0x30, 0x90, 0x30, 0xff}, 0.45},
	{color.RGBA{0x20, 0x60, 0x20, 0xff}, 0.65},
	{color.RGBA{0x70, 0x60, 0x50, 0xff}, 0.8},
	{color.RGBA{0xff, 0xff, 0xff, 0xff}, 1.0},
}

// colorMap shades the height gradient by the slope towards the light.
func colorMap(height []uint8) []color.RGBA {
	pal := &gfx.Palette{}
	gfx.GradientPalette(pal, 0, 255, terrainStops)

	out := make([]color.RGBA, len(height))
	for y := 0; y < voxelMapSize; y++ {
		for x := 0; x < voxelMapSize; x++ {
			h := int(height[y*voxelMapSize+x])
			hn := int(height[((y-1)&voxelMapMask)*voxelMapSize+((x-1)&voxelMapMask)])
			light := 1 + float64(h-hn)/48
			out[y*voxelMapSize+x] = gfx.Shade(pal[h], math.Max(0.4, math.Min(1, light)))
		}
	}
	return out
}

func (v *Voxel) groundAt(x, y float64) float64 {
	return float64(v.height[v.mapIndex(x, y)])
}

// mapIndex wraps world coordinates onto the map. Coordinates are floored so
// negative positions keep tiling.
func (v *Voxel) mapIndex(x, y float64) int {
	return (int(math.Floor(y))&voxelMapMask)*voxelMapSize + (int(math.Floor(x)) & voxelMapMask)
}

func (v *Voxel) Update() error {
	v.t += 1.0 / 60
	v.angle = 0.6 * math.Sin(v.t*0.15)
	v.x -= math.Sin(v.angle) * 1.2
	v.y -= math.Cos(v.angle) * 1.2

	ground := v.groundAt(v.x, v.y)
	target := ground + 60
	v.camH += (target - v.camH) * 0.05
	if v.camH < ground+10 {
		v.camH = ground + 10
	}
	return nil
}

func (v *Voxel) Draw(dst *image.RGBA) {
	v.drawSky(dst)
	v.render(dst)
}

func (v *Voxel) drawSky(dst *image.RGBA) {
	top := color.RGBA{0x20, 0x40, 0x90, 0xff}
	bottom := color.RGBA{0xc0, 0xd0, 0xf0, 0xff}
	for y := 0; y < v.h; y++ {
		t := math.Min(1, float64(y)/math.Max(1, v.horizon+float64(v.h)/4))
		gfx.HLine(dst, 0, v.w-1, y, gfx.Lerp(top, bottom, t))
	}
}

// render draws terrain front to back and leaves the final y-buffer in v.ybuf.
func (v *Voxel) render(dst *image.RGBA) {
	for i := range v.ybuf {
		v.ybuf[i] = v.h
	}
	sin, cos := math.Sin(v.angle), math.Cos(v.angle)
	dz := 1.0
	for z := 1.0; z < voxelDistance; z += dz {
		// left and right ends of the view line at distance z
		plx := -cos*z - sin*z
		ply := sin*z - cos*z
		prx := cos*z - sin*z
		pry := -sin*z - cos*z
		stepX := (prx - plx) / float64(v.w)
		stepY := (pry - ply) / float64(v.w)
		plx += v.x
		ply += v.y

		fog := 1 - z/voxelDistance
		for i := 0; i < v.w; i++ {
			mi := v.mapIndex(plx, ply)
			sy := int((v.camH-float64(v.height[mi]))/z*voxelScale + v.horizon)
			if sy < 0 {
				sy = 0
			}
			if sy < v.ybuf[i] {
				c := gfx.Shade(v.colors[mi], 0.3+0.7*fog)
				for y := sy; y < v.ybuf[i]; y++ {
					gfx.PutPixel(dst, i, y, c)
				}
				v.ybuf[i] = sy
			}
			plx += stepX
			ply += stepY
		}
		dz += 0.01
	}
}
