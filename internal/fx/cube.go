package fx

import (
	"cmp"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

const (
	numCubes    = 6
	perspective = 200.0
)

// cubeFaces wind so that (b-a) x (c-a) points out of the cube.
var cubeFaces = [6][4]int{
	{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4},
	{3, 7, 6, 2}, {0, 4, 7, 3}, {1, 2, 6, 5},
}

var cubeColors = [6]color.RGBA{
	{255, 140, 0, 255}, {255, 165, 50, 255},
	{80, 180, 255, 255}, {40, 120, 255, 255},
	{255, 60, 120, 255}, {200, 255, 100, 255},
}

// Vec3 is a point in view space, z growing away from the viewer.
type Vec3 struct {
	X, Y, Z float64
}

// Cube3D is a cube spinning around its own center.
type Cube3D struct {
	angleX float64
	angleY float64
	angleZ float64
	size   float64
}

func NewCube3D(size float64) *Cube3D {
	return &Cube3D{size: size}
}

func (c *Cube3D) Rotate(dx, dy, dz float64) {
	c.angleX += dx
	c.angleY += dy
	c.angleZ += dz
}

// Vertices returns the eight corners rotated around X, then Y, then Z.
func (c *Cube3D) Vertices() [8]Vec3 {
	s := c.size / 2
	corners := [8]Vec3{
		{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s},
		{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s},
	}
	cosX, sinX := math.Cos(c.angleX), math.Sin(c.angleX)
	cosY, sinY := math.Cos(c.angleY), math.Sin(c.angleY)
	cosZ, sinZ := math.Cos(c.angleZ), math.Sin(c.angleZ)

	for i, v := range corners {
		x, y, z := v.X, v.Y, v.Z
		y, z = y*cosX-z*sinX, y*sinX+z*cosX
		x, z = x*cosY+z*sinY, -x*sinY+z*cosY
		x, y = x*cosZ-y*sinZ, x*sinZ+y*cosZ
		corners[i] = Vec3{x, y, z}
	}
	return corners
}

// FaceOrder returns face indices sorted back to front by mean depth.
func FaceOrder(v [8]Vec3) []int {
	depth := make([]float64, len(cubeFaces))
	order := make([]int, len(cubeFaces))
	for i, f := range cubeFaces {
		for _, vi := range f {
			depth[i] += v[vi].Z
		}
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(depth[b], depth[a]) })
	return order
}

func project(v Vec3, cx, cy float64) gfx.Point {
	f := perspective / (perspective + v.Z)
	return gfx.Point{X: cx + v.X*f, Y: cy + v.Y*f}
}

// normal of a face, pointing out of the cube.
func faceNormal(v [8]Vec3, f [4]int) Vec3 {
	a, b, c := v[f[0]], v[f[1]], v[f[2]]
	ux, uy, uz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	wx, wy, wz := c.X-a.X, c.Y-a.Y, c.Z-a.Z
	n := Vec3{uy*wz - uz*wy, uz*wx - ux*wz, ux*wy - uy*wx}
	l := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	if l == 0 {
		return n
	}
	return Vec3{n.X / l, n.Y / l, n.Z / l}
}

// signedArea is negative for faces turned towards the viewer.
func signedArea(pts []gfx.Point) float64 {
	a := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a / 2
}

// Draw paints the cube flat shaded, back faces first, with darker edges.
func (c *Cube3D) Draw(dst *image.RGBA, cx, cy float64) {
	v := c.Vertices()
	light := Vec3{0.4, 0.5, 0.77}
	for _, fi := range FaceOrder(v) {
		face := cubeFaces[fi]
		pts := make([]gfx.Point, 4)
		for i, vi := range face {
			pts[i] = project(v[vi], cx, cy)
		}
		if signedArea(pts) >= 0 {
			continue
		}

		n := faceNormal(v, face)
		lambert := -(n.X*light.X + n.Y*light.Y + n.Z*light.Z)
		col := gfx.Shade(cubeColors[fi], 0.35+0.65*math.Max(0, lambert))
		gfx.FillPolygon(dst, pts, col)
		gfx.StrokePolygon(dst, pts, gfx.Shade(col, 0.75))
	}
}

// Cube is a ring of spinning cubes on a Lissajous path, the ring itself
// depth sorted like the faces.
type Cube struct {
	cubes []*Cube3D
	pos   []float64
	w, h  int
	bg    *gfx.Indexed
}

func NewCube() *Cube { return &Cube{} }

func (c *Cube) Name() string { return "cube" }

func (c *Cube) Init(env *Env) error {
	c.w, c.h = env.Width, env.Height
	size := float64(min(c.w, c.h)) / 5
	c.cubes = make([]*Cube3D, numCubes)
	c.pos = make([]float64, numCubes)
	for i := range c.cubes {
		c.cubes[i] = NewCube3D(size)
		c.cubes[i].angleX = float64(i) * 0.3
		c.cubes[i].angleY = float64(i) * 0.2
		c.cubes[i].angleZ = float64(i) * 0.1
		c.pos[i] = 2 * math.Pi * float64(i) / numCubes
	}

	c.bg = gfx.NewIndexed(c.w, c.h)
	gfx.GradientPalette(c.bg.Palette, 0, 255, []gfx.GradientStop{
		{color.RGBA{0x00, 0x00, 0x20, 0xff}, 0.0},
		{color.RGBA{0x30, 0x00, 0x50, 0xff}, 0.5},
		{color.RGBA{0x00, 0x00, 0x20, 0xff}, 1.0},
	})
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			c.bg.Pix[y*c.w+x] = uint8(y * 256 / c.h)
		}
	}
	return nil
}

func (c *Cube) Update() error {
	for i, cb := range c.cubes {
		c.pos[i] += 0.015
		cb.Rotate(
			0.02*(1+float64(i)*0.1),
			0.03*(1+float64(i)*0.15),
			0.01*(1+float64(i)*0.05),
		)
	}
	c.bg.Palette.Rotate(0, 255, 1)
	return nil
}

func (c *Cube) Draw(dst *image.RGBA) {
	c.bg.Blit(dst)

	type placed struct {
		cube  *Cube3D
		x, y  float64
		depth float64
	}
	rx := float64(c.w) / 3
	ry := float64(c.h) / 5
	items := make([]placed, len(c.cubes))
	for i, cb := range c.cubes {
		a := c.pos[i]
		items[i] = placed{
			cube:  cb,
			x:     float64(c.w)/2 + rx*math.Cos(a),
			y:     float64(c.h)/2 + ry*math.Sin(a*2)*0.5 + ry*math.Sin(a),
			depth: math.Sin(a),
		}
	}
	slices.SortStableFunc(items, func(a, b placed) int { return cmp.Compare(a.depth, b.depth) })
	for _, it := range items {
		it.cube.Draw(dst, it.x, it.y)
	}
}
