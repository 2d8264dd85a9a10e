package fx

import (
	"image/color"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

func rowMean(b *gfx.Indexed, y int) float64 {
	sum := 0
	for x := 0; x < b.W; x++ {
		sum += int(b.Pix[y*b.W+x])
	}
	return float64(sum) / float64(b.W)
}

func TestFireCoolsUpward(t *testing.T) {
	f := NewFire()
	initEffect(t, f, testEnv(t))
	for i := 0; i < 200; i++ {
		f.Update()
	}
	top, bottom := rowMean(f.buf, 0), rowMean(f.buf, f.h-1)
	if top >= bottom {
		t.Errorf("top row mean %.1f not cooler than bottom %.1f", top, bottom)
	}
}

func TestFireSpreadDecays(t *testing.T) {
	f := NewFire()
	initEffect(t, f, testEnv(t))
	f.buf.Clear(255)
	f.spread()
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.buf.W; x++ {
			if v := f.buf.Pix[y*f.buf.W+x]; v != 254 {
				t.Fatalf("pixel (%d,%d) = %d, want 254", x, y, v)
			}
		}
	}

	f.buf.Clear(0)
	f.spread()
	for _, v := range f.buf.Pix {
		if v != 0 {
			t.Fatal("cold fire produced heat")
		}
	}
}

func TestCycleRotatesPaletteOnly(t *testing.T) {
	c := NewCycle()
	initEffect(t, c, testEnv(t))

	pix := append([]uint8(nil), c.buf.Pix...)
	pal := *c.buf.Palette
	c.Update()

	for i := range pix {
		if c.buf.Pix[i] != pix[i] {
			t.Fatal("pixels changed during palette cycling")
		}
	}
	if c.buf.Palette[0] != pal[0] {
		t.Error("background entry rotated")
	}
	if c.buf.Palette[3] != pal[1] {
		t.Errorf("entry 3 = %v, want old entry 1 %v", c.buf.Palette[3], pal[1])
	}
	if c.buf.At(0, 0) != 0 || c.buf.At(testW/2, testH/2) == 0 {
		t.Error("spiral should fill the disc and leave the corners at 0")
	}
}

func TestPlasmaPaletteRotates(t *testing.T) {
	p := NewPlasma()
	initEffect(t, p, testEnv(t))
	first := p.buf.Palette[0]
	last := p.buf.Palette[255]
	p.Update()
	if p.buf.Palette[1] != first || p.buf.Palette[0] != last {
		t.Error("plasma palette did not rotate by one")
	}
}

func TestGenerateMaze(t *testing.T) {
	m := GenerateMaze(mazeSize, rand.New(rand.NewPCG(7, 7)))

	for i := 0; i < m.Size; i++ {
		for _, c := range [][2]int{{i, 0}, {i, m.Size - 1}, {0, i}, {m.Size - 1, i}} {
			if !m.Wall(c[0], c[1]) {
				t.Fatalf("border cell %v is open", c)
			}
		}
	}
	if !m.Wall(-1, 3) || !m.Wall(3, m.Size) {
		t.Error("outside the grid must count as wall")
	}

	// every odd cell is reachable from the start
	seen := make([]bool, m.Size*m.Size)
	queue := [][2]int{{1, 1}}
	seen[1*m.Size+1] = true
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			x, y := c[0]+d[0], c[1]+d[1]
			if m.Wall(x, y) || seen[y*m.Size+x] {
				continue
			}
			seen[y*m.Size+x] = true
			queue = append(queue, [2]int{x, y})
		}
	}
	for y := 1; y < m.Size; y += 2 {
		for x := 1; x < m.Size; x += 2 {
			if !seen[y*m.Size+x] {
				t.Fatalf("cell (%d,%d) unreachable", x, y)
			}
		}
	}

	for i, c := range m.Cells {
		if c > 3 {
			t.Fatalf("cell %d has texture id %d", i, c)
		}
		if c != 0 {
			if id := m.TextureID(i%m.Size, i/m.Size); id < 0 || id > 2 {
				t.Fatalf("TextureID = %d", id)
			}
		}
	}
}

func TestCastRay(t *testing.T) {
	// 5x5 room: walls all around, open inside
	m := &Maze{Size: 5, Cells: make([]uint8, 25)}
	for i := 0; i < 5; i++ {
		m.Cells[i] = 1
		m.Cells[20+i] = 1
		m.Cells[i*5] = 1
		m.Cells[i*5+4] = 1
	}

	h := CastRay(m, 1.5, 2.5, 1, 0)
	if h.MapX != 4 || h.MapY != 2 || h.Side != 0 {
		t.Errorf("hit cell (%d,%d) side %d", h.MapX, h.MapY, h.Side)
	}
	if math.Abs(h.Dist-2.5) > 1e-9 || math.Abs(h.WallX-0.5) > 1e-9 {
		t.Errorf("dist %v wallX %v", h.Dist, h.WallX)
	}

	h = CastRay(m, 2.5, 2.5, 0, -1)
	if h.MapY != 0 || h.Side != 1 || math.Abs(h.Dist-1.5) > 1e-9 {
		t.Errorf("upward ray: %+v", h)
	}

	maze := GenerateMaze(mazeSize, rand.New(rand.NewPCG(3, 3)))
	for a := 0.0; a < 2*math.Pi; a += 0.1 {
		h := CastRay(maze, 1.5, 1.5, math.Cos(a), math.Sin(a))
		if math.IsInf(h.Dist, 0) || math.IsNaN(h.Dist) || h.Dist < 0 || h.Dist > mazeSize*2 {
			t.Fatalf("angle %.1f: distance %v", a, h.Dist)
		}
		if !maze.Wall(h.MapX, h.MapY) {
			t.Fatalf("angle %.1f: ray stopped in open cell", a)
		}
	}
}

func TestRaycasterStaysInMaze(t *testing.T) {
	r := NewRaycaster()
	initEffect(t, r, testEnv(t))
	for i := 0; i < 2000; i++ {
		r.Update()
		if r.maze.Wall(int(r.posX), int(r.posY)) {
			t.Fatalf("tick %d: camera inside a wall at (%.2f, %.2f)", i, r.posX, r.posY)
		}
	}
}

func TestRaycasterMazeCached(t *testing.T) {
	dir := t.TempDir()

	env := testEnv(t)
	env.AssetsDir = dir
	a := NewRaycaster()
	initEffect(t, a, env)
	if _, err := os.Stat(filepath.Join(dir, "maze_1.dat")); err != nil {
		t.Fatalf("maze not cached: %v", err)
	}

	// the same seed reads the cache back
	again := NewRaycaster()
	initEffect(t, again, env)
	if !slices.Equal(a.maze.Cells, again.maze.Cells) {
		t.Error("same seed gave a different maze")
	}

	// another seed gets its own cache entry and its own maze
	other := testEnv(t)
	other.AssetsDir = dir
	other.Seed = 99
	b := NewRaycaster()
	initEffect(t, b, other)
	if _, err := os.Stat(filepath.Join(dir, "maze_99.dat")); err != nil {
		t.Fatalf("second seed not cached: %v", err)
	}
	if !slices.Equal(b.maze.Cells, GenerateMaze(mazeSize, other.Rand()).Cells) {
		t.Error("seed 99 did not get the maze generated from seed 99")
	}
	if slices.Equal(a.maze.Cells, b.maze.Cells) {
		t.Error("seed ignored once a cache exists")
	}
}

func TestHeightmapRange(t *testing.T) {
	hm := Heightmap(64, rand.New(rand.NewPCG(1, 2)))
	if len(hm) != 64*64 {
		t.Fatalf("len = %d", len(hm))
	}
	lo, hi := byte(255), byte(0)
	for _, v := range hm {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo != 0 || hi != 255 {
		t.Errorf("range %d..%d, want 0..255", lo, hi)
	}
}

func TestVoxelYBuffer(t *testing.T) {
	v := NewVoxel()
	initEffect(t, v, testEnv(t))
	dst := gfx.NewFrame(testW, testH)
	for i := 0; i < 10; i++ {
		v.Update()
		v.Draw(dst)
		for x, y := range v.ybuf {
			if y < 0 || y > testH {
				t.Fatalf("ybuf[%d] = %d", x, y)
			}
		}
	}
}

// flatVoxel builds a voxel renderer over a flat green map looking down -y,
// the camera at the origin.
func flatVoxel() *Voxel {
	v := &Voxel{
		w:       testW,
		h:       testH,
		height:  make([]uint8, voxelMapSize*voxelMapSize),
		colors:  make([]color.RGBA, voxelMapSize*voxelMapSize),
		ybuf:    make([]int, testW),
		camH:    100,
		horizon: float64(testH) / 3,
	}
	for i := range v.colors {
		v.colors[i] = color.RGBA{0, 0xff, 0, 0xff}
	}
	return v
}

// setRows gives the map rows under world y in [from, to] a height and colour.
func (v *Voxel) setRows(from, to int, h uint8, c color.RGBA) {
	for wy := from; wy <= to; wy++ {
		r := wy & voxelMapMask
		for x := 0; x < voxelMapSize; x++ {
			v.height[r*voxelMapSize+x] = h
			v.colors[r*voxelMapSize+x] = c
		}
	}
}

func TestVoxelOcclusion(t *testing.T) {
	v := flatVoxel()
	// a near ridge at camera height tops out on the horizon row; far
	// mountains rise above it, and the flat ground between them is hidden
	v.setRows(-8, -4, 100, color.RGBA{0xff, 0, 0, 0xff})
	v.setRows(-201, -100, 255, color.RGBA{0, 0, 0xff, 0xff})

	dst := gfx.NewFrame(testW, testH)
	v.render(dst)

	top := int(v.horizon)
	for x := 0; x < testW; x++ {
		for y := 0; y < testH; y++ {
			c := dst.RGBAAt(x, y)
			if c.G != 0 {
				t.Fatalf("(%d,%d) = %v: hidden ground was drawn", x, y, c)
			}
			if y < top && (c.B == 0 || c.R != 0) {
				t.Fatalf("(%d,%d) = %v, want far mountains above the ridge", x, y, c)
			}
			if y >= top && (c.R == 0 || c.B != 0) {
				t.Fatalf("(%d,%d) = %v, want the near ridge", x, y, c)
			}
		}
		if v.ybuf[x] != 0 {
			t.Errorf("ybuf[%d] = %d, want 0 once the mountains reach the top", x, v.ybuf[x])
		}
	}
}

func TestVoxelNegativeWrap(t *testing.T) {
	v := flatVoxel()
	v.height[0] = 10
	v.height[voxelMapSize*voxelMapSize-1] = 200
	if got := v.groundAt(-0.5, -0.5); got != 200 {
		t.Errorf("groundAt(-0.5, -0.5) = %v, want the last texel", got)
	}
	if got := v.groundAt(0.5, 0.5); got != 10 {
		t.Errorf("groundAt(0.5, 0.5) = %v, want the first texel", got)
	}
	if got := v.groundAt(-voxelMapSize+0.5, 0.5); got != 10 {
		t.Errorf("groundAt one map width left = %v, want the first texel", got)
	}
}

func TestEnvMap(t *testing.T) {
	m := EnvMap()
	if len(m) != envMapSize*envMapSize {
		t.Fatalf("len = %d", len(m))
	}
	c := envMapSize / 2
	if m[c*envMapSize+c] < 240 {
		t.Errorf("center = %d, want a bright spot", m[c*envMapSize+c])
	}
	if m[0] != 0 || m[len(m)-1] != 0 {
		t.Error("corners should be dark")
	}
}

func TestBumpFollowsLight(t *testing.T) {
	b := NewBump()
	initEffect(t, b, testEnv(t))
	// flat surface, so only the distance to the light counts
	clear(b.bumpX)
	clear(b.bumpY)
	b.shade(10, 10)
	near, far := b.buf.At(10, 10), b.buf.At(testW-1, testH-1)
	if near <= far {
		t.Errorf("lit pixel %d not brighter than distant %d", near, far)
	}
}

func TestCubeFaceOrder(t *testing.T) {
	v := NewCube3D(40).Vertices()
	order := FaceOrder(v)
	if len(order) != 6 {
		t.Fatalf("order = %v", order)
	}
	// unrotated: face 1 is the far side, face 0 faces the viewer
	if order[0] != 1 || order[5] != 0 {
		t.Errorf("order = %v, want back face 1 first and front face 0 last", order)
	}

	c := NewCube3D(40)
	c.Rotate(0.3, 1.1, 0.2)
	v = c.Vertices()
	order = FaceOrder(v)
	depth := func(f int) float64 {
		d := 0.0
		for _, vi := range cubeFaces[f] {
			d += v[vi].Z
		}
		return d
	}
	for i := 1; i < len(order); i++ {
		if depth(order[i-1]) < depth(order[i]) {
			t.Fatalf("faces not sorted back to front: %v", order)
		}
	}
}

func TestFaceOrderKeepsTies(t *testing.T) {
	var flat [8]Vec3
	if got := FaceOrder(flat); !slices.Equal(got, []int{0, 1, 2, 3, 4, 5}) {
		t.Errorf("equal depths reordered: %v", got)
	}
}

func TestCubeDrawsFrontFace(t *testing.T) {
	dst := gfx.NewFrame(100, 100)
	NewCube3D(40).Draw(dst, 50, 50)

	want := gfx.Shade(cubeColors[0], 0.35+0.65*0.77)
	if got := dst.RGBAAt(50, 50); got != want {
		t.Errorf("center = %v, want front face %v", got, want)
	}
	if got := dst.RGBAAt(5, 5); got != (color.RGBA{}) {
		t.Errorf("outside the cube = %v", got)
	}
}

func TestDrawRotoIdentity(t *testing.T) {
	tex := gfx.NewTextureFunc(16, func(x, y int) color.RGBA {
		return color.RGBA{uint8(x), uint8(y), 0, 0xff}
	})
	dst := gfx.NewFrame(16, 8)
	drawRoto(dst, tex, 0, 1, 8, 4)
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			if got := dst.RGBAAt(x, y); int(got.R) != x || int(got.G) != y {
				t.Fatalf("pixel (%d,%d) shows texel (%d,%d)", x, y, got.R, got.G)
			}
		}
	}
}

func TestWaterEnergyDecays(t *testing.T) {
	wt := NewWater()
	initEffect(t, wt, testEnv(t))
	if wt.Energy() != 0 {
		t.Fatal("still water has energy")
	}
	wt.Drop(testW/2, testH/2, 3, dropDepth)
	wt.Step()
	start := wt.Energy()
	if start == 0 {
		t.Fatal("drop added no energy")
	}
	for i := 0; i < 400; i++ {
		wt.Step()
	}
	if end := wt.Energy(); end >= start {
		t.Errorf("energy %d did not decay below %d", end, start)
	}
}

func TestShadeBobsStamp(t *testing.T) {
	s := NewShadeBobs()
	initEffect(t, s, testEnv(t))

	s.Stamp(20, 20, 3)
	if s.buf.At(20, 20) != 3 || s.buf.At(20+bobRadius, 20) != 3 {
		t.Error("disc not stamped")
	}
	if s.buf.At(20+bobRadius, 20+bobRadius) != 0 {
		t.Error("corner of the bounding box stamped")
	}

	// indices wrap around the palette
	for i := 0; i < 85; i++ {
		s.Stamp(20, 20, 3)
	}
	if got := s.buf.At(20, 20); got != 2 {
		t.Errorf("after 86 stamps index = %d, want 2", got)
	}

	s.Stamp(-100, -100, 3)
	s.Stamp(testW+bobRadius-1, testH/2, 3)
}

func TestCopperBarOrder(t *testing.T) {
	c := NewCopper()
	initEffect(t, c, testEnv(t))
	for i := 0; i < 50; i++ {
		c.Update()
		bars := c.barOrder()
		if len(bars) != numCopperBars {
			t.Fatalf("%d bars", len(bars))
		}
		for j := 1; j < len(bars); j++ {
			if bars[j-1].depth > bars[j].depth {
				t.Fatal("bars not drawn back to front")
			}
		}
	}
}

func TestScrollerLineShift(t *testing.T) {
	s := NewScroller()
	initEffect(t, s, testEnv(t))
	for i := 0; i < 300; i++ {
		s.Update()
		for r := 0; r < s.strip.Rect.Dy(); r++ {
			if s.lineShift(r) < 0 {
				t.Fatalf("negative shift at row %d", r)
			}
		}
	}
	if s.scroll < 0 || s.scroll >= s.strip.Rect.Dx() {
		t.Errorf("scroll %d outside the strip", s.scroll)
	}
}

func TestIntroSwitchesParts(t *testing.T) {
	in := NewIntro()
	initEffect(t, in, testEnv(t))

	// the first frame is fully faded out
	dst := gfx.NewFrame(testW, testH)
	in.Draw(dst)
	if got := dst.RGBAAt(testW/2, testH/2); got != (color.RGBA{0, 0, 0, 0xff}) {
		t.Errorf("first frame = %v, want black", got)
	}

	for i := 0; i < introPartTicks-1; i++ {
		in.Update()
	}
	if in.Part() != 0 {
		t.Fatalf("part %d before the part time elapsed", in.Part())
	}
	in.Update()
	if in.Part() != 1 {
		t.Fatalf("part %d, want 1", in.Part())
	}
	for i := 0; i < 2*introPartTicks; i++ {
		in.Update()
	}
	if in.Part() != 0 {
		t.Errorf("part %d, want wrap to 0", in.Part())
	}
}

func TestStarfieldStaysOnScreen(t *testing.T) {
	s := NewStarfield()
	initEffect(t, s, testEnv(t))
	for i := 0; i < 300; i++ {
		s.Update()
		for _, st := range s.stars {
			if st.z < starNearZ || st.z > starFarZ {
				t.Fatalf("star depth %v out of range", st.z)
			}
		}
	}
}
