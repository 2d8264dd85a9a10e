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
	mazeSize    = 21 // odd, so cells sit on odd coordinates inside a closed border
	rayTexSize  = 64
	moveSpeed   = 0.045
	turnSpeed   = 0.03
	wallMargin  = 0.25
	shadeFactor = 0.18
)

// Maze is a square grid of wall (non zero) and floor (zero) cells.
type Maze struct {
	Size  int
	Cells []uint8
}

func (m *Maze) Wall(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Size || y >= m.Size {
		return true
	}
	return m.Cells[y*m.Size+x] != 0
}

// TextureID maps a wall cell to one of three wall textures.
func (m *Maze) TextureID(x, y int) int {
	if x < 0 || y < 0 || x >= m.Size || y >= m.Size || m.Cells[y*m.Size+x] == 0 {
		return 0
	}
	return int(m.Cells[y*m.Size+x]-1) % 3
}

// GenerateMaze carves a perfect maze with an iterative recursive backtracker.
// Wall cells get a texture id 1..3.
func GenerateMaze(size int, rng *rand.Rand) *Maze {
	m := &Maze{Size: size, Cells: make([]uint8, size*size)}
	for i := range m.Cells {
		m.Cells[i] = uint8(1 + rng.IntN(3))
	}

	type cell struct{ x, y int }
	dirs := []cell{{0, -2}, {2, 0}, {0, 2}, {-2, 0}}
	stack := []cell{{1, 1}}
	m.Cells[1*size+1] = 0
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		var next []cell
		for _, d := range dirs {
			nx, ny := cur.x+d.x, cur.y+d.y
			if nx > 0 && ny > 0 && nx < size-1 && ny < size-1 && m.Cells[ny*size+nx] != 0 {
				next = append(next, cell{nx, ny})
			}
		}
		if len(next) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		n := next[rng.IntN(len(next))]
		m.Cells[((cur.y+n.y)/2)*size+(cur.x+n.x)/2] = 0
		m.Cells[n.y*size+n.x] = 0
		stack = append(stack, n)
	}
	return m
}

// Hit describes where a ray met a wall.
type Hit struct {
	Dist   float64 // perpendicular distance, free of fisheye
	Side   int     // 0 for an x side, 1 for a y side
	MapX   int
	MapY   int
	WallX  float64 // where on the wall face, 0..1
	Length int     // cells stepped through
}

// CastRay walks the grid with a DDA from (px, py) along (dx, dy).
func CastRay(m *Maze, px, py, dx, dy float64) Hit {
	mapX, mapY := int(px), int(py)
	deltaX, deltaY := math.Inf(1), math.Inf(1)
	if dx != 0 {
		deltaX = math.Abs(1 / dx)
	}
	if dy != 0 {
		deltaY = math.Abs(1 / dy)
	}

	var stepX, stepY int
	var sideX, sideY float64
	if dx < 0 {
		stepX, sideX = -1, (px-float64(mapX))*deltaX
	} else {
		stepX, sideX = 1, (float64(mapX)+1-px)*deltaX
	}
	if dy < 0 {
		stepY, sideY = -1, (py-float64(mapY))*deltaY
	} else {
		stepY, sideY = 1, (float64(mapY)+1-py)*deltaY
	}

	h := Hit{}
	for limit := m.Size * 4; limit > 0; limit-- {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			h.Side = 0
		} else {
			sideY += deltaY
			mapY += stepY
			h.Side = 1
		}
		h.Length++
		if m.Wall(mapX, mapY) {
			break
		}
	}

	if h.Side == 0 {
		h.Dist = sideX - deltaX
		h.WallX = py + h.Dist*dy
	} else {
		h.Dist = sideY - deltaY
		h.WallX = px + h.Dist*dx
	}
	h.WallX -= math.Floor(h.WallX)
	h.MapX, h.MapY = mapX, mapY
	return h
}

// Raycaster renders a textured maze with floor and ceiling casting and
// distance darkening. The camera wanders by itself, turning at walls.
type Raycaster struct {
	maze  *Maze
	walls [3]*gfx.Texture
	floor *gfx.Texture
	ceil  *gfx.Texture
	rng   *rand.Rand

	posX, posY     float64
	dirX, dirY     float64
	planeX, planeY float64
	turning        float64
	w, h           int
}

func NewRaycaster() *Raycaster { return &Raycaster{} }

func (r *Raycaster) Name() string { return "raycast" }

func (r *Raycaster) Init(env *Env) error {
	r.w, r.h = env.Width, env.Height
	r.rng = env.Rand()

	cells := env.Table(fmt.Sprintf("maze_%d", env.Seed), mazeSize*mazeSize, func() []byte {
		return GenerateMaze(mazeSize, env.Rand()).Cells
	})
	r.maze = &Maze{Size: mazeSize, Cells: cells}
	if r.maze.Wall(1, 1) {
		// stale or foreign cache, fall back to a fresh maze
		env.Warnf("cached maze has no start cell, regenerating")
		r.maze = GenerateMaze(mazeSize, env.Rand())
	}

	r.walls[0] = env.Texture("wall1.png", rayTexSize, func() *gfx.Texture { return brickTexture(color.RGBA{0xb0, 0x40, 0x30, 0xff}) })
	r.walls[1] = env.Texture("wall2.png", rayTexSize, func() *gfx.Texture { return brickTexture(color.RGBA{0x70, 0x70, 0x80, 0xff}) })
	r.walls[2] = env.Texture("wall3.png", rayTexSize, func() *gfx.Texture {
		return gfx.XORTexture(rayTexSize, color.RGBA{0x40, 0xa0, 0x40, 0xff})
	})
	r.floor = env.Texture("floor.png", rayTexSize, func() *gfx.Texture { return checkerTexture(color.RGBA{0x60, 0x50, 0x40, 0xff}) })
	r.ceil = env.Texture("ceil.png", rayTexSize, func() *gfx.Texture { return checkerTexture(color.RGBA{0x30, 0x30, 0x50, 0xff}) })

	r.posX, r.posY = 1.5, 1.5
	r.dirX, r.dirY = 1, 0
	r.planeX, r.planeY = 0, 0.66
	return nil
}

func brickTexture(c color.RGBA) *gfx.Texture {
	mortar := color.RGBA{0xc0, 0xc0, 0xb0, 0xff}
	return gfx.NewTextureFunc(rayTexSize, func(x, y int) color.RGBA {
		bx := x
		if (y/16)%2 == 1 {
			bx += 16
		}
		if y%16 == 0 || bx%32 == 0 {
			return mortar
		}
		return gfx.Shade(c, 0.8+0.2*float64((x*7+y*13)%5)/4)
	})
}

func checkerTexture(c color.RGBA) *gfx.Texture {
	return gfx.NewTextureFunc(rayTexSize, func(x, y int) color.RGBA {
		if (x/8+y/8)%2 == 0 {
			return gfx.Shade(c, 0.7)
		}
		return c
	})
}

func (r *Raycaster) free(x, y float64) bool {
	return !r.maze.Wall(int(x), int(y))
}

func (r *Raycaster) rotate(a float64) {
	cos, sin := math.Cos(a), math.Sin(a)
	r.dirX, r.dirY = r.dirX*cos-r.dirY*sin, r.dirX*sin+r.dirY*cos
	r.planeX, r.planeY = r.planeX*cos-r.planeY*sin, r.planeX*sin+r.planeY*cos
}

func (r *Raycaster) Update() error {
	if r.turning != 0 {
		step := math.Copysign(math.Min(turnSpeed, math.Abs(r.turning)), r.turning)
		r.rotate(step)
		r.turning -= step
		return nil
	}

	ahead := CastRay(r.maze, r.posX, r.posY, r.dirX, r.dirY)
	if ahead.Dist < 0.5+wallMargin {
		// pick a side that is open, otherwise turn around
		left := CastRay(r.maze, r.posX, r.posY, r.dirY, -r.dirX)
		right := CastRay(r.maze, r.posX, r.posY, -r.dirY, r.dirX)
		switch {
		case left.Dist > 1 && (right.Dist <= 1 || r.rng.IntN(2) == 0):
			r.turning = -math.Pi / 2
		case right.Dist > 1:
			r.turning = math.Pi / 2
		default:
			r.turning = math.Pi
		}
		return nil
	}

	nx := r.posX + r.dirX*moveSpeed
	ny := r.posY + r.dirY*moveSpeed
	if r.free(nx+math.Copysign(wallMargin, r.dirX), r.posY) {
		r.posX = nx
	}
	if r.free(r.posX, ny+math.Copysign(wallMargin, r.dirY)) {
		r.posY = ny
	}
	return nil
}

func distShade(d float64) float64 {
	return 1 / (1 + d*d*shadeFactor)
}

func (r *Raycaster) Draw(dst *image.RGBA) {
	r.drawFloorCeiling(dst)
	r.drawWalls(dst)
}

func (r *Raycaster) drawFloorCeiling(dst *image.RGBA) {
	rayX0, rayY0 := r.dirX-r.planeX, r.dirY-r.planeY
	rayX1, rayY1 := r.dirX+r.planeX, r.dirY+r.planeY
	half := float64(r.h) / 2

	for y := r.h / 2; y < r.h; y++ {
		denom := float64(y) + 0.5 - half
		if denom <= 0 {
			gfx.HLine(dst, 0, r.w-1, y, color.RGBA{0, 0, 0, 0xff})
			continue
		}
		rowDist := half / denom
		stepX := rowDist * (rayX1 - rayX0) / float64(r.w)
		stepY := rowDist * (rayY1 - rayY0) / float64(r.w)
		floorX := r.posX + rowDist*rayX0
		floorY := r.posY + rowDist*rayY0
		s := distShade(rowDist)
		for x := 0; x < r.w; x++ {
			tx := int(floorX * rayTexSize)
			ty := int(floorY * rayTexSize)
			floorX += stepX
			floorY += stepY
			gfx.PutPixel(dst, x, y, gfx.Shade(r.floor.At(tx, ty), s))
			gfx.PutPixel(dst, x, r.h-y-1, gfx.Shade(r.ceil.At(tx, ty), s))
		}
	}
}

func (r *Raycaster) drawWalls(dst *image.RGBA) {
	for x := 0; x < r.w; x++ {
		camX := 2*float64(x)/float64(r.w) - 1
		hit := CastRay(r.maze, r.posX, r.posY, r.dirX+r.planeX*camX, r.dirY+r.planeY*camX)
		dist := math.Max(hit.Dist, 1e-4)

		lineH := int(float64(r.h) / dist)
		top := -lineH/2 + r.h/2
		bottom := lineH/2 + r.h/2
		y0, y1 := max(top, 0), min(bottom, r.h-1)

		tex := r.walls[r.maze.TextureID(hit.MapX, hit.MapY)]
		tx := int(hit.WallX * rayTexSize)
		s := distShade(dist)
		if hit.Side == 1 {
			s *= 0.7
		}
		step := float64(rayTexSize) / float64(max(lineH, 1))
		ty := float64(y0-top) * step
		for y := y0; y <= y1; y++ {
			gfx.PutPixel(dst, x, y, gfx.Shade(tex.At(tx, int(ty)), s))
			ty += step
		}
	}
}
