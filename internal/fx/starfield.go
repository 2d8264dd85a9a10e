package fx

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

const (
	numStars  = 600
	starNearZ = 1.0
	starFarZ  = 64.0
)

type star struct {
	x, y, z float64
	px, py  int // previous projection, for streaks
}

// Starfield flies through a box of stars, projecting each with a perspective
// divide and shading by depth.
type Starfield struct {
	stars []star
	rng   *rand.Rand
	w, h  int
	fov   float64
	speed float64
	t     float64
}

func NewStarfield() *Starfield { return &Starfield{speed: 0.5} }

func (s *Starfield) Name() string { return "starfield" }

func (s *Starfield) Init(env *Env) error {
	s.w, s.h = env.Width, env.Height
	s.fov = float64(env.Width) / 2
	s.rng = env.Rand()
	s.stars = make([]star, numStars)
	for i := range s.stars {
		s.respawn(&s.stars[i])
		s.stars[i].z = starNearZ + s.rng.Float64()*(starFarZ-starNearZ)
	}
	return nil
}

func (s *Starfield) respawn(st *star) {
	st.x = (s.rng.Float64()*2 - 1) * starFarZ
	st.y = (s.rng.Float64()*2 - 1) * starFarZ
	st.z = starFarZ
	st.px, st.py = -1, -1
}

func (s *Starfield) project(st *star) (int, int, bool) {
	sx := float64(s.w)/2 + st.x/st.z*s.fov
	sy := float64(s.h)/2 + st.y/st.z*s.fov
	if sx < 0 || sy < 0 || sx >= float64(s.w) || sy >= float64(s.h) {
		return 0, 0, false
	}
	return int(sx), int(sy), true
}

func (s *Starfield) Update() error {
	s.t += 1.0 / 60
	speed := s.speed * (1.5 + math.Sin(s.t*0.5))
	for i := range s.stars {
		st := &s.stars[i]
		if x, y, ok := s.project(st); ok {
			st.px, st.py = x, y
		} else {
			st.px, st.py = -1, -1
		}
		st.z -= speed
		if st.z < starNearZ {
			s.respawn(st)
			continue
		}
		if _, _, ok := s.project(st); !ok {
			s.respawn(st)
		}
	}
	return nil
}

func (s *Starfield) Draw(dst *image.RGBA) {
	gfx.Clear(dst, color.RGBA{0, 0, 0, 0xff})
	for i := range s.stars {
		st := &s.stars[i]
		x, y, ok := s.project(st)
		if !ok {
			continue
		}
		b := 1 - (st.z-starNearZ)/(starFarZ-starNearZ)
		c := gfx.Shade(color.RGBA{0xff, 0xff, 0xff, 0xff}, 0.15+0.85*b)
		if st.px >= 0 && b > 0.5 {
			gfx.Line(dst, st.px, st.py, x, y, gfx.Shade(c, 0.6))
		}
		if b > 0.8 {
			gfx.FillRect(dst, x, y, 2, 2, c)
		} else {
			gfx.PutPixel(dst, x, y, c)
		}
	}
}
