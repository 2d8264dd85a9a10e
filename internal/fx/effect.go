// Package fx holds the demo effects. Every effect is independent: it owns its
// buffers and tables, and only meets the outside world through Env and the
// framebuffer handed to Draw.
package fx

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

// Effect is one self-contained routine. Init is called once before the first
// Update; Update advances one tick and Draw renders the current state.
type Effect interface {
	Name() string
	Init(env *Env) error
	Update() error
	Draw(dst *image.RGBA)
}

// Env is what an effect may use from its surroundings.
type Env struct {
	Width, Height int
	AssetsDir     string
	Seed          uint64
	Log           *log.Logger
	Verbose       bool
}

// NewEnv returns an Env for a w x h framebuffer logging to the default logger.
func NewEnv(w, h int, assetsDir string) *Env {
	return &Env{
		Width:     w,
		Height:    h,
		AssetsDir: assetsDir,
		Seed:      1,
		Log:       log.Default(),
	}
}

// Rand returns a generator seeded from Env, so runs are reproducible.
func (e *Env) Rand() *rand.Rand {
	return rand.New(rand.NewPCG(e.Seed, 0x9e3779b97f4a7c15))
}

// Debugf logs only in verbose mode.
func (e *Env) Debugf(format string, args ...any) {
	if e.Verbose && e.Log != nil {
		e.Log.Printf(format, args...)
	}
}

// Warnf always logs.
func (e *Env) Warnf(format string, args ...any) {
	if e.Log != nil {
		e.Log.Printf("warning: "+format, args...)
	}
}

// Texture loads AssetsDir/name as a size x size texture. A missing file is
// expected and noted only in verbose mode; a broken one is a warning.
func (e *Env) Texture(name string, size int, fallback func() *gfx.Texture) *gfx.Texture {
	if e.AssetsDir == "" {
		return fallback()
	}
	img, err := gfx.LoadImage(os.DirFS(e.AssetsDir), name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.Debugf("%s not found, using generated texture", name)
		} else {
			e.Warnf("load %s: %v", filepath.Join(e.AssetsDir, name), err)
		}
		return fallback()
	}
	return gfx.NewTexture(img, size)
}

// Table loads or builds a cached lookup table, logging a failed store.
func (e *Env) Table(name string, n int, build func() []byte) []byte {
	data, err := gfx.CachedTable(e.AssetsDir, name, n, build)
	if err != nil {
		e.Warnf("cache %s: %v", name, err)
	}
	return data
}

// Close releases an effect's resources when it implements io.Closer.
func Close(e Effect) error {
	if c, ok := e.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var registry = map[string]func() Effect{
	"plasma":    func() Effect { return NewPlasma() },
	"fire":      func() Effect { return NewFire() },
	"tunnel":    func() Effect { return NewTunnel() },
	"starfield": func() Effect { return NewStarfield() },
	"raycast":   func() Effect { return NewRaycaster() },
	"voxel":     func() Effect { return NewVoxel() },
	"bump":      func() Effect { return NewBump() },
	"cycle":     func() Effect { return NewCycle() },
	"copper":    func() Effect { return NewCopper() },
	"rotozoom":  func() Effect { return NewRotozoom() },
	"cube":      func() Effect { return NewCube() },
	"scroller":  func() Effect { return NewScroller() },
	"water":     func() Effect { return NewWater() },
	"shadebobs": func() Effect { return NewShadeBobs() },
	"intro":     func() Effect { return NewIntro() },
}

var groups = map[string][]string{
	"effects": {"plasma", "fire", "tunnel", "starfield", "bump", "cycle", "rotozoom", "water", "shadebobs"},
	"demo":    {"copper", "scroller", "cube", "raycast", "voxel", "intro"},
}

// Lookup creates a fresh instance of the named effect.
func Lookup(name string) (Effect, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown effect %q", name)
	}
	return ctor(), nil
}

// Names lists every registered effect, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Group returns the effect names of a named sequence. "all" is the effects
// group followed by the demo group.
func Group(name string) ([]string, error) {
	if name == "all" {
		all := append([]string{}, groups["effects"]...)
		return append(all, groups["demo"]...), nil
	}
	g, ok := groups[name]
	if !ok {
		return nil, fmt.Errorf("unknown group %q", name)
	}
	return append([]string(nil), g...), nil
}
