// Package show runs a sequence of effects in an ebiten window: it uploads
// the software framebuffer every frame, polls the keyboard and cross-fades
// from one effect to the next.
package show

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/pherosiden/gfxdemo/internal/fx"
	"github.com/pherosiden/gfxdemo/internal/gfx"
)

const tickDuration = 1.0 / 60.0

// ErrNothingToRun is returned when no effect of the sequence could start.
var ErrNothingToRun = errors.New("no effect could be started")

// Options configure a Game.
type Options struct {
	Width, Height int
	Duration      float64
	Transition    float64
	Loop          bool
	ShowHUD       bool

	// Lookup creates effects by name; fx.Lookup when nil.
	Lookup func(name string) (fx.Effect, error)
}

// Game implements ebiten.Game over a list of effect names.
type Game struct {
	env   *fx.Env
	names []string
	seq    *Sequencer
	opts   Options
	lookup func(name string) (fx.Effect, error)

	current fx.Effect

	frame  *image.RGBA // what the effect draws
	prev   *image.RGBA // last frame of the effect being faded out
	out    *image.RGBA // what gets uploaded
	canvas *ebiten.Image

	hud bool
}

// NewGame starts the first effect that initialises successfully.
func NewGame(env *fx.Env, names []string, opts Options) (*Game, error) {
	lookup := opts.Lookup
	if lookup == nil {
		lookup = fx.Lookup
	}
	for _, n := range names {
		if _, err := lookup(n); err != nil {
			return nil, err
		}
	}
	g := &Game{
		env:    env,
		names:  names,
		seq:    NewSequencer(len(names), opts.Duration, opts.Transition, opts.Loop),
		opts:   opts,
		lookup: lookup,
		frame:  gfx.NewFrame(opts.Width, opts.Height),
		prev:   gfx.NewFrame(opts.Width, opts.Height),
		out:    gfx.NewFrame(opts.Width, opts.Height),
		hud:    opts.ShowHUD,
	}
	if err := g.start(); err != nil {
		return nil, err
	}
	return g, nil
}

// start brings up the effect at seq.Current, stepping over effects whose Init
// fails.
func (g *Game) start() error {
	for attempts := 0; attempts < len(g.names); attempts++ {
		if g.seq.Done() {
			return nil
		}
		name := g.names[g.seq.Current()]
		e, err := g.lookup(name)
		if err != nil {
			return err
		}
		if err := e.Init(g.env); err != nil {
			log.Printf("effect %s: init failed: %v", name, err)
			_ = fx.Close(e)
			g.seq.Next()
			continue
		}
		g.env.Debugf("effect %s started", name)
		g.current = e
		return nil
	}
	return ErrNothingToRun
}

// switchEffect keeps the last picture for the cross-fade and replaces the
// running effect.
func (g *Game) switchEffect() error {
	copy(g.prev.Pix, g.out.Pix)
	g.stop()
	return g.start()
}

func (g *Game) stop() {
	if g.current == nil {
		return
	}
	if err := fx.Close(g.current); err != nil {
		log.Printf("effect %s: close: %v", g.current.Name(), err)
	}
	g.env.Debugf("effect %s stopped", g.current.Name())
	g.current = nil
}

// Close releases the running effect.
func (g *Game) Close() {
	g.stop()
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}

	skip := inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowRight)
	return g.step(skip)
}

// step advances the sequence one tick and the current effect with it.
func (g *Game) step(skip bool) error {
	changed := false
	if skip {
		changed = g.seq.Skip()
	}
	if g.seq.Tick(tickDuration) {
		changed = true
	}
	if changed {
		if err := g.switchEffect(); err != nil {
			return err
		}
	}
	if g.seq.Done() || g.current == nil {
		return ebiten.Termination
	}

	if err := g.current.Update(); err != nil {
		log.Printf("effect %s: %v", g.current.Name(), err)
		g.seq.Next()
		if err := g.switchEffect(); err != nil {
			return err
		}
	}
	return nil
}

// compose renders the current effect into out, mixed with the previous one
// during a transition.
func (g *Game) compose() {
	if g.current == nil {
		gfx.Clear(g.out, color.RGBA{0, 0, 0, 0xff})
		return
	}
	g.current.Draw(g.frame)
	copy(g.out.Pix, g.frame.Pix)
	if g.seq.State() == StateTransition {
		gfx.Blend(g.out, g.prev, 1-g.seq.Blend())
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(g.opts.Width, g.opts.Height)
	}
	g.compose()
	g.canvas.WritePixels(g.out.Pix)
	screen.DrawImage(g.canvas, nil)

	if g.hud {
		g.drawHUD(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	name := "-"
	if g.current != nil {
		name = g.current.Name()
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s (%d/%d)\nFPS: %0.2f\nTPS: %0.2f",
		name, g.seq.Current()+1, len(g.names), ebiten.ActualFPS(), ebiten.ActualTPS()))

	if p := g.seq.Progress(); p > 0 {
		w := float32(g.opts.Width)
		y := float32(g.opts.Height - 2)
		vector.DrawFilledRect(screen, 0, y, w, 2, color.RGBA{0x40, 0x40, 0x40, 0xff}, false)
		vector.DrawFilledRect(screen, 0, y, w*float32(p), 2, color.RGBA{0xff, 0xc0, 0x00, 0xff}, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.Width, g.opts.Height
}
