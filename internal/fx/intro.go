package fx

import (
	"fmt"
	"image"
	"image/color"

	"github.com/pherosiden/gfxdemo/internal/gfx"
)

const (
	introPartTicks = 60 * 8
	introFadeTicks = 45
)

type introPart struct {
	fx    Effect
	title string
}

// Intro chains a few effects into one timed production: each part plays for a
// fixed time, fades through black into the next, and carries a caption.
type Intro struct {
	parts []introPart
	black *image.RGBA
	part  int
	tick  int
}

func NewIntro() *Intro { return &Intro{} }

func (in *Intro) Name() string { return "intro" }

func (in *Intro) Init(env *Env) error {
	in.parts = []introPart{
		{NewTunnel(), "ENTER THE TUNNEL"},
		{NewPlasma(), "PLASMA FIELDS"},
		{NewScroller(), ""},
	}
	for _, p := range in.parts {
		if err := p.fx.Init(env); err != nil {
			return fmt.Errorf("intro part %s: %w", p.fx.Name(), err)
		}
	}
	in.black = gfx.NewFrame(env.Width, env.Height)
	gfx.Clear(in.black, color.RGBA{0, 0, 0, 0xff})
	return nil
}

// Part returns the index of the part currently playing.
func (in *Intro) Part() int { return in.part }

func (in *Intro) Update() error {
	in.tick++
	if in.tick >= introPartTicks {
		in.tick = 0
		in.part = (in.part + 1) % len(in.parts)
	}
	return in.parts[in.part].fx.Update()
}

// fade is the brightness of the current tick, 0 at part edges.
func (in *Intro) fade() float64 {
	switch {
	case in.tick < introFadeTicks:
		return float64(in.tick) / introFadeTicks
	case in.tick > introPartTicks-introFadeTicks:
		return float64(introPartTicks-in.tick) / introFadeTicks
	}
	return 1
}

func (in *Intro) Draw(dst *image.RGBA) {
	p := in.parts[in.part]
	p.fx.Draw(dst)
	if p.title != "" {
		x := (dst.Rect.Dx() - gfx.TextWidth(p.title)) / 2
		gfx.DrawText(dst, x+1, 9, p.title, color.RGBA{0, 0, 0, 0xff})
		gfx.DrawText(dst, x, 8, p.title, color.RGBA{0xff, 0xff, 0xff, 0xff})
	}
	gfx.Blend(dst, in.black, 1-in.fade())
}

func (in *Intro) Close() error {
	for _, p := range in.parts {
		_ = Close(p.fx)
	}
	in.parts = nil
	return nil
}
