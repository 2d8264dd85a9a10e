// Package gfx is the software rendering layer shared by the effects: an 8-bit
// indexed framebuffer with a cycling palette, clipped primitives, a scanline
// polygon filler, lookup tables, bitmap text and asset loading.
//
// Everything draws into plain *image.RGBA or *Indexed buffers so effects can be
// rendered and tested without a window.
package gfx

import (
	"image/color"
	"math"
)

// Palette is a 256 entry color lookup table for indexed buffers.
type Palette [256]color.RGBA

// GradientStop is a color at a relative offset in [0,1].
type GradientStop struct {
	Color  color.Color
	Offset float64
}

// Rotate cycles entries first..last (inclusive) by n steps. Positive n moves
// every color up one slot and wraps the last one around to first.
func (p *Palette) Rotate(first, last uint8, n int) {
	if last <= first {
		return
	}
	size := int(last) - int(first) + 1
	n %= size
	if n < 0 {
		n += size
	}
	if n == 0 {
		return
	}
	var tmp [256]color.RGBA
	for i := 0; i < size; i++ {
		tmp[(i+n)%size] = p[int(first)+i]
	}
	copy(p[first:int(last)+1], tmp[:size])
}

// FadeTo moves every channel at most step units towards target and reports
// whether the palette now equals target.
func (p *Palette) FadeTo(target *Palette, step uint8) bool {
	done := true
	for i := range p {
		c := &p[i]
		t := target[i]
		c.R = approach(c.R, t.R, step)
		c.G = approach(c.G, t.G, step)
		c.B = approach(c.B, t.B, step)
		c.A = approach(c.A, t.A, step)
		if *c != t {
			done = false
		}
	}
	return done
}

func approach(v, target, step uint8) uint8 {
	switch {
	case v < target:
		if target-v <= step {
			return target
		}
		return v + step
	case v > target:
		if v-target <= step {
			return target
		}
		return v - step
	}
	return v
}

// Scaled returns a copy with every color multiplied by f (0..1).
func (p *Palette) Scaled(f float64) Palette {
	var out Palette
	for i, c := range p {
		out[i] = Shade(c, f)
	}
	return out
}

// GradientPalette spreads stops across entries first..last.
func GradientPalette(p *Palette, first, last uint8, stops []GradientStop) {
	if last < first || len(stops) == 0 {
		return
	}
	n := int(last) - int(first)
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		p[int(first)+i] = gradientAt(stops, t)
	}
}

func gradientAt(stops []GradientStop, t float64) color.RGBA {
	if t <= stops[0].Offset {
		return toRGBA(stops[0].Color)
	}
	for i := 0; i < len(stops)-1; i++ {
		if t >= stops[i].Offset && t <= stops[i+1].Offset {
			span := stops[i+1].Offset - stops[i].Offset
			if span <= 0 {
				return toRGBA(stops[i+1].Color)
			}
			return Lerp(stops[i].Color, stops[i+1].Color, (t-stops[i].Offset)/span)
		}
	}
	return toRGBA(stops[len(stops)-1].Color)
}

// GrayPalette is a linear black to white ramp.
func GrayPalette() *Palette {
	p := &Palette{}
	for i := range p {
		p[i] = color.RGBA{uint8(i), uint8(i), uint8(i), 0xff}
	}
	return p
}

// FirePalette runs black, red, yellow, white.
func FirePalette() *Palette {
	p := &Palette{}
	GradientPalette(p, 0, 255, []GradientStop{
		{color.RGBA{0x00, 0x00, 0x00, 0xff}, 0.0},
		{color.RGBA{0x70, 0x00, 0x00, 0xff}, 0.25},
		{color.RGBA{0xff, 0x30, 0x00, 0xff}, 0.45},
		{color.RGBA{0xff, 0xc0, 0x00, 0xff}, 0.7},
		{color.RGBA{0xff, 0xff, 0xff, 0xff}, 1.0},
	})
	return p
}

// HSLPalette sweeps hue once around the table at the given saturation and
// lightness.
func HSLPalette(s, l float64) *Palette {
	p := &Palette{}
	for i := range p {
		r, g, b := HSLToRGB(float64(i)/256, s, l)
		p[i] = color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 0xff}
	}
	return p
}

// Lerp interpolates two colors, t in [0,1].
func Lerp(c1, c2 color.Color, t float64) color.RGBA {
	r1, g1, b1, a1 := c1.RGBA()
	r2, g2, b2, a2 := c2.RGBA()

	r := uint8(float64(r1>>8)*(1-t) + float64(r2>>8)*t)
	g := uint8(float64(g1>>8)*(1-t) + float64(g2>>8)*t)
	b := uint8(float64(b1>>8)*(1-t) + float64(b2>>8)*t)
	a := uint8(float64(a1>>8)*(1-t) + float64(a2>>8)*t)

	return color.RGBA{r, g, b, a}
}

// Shade scales the color channels by f, keeping alpha.
func Shade(c color.RGBA, f float64) color.RGBA {
	if f <= 0 {
		return color.RGBA{0, 0, 0, c.A}
	}
	if f >= 1 {
		return c
	}
	return color.RGBA{
		uint8(float64(c.R) * f),
		uint8(float64(c.G) * f),
		uint8(float64(c.B) * f),
		c.A,
	}
}

// HSLToRGB converts h, s, l in [0,1] to r, g, b in [0,1].
func HSLToRGB(h, s, l float64) (float64, float64, float64) {
	if s == 0 {
		return l, l, l
	}

	hue2rgb := func(p, q, t float64) float64 {
		if t < 0 {
			t += 1
		}
		if t > 1 {
			t -= 1
		}
		if t < 1.0/6.0 {
			return p + (q-p)*6*t
		}
		if t < 1.0/2.0 {
			return q
		}
		if t < 2.0/3.0 {
			return p + (q-p)*(2.0/3.0-t)*6
		}
		return p
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	h = h - math.Floor(h)
	return hue2rgb(p, q, h+1.0/3.0), hue2rgb(p, q, h), hue2rgb(p, q, h-1.0/3.0)
}

func toRGBA(c color.Color) color.RGBA {
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}
