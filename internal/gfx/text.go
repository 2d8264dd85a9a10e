package gfx

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Face is the bitmap font used for every text effect.
var Face font.Face = basicfont.Face7x13

// DrawText renders s with its top-left corner at (x, y).
func DrawText(dst *image.RGBA, x, y int, s string, c color.RGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: Face,
		Dot:  fixed.P(x, y+Face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// TextWidth is the advance of s in pixels.
func TextWidth(s string) int {
	return font.MeasureString(Face, s).Ceil()
}

// TextHeight is the line height of Face.
func TextHeight() int {
	return Face.Metrics().Height.Ceil()
}

// RenderText draws s on a transparent strip just large enough to hold it.
func RenderText(s string, c color.RGBA) *image.RGBA {
	w := max(TextWidth(s), 1)
	img := image.NewRGBA(image.Rect(0, 0, w, TextHeight()))
	DrawText(img, 0, 0, s, c)
	return img
}
