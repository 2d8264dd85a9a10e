package gfx

import (
	"image"
	"image/color"
)

// NewFrame allocates a w x h framebuffer.
func NewFrame(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// Clear fills dst with c.
func Clear(dst *image.RGBA, c color.RGBA) {
	if len(dst.Pix) < 4 {
		return
	}
	dst.Pix[0], dst.Pix[1], dst.Pix[2], dst.Pix[3] = c.R, c.G, c.B, c.A
	for filled := 4; filled < len(dst.Pix); filled *= 2 {
		copy(dst.Pix[filled:], dst.Pix[:filled])
	}
}

// PutPixel writes c at (x, y) when inside dst.
func PutPixel(dst *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{x, y}.In(dst.Rect)) {
		return
	}
	i := dst.PixOffset(x, y)
	dst.Pix[i] = c.R
	dst.Pix[i+1] = c.G
	dst.Pix[i+2] = c.B
	dst.Pix[i+3] = c.A
}

// AddPixel adds c to the pixel at (x, y), saturating each channel.
func AddPixel(dst *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{x, y}.In(dst.Rect)) {
		return
	}
	i := dst.PixOffset(x, y)
	dst.Pix[i] = sat(int(dst.Pix[i]) + int(c.R))
	dst.Pix[i+1] = sat(int(dst.Pix[i+1]) + int(c.G))
	dst.Pix[i+2] = sat(int(dst.Pix[i+2]) + int(c.B))
	dst.Pix[i+3] = 0xff
}

func sat(v int) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

// HLine draws a horizontal span from x1 to x2 inclusive.
func HLine(dst *image.RGBA, x1, x2, y int, c color.RGBA) {
	r := dst.Rect
	if y < r.Min.Y || y >= r.Max.Y {
		return
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	x1 = max(x1, r.Min.X)
	x2 = min(x2, r.Max.X-1)
	if x1 > x2 {
		return
	}
	i := dst.PixOffset(x1, y)
	for x := x1; x <= x2; x++ {
		dst.Pix[i] = c.R
		dst.Pix[i+1] = c.G
		dst.Pix[i+2] = c.B
		dst.Pix[i+3] = c.A
		i += 4
	}
}

// Line draws a Bresenham line including both end points.
func Line(dst *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		PutPixel(dst, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// FillRect fills the rectangle [x, x+w) x [y, y+h).
func FillRect(dst *image.RGBA, x, y, w, h int, c color.RGBA) {
	for j := y; j < y+h; j++ {
		HLine(dst, x, x+w-1, j, c)
	}
}

// Circle draws the outline of a circle with the midpoint algorithm.
func Circle(dst *image.RGBA, cx, cy, radius int, c color.RGBA) {
	x, y := radius, 0
	e := 1 - radius
	for x >= y {
		PutPixel(dst, cx+x, cy+y, c)
		PutPixel(dst, cx+y, cy+x, c)
		PutPixel(dst, cx-y, cy+x, c)
		PutPixel(dst, cx-x, cy+y, c)
		PutPixel(dst, cx-x, cy-y, c)
		PutPixel(dst, cx-y, cy-x, c)
		PutPixel(dst, cx+y, cy-x, c)
		PutPixel(dst, cx+x, cy-y, c)
		y++
		if e < 0 {
			e += 2*y + 1
		} else {
			x--
			e += 2*(y-x) + 1
		}
	}
}

// FillCircle fills a disc.
func FillCircle(dst *image.RGBA, cx, cy, radius int, c color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		dx := isqrt(radius*radius - dy*dy)
		HLine(dst, cx-dx, cx+dx, cy+dy, c)
	}
}

// Blend mixes src over dst with weight alpha in [0,1]. Only the overlapping
// area is touched.
func Blend(dst, src *image.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	a := int(alpha*256 + 0.5)
	if a > 256 {
		a = 256
	}
	inv := 256 - a
	r := dst.Rect.Intersect(src.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := src.PixOffset(r.Min.X, y)
		for n := r.Dx() * 4; n > 0; n-- {
			dst.Pix[di] = uint8((int(dst.Pix[di])*inv + int(src.Pix[si])*a) >> 8)
			di++
			si++
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func isqrt(v int) int {
	if v <= 0 {
		return 0
	}
	x := v
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + v/x) / 2
	}
	return x
}
