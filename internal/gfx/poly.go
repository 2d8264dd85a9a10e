package gfx

import (
	"image"
	"image/color"
	"math"
)

// Point is a screen space vertex.
type Point struct {
	X, Y float64
}

// FillTriangle rasterizes a triangle with horizontal spans. Pixels whose
// centers fall inside the triangle are covered, so triangles sharing an edge
// neither overlap nor leave gaps along it.
func FillTriangle(dst *image.RGBA, a, b, c Point, clr color.RGBA) {
	if a.Y > b.Y {
		a, b = b, a
	}
	if a.Y > c.Y {
		a, c = c, a
	}
	if b.Y > c.Y {
		b, c = c, b
	}
	if c.Y == a.Y {
		return
	}

	r := dst.Rect
	yStart := max(int(math.Ceil(a.Y-0.5)), r.Min.Y)
	yEnd := min(int(math.Ceil(c.Y-0.5)), r.Max.Y)

	for y := yStart; y < yEnd; y++ {
		py := float64(y) + 0.5
		xl := edgeX(a, c, py)
		var xr float64
		if py < b.Y {
			xr = edgeX(a, b, py)
		} else {
			xr = edgeX(b, c, py)
		}
		if xl > xr {
			xl, xr = xr, xl
		}
		x1 := int(math.Ceil(xl - 0.5))
		x2 := int(math.Ceil(xr-0.5)) - 1
		if x1 <= x2 {
			HLine(dst, x1, x2, y, clr)
		}
	}
}

func edgeX(p, q Point, y float64) float64 {
	if q.Y == p.Y {
		return p.X
	}
	return p.X + (q.X-p.X)*(y-p.Y)/(q.Y-p.Y)
}

// FillPolygon fills a convex polygon as a triangle fan around its first vertex.
func FillPolygon(dst *image.RGBA, pts []Point, clr color.RGBA) {
	if len(pts) < 3 {
		return
	}
	for i := 1; i < len(pts)-1; i++ {
		FillTriangle(dst, pts[0], pts[i], pts[i+1], clr)
	}
}

// StrokePolygon draws the closed outline of pts.
func StrokePolygon(dst *image.RGBA, pts []Point, clr color.RGBA) {
	for i := range pts {
		j := (i + 1) % len(pts)
		Line(dst, int(math.Round(pts[i].X)), int(math.Round(pts[i].Y)),
			int(math.Round(pts[j].X)), int(math.Round(pts[j].Y)), clr)
	}
}
