// Package render rasterises annotation shapes and text onto RGBA images and
// prepares the base image (rotate, resize, composite).
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/example/markcorrect/internal/geom"
)

func round(v float64) int { return int(math.Floor(v + 0.5)) }

// stamp paints a filled disc so consecutive stamps give round caps and
// joins.
func stamp(img *image.RGBA, cx, cy, r int, col color.Color) {
	if r <= 0 {
		if image.Pt(cx, cy).In(img.Bounds()) {
			img.Set(cx, cy, col)
		}
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			px := cx + dx
			py := cy + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	r := thick / 2
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		stamp(img, x0, y0, r, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawLine draws a segment between two points with the given width.
func DrawLine(img *image.RGBA, a, b geom.Point, col color.Color, width float64) {
	drawLine(img, round(a.X), round(a.Y), round(b.X), round(b.Y), col, lineThickness(width))
}

// DrawPolyline connects consecutive points. A single point is drawn as a dot.
func DrawPolyline(img *image.RGBA, pts []geom.Point, col color.Color, width float64) {
	switch len(pts) {
	case 0:
		return
	case 1:
		stamp(img, round(pts[0].X), round(pts[0].Y), lineThickness(width)/2, col)
		return
	}
	for i := 1; i < len(pts); i++ {
		DrawLine(img, pts[i-1], pts[i], col, width)
	}
}

// DrawRect outlines r.
func DrawRect(img *image.RGBA, r geom.Rect, col color.Color, width float64) {
	tl := r.Min
	tr := geom.Pt(r.Max.X, r.Min.Y)
	br := r.Max
	bl := geom.Pt(r.Min.X, r.Max.Y)
	DrawPolyline(img, []geom.Point{tl, tr, br, bl, tl}, col, width)
}

// FillCircle paints a disc of radius r centred on c.
func FillCircle(img *image.RGBA, c geom.Point, r float64, col color.Color) {
	stamp(img, round(c.X), round(c.Y), round(r), col)
}

func lineThickness(width float64) int {
	t := round(width)
	if t < 1 {
		t = 1
	}
	return t
}
