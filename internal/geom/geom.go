// Package geom holds the float geometry shared by the annotation engine:
// points, sizes, axis-aligned rectangles and quarter-turn rotations.
package geom

import (
	"fmt"
	"math"
)

// Point is a location in either view or content space. Which one is up to
// the caller.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Eq reports whether p and q are within eps of each other on both axes.
func (p Point) Eq(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rotated returns s as seen after rotating by r quarter turns; odd turns
// swap the axes.
func (s Size) Rotated(r Rotation) Size {
	if r.Swaps() {
		return Size{W: s.H, H: s.W}
	}
	return s
}

// Rect is an axis-aligned rectangle. Max is not required to be larger than
// Min for an empty rect.
type Rect struct {
	Min, Max Point
}

// R returns the rect spanning (x0,y0)-(x1,y1).
func R(x0, y0, x1, y1 float64) Rect {
	return Rect{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

// RectAt returns the rect with top-left p and size s.
func RectAt(p Point, s Size) Rect {
	return Rect{Min: p, Max: Point{p.X + s.W, p.Y + s.H}}
}

// Around returns a square of side d centred on c.
func Around(c Point, d float64) Rect {
	h := d / 2
	return R(c.X-h, c.Y-h, c.X+h, c.Y+h)
}

func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Size() Size { return Size{W: r.Dx(), H: r.Dy()} }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Inset shrinks r by n on every side. A negative n grows it.
func (r Rect) Inset(n float64) Rect {
	return R(r.Min.X+n, r.Min.Y+n, r.Max.X-n, r.Max.Y-n)
}

// Offset translates r by d.
func (r Rect) Offset(d Point) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// TopRight returns the corner used to anchor the delete handle.
func (r Rect) TopRight() Point { return Point{r.Max.X, r.Min.Y} }

// Contains reports whether p lies in r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsRect reports whether o lies entirely in r, edges included.
func (r Rect) ContainsRect(o Rect) bool {
	return o.Min.X >= r.Min.X && o.Max.X <= r.Max.X && o.Min.Y >= r.Min.Y && o.Max.Y <= r.Max.Y
}

// Clamp returns the point in r closest to p.
func (r Rect) Clamp(p Point) Point {
	return Point{
		X: math.Min(math.Max(p.X, r.Min.X), r.Max.X),
		Y: math.Min(math.Max(p.Y, r.Min.Y), r.Max.Y),
	}
}

func (r Rect) String() string { return fmt.Sprintf("%v-%v", r.Min, r.Max) }

// Bounds returns the smallest rect containing every point. The zero Rect is
// returned for no points.
func Bounds(pts ...[]Point) Rect {
	var out Rect
	first := true
	for _, list := range pts {
		for _, p := range list {
			if first {
				out = Rect{Min: p, Max: p}
				first = false
				continue
			}
			out.Min.X = math.Min(out.Min.X, p.X)
			out.Min.Y = math.Min(out.Min.Y, p.Y)
			out.Max.X = math.Max(out.Max.X, p.X)
			out.Max.Y = math.Max(out.Max.Y, p.Y)
		}
	}
	return out
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
