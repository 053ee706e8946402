// Package mark holds the annotation model: marks and their kinds, the
// ordered mark store and its undo/redo history.
//
// Every coordinate in this package is in content space, i.e. pixels of the
// image at its current rotation.
package mark

import (
	"image"
	"image/color"

	"github.com/example/markcorrect/internal/geom"
	"github.com/example/markcorrect/internal/viewport"
)

// Mark scale limits.
const (
	ScaleMin = 0.5
	ScaleMax = 1.5
)

// ID identifies a mark for its whole life. IDs are never reused.
type ID int64

// None is the zero ID, returned when creation is rejected.
const None ID = 0

// Kind tags the three mark variants.
type Kind int

const (
	KindSymbol Kind = iota
	KindText
	KindStroke
)

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindText:
		return "text"
	case KindStroke:
		return "stroke"
	}
	return "unknown"
}

// Style carries the intrinsic sizes and colours marks are measured and
// drawn with.
type Style struct {
	TextSize    float64
	StrokeWidth float64
	RightSize   geom.Size
	WrongSize   geom.Size
	Ink         color.RGBA
}

// DefaultStyle returns the stock sizes: 30px text, 3px ink, a 96×64 tick and
// a 44×40 cross, in red.
func DefaultStyle() Style {
	return Style{
		TextSize:    30,
		StrokeWidth: 3,
		RightSize:   geom.Size{W: 96, H: 64},
		WrongSize:   geom.Size{W: 44, H: 40},
		Ink:         color.RGBA{R: 255, A: 255},
	}
}

// Body is the kind-specific part of a mark.
type Body interface {
	Kind() Kind
	// Bounds returns the content-space bounds of m when the content is at
	// rotation rot.
	Bounds(m *Mark, rot geom.Rotation, st *Style) geom.Rect
	// Draw paints m in content space.
	Draw(img *image.RGBA, m *Mark, rot geom.Rotation, st *Style)

	rotate(d geom.Rotation, src geom.Size)
	translate(d geom.Point)
}

// Mark is one annotation.
type Mark struct {
	ID ID
	// Pos is the anchor: top-left of a symbol or text block before it is
	// turned, and the first touch point of a stroke.
	Pos   geom.Point
	Scale float64
	// Created is the content rotation in effect when the mark was made.
	Created geom.Rotation
	Body    Body
}

func (m *Mark) Kind() Kind { return m.Body.Kind() }

// Bounds returns m's content-space bounds at rotation rot.
func (m *Mark) Bounds(rot geom.Rotation, st *Style) geom.Rect {
	return m.Body.Bounds(m, rot, st)
}

// BoundsInView returns m's bounds mapped through the view transform.
func (m *Mark) BoundsInView(rot geom.Rotation, st *Style, vp *viewport.Transform) geom.Rect {
	return vp.RectToView(m.Bounds(rot, st))
}

func (m *Mark) Draw(img *image.RGBA, rot geom.Rotation, st *Style) {
	m.Body.Draw(img, m, rot, st)
}

// turn is how far a symbol or text mark must be turned to stay upright
// relative to the image it was placed on.
func (m *Mark) turn(rot geom.Rotation) geom.Rotation {
	return geom.Delta(m.Created, rot)
}

// rotate remaps every stored point by d quarter turns out of a space of
// size src.
func (m *Mark) rotate(d geom.Rotation, src geom.Size) {
	if d.Norm() == 0 {
		return
	}
	m.Pos = geom.RotatePoint(m.Pos, d, src)
	m.Body.rotate(d, src)
}

func (m *Mark) translate(d geom.Point) {
	m.Pos = m.Pos.Add(d)
	m.Body.translate(d)
}

// Stroke returns m's stroke body, or nil for other kinds.
func (m *Mark) Stroke() *Stroke {
	s, _ := m.Body.(*Stroke)
	return s
}
