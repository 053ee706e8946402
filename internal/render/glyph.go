package render

import (
	"image"
	"image/color"

	"github.com/example/markcorrect/internal/geom"
)

// Shape is a set of polylines in a unit box; (0,0) is the top-left corner
// and (1,1) the bottom-right.
type Shape [][]geom.Point

var (
	// CheckShape is the tick drawn for a correct answer.
	CheckShape = Shape{{geom.Pt(0.06, 0.52), geom.Pt(0.36, 0.92), geom.Pt(0.96, 0.08)}}

	// CrossShape is the cross drawn for a wrong answer.
	CrossShape = Shape{
		{geom.Pt(0.08, 0.08), geom.Pt(0.92, 0.92)},
		{geom.Pt(0.92, 0.08), geom.Pt(0.08, 0.92)},
	}

	// DragShape is a four-way arrow for the drag handle icon.
	DragShape = Shape{
		{geom.Pt(0.5, 0.2), geom.Pt(0.5, 0.8)},
		{geom.Pt(0.2, 0.5), geom.Pt(0.8, 0.5)},
		{geom.Pt(0.4, 0.3), geom.Pt(0.5, 0.2), geom.Pt(0.6, 0.3)},
		{geom.Pt(0.4, 0.7), geom.Pt(0.5, 0.8), geom.Pt(0.6, 0.7)},
		{geom.Pt(0.3, 0.4), geom.Pt(0.2, 0.5), geom.Pt(0.3, 0.6)},
		{geom.Pt(0.7, 0.4), geom.Pt(0.8, 0.5), geom.Pt(0.7, 0.6)},
	}

	// CloseShape is the small cross inside the delete handle.
	CloseShape = Shape{
		{geom.Pt(0.3, 0.3), geom.Pt(0.7, 0.7)},
		{geom.Pt(0.7, 0.3), geom.Pt(0.3, 0.7)},
	}
)

// DrawShape scales s to size, turns it k quarter turns clockwise about
// anchor (the unit box's top-left corner) and strokes it.
func DrawShape(img *image.RGBA, s Shape, anchor geom.Point, size geom.Size, k geom.Rotation, col color.Color, width float64) {
	for _, line := range s {
		pts := make([]geom.Point, len(line))
		for i, u := range line {
			local := geom.Pt(u.X*size.W, u.Y*size.H)
			pts[i] = anchor.Add(geom.TurnLocal(local, k))
		}
		DrawPolyline(img, pts, col, width)
	}
}

// DrawButton paints a round handle of diameter d centred on c with icon s
// on top.
func DrawButton(img *image.RGBA, c geom.Point, d float64, fill color.Color, s Shape, fg color.Color) {
	FillCircle(img, c, d/2, fill)
	box := geom.Around(c, d)
	DrawShape(img, s, box.Min, box.Size(), 0, fg, d/10)
}
