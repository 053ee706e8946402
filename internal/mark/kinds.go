package mark

import (
	"image"
	"strings"

	"github.com/example/markcorrect/internal/geom"
	"github.com/example/markcorrect/internal/render"
)

// Glyph selects the symbol drawn by a Symbol mark.
type Glyph int

const (
	Right Glyph = iota
	Wrong
)

func (g Glyph) String() string {
	if g == Wrong {
		return "wrong"
	}
	return "right"
}

// Symbol is a tick or a cross.
type Symbol struct {
	Glyph Glyph
}

func (*Symbol) Kind() Kind { return KindSymbol }

func (s *Symbol) size(m *Mark, st *Style) geom.Size {
	base := st.RightSize
	if s.Glyph == Wrong {
		base = st.WrongSize
	}
	return geom.Size{W: base.W * m.Scale, H: base.H * m.Scale}
}

func (s *Symbol) Bounds(m *Mark, rot geom.Rotation, st *Style) geom.Rect {
	return geom.OrientedRect(m.Pos, s.size(m, st), m.turn(rot))
}

func (s *Symbol) Draw(img *image.RGBA, m *Mark, rot geom.Rotation, st *Style) {
	shape := render.CheckShape
	if s.Glyph == Wrong {
		shape = render.CrossShape
	}
	size := s.size(m, st)
	width := st.StrokeWidth * 2 * m.Scale
	render.DrawShape(img, shape, m.Pos, size, m.turn(rot), st.Ink, width)
}

func (*Symbol) rotate(geom.Rotation, geom.Size) {}

func (*Symbol) translate(geom.Point) {}

// Text is a multi-line note.
type Text struct {
	Text string
}

func (*Text) Kind() Kind { return KindText }

func (t *Text) lines() []string {
	if strings.TrimSpace(t.Text) == "" {
		return nil
	}
	return strings.Split(t.Text, "\n")
}

func (t *Text) size(m *Mark, st *Style) geom.Size {
	lines := t.lines()
	px := st.TextSize * m.Scale
	sz, err := render.MeasureLines(lines, px)
	if err != nil {
		// Approximate with half an em per rune.
		var w float64
		for _, l := range lines {
			if lw := float64(len([]rune(l))) * px / 2; lw > w {
				w = lw
			}
		}
		return geom.Size{W: w, H: float64(len(lines)) * px}
	}
	return sz
}

func (t *Text) Bounds(m *Mark, rot geom.Rotation, st *Style) geom.Rect {
	return geom.OrientedRect(m.Pos, t.size(m, st), m.turn(rot))
}

func (t *Text) Draw(img *image.RGBA, m *Mark, rot geom.Rotation, st *Style) {
	lines := t.lines()
	if len(lines) == 0 {
		return
	}
	_ = render.DrawLines(img, lines, m.Pos, st.TextSize*m.Scale, m.turn(rot), st.Ink)
}

func (*Text) rotate(geom.Rotation, geom.Size) {}

func (*Text) translate(geom.Point) {}

// Segment is one pen-down to pen-up run of ink.
type Segment struct {
	Points    []geom.Point
	LineWidth float64
}

// Stroke is free-hand ink made of one or more segments.
type Stroke struct {
	Segments []*Segment
}

func (*Stroke) Kind() Kind { return KindStroke }

// Last returns the segment currently open for points.
func (s *Stroke) Last() *Segment {
	if len(s.Segments) == 0 {
		return nil
	}
	return s.Segments[len(s.Segments)-1]
}

// PointCount returns the number of points over all segments.
func (s *Stroke) PointCount() int {
	n := 0
	for _, seg := range s.Segments {
		n += len(seg.Points)
	}
	return n
}

// Bounds covers every point of every segment. Strokes are stored physically
// rotated, so rot doesn't matter.
func (s *Stroke) Bounds(_ *Mark, _ geom.Rotation, _ *Style) geom.Rect {
	lists := make([][]geom.Point, len(s.Segments))
	for i, seg := range s.Segments {
		lists[i] = seg.Points
	}
	return geom.Bounds(lists...)
}

func (s *Stroke) Draw(img *image.RGBA, _ *Mark, _ geom.Rotation, st *Style) {
	for _, seg := range s.Segments {
		render.DrawPolyline(img, seg.Points, st.Ink, seg.LineWidth)
	}
}

func (s *Stroke) rotate(d geom.Rotation, src geom.Size) {
	for _, seg := range s.Segments {
		geom.RotatePoints(seg.Points, d, src)
	}
}

func (s *Stroke) translate(d geom.Point) {
	for _, seg := range s.Segments {
		for i := range seg.Points {
			seg.Points[i] = seg.Points[i].Add(d)
		}
	}
}
