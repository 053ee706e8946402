package engine

import (
	"github.com/example/markcorrect/internal/geom"
	"github.com/example/markcorrect/internal/mark"
)

// Area classifies a touch.
type Area int

const (
	AreaNone   Area = iota // empty content
	AreaMark               // a mark body
	AreaDrag               // the selected stroke's drag handle
	AreaDelete             // the selected mark's delete handle
)

func (a Area) String() string {
	switch a {
	case AreaMark:
		return "mark"
	case AreaDrag:
		return "drag"
	case AreaDelete:
		return "delete"
	}
	return "none"
}

// HitTest classifies the content-space point p. Handles of the selected mark
// win over its body, which wins over other marks; other marks are scanned
// top-most first and the first hit becomes the selection. Tolerances are in
// view pixels, so they don't change with zoom.
func (e *Engine) HitTest(p geom.Point) Area {
	v := e.view.ToView(p)
	touched := func(r geom.Rect) bool { return r.Inset(-e.settings.TouchOffset).Contains(v) }

	cur := e.store.Current()
	if cur != nil && hasGeometry(cur) {
		b := e.viewBounds(cur)
		if touched(geom.Around(b.TopRight(), e.settings.ButtonSize)) {
			return AreaDelete
		}
		if cur.Kind() == mark.KindStroke && touched(geom.Around(b.Min, e.settings.ButtonSize)) {
			return AreaDrag
		}
		if touched(b) {
			return AreaMark
		}
	}

	marks := e.store.Marks()
	for i := len(marks) - 1; i >= 0; i-- {
		m := marks[i]
		if m == cur || !hasGeometry(m) {
			continue
		}
		if touched(e.viewBounds(m)) {
			e.store.Select(i)
			return AreaMark
		}
	}
	return AreaNone
}

func (e *Engine) viewBounds(m *mark.Mark) geom.Rect {
	return m.BoundsInView(e.store.Rotation(), e.store.Style(), e.view)
}

// hasGeometry is false for a stroke that has no points yet.
func hasGeometry(m *mark.Mark) bool {
	if st := m.Stroke(); st != nil {
		return st.PointCount() > 0
	}
	return true
}
