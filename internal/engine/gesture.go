package engine

import (
	"math"

	"github.com/example/markcorrect/internal/geom"
	"github.com/example/markcorrect/internal/mark"
)

// gesture is the state of one pointer-down → pointer-up sequence.
type gesture struct {
	active bool
	// pan is set when the gesture moves the view rather than a mark.
	pan bool
	// pointers is the number of pointers the host reports are down.
	pointers int
	// pinching is set between ScaleBegin and ScaleEnd.
	pinching bool
	// rebase makes the next move re-anchor instead of applying a delta.
	rebase bool

	locked   mark.ID
	ink      bool // locked stroke collects points
	deleting bool // the down event hit a delete handle
	dragging bool // the down event hit a drag handle
	// latched is set once the pointer has travelled past the touch slop.
	latched  bool
	recorded bool // a Move record was pushed for this gesture

	down        geom.Point // view
	last        geom.Point // view
	lastContent geom.Point
}

// PointerDown starts a gesture at view point (x, y). Depending on what is
// under the pointer it deletes the selected mark, grabs a mark, opens a new
// segment on a stroke, or creates a mark of the current mode.
func (e *Engine) PointerDown(x, y float64) {
	if !e.enabled {
		return
	}
	e.endGesture()
	v := geom.Pt(x, y)
	c := e.view.ToContent(v)
	e.g = gesture{active: true, pointers: 1, down: v, last: v, lastContent: c}

	if e.mode == ModeNone {
		e.g.pan = true
		return
	}

	area := e.HitTest(c)
	switch area {
	case AreaDelete:
		e.g.deleting = true
		e.store.RemoveSelected()
	case AreaDrag:
		e.g.dragging = true
		e.lock(e.store.Current(), c, false)
	case AreaMark:
		e.lock(e.store.Current(), c, true)
	case AreaNone:
		if id := e.create(c); id != mark.None {
			e.lock(e.store.Get(id), c, false)
		}
	}
	e.log.Debug().Stringer("area", area).Stringer("at", c).Int64("locked", int64(e.g.locked)).Msg("pointer down")
}

func (e *Engine) create(c geom.Point) mark.ID {
	switch e.mode {
	case ModeRight:
		return e.store.CreateSymbol(c, mark.Right)
	case ModeWrong:
		return e.store.CreateSymbol(c, mark.Wrong)
	case ModePen:
		return e.store.CreateStroke(c)
	case ModeText:
		if e.text == nil {
			return mark.None
		}
		return e.store.CreateText(c, e.text())
	}
	return mark.None
}

// lock makes m the target of the gesture. In pen mode a stroke collects
// points instead of moving; touching an existing stroke's body opens a new
// segment on it first.
func (e *Engine) lock(m *mark.Mark, c geom.Point, existing bool) {
	if m == nil {
		return
	}
	e.g.locked = m.ID
	if m.Kind() != mark.KindStroke || e.g.dragging || e.mode != ModePen {
		return
	}
	if existing {
		e.store.OpenSegment(m.ID)
	}
	e.g.ink = true
	e.store.AppendPoint(m.ID, c)
}

// PointerMove continues the gesture at view point (x, y).
func (e *Engine) PointerMove(x, y float64) {
	if !e.g.active || e.g.pinching {
		return
	}
	v := geom.Pt(x, y)
	c := e.view.ToContent(v)
	if e.g.rebase {
		e.g.rebase = false
		e.g.down, e.g.last, e.g.lastContent = v, v, c
		return
	}

	switch {
	case e.g.pan:
		if !e.pastSlop(v) {
			return
		}
		e.view.Pan(v.Sub(e.g.last))
	case e.g.deleting || e.g.locked == mark.None:
		return
	case e.g.ink:
		e.store.AppendPoint(e.g.locked, c)
	default:
		if !e.pastSlop(v) {
			return
		}
		if e.store.Translate(e.g.locked, c.Sub(e.g.lastContent), !e.g.recorded) {
			e.g.recorded = true
		}
	}
	e.g.last = v
	e.g.lastContent = c
}

// pastSlop latches once the pointer has strayed more than the touch slop
// from where it went down. Until then last stays at the down point, so the
// first applied move carries the whole displacement.
func (e *Engine) pastSlop(v geom.Point) bool {
	if e.g.latched {
		return true
	}
	d := v.Sub(e.g.down)
	if math.Hypot(d.X, d.Y) <= e.settings.TouchSlop {
		return false
	}
	e.g.latched = true
	return true
}

// PointerUp ends the gesture and releases any locked mark.
func (e *Engine) PointerUp() { e.endGesture() }

// PointerCancel abandons the gesture. Whatever it already did stays done.
func (e *Engine) PointerCancel() { e.endGesture() }

func (e *Engine) endGesture() {
	if e.g.active && e.g.locked != mark.None {
		e.log.Debug().Int64("id", int64(e.g.locked)).Bool("moved", e.g.recorded).Msg("mark released")
	}
	e.g = gesture{}
}

// SetPointerCount tells the engine how many pointers are down. A second
// pointer turns the rest of the gesture into a pan: drawing and dragging
// stop.
func (e *Engine) SetPointerCount(n int) {
	e.g.pointers = n
	if n > 1 && e.g.active {
		e.g.locked = mark.None
		e.g.ink = false
		e.g.pan = true
		e.g.latched = true
		e.g.rebase = true
	}
}

// ScaleBegin starts a pinch centred on view point (fx, fy). Pinch zoom is
// only available in ModeNone.
func (e *Engine) ScaleBegin(fx, fy float64) {
	if !e.enabled || e.mode != ModeNone {
		return
	}
	e.g.pinching = true
	e.view.BeginPinch(geom.Pt(fx, fy))
}

// ScaleUpdate applies the pinch factor accumulated since ScaleBegin.
func (e *Engine) ScaleUpdate(factor float64) {
	if !e.g.pinching {
		return
	}
	e.view.UpdatePinch(factor)
}

// ScaleEnd finishes the pinch.
func (e *Engine) ScaleEnd() {
	if !e.g.pinching {
		return
	}
	e.g.pinching = false
	e.view.EndPinch()
	e.g.rebase = true
}
