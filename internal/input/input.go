// Package input translates golang.org/x/mobile mouse and touch events into
// the pointer and pinch calls the annotation engine understands.
package input

import (
	"math"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"
)

// WheelStep is the zoom factor applied per mouse wheel notch.
const WheelStep = 1.1

// Target receives translated input. *engine.Engine implements it.
type Target interface {
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp()
	SetPointerCount(n int)
	ScaleBegin(fx, fy float64)
	ScaleUpdate(factor float64)
	ScaleEnd()
}

// Mouse adapts a single mouse. The left button is the pointer; the wheel
// zooms around the cursor.
type Mouse struct {
	T       Target
	pressed bool
}

// Handle forwards e to the target.
func (m *Mouse) Handle(e mouse.Event) {
	x, y := float64(e.X), float64(e.Y)
	switch e.Button {
	case mouse.ButtonWheelUp, mouse.ButtonWheelDown:
		if e.Direction != mouse.DirStep && e.Direction != mouse.DirPress {
			return
		}
		f := WheelStep
		if e.Button == mouse.ButtonWheelDown {
			f = 1 / WheelStep
		}
		m.T.ScaleBegin(x, y)
		m.T.ScaleUpdate(f)
		m.T.ScaleEnd()
		return
	case mouse.ButtonLeft:
		switch e.Direction {
		case mouse.DirPress:
			m.pressed = true
			m.T.PointerDown(x, y)
		case mouse.DirRelease:
			if m.pressed {
				m.pressed = false
				m.T.PointerUp()
			}
		case mouse.DirNone:
			if m.pressed {
				m.T.PointerMove(x, y)
			}
		}
		return
	}
	if e.Direction == mouse.DirNone && m.pressed {
		m.T.PointerMove(x, y)
	}
}

type pos struct{ x, y float64 }

// Touch adapts multi-touch. The first finger is the pointer; a second finger
// turns the gesture into a pinch about the midpoint of the first two.
type Touch struct {
	T Target

	fingers  map[touch.Sequence]pos
	order    []touch.Sequence
	pinching bool
	startGap float64
}

// Handle forwards e to the target.
func (t *Touch) Handle(e touch.Event) {
	if t.fingers == nil {
		t.fingers = make(map[touch.Sequence]pos)
	}
	p := pos{float64(e.X), float64(e.Y)}
	switch e.Type {
	case touch.TypeBegin:
		t.fingers[e.Sequence] = p
		t.order = append(t.order, e.Sequence)
		switch len(t.order) {
		case 1:
			t.T.PointerDown(p.x, p.y)
		case 2:
			t.T.SetPointerCount(2)
			t.beginPinch()
		}
	case touch.TypeMove:
		if _, ok := t.fingers[e.Sequence]; !ok {
			return
		}
		t.fingers[e.Sequence] = p
		if t.pinching && t.startGap > 0 {
			t.T.ScaleUpdate(t.gap() / t.startGap)
		}
		// The first finger keeps driving the pointer so a gesture that
		// cannot pinch still pans.
		if len(t.order) > 0 && e.Sequence == t.order[0] {
			t.T.PointerMove(p.x, p.y)
		}
	case touch.TypeEnd:
		if _, ok := t.fingers[e.Sequence]; !ok {
			return
		}
		delete(t.fingers, e.Sequence)
		for i, s := range t.order {
			if s == e.Sequence {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
		if t.pinching && len(t.order) < 2 {
			t.pinching = false
			t.T.ScaleEnd()
		}
		switch len(t.order) {
		case 0:
			t.T.PointerUp()
		case 1:
			t.T.SetPointerCount(1)
		}
	}
}

func (t *Touch) beginPinch() {
	a, b := t.fingers[t.order[0]], t.fingers[t.order[1]]
	t.pinching = true
	t.startGap = t.gap()
	t.T.ScaleBegin((a.x+b.x)/2, (a.y+b.y)/2)
}

func (t *Touch) gap() float64 {
	a, b := t.fingers[t.order[0]], t.fingers[t.order[1]]
	return math.Hypot(a.x-b.x, a.y-b.y)
}
