package input

import (
	"fmt"
	"reflect"
	"testing"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"
)

type recorder struct{ calls []string }

func (r *recorder) add(f string, a ...any) { r.calls = append(r.calls, fmt.Sprintf(f, a...)) }

func (r *recorder) PointerDown(x, y float64)   { r.add("down %g %g", x, y) }
func (r *recorder) PointerMove(x, y float64)   { r.add("move %g %g", x, y) }
func (r *recorder) PointerUp()                 { r.add("up") }
func (r *recorder) SetPointerCount(n int)      { r.add("pointers %d", n) }
func (r *recorder) ScaleBegin(fx, fy float64)  { r.add("pinch %g %g", fx, fy) }
func (r *recorder) ScaleUpdate(factor float64) { r.add("scale %.2f", factor) }
func (r *recorder) ScaleEnd()                  { r.add("pinch end") }

func TestMouse(t *testing.T) {
	r := &recorder{}
	m := &Mouse{T: r}
	for _, e := range []mouse.Event{
		{X: 1, Y: 1, Direction: mouse.DirNone}, // hover
		{X: 10, Y: 20, Button: mouse.ButtonLeft, Direction: mouse.DirPress},
		{X: 15, Y: 25, Direction: mouse.DirNone},
		{X: 15, Y: 25, Button: mouse.ButtonLeft, Direction: mouse.DirRelease},
		{X: 50, Y: 60, Button: mouse.ButtonWheelUp, Direction: mouse.DirStep},
	} {
		m.Handle(e)
	}
	want := []string{"down 10 20", "move 15 25", "up", "pinch 50 60", "scale 1.10", "pinch end"}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("calls = %q, want %q", r.calls, want)
	}
}

func TestTouchSingleFinger(t *testing.T) {
	r := &recorder{}
	h := &Touch{T: r}
	h.Handle(touch.Event{X: 5, Y: 5, Sequence: 1, Type: touch.TypeBegin})
	h.Handle(touch.Event{X: 6, Y: 7, Sequence: 1, Type: touch.TypeMove})
	h.Handle(touch.Event{X: 6, Y: 7, Sequence: 1, Type: touch.TypeEnd})
	want := []string{"down 5 5", "move 6 7", "up"}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("calls = %q, want %q", r.calls, want)
	}
}

func TestTouchPinch(t *testing.T) {
	r := &recorder{}
	h := &Touch{T: r}
	h.Handle(touch.Event{X: 100, Y: 100, Sequence: 1, Type: touch.TypeBegin})
	h.Handle(touch.Event{X: 200, Y: 100, Sequence: 2, Type: touch.TypeBegin})
	h.Handle(touch.Event{X: 300, Y: 100, Sequence: 2, Type: touch.TypeMove})
	h.Handle(touch.Event{X: 300, Y: 100, Sequence: 2, Type: touch.TypeEnd})
	h.Handle(touch.Event{X: 110, Y: 100, Sequence: 1, Type: touch.TypeMove})
	h.Handle(touch.Event{X: 110, Y: 100, Sequence: 1, Type: touch.TypeEnd})
	want := []string{
		"down 100 100",
		"pointers 2",
		"pinch 150 100",
		"scale 2.00",
		"pinch end",
		"pointers 1",
		"move 110 100",
		"up",
	}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("calls = %q, want %q", r.calls, want)
	}
}

func TestTouchFirstFingerMovesDuringPinch(t *testing.T) {
	r := &recorder{}
	h := &Touch{T: r}
	h.Handle(touch.Event{X: 100, Y: 100, Sequence: 1, Type: touch.TypeBegin})
	h.Handle(touch.Event{X: 200, Y: 100, Sequence: 2, Type: touch.TypeBegin})
	h.Handle(touch.Event{X: 0, Y: 100, Sequence: 1, Type: touch.TypeMove})
	want := []string{
		"down 100 100",
		"pointers 2",
		"pinch 150 100",
		"scale 2.00",
		"move 0 100",
	}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("calls = %q, want %q", r.calls, want)
	}
}
