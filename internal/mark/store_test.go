package mark

import (
	"testing"

	"github.com/example/markcorrect/internal/geom"
)

type markSnap struct {
	id     ID
	kind   Kind
	pos    geom.Point
	scale  float64
	points [][]geom.Point
}

func snapshot(s *Store) []markSnap {
	var out []markSnap
	for _, m := range s.Marks() {
		ms := markSnap{id: m.ID, kind: m.Kind(), pos: m.Pos, scale: m.Scale}
		if st := m.Stroke(); st != nil {
			for _, seg := range st.Segments {
				ms.points = append(ms.points, append([]geom.Point(nil), seg.Points...))
			}
		}
		out = append(out, ms)
	}
	return out
}

func sameSnap(t *testing.T, got, want []markSnap) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d marks, want %d", len(got), len(want))
	}
	for i := range got {
		g, w := got[i], want[i]
		if g.id != w.id || g.kind != w.kind || g.scale != w.scale {
			t.Fatalf("mark %d: got id=%d kind=%v scale=%v, want id=%d kind=%v scale=%v", i, g.id, g.kind, g.scale, w.id, w.kind, w.scale)
		}
		if !g.pos.Eq(w.pos, 1e-9) {
			t.Fatalf("mark %d: pos %v, want %v", i, g.pos, w.pos)
		}
		if len(g.points) != len(w.points) {
			t.Fatalf("mark %d: %d segments, want %d", i, len(g.points), len(w.points))
		}
		for j := range g.points {
			if len(g.points[j]) != len(w.points[j]) {
				t.Fatalf("mark %d segment %d: %d points, want %d", i, j, len(g.points[j]), len(w.points[j]))
			}
			for k := range g.points[j] {
				if !g.points[j][k].Eq(w.points[j][k], 1e-9) {
					t.Fatalf("mark %d segment %d point %d: %v, want %v", i, j, k, g.points[j][k], w.points[j][k])
				}
			}
		}
	}
}

func newTestStore() *Store {
	return NewStore(geom.Size{W: 400, H: 400})
}

func TestCreateRejectsOutsideContent(t *testing.T) {
	s := newTestStore()
	for _, p := range []geom.Point{geom.Pt(-1, 10), geom.Pt(10, 401), geom.Pt(500, 500)} {
		if id := s.CreateSymbol(p, Right); id != None {
			t.Fatalf("CreateSymbol(%v) = %d, want rejection", p, id)
		}
		if id := s.CreateStroke(p); id != None {
			t.Fatalf("CreateStroke(%v) = %d, want rejection", p, id)
		}
		if id := s.CreateText(p, "ok"); id != None {
			t.Fatalf("CreateText(%v) = %d, want rejection", p, id)
		}
	}
	if s.Len() != 0 || s.History().Len() != 0 {
		t.Fatalf("rejected creation changed state: len=%d history=%d", s.Len(), s.History().Len())
	}
}

func TestCreateTextRejectsBlank(t *testing.T) {
	s := newTestStore()
	for _, text := range []string{"", "   ", "\n\t"} {
		if id := s.CreateText(geom.Pt(10, 10), text); id != None {
			t.Fatalf("CreateText(%q) accepted", text)
		}
	}
	if s.History().Len() != 0 {
		t.Fatal("blank text pushed a record")
	}
}

func TestIDsAreNeverReused(t *testing.T) {
	s := newTestStore()
	a := s.CreateSymbol(geom.Pt(10, 10), Right)
	b := s.CreateSymbol(geom.Pt(20, 20), Wrong)
	s.Clear()
	c := s.CreateStroke(geom.Pt(30, 30))
	if a == b || b == c || a == c || a == None {
		t.Fatalf("ids not unique: %d %d %d", a, b, c)
	}
}

func TestCreateSelectsNewMark(t *testing.T) {
	s := newTestStore()
	s.CreateSymbol(geom.Pt(10, 10), Right)
	id := s.CreateText(geom.Pt(50, 50), "a\nbc")
	if cur := s.Current(); cur == nil || cur.ID != id {
		t.Fatalf("current = %v, want mark %d", cur, id)
	}
	if s.SelectedIndex() != 1 {
		t.Fatalf("selected index = %d, want 1", s.SelectedIndex())
	}
	s.Select(-1)
	if s.Current() != nil {
		t.Fatal("expected no selection")
	}
}

func TestCreateStrokeHasOneEmptySegment(t *testing.T) {
	s := newTestStore()
	s.SetMarkScale(1.5)
	id := s.CreateStroke(geom.Pt(50, 50))
	st := s.Get(id).Stroke()
	if len(st.Segments) != 1 || len(st.Segments[0].Points) != 0 {
		t.Fatalf("unexpected segments %+v", st.Segments)
	}
	if want := s.Style().StrokeWidth * 1.5; st.Segments[0].LineWidth != want {
		t.Fatalf("line width = %v, want %v", st.Segments[0].LineWidth, want)
	}
}

func TestRemoveSelectsLastAndUndoRestoresIndex(t *testing.T) {
	s := newTestStore()
	a := s.CreateSymbol(geom.Pt(10, 10), Right)
	b := s.CreateSymbol(geom.Pt(100, 10), Wrong)
	c := s.CreateSymbol(geom.Pt(200, 10), Right)
	s.Select(1)
	if !s.RemoveSelected() {
		t.Fatal("RemoveSelected failed")
	}
	if cur := s.Current(); cur == nil || cur.ID != c {
		t.Fatalf("expected last mark selected after delete")
	}
	if !s.Undo() {
		t.Fatal("Undo failed")
	}
	ids := []ID{}
	for _, m := range s.Marks() {
		ids = append(ids, m.ID)
	}
	if len(ids) != 3 || ids[0] != a || ids[1] != b || ids[2] != c {
		t.Fatalf("order after undo = %v, want [%d %d %d]", ids, a, b, c)
	}
}

func TestRemoveWithoutSelectionIsNoop(t *testing.T) {
	s := newTestStore()
	if s.RemoveSelected() {
		t.Fatal("RemoveSelected with empty store reported success")
	}
	if s.History().Len() != 0 {
		t.Fatal("no-op remove pushed a record")
	}
}

func TestClearEmptiesHistory(t *testing.T) {
	s := newTestStore()
	s.CreateSymbol(geom.Pt(10, 10), Right)
	s.CreateSymbol(geom.Pt(20, 20), Right)
	s.Undo()
	s.Clear()
	if s.Len() != 0 || s.History().Len() != 0 || s.History().CanRedo() {
		t.Fatal("clear left state behind")
	}
	if s.Undo() || s.Redo() {
		t.Fatal("undo/redo after clear should be no-ops")
	}
}

func TestCountListener(t *testing.T) {
	var counts []int
	s := NewStore(geom.Size{W: 400, H: 400}, WithCountListener(func(n int) { counts = append(counts, n) }))
	s.CreateSymbol(geom.Pt(10, 10), Right)
	s.CreateSymbol(geom.Pt(20, 20), Right)
	s.Translate(s.Current().ID, geom.Pt(1, 1), true)
	s.Undo() // move: count unchanged
	s.Undo()
	s.Redo()
	s.Clear()
	want := []int{1, 2, 1, 2, 0}
	if len(counts) != len(want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("counts = %v, want %v", counts, want)
		}
	}
}

func TestTranslateRefusesLeavingContent(t *testing.T) {
	s := newTestStore()
	id := s.CreateSymbol(geom.Pt(10, 10), Wrong)
	if s.Translate(id, geom.Pt(-20, 0), true) {
		t.Fatal("move out of content accepted")
	}
	if s.History().Len() != 1 {
		t.Fatal("refused move pushed a record")
	}
	if !s.Translate(id, geom.Pt(5, 5), true) {
		t.Fatal("move inside content refused")
	}
	if got := s.Get(id).Pos; got != geom.Pt(15, 15) {
		t.Fatalf("pos = %v, want (15,15)", got)
	}
}

func TestTranslateAllowsMovingBackInside(t *testing.T) {
	s := newTestStore()
	// The tick is 96 wide, so anchored at x=380 it overflows the right edge.
	id := s.CreateSymbol(geom.Pt(380, 10), Right)
	if s.Translate(id, geom.Pt(10, 0), false) {
		t.Fatal("move further out accepted")
	}
	if !s.Translate(id, geom.Pt(-10, 0), false) {
		t.Fatal("move back towards content refused")
	}
}

func TestAppendPointClampsToContent(t *testing.T) {
	s := newTestStore()
	id := s.CreateStroke(geom.Pt(10, 10))
	s.AppendPoint(id, geom.Pt(10, 10))
	s.AppendPoint(id, geom.Pt(-30, 450))
	pts := s.Get(id).Stroke().Last().Points
	if len(pts) != 2 || pts[1] != geom.Pt(0, 400) {
		t.Fatalf("points = %v", pts)
	}
	if s.History().Len() != 1 {
		t.Fatalf("points were recorded: history len %d", s.History().Len())
	}
}

func TestRotateFourTimesRestoresGeometry(t *testing.T) {
	s := NewStore(geom.Size{W: 640, H: 480})
	s.CreateSymbol(geom.Pt(100, 50), Right)
	s.CreateText(geom.Pt(300, 200), "x")
	id := s.CreateStroke(geom.Pt(20, 30))
	for _, p := range []geom.Point{geom.Pt(20, 30), geom.Pt(600, 470), geom.Pt(320.5, 11.25)} {
		s.AppendPoint(id, p)
	}
	before := snapshot(s)
	beforeBounds := []geom.Rect{}
	for _, m := range s.Marks() {
		beforeBounds = append(beforeBounds, s.Bounds(m))
	}
	for i := 1; i <= 4; i++ {
		s.Rotate(geom.Rotation(i))
		for _, m := range s.Marks() {
			if b := s.Bounds(m); m.Kind() == KindStroke && !s.ContentRect().ContainsRect(b) {
				t.Fatalf("after %d turns stroke bounds %v left content %v", i, b, s.ContentRect())
			}
		}
	}
	sameSnap(t, snapshot(s), before)
	for i, m := range s.Marks() {
		b := s.Bounds(m)
		if !b.Min.Eq(beforeBounds[i].Min, 1e-9) || !b.Max.Eq(beforeBounds[i].Max, 1e-9) {
			t.Fatalf("bounds of mark %d: %v, want %v", i, b, beforeBounds[i])
		}
	}
}

func TestSymbolBoundsFollowRotation(t *testing.T) {
	s := NewStore(geom.Size{W: 400, H: 300})
	id := s.CreateSymbol(geom.Pt(100, 50), Right)
	s.Rotate(1)
	m := s.Get(id)
	// (100,50) in 400×300 turns to (250,100) in 300×400; the 96×64 tick now
	// extends left of the anchor.
	want := geom.R(250-64, 100, 250, 100+96)
	if got := s.Bounds(m); !got.Min.Eq(want.Min, 1e-9) || !got.Max.Eq(want.Max, 1e-9) {
		t.Fatalf("bounds = %v, want %v", got, want)
	}
}
