package geom

import "testing"

func TestRotatePointQuarterTurns(t *testing.T) {
	src := Size{W: 400, H: 300}
	p := Pt(10, 20)
	tests := []struct {
		d    Rotation
		want Point
	}{
		{0, Pt(10, 20)},
		{1, Pt(280, 10)},  // clockwise: (h-y, x)
		{2, Pt(390, 280)}, // (w-x, h-y)
		{3, Pt(20, 390)},  // counter-clockwise: (y, w-x)
	}
	for _, tt := range tests {
		if got := RotatePoint(p, tt.d, src); !got.Eq(tt.want, 1e-9) {
			t.Errorf("RotatePoint(%v, %d) = %v, want %v", p, tt.d, got, tt.want)
		}
	}
}

func TestRotatePointFourTurnsIsIdentity(t *testing.T) {
	src := Size{W: 640, H: 480}
	for _, p := range []Point{Pt(0, 0), Pt(640, 480), Pt(12.5, 300.25), Pt(600, 1)} {
		q := p
		s := src
		for i := 0; i < 4; i++ {
			q = RotatePoint(q, 1, s)
			s = s.Rotated(1)
		}
		if !q.Eq(p, 1e-9) {
			t.Errorf("four turns of %v gave %v", p, q)
		}
	}
}

func TestRotatePointStaysInside(t *testing.T) {
	src := Size{W: 200, H: 100}
	bounds := R(0, 0, 100, 200)
	for _, p := range []Point{Pt(0, 0), Pt(200, 100), Pt(50, 50)} {
		q := RotatePoint(p, 1, src)
		if !bounds.Contains(q) {
			t.Errorf("rotated %v to %v outside %v", p, q, bounds)
		}
	}
}

func TestDelta(t *testing.T) {
	if got := Delta(3, 0); got != 1 {
		t.Fatalf("Delta(3,0) = %d, want 1", got)
	}
	if got := Delta(1, 0); got != 3 {
		t.Fatalf("Delta(1,0) = %d, want 3", got)
	}
	if got := Rotation(-1).Norm(); got != 3 {
		t.Fatalf("Norm(-1) = %d, want 3", got)
	}
}

func TestOrientedRectMatchesTurnLocal(t *testing.T) {
	a := Pt(100, 100)
	s := Size{W: 40, H: 20}
	for k := Rotation(0); k < 4; k++ {
		corners := []Point{
			a.Add(TurnLocal(Pt(0, 0), k)),
			a.Add(TurnLocal(Pt(s.W, 0), k)),
			a.Add(TurnLocal(Pt(0, s.H), k)),
			a.Add(TurnLocal(Pt(s.W, s.H), k)),
		}
		want := Bounds(corners)
		got := OrientedRect(a, s, k)
		if !got.Min.Eq(want.Min, 1e-9) || !got.Max.Eq(want.Max, 1e-9) {
			t.Errorf("k=%d: OrientedRect = %v, want %v", k, got, want)
		}
	}
}

func TestRectInsetAndContains(t *testing.T) {
	r := R(10, 10, 20, 20)
	if r.Contains(Pt(5, 5)) {
		t.Fatal("point should be outside")
	}
	if !r.Inset(-10).Contains(Pt(5, 5)) {
		t.Fatal("inflated rect should contain point")
	}
	if !R(0, 0, 100, 100).ContainsRect(r) {
		t.Fatal("expected containment")
	}
	if got := R(0, 0, 10, 10).Clamp(Pt(-5, 15)); got != Pt(0, 10) {
		t.Fatalf("Clamp = %v", got)
	}
}
