package viewport

import (
	"testing"

	"github.com/example/markcorrect/internal/geom"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name          string
		scale, tx, ty float64
	}{
		{"identity", 1, 0, 0},
		{"zoomed", 2.5, 13, -7},
		{"shrunk", 0.3, 100, 250.5},
		{"clamped", 10, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			tr.Set(tt.scale, tt.tx, tt.ty)
			for x := 0.0; x <= 400; x += 37.5 {
				for y := 0.0; y <= 400; y += 41.25 {
					p := geom.Pt(x, y)
					if got := tr.ToContent(tr.ToView(p)); !got.Eq(p, 1e-9) {
						t.Fatalf("round trip of %v gave %v", p, got)
					}
				}
			}
		})
	}
}

func TestSetClampsScale(t *testing.T) {
	tr := New()
	tr.Set(10, 0, 0)
	if tr.Scale() != ScaleMax {
		t.Fatalf("scale = %v, want %v", tr.Scale(), ScaleMax)
	}
	tr.Set(0.01, 0, 0)
	if tr.Scale() != ScaleMin {
		t.Fatalf("scale = %v, want %v", tr.Scale(), ScaleMin)
	}
}

func TestPinchKeepsFocusFixed(t *testing.T) {
	tr := New()
	tr.Set(1, 20, 30)
	focus := geom.Pt(200, 150)
	before := tr.ToContent(focus)
	tr.BeginPinch(focus)
	if !tr.UpdatePinch(2) {
		t.Fatal("expected zoom change")
	}
	if tr.Scale() != 2 {
		t.Fatalf("scale = %v, want 2", tr.Scale())
	}
	if after := tr.ToContent(focus); !after.Eq(before, 1e-9) {
		t.Fatalf("focus moved from %v to %v", before, after)
	}
	tr.UpdatePinch(100)
	if tr.Scale() != ScaleMax {
		t.Fatalf("scale = %v, want clamp to %v", tr.Scale(), ScaleMax)
	}
	tr.EndPinch()
}

func TestFitCentresSlackAxis(t *testing.T) {
	tr := New()
	tr.Fit(geom.Size{W: 800, H: 400}, geom.Size{W: 400, H: 400})
	if tr.Scale() != 1 {
		t.Fatalf("scale = %v, want 1", tr.Scale())
	}
	if got := tr.Translate(); got != geom.Pt(200, 0) {
		t.Fatalf("translate = %v, want (200,0)", got)
	}
}

func TestAff3MatchesToView(t *testing.T) {
	tr := New()
	tr.Set(1.5, 10, 20)
	m := tr.Aff3()
	p := geom.Pt(7, 9)
	v := tr.ToView(p)
	x := m[0]*p.X + m[1]*p.Y + m[2]
	y := m[3]*p.X + m[4]*p.Y + m[5]
	if !v.Eq(geom.Pt(x, y), 1e-9) {
		t.Fatalf("Aff3 gives (%v,%v), ToView gives %v", x, y, v)
	}
}
