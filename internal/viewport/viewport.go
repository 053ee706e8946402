// Package viewport maps between view space (screen pixels) and content
// space (image pixels) using a uniform zoom and a pan offset.
package viewport

import (
	"golang.org/x/image/math/f64"

	"github.com/example/markcorrect/internal/geom"
)

// Zoom limits.
const (
	ScaleMin = 0.3
	ScaleMax = 3.0
)

// Transform holds the current zoom and the view position of the content
// origin.
type Transform struct {
	scale      float64
	translateX float64
	translateY float64

	pinchBase  float64
	pinchFocus geom.Point
}

// New returns an identity transform.
func New() *Transform {
	return &Transform{scale: 1}
}

func (t *Transform) Scale() float64 { return t.scale }

// Translate returns the view position of the content origin.
func (t *Transform) Translate() geom.Point { return geom.Pt(t.translateX, t.translateY) }

// Set replaces the zoom and pan. The zoom is clamped.
func (t *Transform) Set(scale, tx, ty float64) {
	t.scale = geom.Clamp(scale, ScaleMin, ScaleMax)
	t.translateX = tx
	t.translateY = ty
}

// ToContent maps a view-space point into content space.
func (t *Transform) ToContent(p geom.Point) geom.Point {
	return geom.Pt((p.X-t.translateX)/t.scale, (p.Y-t.translateY)/t.scale)
}

// ToView maps a content-space point into view space.
func (t *Transform) ToView(p geom.Point) geom.Point {
	return geom.Pt(p.X*t.scale+t.translateX, p.Y*t.scale+t.translateY)
}

// RectToView maps a content-space rect into view space.
func (t *Transform) RectToView(r geom.Rect) geom.Rect {
	return geom.Rect{Min: t.ToView(r.Min), Max: t.ToView(r.Max)}
}

// Pan moves the content by d view pixels.
func (t *Transform) Pan(d geom.Point) {
	t.translateX += d.X
	t.translateY += d.Y
}

// ZoomAt sets the zoom to scale, keeping the content under the view point
// focus fixed. It reports whether the zoom changed after clamping.
func (t *Transform) ZoomAt(scale float64, focus geom.Point) bool {
	old := t.scale
	scale = geom.Clamp(scale, ScaleMin, ScaleMax)
	if scale == old {
		return false
	}
	k := scale / old
	t.translateX = focus.X - (focus.X-t.translateX)*k
	t.translateY = focus.Y - (focus.Y-t.translateY)*k
	t.scale = scale
	return true
}

// BeginPinch records the zoom and focus a pinch gesture starts from.
func (t *Transform) BeginPinch(focus geom.Point) {
	t.pinchBase = t.scale
	t.pinchFocus = focus
}

// UpdatePinch applies a cumulative pinch factor relative to BeginPinch.
func (t *Transform) UpdatePinch(factor float64) bool {
	if t.pinchBase == 0 {
		t.pinchBase = t.scale
	}
	return t.ZoomAt(t.pinchBase*factor, t.pinchFocus)
}

// EndPinch forgets the pinch baseline.
func (t *Transform) EndPinch() { t.pinchBase = 0 }

// Fit scales content to fit inside view and centres it along the axis with
// slack space.
func (t *Transform) Fit(view, content geom.Size) {
	if content.W <= 0 || content.H <= 0 || view.W <= 0 || view.H <= 0 {
		t.Set(1, 0, 0)
		return
	}
	sx := view.W / content.W
	sy := view.H / content.H
	s := sx
	if sy < s {
		s = sy
	}
	s = geom.Clamp(s, ScaleMin, ScaleMax)
	var tx, ty float64
	if sx > sy {
		tx = (view.W - content.W*s) / 2
	} else if sx < sy {
		ty = (view.H - content.H*s) / 2
	}
	t.Set(s, tx, ty)
}

// Aff3 returns the content-to-view matrix in the form golang.org/x/image/draw
// expects.
func (t *Transform) Aff3() f64.Aff3 {
	return f64.Aff3{
		t.scale, 0, t.translateX,
		0, t.scale, t.translateY,
	}
}
