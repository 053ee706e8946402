package engine

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/markcorrect/internal/geom"
	"github.com/example/markcorrect/internal/mark"
	"github.com/example/markcorrect/internal/render"
)

// Draw paints the marks onto dst in content space. dst is cleared first.
// With highlight set the selected mark gets its outline and handles, sized
// so they look the same at any zoom.
func (e *Engine) Draw(dst *image.RGBA, highlight bool) {
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	if !e.enabled {
		return
	}
	rot := e.store.Rotation()
	st := e.store.Style()
	cur := e.store.Current()
	for _, m := range e.store.Marks() {
		m.Draw(dst, rot, st)
	}
	if highlight && cur != nil && hasGeometry(cur) {
		e.drawSelection(dst, cur)
	}
}

func (e *Engine) drawSelection(dst *image.RGBA, m *mark.Mark) {
	k := 1 / e.view.Scale()
	b := e.store.Bounds(m)
	render.DrawRect(dst, b, e.settings.Selection, e.settings.SelectionWidth*k)
	d := e.settings.ButtonSize * k
	render.DrawButton(dst, b.TopRight(), d, e.settings.DeleteButton, render.CloseShape, color.White)
	if m.Kind() == mark.KindStroke {
		render.DrawButton(dst, b.Min, d, e.settings.DragButton, render.DragShape, color.White)
	}
}

// Layer returns a new content-sized transparent image holding the marks.
func (e *Engine) Layer(highlight bool) *image.RGBA {
	sz := e.store.Size()
	out := image.NewRGBA(image.Rect(0, 0, int(sz.W), int(sz.H)))
	e.Draw(out, highlight)
	return out
}

// Flatten returns the image at its current rotation with every mark burned
// in. When marks are hidden it returns the bare image.
func (e *Engine) Flatten() *image.RGBA {
	if !e.enabled {
		return render.ToRGBA(e.base)
	}
	return render.Composite(e.base, e.Layer(false))
}

// Base returns the image at its current rotation.
func (e *Engine) Base() *image.RGBA { return e.base }

// RenderView draws what the host surface shows: the image and marks mapped
// through the view transform, selection included, over the background and
// the page shadow if one is set.
func (e *Engine) RenderView(dst *image.RGBA, background color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	page := e.view.RectToView(e.store.ContentRect())
	render.DropShadow(dst, image.Rect(
		int(math.Round(page.Min.X)), int(math.Round(page.Min.Y)),
		int(math.Round(page.Max.X)), int(math.Round(page.Max.Y)),
	), e.shadow)
	m := e.view.Aff3()
	render.Project(dst, m, e.base)
	if e.enabled {
		render.Project(dst, m, e.Layer(true))
	}
}

// ViewSize returns the size of the host surface.
func (e *Engine) ViewSize() geom.Size { return e.viewSize }
