// Package engine drives annotation of a single image: it turns pointer and
// pinch input into mark store operations, rotates the content in quarter
// turns, and renders or flattens the result.
//
// An Engine is not safe for concurrent use; the host must serialise calls.
package engine

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/rs/zerolog"

	"github.com/example/markcorrect/internal/geom"
	"github.com/example/markcorrect/internal/mark"
	"github.com/example/markcorrect/internal/render"
	"github.com/example/markcorrect/internal/viewport"
)

// Mode selects what touching empty content does.
type Mode int

const (
	ModeNone Mode = iota // pan and zoom only
	ModeRight
	ModeWrong
	ModePen
	ModeText
)

var modeNames = []string{"none", "right", "wrong", "pen", "text"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// ParseMode parses a mode name as printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(n, s) {
			return Mode(i), nil
		}
	}
	return ModeNone, fmt.Errorf("unknown mode %q", s)
}

// Settings are the tunable sizes and colours. Distances are view pixels.
type Settings struct {
	Style          mark.Style
	TouchOffset    float64
	TouchSlop      float64
	ButtonSize     float64
	SelectionWidth float64
	Selection      color.RGBA
	DeleteButton   color.RGBA
	DragButton     color.RGBA
	// MaxImageSize bounds both sides of the prepared image; 0 keeps the
	// source size.
	MaxImageSize int
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	return Settings{
		Style:          mark.DefaultStyle(),
		TouchOffset:    10,
		TouchSlop:      8,
		ButtonSize:     30,
		SelectionWidth: 3,
		Selection:      color.RGBA{G: 255, A: 255},
		DeleteButton:   color.RGBA{R: 0xE5, G: 0x39, B: 0x35, A: 255},
		DragButton:     color.RGBA{R: 0x1E, G: 0x88, B: 0xE5, A: 255},
		MaxImageSize:   1600,
	}
}

// Engine owns the marks, history, view transform and gesture state for one
// image.
type Engine struct {
	settings Settings
	log      zerolog.Logger

	source *image.RGBA // prepared image at rotation 0
	base   *image.RGBA // source at the current rotation
	store  *mark.Store
	view   *viewport.Transform

	viewSize geom.Size
	rotation geom.Rotation
	mode     Mode
	text     func() string
	onCount  func(int)
	enabled  bool
	shadow   render.Shadow

	g gesture
}

// Option modifies an Engine during creation.
type Option func(*Engine)

// WithSettings replaces the default settings.
func WithSettings(s Settings) Option { return func(e *Engine) { e.settings = s } }

// WithLogger sets the logger for debug tracing.
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }

// WithViewSize sets the size of the host surface the content is fitted to.
func WithViewSize(w, h float64) Option {
	return func(e *Engine) { e.viewSize = geom.Size{W: w, H: h} }
}

// WithRotation sets the orientation the image is first shown at.
func WithRotation(r geom.Rotation) Option { return func(e *Engine) { e.rotation = r.Norm() } }

// WithTextProvider sets the callback queried for the pending text whenever a
// text mark is about to be created.
func WithTextProvider(fn func() string) Option { return func(e *Engine) { e.text = fn } }

// WithCountListener registers fn to be told the mark count whenever it
// changes.
func WithCountListener(fn func(count int)) Option { return func(e *Engine) { e.onCount = fn } }

// WithShadow makes RenderView cast a drop shadow from the page onto the
// background.
func WithShadow(sh render.Shadow) Option { return func(e *Engine) { e.shadow = sh } }

// New prepares img for annotation.
func New(img image.Image, opts ...Option) *Engine {
	e := &Engine{
		settings: DefaultSettings(),
		log:      zerolog.Nop(),
		view:     viewport.New(),
		enabled:  true,
	}
	for _, o := range opts {
		o(e)
	}
	e.source = prepare(img, e.settings.MaxImageSize)
	b := e.source.Bounds()
	e.store = mark.NewStore(
		geom.Size{W: float64(b.Dx()), H: float64(b.Dy())},
		mark.WithStyle(e.settings.Style),
		mark.WithRotation(e.rotation),
		mark.WithLogger(e.log),
		mark.WithCountListener(e.countChanged),
	)
	e.base = render.Rotate(e.source, e.rotation)
	if e.viewSize.W == 0 || e.viewSize.H == 0 {
		e.viewSize = e.store.Size()
	}
	e.fit()
	e.log.Debug().Int("width", b.Dx()).Int("height", b.Dy()).Int("rotation", int(e.rotation)).Msg("engine ready")
	return e
}

func prepare(img image.Image, max int) *image.RGBA {
	b := img.Bounds()
	w, h := render.FitSize(b.Dx(), b.Dy(), max, max, false)
	if w != b.Dx() || h != b.Dy() {
		return render.Resize(img, w, h)
	}
	return render.ToRGBA(img)
}

func (e *Engine) fit() { e.view.Fit(e.viewSize, e.store.Size()) }

func (e *Engine) countChanged(n int) {
	if e.onCount != nil {
		e.onCount(n)
	}
}

// Store exposes the mark store.
func (e *Engine) Store() *mark.Store { return e.store }

// View exposes the view transform.
func (e *Engine) View() *viewport.Transform { return e.view }

// Settings returns the active settings.
func (e *Engine) Settings() Settings { return e.settings }

// Rotation returns the current content rotation.
func (e *Engine) Rotation() geom.Rotation { return e.rotation }

// ContentSize returns the size of the image at the current rotation.
func (e *Engine) ContentSize() geom.Size { return e.store.Size() }

// MarkCount returns the number of marks shown.
func (e *Engine) MarkCount() int { return e.store.Len() }

func (e *Engine) Mode() Mode { return e.mode }

// SetMode changes what touching empty content does.
func (e *Engine) SetMode(m Mode) {
	e.mode = m
	e.log.Debug().Stringer("mode", m).Msg("mode changed")
}

// SetViewSize resizes the host surface and refits the content.
func (e *Engine) SetViewSize(w, h float64) {
	e.viewSize = geom.Size{W: w, H: h}
	e.fit()
}

// MarksEnabled reports whether marks are shown and editable.
func (e *Engine) MarksEnabled() bool { return e.enabled }

// SetMarksEnabled shows or hides the marks. While hidden, input is ignored
// and Flatten returns the bare image.
func (e *Engine) SetMarksEnabled(on bool) {
	if !on {
		e.endGesture()
	}
	e.enabled = on
}

// Clear removes every mark and forgets the history.
func (e *Engine) Clear() {
	e.endGesture()
	e.store.Clear()
}

// Undo reverts the last operation; a no-op at the start of history. A
// gesture in progress is ended first so it cannot keep editing a mark the
// history just changed.
func (e *Engine) Undo() bool {
	e.endGesture()
	return e.store.Undo()
}

// Redo replays the next operation; a no-op at the end of history.
func (e *Engine) Redo() bool {
	e.endGesture()
	return e.store.Redo()
}

// Rotate turns the content a quarter turn and refits the view. Every mark
// follows the image.
func (e *Engine) Rotate(clockwise bool) {
	step := geom.Rotation(1)
	if !clockwise {
		step = 3
	}
	e.rotation = (e.rotation + step).Norm()
	e.store.Rotate(e.rotation)
	e.base = render.Rotate(e.source, e.rotation)
	e.fit()
	if e.g.active {
		e.g.lastContent = e.view.ToContent(e.g.last)
	}
	e.log.Debug().Int("degrees", e.rotation.Degrees()).Msg("rotated")
}

// SetScalePercent maps percent in [0,1] onto the mark scale range. The scale
// applies to new marks and to the locked or selected mark. A Rescale record
// is pushed unless continuous is set, so a slider drag records once at its
// start. It returns the resulting scale.
func (e *Engine) SetScalePercent(percent float64, continuous bool) float64 {
	percent = geom.Clamp(percent, 0, 1)
	scale := e.store.SetMarkScale(mark.ScaleMin + percent*(mark.ScaleMax-mark.ScaleMin))
	id := e.g.locked
	if id == mark.None {
		if cur := e.store.Current(); cur != nil {
			id = cur.ID
		}
	}
	if id != mark.None {
		e.store.Rescale(id, scale, !continuous)
	}
	return scale
}
