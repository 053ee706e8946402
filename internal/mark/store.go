package mark

import (
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/example/markcorrect/internal/geom"
)

// Store is the ordered set of marks on one image. Order is paint order:
// later marks draw on top and win hit tests.
//
// Marks live in an id-indexed arena for as long as the history may still
// bring them back; order lists the ids currently shown.
type Store struct {
	style    Style
	base     geom.Size
	rotation geom.Rotation
	scale    float64

	arena    map[ID]*Mark
	order    []ID
	selected ID
	nextID   ID
	history  *History

	onCount   func(int)
	lastCount int
	log       zerolog.Logger
}

// Option modifies a Store during creation.
type Option func(*Store)

// WithStyle sets the sizes and ink colour marks use.
func WithStyle(st Style) Option { return func(s *Store) { s.style = st } }

// WithRotation sets the content rotation the store starts at.
func WithRotation(r geom.Rotation) Option { return func(s *Store) { s.rotation = r.Norm() } }

// WithCountListener registers fn to be called whenever the number of shown
// marks changes.
func WithCountListener(fn func(count int)) Option { return func(s *Store) { s.onCount = fn } }

// WithLogger sets the logger used for debug tracing.
func WithLogger(l zerolog.Logger) Option { return func(s *Store) { s.log = l } }

// NewStore creates an empty store for content of size base at rotation 0.
func NewStore(base geom.Size, opts ...Option) *Store {
	s := &Store{
		style:  DefaultStyle(),
		base:   base,
		scale:  1,
		arena:  make(map[ID]*Mark),
		nextID: 1,
		log:    zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.history = newHistory(s)
	return s
}

// Style returns the style marks are drawn with.
func (s *Store) Style() *Style { return &s.style }

// Rotation returns the current content rotation.
func (s *Store) Rotation() geom.Rotation { return s.rotation }

// Size returns the content size at the current rotation.
func (s *Store) Size() geom.Size { return s.sizeAt(s.rotation) }

func (s *Store) sizeAt(r geom.Rotation) geom.Size { return s.base.Rotated(r) }

// ContentRect returns [0,0]×[W,H] at the current rotation.
func (s *Store) ContentRect() geom.Rect {
	return geom.RectAt(geom.Point{}, s.Size())
}

// History returns the undo/redo log.
func (s *Store) History() *History { return s.history }

// Len returns the number of shown marks.
func (s *Store) Len() int { return len(s.order) }

// Marks returns the shown marks in paint order.
func (s *Store) Marks() []*Mark {
	out := make([]*Mark, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.arena[id])
	}
	return out
}

// At returns the mark at index i in paint order.
func (s *Store) At(i int) *Mark {
	if i < 0 || i >= len(s.order) {
		return nil
	}
	return s.arena[s.order[i]]
}

// Get returns the mark with id if it is shown.
func (s *Store) Get(id ID) *Mark {
	if s.indexOf(id) < 0 {
		return nil
	}
	return s.arena[id]
}

func (s *Store) indexOf(id ID) int { return slices.Index(s.order, id) }

// Bounds returns m's content bounds at the current rotation.
func (s *Store) Bounds(m *Mark) geom.Rect { return m.Bounds(s.rotation, &s.style) }

// MarkScale is the scale applied to newly created marks.
func (s *Store) MarkScale() float64 { return s.scale }

// SetMarkScale sets the scale for new marks, clamped to [ScaleMin, ScaleMax].
func (s *Store) SetMarkScale(v float64) float64 {
	s.scale = geom.Clamp(v, ScaleMin, ScaleMax)
	return s.scale
}

// Select makes the mark at index i current. Any i out of range clears the
// selection.
func (s *Store) Select(i int) {
	if i < 0 || i >= len(s.order) {
		s.selected = None
		return
	}
	s.selected = s.order[i]
}

// SelectedIndex returns the index of the current mark, or -1.
func (s *Store) SelectedIndex() int {
	if s.selected == None {
		return -1
	}
	return s.indexOf(s.selected)
}

// Current returns the selected mark, or nil.
func (s *Store) Current() *Mark {
	if s.selected == None {
		return nil
	}
	return s.Get(s.selected)
}

// CreateSymbol adds a tick or cross anchored at p.
func (s *Store) CreateSymbol(p geom.Point, g Glyph) ID {
	return s.create(p, &Symbol{Glyph: g})
}

// CreateText adds a text note anchored at p. Blank text is rejected.
func (s *Store) CreateText(p geom.Point, text string) ID {
	if strings.TrimSpace(text) == "" {
		s.log.Debug().Msg("rejected blank text mark")
		return None
	}
	return s.create(p, &Text{Text: text})
}

// CreateStroke adds a stroke starting at p with one empty segment.
func (s *Store) CreateStroke(p geom.Point) ID {
	return s.create(p, &Stroke{Segments: []*Segment{s.newSegment()}})
}

func (s *Store) newSegment() *Segment {
	return &Segment{LineWidth: s.style.StrokeWidth * s.scale}
}

func (s *Store) create(p geom.Point, body Body) ID {
	if !s.ContentRect().Contains(p) {
		s.log.Debug().Stringer("at", p).Str("kind", body.Kind().String()).Msg("rejected mark outside content")
		return None
	}
	m := &Mark{
		ID:      s.nextID,
		Pos:     p,
		Scale:   s.scale,
		Created: s.rotation,
		Body:    body,
	}
	s.nextID++
	s.arena[m.ID] = m
	s.order = append(s.order, m.ID)
	s.selected = m.ID
	s.history.push(&Record{Type: RecordAdd, Mark: m.ID})
	s.log.Debug().Int64("id", int64(m.ID)).Str("kind", body.Kind().String()).Stringer("at", p).Msg("mark created")
	s.notifyCount()
	return m.ID
}

// Remove deletes the mark with id, recording its index so undo can put it
// back in place. The last mark becomes selected.
func (s *Store) Remove(id ID) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.order = slices.Delete(s.order, i, i+1)
	s.history.push(&Record{Type: RecordDelete, Mark: id, Index: i})
	s.selectLast()
	s.log.Debug().Int64("id", int64(id)).Int("index", i).Msg("mark deleted")
	s.notifyCount()
	return true
}

// RemoveSelected deletes the current mark, if any.
func (s *Store) RemoveSelected() bool {
	if s.selected == None {
		return false
	}
	return s.Remove(s.selected)
}

func (s *Store) selectLast() {
	if len(s.order) == 0 {
		s.selected = None
		return
	}
	s.selected = s.order[len(s.order)-1]
}

// Clear drops every mark and the whole history. It can't be undone.
func (s *Store) Clear() {
	clear(s.arena)
	s.order = nil
	s.selected = None
	s.history.reset()
	s.log.Debug().Msg("store cleared")
	s.notifyCount()
}

// forget drops marks from the arena once they are neither shown nor
// reachable through the history.
func (s *Store) forget(ids []ID) {
	for _, id := range ids {
		if _, ok := s.arena[id]; !ok || s.indexOf(id) >= 0 || s.history.references(id) {
			continue
		}
		delete(s.arena, id)
		s.log.Debug().Int64("id", int64(id)).Msg("mark forgotten")
	}
}

// Translate moves the mark by d. The move is refused when it would push the
// mark further outside the content than it already is. When record is set
// a Move record is pushed first.
func (s *Store) Translate(id ID, d geom.Point, record bool) bool {
	m := s.Get(id)
	if m == nil {
		return false
	}
	content := s.ContentRect()
	b := s.Bounds(m)
	next := b.Offset(d)
	if !content.ContainsRect(next) && overflow(content, next) > overflow(content, b) {
		return false
	}
	if record {
		s.history.push(&Record{Type: RecordMove, Mark: id, Point: s.moveAnchor(m)})
	}
	m.translate(d)
	return true
}

// moveAnchor is the point a Move record restores: the anchor, or the bounds'
// top-left corner for strokes.
func (s *Store) moveAnchor(m *Mark) geom.Point {
	if m.Kind() == KindStroke {
		return s.Bounds(m).Min
	}
	return m.Pos
}

func overflow(content, r geom.Rect) float64 {
	var o float64
	if d := content.Min.X - r.Min.X; d > 0 {
		o += d
	}
	if d := content.Min.Y - r.Min.Y; d > 0 {
		o += d
	}
	if d := r.Max.X - content.Max.X; d > 0 {
		o += d
	}
	if d := r.Max.Y - content.Max.Y; d > 0 {
		o += d
	}
	return o
}

// Rescale sets the mark's scale. Strokes keep their geometry; their scale
// only affects the width of segments opened later, so no record is pushed
// for them.
func (s *Store) Rescale(id ID, scale float64, record bool) bool {
	m := s.Get(id)
	if m == nil {
		return false
	}
	scale = geom.Clamp(scale, ScaleMin, ScaleMax)
	if record && m.Kind() != KindStroke {
		s.history.push(&Record{Type: RecordRescale, Mark: id, Scale: m.Scale})
	}
	m.Scale = scale
	return true
}

// OpenSegment starts a new segment on a stroke and records it.
func (s *Store) OpenSegment(id ID) *Segment {
	m := s.Get(id)
	if m == nil {
		return nil
	}
	st := m.Stroke()
	if st == nil {
		return nil
	}
	seg := s.newSegment()
	st.Segments = append(st.Segments, seg)
	s.history.push(&Record{Type: RecordAppendSegment, Mark: id})
	return seg
}

// AppendPoint adds p, clamped to the content, to the stroke's last segment.
// Points inside a segment are not recorded individually.
func (s *Store) AppendPoint(id ID, p geom.Point) bool {
	m := s.Get(id)
	if m == nil {
		return false
	}
	st := m.Stroke()
	if st == nil {
		return false
	}
	seg := st.Last()
	if seg == nil {
		seg = s.newSegment()
		st.Segments = append(st.Segments, seg)
	}
	seg.Points = append(seg.Points, s.ContentRect().Clamp(p))
	return true
}

// Rotate turns the content to rotation to and remaps every shown mark.
func (s *Store) Rotate(to geom.Rotation) {
	to = to.Norm()
	d := geom.Delta(s.rotation, to)
	src := s.Size()
	s.rotation = to
	if d == 0 {
		return
	}
	for _, id := range s.order {
		s.arena[id].rotate(d, src)
	}
	s.log.Debug().Int("rotation", int(to)).Int("delta", int(d)).Int("marks", len(s.order)).Msg("content rotated")
}

// Undo reverts the record before the cursor. It reports false at the start
// of history.
func (s *Store) Undo() bool {
	ok := s.history.undo()
	s.afterHistory()
	return ok
}

// Redo re-applies the record after the cursor. It reports false at the end
// of history.
func (s *Store) Redo() bool {
	ok := s.history.redo()
	s.afterHistory()
	return ok
}

func (s *Store) afterHistory() {
	if s.selected != None && s.indexOf(s.selected) < 0 {
		s.selected = None
	}
	s.notifyCount()
}

func (s *Store) notifyCount() {
	n := len(s.order)
	if n == s.lastCount {
		return
	}
	s.lastCount = n
	if s.onCount != nil {
		s.onCount(n)
	}
}
