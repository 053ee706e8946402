package mark

import (
	"slices"

	"github.com/example/markcorrect/internal/geom"
)

// RecordType names the reversible operations.
type RecordType int

const (
	RecordAdd RecordType = iota
	RecordDelete
	RecordMove
	RecordRescale
	RecordAppendSegment
)

func (t RecordType) String() string {
	switch t {
	case RecordAdd:
		return "add"
	case RecordDelete:
		return "delete"
	case RecordMove:
		return "move"
	case RecordRescale:
		return "rescale"
	case RecordAppendSegment:
		return "append-segment"
	}
	return "unknown"
}

// Record is one history entry. Mark refers into the store's arena; the
// remaining fields hold whatever the inverse operation needs.
type Record struct {
	Type RecordType
	Mark ID
	// Index is where a deleted mark sat.
	Index int
	// Point is the position a Move swaps back in.
	Point geom.Point
	// Scale is the value a Rescale swaps back in.
	Scale float64
	// Segment holds an undone AppendSegment until redo.
	Segment *Segment
	// Rotation is the content rotation the record's geometry is expressed
	// in. It is refreshed every time the record is applied.
	Rotation geom.Rotation
}

// History is a linear undo log. cursor counts the applied records; records
// at and after cursor are the redo tail.
type History struct {
	store   *Store
	records []*Record
	cursor  int
}

func newHistory(s *Store) *History { return &History{store: s} }

// Len returns the number of records held, including the redo tail.
func (h *History) Len() int { return len(h.records) }

// Cursor returns the number of applied records.
func (h *History) Cursor() int { return h.cursor }

func (h *History) CanUndo() bool { return h.cursor > 0 }

func (h *History) CanRedo() bool { return h.cursor < len(h.records) }

// Records returns a copy of the log for inspection.
func (h *History) Records() []Record {
	out := make([]Record, len(h.records))
	for i, r := range h.records {
		out[i] = *r
	}
	return out
}

func (h *History) push(r *Record) {
	r.Rotation = h.store.rotation
	var dropped []ID
	for _, old := range h.records[h.cursor:] {
		dropped = append(dropped, old.Mark)
	}
	h.records = append(slices.Delete(h.records, h.cursor, len(h.records)), r)
	h.cursor = len(h.records)
	h.store.forget(dropped)
}

// references reports whether any held record refers to id.
func (h *History) references(id ID) bool {
	return slices.ContainsFunc(h.records, func(r *Record) bool { return r.Mark == id })
}

func (h *History) reset() {
	h.records = nil
	h.cursor = 0
}

func (h *History) undo() bool {
	if !h.CanUndo() {
		return false
	}
	h.cursor--
	h.apply(h.records[h.cursor], true)
	return true
}

func (h *History) redo() bool {
	if !h.CanRedo() {
		return false
	}
	h.apply(h.records[h.cursor], false)
	h.cursor++
	return true
}

// apply reverts (undo) or replays (redo) r. Geometry captured in r, or held
// by a mark that was out of the store, is first brought from r.Rotation to
// the current rotation.
func (h *History) apply(r *Record, undo bool) {
	s := h.store
	m := s.arena[r.Mark]
	d := geom.Delta(r.Rotation, s.rotation)
	src := s.sizeAt(r.Rotation)
	defer func() { r.Rotation = s.rotation }()
	if m == nil {
		return
	}
	s.log.Debug().Str("record", r.Type.String()).Bool("undo", undo).Int64("id", int64(r.Mark)).Int("delta", int(d)).Msg("history")

	switch r.Type {
	case RecordAdd, RecordDelete:
		// Undo of an Add and redo of a Delete both take the mark out.
		remove := (r.Type == RecordAdd) == undo
		if remove {
			if i := s.indexOf(r.Mark); i >= 0 {
				s.order = slices.Delete(s.order, i, i+1)
			}
			return
		}
		m.rotate(d, src)
		at := len(s.order)
		if r.Type == RecordDelete {
			at = min(max(r.Index, 0), len(s.order))
		}
		s.order = slices.Insert(s.order, at, r.Mark)

	case RecordMove:
		cur := s.moveAnchor(m)
		target := geom.RotatePoint(r.Point, d, src)
		if m.Kind() == KindStroke {
			// The recorded top-left corner lands on another corner after d
			// turns.
			b := s.Bounds(m)
			if d == 1 || d == 2 {
				target.X -= b.Dx()
			}
			if d == 2 || d == 3 {
				target.Y -= b.Dy()
			}
			m.translate(target.Sub(b.Min))
		} else {
			m.Pos = target
		}
		r.Point = cur

	case RecordRescale:
		if m.Kind() != KindStroke {
			m.Scale, r.Scale = r.Scale, m.Scale
		}

	case RecordAppendSegment:
		st := m.Stroke()
		if st == nil {
			return
		}
		if undo {
			if n := len(st.Segments); n > 0 {
				r.Segment = st.Segments[n-1]
				st.Segments = st.Segments[:n-1]
			}
			return
		}
		if r.Segment != nil {
			geom.RotatePoints(r.Segment.Points, d, src)
			st.Segments = append(st.Segments, r.Segment)
			r.Segment = nil
		}
	}
}
