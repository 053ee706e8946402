package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/markcorrect/internal/engine"
	"github.com/example/markcorrect/internal/input"
)

// session carries host state a script can change that the engine queries,
// plus the input adapters pointer steps are delivered through.
type session struct {
	text  string
	mouse *input.Mouse
	touch *input.Touch
}

func (s *session) bind(e *engine.Engine) {
	s.mouse = &input.Mouse{T: e}
	s.touch = &input.Touch{T: e}
}

func (s *session) pointer(x, y float64, dir mouse.Direction) {
	s.mouse.Handle(mouse.Event{X: float32(x), Y: float32(y), Button: mouse.ButtonLeft, Direction: dir})
}

type step struct {
	line int
	name string
	run  func(e *engine.Engine, s *session)
}

// script is a parsed list of input steps.
type script []step

// parseScript reads one command per line. Coordinates are view pixels.
func parseScript(r io.Reader) (script, error) {
	var out script
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		st, err := parseStep(raw)
		if err != nil {
			return nil, fmt.Errorf("script line %d: %w", n, err)
		}
		st.line = n
		out = append(out, st)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return out, nil
}

func parseStep(raw string) (step, error) {
	fields := strings.Fields(raw)
	name, args := strings.ToLower(fields[0]), fields[1:]
	st := step{name: name}

	switch name {
	case "mode":
		if len(args) != 1 {
			return st, fmt.Errorf("mode takes one argument")
		}
		m, err := engine.ParseMode(args[0])
		if err != nil {
			return st, err
		}
		st.run = func(e *engine.Engine, _ *session) { e.SetMode(m) }
	case "text":
		// Keep inner spacing; \n starts a new line of the note.
		text := strings.TrimSpace(raw[len(fields[0]):])
		text = strings.ReplaceAll(text, `\n`, "\n")
		st.run = func(_ *engine.Engine, s *session) { s.text = text }
	case "down", "move":
		v, err := floats(args, 2)
		if err != nil {
			return st, fmt.Errorf("%s: %w", name, err)
		}
		dir := mouse.DirPress
		if name == "move" {
			dir = mouse.DirNone
		}
		st.run = func(_ *engine.Engine, s *session) { s.pointer(v[0], v[1], dir) }
	case "wheel":
		if len(args) != 3 || (args[0] != "up" && args[0] != "down") {
			return st, fmt.Errorf("usage: wheel up|down X Y")
		}
		v, err := floats(args[1:], 2)
		if err != nil {
			return st, fmt.Errorf("wheel: %w", err)
		}
		btn := mouse.ButtonWheelUp
		if args[0] == "down" {
			btn = mouse.ButtonWheelDown
		}
		st.run = func(_ *engine.Engine, s *session) {
			s.mouse.Handle(mouse.Event{X: float32(v[0]), Y: float32(v[1]), Button: btn, Direction: mouse.DirStep})
		}
	case "touch":
		ev, err := parseTouch(args)
		if err != nil {
			return st, fmt.Errorf("touch: %w", err)
		}
		st.run = func(_ *engine.Engine, s *session) { s.touch.Handle(ev) }
	case "up", "cancel", "undo", "redo", "clear":
		if len(args) != 0 {
			return st, fmt.Errorf("%s takes no arguments", name)
		}
		st.run = map[string]func(*engine.Engine, *session){
			"up":     func(_ *engine.Engine, s *session) { s.pointer(0, 0, mouse.DirRelease) },
			"cancel": func(e *engine.Engine, _ *session) { e.PointerCancel() },
			"undo":   func(e *engine.Engine, _ *session) { e.Undo() },
			"redo":   func(e *engine.Engine, _ *session) { e.Redo() },
			"clear":  func(e *engine.Engine, _ *session) { e.Clear() },
		}[name]
	case "pinch":
		v, err := floats(args, 3)
		if err != nil {
			return st, fmt.Errorf("pinch: %w", err)
		}
		if v[2] <= 0 {
			return st, fmt.Errorf("pinch: factor must be positive")
		}
		st.run = func(e *engine.Engine, _ *session) {
			e.ScaleBegin(v[0], v[1])
			e.ScaleUpdate(v[2])
			e.ScaleEnd()
		}
	case "scale":
		if len(args) < 1 || len(args) > 2 || (len(args) == 2 && args[1] != "continuous") {
			return st, fmt.Errorf("usage: scale PERCENT [continuous]")
		}
		p, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return st, fmt.Errorf("scale: %w", err)
		}
		continuous := len(args) == 2
		st.run = func(e *engine.Engine, _ *session) { e.SetScalePercent(p, continuous) }
	case "rotate":
		if len(args) != 1 || (args[0] != "cw" && args[0] != "ccw") {
			return st, fmt.Errorf("usage: rotate cw|ccw")
		}
		cw := args[0] == "cw"
		st.run = func(e *engine.Engine, _ *session) { e.Rotate(cw) }
	default:
		return st, fmt.Errorf("unknown command %q", name)
	}
	return st, nil
}

// parseTouch reads SEQ begin|move|end X Y.
func parseTouch(args []string) (touch.Event, error) {
	if len(args) != 4 {
		return touch.Event{}, fmt.Errorf("usage: touch SEQ begin|move|end X Y")
	}
	seq, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return touch.Event{}, fmt.Errorf("sequence: %w", err)
	}
	var typ touch.Type
	switch args[1] {
	case "begin":
		typ = touch.TypeBegin
	case "move":
		typ = touch.TypeMove
	case "end":
		typ = touch.TypeEnd
	default:
		return touch.Event{}, fmt.Errorf("unknown touch type %q", args[1])
	}
	v, err := floats(args[2:], 2)
	if err != nil {
		return touch.Event{}, err
	}
	return touch.Event{X: float32(v[0]), Y: float32(v[1]), Sequence: touch.Sequence(seq), Type: typ}, nil
}

func floats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// replay runs every step against e. Pointer steps go through the mouse and
// touch adapters bound to e.
func (sc script) replay(e *engine.Engine, s *session, log zerolog.Logger) {
	s.bind(e)
	for _, st := range sc {
		st.run(e, s)
		log.Debug().Int("line", st.line).Str("step", st.name).Int("marks", e.MarkCount()).Msg("replayed")
	}
}
