package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/markcorrect/internal/config"
	"github.com/example/markcorrect/internal/engine"
	"github.com/example/markcorrect/internal/geom"
	"github.com/example/markcorrect/internal/render"
)

// annotateCmd represents the annotate subcommand.
type annotateCmd struct {
	input      string
	script     string
	output     string
	rotate     int
	view       string
	preview    string
	background string
	shadow     int
	*root
	fs *flag.FlagSet
}

func (a *annotateCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	a := &annotateCmd{root: r, fs: fs}
	fs.StringVar(&a.input, "in", "", "image to annotate (png, jpeg, bmp, webp or tiff)")
	fs.StringVar(&a.script, "script", "-", "input script, - for stdin")
	fs.StringVar(&a.output, "out", "annotated.png", "output PNG path")
	fs.IntVar(&a.rotate, "rotate", 0, "quarter turns clockwise applied before the script runs")
	fs.StringVar(&a.view, "view", "", "view size WxH the script coordinates refer to (default: image size)")
	fs.StringVar(&a.preview, "preview", "", "also save what the view shows, selection included, to this PNG")
	fs.StringVar(&a.background, "background", "dimgray", "preview background colour, name or #RRGGBB")
	fs.IntVar(&a.shadow, "shadow", 0, "preview drop shadow blur radius in pixels, 0 for none")
	fs.Usage = usageFunc(a)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{of: a}
	}
	if a.input == "" {
		return nil, &UsageError{of: a}
	}
	return a, nil
}

func (a *annotateCmd) Run() error {
	img, err := decodeImage(a.input)
	if err != nil {
		return err
	}

	src, closeScript, err := openScript(a.script)
	if err != nil {
		return err
	}
	defer closeScript()
	sc, err := parseScript(src)
	if err != nil {
		return err
	}

	sess := &session{}
	opts := []engine.Option{
		engine.WithSettings(a.config.Settings()),
		engine.WithLogger(a.log),
		engine.WithRotation(geom.Rotation(a.rotate)),
		engine.WithTextProvider(func() string { return sess.text }),
		engine.WithCountListener(func(n int) {
			a.log.Debug().Int("count", n).Msg("mark count changed")
		}),
	}
	if a.view != "" {
		w, h, err := parseSize(a.view)
		if err != nil {
			return fmt.Errorf("invalid -view: %w", err)
		}
		opts = append(opts, engine.WithViewSize(w, h))
	}
	if a.shadow > 0 {
		sh := render.DefaultShadow()
		sh.Radius = a.shadow
		sh.Offset = image.Pt(a.shadow/2, a.shadow/2)
		opts = append(opts, engine.WithShadow(sh))
	}
	e := engine.New(img, opts...)
	sc.replay(e, sess, a.log)

	if err := writePNG(a.output, e.Flatten()); err != nil {
		return err
	}
	if a.preview != "" {
		bg, err := config.ParseColor(a.background)
		if err != nil {
			return fmt.Errorf("invalid -background: %w", err)
		}
		vs := e.ViewSize()
		dst := image.NewRGBA(image.Rect(0, 0, int(vs.W), int(vs.H)))
		e.RenderView(dst, bg)
		if err := writePNG(a.preview, dst); err != nil {
			return err
		}
	}
	a.log.Info().Str("output", a.output).Int("marks", e.MarkCount()).Int("rotation", e.Rotation().Degrees()).Msg("annotated image saved")
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

func openScript(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open script: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}

func parseSize(s string) (float64, float64, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("want WxH, got %q", s)
	}
	fw, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, 0, err
	}
	fh, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return 0, 0, err
	}
	if fw <= 0 || fh <= 0 {
		return 0, 0, fmt.Errorf("size must be positive")
	}
	return fw, fh, nil
}
