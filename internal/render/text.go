package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/markcorrect/internal/geom"
)

var (
	fontOnce sync.Once
	textFont *opentype.Font
	fontErr  error

	textFaces sync.Map // map[float64]font.Face
)

func parsedFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		textFont, fontErr = opentype.Parse(goregular.TTF)
	})
	return textFont, fontErr
}

// faceKey rounds size so continuous mark scaling doesn't build a face per
// slider tick.
func faceKey(size float64) float64 { return math.Round(size*4) / 4 }

func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid text size %v", size)
	}
	key := faceKey(size)
	if face, ok := textFaces.Load(key); ok {
		return face.(font.Face), nil
	}
	f, err := parsedFont()
	if err != nil {
		return nil, fmt.Errorf("parse text font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: key, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	actual, _ := textFaces.LoadOrStore(key, face)
	return actual.(font.Face), nil
}

// MeasureLines returns the block size of lines set at size pixels: the
// widest line by one line height per line.
func MeasureLines(lines []string, size float64) (geom.Size, error) {
	face, err := faceForSize(size)
	if err != nil {
		return geom.Size{}, err
	}
	d := &font.Drawer{Face: face}
	var w float64
	for _, l := range lines {
		if lw := fixedToFloat(d.MeasureString(l)); lw > w {
			w = lw
		}
	}
	return geom.Size{W: w, H: float64(len(lines)) * size}, nil
}

// DrawLines renders lines with the block's top-left corner at anchor, turned
// k quarter turns clockwise about it.
func DrawLines(img *image.RGBA, lines []string, anchor geom.Point, size float64, k geom.Rotation, col color.Color) error {
	face, err := faceForSize(size)
	if err != nil {
		return err
	}
	block, err := MeasureLines(lines, size)
	if err != nil {
		return err
	}
	w := int(math.Ceil(block.W))
	h := int(math.Ceil(block.H))
	if w <= 0 || h <= 0 {
		return nil
	}
	tile := image.NewRGBA(image.Rect(0, 0, w, h))
	descent := face.Metrics().Descent.Ceil()
	d := &font.Drawer{Dst: tile, Src: image.NewUniform(col), Face: face}
	for i, l := range lines {
		baseline := int(float64(i+1)*size) - descent
		d.Dot = fixed.P(0, baseline)
		d.DrawString(l)
	}
	turned := Rotate(tile, k)
	at := geom.OrientedRect(anchor, block, k).Min
	dst := turned.Bounds().Add(image.Pt(round(at.X), round(at.Y)))
	draw.Draw(img, dst, turned, image.Point{}, draw.Over)
	return nil
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
