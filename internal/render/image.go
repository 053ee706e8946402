package render

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/example/markcorrect/internal/geom"
)

// ToRGBA copies img into a new zero-origin RGBA image.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Rotate returns a copy of img turned k quarter turns clockwise.
func Rotate(img *image.RGBA, k geom.Rotation) *image.RGBA {
	k = k.Norm()
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if k == 0 {
		return ToRGBA(img)
	}
	ow, oh := w, h
	if k.Swaps() {
		ow, oh = h, w
	}
	out := image.NewRGBA(image.Rect(0, 0, ow, oh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var dx, dy int
			switch k {
			case 1:
				dx, dy = h-1-y, x
			case 2:
				dx, dy = w-1-x, h-1-y
			case 3:
				dx, dy = y, w-1-x
			}
			out.SetRGBA(dx, dy, img.RGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

// FitSize scales (w, h) down to fit inside maxW×maxH keeping the aspect
// ratio. Smaller sizes are returned unchanged unless upscale is set.
func FitSize(w, h, maxW, maxH int, upscale bool) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return w, h
	}
	src := float64(w) / float64(h)
	dst := float64(maxW) / float64(maxH)
	switch {
	case src >= dst && (w > maxW || upscale):
		return maxW, int(float64(maxW) / src)
	case src < dst && (h > maxH || upscale):
		return int(float64(maxH) * src), maxH
	}
	return w, h
}

// Resize scales img to w×h with Catmull-Rom resampling.
func Resize(img image.Image, w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// Composite returns base with layer drawn over it.
func Composite(base, layer *image.RGBA) *image.RGBA {
	out := ToRGBA(base)
	if layer != nil {
		draw.Draw(out, out.Bounds(), layer, layer.Bounds().Min, draw.Over)
	}
	return out
}

// Project draws src onto dst through the affine transform m.
func Project(dst *image.RGBA, m f64.Aff3, src image.Image) {
	xdraw.ApproxBiLinear.Transform(dst, m, src, src.Bounds(), draw.Over, nil)
}
