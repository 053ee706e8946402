package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Shadow configures the drop shadow cast by the page in a view render.
type Shadow struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadow is a soft shadow that reads on both light and dark
// backgrounds.
func DefaultShadow() Shadow {
	return Shadow{
		Radius:  12,
		Offset:  image.Pt(6, 6),
		Opacity: 0.5,
	}
}

// DropShadow darkens dst under a blurred copy of footprint shifted by
// s.Offset. Nothing is drawn when Opacity is zero or footprint is empty.
func DropShadow(dst *image.RGBA, footprint image.Rectangle, s Shadow) {
	if s.Opacity <= 0 || footprint.Empty() {
		return
	}
	opacity := min(s.Opacity, 1)
	radius := max(s.Radius, 0)

	padded := footprint.Inset(-radius)
	mask := image.NewGray(padded.Sub(padded.Min))
	draw.Draw(mask, footprint.Sub(padded.Min), image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)
	mask = boxBlur(mask, radius)

	ink := image.NewUniform(color.RGBA{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, padded.Add(s.Offset), ink, image.Point{}, mask, image.Point{}, draw.Over)
}

// boxBlur averages each pixel over a (2r+1)² window clipped to the image,
// one axis at a time using running sums.
func boxBlur(src *image.Gray, r int) *image.Gray {
	if r <= 0 {
		return src
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	out := image.NewGray(src.Bounds())

	sums := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sums[x+1] = sums[x] + int(src.Pix[y*src.Stride+x])
		}
		for x := 0; x < w; x++ {
			lo, hi := max(x-r, 0), min(x+r, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((sums[hi+1] - sums[lo]) / (hi - lo + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			sums[y+1] = sums[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			lo, hi := max(y-r, 0), min(y+r, h-1)
			out.Pix[y*out.Stride+x] = uint8((sums[hi+1] - sums[lo]) / (hi - lo + 1))
		}
	}
	return out
}
