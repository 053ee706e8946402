package geom

// Rotation is a clockwise content rotation in quarter turns: 0, 1, 2 or 3
// for 0°, 90°, 180° and 270°.
type Rotation int

// Norm folds any integer turn count into [0, 3].
func (r Rotation) Norm() Rotation { return r & 3 }

// Swaps reports whether r exchanges width and height.
func (r Rotation) Swaps() bool { return r&1 == 1 }

// Degrees returns r in degrees.
func (r Rotation) Degrees() int { return int(r.Norm()) * 90 }

// Delta returns the number of quarter turns needed to go from "from" to
// "to", in [0, 3].
func Delta(from, to Rotation) Rotation { return (to - from).Norm() }

// RotatePoint remaps p, expressed in a space of size src, by d clockwise
// quarter turns. The slots [x, y, w-x, h-y] are cycled right d times and the
// first two read back as the new point.
func RotatePoint(p Point, d Rotation, src Size) Point {
	d = d.Norm()
	if d == 0 {
		return p
	}
	buf := [4]float64{p.X, p.Y, src.W - p.X, src.H - p.Y}
	for i := Rotation(0); i < d; i++ {
		last := buf[3]
		copy(buf[1:], buf[:3])
		buf[0] = last
	}
	return Point{buf[0], buf[1]}
}

// RotatePoints applies RotatePoint to every element of pts in place.
func RotatePoints(pts []Point, d Rotation, src Size) {
	if d.Norm() == 0 {
		return
	}
	for i := range pts {
		pts[i] = RotatePoint(pts[i], d, src)
	}
}

// TurnLocal rotates an offset from a pivot by k clockwise quarter turns in a
// y-down coordinate system.
func TurnLocal(v Point, k Rotation) Point {
	switch k.Norm() {
	case 1:
		return Point{-v.Y, v.X}
	case 2:
		return Point{-v.X, -v.Y}
	case 3:
		return Point{v.Y, -v.X}
	}
	return v
}

// OrientedRect returns the bounds of a box of size s anchored at a, after the
// box has been turned k quarter turns clockwise about a.
func OrientedRect(a Point, s Size, k Rotation) Rect {
	k = k.Norm()
	s = s.Rotated(k)
	l, t := a.X, a.Y
	if k == 1 || k == 2 {
		l -= s.W
	}
	if k == 2 || k == 3 {
		t -= s.H
	}
	return RectAt(Point{l, t}, s)
}
