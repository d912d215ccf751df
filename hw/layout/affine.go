package layout

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// An affine matrix is stored row-major as in f64.Aff3:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

func translation(tx, ty float64) f64.Aff3 { return f64.Aff3{1, 0, tx, 0, 1, ty} }
func scaling(s float64) f64.Aff3         { return f64.Aff3{s, 0, 0, 0, s, 0} }

// rotation returns a matrix rotating by q clockwise quarter turns, in a
// coordinate system where y grows downward.
func rotation(q int) f64.Aff3 {
	switch q & 3 {
	case 1:
		return f64.Aff3{0, -1, 0, 1, 0, 0}
	case 2:
		return f64.Aff3{-1, 0, 0, 0, -1, 0}
	case 3:
		return f64.Aff3{0, 1, 0, -1, 0, 0}
	}
	return identity
}

// mul returns m∘n, that is n is applied first.
func mul(m, n f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

// compose returns the matrix applying steps in order, first to last.
func compose(steps ...f64.Aff3) f64.Aff3 {
	m := identity
	for _, s := range steps {
		m = mul(s, m)
	}
	return m
}

func apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Transform maps the native pixel space of one screen to viewport pixels.
type Transform struct {
	Fwd f64.Aff3 // native → viewport
	Inv f64.Aff3 // viewport → native
}

// Apply maps a native screen point to the viewport.
func (t Transform) Apply(x, y float64) (float64, float64) { return apply(t.Fwd, x, y) }

// Invert maps a viewport point back to native screen coordinates.
func (t Transform) Invert(x, y float64) (float64, float64) { return apply(t.Inv, x, y) }

// Bounds returns the viewport area covered by the screen.
func (t Transform) Bounds() Rect {
	x0, y0 := t.Apply(0, 0)
	x1, y1 := t.Apply(NativeWidth, NativeHeight)
	return Rect{
		X0: math.Min(x0, x1), Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1), Y1: math.Max(y0, y1),
	}
}

// Rect is an axis-aligned rectangle in viewport pixels, Min inclusive, Max
// exclusive.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

func (r Rect) Dx() float64 { return r.X1 - r.X0 }
func (r Rect) Dy() float64 { return r.Y1 - r.Y0 }

// Intersect returns the largest rectangle contained by both r and s, which
// may be empty.
func (r Rect) Intersect(s Rect) Rect {
	i := Rect{
		X0: math.Max(r.X0, s.X0), Y0: math.Max(r.Y0, s.Y0),
		X1: math.Min(r.X1, s.X1), Y1: math.Min(r.Y1, s.Y1),
	}
	if i.X0 >= i.X1 || i.Y0 >= i.Y1 {
		return Rect{}
	}
	return i
}

func (r Rect) Area() float64 { return r.Dx() * r.Dy() }

// Contains reports whether the point lies in r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

// Image returns r rounded to the pixel grid.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Round(r.X0)), int(math.Round(r.Y0)),
		int(math.Round(r.X1)), int(math.Round(r.Y1)),
	)
}
