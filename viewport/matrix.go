package viewport

import "math"

// Matrix is a 2D affine transform mapping (x, y) to
// (A*x + B*y + C, D*x + E*y + F).
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translation returns a transform moving points by (tx, ty).
func Translation(tx, ty float64) Matrix {
	return Matrix{A: 1, C: tx, E: 1, F: ty}
}

// Scaling returns a transform scaling points around the origin.
func Scaling(sx, sy float64) Matrix {
	return Matrix{A: sx, E: sy}
}

// Mul returns the transform applying m first and then n.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: n.A*m.A + n.B*m.D,
		B: n.A*m.B + n.B*m.E,
		C: n.A*m.C + n.B*m.F + n.C,
		D: n.D*m.A + n.E*m.D,
		E: n.D*m.B + n.E*m.E,
		F: n.D*m.C + n.E*m.F + n.F,
	}
}

// PostTranslate returns m followed by a translation.
func (m Matrix) PostTranslate(tx, ty float64) Matrix {
	return m.Mul(Translation(tx, ty))
}

// PostScale returns m followed by a scale around the pivot (px, py).
func (m Matrix) PostScale(sx, sy, px, py float64) Matrix {
	return m.Mul(Translation(-px, -py)).Mul(Scaling(sx, sy)).Mul(Translation(px, py))
}

// Invert returns the inverse of m. For a singular m it reports false instead
// of falling back to the identity, so callers can keep their previous mapping.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A*m.E - m.B*m.D
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Matrix{}, false
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.E*m.C) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.D*m.C - m.A*m.F) * inv,
	}, true
}

// Apply transforms a single point.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// MapPoints transforms pts in place. pts holds x, y pairs; a trailing odd
// value is left untouched.
func (m Matrix) MapPoints(pts []float64) {
	for i := 0; i+1 < len(pts); i += 2 {
		pts[i], pts[i+1] = m.Apply(pts[i], pts[i+1])
	}
}

// MapRect transforms r and returns the bounding box of the result.
func (m Matrix) MapRect(r Rect) Rect {
	x0, y0 := m.Apply(r.Left, r.Top)
	x1, y1 := m.Apply(r.Right, r.Bottom)
	return Rect{
		Left:   min(x0, x1),
		Top:    min(y0, y1),
		Right:  max(x0, x1),
		Bottom: max(y0, y1),
	}
}

// ScaleX returns the horizontal scale factor of a matrix without skew.
func (m Matrix) ScaleX() float64 { return m.A }

// ScaleY returns the vertical scale factor of a matrix without skew.
func (m Matrix) ScaleY() float64 { return m.E }

// TransX returns the horizontal translation.
func (m Matrix) TransX() float64 { return m.C }

// TransY returns the vertical translation.
func (m Matrix) TransY() float64 { return m.F }

// Rect is an axis aligned rectangle in float pixels.
type Rect struct {
	Left, Top, Right, Bottom float64
}

func (r Rect) Width() float64   { return r.Right - r.Left }
func (r Rect) Height() float64  { return r.Bottom - r.Top }
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// Inset returns r shrunk by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{Left: r.Left + d, Top: r.Top + d, Right: r.Right - d, Bottom: r.Bottom - d}
}
