package gg

import "math"

// Matrix is a 2D affine transform, the standard canvas (a,b,c,d,e,f) form:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
//
// transform(a,b,c,d,e,f) multiplies the current matrix on the right by
// this matrix; set_transform replaces it outright.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, B: 0, C: 0, D: 1, E: 0, F: 0}
}

// Translate returns a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, B: 0, C: 0, D: 1, E: x, F: y}
}

// Scale returns a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, B: 0, C: 0, D: y, E: 0, F: 0}
}

// Rotate returns a rotation matrix (angle in radians, counter-clockwise
// in the mathematical sense before device-space y flip).
func Rotate(angle float64) Matrix {
	s, c := math.Sin(angle), math.Cos(angle)
	return Matrix{A: c, B: s, C: -s, D: c, E: 0, F: 0}
}

// Shear returns a shear matrix.
func Shear(x, y float64) Matrix {
	return Matrix{A: 1, B: y, C: x, D: 1, E: 0, F: 0}
}

// Multiply returns m * other: other is applied first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.C*other.B,
		B: m.B*other.A + m.D*other.B,
		C: m.A*other.C + m.C*other.D,
		D: m.B*other.C + m.D*other.D,
		E: m.A*other.E + m.C*other.F + m.E,
		F: m.B*other.E + m.D*other.F + m.F,
	}
}

// TransformPoint applies the transform to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// TransformVector applies the transform to a vector, ignoring translation.
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y,
		Y: m.B*p.X + m.D*p.Y,
	}
}

// nonInvertibleEpsilon is spec.md Design Notes §9's numerical-robustness
// threshold: |det| < 1e-20 is treated as non-invertible.
const nonInvertibleEpsilon = 1e-20

// Invertible reports whether the matrix has a well-defined inverse.
func (m Matrix) Invertible() bool {
	det := m.A*m.D - m.C*m.B
	return math.Abs(det) >= nonInvertibleEpsilon
}

// Invert returns the inverse matrix and true, or the zero value and false
// when the matrix is not invertible. Unlike a fallback-to-identity
// strategy, callers must check ok: spec.md §4.1 requires that
// non-invertible transforms make is_point_in_path return false and make
// fills/strokes draw nothing, not silently substitute the identity.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A*m.D - m.C*m.B
	if math.Abs(det) < nonInvertibleEpsilon {
		return Matrix{}, false
	}
	invDet := 1.0 / det
	return Matrix{
		A: m.D * invDet,
		B: -m.B * invDet,
		C: -m.C * invDet,
		D: m.A * invDet,
		E: (m.C*m.F - m.D*m.E) * invDet,
		F: (m.B*m.E - m.A*m.F) * invDet,
	}, true
}

// IsIdentity reports whether the matrix is the identity transform.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 && m.D == 1 && m.E == 0 && m.F == 0
}

// averageScale estimates the transform's uniform scale factor as the
// square root of its absolute determinant, used to scale a radius
// (arc_to, arc) into device space when the transform itself isn't
// uniform. Non-invertible transforms (det 0) yield scale 0, collapsing
// the arc to a point rather than propagating NaN/Inf.
func (m Matrix) averageScale() float64 {
	det := m.A*m.D - m.C*m.B
	if det < 0 {
		det = -det
	}
	return math.Sqrt(det)
}
