package gg

import (
	"math"
	"sort"
)

// Curve types for 2D geometry operations.
// Based on kurbo patterns, adapted for Go idioms.

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner (minimum coordinates).
// Max is the bottom-right corner (maximum coordinates).
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Expand returns the rectangle grown outward by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// -------------------------------------------------------------------
// QuadBez - Quadratic Bezier Curve
// -------------------------------------------------------------------

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1) using the Bernstein
// polynomial form.
func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt
	b := 2 * mt * t
	c := t * t
	return Point{
		X: a*q.P0.X + b*q.P1.X + c*q.P2.X,
		Y: a*q.P0.Y + b*q.P1.Y + c*q.P2.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de
// Casteljau's algorithm.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	q0 := q.P0.Lerp(q.P1, 0.5)
	q1 := q.P1.Lerp(q.P2, 0.5)
	mid := q0.Lerp(q1, 0.5)
	return QuadBez{P0: q.P0, P1: q0, P2: mid}, QuadBez{P0: mid, P1: q1, P2: q.P2}
}

// Extrema returns parameter values where the derivative is zero (extrema points).
// Used for computing tight bounding boxes.
func (q QuadBez) Extrema() []float64 {
	var result []float64

	// For a quadratic Bezier, the derivative is linear:
	// B'(t) = 2[(P1-P0) + t(P2-2P1+P0)]
	// Setting to zero: t = (P0-P1) / (P0-2P1+P2)

	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := Point{X: d1.X - d0.X, Y: d1.Y - d0.Y}

	// X extrema
	if dd.X != 0 {
		t := -d0.X / dd.X
		if t > 0 && t < 1 {
			result = append(result, t)
		}
	}

	// Y extrema
	if dd.Y != 0 {
		t := -d0.Y / dd.Y
		if t > 0 && t < 1 {
			result = append(result, t)
		}
	}

	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	// Start with endpoints
	bbox := NewRect(q.P0, q.P2)

	// Include extrema points
	for _, t := range q.Extrema() {
		p := q.Eval(t)
		bbox = bbox.Union(NewRect(p, p))
	}

	return bbox
}

// -------------------------------------------------------------------
// CubicBez - Cubic Bezier Curve
// -------------------------------------------------------------------

// CubicBez represents a cubic Bezier curve with control points P0..P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1) using the Bernstein
// polynomial form.
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	cc := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + cc*c.P2.X + d*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + cc*c.P2.Y + d*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de
// Casteljau's algorithm.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	q0 := c.P0.Lerp(c.P1, 0.5)
	q1 := c.P1.Lerp(c.P2, 0.5)
	q2 := c.P2.Lerp(c.P3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	mid := r0.Lerp(r1, 0.5)
	return CubicBez{P0: c.P0, P1: q0, P2: r0, P3: mid},
		CubicBez{P0: mid, P1: r1, P2: q2, P3: c.P3}
}

// Extrema returns parameter values where the derivative is zero (extrema points).
// For a cubic Bezier, there can be up to 4 extrema (2 for x, 2 for y).
func (c CubicBez) Extrema() []float64 {
	// Pre-allocate for max 4 extrema (2 for x, 2 for y)
	result := make([]float64, 0, 4)

	// The derivative is a quadratic: B'(t) = a*t^2 + b*t + c
	// Where the coefficients come from differentiating the Bernstein form
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	// X extrema: solve ax*t^2 + bx*t + cx = 0
	ax := d0.X - 2*d1.X + d2.X
	bx := 2 * (d1.X - d0.X)
	cx := d0.X

	result = append(result, SolveQuadraticInUnitInterval(ax, bx, cx)...)

	// Y extrema
	ay := d0.Y - 2*d1.Y + d2.Y
	by := 2 * (d1.Y - d0.Y)
	cy := d0.Y

	result = append(result, SolveQuadraticInUnitInterval(ay, by, cy)...)

	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	// Start with endpoints
	bbox := NewRect(c.P0, c.P3)

	// Include extrema points
	for _, t := range c.Extrema() {
		p := c.Eval(t)
		bbox = bbox.Union(NewRect(p, p))
	}

	return bbox
}

// -------------------------------------------------------------------
// Flattening
// -------------------------------------------------------------------

// flattenTolerance is the maximum chord-height deviation, in device
// pixels, allowed between a flattened polyline and the curve it
// approximates.
const flattenTolerance = 0.25

// flattenMaxDepth bounds recursive subdivision: a curve
// that would need deeper subdivision to meet flattenTolerance is
// accepted at whatever error remains at depth 20.
const flattenMaxDepth = 20

// chordHeight returns the distance from control point c1 to the chord
// from p0 to p1, used as the flattening error metric.
func chordHeight(p0, c1, p1 Point) float64 {
	d := p1.Sub(p0)
	length := d.Length()
	if length < 1e-12 {
		return c1.Sub(p0).Length()
	}
	// Distance from c1 to the infinite line through p0,p1.
	return math.Abs(d.Cross(c1.Sub(p0))) / length
}

// FlattenQuadratic returns the polyline approximation of a quadratic
// Bezier (excluding the start point, including the end point).
func FlattenQuadratic(p0, c, p1 Point) []Point {
	var out []Point
	flattenQuad(p0, c, p1, 0, &out)
	return out
}

func flattenQuad(p0, c, p1 Point, depth int, out *[]Point) {
	if depth >= flattenMaxDepth || chordHeight(p0, c, p1) <= flattenTolerance {
		*out = append(*out, p1)
		return
	}
	q := QuadBez{P0: p0, P1: c, P2: p1}
	left, right := q.Subdivide()
	flattenQuad(left.P0, left.P1, left.P2, depth+1, out)
	flattenQuad(right.P0, right.P1, right.P2, depth+1, out)
}

// FlattenCubic returns the polyline approximation of a cubic Bezier
// (excluding the start point, including the end point).
func FlattenCubic(p0, c1, c2, p1 Point) []Point {
	var out []Point
	flattenCubic(p0, c1, c2, p1, 0, &out)
	return out
}

func flattenCubic(p0, c1, c2, p1 Point, depth int, out *[]Point) {
	h1 := chordHeight(p0, c1, p1)
	h2 := chordHeight(p0, c2, p1)
	if depth >= flattenMaxDepth || math.Max(h1, h2) <= flattenTolerance {
		*out = append(*out, p1)
		return
	}
	c := CubicBez{P0: p0, P1: c1, P2: c2, P3: p1}
	left, right := c.Subdivide()
	flattenCubic(left.P0, left.P1, left.P2, left.P3, depth+1, out)
	flattenCubic(right.P0, right.P1, right.P2, right.P3, depth+1, out)
}

// -------------------------------------------------------------------
// Circular arcs
// -------------------------------------------------------------------

// normalizeArcSweep applies the arc sweep rule: when ccw is false,
// end-start is taken modulo 2pi into (0,2pi] after offsetting, and
// symmetrically when ccw is true. An equal start and end therefore
// sweeps the full circle.
func normalizeArcSweep(start, end float64, ccw bool) (float64, float64) {
	const twoPi = 2 * math.Pi
	if !ccw {
		for end <= start {
			end += twoPi
		}
		if end-start > twoPi {
			end = start + twoPi
		}
	} else {
		for end >= start {
			end -= twoPi
		}
		if start-end > twoPi {
			end = start - twoPi
		}
	}
	return start, end
}

// arcCubicSpans splits the already-normalized sweep from start to end
// around (cx,cy) into the fewest equal cubic Bezier spans of at most 90
// degrees each, using the standard k = 4/3*tan(h/4)
// control-point construction. Cubics transform exactly under affine
// maps, so callers may project the control points through a transform
// before flattening.
func arcCubicSpans(cx, cy, r, start, end float64) []CubicBez {
	sweep := end - start
	if sweep == 0 {
		return nil
	}

	const maxSpan = math.Pi / 2
	n := int(math.Ceil(math.Abs(sweep) / maxSpan))
	if n < 1 {
		n = 1
	}
	step := sweep / float64(n)
	k := (4.0 / 3.0) * math.Tan(step/4)

	spans := make([]CubicBez, 0, n)
	a0 := start
	p0 := Point{X: cx + r*math.Cos(a0), Y: cy + r*math.Sin(a0)}
	for i := 0; i < n; i++ {
		a1 := a0 + step
		p1 := Point{X: cx + r*math.Cos(a1), Y: cy + r*math.Sin(a1)}

		t0 := Point{X: -math.Sin(a0), Y: math.Cos(a0)}
		t1 := Point{X: -math.Sin(a1), Y: math.Cos(a1)}

		spans = append(spans, CubicBez{
			P0: p0,
			P1: p0.Add(t0.Mul(r * k)),
			P2: p1.Sub(t1.Mul(r * k)),
			P3: p1,
		})

		a0 = a1
		p0 = p1
	}
	return spans
}
