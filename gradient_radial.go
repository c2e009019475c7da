package gg

// RadialGradient is the Paint variant for the general two-circle cone
// gradient.
type RadialGradient struct {
	C0 Point
	R0 float64
	C1 Point
	R1 float64
	gradientStops
}

// NewRadialGradient creates a radial gradient between two circles.
// Negative radii are clamped to zero.
func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64) *RadialGradient {
	if r0 < 0 {
		r0 = 0
	}
	if r1 < 0 {
		r1 = 0
	}
	return &RadialGradient{C0: Pt(x0, y0), R0: r0, C1: Pt(x1, y1), R1: r1}
}

func (*RadialGradient) paintMarker() {}

// AddColorStop appends a color stop at offset.
func (g *RadialGradient) AddColorStop(offset float64, c RGBA) *RadialGradient {
	g.addStop(offset, c)
	return g
}

// ColorAt implements Paint per spec.md §4.5's general cone formulation:
// treat the two circles as a cone Ct = lerp(C0,C1,t), radius(t) =
// lerp(R0,R1,t); solve for the largest t ∈ [0,1] with radius(t) ≥ 0 such
// that the pixel lies on the circle's boundary (i.e. is swept by the
// cone at that t). No such t means fully transparent.
func (g *RadialGradient) ColorAt(x, y float64) RGBA {
	t, ok := g.solveT(x, y)
	if !ok {
		return Transparent
	}
	return g.colorAt(t)
}

func (g *RadialGradient) solveT(x, y float64) (float64, bool) {
	dx := g.C1.X - g.C0.X
	dy := g.C1.Y - g.C0.Y
	dr := g.R1 - g.R0
	pdx := x - g.C0.X
	pdy := y - g.C0.Y

	a := dx*dx + dy*dy - dr*dr
	b := -2 * (dx*pdx + dy*pdy + g.R0*dr)
	c := pdx*pdx + pdy*pdy - g.R0*g.R0

	// SolveQuadratic degrades to the linear case itself when a is zero
	// or vanishing, and returns roots in ascending order; the largest
	// valid t wins, the outermost circle through the pixel.
	roots := SolveQuadratic(a, b, c)
	for i := len(roots) - 1; i >= 0; i-- {
		if t, ok := clampValidT(roots[i], g.R0, dr); ok {
			return t, true
		}
	}
	return 0, false
}

// clampValidT reports whether t lies in [0,1] and yields a nonnegative
// cone radius there.
func clampValidT(t, r0, dr float64) (float64, bool) {
	if t < 0 || t > 1 {
		return 0, false
	}
	if r0+t*dr < 0 {
		return 0, false
	}
	return t, true
}
