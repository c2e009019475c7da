package gg

// LinearGradient is the Paint variant for a linear color transition
// between two points.
type LinearGradient struct {
	P0, P1 Point
	gradientStops
}

// NewLinearGradient creates a linear gradient between (x0,y0) and
// (x1,y1). The points are in whatever space ColorAt is sampled in; the
// canvas samples its gradients in user space under the draw-time
// transform.
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{P0: Pt(x0, y0), P1: Pt(x1, y1)}
}

func (*LinearGradient) paintMarker() {}

// AddColorStop appends a color stop at offset.
func (g *LinearGradient) AddColorStop(offset float64, c RGBA) *LinearGradient {
	g.addStop(offset, c)
	return g
}

// ColorAt implements Paint per spec.md §4.5: t = ((p-p0)·(p1-p0)) /
// |p1-p0|²; if p1==p0, sample t=0.
func (g *LinearGradient) ColorAt(x, y float64) RGBA {
	d := g.P1.Sub(g.P0)
	lenSq := d.LengthSquared()
	if lenSq == 0 {
		return g.colorAt(0)
	}
	p := Pt(x, y).Sub(g.P0)
	t := p.Dot(d) / lenSq
	return g.colorAt(t)
}
