package gg

import (
	"math"

	"github.com/anselm-rasterizer/canvas2d/internal/raster"
)

// Subpath is a contiguous ordered polyline within a Path, already flattened to device-space line segments.
type Subpath struct {
	Points []Point
	Closed bool
}

// Path is the device-space path buffer described by spec.md §3: a
// sequence of subpaths, each an ordered polyline, plus a "needs new
// subpath" sentinel. Every point appended to a Path is assumed to
// already be in device space — the Canvas transforms points before
// calling into Path.
type Path struct {
	subpaths []*Subpath

	current    Point
	hasCurrent bool

	// needsNewSubpath is set after ClosePath (or at construction): the
	// next drawing operation must start a fresh subpath rather than
	// extend the closed one, even though "current point" is preserved.
	needsNewSubpath bool

	// bounds is the union of every appended point plus the exact
	// bounding box of every curve fed through QuadraticTo/CubicTo, so
	// it stays conservative even where the flattened polyline
	// undershoots a curve's bulge.
	bounds    Rect
	hasBounds bool
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{needsNewSubpath: true}
}

// BeginPath clears the path back to its empty, no-current-point state.
func (p *Path) BeginPath() {
	p.subpaths = nil
	p.current = Point{}
	p.hasCurrent = false
	p.needsNewSubpath = true
	p.bounds = Rect{}
	p.hasBounds = false
}

func (p *Path) growPoint(pt Point) {
	if !p.hasBounds {
		p.bounds = NewRect(pt, pt)
		p.hasBounds = true
		return
	}
	p.bounds = p.bounds.Union(NewRect(pt, pt))
}

func (p *Path) growRect(r Rect) {
	if !p.hasBounds {
		p.bounds = r
		p.hasBounds = true
		return
	}
	p.bounds = p.bounds.Union(r)
}

// Bounds returns the path's conservative device-space bounding box; ok
// is false for an empty path.
func (p *Path) Bounds() (bounds Rect, ok bool) {
	return p.bounds, p.hasBounds
}

// IsEmpty reports whether the path has no subpaths.
func (p *Path) IsEmpty() bool { return len(p.subpaths) == 0 }

// Subpaths returns the path's subpaths.
func (p *Path) Subpaths() []*Subpath { return p.subpaths }

// HasCurrentPoint reports whether a current point is defined.
func (p *Path) HasCurrentPoint() bool { return p.hasCurrent }

// CurrentPoint returns the current point (device space).
func (p *Path) CurrentPoint() Point { return p.current }

func (p *Path) openSubpath(start Point) *Subpath {
	sp := &Subpath{Points: []Point{start}}
	p.subpaths = append(p.subpaths, sp)
	p.needsNewSubpath = false
	return sp
}

func (p *Path) lastSubpath() *Subpath {
	if len(p.subpaths) == 0 {
		return nil
	}
	return p.subpaths[len(p.subpaths)-1]
}

// MoveTo starts a new subpath at (x,y) in device space.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.current = pt
	p.hasCurrent = true
	p.growPoint(pt)
	p.openSubpath(pt)
}

// ensureSubpath implements the spec.md §4.2 auto-move-to rule: an
// operation that requires a current point, issued right after BeginPath
// or after ClosePath on an otherwise-empty path, behaves as a MoveTo to
// its first point instead.
func (p *Path) ensureSubpath(fallback Point) *Subpath {
	if p.needsNewSubpath || len(p.subpaths) == 0 {
		return p.openSubpath(fallback)
	}
	sp := p.lastSubpath()
	if sp.Closed {
		return p.openSubpath(fallback)
	}
	return sp
}

// appendLine appends pt to the current subpath, auto-opening one at the
// current point (or pt itself, if there is no current point) if needed.
func (p *Path) appendLine(pt Point) {
	start := pt
	if p.hasCurrent {
		start = p.current
	}
	sp := p.ensureSubpath(start)
	if len(sp.Points) == 0 {
		sp.Points = append(sp.Points, start)
	}
	sp.Points = append(sp.Points, pt)
	p.growPoint(start)
	p.growPoint(pt)
	p.current = pt
	p.hasCurrent = true
}

// LineTo appends a line segment to (x,y) in device space.
func (p *Path) LineTo(x, y float64) {
	p.appendLine(Pt(x, y))
}

// QuadraticTo flattens a quadratic Bezier from the current point through
// (cx,cy) to (x,y), appending line segments to the current subpath.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(cx, cy)
	}
	start := p.current
	q := QuadBez{P0: start, P1: Pt(cx, cy), P2: Pt(x, y)}
	p.growRect(q.BoundingBox())
	for _, pt := range FlattenQuadratic(q.P0, q.P1, q.P2) {
		p.appendLine(pt)
	}
}

// CubicTo flattens a cubic Bezier from the current point through the two
// control points to (x,y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(c1x, c1y)
	}
	start := p.current
	c := CubicBez{P0: start, P1: Pt(c1x, c1y), P2: Pt(c2x, c2y), P3: Pt(x, y)}
	p.growRect(c.BoundingBox())
	for _, pt := range FlattenCubic(c.P0, c.P1, c.P2, c.P3) {
		p.appendLine(pt)
	}
}

// ClosePath closes the current subpath with a line back to its start
// point. A no-op on an empty path or an already-closed subpath
// .
func (p *Path) ClosePath() {
	sp := p.lastSubpath()
	if sp == nil || sp.Closed || len(sp.Points) == 0 {
		p.needsNewSubpath = true
		return
	}
	sp.Closed = true
	p.current = sp.Points[0]
	p.needsNewSubpath = true
}

// Rectangle adds a closed rectangular subpath.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.ClosePath()
}

// ArcTo implements spec.md §4.2 arc_to(x1,y1,x2,y2,r): constructs the
// unique circle of radius r tangent to the two half-lines from (x1,y1)
// to the current point and to (x2,y2), appending a line to the first
// tangent point and an arc to the second. Falls back to a straight
// LineTo(x1,y1) when r==0, the three points are collinear, or there is
// no current point. Negative r is a no-op.
func (p *Path) ArcTo(x1, y1, x2, y2, r float64) {
	if r < 0 {
		return
	}
	if !p.hasCurrent {
		p.MoveTo(x1, y1)
		return
	}
	p0 := p.current
	p1 := Pt(x1, y1)
	p2 := Pt(x2, y2)

	v0 := p0.Sub(p1)
	v1 := p2.Sub(p1)
	len0 := v0.Length()
	len1 := v1.Length()

	if r == 0 || len0 < 1e-12 || len1 < 1e-12 {
		p.LineTo(x1, y1)
		return
	}

	cosTheta := v0.Dot(v1) / (len0 * len1)
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	if math.Abs(math.Abs(cosTheta)-1) < 1e-9 {
		// Collinear: straight line to the corner.
		p.LineTo(x1, y1)
		return
	}

	theta := math.Acos(cosTheta)
	dist := r / math.Tan(theta/2)

	t0 := p1.Add(v0.Mul(math.Min(dist/len0, 1)))
	t1 := p1.Add(v1.Mul(math.Min(dist/len1, 1)))

	// Center of the tangent circle: along the internal bisector, at
	// distance r/sin(theta/2) from the corner.
	bis := v0.Normalize().Add(v1.Normalize())
	if bis.Length() < 1e-12 {
		p.LineTo(x1, y1)
		return
	}
	bis = bis.Normalize()
	centerDist := r / math.Sin(theta/2)
	center := p1.Add(bis.Mul(centerDist))

	a0 := math.Atan2(t0.Y-center.Y, t0.X-center.X)
	a1 := math.Atan2(t1.Y-center.Y, t1.X-center.X)

	// Choose the sweep direction that keeps the arc on the side of the
	// corner away from p1 (the short way between the two tangent points
	// that does not pass through the corner).
	ccw := v0.Cross(v1) > 0

	p.LineTo(t0.X, t0.Y)
	p.arcInternal(center.X, center.Y, r, a0, a1, ccw)
}

// Arc implements spec.md §4.2 arc(x,y,r,start,end,ccw): emits the
// flattened sweep from start to end around (x,y), normalizing the sweep
// per the spec's exact modulo rule. Negative r is a no-op.
func (p *Path) Arc(x, y, r, start, end float64, ccw bool) {
	if r < 0 {
		return
	}
	cx0, cy0 := x+r*math.Cos(start), y+r*math.Sin(start)
	if !p.hasCurrent || p.needsNewSubpath {
		p.MoveTo(cx0, cy0)
	} else {
		p.LineTo(cx0, cy0)
	}
	p.arcInternal(x, y, r, start, end, ccw)
}

// arcInternal flattens and appends the arc sweep without issuing an
// initial move/line to the start point (the caller positions it).
func (p *Path) arcInternal(cx, cy, r, start, end float64, ccw bool) {
	start, end = normalizeArcSweep(start, end, ccw)
	for _, span := range arcCubicSpans(cx, cy, r, start, end) {
		for _, pt := range FlattenCubic(span.P0, span.P1, span.P2, span.P3) {
			p.appendLine(pt)
		}
	}
}

// Clone deep-copies the path, including every subpath's point slice.
func (p *Path) Clone() *Path {
	np := &Path{
		current:         p.current,
		hasCurrent:      p.hasCurrent,
		needsNewSubpath: p.needsNewSubpath,
		bounds:          p.bounds,
		hasBounds:       p.hasBounds,
	}
	np.subpaths = make([]*Subpath, len(p.subpaths))
	for i, sp := range p.subpaths {
		pts := make([]Point, len(sp.Points))
		copy(pts, sp.Points)
		np.subpaths[i] = &Subpath{Points: pts, Closed: sp.Closed}
	}
	return np
}

// AsLineSegments flattens every subpath into a list of device-space line
// segments for the rasterizer, implicitly closing each subpath so an open
// subpath still produces a well-defined nonzero-rule interior for fills
// .
func (p *Path) AsLineSegments() []raster.Segment {
	var segs []raster.Segment
	for _, sp := range p.subpaths {
		n := len(sp.Points)
		if n < 2 {
			continue
		}
		for i := 0; i < n-1; i++ {
			segs = append(segs, raster.Segment{A: toRasterPoint(sp.Points[i]), B: toRasterPoint(sp.Points[i+1])})
		}
		last := sp.Points[n-1]
		first := sp.Points[0]
		if last != first {
			segs = append(segs, raster.Segment{A: toRasterPoint(last), B: toRasterPoint(first)})
		}
	}
	return segs
}

func toRasterPoint(p Point) raster.Point { return raster.Point{X: p.X, Y: p.Y} }
