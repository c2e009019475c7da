// Package blend implements the Porter-Duff and "lighter" compositing
// operators over linear-premultiplied color channels, as float64 values
// in [0,1]. All eleven operators from spec.md §4.6 are expressed as pure
// per-channel functions over (source, destination) so the compositor can
// dispatch on Op and apply the result uniformly to R, G, B and A.
package blend

// Op selects a Porter-Duff (or "lighter") compositing operator.
type Op int

const (
	SourceOver Op = iota
	DestinationOver
	SourceIn
	DestinationIn
	SourceOut
	DestinationOut
	SourceAtop
	DestinationAtop
	ExclusiveOr
	Lighter
	SourceCopy
)

// ClearsOutsideSource reports whether this operator can change destination
// pixels that lie entirely outside the source's coverage (source alpha/
// coverage == 0), per spec.md §4.6 and §9 "Design Notes": the compositor
// must iterate the full affected bounding box for these operators instead
// of only the source's rasterized runs.
func (op Op) ClearsOutsideSource() bool {
	switch op {
	case SourceIn, SourceOut, SourceCopy, DestinationIn, DestinationAtop:
		return true
	default:
		return false
	}
}

// Channel applies op to one premultiplied channel value (color or alpha)
// of source and destination, given the source's alpha sa and the
// destination's alpha da (needed by several operators even when blending the
// alpha channel itself, since sa==s and da==d in that case).
func Channel(op Op, s, d, sa, da float64) float64 {
	switch op {
	case SourceOver:
		return s + d*(1-sa)
	case DestinationOver:
		return d + s*(1-da)
	case SourceIn:
		return s * da
	case DestinationIn:
		return d * sa
	case SourceOut:
		return s * (1 - da)
	case DestinationOut:
		return d * (1 - sa)
	case SourceAtop:
		return s*da + d*(1-sa)
	case DestinationAtop:
		return d*sa + s*(1-da)
	case ExclusiveOr:
		return s*(1-da) + d*(1-sa)
	case Lighter:
		v := s + d
		if v > 1 {
			v = 1
		}
		return v
	case SourceCopy:
		return s
	default:
		return s
	}
}

// RGBA is a plain linear-premultiplied color tuple, avoiding an import
// cycle with the root package (which itself wraps blend.RGBA-shaped
// results into its own RGBA type).
type RGBA struct {
	R, G, B, A float64
}

// Composite applies op to an entire premultiplied RGBA pixel pair.
func Composite(op Op, s, d RGBA) RGBA {
	return RGBA{
		R: Channel(op, s.R, d.R, s.A, d.A),
		G: Channel(op, s.G, d.G, s.A, d.A),
		B: Channel(op, s.B, d.B, s.A, d.A),
		A: Channel(op, s.A, d.A, s.A, d.A),
	}
}

// CompositeCoverage blends s over d through op at effective coverage c'
// :
// the operator's output is lerped against the untouched destination by c'.
func CompositeCoverage(op Op, s, d RGBA, coverage float64) RGBA {
	if coverage <= 0 {
		// Outside the source's coverage the source is transparent
		// black; the clearing operators still apply there and wipe the
		// destination, everything else leaves it untouched.
		if op.ClearsOutsideSource() {
			return Composite(op, RGBA{}, d)
		}
		return d
	}
	out := Composite(op, s, d)
	if coverage >= 1 {
		return out
	}
	return RGBA{
		R: d.R + (out.R-d.R)*coverage,
		G: d.G + (out.G-d.G)*coverage,
		B: d.B + (out.B-d.B)*coverage,
		A: d.A + (out.A-d.A)*coverage,
	}
}
