package gg

import "sort"

// ColorStop is a single gradient color stop: a position (offset) and the
// linear-premultiplied color at that position.
type ColorStop struct {
	Offset float64
	Color  RGBA
}

// gradientStops holds a gradient's color stops in insertion order plus a
// "sorted" flag, per spec.md §9 Design Notes: append is O(1), the first
// lookup after an append sorts.
type gradientStops struct {
	stops  []ColorStop
	sorted bool
}

func (g *gradientStops) addStop(offset float64, c RGBA) {
	g.stops = append(g.stops, ColorStop{Offset: offset, Color: c})
	g.sorted = false
}

func (g *gradientStops) ensureSorted() {
	if g.sorted {
		return
	}
	sort.SliceStable(g.stops, func(i, j int) bool {
		return g.stops[i].Offset < g.stops[j].Offset
	})
	g.sorted = true
}

// colorAt implements spec.md §4.5's gradient stop lookup: extrapolate
// the linear continuation of the first/last segment past the ends,
// interpolate between bracketing stops otherwise, and resolve stops that
// share an offset by insertion order (exact match -> first; strictly
// above -> the one after the last duplicate at that offset).
func (g *gradientStops) colorAt(t float64) RGBA {
	g.ensureSorted()
	n := len(g.stops)
	switch n {
	case 0:
		return Transparent
	case 1:
		return g.stops[0].Color
	}

	for i := 0; i < n; i++ {
		if g.stops[i].Offset == t {
			j := i
			for j > 0 && g.stops[j-1].Offset == t {
				j--
			}
			return g.stops[j].Color
		}
	}

	if t < g.stops[0].Offset {
		return extrapolate(g.stops[0], g.stops[1], t)
	}
	if t > g.stops[n-1].Offset {
		return extrapolate(g.stops[n-2], g.stops[n-1], t)
	}

	lo := 0
	for lo+1 < n && g.stops[lo+1].Offset <= t {
		lo++
	}
	hi := lo + 1
	if hi >= n {
		return g.stops[lo].Color
	}
	span := g.stops[hi].Offset - g.stops[lo].Offset
	if span <= 0 {
		return g.stops[hi].Color
	}
	segT := (t - g.stops[lo].Offset) / span
	return lerpClamped(g.stops[lo].Color, g.stops[hi].Color, segT)
}

// extrapolate continues the line through a,b past their shared segment
// to parameter t (which may lie outside [0,1] relative to a,b), clamping
// the resulting color components to [0,1].
func extrapolate(a, b ColorStop, t float64) RGBA {
	span := b.Offset - a.Offset
	if span == 0 {
		return a.Color
	}
	segT := (t - a.Offset) / span
	return lerpClamped(a.Color, b.Color, segT)
}

func lerpClamped(a, b RGBA, t float64) RGBA {
	return a.Lerp(b, t).Premultiply()
}
