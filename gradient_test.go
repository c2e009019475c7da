package gg

import (
	"math"
	"testing"
)

func approxRGBA(a, b RGBA, eps float64) bool {
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

func TestLinearGradientProjection(t *testing.T) {
	g := NewLinearGradient(0, 0, 100, 0)
	g.AddColorStop(0, RGBA{R: 1, G: 0, B: 0, A: 1})
	g.AddColorStop(1, RGBA{R: 0, G: 0, B: 1, A: 1})

	mid := g.ColorAt(50, 123) // y is irrelevant for a horizontal gradient
	if !approxRGBA(mid, RGBA{R: 0.5, G: 0, B: 0.5, A: 1}, 1e-9) {
		t.Fatalf("midpoint = %+v, want half red half blue", mid)
	}
	if got := g.ColorAt(0, 0); !approxRGBA(got, RGBA{R: 1, A: 1}, 1e-9) {
		t.Fatalf("t=0 = %+v, want red", got)
	}
}

func TestLinearGradientDegenerateSamplesT0(t *testing.T) {
	g := NewLinearGradient(5, 5, 5, 5)
	g.AddColorStop(0, RGBA{R: 1, A: 1})
	g.AddColorStop(1, RGBA{B: 1, A: 1})
	if got := g.ColorAt(99, 99); !approxRGBA(got, RGBA{R: 1, A: 1}, 1e-9) {
		t.Fatalf("degenerate gradient = %+v, want the t=0 color", got)
	}
}

func TestGradientExtrapolation(t *testing.T) {
	g := NewLinearGradient(0, 0, 100, 0)
	g.AddColorStop(0.25, RGBA{R: 0.25, A: 1})
	g.AddColorStop(0.75, RGBA{R: 0.75, A: 1})

	// Inside the segment red tracks t exactly, so the linear
	// continuation below 0.25 gives red == t, clamped at 0.
	if got := g.ColorAt(10, 0); !approxRGBA(got, RGBA{R: 0.10, A: 1}, 1e-9) {
		t.Fatalf("t=0.10 extrapolation = %+v, want red 0.10", got)
	}
	if got := g.ColorAt(90, 0); !approxRGBA(got, RGBA{R: 0.90, A: 1}, 1e-9) {
		t.Fatalf("t=0.90 extrapolation = %+v, want red 0.90", got)
	}
	// Far past the ends the extrapolated components clamp to [0,1].
	if got := g.ColorAt(-100, 0); got.R != 0 {
		t.Fatalf("extrapolated red should clamp at 0, got %+v", got)
	}
	if got := g.ColorAt(300, 0); got.R != 1 {
		t.Fatalf("extrapolated red should clamp at 1, got %+v", got)
	}
}

func TestGradientSingleStop(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0)
	g.AddColorStop(0.5, RGBA{G: 1, A: 1})
	for _, x := range []float64{-5, 0, 5, 20} {
		if got := g.ColorAt(x, 0); !approxRGBA(got, RGBA{G: 1, A: 1}, 1e-9) {
			t.Fatalf("single-stop gradient at x=%v = %+v", x, got)
		}
	}
}

func TestGradientDuplicateOffsets(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0)
	g.AddColorStop(0, RGBA{R: 1, A: 1})
	g.AddColorStop(0.5, RGBA{G: 1, A: 1})
	g.AddColorStop(0.5, RGBA{B: 1, A: 1})
	g.AddColorStop(1, RGBA{A: 1})

	// Exactly at the shared offset: the first stop in insertion order.
	at := g.ColorAt(5, 0)
	if !approxRGBA(at, RGBA{G: 1, A: 1}, 1e-9) {
		t.Fatalf("sample at duplicate offset = %+v, want the first inserted stop", at)
	}
	// Strictly above: interpolation starts from the second duplicate.
	above := g.ColorAt(5.5, 0)
	if above.G >= 0.5 || above.B < 0.5 {
		t.Fatalf("sample just above duplicate offset = %+v, want blue-dominated", above)
	}
}

func TestRadialGradientConcentric(t *testing.T) {
	g := NewRadialGradient(50, 50, 0, 50, 50, 10)
	g.AddColorStop(0, RGBA{R: 1, A: 1})
	g.AddColorStop(1, RGBA{B: 1, A: 1})

	center := g.ColorAt(50, 50)
	if !approxRGBA(center, RGBA{R: 1, A: 1}, 1e-6) {
		t.Fatalf("center = %+v, want the t=0 color", center)
	}
	edge := g.ColorAt(60, 50)
	if !approxRGBA(edge, RGBA{B: 1, A: 1}, 1e-6) {
		t.Fatalf("radius-10 ring = %+v, want the t=1 color", edge)
	}
	halfway := g.ColorAt(55, 50)
	if !approxRGBA(halfway, RGBA{R: 0.5, B: 0.5, A: 1}, 1e-6) {
		t.Fatalf("halfway ring = %+v, want the blend", halfway)
	}
}

func TestRadialGradientOutsideConeIsTransparent(t *testing.T) {
	// Two equal-radius circles side by side form a cylinder: points far
	// off its axis are outside the cone for every t.
	g := NewRadialGradient(0, 0, 5, 100, 0, 5)
	g.AddColorStop(0, RGBA{R: 1, A: 1})
	g.AddColorStop(1, RGBA{B: 1, A: 1})
	if got := g.ColorAt(50, 50); got != Transparent {
		t.Fatalf("point outside the cone = %+v, want transparent", got)
	}
	if got := g.ColorAt(50, 0); got == Transparent {
		t.Fatalf("point on the axis should be painted")
	}
}

func TestRadialGradientPicksLargestT(t *testing.T) {
	// A growing cone: a point inside both end circles must sample the
	// largest valid t, the outermost circle through it.
	g := NewRadialGradient(0, 0, 10, 0, 0, 20)
	g.AddColorStop(0, RGBA{R: 1, A: 1})
	g.AddColorStop(1, RGBA{B: 1, A: 1})
	got := g.ColorAt(15, 0)
	if !approxRGBA(got, RGBA{R: 0.5, B: 0.5, A: 1}, 1e-6) {
		t.Fatalf("r=15 ring = %+v, want t=0.5 blend", got)
	}
}

func TestSetGradientOnStyleTarget(t *testing.T) {
	c := NewCanvas(16, 16)
	c.SetLinearGradient(StrokeStyle, 0, 0, 16, 0)
	c.AddColorStop(StrokeStyle, 0, 1, 1, 1, 1)
	c.AddColorStop(StrokeStyle, 1, 1, 1, 1, 0)
	if _, ok := c.paintFor(StrokeStyle).(*LinearGradient); !ok {
		t.Fatalf("stroke style = %T, want *LinearGradient", c.paintFor(StrokeStyle))
	}
	// Fill style untouched.
	if _, ok := c.paintFor(FillStyle).(SolidPaint); !ok {
		t.Fatalf("fill style = %T, want SolidPaint", c.paintFor(FillStyle))
	}
}

func TestAddColorStopRejectsOutOfRangeOffset(t *testing.T) {
	c := NewCanvas(8, 8)
	c.SetLinearGradient(FillStyle, 0, 0, 10, 0)
	c.AddColorStop(FillStyle, 0, 1, 0, 0, 1)
	c.AddColorStop(FillStyle, 1, 0, 0, 1, 1)
	c.AddColorStop(FillStyle, -1, 0, 1, 0, 1)
	c.AddColorStop(FillStyle, 2, 0, 1, 0, 1)

	g, ok := c.paintFor(FillStyle).(*LinearGradient)
	if !ok {
		t.Fatalf("fill style = %T, want *LinearGradient", c.paintFor(FillStyle))
	}
	// The out-of-range stops must not exist: the ends still sample the
	// red and blue stops, with no green anywhere.
	if got := g.ColorAt(0, 0); got.G != 0 || !approxRGBA(got, RGBA{R: 1, A: 1}, 1e-6) {
		t.Fatalf("t=0 = %+v, want pure red", got)
	}
	if got := g.ColorAt(10, 0); got.G != 0 || !approxRGBA(got, RGBA{B: 1, A: 1}, 1e-6) {
		t.Fatalf("t=1 = %+v, want pure blue", got)
	}
}

func TestSetRadialGradientRejectsNegativeRadius(t *testing.T) {
	c := NewCanvas(8, 8)
	c.SetRadialGradient(FillStyle, 4, 4, 0, 4, 4, 3)
	first := c.paintFor(FillStyle)
	c.SetRadialGradient(FillStyle, 0, 0, -10, 8, 8, 10)
	if c.paintFor(FillStyle) != first {
		t.Fatal("negative radius must invalidate the call and keep the previous gradient")
	}
}

func TestAddColorStopIgnoredForSolidPaint(t *testing.T) {
	c := NewCanvas(8, 8)
	c.SetColor(FillStyle, 1, 0, 0, 1)
	c.AddColorStop(FillStyle, 0.5, 0, 1, 0, 1)
	p, ok := c.paintFor(FillStyle).(SolidPaint)
	if !ok {
		t.Fatalf("fill style = %T, want SolidPaint", c.paintFor(FillStyle))
	}
	if p.Color != RGBStraight(1, 0, 0, 1) {
		t.Fatalf("solid paint changed by add_color_stop: %+v", p.Color)
	}
}
