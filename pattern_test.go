package gg

import (
	"math"
	"testing"
)

// checker2x2 builds a 2x2 sRGB8 source: white top-left and bottom-right,
// black elsewhere, fully opaque.
func checker2x2() []byte {
	w, b := byte(255), byte(0)
	return []byte{
		w, w, w, 255, b, b, b, 255,
		b, b, b, 255, w, w, w, 255,
	}
}

func TestPatternRepeatBothTiles(t *testing.T) {
	p := NewPatternFromSRGB8(checker2x2(), 2, 2, 8, RepeatBoth, Identity())
	base := p.ColorAt(0.5, 0.5)
	if base.A != 1 {
		t.Fatalf("pattern sample alpha = %v, want 1", base.A)
	}
	for k := -2; k <= 2; k++ {
		got := p.ColorAt(0.5+float64(k)*2, 0.5)
		if math.Abs(got.R-base.R) > 1e-9 || math.Abs(got.A-base.A) > 1e-9 {
			t.Fatalf("repeat sample at k=%d = %+v, want %+v", k, got, base)
		}
	}
}

func TestPatternRepeatXOnly(t *testing.T) {
	p := NewPatternFromSRGB8(checker2x2(), 2, 2, 8, RepeatX, Identity())
	base := p.ColorAt(0.5, 0.5)
	if got := p.ColorAt(4.5, 0.5); math.Abs(got.R-base.R) > 1e-9 {
		t.Fatalf("repeat_x must tile in x: %+v vs %+v", got, base)
	}
	if got := p.ColorAt(0.5, 4.5); got != Transparent {
		t.Fatalf("repeat_x outside y bounds = %+v, want transparent", got)
	}
}

func TestPatternNoRepeatOutsideIsTransparent(t *testing.T) {
	p := NewPatternFromSRGB8(checker2x2(), 2, 2, 8, RepeatNone, Identity())
	if got := p.ColorAt(0.5, 0.5); got.A != 1 {
		t.Fatalf("in-bounds sample alpha = %v, want 1", got.A)
	}
	for _, pt := range [][2]float64{{-1, 0.5}, {3, 0.5}, {0.5, -1}, {0.5, 3}} {
		if got := p.ColorAt(pt[0], pt[1]); got != Transparent {
			t.Fatalf("out-of-bounds sample %v = %+v, want transparent", pt, got)
		}
	}
}

func TestPatternBilinearBlends(t *testing.T) {
	p := NewPatternFromSRGB8(checker2x2(), 2, 2, 8, RepeatNone, Identity())
	// Between the white (0,0) and black (1,0) pixel centers the sample
	// must fall strictly between the two.
	mid := p.ColorAt(1.0, 0.5)
	white := p.ColorAt(0.5, 0.5)
	if mid.R <= 0 || mid.R >= white.R {
		t.Fatalf("bilinear midpoint R = %v, want strictly between 0 and %v", mid.R, white.R)
	}
}

func TestPatternLocalTransform(t *testing.T) {
	// A 2x-scale local transform maps device (1,1) back to pattern
	// (0.5,0.5), the first pixel's center.
	p := NewPatternFromSRGB8(checker2x2(), 2, 2, 8, RepeatNone, Scale(2, 2))
	got := p.ColorAt(1.0, 1.0)
	want := NewPatternFromSRGB8(checker2x2(), 2, 2, 8, RepeatNone, Identity()).ColorAt(0.5, 0.5)
	if math.Abs(got.R-want.R) > 1e-9 {
		t.Fatalf("scaled pattern sample = %+v, want %+v", got, want)
	}
}

func TestSetPatternCopiesPixels(t *testing.T) {
	src := checker2x2()
	c := NewCanvas(8, 8)
	c.SetPattern(FillStyle, src, 2, 2, 8, RepeatBoth)
	p, ok := c.paintFor(FillStyle).(*PatternPaint)
	if !ok {
		t.Fatalf("fill style = %T, want *PatternPaint", c.paintFor(FillStyle))
	}
	before := p.ColorAt(0.5, 0.5)
	for i := range src {
		src[i] = 0
	}
	after := p.ColorAt(0.5, 0.5)
	if before != after {
		t.Fatal("pattern must copy source pixels at set time")
	}
}

func TestFillWithPattern(t *testing.T) {
	c := NewCanvas(4, 4)
	c.SetPattern(FillStyle, checker2x2(), 2, 2, 8, RepeatBoth)
	c.FillRect(0, 0, 4, 4)
	if px := pixelAt(c, 0, 0); px[3] != 255 {
		t.Fatalf("pattern fill pixel alpha = %d, want 255", px[3])
	}
	// The checker repeats with period 2 in both axes.
	if a, b := pixelAt(c, 0, 0), pixelAt(c, 2, 2); a != b {
		t.Fatalf("pattern period-2 repeat broken: %v vs %v", a, b)
	}
}
