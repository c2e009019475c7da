package image

import "math"

// SampleBilinear performs bilinear interpolation at pixel-space coordinates
// (x,y), where pixel i covers [i,i+1) and its center lies at i+0.5, per
// spec.md §4.5 ("sampling is bilinear with clamp at edges of sampled cell").
// Coordinates outside [0,w)×[0,h) are clamped to the edge pixel.
func SampleBilinear(b *Buf, x, y float64) (r, g, bl, a float64) {
	if b == nil || b.W == 0 || b.H == 0 {
		return 0, 0, 0, 0
	}

	fx := x - 0.5
	fy := y - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)
	x1 := x0 + 1
	y1 := y0 + 1

	x0 = clampInt(x0, 0, b.W-1)
	x1 = clampInt(x1, 0, b.W-1)
	y0 = clampInt(y0, 0, b.H-1)
	y1 = clampInt(y1, 0, b.H-1)

	r00, g00, b00, a00 := b.At(x0, y0)
	r10, g10, b10, a10 := b.At(x1, y0)
	r01, g01, b01, a01 := b.At(x0, y1)
	r11, g11, b11, a11 := b.At(x1, y1)

	r = lerp2D(r00, r10, r01, r11, tx, ty)
	g = lerp2D(g00, g10, g01, g11, tx, ty)
	bl = lerp2D(b00, b10, b01, b11, tx, ty)
	a = lerp2D(a00, a10, a01, a11, tx, ty)
	return
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	top := lerp(v00, v10, tx)
	bot := lerp(v01, v11, tx)
	return lerp(top, bot, ty)
}
