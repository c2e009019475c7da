package filter

import (
	"math"

	iimage "github.com/anselm-rasterizer/canvas2d/internal/image"
)

// BoxRadius returns the per-pass box-filter radius approximating a
// Gaussian of standard deviation sigma, per spec.md §4.7: "r = round(σ·
// √3) (Wells 1986)".
func BoxRadius(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	r := int(math.Round(sigma * math.Sqrt(3)))
	if r < 0 {
		r = 0
	}
	return r
}

// ThreePassBoxBlur blurs buf in place with three successive passes of a
// separable (horizontal-then-vertical) box filter of the given radius,
// approximating a Gaussian blur. A radius of zero is a
// no-op.
func ThreePassBoxBlur(buf *iimage.Buf, radius int) {
	if buf == nil || radius <= 0 || buf.W == 0 || buf.H == 0 {
		return
	}
	for pass := 0; pass < 3; pass++ {
		boxBlurHorizontal(buf, radius)
		boxBlurVertical(buf, radius)
	}
}

func boxBlurHorizontal(buf *iimage.Buf, radius int) {
	w, h := buf.W, buf.H
	row := make([]float64, w*4)
	out := make([]float64, w*4)
	for y := 0; y < h; y++ {
		base := y * w * 4
		copy(row, buf.Pix[base:base+w*4])
		for x := 0; x < w; x++ {
			lo := x - radius
			if lo < 0 {
				lo = 0
			}
			hi := x + radius
			if hi > w-1 {
				hi = w - 1
			}
			n := float64(hi - lo + 1)
			var r, g, b, a float64
			for k := lo; k <= hi; k++ {
				r += row[k*4]
				g += row[k*4+1]
				b += row[k*4+2]
				a += row[k*4+3]
			}
			out[x*4] = r / n
			out[x*4+1] = g / n
			out[x*4+2] = b / n
			out[x*4+3] = a / n
		}
		copy(buf.Pix[base:base+w*4], out)
	}
}

func boxBlurVertical(buf *iimage.Buf, radius int) {
	w, h := buf.W, buf.H
	col := make([]float64, h*4)
	out := make([]float64, h*4)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			i := (y*w + x) * 4
			col[y*4] = buf.Pix[i]
			col[y*4+1] = buf.Pix[i+1]
			col[y*4+2] = buf.Pix[i+2]
			col[y*4+3] = buf.Pix[i+3]
		}
		for y := 0; y < h; y++ {
			lo := y - radius
			if lo < 0 {
				lo = 0
			}
			hi := y + radius
			if hi > h-1 {
				hi = h - 1
			}
			n := float64(hi - lo + 1)
			var r, g, b, a float64
			for k := lo; k <= hi; k++ {
				r += col[k*4]
				g += col[k*4+1]
				b += col[k*4+2]
				a += col[k*4+3]
			}
			out[y*4] = r / n
			out[y*4+1] = g / n
			out[y*4+2] = b / n
			out[y*4+3] = a / n
		}
		for y := 0; y < h; y++ {
			i := (y*w + x) * 4
			buf.Pix[i] = out[y*4]
			buf.Pix[i+1] = out[y*4+1]
			buf.Pix[i+2] = out[y*4+2]
			buf.Pix[i+3] = out[y*4+3]
		}
	}
}
