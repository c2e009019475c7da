// Package image holds the canvas's internal bitmap buffer and the bilinear
// pattern sampler used by draw_image and by bitmap-pattern paint.
package image

// Buf is a linear-premultiplied RGBA float64 image buffer. Pattern and
// draw_image sources are converted into this representation once, at set
// time, so that every subsequent sample composites in the same linear
// space as the rest of the pipeline.
type Buf struct {
	W, H int
	Pix  []float64 // len == W*H*4, R,G,B,A per pixel
}

// NewBuf allocates a transparent W×H buffer.
func NewBuf(w, h int) *Buf {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Buf{W: w, H: h, Pix: make([]float64, w*h*4)}
}

// At returns the pixel at (x,y), or transparent black outside bounds.
func (b *Buf) At(x, y int) (r, g, bl, a float64) {
	if b == nil || x < 0 || x >= b.W || y < 0 || y >= b.H {
		return 0, 0, 0, 0
	}
	i := (y*b.W + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Set writes a pixel at (x,y). Out-of-bounds writes are ignored.
func (b *Buf) Set(x, y int, r, g, bl, a float64) {
	if b == nil || x < 0 || x >= b.W || y < 0 || y >= b.H {
		return
	}
	i := (y*b.W + x) * 4
	b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = r, g, bl, a
}
