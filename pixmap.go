package gg

// Pixmap is a straight-alpha sRGB8 RGBA pixel buffer, tightly packed
// (stride == width*4): the external interchange format at the
// draw_image/get_image_data/put_image_data boundary. The canvas's own buffer stays linear premultiplied
// float64; Pixmap exists only to hand bytes across that
// boundary, grounded on the teacher's Pixmap type with its PNG/
// image.Image interop dropped.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap allocates a transparent width×height sRGB8 pixmap.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{width: width, height: height, data: make([]uint8, width*height*4)}
}

// Width and Height return the pixmap's pixel dimensions.
func (p *Pixmap) Width() int  { return p.width }
func (p *Pixmap) Height() int { return p.height }

// Stride returns the row stride in bytes (always width*4 for a Pixmap).
func (p *Pixmap) Stride() int { return p.width * 4 }

// Data returns the raw sRGB8 RGBA bytes, suitable as the src/dst
// argument to Canvas.DrawImage, Canvas.PutImageData or
// Canvas.GetImageData.
func (p *Pixmap) Data() []uint8 { return p.data }

// SetPixel writes a linear-premultiplied color (the canvas's native RGBA)
// at (x,y), clamping it, unpremultiplying it and converting it to
// straight sRGB8 via the canvas's inverse table. Out-of-bounds writes are
// ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	r, g, b, a := c.Premultiply().ToSRGB8()
	i := (y*p.width + x) * 4
	p.data[i], p.data[i+1], p.data[i+2], p.data[i+3] = r, g, b, a
}

// GetPixel reads the pixel at (x,y) back into the canvas's native
// linear-premultiplied representation. Out-of-bounds reads return
// Transparent.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBAFromSRGB8(p.data[i], p.data[i+1], p.data[i+2], p.data[i+3])
}
