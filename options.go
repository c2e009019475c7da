package gg

// CanvasOption configures a Canvas during creation, following the
// functional-options pattern (grounded on the teacher's ContextOption).
//
// Example:
//
//	c := gg.NewCanvas(800, 600, gg.WithBackground(gg.White))
type CanvasOption func(*Canvas)

// WithBackground fills every pixel of the new canvas with color (linear
// premultiplied, clamped to [0,1]) before returning it, instead of leaving
// it transparent.
func WithBackground(color RGBA) CanvasOption {
	return func(canvas *Canvas) {
		color = color.Premultiply()
		for y := 0; y < canvas.height; y++ {
			for x := 0; x < canvas.width; x++ {
				canvas.buf.Set(x, y, color.R, color.G, color.B, color.A)
			}
		}
	}
}

// WithInitialFillStyle sets the canvas's initial fill paint, overriding
// the default opaque black.
func WithInitialFillStyle(p Paint) CanvasOption {
	return func(canvas *Canvas) { canvas.state.fillPaint = p }
}

// WithInitialStrokeStyle sets the canvas's initial stroke paint,
// overriding the default opaque black.
func WithInitialStrokeStyle(p Paint) CanvasOption {
	return func(canvas *Canvas) { canvas.state.strokePaint = p }
}
