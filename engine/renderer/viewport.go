package renderer

import "github.com/Carmen-Shannon/oxy-mobile/engine/camera"

// Viewport is a rectangular region of the surface in pixels.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the viewport covers no pixels.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// SplitViewports divides the surface into three side-by-side viewports of equal width,
// one per camera, left to right. Widths use integer division and the last viewport
// absorbs the remainder so the three always cover the full surface width.
//
// Parameters:
//   - width, height: surface size in pixels
//
// Returns:
//   - [camera.NumWindows]Viewport: the viewports in camera.WindowIndex order
func SplitViewports(width, height int) [camera.NumWindows]Viewport {
	var out [camera.NumWindows]Viewport
	width, height = max(width, 0), max(height, 0)
	third := width / camera.NumWindows
	for i := range out {
		out[i] = Viewport{X: i * third, Y: 0, Width: third, Height: height}
	}
	out[camera.NumWindows-1].Width = width - (camera.NumWindows-1)*third
	return out
}
