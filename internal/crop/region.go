package crop

import (
	"fmt"
	"image"
	"math"
)

// MinSize is the smallest width and height, in image pixels, that a resize
// may leave the region with.
const MinSize = 50

// centeredFraction is the share of each image axis covered by a freshly
// initialized region.
const centeredFraction = 0.8

// Region is the crop rectangle in native image-pixel coordinates.
// The zero value is an empty region at the origin.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Region) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Region) Bottom() float64 { return r.Y + r.Height }

// TopLeft returns the region's origin.
func (r Region) TopLeft() Point { return Point{X: r.X, Y: r.Y} }

// Empty reports whether the region has no area.
func (r Region) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Rect converts the region to an integer rectangle, rounding every edge to
// the nearest pixel.
func (r Region) Rect() image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.Right())),
		int(math.Round(r.Bottom())),
	)
}

// InitCentered sets the region to floor(80%) of each image axis, centered
// and rounded down.
func (r *Region) InitCentered(imageWidth, imageHeight float64) {
	r.Width = math.Floor(centeredFraction * imageWidth)
	r.Height = math.Floor(centeredFraction * imageHeight)
	r.X = math.Floor((imageWidth - r.Width) / 2)
	r.Y = math.Floor((imageHeight - r.Height) / 2)
}

// Translate moves the region by (dx, dy) without changing its size. The
// result is clamped so the region stays inside the image. A non-positive
// image dimension means that axis is unbounded.
func (r *Region) Translate(dx, dy, imageWidth, imageHeight float64) {
	r.X = clamp(r.X+dx, 0, upperBound(imageWidth)-r.Width)
	r.Y = clamp(r.Y+dy, 0, upperBound(imageHeight)-r.Height)
}

// ResizeFromHandle applies the resize rule of handle h with the image-space
// delta (dx, dy).
func (r *Region) ResizeFromHandle(h Handle, dx, dy, imageWidth, imageHeight float64) error {
	rule, ok := resizeRules[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, int(h))
	}
	*r = rule(*r, dx, dy, Size{Width: imageWidth, Height: imageHeight})
	return nil
}

// Reset zeroes the region.
func (r *Region) Reset() { *r = Region{} }

// ResetToFull makes the region cover the whole image.
func (r *Region) ResetToFull(imageWidth, imageHeight float64) {
	*r = Region{Width: imageWidth, Height: imageHeight}
}

func upperBound(dim float64) float64 {
	if dim <= 0 {
		return math.Inf(1)
	}
	return dim
}
