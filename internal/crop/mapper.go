package crop

// Mapper converts display-space positions to image-pixel positions.
type Mapper struct {
	ScaleX float64
	ScaleY float64
}

// NewMapper builds a Mapper from the rendered display size and the native
// image size. It fails with ErrMissingSurfaceContext when the display has no
// area and with ErrMissingImage when the image has none, so callers never
// divide by zero.
func NewMapper(display, native Size) (Mapper, error) {
	if !display.Valid() {
		return Mapper{}, ErrMissingSurfaceContext
	}
	if !native.Valid() {
		return Mapper{}, ErrMissingImage
	}
	return Mapper{
		ScaleX: native.Width / display.Width,
		ScaleY: native.Height / display.Height,
	}, nil
}

// ToImage maps a surface-relative display position to image pixels.
func (m Mapper) ToImage(p Point) Point {
	return Point{X: p.X * m.ScaleX, Y: p.Y * m.ScaleY}
}

// ToDisplay maps an image-pixel position back to display space.
func (m Mapper) ToDisplay(p Point) Point {
	return Point{X: p.X / m.ScaleX, Y: p.Y / m.ScaleY}
}

// Delta maps a display-space displacement to image pixels.
func (m Mapper) Delta(dx, dy float64) (float64, float64) {
	return dx * m.ScaleX, dy * m.ScaleY
}
