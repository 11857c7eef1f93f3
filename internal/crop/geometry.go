package crop

// Point is a position in either display or image space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

// Surface describes the on-screen display surface: its bounding position in
// raw pointer coordinates and its current rendered size.
type Surface struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size returns the rendered size of the surface.
func (s Surface) Size() Size { return Size{Width: s.Width, Height: s.Height} }

// Relative converts a raw pointer position into a position relative to the
// surface's top-left corner.
func (s Surface) Relative(p Point) Point {
	return Point{X: p.X - s.Left, Y: p.Y - s.Top}
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
