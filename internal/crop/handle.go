package crop

import (
	"fmt"
	"math"
	"strings"
)

// Handle identifies one of the four corner resize handles.
type Handle int

const (
	HandleNW Handle = iota
	HandleNE
	HandleSW
	HandleSE
)

// Handles lists every handle in hit-test order.
var Handles = []Handle{HandleNW, HandleNE, HandleSW, HandleSE}

func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleNE:
		return "ne"
	case HandleSW:
		return "sw"
	case HandleSE:
		return "se"
	default:
		return "unknown"
	}
}

// Valid reports whether h is one of the four corner handles.
func (h Handle) Valid() bool {
	_, ok := resizeRules[h]
	return ok
}

// ParseHandle converts "nw", "ne", "sw" or "se" (case-insensitive) to a Handle.
func ParseHandle(s string) (Handle, error) {
	for _, h := range Handles {
		if strings.EqualFold(s, h.String()) {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidHandle, s)
}

// Corner returns the image-space position of the corner h sits on.
func (h Handle) Corner(r Region) Point {
	switch h {
	case HandleNE:
		return Point{X: r.Right(), Y: r.Y}
	case HandleSW:
		return Point{X: r.X, Y: r.Bottom()}
	case HandleSE:
		return Point{X: r.Right(), Y: r.Bottom()}
	default:
		return Point{X: r.X, Y: r.Y}
	}
}

// Opposite returns the handle diagonally across from h.
func (h Handle) Opposite() Handle {
	switch h {
	case HandleNW:
		return HandleSE
	case HandleNE:
		return HandleSW
	case HandleSW:
		return HandleNE
	default:
		return HandleNW
	}
}

// ResizeRule computes the resized region for an image-space delta. bounds is
// the image size; a non-positive dimension leaves that axis unbounded.
type ResizeRule func(r Region, dx, dy float64, bounds Size) Region

// resizeRules moves exactly the two edges adjacent to each handle. The
// opposite edges stay pinned, shrinking stops at MinSize and growth stops at
// the image border.
var resizeRules = map[Handle]ResizeRule{
	HandleNW: func(r Region, dx, dy float64, _ Size) Region {
		r.X, r.Width = moveNear(r.X, r.Right(), dx)
		r.Y, r.Height = moveNear(r.Y, r.Bottom(), dy)
		return r
	},
	HandleNE: func(r Region, dx, dy float64, b Size) Region {
		r.Width = moveFar(r.X, r.Right(), dx, b.Width)
		r.Y, r.Height = moveNear(r.Y, r.Bottom(), dy)
		return r
	},
	HandleSW: func(r Region, dx, dy float64, b Size) Region {
		r.X, r.Width = moveNear(r.X, r.Right(), dx)
		r.Height = moveFar(r.Y, r.Bottom(), dy, b.Height)
		return r
	},
	HandleSE: func(r Region, dx, dy float64, b Size) Region {
		r.Width = moveFar(r.X, r.Right(), dx, b.Width)
		r.Height = moveFar(r.Y, r.Bottom(), dy, b.Height)
		return r
	},
}

// moveNear shifts the low edge of an axis with the high edge pinned and
// returns the new low edge and extent.
func moveNear(lo, hi, d float64) (float64, float64) {
	edge := math.Max(0, math.Min(lo+d, hi-MinSize))
	return edge, hi - edge
}

// moveFar shifts the high edge of an axis with the low edge pinned and
// returns the new extent.
func moveFar(lo, hi, d, bound float64) float64 {
	edge := math.Min(upperBound(bound), math.Max(hi+d, lo+MinSize))
	return edge - lo
}
