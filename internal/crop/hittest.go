package crop

import (
	"fmt"
	"math"
	"strings"
)

// DefaultHandleRadius is the half-size, in display pixels, of a handle's
// square hit box.
const DefaultHandleRadius = 10

// TargetKind says what a pointer press landed on.
type TargetKind int

const (
	TargetOutside TargetKind = iota
	TargetRegion
	TargetHandle
)

// Target is the element a pointer-down event resolves to. Handle is only
// meaningful when Kind is TargetHandle.
type Target struct {
	Kind   TargetKind
	Handle Handle
}

// OnHandle returns the target for a press on handle h.
func OnHandle(h Handle) Target { return Target{Kind: TargetHandle, Handle: h} }

// OnRegion is the target for a press on the region body.
var OnRegion = Target{Kind: TargetRegion}

// Outside is the target for a press that missed the region.
var Outside = Target{Kind: TargetOutside}

func (t Target) String() string {
	switch t.Kind {
	case TargetRegion:
		return "region"
	case TargetHandle:
		return t.Handle.String()
	default:
		return "outside"
	}
}

// ParseTarget accepts "region", "outside" or a handle name.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(s) {
	case "region":
		return OnRegion, nil
	case "outside":
		return Outside, nil
	}
	h, err := ParseHandle(s)
	if err != nil {
		return Target{}, fmt.Errorf("parse target: %w", err)
	}
	return OnHandle(h), nil
}

// HitTest resolves a surface-relative display position against the region.
// Handles are checked before the body, so a press inside a handle's hit box
// always starts a resize even where the box overlaps the region.
func HitTest(r Region, m Mapper, p Point, radius float64) Target {
	if r.Empty() {
		return Outside
	}
	for _, h := range Handles {
		c := m.ToDisplay(h.Corner(r))
		if math.Abs(p.X-c.X) <= radius && math.Abs(p.Y-c.Y) <= radius {
			return OnHandle(h)
		}
	}
	tl := m.ToDisplay(r.TopLeft())
	br := m.ToDisplay(Point{X: r.Right(), Y: r.Bottom()})
	if p.X >= tl.X && p.X <= br.X && p.Y >= tl.Y && p.Y <= br.Y {
		return OnRegion
	}
	return Outside
}
