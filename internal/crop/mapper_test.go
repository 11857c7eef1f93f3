package crop

import (
	"errors"
	"testing"
)

func TestNewMapper(t *testing.T) {
	m, err := NewMapper(Size{Width: 500, Height: 400}, Size{Width: 1000, Height: 800})
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	if m.ScaleX != 2 || m.ScaleY != 2 {
		t.Errorf("scale: got (%v,%v), want (2,2)", m.ScaleX, m.ScaleY)
	}

	got := m.ToImage(Point{X: 10, Y: 15})
	if got != (Point{X: 20, Y: 30}) {
		t.Errorf("ToImage: got %+v", got)
	}
	back := m.ToDisplay(got)
	if back != (Point{X: 10, Y: 15}) {
		t.Errorf("ToDisplay: got %+v", back)
	}
}

func TestNewMapper_IndependentAxes(t *testing.T) {
	m, err := NewMapper(Size{Width: 250, Height: 800}, Size{Width: 1000, Height: 400})
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	dx, dy := m.Delta(10, 10)
	if dx != 40 || dy != 5 {
		t.Errorf("Delta: got (%v,%v), want (40,5)", dx, dy)
	}
}

func TestNewMapper_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		display Size
		native  Size
		want    error
	}{
		{"zero display width", Size{Width: 0, Height: 400}, Size{Width: 1000, Height: 800}, ErrMissingSurfaceContext},
		{"zero display height", Size{Width: 500, Height: 0}, Size{Width: 1000, Height: 800}, ErrMissingSurfaceContext},
		{"negative display", Size{Width: -1, Height: 400}, Size{Width: 1000, Height: 800}, ErrMissingSurfaceContext},
		{"zero image", Size{Width: 500, Height: 400}, Size{}, ErrMissingImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMapper(tt.display, tt.native)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}
