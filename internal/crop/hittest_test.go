package crop

import (
	"errors"
	"testing"
)

func TestHitTest(t *testing.T) {
	// Region (100,80,800,640) on a 500x400 display of a 1000x800 image sits
	// at display (50,40)-(450,360).
	r := Region{X: 100, Y: 80, Width: 800, Height: 640}
	m, err := NewMapper(Size{Width: 500, Height: 400}, Size{Width: 1000, Height: 800})
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}

	tests := []struct {
		name string
		p    Point
		want Target
	}{
		{"nw corner", Point{X: 50, Y: 40}, OnHandle(HandleNW)},
		{"ne corner", Point{X: 455, Y: 35}, OnHandle(HandleNE)},
		{"sw corner", Point{X: 45, Y: 365}, OnHandle(HandleSW)},
		{"se corner", Point{X: 450, Y: 360}, OnHandle(HandleSE)},
		{"handle wins inside body", Point{X: 58, Y: 48}, OnHandle(HandleNW)},
		{"body", Point{X: 250, Y: 200}, OnRegion},
		{"outside left", Point{X: 10, Y: 200}, Outside},
		{"outside below", Point{X: 250, Y: 390}, Outside},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HitTest(r, m, tt.p, DefaultHandleRadius)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHitTest_EmptyRegion(t *testing.T) {
	m, _ := NewMapper(Size{Width: 100, Height: 100}, Size{Width: 100, Height: 100})
	if got := HitTest(Region{}, m, Point{}, DefaultHandleRadius); got != Outside {
		t.Errorf("empty region: got %v, want outside", got)
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{"region", OnRegion, false},
		{"Outside", Outside, false},
		{"se", OnHandle(HandleSE), false},
		{"NW", OnHandle(HandleNW), false},
		{"middle", Target{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTarget(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidHandle) {
					t.Fatalf("expected ErrInvalidHandle, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got.String() != tt.want.String() {
				t.Errorf("String: got %q, want %q", got.String(), tt.want.String())
			}
		})
	}
}
