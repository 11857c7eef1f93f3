package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a hex color like "#FF0000", "#F00" or "#FF000080".
//
// Returns the opaque color and its alpha in [0, 1]. The leading '#' is
// optional; a missing alpha component means fully opaque.
func ParseColor(hex string) (colorful.Color, float64, error) {
	if hex == "" {
		return colorful.Color{}, 0, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	alpha := 1.0
	switch len(hex) {
	case 4, 7:
	case 9:
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("invalid alpha in color %q: %w", hex, err)
		}
		alpha = float64(a) / 255
		hex = hex[:7]
	default:
		return colorful.Color{}, 0, fmt.Errorf("invalid hex color length: %q", hex)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, 0, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return c, alpha, nil
}

// blendPixel mixes c into img at (x, y) with opacity alpha. Points outside
// the image are ignored.
func blendPixel(img *image.RGBA, x, y int, c colorful.Color, alpha float64) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return
	}
	base, _ := colorful.MakeColor(img.RGBAAt(x, y))
	r, g, b := base.BlendRgb(c, alpha).Clamped().RGB255()
	img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
}
