package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Overlay defaults.
const (
	DefaultOverlayColor = "#FFFFFF"
	DefaultDim          = -0.5
	DefaultHandleSize   = 8
	borderWidth         = 2

	// MaxPreviewPixels caps the pixel count of a scaled preview.
	MaxPreviewPixels = 40_000_000
)

// OverlayOptions controls how RenderOverlay draws the crop preview.
type OverlayOptions struct {
	// Color is the border, handle and guide color as hex, optionally with
	// alpha ("#RRGGBBAA"). Empty means DefaultOverlayColor.
	Color string

	// Guides draws rule-of-thirds lines inside the region.
	Guides bool

	// ShowSize labels the region with its native pixel size.
	ShowSize bool

	// Width and Height scale the preview to a display surface. Zero keeps
	// the native size.
	Width, Height int

	// HandleSize is the side of each corner handle square in output pixels.
	HandleSize int

	// Dim is the brightness change applied outside the region, in [-1, 0).
	// Zero means DefaultDim.
	Dim float64
}

// OverlayResult contains the rendered preview.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderOverlay draws the crop overlay for rect on top of img.
//
// Parameters:
//   - img: The source image.
//   - rect: The crop rectangle in native pixels, relative to the image's
//     top-left corner.
//   - opts: Rendering options.
//
// The area outside rect is darkened, the region keeps its original pixels
// and gets a border plus the four corner handles. The result is a PNG,
// base64 encoded like every other image the server returns.
func RenderOverlay(img image.Image, rect image.Rectangle, opts OverlayOptions) (*OverlayResult, error) {
	if img == nil {
		return nil, fmt.Errorf("no image to render")
	}

	hex := opts.Color
	if hex == "" {
		hex = DefaultOverlayColor
	}
	lineColor, alpha, err := ParseColor(hex)
	if err != nil {
		return nil, err
	}

	if opts.Width < 0 || opts.Height < 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", opts.Width, opts.Height)
	}
	if int64(opts.Width)*int64(opts.Height) > MaxPreviewPixels {
		return nil, fmt.Errorf("preview size %dx%d exceeds %d pixels", opts.Width, opts.Height, MaxPreviewPixels)
	}

	nativeW, nativeH := rect.Dx(), rect.Dy()
	src := clone.AsRGBA(imaging.Clone(img))
	b := src.Bounds()
	if opts.Width > 0 && opts.Height > 0 && (opts.Width != b.Dx() || opts.Height != b.Dy()) {
		sx := float64(opts.Width) / float64(b.Dx())
		sy := float64(opts.Height) / float64(b.Dy())
		src = clone.AsRGBA(imaging.Resize(src, opts.Width, opts.Height, imaging.Linear))
		rect = image.Rect(
			int(math.Round(float64(rect.Min.X)*sx)),
			int(math.Round(float64(rect.Min.Y)*sy)),
			int(math.Round(float64(rect.Max.X)*sx)),
			int(math.Round(float64(rect.Max.Y)*sy)),
		)
	}
	rect = rect.Intersect(src.Bounds())

	dim := opts.Dim
	if dim == 0 {
		dim = DefaultDim
	}
	out := adjust.Brightness(src, dim)

	if !rect.Empty() {
		draw.Draw(out, rect, src, rect.Min, draw.Src)
		if opts.Guides {
			drawGuides(out, rect, lineColor, alpha/2)
		}
		drawBorder(out, rect, lineColor, alpha)

		size := opts.HandleSize
		if size <= 0 {
			size = DefaultHandleSize
		}
		drawHandles(out, rect, size, lineColor, alpha)

		if opts.ShowSize {
			label := fmt.Sprintf("%dx%d", nativeW, nativeH)
			r, g, bl := lineColor.RGB255()
			drawLabel(out, rect.Min.X+borderWidth+2, rect.Min.Y+borderWidth+2, label,
				color.RGBA{R: r, G: g, B: bl, A: 255}, color.RGBA{A: 180})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	ob := out.Bounds()
	return &OverlayResult{
		Width:       ob.Dx(),
		Height:      ob.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func drawBorder(img *image.RGBA, r image.Rectangle, c colorful.Color, alpha float64) {
	for i := 0; i < borderWidth; i++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			blendPixel(img, x, r.Min.Y+i, c, alpha)
			blendPixel(img, x, r.Max.Y-1-i, c, alpha)
		}
		for y := r.Min.Y + borderWidth; y < r.Max.Y-borderWidth; y++ {
			blendPixel(img, r.Min.X+i, y, c, alpha)
			blendPixel(img, r.Max.X-1-i, y, c, alpha)
		}
	}
}

// drawGuides draws the two vertical and two horizontal rule-of-thirds lines.
func drawGuides(img *image.RGBA, r image.Rectangle, c colorful.Color, alpha float64) {
	for i := 1; i <= 2; i++ {
		x := r.Min.X + r.Dx()*i/3
		for y := r.Min.Y; y < r.Max.Y; y++ {
			blendPixel(img, x, y, c, alpha)
		}
		y := r.Min.Y + r.Dy()*i/3
		for x := r.Min.X; x < r.Max.X; x++ {
			blendPixel(img, x, y, c, alpha)
		}
	}
}

func drawHandles(img *image.RGBA, r image.Rectangle, size int, c colorful.Color, alpha float64) {
	half := size / 2
	corners := []image.Point{
		r.Min,
		{X: r.Max.X - 1, Y: r.Min.Y},
		{X: r.Min.X, Y: r.Max.Y - 1},
		{X: r.Max.X - 1, Y: r.Max.Y - 1},
	}
	for _, p := range corners {
		for dy := -half; dy < size-half; dy++ {
			for dx := -half; dx < size-half; dx++ {
				blendPixel(img, p.X+dx, p.Y+dy, c, alpha)
			}
		}
	}
}

// drawLabel draws text with a 3x5 pixel font that covers digits and 'x'.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		'x': {"000", "101", "010", "101", "000"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if image.Pt(px, py).In(bounds) {
				img.SetRGBA(px, py, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col, y+row
					if image.Pt(px, py).In(bounds) {
						img.SetRGBA(px, py, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}
