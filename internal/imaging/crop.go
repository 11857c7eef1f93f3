package imaging

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-crop-mcp/internal/crop"
)

// DefaultJPEGQuality is used when a FileExporter has no explicit quality.
const DefaultJPEGQuality = 90

// CropRect extracts rect from img. rect is relative to the image's top-left
// corner, whatever img.Bounds().Min is.
func CropRect(img image.Image, rect image.Rectangle) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("no image to crop")
	}
	bounds := img.Bounds()
	rect = rect.Add(bounds.Min)

	if rect.Empty() {
		return nil, fmt.Errorf("invalid crop region %v: empty", rect)
	}
	if !rect.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	return imaging.Crop(img, rect), nil
}

// FileExporter writes committed crops of Image into Dir.
//
// Each export produces a new file named crop-<unix nanoseconds>.<ext>; the
// returned crop.Asset carries its absolute path as Location.
type FileExporter struct {
	Image   image.Image
	Dir     string
	Format  string // "png" or "jpeg"; empty means png
	Quality int    // JPEG quality 1-100; zero means DefaultJPEGQuality

	now func() time.Time
}

// Export implements crop.Exporter.
func (e *FileExporter) Export(ctx context.Context, rect image.Rectangle) (crop.Asset, error) {
	if err := ctx.Err(); err != nil {
		return crop.Asset{}, err
	}

	format, ext, err := ParseFormat(e.Format)
	if err != nil {
		return crop.Asset{}, err
	}

	cropped, err := CropRect(e.Image, rect)
	if err != nil {
		return crop.Asset{}, err
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return crop.Asset{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	now := time.Now
	if e.now != nil {
		now = e.now
	}
	path, err := filepath.Abs(filepath.Join(e.Dir, fmt.Sprintf("crop-%d.%s", now().UnixNano(), ext)))
	if err != nil {
		return crop.Asset{}, err
	}

	quality := e.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	f, err := os.Create(path)
	if err != nil {
		return crop.Asset{}, fmt.Errorf("failed to create output file: %w", err)
	}
	if err := imaging.Encode(f, cropped, format, imaging.JPEGQuality(quality)); err != nil {
		f.Close()
		os.Remove(path)
		return crop.Asset{}, fmt.Errorf("failed to encode cropped image: %w", err)
	}
	if err := f.Close(); err != nil {
		return crop.Asset{}, fmt.Errorf("failed to write output file: %w", err)
	}

	return crop.Asset{
		Location: path,
		Width:    cropped.Bounds().Dx(),
		Height:   cropped.Bounds().Dy(),
		Format:   ext,
	}, nil
}

// ParseFormat maps an output format name to the imaging format and file
// extension. An empty name selects PNG.
func ParseFormat(name string) (imaging.Format, string, error) {
	switch strings.ToLower(name) {
	case "", "png":
		return imaging.PNG, "png", nil
	case "jpeg", "jpg":
		return imaging.JPEG, "jpg", nil
	default:
		return 0, "", fmt.Errorf("unsupported output format: %s", name)
	}
}

var _ crop.Exporter = (*FileExporter)(nil)
