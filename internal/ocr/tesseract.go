package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion represents a word with its location and OCR confidence.
type TextRegion struct {
	// Text is the recognized word.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this word in the full image.
	Bounds Bounds `json:"bounds"`
}

// OCRResult contains the text recognized inside a crop region.
type OCRResult struct {
	// FullText is all recognized text with original spacing and newlines.
	FullText string `json:"full_text"`

	// Regions contains individual words with their bounding boxes and confidence scores.
	// May be empty if bounding box extraction fails (text will still be in FullText).
	Regions []TextRegion `json:"regions"`
}

// RecognizeRegion performs OCR on a rectangular region of an image.
//
// Parameters:
//   - img: The source image (already loaded into memory).
//   - rect: The region in native pixels, relative to the image's top-left corner.
//   - language: Tesseract language code (e.g., "eng"). Empty means DefaultLanguage.
//
// Returns:
//   - *OCRResult: Text extracted from the region. Word bounds are in full-image
//     coordinates, so a word found at (10, 20) inside a region starting at
//     (100, 50) is reported at (110, 70).
//   - error: Non-nil if the region is invalid or Tesseract fails.
//
// The region is encoded to PNG in memory and handed to Tesseract directly; no
// temporary files are written.
func RecognizeRegion(img image.Image, rect image.Rectangle, language string) (*OCRResult, error) {
	if img == nil {
		return nil, fmt.Errorf("no image loaded")
	}
	bounds := img.Bounds()
	abs := rect.Add(bounds.Min)
	if abs.Empty() {
		return nil, fmt.Errorf("invalid OCR region %v: empty", rect)
	}
	if !abs.In(bounds) {
		return nil, fmt.Errorf("OCR region %v outside image bounds %dx%d", rect, bounds.Dx(), bounds.Dy())
	}
	if language == "" {
		language = DefaultLanguage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, imaging.Crop(img, abs)); err != nil {
		return nil, fmt.Errorf("failed to encode region: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Return just text if boxes fail
		return &OCRResult{
			FullText: text,
			Regions:  []TextRegion{},
		}, nil
	}

	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X + rect.Min.X,
				Y1: box.Box.Min.Y + rect.Min.Y,
				X2: box.Box.Max.X + rect.Min.X,
				Y2: box.Box.Max.Y + rect.Min.Y,
			},
		})
	}

	return &OCRResult{
		FullText: text,
		Regions:  regions,
	}, nil
}
