// Package ocr reads text inside a crop region using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). The crop
// server uses it to report what text a pending crop region would capture.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Coordinates
//
// Regions are given in native image pixels. Word bounding boxes in the result
// are translated back into full-image coordinates so they can be compared with
// the crop region directly.
package ocr
