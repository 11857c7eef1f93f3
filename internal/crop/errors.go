package crop

import "errors"

// Errors reported by the Controller. All of them are recoverable: the
// Controller keeps its previous state when it returns one.
var (
	// ErrMissingImage is returned when a command needs a loaded image.
	ErrMissingImage = errors.New("crop: no image loaded")

	// ErrMissingSurfaceContext is returned when the display surface has no
	// usable size, so display positions cannot be mapped to image pixels.
	ErrMissingSurfaceContext = errors.New("crop: display surface size unavailable")

	// ErrInvalidHandle is returned for an unrecognized resize handle.
	ErrInvalidHandle = errors.New("crop: invalid resize handle")

	// ErrExportFailure wraps any error coming from the Exporter.
	ErrExportFailure = errors.New("crop: export failed")

	// ErrNoRegion is returned by ApplyCrop when no cropping session is active
	// or the region is empty.
	ErrNoRegion = errors.New("crop: no crop region")
)
