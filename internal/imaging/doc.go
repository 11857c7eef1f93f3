// Package imaging provides the pixel-level operations behind the crop server.
//
// This package loads source images, exports committed crop regions to disk and
// renders preview overlays of an in-progress crop. All operations work with
// standard Go image.Image types and use a coordinate system where (0,0) is the
// top-left corner of the image, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// Rectangles passed to CropRect, FileExporter.Export and RenderOverlay are in
// native pixels relative to the image's top-left corner, regardless of the
// image's Bounds().Min. Min is inclusive, Max is exclusive.
//
// # Exporting
//
// FileExporter implements crop.Exporter. Each export writes a new PNG or JPEG
// file named crop-<unix nanoseconds>.<ext> into the configured directory and
// reports its absolute path as the asset location.
//
// # Overlays
//
// RenderOverlay darkens everything outside the crop region, draws a border and
// the four corner handles, and can add rule-of-thirds guides and a size label.
// The preview can be scaled to the size of the display surface so that the
// overlay matches what the user is pointing at.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The other functions are
// stateless and can be called concurrently as long as the source images are
// not mutated.
package imaging
