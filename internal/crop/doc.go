// Package crop implements the interaction core of an image cropper.
//
// A crop region is a rectangle expressed in native image-pixel coordinates.
// Pointer events arrive in display coordinates, relative to a display surface
// that renders the image at an arbitrary scale. The Controller translates those
// events into region updates while keeping two invariants:
//
//   - width and height never drop below MinSize image pixels
//   - the region never leaves [0, imageWidth] x [0, imageHeight]
//
// # Coordinate Spaces
//
// Display space is what the pointer device reports, relative to the top-left
// corner of the display surface once the surface's bounding position has been
// subtracted. Image space is the image's own pixel grid. A Mapper converts
// between the two using independent X and Y scale factors, recomputed from the
// current surface size on every move event.
//
// # Interaction Modes
//
// The Controller is always in exactly one Mode:
//
//	Idle --down on region--> Dragging --up--> Idle
//	Idle --down on handle--> Resizing(h) --up--> Idle
//	any  --cancel/apply----> Idle
//
// Dragging keeps a constant pointer-to-corner offset for the whole gesture.
// Resizing applies incremental deltas between consecutive move events.
//
// # Concurrency
//
// All Controller methods are serialized by an internal mutex, so the order in
// which events are delivered is the order in which they are applied. Listeners
// run synchronously while that mutex is held and must not call back into the
// Controller.
package crop
