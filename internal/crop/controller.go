package crop

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"
)

// Asset describes a committed crop produced by an Exporter. Location is an
// opaque identifier chosen by the Exporter.
type Asset struct {
	Location string `json:"location"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
}

// Exporter captures the pixels under rect and produces an asset.
type Exporter interface {
	Export(ctx context.Context, rect image.Rectangle) (Asset, error)
}

// ChangeListener is called after every event that changed the state.
type ChangeListener func(State)

// CommitListener is called once per successful ApplyCrop.
type CommitListener func(Asset)

// State is a snapshot of the Controller. Handle is only meaningful while
// Mode is ModeResizing.
type State struct {
	Mode      Mode
	Handle    Handle
	Region    Region
	Image     Size
	Surface   Surface
	Cropping  bool
	Committed bool
}

// Controller owns the crop region and the interaction mode and applies
// pointer events and commands to them.
type Controller struct {
	mu           sync.Mutex
	logger       *slog.Logger
	exporter     Exporter
	handleRadius float64

	mode      Mode
	handle    Handle
	region    Region
	anchor    Point
	image     Size
	surface   Surface
	cropping  bool
	committed bool

	changeListeners []ChangeListener
	commitListeners []CommitListener
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for transition and failure messages.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithExporter sets the collaborator used by ApplyCrop.
func WithExporter(e Exporter) Option {
	return func(c *Controller) { c.exporter = e }
}

// WithHandleRadius sets the handle hit-box half-size in display pixels.
func WithHandleRadius(r float64) Option {
	return func(c *Controller) {
		if r > 0 {
			c.handleRadius = r
		}
	}
}

// NewController returns an idle Controller with an empty region.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		handleRadius: DefaultHandleRadius,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers a listener for state changes.
func (c *Controller) OnChange(l ChangeListener) {
	c.mu.Lock()
	c.changeListeners = append(c.changeListeners, l)
	c.mu.Unlock()
}

// OnCommitted registers a listener for successful ApplyCrop calls.
func (c *Controller) OnCommitted(l CommitListener) {
	c.mu.Lock()
	c.commitListeners = append(c.commitListeners, l)
	c.mu.Unlock()
}

// SetExporter replaces the export collaborator.
func (c *Controller) SetExporter(e Exporter) {
	c.mu.Lock()
	c.exporter = e
	c.mu.Unlock()
}

// SetImage installs the native size of a newly loaded image. Any session in
// progress is discarded.
func (c *Controller) SetImage(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = Size{Width: float64(width), Height: float64(height)}
	c.setMode(ModeIdle)
	c.region.Reset()
	c.cropping = false
	c.committed = false
	c.notify()
}

// SetSurface records the display surface's bounding position and size.
func (c *Controller) SetSurface(s Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surface = s
	c.notify()
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Region returns the current crop region.
func (c *Controller) Region() Region {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.region
}

// Mode returns the current interaction mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// StartCropping begins a session with the centered 80% region.
func (c *Controller) StartCropping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.image.Valid() {
		return ErrMissingImage
	}
	c.setMode(ModeIdle)
	c.region.InitCentered(c.image.Width, c.image.Height)
	c.cropping = true
	c.logger.Debug("cropping started", "region", c.region)
	c.notify()
	return nil
}

// HitTest resolves a raw pointer position against the current region.
func (c *Controller) HitTest(p Point) (Target, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, err := NewMapper(c.surface.Size(), c.image)
	if err != nil {
		return Outside, err
	}
	return HitTest(c.region, m, c.surface.Relative(p), c.handleRadius), nil
}

// PointerDown starts a gesture at the raw pointer position p. It reports
// whether the press was consumed; a consumed press must not reach the
// platform's default action or any other handler. Presses outside a cropping
// session, outside the region or during a gesture are not consumed.
func (c *Controller) PointerDown(p Point, t Target) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cropping || c.mode != ModeIdle {
		return false, nil
	}
	rel := c.surface.Relative(p)
	switch t.Kind {
	case TargetHandle:
		if !t.Handle.Valid() {
			return false, fmt.Errorf("%w: %d", ErrInvalidHandle, int(t.Handle))
		}
		c.handle = t.Handle
		c.anchor = rel
		c.setMode(ModeResizing)
	case TargetRegion:
		m, err := NewMapper(c.surface.Size(), c.image)
		if err != nil {
			return false, err
		}
		c.anchor = m.ToImage(rel).Sub(c.region.TopLeft())
		c.setMode(ModeDragging)
	default:
		return false, nil
	}
	c.notify()
	return true, nil
}

// PointerMove applies a move to the raw pointer position p. display is the
// surface's current rendered size; a zero size keeps the last known one.
// Moves while idle are ignored. When no surface size is known the move is
// dropped with ErrMissingSurfaceContext.
func (c *Controller) PointerMove(p Point, display Size) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeIdle {
		return nil
	}
	if display.Valid() {
		c.surface.Width, c.surface.Height = display.Width, display.Height
	}
	m, err := NewMapper(c.surface.Size(), c.image)
	if err != nil {
		return err
	}
	rel := c.surface.Relative(p)

	switch c.mode {
	case ModeDragging:
		target := m.ToImage(rel).Sub(c.anchor)
		c.region.Translate(target.X-c.region.X, target.Y-c.region.Y, c.image.Width, c.image.Height)
	case ModeResizing:
		dx, dy := m.Delta(rel.X-c.anchor.X, rel.Y-c.anchor.Y)
		if err := c.region.ResizeFromHandle(c.handle, dx, dy, c.image.Width, c.image.Height); err != nil {
			return err
		}
		c.anchor = rel
	}
	c.notify()
	return nil
}

// PointerUp ends the current gesture.
func (c *Controller) PointerUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeIdle {
		return
	}
	c.setMode(ModeIdle)
	c.notify()
}

// ApplyCrop exports the current region and ends the session. It needs an
// image, an active session and a known surface size. On failure nothing
// changes, so the caller may retry.
func (c *Controller) ApplyCrop(ctx context.Context) (Asset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.image.Valid() {
		return Asset{}, ErrMissingImage
	}
	if !c.cropping || c.region.Empty() {
		return Asset{}, ErrNoRegion
	}
	if !c.surface.Size().Valid() {
		return Asset{}, ErrMissingSurfaceContext
	}
	if c.exporter == nil {
		return Asset{}, fmt.Errorf("%w: no exporter configured", ErrExportFailure)
	}

	bounds := image.Rect(0, 0, int(c.image.Width), int(c.image.Height))
	rect := c.region.Rect().Intersect(bounds)
	asset, err := c.exporter.Export(ctx, rect)
	if err != nil {
		c.logger.Warn("crop export failed", "rect", rect, "error", err)
		return Asset{}, fmt.Errorf("%w: %v", ErrExportFailure, err)
	}

	c.setMode(ModeIdle)
	c.cropping = false
	c.committed = true
	c.logger.Info("crop applied", "rect", rect, "location", asset.Location)
	c.notify()
	for _, l := range c.commitListeners {
		l(asset)
	}
	return asset, nil
}

// CancelCrop ends the session and resets the region to the full image,
// overriding any gesture in progress.
func (c *Controller) CancelCrop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setMode(ModeIdle)
	c.cropping = false
	c.region.ResetToFull(c.image.Width, c.image.Height)
	c.notify()
}

// ResetCrop ends the session, zeroes the region and forgets any committed
// crop.
func (c *Controller) ResetCrop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setMode(ModeIdle)
	c.cropping = false
	c.committed = false
	c.region.Reset()
	c.notify()
}

func (c *Controller) setMode(next Mode) {
	prev := c.mode
	c.mode = next
	if next != ModeResizing {
		c.handle = HandleNW
	}
	if prev != next {
		c.logger.Debug("crop mode transition", "from", prev.String(), "to", next.String())
	}
}

func (c *Controller) snapshot() State {
	return State{
		Mode:      c.mode,
		Handle:    c.handle,
		Region:    c.region,
		Image:     c.image,
		Surface:   c.surface,
		Cropping:  c.cropping,
		Committed: c.committed,
	}
}

func (c *Controller) notify() {
	if len(c.changeListeners) == 0 {
		return
	}
	s := c.snapshot()
	for _, l := range c.changeListeners {
		l(s)
	}
}
