package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/image-crop-mcp/internal/crop"
	"github.com/ironsheep/image-crop-mcp/internal/imaging"
	"github.com/ironsheep/image-crop-mcp/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "crop_start", "crop_pointer_move").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool execution failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image and surface
	case "crop_load_image":
		return s.handleLoadImage(args)
	case "crop_set_surface":
		return s.handleSetSurface(args)

	// Session commands
	case "crop_start":
		if err := s.ctrl.StartCropping(); err != nil {
			return nil, err
		}
		return s.state(), nil
	case "crop_apply":
		return s.handleApply(ctx, args)
	case "crop_cancel":
		s.ctrl.CancelCrop()
		return s.state(), nil
	case "crop_reset":
		s.ctrl.ResetCrop()
		return s.state(), nil
	case "crop_state":
		return s.state(), nil

	// Pointer events
	case "crop_pointer_down":
		return s.handlePointerDown(args)
	case "crop_pointer_move":
		return s.handlePointerMove(args)
	case "crop_pointer_up":
		s.ctrl.PointerUp()
		return s.state(), nil

	// Inspection
	case "crop_preview":
		return s.handlePreview(args)
	case "crop_ocr":
		return s.handleOCR(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals optional tool arguments; missing arguments leave v
// untouched.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// stateResult is the JSON shape of crop.State returned by state-changing tools.
type stateResult struct {
	Mode      string       `json:"mode"`
	Handle    string       `json:"handle,omitempty"`
	Region    crop.Region  `json:"region"`
	Image     crop.Size    `json:"image"`
	Surface   crop.Surface `json:"surface"`
	Cropping  bool         `json:"cropping"`
	Committed bool         `json:"committed"`
}

func newStateResult(st crop.State) stateResult {
	r := stateResult{
		Mode:      st.Mode.String(),
		Region:    st.Region,
		Image:     st.Image,
		Surface:   st.Surface,
		Cropping:  st.Cropping,
		Committed: st.Committed,
	}
	if st.Mode == crop.ModeResizing {
		r.Handle = st.Handle.String()
	}
	return r
}

func (s *Server) state() stateResult {
	return newStateResult(s.ctrl.State())
}

// imageRect returns the current region as an integer rectangle clipped to
// the image.
func imageRect(st crop.State) image.Rectangle {
	bounds := image.Rect(0, 0, int(st.Image.Width), int(st.Image.Height))
	return st.Region.Rect().Intersect(bounds)
}

// === Image and Surface Handlers ===

type loadImageArgs struct {
	Path string `json:"path"`
}

type loadImageResult struct {
	Image *imaging.ImageInfo `json:"image"`
	State stateResult        `json:"state"`
}

func (s *Server) handleLoadImage(args json.RawMessage) (interface{}, error) {
	var a loadImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	info, img, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	if s.activePath != "" && s.activePath != a.Path {
		s.cache.Evict(s.activePath)
	}
	s.activePath, s.activeImage = a.Path, img
	s.ctrl.SetImage(info.Width, info.Height)
	s.logger.Info("image loaded", "path", info.Path, "width", info.Width, "height", info.Height)

	return loadImageResult{Image: info, State: s.state()}, nil
}

type setSurfaceArgs struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) handleSetSurface(args json.RawMessage) (interface{}, error) {
	var a setSurfaceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("%w: width and height must be positive", crop.ErrMissingSurfaceContext)
	}
	s.ctrl.SetSurface(crop.Surface{Left: a.Left, Top: a.Top, Width: a.Width, Height: a.Height})
	return s.state(), nil
}

// === Session Handlers ===

type applyArgs struct {
	Format  string `json:"format"`
	Quality int    `json:"quality"`
}

type applyResult struct {
	Asset crop.Asset  `json:"asset"`
	State stateResult `json:"state"`
}

func (s *Server) handleApply(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a applyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if s.activeImage == nil {
		return nil, crop.ErrMissingImage
	}
	if a.Format == "" {
		a.Format = s.cfg.Format
	}
	if a.Quality == 0 {
		a.Quality = s.cfg.JPEGQuality
	}
	if _, _, err := imaging.ParseFormat(a.Format); err != nil {
		return nil, err
	}

	s.ctrl.SetExporter(&imaging.FileExporter{
		Image:   s.activeImage,
		Dir:     s.cfg.OutputDir,
		Format:  a.Format,
		Quality: a.Quality,
	})
	asset, err := s.ctrl.ApplyCrop(ctx)
	if err != nil {
		return nil, err
	}
	return applyResult{Asset: asset, State: s.state()}, nil
}

// === Pointer Handlers ===

type pointerDownArgs struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Target string  `json:"target"`
}

type pointerDownResult struct {
	Consumed bool        `json:"consumed"`
	Target   string      `json:"target"`
	State    stateResult `json:"state"`
}

func (s *Server) handlePointerDown(args json.RawMessage) (interface{}, error) {
	var a pointerDownArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p := crop.Point{X: a.X, Y: a.Y}

	var target crop.Target
	if a.Target != "" {
		t, err := crop.ParseTarget(a.Target)
		if err != nil {
			return nil, err
		}
		target = t
	} else {
		t, err := s.ctrl.HitTest(p)
		// Without a session the press is ignored anyway.
		if err != nil && s.ctrl.State().Cropping {
			return nil, err
		}
		target = t
	}

	consumed, err := s.ctrl.PointerDown(p, target)
	if err != nil {
		return nil, err
	}
	return pointerDownResult{Consumed: consumed, Target: target.String(), State: s.state()}, nil
}

type pointerMoveArgs struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	DisplayWidth  float64 `json:"display_width"`
	DisplayHeight float64 `json:"display_height"`
}

func (s *Server) handlePointerMove(args json.RawMessage) (interface{}, error) {
	var a pointerMoveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	display := crop.Size{Width: a.DisplayWidth, Height: a.DisplayHeight}
	if err := s.ctrl.PointerMove(crop.Point{X: a.X, Y: a.Y}, display); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// === Inspection Handlers ===

type previewArgs struct {
	Color      string `json:"color"`
	Guides     bool   `json:"guides"`
	ShowSize   bool   `json:"show_size"`
	FitSurface bool   `json:"fit_surface"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if s.activeImage == nil {
		return nil, crop.ErrMissingImage
	}

	st := s.ctrl.State()
	opts := imaging.OverlayOptions{
		Color:    a.Color,
		Guides:   a.Guides,
		ShowSize: a.ShowSize,
	}
	if a.FitSurface {
		if !st.Surface.Size().Valid() {
			return nil, crop.ErrMissingSurfaceContext
		}
		opts.Width = int(math.Round(st.Surface.Width))
		opts.Height = int(math.Round(st.Surface.Height))
	}
	return imaging.RenderOverlay(s.activeImage, imageRect(st), opts)
}

type ocrArgs struct {
	Language string `json:"language"`
}

func (s *Server) handleOCR(args json.RawMessage) (interface{}, error) {
	var a ocrArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if s.activeImage == nil {
		return nil, crop.ErrMissingImage
	}

	st := s.ctrl.State()
	rect := imageRect(st)
	if rect.Empty() {
		return nil, crop.ErrNoRegion
	}
	return ocr.RecognizeRegion(s.activeImage, rect, a.Language)
}
