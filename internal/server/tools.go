package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// noArgs is the input schema of tools that take no arguments.
func noArgs() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image and surface
		{
			Name:        "crop_load_image",
			Description: "Load an image file and make it the active image for cropping. Returns its metadata and the session state. Any crop session in progress is discarded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "crop_set_surface",
			Description: "Describe the display surface the image is rendered on: its position in pointer coordinates and its rendered size in display pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"left": map[string]interface{}{
						"type":        "number",
						"description": "X of the surface's top-left corner in pointer coordinates",
						"default":     0,
					},
					"top": map[string]interface{}{
						"type":        "number",
						"description": "Y of the surface's top-left corner in pointer coordinates",
						"default":     0,
					},
					"width": map[string]interface{}{
						"type":        "number",
						"description": "Rendered width in display pixels",
					},
					"height": map[string]interface{}{
						"type":        "number",
						"description": "Rendered height in display pixels",
					},
				},
				"required": []string{"width", "height"},
			},
		},

		// Session commands
		{
			Name:        "crop_start",
			Description: "Start a crop session with a region covering the centered 80% of the image.",
			InputSchema: noArgs(),
		},
		{
			Name:        "crop_apply",
			Description: "Export the current region of the active image to a new file and end the session. Requires a display surface set via crop_set_surface. Also emits a notifications/crop/committed notification carrying the asset.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpeg"},
						"description": "Output format. Defaults to the server's configured format",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "JPEG quality 1-100. Defaults to the server's configured quality",
					},
				},
			},
		},
		{
			Name:        "crop_cancel",
			Description: "End the session and reset the region to the full image.",
			InputSchema: noArgs(),
		},
		{
			Name:        "crop_reset",
			Description: "End the session, clear the region and forget any committed crop.",
			InputSchema: noArgs(),
		},
		{
			Name:        "crop_state",
			Description: "Return the current mode, region, image size, surface and session flags.",
			InputSchema: noArgs(),
		},

		// Pointer events
		{
			Name:        "crop_pointer_down",
			Description: "Press the pointer at a raw position. Pressing a corner handle starts resizing, pressing inside the region starts dragging. Reports whether the press was consumed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "number",
						"description": "Pointer X in pointer coordinates",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Pointer Y in pointer coordinates",
					},
					"target": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"region", "outside", "nw", "ne", "sw", "se"},
						"description": "What was pressed. Omit to hit-test the position against the region",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "crop_pointer_move",
			Description: "Move the pointer to a raw position while dragging or resizing.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "number",
						"description": "Pointer X in pointer coordinates",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Pointer Y in pointer coordinates",
					},
					"display_width": map[string]interface{}{
						"type":        "number",
						"description": "Current rendered width of the surface. Omit to keep the last known size",
					},
					"display_height": map[string]interface{}{
						"type":        "number",
						"description": "Current rendered height of the surface. Omit to keep the last known size",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "crop_pointer_up",
			Description: "Release the pointer, ending any drag or resize.",
			InputSchema: noArgs(),
		},

		// Inspection
		{
			Name:        "crop_preview",
			Description: "Render the active image with the crop overlay: outside dimmed, region border and corner handles. Returns a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Border and handle color as hex (#RRGGBB or #RRGGBBAA). Default #FFFFFF",
						"default":     "#FFFFFF",
					},
					"guides": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw rule-of-thirds guides inside the region",
						"default":     false,
					},
					"show_size": map[string]interface{}{
						"type":        "boolean",
						"description": "Label the region with its size in image pixels",
						"default":     false,
					},
					"fit_surface": map[string]interface{}{
						"type":        "boolean",
						"description": "Scale the preview to the display surface size",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "crop_ocr",
			Description: "Extract text inside the current crop region using Tesseract OCR. Word bounding boxes are in image pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default eng",
						"default":     "eng",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
