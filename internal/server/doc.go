// Package server implements the MCP (Model Context Protocol) server for interactive image cropping.
//
// This package provides a JSON-RPC 2.0 server that drives a single crop session
// (crop.Controller) through MCP tool calls. The client acts as the pointer: it
// reports presses, moves and releases in its own coordinates and the server keeps
// the crop region in native image pixels.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image and surface:
//   - crop_load_image: Load an image and make it active
//   - crop_set_surface: Position and size of the display surface
//
// Session commands:
//   - crop_start: Begin cropping with the centered 80% region
//   - crop_apply: Export the region and end the session
//   - crop_cancel: End the session, region back to the full image
//   - crop_reset: End the session and clear the region
//   - crop_state: Current mode, region and flags
//
// Pointer events:
//   - crop_pointer_down: Press on a handle, the region or outside
//   - crop_pointer_move: Drag or resize
//   - crop_pointer_up: Release
//
// Inspection:
//   - crop_preview: Overlay preview as base64 PNG
//   - crop_ocr: Text inside the current region
//
// # Notifications
//
// After a successful crop_apply the server writes a notifications/crop/committed
// notification carrying the exported asset, right after the tools/call response.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A failed tool call never leaves the session half-changed.
//
// # Usage
//
//	cfg, err := server.ConfigFromEnv()
//	if err != nil {
//	    logger.Warn("ignoring invalid configuration", "error", err)
//	}
//	srv := server.NewWithConfig(cfg, logger)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
