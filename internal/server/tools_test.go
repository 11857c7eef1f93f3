package server

import (
	"context"
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"crop_load_image",
		"crop_set_surface",
		"crop_start",
		"crop_apply",
		"crop_cancel",
		"crop_reset",
		"crop_state",
		"crop_pointer_down",
		"crop_pointer_move",
		"crop_pointer_up",
		"crop_preview",
		"crop_ocr",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required field must be a declared property.
			if required, ok := tool.InputSchema["required"].([]string); ok {
				for _, name := range required {
					if _, ok := props[name]; !ok {
						t.Errorf("required field %s not in properties", name)
					}
				}
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := []struct {
		tool     string
		required []string
	}{
		{"crop_load_image", []string{"path"}},
		{"crop_set_surface", []string{"width", "height"}},
		{"crop_pointer_down", []string{"x", "y"}},
		{"crop_pointer_move", []string{"x", "y"}},
		{"crop_start", nil},
		{"crop_apply", nil},
		{"crop_preview", nil},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool, ok := toolMap[tt.tool]
			if !ok {
				t.Fatalf("tool %s not found", tt.tool)
			}
			got, _ := tool.InputSchema["required"].([]string)
			if len(got) != len(tt.required) {
				t.Fatalf("required: got %v, want %v", got, tt.required)
			}
			for i := range got {
				if got[i] != tt.required[i] {
					t.Errorf("required[%d]: got %s, want %s", i, got[i], tt.required[i])
				}
			}
		})
	}
}

func TestToolDefinitions_PointerTargets(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "crop_pointer_down" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		target := props["target"].(map[string]interface{})
		enum, ok := target["enum"].([]string)
		if !ok {
			t.Fatal("target should declare an enum")
		}
		want := map[string]bool{"region": true, "outside": true, "nw": true, "ne": true, "sw": true, "se": true}
		if len(enum) != len(want) {
			t.Errorf("target enum: got %v", enum)
		}
		for _, v := range enum {
			if !want[v] {
				t.Errorf("unexpected target %s", v)
			}
		}
		return
	}
	t.Fatal("crop_pointer_down not found")
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp)
	}

	// The wire form must survive JSON encoding.
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	var decoded struct {
		Result struct {
			Tools []Tool `json:"tools"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if len(decoded.Result.Tools) != len(GetToolDefinitions()) {
		t.Errorf("tools: got %d, want %d", len(decoded.Result.Tools), len(GetToolDefinitions()))
	}
}
