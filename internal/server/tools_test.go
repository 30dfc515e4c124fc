package server

import (
	"testing"
)

func toolsByName() map[string]Tool {
	m := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		m[tool.Name] = tool
	}
	return m
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"region_components",
		"region_hierarchy",
		"text_hierarchy",
		"region_hierarchy_render",
		"region_hierarchy_dot",
		"region_crop",
		"region_presets",
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := toolsByName()
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

			// Every required parameter must be declared.
			required, _ := tool.InputSchema["required"].([]string)
			for _, name := range required {
				if _, ok := props[name]; !ok {
					t.Errorf("required parameter %s has no property", name)
				}
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	want := map[string][]string{
		"image_load":              {"path"},
		"region_components":       {"path"},
		"region_hierarchy":        {"path"},
		"text_hierarchy":          {"path"},
		"region_hierarchy_render": {"forest_id"},
		"region_hierarchy_dot":    {"forest_id"},
		"region_crop":             {"forest_id", "node_id"},
	}

	toolMap := toolsByName()
	for name, params := range want {
		required, _ := toolMap[name].InputSchema["required"].([]string)
		if len(required) != len(params) {
			t.Errorf("%s: required got %v, want %v", name, required, params)
			continue
		}
		for i := range params {
			if required[i] != params[i] {
				t.Errorf("%s: required got %v, want %v", name, required, params)
				break
			}
		}
	}
}

func TestToolDefinitions_FilterParameters(t *testing.T) {
	toolMap := toolsByName()
	for _, name := range []string{"region_components", "region_hierarchy", "text_hierarchy"} {
		props := toolMap[name].InputSchema["properties"].(map[string]interface{})
		for _, p := range []string{"preset", "min_area", "min_x_offset", "min_y_offset"} {
			if _, ok := props[p]; !ok {
				t.Errorf("%s: missing %s", name, p)
			}
		}
	}

	// Only the mask-based tools take binarisation settings.
	text := toolMap["text_hierarchy"].InputSchema["properties"].(map[string]interface{})
	if _, ok := text["threshold"]; ok {
		t.Error("text_hierarchy should not take a threshold")
	}
	mask := toolMap["region_hierarchy"].InputSchema["properties"].(map[string]interface{})
	if _, ok := mask["connectivity"]; !ok {
		t.Error("region_hierarchy should take a connectivity")
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"region_crop":             {"scale": 1.0},
		"region_hierarchy_render": {"thickness": 2, "labels": true},
		"region_hierarchy_dot":    {"format": "dot"},
		"text_hierarchy":          {"language": "eng"},
	}

	toolMap := toolsByName()
	for toolName, expectedDefaults := range toolDefaults {
		props, ok := toolMap[toolName].InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expected := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}
			if actual := param["default"]; actual != expected {
				t.Errorf("%s.%s: default got %v (%T), want %v (%T)", toolName, paramName, actual, actual, expected, expected)
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
