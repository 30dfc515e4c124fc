package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func forestIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Forest id returned by region_hierarchy or text_hierarchy",
	}
}

// filterProperties are shared by every tool that builds a forest.
func filterProperties() map[string]interface{} {
	return map[string]interface{}{
		"preset": map[string]interface{}{
			"type":        "string",
			"description": "Named threshold set (see region_presets). Replaces the server's configured thresholds.",
		},
		"min_area": map[string]interface{}{
			"type":        "integer",
			"description": "Drop regions whose bounding box area is below this many pixels. 0 or negative keeps all.",
		},
		"min_x_offset": map[string]interface{}{
			"type":        "integer",
			"description": "Drop regions whose box starts left of this column",
		},
		"min_y_offset": map[string]interface{}{
			"type":        "integer",
			"description": "Drop regions whose box starts above this row",
		},
	}
}

// maskProperties adds the binarisation settings to the filter properties.
func maskProperties() map[string]interface{} {
	props := filterProperties()
	props["path"] = pathProperty()
	props["connectivity"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"4", "8"},
		"description": "Pixel neighbourhood for component labeling. Default from server config (usually 4)",
	}
	props["threshold"] = map[string]interface{}{
		"type":        "integer",
		"description": "Gray level (0-255) at or above which a pixel is foreground. Default 128",
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	textProps := filterProperties()
	textProps["path"] = pathProperty()
	textProps["language"] = map[string]interface{}{
		"type":        "string",
		"description": "Tesseract language code. Default 'eng'",
		"default":     "eng",
	}
	textProps["levels"] = map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string", "enum": []string{"block", "paragraph", "line", "word"}},
		"description": "Layout levels to collect, coarse to fine. Default all four",
	}
	textProps["min_confidence"] = map[string]interface{}{
		"type":        "number",
		"description": "Drop boxes below this OCR confidence (0.0 to 1.0). Default 0",
	}

	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image stays cached for later region tools.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Component Analysis
		{
			Name:        "region_components",
			Description: "Threshold an image and list the connected components of the foreground and of the background, marking which survive the area and offset filters.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": maskProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "region_hierarchy",
			Description: "Build the containment forest of an image's connected components: each region is nested under the regions whose bounding boxes enclose it. Returns a forest_id for the render, dot and crop tools.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": maskProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "text_hierarchy",
			Description: "Run OCR and nest its block, paragraph, line and word boxes into a containment forest. Uses the 'text' preset unless another is given. Returns a forest_id.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": textProps,
				"required":   []string{"path"},
			},
		},

		// Forest Output
		{
			Name:        "region_hierarchy_render",
			Description: "Draw every node of a forest over its source image, outlines coloured by nesting depth. Returns base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"forest_id": forestIDProperty(),
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Outline width in pixels. Default 2",
						"default":     2,
					},
					"labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw each node's id at its top-left corner. Default true",
						"default":     true,
					},
				},
				"required": []string{"forest_id"},
			},
		},
		{
			Name:        "region_hierarchy_dot",
			Description: "Export a forest as a Graphviz graph, either DOT source or rendered SVG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"forest_id": forestIDProperty(),
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"dot", "svg"},
						"description": "Output format. Default 'dot'",
						"default":     "dot",
					},
				},
				"required": []string{"forest_id"},
			},
		},
		{
			Name:        "region_crop",
			Description: "Crop the bounding box of one forest node from its source image. Returns base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"forest_id": forestIDProperty(),
					"node_id": map[string]interface{}{
						"type":        "integer",
						"description": "Pre-order node id as listed in the forest",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"forest_id", "node_id"},
			},
		},

		// Settings
		{
			Name:        "region_presets",
			Description: "List the named threshold presets and the server's active settings.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}
