package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ironsheep/region-hierarchy/internal/components"
	"github.com/ironsheep/region-hierarchy/internal/config"
	"github.com/ironsheep/region-hierarchy/internal/export"
	"github.com/ironsheep/region-hierarchy/internal/hierarchy"
	"github.com/ironsheep/region-hierarchy/internal/imaging"
	"github.com/ironsheep/region-hierarchy/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "region_hierarchy").
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

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debug("tool call", "tool", params.Name, "elapsed", time.Since(start).Round(time.Microsecond))

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
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "image_load":
		return s.handleImageLoad(args)

	case "region_components":
		return s.handleRegionComponents(args)
	case "region_hierarchy":
		return s.handleRegionHierarchy(args)
	case "text_hierarchy":
		return s.handleTextHierarchy(args)

	case "region_hierarchy_render":
		return s.handleRegionHierarchyRender(args)
	case "region_hierarchy_dot":
		return s.handleRegionHierarchyDot(ctx, args)
	case "region_crop":
		return s.handleRegionCrop(args)

	case "region_presets":
		return s.handleRegionPresets()

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// filterArgs are the per-call threshold overrides shared by the
// forest-building tools.
type filterArgs struct {
	Preset     string `json:"preset"`
	MinArea    *int   `json:"min_area"`
	MinXOffset *int   `json:"min_x_offset"`
	MinYOffset *int   `json:"min_y_offset"`
}

type maskArgs struct {
	filterArgs
	Path         string `json:"path"`
	Connectivity string `json:"connectivity"`
	Threshold    *int   `json:"threshold"`
}

// settings overlays call arguments on the server config. Naming a preset
// discards the thresholds the config set on top of its own preset.
func (s *Server) settings(f filterArgs) *config.Config {
	cfg := *s.cfg
	if f.Preset != "" {
		cfg.Preset = f.Preset
		cfg.MinArea, cfg.MinXOffset, cfg.MinYOffset = nil, nil, nil
	}
	if f.MinArea != nil {
		cfg.MinArea = f.MinArea
	}
	if f.MinXOffset != nil {
		cfg.MinXOffset = f.MinXOffset
	}
	if f.MinYOffset != nil {
		cfg.MinYOffset = f.MinYOffset
	}
	return &cfg
}

func (s *Server) maskSettings(a maskArgs) *config.Config {
	cfg := s.settings(a.filterArgs)
	if a.Connectivity != "" {
		cfg.Connectivity = a.Connectivity
	}
	if a.Threshold != nil {
		cfg.Threshold = a.Threshold
	}
	return cfg
}

// hierarchyResult is returned by the forest-building tools.
type hierarchyResult struct {
	ForestID string             `json:"forest_id"`
	Path     string             `json:"path"`
	Options  hierarchy.Options  `json:"options"`
	Stats    hierarchy.Stats    `json:"stats"`
	Forest   *export.ForestView `json:"forest"`
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Component Analysis Handlers ===

type componentView struct {
	Source string        `json:"source"`
	Label  int           `json:"label"`
	Pixels int           `json:"pixels"`
	Box    hierarchy.Box `json:"box"`
	Kept   bool          `json:"kept"`
}

type componentsResult struct {
	Path       string            `json:"path"`
	Options    hierarchy.Options `json:"options"`
	Total      int               `json:"total"`
	Kept       int               `json:"kept"`
	Components []componentView   `json:"components"`
}

func (s *Server) handleRegionComponents(args json.RawMessage) (interface{}, error) {
	var a maskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg := s.maskSettings(a)
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	labeler, err := cfg.Labeler()
	if err != nil {
		return nil, err
	}
	mask, err := s.cache.LoadMask(a.Path, cfg.ThresholdLevel())
	if err != nil {
		return nil, err
	}

	fg, err := labeler.FindComponents(mask)
	if err != nil {
		return nil, err
	}
	bg, err := labeler.FindComponents(hierarchy.Invert(mask))
	if err != nil {
		return nil, err
	}

	all := append(append([]hierarchy.Region{}, fg...), bg...)
	kept := make(map[hierarchy.Region]bool)
	for _, r := range hierarchy.Filter(all, opts) {
		kept[r] = true
	}

	result := &componentsResult{
		Path:       a.Path,
		Options:    opts,
		Total:      len(all),
		Kept:       len(kept),
		Components: make([]componentView, 0, len(all)),
	}
	for i, r := range all {
		c, ok := r.(*components.Component)
		if !ok {
			continue
		}
		source := "foreground"
		if i >= len(fg) {
			source = "background"
		}
		result.Components = append(result.Components, componentView{
			Source: source,
			Label:  c.Label,
			Pixels: c.Pixels,
			Box:    c.Box,
			Kept:   kept[r],
		})
	}
	return result, nil
}

func (s *Server) handleRegionHierarchy(args json.RawMessage) (interface{}, error) {
	var a maskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg := s.maskSettings(a)
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	labeler, err := cfg.Labeler()
	if err != nil {
		return nil, err
	}
	mask, err := s.cache.LoadMask(a.Path, cfg.ThresholdLevel())
	if err != nil {
		return nil, err
	}

	b := hierarchy.NewBuilder(labeler, opts, s.logger)
	f, stats, err := b.HierarchyWithStats(mask)
	if err != nil {
		return nil, err
	}

	entry := s.forests.Put(a.Path, "components", f)
	return &hierarchyResult{
		ForestID: entry.ID,
		Path:     a.Path,
		Options:  opts,
		Stats:    stats,
		Forest:   export.View(f),
	}, nil
}

type textHierarchyArgs struct {
	filterArgs
	Path          string   `json:"path"`
	Language      string   `json:"language"`
	Levels        []string `json:"levels"`
	MinConfidence float64  `json:"min_confidence"`
}

func (s *Server) handleTextHierarchy(args json.RawMessage) (interface{}, error) {
	var a textHierarchyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Preset == "" {
		a.Preset = "text"
	}
	opts, err := s.settings(a.filterArgs).Options()
	if err != nil {
		return nil, err
	}

	src := &ocr.TextSource{Language: a.Language, MinConfidence: a.MinConfidence}
	for _, name := range a.Levels {
		level, err := ocr.ParseLevel(name)
		if err != nil {
			return nil, err
		}
		src.Levels = append(src.Levels, level)
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	regions, err := src.FindRegions(img)
	if err != nil {
		return nil, err
	}

	f, stats, err := hierarchy.BuildWithStats(regions, opts)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("built text hierarchy", "boxes", stats.Input, "kept", stats.Kept, "roots", stats.Roots)

	entry := s.forests.Put(a.Path, "text", f)
	return &hierarchyResult{
		ForestID: entry.ID,
		Path:     a.Path,
		Options:  opts,
		Stats:    stats,
		Forest:   export.View(f),
	}, nil
}

// === Forest Output Handlers ===

type renderArgs struct {
	ForestID  string `json:"forest_id"`
	Thickness int    `json:"thickness"`
	Labels    *bool  `json:"labels"`
}

func (s *Server) handleRegionHierarchyRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Thickness == 0 {
		a.Thickness = 2
	}
	labels := true
	if a.Labels != nil {
		labels = *a.Labels
	}

	entry, err := s.forests.Get(a.ForestID)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(entry.Path)
	if err != nil {
		return nil, err
	}
	return imaging.RenderForest(img, entry.Forest, imaging.RenderOptions{
		Thickness: a.Thickness,
		Labels:    labels,
	})
}

type dotArgs struct {
	ForestID string `json:"forest_id"`
	Format   string `json:"format"`
}

type dotResult struct {
	ForestID string `json:"forest_id"`
	Format   string `json:"format"`
	Graph    string `json:"graph"`
}

func (s *Server) handleRegionHierarchyDot(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a dotArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Format == "" {
		a.Format = "dot"
	}

	entry, err := s.forests.Get(a.ForestID)
	if err != nil {
		return nil, err
	}
	dot := export.ToDOT(entry.Forest)

	switch a.Format {
	case "dot":
		return &dotResult{ForestID: entry.ID, Format: a.Format, Graph: dot}, nil
	case "svg":
		svg, err := export.RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		return &dotResult{ForestID: entry.ID, Format: a.Format, Graph: string(svg)}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (expected dot or svg)", a.Format)
	}
}

type regionCropArgs struct {
	ForestID string  `json:"forest_id"`
	NodeID   int     `json:"node_id"`
	Scale    float64 `json:"scale"`
}

func (s *Server) handleRegionCrop(args json.RawMessage) (interface{}, error) {
	var a regionCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	entry, err := s.forests.Get(a.ForestID)
	if err != nil {
		return nil, err
	}
	n, ok := export.NodeAt(entry.Forest, a.NodeID)
	if !ok {
		return nil, fmt.Errorf("node %d not in forest %s (%d nodes)", a.NodeID, entry.ID, entry.Forest.Len())
	}
	img, err := s.cache.Load(entry.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CropBox(img, n.Region.BoundingBox(), a.Scale)
}

// === Settings Handlers ===

type presetsResult struct {
	Presets []hierarchy.Preset `json:"presets"`
	Active  hierarchy.Options  `json:"active"`
	Config  *config.Config     `json:"config"`
}

func (s *Server) handleRegionPresets() (interface{}, error) {
	active, err := s.cfg.Options()
	if err != nil {
		return nil, err
	}
	return &presetsResult{
		Presets: hierarchy.Presets(),
		Active:  active,
		Config:  s.cfg,
	}, nil
}
