// Package server implements the MCP (Model Context Protocol) server for
// region hierarchy analysis.
//
// It exposes the hierarchy builder over JSON-RPC 2.0 so an MCP client can ask
// how the shapes in an image nest inside each other, then look at individual
// regions.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Load image and get metadata
//
// Component Analysis:
//   - region_components: List foreground and background components
//   - region_hierarchy: Build the containment forest of an image
//   - text_hierarchy: Build the containment forest of OCR layout boxes
//
// Forest Output:
//   - region_hierarchy_render: Draw the forest over its image
//   - region_hierarchy_dot: Export as Graphviz DOT or SVG
//   - region_crop: Crop one node's bounding box
//
// Settings:
//   - region_presets: List threshold presets and the active settings
//
// # Caching
//
// Decoded images and their binary masks are cached by path for the life of
// the process. Built forests are cached under a random forest_id, and the
// oldest is dropped once DefaultForestCapacity is reached. A tool given an
// evicted id fails with ErrForestNotFound and the client must rebuild.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.NewWithConfig(cfg, logger)
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal(err)
//	}
package server
