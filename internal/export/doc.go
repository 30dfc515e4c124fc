// Package export serialises containment forests.
//
// A forest can be written as a JSON or YAML tree (View), as Graphviz DOT
// source (ToDOT), or rendered to SVG through an embedded Graphviz build
// (RenderSVG). Nodes are numbered in pre-order starting at 0; the same
// numbering is used for overlay labels and for addressing nodes in the
// server's region_crop tool.
package export
