package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/ironsheep/region-hierarchy/internal/hierarchy"
)

// ToDOT converts a forest to Graphviz DOT. Edges point from the enclosing
// region to the enclosed one. The synthetic root is omitted.
func ToDOT(f *hierarchy.Forest) string {
	var buf bytes.Buffer
	buf.WriteString("digraph regions {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	var edges []string
	var emit func(v *NodeView)
	emit = func(v *NodeView) {
		label := fmt.Sprintf("#%d %s\\narea %d", v.ID, v.Box, v.Area)
		if v.Label != "" {
			label = fmt.Sprintf("#%d %s\\n%s\\narea %d", v.ID, v.Label, v.Box, v.Area)
		}
		fmt.Fprintf(&buf, "  n%d [label=\"%s\"];\n", v.ID, escapeDOT(label))
		for _, c := range v.Children {
			edges = append(edges, fmt.Sprintf("  n%d -> n%d;\n", v.ID, c.ID))
			emit(c)
		}
	}
	for _, r := range View(f).Roots {
		emit(r)
	}

	if len(edges) > 0 {
		buf.WriteString("\n")
		for _, e := range edges {
			buf.WriteString(e)
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

// escapeDOT escapes double quotes while keeping \n line breaks intact.
func escapeDOT(s string) string {
	var out bytes.Buffer
	for _, r := range s {
		if r == '"' {
			out.WriteString(`\"`)
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
