package export

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/region-hierarchy/internal/hierarchy"
)

// NodeView is the serialisable form of a forest node.
type NodeView struct {
	ID       int           `json:"id" yaml:"id"`
	Box      hierarchy.Box `json:"box" yaml:"box"`
	Area     int           `json:"area" yaml:"area"`
	Label    string        `json:"label,omitempty" yaml:"label,omitempty"`
	Children []*NodeView   `json:"children,omitempty" yaml:"children,omitempty"`
}

// ForestView is the serialisable form of a forest.
type ForestView struct {
	Nodes int         `json:"nodes" yaml:"nodes"`
	Depth int         `json:"depth" yaml:"depth"`
	Roots []*NodeView `json:"roots" yaml:"roots"`
}

// Labeled is implemented by regions that carry a human-readable label.
type Labeled interface {
	RegionLabel() string
}

// labelOf returns a region's label, falling back to fmt.Stringer.
func labelOf(r hierarchy.Region) string {
	switch v := r.(type) {
	case Labeled:
		return v.RegionLabel()
	case *hierarchy.BoxRegion:
		return v.Label
	case fmt.Stringer:
		return v.String()
	}
	return ""
}

// View converts a forest to its serialisable form.
func View(f *hierarchy.Forest) *ForestView {
	id := 0
	var convert func(n *hierarchy.Node) *NodeView
	convert = func(n *hierarchy.Node) *NodeView {
		v := &NodeView{
			ID:    id,
			Box:   n.Region.BoundingBox(),
			Area:  n.Region.Area(),
			Label: labelOf(n.Region),
		}
		id++
		for _, c := range n.Children {
			v.Children = append(v.Children, convert(c))
		}
		return v
	}

	view := &ForestView{Roots: []*NodeView{}}
	for _, r := range f.Roots() {
		view.Roots = append(view.Roots, convert(r))
	}
	view.Nodes = id
	view.Depth = f.Depth()
	return view
}

// NodeAt returns the node with the given pre-order id.
func NodeAt(f *hierarchy.Forest, id int) (*hierarchy.Node, bool) {
	var found *hierarchy.Node
	i := 0
	f.Walk(func(n *hierarchy.Node, _ int) bool {
		if found != nil {
			return false
		}
		if i == id {
			found = n
		}
		i++
		return true
	})
	return found, found != nil
}

// ToJSON returns the indented JSON form of a forest.
func ToJSON(f *hierarchy.Forest) ([]byte, error) {
	b, err := json.MarshalIndent(View(f), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal forest: %w", err)
	}
	return b, nil
}

// ToYAML returns the YAML form of a forest.
func ToYAML(f *hierarchy.Forest) ([]byte, error) {
	b, err := yaml.Marshal(View(f))
	if err != nil {
		return nil, fmt.Errorf("marshal forest: %w", err)
	}
	return b, nil
}
