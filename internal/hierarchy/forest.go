package hierarchy

// Node is one region in the finished forest. The synthetic root of a Forest
// is a Node with a nil Region.
type Node struct {
	Region   Region
	Children []*Node
}

// IsRoot reports whether n is the synthetic root.
func (n *Node) IsRoot() bool { return n.Region == nil }

// Forest is the result of a hierarchy build: a synthetic root whose children
// are the top-level regions.
type Forest struct {
	Root *Node
}

// Roots returns the top-level nodes.
func (f *Forest) Roots() []*Node {
	if f == nil || f.Root == nil {
		return nil
	}
	return f.Root.Children
}

// Walk visits every non-root node in pre-order. depth is 0 for top-level
// nodes. Returning false from fn skips that node's descendants.
func (f *Forest) Walk(fn func(n *Node, depth int) bool) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	for _, r := range f.Roots() {
		visit(r, 0)
	}
}

// Len returns the number of regions in the forest, excluding the root.
func (f *Forest) Len() int {
	count := 0
	f.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Depth returns the number of levels below the root. An empty forest has
// depth 0, a forest of unrelated regions has depth 1.
func (f *Forest) Depth() int {
	deepest := 0
	f.Walk(func(_ *Node, depth int) bool {
		if depth+1 > deepest {
			deepest = depth + 1
		}
		return true
	})
	return deepest
}

// Regions flattens the forest in pre-order.
func (f *Forest) Regions() []Region {
	var out []Region
	f.Walk(func(n *Node, _ int) bool {
		out = append(out, n.Region)
		return true
	})
	return out
}
