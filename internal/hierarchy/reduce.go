package hierarchy

import "sort"

// reduce collapses the containment graph into a forest of direct edges.
//
// Nodes are visited once, most children first (stable on input order). A
// node with no parents is attached to the root. Each of its child edges is
// kept only if the child is claimed by this node alone; otherwise the edge is
// pruned in both directions. A child's verdict depends on its parent count at
// the moment its parent is visited, so the outcome is order dependent.
//
// It returns the handles of the top-level nodes in attach order and the
// number of pruned edges.
func (g *graph) reduce() (roots []handle, pruned int) {
	order := make([]handle, len(g.nodes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(g.nodes[order[a]].children) > len(g.nodes[order[b]].children)
	})

	for _, h := range order {
		node := &g.nodes[h]
		if len(node.parents) == 0 {
			roots = append(roots, h)
		}

		var drop []handle
		for _, c := range node.children {
			if len(g.nodes[c].parents) > 1 {
				drop = append(drop, c)
			}
		}
		if len(drop) == 0 {
			continue
		}

		for _, c := range drop {
			delete(g.nodes[c].parents, h)
		}
		kept := node.children[:0]
		for _, c := range node.children {
			if _, ok := g.nodes[c].parents[h]; ok {
				kept = append(kept, c)
			}
		}
		node.children = kept
		pruned += len(drop)
	}
	return roots, pruned
}

// forest materialises the reduced graph as a tree of Nodes.
func (g *graph) forest(roots []handle) *Forest {
	built := make([]*Node, len(g.nodes))
	var materialise func(h handle) *Node
	materialise = func(h handle) *Node {
		if n := built[h]; n != nil {
			return n
		}
		n := &Node{Region: g.nodes[h].region}
		built[h] = n
		if len(g.nodes[h].children) > 0 {
			n.Children = make([]*Node, 0, len(g.nodes[h].children))
			for _, c := range g.nodes[h].children {
				n.Children = append(n.Children, materialise(c))
			}
		}
		return n
	}

	root := &Node{}
	for _, h := range roots {
		root.Children = append(root.Children, materialise(h))
	}
	return &Forest{Root: root}
}
