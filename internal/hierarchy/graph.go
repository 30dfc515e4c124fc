package hierarchy

import (
	"golang.org/x/sync/errgroup"
)

// handle is a stable index into graph.nodes.
type handle = int

// containmentNode wraps one region while the hierarchy is being built.
// Children keep insertion order; parents is only used to count and look up
// the containers that still claim this node.
type containmentNode struct {
	region   Region
	children []handle
	parents  map[handle]struct{}
}

// graph is the arena holding every containment node of one Build call.
type graph struct {
	nodes []containmentNode
}

// contains reports whether region i encloses region j. Identical boxes are
// ordered by input position so that only the earlier region wins.
func contains(outer, inner Box, i, j int) bool {
	if !outer.Contains(inner) {
		return false
	}
	if outer == inner {
		return i < j
	}
	return true
}

// buildGraph records every pairwise containment among regions.
//
// Rows are independent, so with workers > 1 each row is computed on its own
// goroutine and only writes its own child list. Parent back-references are
// merged afterwards on the calling goroutine, which keeps the result
// identical to a sequential build.
func buildGraph(regions []Region, workers int) *graph {
	n := len(regions)
	g := &graph{nodes: make([]containmentNode, n)}
	boxes := make([]Box, n)
	for i, r := range regions {
		boxes[i] = r.BoundingBox()
		g.nodes[i] = containmentNode{
			region:  r,
			parents: make(map[handle]struct{}),
		}
	}

	row := func(i int) {
		var children []handle
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if contains(boxes[i], boxes[j], i, j) {
				children = append(children, j)
			}
		}
		g.nodes[i].children = children
	}

	if workers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			row(i)
		}
	} else {
		var eg errgroup.Group
		eg.SetLimit(workers)
		for i := 0; i < n; i++ {
			eg.Go(func() error {
				row(i)
				return nil
			})
		}
		// Rows never fail.
		_ = eg.Wait()
	}

	for i := range g.nodes {
		for _, c := range g.nodes[i].children {
			g.nodes[c].parents[i] = struct{}{}
		}
	}
	return g
}

// edgeCount returns the number of child edges currently in the graph.
func (g *graph) edgeCount() int {
	total := 0
	for i := range g.nodes {
		total += len(g.nodes[i].children)
	}
	return total
}
