// Package hierarchy builds a containment forest from a flat list of regions.
//
// Regions are usually connected components found in a binary mask and in its
// inverse, so that both "ink" and the holes inside it are treated alike. The
// package answers one question: which region sits directly inside which other
// region.
//
// # Pipeline
//
// Construction runs in three stages:
//
//  1. Filtering: regions whose bounding box is smaller than MinArea, or whose
//     origin lies closer to the top/left border than MinXOffset/MinYOffset,
//     are discarded.
//  2. Containment graph: every surviving region is compared against every
//     other region. When one bounding box lies inside another (shared edges
//     count as inside) an outer->inner child edge and an inner->outer parent
//     back-reference are recorded.
//  3. Reduction: nodes are visited once, ordered by descending child count.
//     A node without parents becomes a top-level region. A child edge is kept
//     only when the child has exactly one remaining parent, otherwise the edge
//     is implied by a longer chain and is pruned in both directions.
//
// The result is a Forest: a synthetic root whose children are the top-level
// regions. Every other node has exactly one parent.
//
// # Heuristics
//
// Containment is decided on bounding boxes only, and the reduction is a single
// order-dependent pass rather than a textbook transitive reduction. Both are
// deliberate: the output matches the region grouping used by downstream
// segmentation code, which was tuned against this exact ordering.
//
// When two distinct regions share an identical bounding box, the one earlier
// in input order contains the later one. No two-cycles are produced.
//
// # Coordinate System
//
// Boxes use the standard image convention: origin at top-left, X grows to
// the right, Y grows downward. A Box spans [X, X+Width] x [Y, Y+Height].
package hierarchy
