package hierarchy

import (
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
)

// Labeler finds the connected components of a binary mask. Foreground pixels
// have a gray value of 128 or more.
type Labeler interface {
	FindComponents(mask *image.Gray) ([]Region, error)
}

// Stats summarises one Build call.
type Stats struct {
	Input       int           `json:"input"`
	Kept        int           `json:"kept"`
	Edges       int           `json:"edges"`
	PrunedEdges int           `json:"pruned_edges"`
	Roots       int           `json:"roots"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

// Build filters regions and reduces their containment graph to a Forest.
//
// Parameters:
//   - regions: Candidate regions in source order. May be nil.
//   - opts: Filtering thresholds and worker count.
//
// Returns:
//   - *Forest: Never nil on success. Empty input yields a root with no children.
//   - error: A *RegionError wrapping ErrMalformedBox if any bounding box has a
//     negative width or height.
func Build(regions []Region, opts Options) (*Forest, error) {
	f, _, err := BuildWithStats(regions, opts)
	return f, err
}

// BuildWithStats is Build plus counters describing the run.
func BuildWithStats(regions []Region, opts Options) (*Forest, Stats, error) {
	start := time.Now()
	stats := Stats{Input: len(regions)}

	if err := validate(regions); err != nil {
		return nil, stats, err
	}

	kept := Filter(regions, opts)
	g := buildGraph(kept, opts.Workers)
	stats.Kept = len(kept)
	stats.Edges = g.edgeCount()

	roots, pruned := g.reduce()
	stats.PrunedEdges = pruned
	stats.Roots = len(roots)

	f := g.forest(roots)
	stats.Elapsed = time.Since(start)
	return f, stats, nil
}

// Builder runs a Labeler over a mask and its inverse and builds the forest
// of the combined components.
type Builder struct {
	labeler Labeler
	opts    Options
	logger  *log.Logger
}

// NewBuilder returns a Builder. A nil logger selects log.Default().
func NewBuilder(labeler Labeler, opts Options, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{labeler: labeler, opts: opts, logger: logger}
}

// Options returns the thresholds the builder was created with.
func (b *Builder) Options() Options { return b.opts }

// Components returns the components of mask followed by those of its inverse.
func (b *Builder) Components(mask *image.Gray) ([]Region, error) {
	fg, err := b.labeler.FindComponents(mask)
	if err != nil {
		return nil, fmt.Errorf("label mask: %w", err)
	}
	bg, err := b.labeler.FindComponents(Invert(mask))
	if err != nil {
		return nil, fmt.Errorf("label inverse mask: %w", err)
	}
	return append(fg, bg...), nil
}

// Hierarchy labels mask and its inverse, then builds the containment forest
// of all components found.
func (b *Builder) Hierarchy(mask *image.Gray) (*Forest, error) {
	f, _, err := b.HierarchyWithStats(mask)
	return f, err
}

// HierarchyWithStats is Hierarchy plus counters describing the run.
func (b *Builder) HierarchyWithStats(mask *image.Gray) (*Forest, Stats, error) {
	regions, err := b.Components(mask)
	if err != nil {
		return nil, Stats{}, err
	}

	f, stats, err := BuildWithStats(regions, b.opts)
	if err != nil {
		return nil, stats, err
	}

	b.logger.Debug("built region hierarchy",
		"components", stats.Input,
		"kept", stats.Kept,
		"edges", stats.Edges,
		"pruned", stats.PrunedEdges,
		"roots", stats.Roots,
		"elapsed", stats.Elapsed.Round(time.Microsecond))
	return f, stats, nil
}

// Invert returns the logical complement of a binary mask: foreground pixels
// become 0 and everything else becomes 255.
func Invert(mask *image.Gray) *image.Gray {
	out := image.NewGray(mask.Rect)
	for y := mask.Rect.Min.Y; y < mask.Rect.Max.Y; y++ {
		src := mask.Pix[(y-mask.Rect.Min.Y)*mask.Stride:]
		dst := out.Pix[(y-out.Rect.Min.Y)*out.Stride:]
		for x := 0; x < mask.Rect.Dx(); x++ {
			if src[x] < 128 {
				dst[x] = 255
			}
		}
	}
	return out
}
