package hierarchy

import (
	"errors"
	"fmt"
	"image"
)

// ErrMalformedBox is returned when a region reports a bounding box with a
// negative width or height.
var ErrMalformedBox = errors.New("malformed bounding box")

// Box is an axis-aligned bounding box in pixel coordinates.
type Box struct {
	X      int `json:"x" yaml:"x"`           // Left edge
	Y      int `json:"y" yaml:"y"`           // Top edge
	Width  int `json:"width" yaml:"width"`   // Horizontal extent
	Height int `json:"height" yaml:"height"` // Vertical extent
}

// BoxFromRect converts an image.Rectangle to a Box.
func BoxFromRect(r image.Rectangle) Box {
	return Box{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Right returns the right edge (X + Width).
func (b Box) Right() int { return b.X + b.Width }

// Bottom returns the bottom edge (Y + Height).
func (b Box) Bottom() int { return b.Y + b.Height }

// Area returns Width × Height.
func (b Box) Area() int { return b.Width * b.Height }

// Rect converts the box back to an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.Right(), b.Bottom())
}

// Contains reports whether inner lies entirely within b. Edges are inclusive,
// so a box always contains itself.
func (b Box) Contains(inner Box) bool {
	return inner.X >= b.X &&
		inner.Y >= b.Y &&
		inner.Right() <= b.Right() &&
		inner.Bottom() <= b.Bottom()
}

// Validate returns ErrMalformedBox if the width or height is negative.
func (b Box) Validate() error {
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: %dx%d at (%d,%d)", ErrMalformedBox, b.Width, b.Height, b.X, b.Y)
	}
	return nil
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", b.X, b.Y, b.Width, b.Height)
}

// Region is a detected area of an image, abstracted to its bounding box and
// its area. Implementations must be immutable for the duration of a Build.
//
// Area is the region's own measure (for connected components, the number of
// pixels). Filtering uses the bounding box area, not Area.
type Region interface {
	BoundingBox() Box
	Area() int
}

// BoxRegion is a Region backed by nothing but a box and an optional label.
type BoxRegion struct {
	Box   Box
	Label string
}

// NewBoxRegion returns a labeled BoxRegion.
func NewBoxRegion(label string, x, y, width, height int) *BoxRegion {
	return &BoxRegion{
		Box:   Box{X: x, Y: y, Width: width, Height: height},
		Label: label,
	}
}

// BoundingBox implements Region.
func (r *BoxRegion) BoundingBox() Box { return r.Box }

// Area implements Region using the box area.
func (r *BoxRegion) Area() int { return r.Box.Area() }

func (r *BoxRegion) String() string {
	if r.Label == "" {
		return r.Box.String()
	}
	return r.Label + r.Box.String()
}
