package components

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/region-hierarchy/internal/hierarchy"
)

// ErrUnknownConnectivity is returned by ParseConnectivity for values other
// than 4 and 8.
var ErrUnknownConnectivity = errors.New("unknown connectivity")

// DefaultThreshold is the gray level splitting foreground from background
// (half of the 8-bit range).
const DefaultThreshold uint8 = 128

// Connectivity selects which neighbours join two pixels into one component.
type Connectivity int

const (
	// Connect4 joins pixels sharing an edge.
	Connect4 Connectivity = 4
	// Connect8 also joins diagonal neighbours.
	Connect8 Connectivity = 8
)

// ParseConnectivity accepts "4", "8" or "" (Connect4).
func ParseConnectivity(s string) (Connectivity, error) {
	switch s {
	case "", "4":
		return Connect4, nil
	case "8":
		return Connect8, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownConnectivity, s)
	}
}

func (c Connectivity) String() string {
	return fmt.Sprintf("%d", int(c))
}

var (
	offsets4 = []image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	offsets8 = []image.Point{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
)

func (c Connectivity) offsets() []image.Point {
	if c == Connect8 {
		return offsets8
	}
	return offsets4
}

// Component is one connected set of foreground pixels.
type Component struct {
	// Label is the 1-based discovery order of the component within its mask.
	Label int `json:"label"`

	// Pixels is the number of pixels in the component.
	Pixels int `json:"pixels"`

	// Box is the bounding box of the component. Width and Height count
	// pixels, so a single pixel has a 1x1 box.
	Box hierarchy.Box `json:"box"`
}

// BoundingBox implements hierarchy.Region.
func (c *Component) BoundingBox() hierarchy.Box { return c.Box }

// Area implements hierarchy.Region and returns the pixel count.
func (c *Component) Area() int { return c.Pixels }

// Labeler finds connected components in binary masks.
// It implements hierarchy.Labeler.
type Labeler struct {
	Connectivity Connectivity
}

// NewLabeler returns a Labeler using the given connectivity.
func NewLabeler(c Connectivity) *Labeler {
	return &Labeler{Connectivity: c}
}

// FindComponents labels the foreground of mask (gray value >= 128).
//
// Components are returned in raster order of their first pixel: scanning
// rows top to bottom, columns left to right. Coordinates are absolute, so a
// mask whose bounds do not start at (0,0) yields boxes in the same space.
//
// # Algorithm
//
// An iterative, stack-based flood fill visits each foreground pixel once,
// avoiding recursion depth limits on large components.
func (l *Labeler) FindComponents(mask *image.Gray) ([]hierarchy.Region, error) {
	if mask == nil {
		return nil, nil
	}
	bounds := mask.Rect
	width, height := bounds.Dx(), bounds.Dy()
	visited := make([]bool, width*height)
	offsets := l.Connectivity.offsets()

	foreground := func(x, y int) bool {
		return mask.Pix[y*mask.Stride+x] >= 128
	}

	var regions []hierarchy.Region
	var stack []image.Point
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || !foreground(x, y) {
				continue
			}

			minX, minY, maxX, maxY := x, y, x, y
			pixels := 0
			visited[y*width+x] = true
			stack = append(stack[:0], image.Point{X: x, Y: y})

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				pixels++

				if p.X < minX {
					minX = p.X
				}
				if p.X > maxX {
					maxX = p.X
				}
				if p.Y < minY {
					minY = p.Y
				}
				if p.Y > maxY {
					maxY = p.Y
				}

				for _, d := range offsets {
					nx, ny := p.X+d.X, p.Y+d.Y
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					if visited[ny*width+nx] || !foreground(nx, ny) {
						continue
					}
					visited[ny*width+nx] = true
					stack = append(stack, image.Point{X: nx, Y: ny})
				}
			}

			regions = append(regions, &Component{
				Label:  len(regions) + 1,
				Pixels: pixels,
				Box: hierarchy.Box{
					X:      minX + bounds.Min.X,
					Y:      minY + bounds.Min.Y,
					Width:  maxX - minX + 1,
					Height: maxY - minY + 1,
				},
			})
		}
	}
	return regions, nil
}

// Binarize converts img to a 0/255 mask. Pixels whose luminance is at least
// level become foreground (255).
func Binarize(img image.Image, level uint8) *image.Gray {
	gray := imaging.Grayscale(img)
	mask := segment.Threshold(gray, level)
	if b := img.Bounds(); b.Min != (image.Point{}) {
		// imaging normalises bounds to start at the origin.
		mask.Rect = mask.Rect.Add(b.Min)
	}
	return mask
}
