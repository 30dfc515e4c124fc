package hierarchy

import "fmt"

// Filter returns the regions that survive the thresholds in opts, in input
// order. The input slice is not modified.
//
// A region survives when its bounding box area is at least MinArea and its
// box origin is at least (MinXOffset, MinYOffset). Filter is idempotent.
func Filter(regions []Region, opts Options) []Region {
	kept := make([]Region, 0, len(regions))
	for _, r := range regions {
		box := r.BoundingBox()
		if box.Area() < opts.MinArea || box.X < opts.MinXOffset || box.Y < opts.MinYOffset {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// RegionError reports which input region failed validation.
type RegionError struct {
	Index int
	Err   error
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("region %d: %v", e.Index, e.Err)
}

func (e *RegionError) Unwrap() error { return e.Err }

// validate checks every bounding box before any graph is built.
func validate(regions []Region) error {
	for i, r := range regions {
		if err := r.BoundingBox().Validate(); err != nil {
			return &RegionError{Index: i, Err: err}
		}
	}
	return nil
}
