package hierarchy

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPreset is returned by LookupPreset for names not in the registry.
var ErrUnknownPreset = errors.New("unknown preset")

// Default thresholds. The offsets act as a coarse border exclusion: the
// background component of a thresholded image almost always starts at (0,0).
const (
	DefaultMinArea    = 20
	DefaultMinXOffset = 5
	DefaultMinYOffset = 5
)

// Options controls region filtering and graph construction.
type Options struct {
	// MinArea is the smallest bounding box area kept. Zero or negative values
	// keep every region regardless of size.
	MinArea int `json:"min_area" yaml:"min_area" toml:"min_area"`

	// MinXOffset drops regions whose box starts left of this column.
	MinXOffset int `json:"min_x_offset" yaml:"min_x_offset" toml:"min_x_offset"`

	// MinYOffset drops regions whose box starts above this row.
	MinYOffset int `json:"min_y_offset" yaml:"min_y_offset" toml:"min_y_offset"`

	// Workers bounds the goroutines used for the containment graph.
	// Values below 2 build the graph on the calling goroutine.
	Workers int `json:"workers" yaml:"workers" toml:"workers"`
}

// DefaultOptions returns the options of the "default" preset.
func DefaultOptions() Options {
	return Options{
		MinArea:    DefaultMinArea,
		MinXOffset: DefaultMinXOffset,
		MinYOffset: DefaultMinYOffset,
	}
}

// Preset is a named, described set of Options.
type Preset struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Options     Options `json:"options"`
}

var presets = map[string]Preset{
	"default": {
		Name:        "default",
		Description: "Drops regions under 20px² and regions starting within 5px of the top/left border.",
		Options:     DefaultOptions(),
	},
	"permissive": {
		Name:        "permissive",
		Description: "Keeps every region, including the image background and border-touching shapes.",
		Options:     Options{},
	},
	"document": {
		Name:        "document",
		Description: "Page layout analysis: ignores specks under 100px² and anything in a 10px margin.",
		Options:     Options{MinArea: 100, MinXOffset: 10, MinYOffset: 10},
	},
	"text": {
		Name:        "text",
		Description: "OCR layout boxes: no border exclusion, drops boxes under 4px².",
		Options:     Options{MinArea: 4},
	},
}

// LookupPreset returns the preset registered under name. An empty name
// selects "default".
func LookupPreset(name string) (Preset, error) {
	if name == "" {
		name = "default"
	}
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Presets returns every registered preset sorted by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
