package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/region-hierarchy/internal/hierarchy"
)

// ErrUnknownLevel is returned by ParseLevel for unrecognised names.
var ErrUnknownLevel = errors.New("unknown text level")

// Level is a granularity of Tesseract's page layout.
type Level int

const (
	LevelBlock Level = iota
	LevelParagraph
	LevelLine
	LevelWord
)

var levelNames = map[Level]string{
	LevelBlock:     "block",
	LevelParagraph: "paragraph",
	LevelLine:      "line",
	LevelWord:      "word",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel accepts "block", "paragraph" (or "para"), "line" and "word".
func ParseLevel(s string) (Level, error) {
	switch s {
	case "block":
		return LevelBlock, nil
	case "paragraph", "para":
		return LevelParagraph, nil
	case "line":
		return LevelLine, nil
	case "word":
		return LevelWord, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

func (l Level) iteratorLevel() gosseract.PageIteratorLevel {
	switch l {
	case LevelParagraph:
		return gosseract.RIL_PARA
	case LevelLine:
		return gosseract.RIL_TEXTLINE
	case LevelWord:
		return gosseract.RIL_WORD
	default:
		return gosseract.RIL_BLOCK
	}
}

// DefaultLevels returns every level, coarse to fine.
func DefaultLevels() []Level {
	return []Level{LevelBlock, LevelParagraph, LevelLine, LevelWord}
}

// TextRegion is a layout box reported by Tesseract.
type TextRegion struct {
	// Text is the recognised text inside the box.
	Text string `json:"text"`

	// Confidence is Tesseract's confidence (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Level is the layout granularity this box came from.
	Level Level `json:"level"`

	// Box is the bounding box in image coordinates.
	Box hierarchy.Box `json:"box"`
}

// BoundingBox implements hierarchy.Region.
func (r *TextRegion) BoundingBox() hierarchy.Box { return r.Box }

// Area implements hierarchy.Region using the box area.
func (r *TextRegion) Area() int { return r.Box.Area() }

// RegionLabel names the region by level and text for serialised forests.
func (r *TextRegion) RegionLabel() string {
	if r.Text == "" {
		return r.Level.String()
	}
	return r.Level.String() + ": " + r.Text
}

// TextSource collects text layout boxes from an image.
type TextSource struct {
	// Language is the Tesseract language code. Empty selects "eng".
	Language string

	// Levels are queried in order. Empty selects DefaultLevels.
	Levels []Level

	// MinConfidence drops boxes below this confidence (0.0 to 1.0).
	MinConfidence float64
}

// FindRegions runs Tesseract on img and returns one region per layout box,
// grouped by level in the order of s.Levels.
//
// # Errors
//
//   - Returns error if the image cannot be encoded for Tesseract
//   - Returns error if the language data is missing
//   - Returns error if Tesseract fails to produce bounding boxes
func (s *TextSource) FindRegions(img image.Image) ([]hierarchy.Region, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	lang := s.Language
	if lang == "" {
		lang = "eng"
	}
	if err := client.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	levels := s.Levels
	if len(levels) == 0 {
		levels = DefaultLevels()
	}

	var regions []hierarchy.Region
	for _, level := range levels {
		boxes, err := client.GetBoundingBoxes(level.iteratorLevel())
		if err != nil {
			return nil, fmt.Errorf("failed to get %s boxes: %w", level, err)
		}
		regions = append(regions, toRegions(boxes, level, s.MinConfidence, img.Bounds().Min)...)
	}
	return regions, nil
}

// toRegions converts Tesseract boxes, shifting them by origin since the
// encoded PNG always starts at (0,0).
func toRegions(boxes []gosseract.BoundingBox, level Level, minConfidence float64, origin image.Point) []hierarchy.Region {
	regions := make([]hierarchy.Region, 0, len(boxes))
	for _, b := range boxes {
		confidence := b.Confidence / 100.0
		if confidence < minConfidence {
			continue
		}
		if b.Box.Empty() {
			continue
		}
		regions = append(regions, &TextRegion{
			Text:       b.Word,
			Confidence: confidence,
			Level:      level,
			Box:        hierarchy.BoxFromRect(b.Box.Add(origin)),
		})
	}
	return regions
}

// Version returns the linked Tesseract version.
func Version() string {
	return gosseract.Version()
}
