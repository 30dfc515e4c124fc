package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/region-hierarchy/internal/hierarchy"
)

// CropResult contains the cropped image data
type CropResult struct {
	Box         hierarchy.Box `json:"box"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	ImageBase64 string        `json:"image_base64"`
	MimeType    string        `json:"mime_type"`
}

// CropBox extracts a region's bounding box from an image, optionally scaled.
// A scale of 0 or 1 keeps the original size.
func CropBox(img image.Image, box hierarchy.Box, scale float64) (*CropResult, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	r := box.Rect()
	if !r.In(bounds) {
		return nil, fmt.Errorf("crop box %v outside image bounds %v", box, bounds)
	}
	if r.Empty() {
		return nil, fmt.Errorf("crop box %v is empty", box)
	}

	cropped := imaging.Crop(img, r)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Box:         box,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
