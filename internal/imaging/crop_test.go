package imaging

import (
	"encoding/base64"
	"errors"
	"image/color"
	"testing"

	"github.com/ironsheep/region-hierarchy/internal/hierarchy"
)

func TestCropBox(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	result, err := CropBox(img, hierarchy.Box{X: 10, Y: 20, Width: 30, Height: 40}, 1.0)
	if err != nil {
		t.Fatalf("CropBox failed: %v", err)
	}
	if result.Width != 30 || result.Height != 40 {
		t.Errorf("dimensions: got %dx%d, want 30x40", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if _, err := base64.StdEncoding.DecodeString(result.ImageBase64); err != nil {
		t.Errorf("failed to decode base64: %v", err)
	}
}

func TestCropBox_Scale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)

	tests := []struct {
		name  string
		scale float64
		want  int
	}{
		{"unscaled", 0, 50},
		{"double", 2.0, 100},
		{"half", 0.5, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CropBox(img, hierarchy.Box{Width: 50, Height: 50}, tt.scale)
			if err != nil {
				t.Fatalf("CropBox failed: %v", err)
			}
			if result.Width != tt.want || result.Height != tt.want {
				t.Errorf("got %dx%d, want %dx%d", result.Width, result.Height, tt.want, tt.want)
			}
		})
	}
}

func TestCropBox_Invalid(t *testing.T) {
	img := createInMemoryImage(50, 50, color.White)

	if _, err := CropBox(img, hierarchy.Box{X: 40, Y: 40, Width: 20, Height: 20}, 1); err == nil {
		t.Error("expected error for box outside image")
	}
	if _, err := CropBox(img, hierarchy.Box{X: 10, Y: 10}, 1); err == nil {
		t.Error("expected error for empty box")
	}
	_, err := CropBox(img, hierarchy.Box{X: 10, Y: 10, Width: -5, Height: 5}, 1)
	if !errors.Is(err, hierarchy.ErrMalformedBox) {
		t.Errorf("expected ErrMalformedBox, got %v", err)
	}
}
