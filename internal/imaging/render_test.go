package imaging

import (
	"encoding/base64"
	"image/color"
	"testing"

	"github.com/ironsheep/region-hierarchy/internal/hierarchy"
)

func testForest(t *testing.T) *hierarchy.Forest {
	t.Helper()
	f, err := hierarchy.Build([]hierarchy.Region{
		hierarchy.NewBoxRegion("outer", 10, 10, 60, 60),
		hierarchy.NewBoxRegion("inner", 20, 20, 20, 20),
	}, hierarchy.Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return f
}

func TestOverlay_DrawsDepthColours(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)
	canvas := Overlay(img, testForest(t), RenderOptions{Thickness: 2})

	outer := DepthColor(0)
	inner := DepthColor(1)
	if outer == inner {
		t.Fatal("depth colours must differ between levels")
	}

	got := canvas.NRGBAAt(10, 10)
	if got.R != outer.R || got.G != outer.G || got.B != outer.B {
		t.Errorf("outer corner: got %v, want %v", got, outer)
	}
	got = canvas.NRGBAAt(21, 30)
	if got.R != inner.R || got.G != inner.G || got.B != inner.B {
		t.Errorf("inner edge: got %v, want %v", got, inner)
	}
	got = canvas.NRGBAAt(30, 30)
	if got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("interior should stay white, got %v", got)
	}

	// Source image must not be modified.
	if r, _, _, _ := img.At(10, 10).RGBA(); r>>8 != 255 {
		t.Error("Overlay modified the source image")
	}
}

func TestRenderForest(t *testing.T) {
	img := createInMemoryImage(100, 80, color.White)

	result, err := RenderForest(img, testForest(t), RenderOptions{Labels: true})
	if err != nil {
		t.Fatalf("RenderForest failed: %v", err)
	}
	if result.Width != 100 || result.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", result.Width, result.Height)
	}
	if result.Nodes != 2 || result.Depth != 2 {
		t.Errorf("got %d nodes depth %d, want 2 nodes depth 2", result.Nodes, result.Depth)
	}
	if _, err := base64.StdEncoding.DecodeString(result.ImageBase64); err != nil {
		t.Errorf("failed to decode base64: %v", err)
	}
}

func TestRenderForest_Empty(t *testing.T) {
	f, _ := hierarchy.Build(nil, hierarchy.DefaultOptions())
	result, err := RenderForest(createInMemoryImage(10, 10, color.Black), f, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderForest failed: %v", err)
	}
	if result.Nodes != 0 {
		t.Errorf("Nodes: got %d, want 0", result.Nodes)
	}
}
