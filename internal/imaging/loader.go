package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/region-hierarchy/internal/components"
)

// ImageCache provides thread-safe caching of decoded images and of the binary
// masks derived from them.
//
// Images are keyed by their path. Masks are keyed by path and threshold level,
// so asking for the same mask twice does not re-run binarisation. Evicting a
// path drops the image and every mask derived from it.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	mask, err := cache.LoadMask("/path/to/scan.png", components.DefaultThreshold)
//	if err != nil {
//	    return err
//	}
//	forest, err := builder.Hierarchy(mask)
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
	masks  map[maskKey]*image.Gray
}

type maskKey struct {
	path  string
	level uint8
}

// NewImageCache creates an empty cache ready for concurrent use.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
		masks:  make(map[maskKey]*image.Gray),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// JPEG files carrying an EXIF orientation tag are rotated upright while
// decoding, so region coordinates match what a viewer displays.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid PNG, JPEG, or GIF image
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadMask returns the binary mask of the image at path, thresholded at level.
func (c *ImageCache) LoadMask(path string, level uint8) (*image.Gray, error) {
	key := maskKey{path: path, level: level}
	c.mu.RLock()
	if m, ok := c.masks[key]; ok {
		c.mu.RUnlock()
		return m, nil
	}
	c.mu.RUnlock()

	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	mask := components.Binarize(img, level)

	c.mu.Lock()
	c.masks[key] = mask
	c.mu.Unlock()
	return mask, nil
}

// Clear removes all images and masks from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.masks = make(map[maskKey]*image.Gray)
	c.mu.Unlock()
}

// Evict removes an image and its masks. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	for k := range c.masks {
		if k.path == path {
			delete(c.masks, k)
		}
	}
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif", or "unknown", taken from the extension.
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded image has an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}
