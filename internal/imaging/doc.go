// Package imaging loads images for region analysis and renders the results.
//
// It covers the image I/O around the hierarchy core: decoding files (with
// EXIF orientation applied), caching decoded images and their binary masks,
// cropping a region's bounding box, and drawing a containment forest over
// the source image.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner.
// Region boxes use the same space as the decoded image.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Rendering functions never modify
// their input image; they draw on a copy.
//
// # Output Encoding
//
// Rendered and cropped images are returned as base64 PNG so they can travel
// inside JSON-RPC responses.
package imaging
