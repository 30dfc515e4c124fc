// Package components extracts connected components from binary masks.
//
// It supplies the regions consumed by package hierarchy: Binarize turns any
// image into a 0/255 mask, and Labeler groups adjacent foreground pixels into
// Components carrying a pixel count and a bounding box.
//
// Labeling the mask and its inverse (see hierarchy.Invert) yields both the
// shapes and the holes inside them, which is what the containment forest
// needs to describe nesting.
package components
