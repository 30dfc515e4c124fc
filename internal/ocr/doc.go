// Package ocr turns Tesseract page layout into hierarchy regions.
//
// Tesseract (via gosseract/v2) reports bounding boxes at several iterator
// levels: blocks, paragraphs, lines and words. TextSource collects those boxes
// as hierarchy.Region values so that the containment forest of a scanned page
// mirrors its text layout, with words nested in lines nested in paragraphs.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Level Order
//
// Levels are queried from coarse to fine. When a line holds a single word,
// the line and word boxes are identical; the hierarchy builder resolves such
// ties by input order, so the coarser box becomes the parent.
package ocr
