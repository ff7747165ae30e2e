// Package convert adapts ImageMagick into the pipeline's image conversion
// capability: source scan in, bounded-width web asset plus pixel dimensions
// out. Format support is a configuration concern validated before any item
// is processed.
package convert
