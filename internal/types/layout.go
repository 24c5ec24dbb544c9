// internal/types/layout.go
package types

// BoundingBox is a rectangle in screen cells relative to the document origin.
type BoundingBox struct {
	Left   int
	Width  int
	Top    int
	Height int
}

// Right returns the exclusive right edge.
func (b BoundingBox) Right() int {
	return b.Left + b.Width
}

// LineBoxes is implemented by laid-out lines that can report the boxes
// covering a span of line offsets.
type LineBoxes interface {
	ResolveBoundingBoxes(from, to int) []BoundingBox
}

// LinePosition is a resolved position at line depth: the line node and the
// offset within it.
type LinePosition struct {
	Node   LineBoxes
	Offset int
}

// PositionResolution is the result of resolving a render offset in the layout tree.
type PositionResolution interface {
	AtLineDepth() LinePosition
}
