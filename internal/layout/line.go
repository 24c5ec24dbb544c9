package layout

import (
	"sort"

	"github.com/bethropolis/tideweave/internal/types"
)

// Line is one visual row of the document. Offsets passed to its methods are
// relative to Start.
type Line struct {
	index     int
	paragraph int
	start     types.RenderOffset
	clusters  []string
	lefts     []int // left edge of each cluster
	width     int   // right edge of the last cluster
	soft      bool  // ends in a soft wrap rather than a line break
}

func (l *Line) Index() int                { return l.index }
func (l *Line) Paragraph() int            { return l.paragraph }
func (l *Line) Start() types.RenderOffset { return l.start }
func (l *Line) Len() int                  { return len(l.clusters) }
func (l *Line) Width() int                { return l.width }
func (l *Line) SoftWrapped() bool         { return l.soft }

// End is the render offset just after the line's last cluster.
func (l *Line) End() types.RenderOffset {
	return l.start + types.RenderOffset(len(l.clusters))
}

// Clusters returns the line's grapheme clusters, line break excluded.
func (l *Line) Clusters() []string {
	return l.clusters
}

// X returns the left edge of the caret at offset, or -1 when offset is not on the line.
func (l *Line) X(offset int) int {
	switch {
	case offset < 0 || offset > len(l.clusters):
		return -1
	case offset == len(l.clusters):
		return l.width
	default:
		return l.lefts[offset]
	}
}

// ResolveBoundingBoxes returns one box per cluster in [from, to), or a single
// zero-width caret box when from == to. Offsets outside the line yield no boxes.
func (l *Line) ResolveBoundingBoxes(from, to int) []types.BoundingBox {
	if from < 0 || to > len(l.clusters) || to < from {
		return nil
	}
	if from == to {
		return []types.BoundingBox{{Left: l.X(from), Top: l.index, Height: 1}}
	}
	boxes := make([]types.BoundingBox, 0, to-from)
	for i := from; i < to; i++ {
		boxes = append(boxes, types.BoundingBox{
			Left:   l.lefts[i],
			Width:  l.X(i+1) - l.lefts[i],
			Top:    l.index,
			Height: 1,
		})
	}
	return boxes
}

// OffsetAtX returns the offset of the last caret position whose left edge is
// at or before x. The end of a soft-wrapped line belongs to the next line, so
// it is never returned.
func (l *Line) OffsetAtX(x int) int {
	last := len(l.clusters)
	if l.soft && last > 0 {
		last--
	}
	i := sort.Search(last+1, func(i int) bool { return l.X(i) > x })
	if i == 0 {
		return 0
	}
	return i - 1
}

var _ types.LineBoxes = (*Line)(nil)
