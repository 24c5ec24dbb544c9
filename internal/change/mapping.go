package change

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tideweave/internal/types"
)

// Assoc selects which side of an insertion a mapped offset sticks to.
type Assoc int

const (
	AssocLeft  Assoc = -1 // stay before content inserted at the offset
	AssocRight Assoc = 1  // move after content inserted at the offset
)

// Span is one modified chunk: OldSize offsets starting at Start were replaced
// by NewSize offsets.
type Span struct {
	Start   types.ModelOffset
	OldSize int
	NewSize int
}

// Mapping translates model offsets from before an edit to after it.
// Spans are ordered by Start and expressed in pre-edit coordinates.
type Mapping struct {
	spans    []Span
	inverted bool
}

// MapResult is a mapped offset plus whether its surroundings were deleted.
type MapResult struct {
	Pos     types.ModelOffset
	Deleted bool
}

// Identity leaves every offset unchanged.
var Identity = Mapping{}

// NewMapping builds a mapping from spans in pre-edit coordinates.
func NewMapping(spans ...Span) Mapping {
	return Mapping{spans: append([]Span(nil), spans...)}
}

// Spans returns a copy of the mapping's spans.
func (m Mapping) Spans() []Span {
	return append([]Span(nil), m.spans...)
}

// Inverted reports whether this mapping is the reverse of the one its spans describe.
func (m Mapping) Inverted() bool {
	return m.inverted
}

// Reverse returns the mapping from post-edit offsets back to pre-edit offsets.
func (m Mapping) Reverse() Mapping {
	return Mapping{spans: m.spans, inverted: !m.inverted}
}

// effective returns the spans as they apply in the mapping's direction, each
// Start in the coordinates the span is met in while mapping.
func (m Mapping) effective() []Span {
	out := make([]Span, len(m.spans))
	shift := 0
	for i, s := range m.spans {
		if m.inverted {
			out[i] = Span{Start: s.Start + types.ModelOffset(shift), OldSize: s.NewSize, NewSize: s.OldSize}
		} else {
			out[i] = s
		}
		shift += s.NewSize - s.OldSize
	}
	return out
}

// Mirrors reports whether m undoes exactly the edit o describes.
func (m Mapping) Mirrors(o Mapping) bool {
	mine, theirs := m.effective(), o.effective()
	if len(mine) != len(theirs) {
		return false
	}
	shift := 0
	for i, s := range theirs {
		want := Span{Start: s.Start + types.ModelOffset(shift), OldSize: s.NewSize, NewSize: s.OldSize}
		if mine[i] != want {
			return false
		}
		shift += s.NewSize - s.OldSize
	}
	return true
}

// Delta is the total change in document size.
func (m Mapping) Delta() int {
	d := 0
	for _, s := range m.spans {
		d += s.NewSize - s.OldSize
	}
	if m.inverted {
		return -d
	}
	return d
}

// Map maps pos through the mapping.
func (m Mapping) Map(pos types.ModelOffset, assoc Assoc) types.ModelOffset {
	return m.MapResult(pos, assoc).Pos
}

// MapResult maps pos and reports whether it sat strictly inside a replaced
// chunk. Offsets inside a chunk move to its start or end depending on assoc;
// offsets exactly on a chunk edge keep that edge.
func (m Mapping) MapResult(pos types.ModelOffset, assoc Assoc) MapResult {
	p := int(pos)
	shift := 0 // size delta of the spans already passed, forward direction
	for _, s := range m.spans {
		srcStart, dstStart := int(s.Start), int(s.Start)
		srcSize, dstSize := s.OldSize, s.NewSize
		if m.inverted {
			srcStart += shift
			srcSize, dstSize = dstSize, srcSize
		} else {
			dstStart += shift
		}
		if p < srcStart {
			break
		}
		srcEnd := srcStart + srcSize
		if p <= srcEnd {
			side := assoc
			if srcSize > 0 {
				switch p {
				case srcStart:
					side = AssocLeft
				case srcEnd:
					side = AssocRight
				}
			}
			result := dstStart
			if side == AssocRight {
				result += dstSize
			}
			return MapResult{
				Pos:     types.ModelOffset(result),
				Deleted: p > srcStart && p < srcEnd,
			}
		}
		shift += s.NewSize - s.OldSize
	}
	if m.inverted {
		return MapResult{Pos: pos - types.ModelOffset(shift)}
	}
	return MapResult{Pos: pos + types.ModelOffset(shift)}
}

func (m Mapping) String() string {
	var sb strings.Builder
	if m.inverted {
		sb.WriteByte('-')
	}
	sb.WriteByte('[')
	for i, s := range m.spans {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d:%d>%d", int(s.Start), s.OldSize, s.NewSize)
	}
	sb.WriteByte(']')
	return sb.String()
}
