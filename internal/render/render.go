// Package render translates between model offsets (runes) and render offsets
// (grapheme clusters, the units the user sees and moves over).
package render

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/bethropolis/tideweave/internal/types"
)

// ErrUnresolvedOffset is returned for offsets outside the rendered text.
var ErrUnresolvedOffset = errors.New("unresolved offset")

// Source is the text being rendered. Revision must change whenever Text does.
type Source interface {
	Text() string
	Revision() uint64
}

// Service converts offsets for the current text of a Source.
type Service struct {
	src Source

	revision uint64
	valid    bool
	clusters []string
	starts   []int // model offset of each cluster, plus the end of text
}

// New creates a render service over src.
func New(src Source) *Service {
	return &Service{src: src}
}

func (s *Service) refresh() {
	rev := s.src.Revision()
	if s.valid && rev == s.revision {
		return
	}
	text := s.src.Text()
	s.clusters = s.clusters[:0]
	s.starts = s.starts[:0]

	offset := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		s.clusters = append(s.clusters, cluster)
		s.starts = append(s.starts, offset)
		offset += utf8.RuneCountInString(cluster)
	}
	s.starts = append(s.starts, offset)
	s.revision = rev
	s.valid = true
	logger.DebugTagf("render", "rev %d: %d clusters over %d runes", rev, len(s.clusters), offset)
}

// Revision is the revision of the text the service renders.
func (s *Service) Revision() uint64 {
	return s.src.Revision()
}

// Clusters returns the grapheme clusters of the current text. The slice is
// shared and only valid until the text changes.
func (s *Service) Clusters() []string {
	s.refresh()
	return s.clusters
}

// Size is the number of render offsets: one per cluster plus the end of text.
func (s *Service) Size() int {
	s.refresh()
	return len(s.starts)
}

// ConvertOffsetToModelOffset returns the model offset at the start of the
// cluster at offset.
func (s *Service) ConvertOffsetToModelOffset(offset types.RenderOffset) (types.ModelOffset, error) {
	s.refresh()
	if offset < 0 || int(offset) >= len(s.starts) {
		return 0, fmt.Errorf("%w: render offset %d not in [0, %d]", ErrUnresolvedOffset, offset, len(s.starts)-1)
	}
	return types.ModelOffset(s.starts[offset]), nil
}

// ConvertModelOffsetToOffset returns the render offset of the cluster holding
// offset. Offsets inside a cluster snap to its start.
func (s *Service) ConvertModelOffsetToOffset(offset types.ModelOffset) (types.RenderOffset, error) {
	s.refresh()
	end := s.starts[len(s.starts)-1]
	if offset < 0 || int(offset) > end {
		return 0, fmt.Errorf("%w: model offset %d not in [0, %d]", ErrUnresolvedOffset, offset, end)
	}
	i := sort.Search(len(s.starts), func(i int) bool { return s.starts[i] > int(offset) })
	return types.RenderOffset(i - 1), nil
}
