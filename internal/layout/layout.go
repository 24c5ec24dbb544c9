// Package layout arranges rendered clusters into visual lines and resolves
// render offsets to positions on them.
package layout

import (
	"fmt"
	"sort"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/bethropolis/tideweave/internal/render"
	"github.com/bethropolis/tideweave/internal/types"
)

// Source supplies the clusters to lay out.
type Source interface {
	Clusters() []string
	Revision() uint64
}

// Options controls line building.
type Options struct {
	TabWidth  int // columns per tab stop
	WrapWidth int // soft wrap width in cells, 0 disables wrapping
}

// Service lays out the clusters of a Source, rebuilding when its revision changes.
type Service struct {
	src  Source
	opts Options

	revision uint64
	valid    bool
	lines    []*Line
}

// New creates a layout service.
func New(src Source, opts Options) *Service {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	if opts.WrapWidth < 0 {
		opts.WrapWidth = 0
	}
	return &Service{src: src, opts: opts}
}

// SetWrapWidth changes the soft wrap width and invalidates the layout.
func (s *Service) SetWrapWidth(width int) {
	if width < 0 {
		width = 0
	}
	if width != s.opts.WrapWidth {
		s.opts.WrapWidth = width
		s.valid = false
	}
}

// Options returns the current layout options.
func (s *Service) Options() Options {
	return s.opts
}

func (s *Service) refresh() {
	rev := s.src.Revision()
	if s.valid && rev == s.revision {
		return
	}
	s.lines = build(s.src.Clusters(), s.opts)
	s.revision = rev
	s.valid = true
	logger.DebugTagf("layout", "rev %d: %d lines", rev, len(s.lines))
}

func clusterWidth(cluster string, x, tabWidth int) int {
	if cluster == "\t" {
		return tabWidth - x%tabWidth
	}
	w := uniseg.StringWidth(cluster)
	if w < 1 {
		w = 1
	}
	return w
}

func build(clusters []string, opts Options) []*Line {
	var lines []*Line
	paragraph := 0
	cur := &Line{}
	flush := func(next types.RenderOffset, soft bool) {
		cur.soft = soft
		lines = append(lines, cur)
		cur = &Line{index: len(lines), paragraph: paragraph, start: next}
	}

	for i, cluster := range clusters {
		offset := types.RenderOffset(i)
		if cluster == "\n" || cluster == "\r\n" {
			flush(offset+1, false)
			paragraph++
			cur.paragraph = paragraph
			continue
		}
		w := clusterWidth(cluster, cur.width, opts.TabWidth)
		if opts.WrapWidth > 0 && cur.width > 0 && cur.width+w > opts.WrapWidth {
			flush(offset, true)
			w = clusterWidth(cluster, 0, opts.TabWidth)
		}
		cur.clusters = append(cur.clusters, cluster)
		cur.lefts = append(cur.lefts, cur.width)
		cur.width += w
	}
	lines = append(lines, cur)
	return lines
}

// Lines returns every line of the document, in order.
func (s *Service) Lines() []*Line {
	s.refresh()
	return s.lines
}

// LineCount returns the number of visual lines.
func (s *Service) LineCount() int {
	s.refresh()
	return len(s.lines)
}

// Line returns line i, or nil when i is out of range.
func (s *Service) Line(i int) *Line {
	s.refresh()
	if i < 0 || i >= len(s.lines) {
		return nil
	}
	return s.lines[i]
}

// LineIndex returns the index of the line holding offset.
func (s *Service) LineIndex(offset types.RenderOffset) (int, error) {
	s.refresh()
	last := s.lines[len(s.lines)-1]
	if offset < 0 || offset > last.End() {
		return 0, fmt.Errorf("%w: render offset %d not in [0, %d]", render.ErrUnresolvedOffset, offset, last.End())
	}
	i := sort.Search(len(s.lines), func(i int) bool { return s.lines[i].start > offset })
	return i - 1, nil
}

// ResolvePosition resolves offset to its paragraph and line.
func (s *Service) ResolvePosition(offset types.RenderOffset) (types.PositionResolution, error) {
	i, err := s.LineIndex(offset)
	if err != nil {
		return nil, err
	}
	line := s.lines[i]
	return &Resolution{
		Offset:     offset,
		Paragraph:  line.paragraph,
		Line:       line,
		LineOffset: int(offset - line.start),
	}, nil
}

// Resolution is a render offset resolved through the layout tree: document,
// then paragraph, then line.
type Resolution struct {
	Offset     types.RenderOffset
	Paragraph  int
	Line       *Line
	LineOffset int
}

// AtLineDepth returns the line holding the offset and the offset within it.
func (r *Resolution) AtLineDepth() types.LinePosition {
	return types.LinePosition{Node: r.Line, Offset: r.LineOffset}
}
