package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tideweave/internal/render"
	"github.com/bethropolis/tideweave/internal/types"
)

type textSource struct {
	text string
	rev  uint64
}

func (s *textSource) Text() string     { return s.text }
func (s *textSource) Revision() uint64 { return s.rev }

func newLayout(text string, opts Options) *Service {
	return New(render.New(&textSource{text: text}), opts)
}

func lineTexts(s *Service) []string {
	var out []string
	for _, l := range s.Lines() {
		text := ""
		for _, c := range l.Clusters() {
			text += c
		}
		out = append(out, text)
	}
	return out
}

func TestHardBreaks(t *testing.T) {
	s := newLayout("ab\n\ncde", Options{})
	assert.Equal(t, []string{"ab", "", "cde"}, lineTexts(s))

	lines := s.Lines()
	assert.Equal(t, types.RenderOffset(0), lines[0].Start())
	assert.Equal(t, types.RenderOffset(3), lines[1].Start())
	assert.Equal(t, types.RenderOffset(4), lines[2].Start())
	assert.Equal(t, 2, lines[2].Paragraph())
	assert.False(t, lines[0].SoftWrapped())
}

func TestEmptyDocument(t *testing.T) {
	s := newLayout("", Options{})
	require.Equal(t, 1, s.LineCount())

	res, err := s.ResolvePosition(0)
	require.NoError(t, err)
	pos := res.AtLineDepth()
	assert.Equal(t, 0, pos.Offset)
	boxes := pos.Node.ResolveBoundingBoxes(0, 0)
	require.Len(t, boxes, 1)
	assert.Equal(t, 0, boxes[0].Left)
}

func TestSoftWrap(t *testing.T) {
	s := newLayout("abcdefg\nhi", Options{WrapWidth: 3})
	assert.Equal(t, []string{"abc", "def", "g", "hi"}, lineTexts(s))
	assert.True(t, s.Line(0).SoftWrapped())
	assert.False(t, s.Line(2).SoftWrapped())
	assert.Equal(t, 0, s.Line(2).Paragraph())
	assert.Equal(t, 1, s.Line(3).Paragraph())

	// The wrap boundary belongs to the following line.
	i, err := s.LineIndex(3)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	// A line break offset belongs to the line it ends.
	i, err = s.LineIndex(7)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
}

func TestTabsAndWideClusters(t *testing.T) {
	s := newLayout("a\tb世c", Options{TabWidth: 4})
	line := s.Line(0)
	assert.Equal(t, 0, line.X(0))
	assert.Equal(t, 1, line.X(1)) // tab starts after "a"
	assert.Equal(t, 4, line.X(2)) // tab stops at 4
	assert.Equal(t, 5, line.X(3))
	assert.Equal(t, 7, line.X(4)) // 世 is two cells wide
	assert.Equal(t, 8, line.Width())
	assert.Equal(t, -1, line.X(6))
}

func TestResolvePosition(t *testing.T) {
	s := newLayout("ab\ncde", Options{})

	res, err := s.ResolvePosition(5)
	require.NoError(t, err)
	pos := res.AtLineDepth()
	assert.Equal(t, 2, pos.Offset)
	assert.Same(t, s.Line(1), pos.Node)

	r := res.(*Resolution)
	assert.Equal(t, 1, r.Paragraph)
	assert.Equal(t, types.RenderOffset(5), r.Offset)

	_, err = s.ResolvePosition(7)
	assert.ErrorIs(t, err, render.ErrUnresolvedOffset)
	_, err = s.ResolvePosition(-1)
	assert.ErrorIs(t, err, render.ErrUnresolvedOffset)
}

func TestResolveBoundingBoxes(t *testing.T) {
	line := newLayout("a世b", Options{}).Line(0)

	boxes := line.ResolveBoundingBoxes(1, 1)
	require.Len(t, boxes, 1)
	assert.Equal(t, types.BoundingBox{Left: 1, Width: 0, Top: 0, Height: 1}, boxes[0])

	boxes = line.ResolveBoundingBoxes(0, 3)
	require.Len(t, boxes, 3)
	assert.Equal(t, 2, boxes[1].Width)
	assert.Equal(t, 3, boxes[2].Left)

	end := line.ResolveBoundingBoxes(3, 3)
	require.Len(t, end, 1)
	assert.Equal(t, 4, end[0].Left)

	assert.Empty(t, line.ResolveBoundingBoxes(4, 4))
	assert.Empty(t, line.ResolveBoundingBoxes(2, 1))
}

func TestOffsetAtX(t *testing.T) {
	line := newLayout("a世b", Options{}).Line(0)
	assert.Equal(t, 0, line.OffsetAtX(0))
	assert.Equal(t, 1, line.OffsetAtX(1))
	assert.Equal(t, 1, line.OffsetAtX(2)) // inside the wide cluster
	assert.Equal(t, 2, line.OffsetAtX(3))
	assert.Equal(t, 3, line.OffsetAtX(10))
	assert.Equal(t, 0, line.OffsetAtX(-5))

	wrapped := newLayout("abcdef", Options{WrapWidth: 3}).Line(0)
	assert.Equal(t, 2, wrapped.OffsetAtX(10), "end of a wrapped line is not a caret position")
}

func TestRebuildOnRevision(t *testing.T) {
	src := &textSource{text: "ab"}
	s := New(render.New(src), Options{})
	assert.Equal(t, 1, s.LineCount())

	src.text = "a\nb"
	src.rev++
	assert.Equal(t, 2, s.LineCount())

	s.SetWrapWidth(1)
	assert.Equal(t, 2, s.LineCount())
	src.text = "abc"
	src.rev++
	assert.Equal(t, 3, s.LineCount())
}
