package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tideweave/internal/types"
)

type textSource struct {
	text string
	rev  uint64
}

func (s *textSource) Text() string     { return s.text }
func (s *textSource) Revision() uint64 { return s.rev }

func (s *textSource) set(text string) {
	s.text = text
	s.rev++
}

func TestASCIIIsOneToOne(t *testing.T) {
	s := New(&textSource{text: "hello"})
	assert.Equal(t, 6, s.Size())
	for i := 0; i <= 5; i++ {
		m, err := s.ConvertOffsetToModelOffset(types.RenderOffset(i))
		require.NoError(t, err)
		assert.Equal(t, types.ModelOffset(i), m)

		r, err := s.ConvertModelOffsetToOffset(types.ModelOffset(i))
		require.NoError(t, err)
		assert.Equal(t, types.RenderOffset(i), r)
	}
}

func TestCombiningCharacters(t *testing.T) {
	// "e" + combining acute is one cluster of two runes.
	s := New(&textSource{text: "ae\u0301b"})
	assert.Equal(t, []string{"a", "e\u0301", "b"}, s.Clusters())

	tests := []struct {
		model  types.ModelOffset
		render types.RenderOffset
	}{
		{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 3},
	}
	for _, tt := range tests {
		r, err := s.ConvertModelOffsetToOffset(tt.model)
		require.NoError(t, err)
		assert.Equal(t, tt.render, r, "model %d", tt.model)
	}

	m, err := s.ConvertOffsetToModelOffset(2)
	require.NoError(t, err)
	assert.Equal(t, types.ModelOffset(3), m)
	m, err = s.ConvertOffsetToModelOffset(3)
	require.NoError(t, err)
	assert.Equal(t, types.ModelOffset(4), m)
}

func TestRoundTripOnClusterBoundaries(t *testing.T) {
	s := New(&textSource{text: "x🇫🇷y\n👍🏽"})
	for r := types.RenderOffset(0); int(r) < s.Size(); r++ {
		m, err := s.ConvertOffsetToModelOffset(r)
		require.NoError(t, err)
		back, err := s.ConvertModelOffsetToOffset(m)
		require.NoError(t, err)
		assert.Equal(t, r, back)
	}
}

func TestUnresolved(t *testing.T) {
	s := New(&textSource{text: "ab"})

	_, err := s.ConvertOffsetToModelOffset(3)
	assert.ErrorIs(t, err, ErrUnresolvedOffset)
	_, err = s.ConvertOffsetToModelOffset(-1)
	assert.ErrorIs(t, err, ErrUnresolvedOffset)
	_, err = s.ConvertModelOffsetToOffset(3)
	assert.ErrorIs(t, err, ErrUnresolvedOffset)
	_, err = s.ConvertModelOffsetToOffset(-2)
	assert.ErrorIs(t, err, ErrUnresolvedOffset)
}

func TestRefreshOnRevision(t *testing.T) {
	src := &textSource{text: "ab"}
	s := New(src)
	assert.Equal(t, 3, s.Size())

	src.text = "abcd" // same revision, stale cache
	assert.Equal(t, 3, s.Size())

	src.set("abcd")
	assert.Equal(t, 5, s.Size())

	src.set("")
	assert.Equal(t, 1, s.Size())
	assert.Empty(t, s.Clusters())
}
