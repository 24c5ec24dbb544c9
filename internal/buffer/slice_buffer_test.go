package buffer

import (
	"os"
	"path/filepath"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tideweave/internal/types"
)

func TestNewSliceBuffer(t *testing.T) {
	sb := NewSliceBuffer()
	assert.Equal(t, 1, sb.LineCount())
	assert.Equal(t, 0, sb.RuneCount())
	assert.Equal(t, "", string(sb.Bytes()))
	assert.False(t, sb.IsModified())
}

func TestRuneCount(t *testing.T) {
	sb := NewSliceBufferFromString("héllo\nwörld")
	assert.Equal(t, 11, sb.RuneCount())
	assert.Equal(t, 2, sb.LineCount())
}

func TestText(t *testing.T) {
	sb := NewSliceBufferFromString("ab\ncdé\nf")

	tests := []struct {
		from, to int
		want     string
	}{
		{0, 0, ""},
		{0, 2, "ab"},
		{1, 4, "b\nc"},
		{3, 6, "cdé"},
		{0, 8, "ab\ncdé\nf"},
		{6, 7, "\n"},
	}
	for _, tt := range tests {
		got, err := sb.Text(tt.from, tt.to)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Text(%d, %d)", tt.from, tt.to)
	}

	_, err := sb.Text(2, 1)
	assert.ErrorIs(t, err, ErrRangeInvalid)
	_, err = sb.Text(0, 9)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
	_, err = sb.Text(-1, 2)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestInsert(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		sb := NewSliceBufferFromString("hello")
		info, err := sb.Insert(2, []byte("XY"))
		require.NoError(t, err)
		assert.Equal(t, "heXYllo", string(sb.Bytes()))
		assert.Equal(t, 7, sb.RuneCount())
		assert.True(t, sb.IsModified())
		assert.Equal(t, uint32(2), info.StartIndex)
		assert.Equal(t, uint32(2), info.OldEndIndex)
		assert.Equal(t, uint32(4), info.NewEndIndex)
		assert.Equal(t, sitter.Point{Row: 0, Column: 4}, info.NewEndPosition)
	})

	t.Run("multi line", func(t *testing.T) {
		sb := NewSliceBufferFromString("ab\ncd")
		info, err := sb.Insert(4, []byte("1\n22\n3"))
		require.NoError(t, err)
		assert.Equal(t, "ab\nc1\n22\n3d", string(sb.Bytes()))
		assert.Equal(t, 4, sb.LineCount())
		assert.Equal(t, 11, sb.RuneCount())
		assert.Equal(t, sitter.Point{Row: 1, Column: 1}, info.StartPosition)
		assert.Equal(t, sitter.Point{Row: 3, Column: 1}, info.NewEndPosition)
		assert.Equal(t, uint32(10), info.NewEndIndex)
	})

	t.Run("at end", func(t *testing.T) {
		sb := NewSliceBufferFromString("ab")
		_, err := sb.Insert(2, []byte("\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, sb.LineCount())
		assert.Equal(t, "ab\n", string(sb.Bytes()))
	})

	t.Run("multibyte column", func(t *testing.T) {
		sb := NewSliceBufferFromString("éé")
		info, err := sb.Insert(1, []byte("x"))
		require.NoError(t, err)
		assert.Equal(t, "éxé", string(sb.Bytes()))
		assert.Equal(t, uint32(2), info.StartIndex)
	})

	t.Run("empty text", func(t *testing.T) {
		sb := NewSliceBufferFromString("ab")
		info, err := sb.Insert(1, nil)
		require.NoError(t, err)
		assert.True(t, info.IsEmpty())
		assert.False(t, sb.IsModified())
	})

	t.Run("out of range", func(t *testing.T) {
		sb := NewSliceBufferFromString("ab")
		_, err := sb.Insert(3, []byte("x"))
		assert.ErrorIs(t, err, ErrOffsetOutOfRange)
		assert.Equal(t, "ab", string(sb.Bytes()))
	})
}

func TestDelete(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		sb := NewSliceBufferFromString("hello")
		info, err := sb.Delete(1, 3)
		require.NoError(t, err)
		assert.Equal(t, "hlo", string(sb.Bytes()))
		assert.Equal(t, uint32(1), info.StartIndex)
		assert.Equal(t, uint32(3), info.OldEndIndex)
		assert.Equal(t, uint32(1), info.NewEndIndex)
	})

	t.Run("across lines", func(t *testing.T) {
		sb := NewSliceBufferFromString("ab\ncd\nef")
		info, err := sb.Delete(1, 7)
		require.NoError(t, err)
		assert.Equal(t, "af", string(sb.Bytes()))
		assert.Equal(t, 1, sb.LineCount())
		assert.Equal(t, 2, sb.RuneCount())
		assert.Equal(t, sitter.Point{Row: 2, Column: 1}, info.OldEndPosition)
	})

	t.Run("newline only", func(t *testing.T) {
		sb := NewSliceBufferFromString("ab\ncd")
		_, err := sb.Delete(2, 3)
		require.NoError(t, err)
		assert.Equal(t, "abcd", string(sb.Bytes()))
	})

	t.Run("everything", func(t *testing.T) {
		sb := NewSliceBufferFromString("ab\ncd")
		_, err := sb.Delete(0, 5)
		require.NoError(t, err)
		assert.Equal(t, 1, sb.LineCount())
		assert.Equal(t, 0, sb.RuneCount())
	})

	t.Run("reversed", func(t *testing.T) {
		sb := NewSliceBufferFromString("ab")
		_, err := sb.Delete(2, 1)
		assert.ErrorIs(t, err, ErrRangeInvalid)
	})
}

func TestPositionOffset(t *testing.T) {
	sb := NewSliceBufferFromString("ab\ncdé\n")

	pos, err := sb.PositionAt(5)
	require.NoError(t, err)
	assert.Equal(t, types.Position{Line: 1, Col: 2}, pos)

	pos, err = sb.PositionAt(7)
	require.NoError(t, err)
	assert.Equal(t, types.Position{Line: 2, Col: 0}, pos)

	assert.Equal(t, 5, sb.OffsetAt(types.Position{Line: 1, Col: 2}))
	assert.Equal(t, 6, sb.OffsetAt(types.Position{Line: 1, Col: 99}))
	assert.Equal(t, 0, sb.OffsetAt(types.Position{Line: -1}))
	assert.Equal(t, 7, sb.OffsetAt(types.Position{Line: 9}))
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\r\ntwo\n"), 0644))

	sb := NewSliceBuffer()
	require.NoError(t, sb.Load(path))
	assert.Equal(t, []byte("one\ntwo\n"), sb.Bytes())
	assert.Equal(t, 3, sb.LineCount())
	assert.Equal(t, path, sb.FilePath())

	_, err := sb.Insert(0, []byte(">"))
	require.NoError(t, err)
	require.NoError(t, sb.Save(""))
	assert.False(t, sb.IsModified())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ">one\ntwo\n", string(data))

	missing := NewSliceBuffer()
	require.NoError(t, missing.Load(filepath.Join(dir, "nope.txt")))
	assert.Equal(t, 1, missing.LineCount())

	assert.Error(t, NewSliceBuffer().Save(""))
}
