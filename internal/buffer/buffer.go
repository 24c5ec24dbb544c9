// internal/buffer/buffer.go
package buffer

import (
	"errors"

	"github.com/bethropolis/tideweave/internal/types"
)

var (
	// ErrOffsetOutOfRange is returned for offsets outside [0, RuneCount()].
	ErrOffsetOutOfRange = errors.New("offset out of range")
	// ErrRangeInvalid is returned when a range ends before it starts.
	ErrRangeInvalid = errors.New("invalid range")
)

// Buffer defines the interface for text buffer operations.
// Offsets are rune offsets over the whole text, with lines joined by '\n'.
type Buffer interface {
	Load(filePath string) error
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	RuneCount() int
	Text(from, to int) (string, error)
	Insert(offset int, text []byte) (types.EditInfo, error)
	Delete(from, to int) (types.EditInfo, error)
	PositionAt(offset int) (types.Position, error)
	OffsetAt(pos types.Position) int
	Save(filePath string) error
	Bytes() []byte
	FilePath() string
	IsModified() bool
}
