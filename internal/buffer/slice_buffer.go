// internal/buffer/slice_buffer.go
package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/bethropolis/tideweave/internal/types"
)

// SliceBuffer stores text as a slice of lines without their '\n' terminators.
type SliceBuffer struct {
	lines    [][]byte
	runes    int // cached rune count, newlines included
	filePath string
	modified bool
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines: [][]byte{[]byte("")},
	}
}

// NewSliceBufferFromString creates a buffer holding text.
func NewSliceBufferFromString(text string) *SliceBuffer {
	sb := &SliceBuffer{}
	sb.setLines(bytes.Split([]byte(text), []byte("\n")))
	return sb
}

func (sb *SliceBuffer) setLines(lines [][]byte) {
	if len(lines) == 0 {
		lines = [][]byte{[]byte("")}
	}
	sb.lines = make([][]byte, len(lines))
	sb.runes = len(lines) - 1
	for i, line := range lines {
		sb.lines[i] = append([]byte(nil), line...)
		sb.runes += utf8.RuneCount(line)
	}
}

// Load reads a file into the buffer. Replaces existing content.
// A missing file yields an empty buffer bound to filePath.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.setLines(nil)
			sb.filePath = filePath
			logger.Debugf("buffer: %s does not exist, starting empty", filePath)
			return nil
		}
		return fmt.Errorf("failed to read file '%s': %w", filePath, err)
	}

	newLines := bytes.Split(data, []byte("\n"))
	for i, line := range newLines {
		newLines[i] = bytes.TrimSuffix(line, []byte("\r"))
	}
	sb.setLines(newLines)
	sb.filePath = filePath
	logger.Debugf("buffer: loaded %s (%d lines, %d runes)", filePath, len(sb.lines), sb.runes)
	return nil
}

func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// RuneCount returns the number of runes in the text, line breaks included.
func (sb *SliceBuffer) RuneCount() int {
	return sb.runes
}

func (sb *SliceBuffer) Bytes() []byte {
	return bytes.Join(sb.lines, []byte("\n"))
}

// Save writes the buffer content to filePath, or to the stored path when empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	if err := os.WriteFile(path, sb.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	sb.filePath = path
	sb.modified = false
	return nil
}

// IsModified returns true if the buffer has unsaved changes.
func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// --- Offset helpers ---

// location is a resolved offset: line index, rune column, byte column and
// byte index in the joined text.
type location struct {
	line    int
	col     int
	byteCol int
	index   int
}

func (l location) point() sitter.Point {
	return sitter.Point{Row: uint32(l.line), Column: uint32(l.byteCol)}
}

func (sb *SliceBuffer) locate(offset int) (location, error) {
	if offset < 0 || offset > sb.runes {
		return location{}, fmt.Errorf("%w: %d not in [0, %d]", ErrOffsetOutOfRange, offset, sb.runes)
	}
	remaining, index := offset, 0
	for i, line := range sb.lines {
		n := utf8.RuneCount(line)
		if remaining <= n {
			byteCol := runeToByte(line, remaining)
			return location{line: i, col: remaining, byteCol: byteCol, index: index + byteCol}, nil
		}
		remaining -= n + 1
		index += len(line) + 1
	}
	// unreachable while runes is in sync with lines
	return location{}, fmt.Errorf("%w: %d", ErrOffsetOutOfRange, offset)
}

// runeToByte returns the byte offset of rune index col within line, clamped to len(line).
func runeToByte(line []byte, col int) int {
	byteOff := 0
	for i := 0; i < col && byteOff < len(line); i++ {
		_, size := utf8.DecodeRune(line[byteOff:])
		byteOff += size
	}
	return byteOff
}

// PositionAt converts a flat rune offset to a line/column position.
func (sb *SliceBuffer) PositionAt(offset int) (types.Position, error) {
	loc, err := sb.locate(offset)
	if err != nil {
		return types.Position{}, err
	}
	return types.Position{Line: loc.line, Col: loc.col}, nil
}

// OffsetAt converts a line/column position to a flat rune offset, clamping
// the position into the buffer first.
func (sb *SliceBuffer) OffsetAt(pos types.Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(sb.lines) {
		return sb.runes
	}
	offset := 0
	for i := 0; i < pos.Line; i++ {
		offset += utf8.RuneCount(sb.lines[i]) + 1
	}
	col := pos.Col
	if n := utf8.RuneCount(sb.lines[pos.Line]); col > n {
		col = n
	}
	if col < 0 {
		col = 0
	}
	return offset + col
}

// Text returns the runes in [from, to).
func (sb *SliceBuffer) Text(from, to int) (string, error) {
	start, end, err := sb.locateRange(from, to)
	if err != nil {
		return "", err
	}
	if start.line == end.line {
		return string(sb.lines[start.line][start.byteCol:end.byteCol]), nil
	}
	var out bytes.Buffer
	out.Write(sb.lines[start.line][start.byteCol:])
	for i := start.line + 1; i < end.line; i++ {
		out.WriteByte('\n')
		out.Write(sb.lines[i])
	}
	out.WriteByte('\n')
	out.Write(sb.lines[end.line][:end.byteCol])
	return out.String(), nil
}

func (sb *SliceBuffer) locateRange(from, to int) (location, location, error) {
	if to < from {
		return location{}, location{}, fmt.Errorf("%w: %d..%d", ErrRangeInvalid, from, to)
	}
	start, err := sb.locate(from)
	if err != nil {
		return location{}, location{}, err
	}
	end, err := sb.locate(to)
	if err != nil {
		return location{}, location{}, err
	}
	return start, end, nil
}

// --- Buffer Modification Methods ---

// Insert inserts text before the rune at offset. Handles single/multiple lines.
func (sb *SliceBuffer) Insert(offset int, text []byte) (types.EditInfo, error) {
	loc, err := sb.locate(offset)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("invalid insert position: %w", err)
	}
	info := types.EditInfo{
		StartIndex:     uint32(loc.index),
		OldEndIndex:    uint32(loc.index),
		NewEndIndex:    uint32(loc.index),
		StartPosition:  loc.point(),
		OldEndPosition: loc.point(),
		NewEndPosition: loc.point(),
	}
	if len(text) == 0 {
		return info, nil
	}
	sb.modified = true

	currentLine := sb.lines[loc.line]
	insertLines := bytes.Split(text, []byte("\n"))
	tail := append([]byte(nil), currentLine[loc.byteCol:]...)
	head := append([]byte(nil), currentLine[:loc.byteCol]...)

	newLines := make([][]byte, len(insertLines))
	for i, l := range insertLines {
		newLines[i] = append([]byte(nil), l...)
	}
	newLines[0] = append(head, newLines[0]...)
	last := len(newLines) - 1
	endCol := len(newLines[last])
	newLines[last] = append(newLines[last], tail...)

	merged := make([][]byte, 0, len(sb.lines)+last)
	merged = append(merged, sb.lines[:loc.line]...)
	merged = append(merged, newLines...)
	merged = append(merged, sb.lines[loc.line+1:]...)
	sb.lines = merged
	sb.runes += utf8.RuneCount(text)

	info.NewEndIndex = uint32(loc.index + len(text))
	info.NewEndPosition = sitter.Point{Row: uint32(loc.line + last), Column: uint32(endCol)}
	return info, nil
}

// Delete removes the runes in [from, to).
func (sb *SliceBuffer) Delete(from, to int) (types.EditInfo, error) {
	start, end, err := sb.locateRange(from, to)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("invalid delete range: %w", err)
	}
	info := types.EditInfo{
		StartIndex:     uint32(start.index),
		OldEndIndex:    uint32(end.index),
		NewEndIndex:    uint32(start.index),
		StartPosition:  start.point(),
		OldEndPosition: end.point(),
		NewEndPosition: start.point(),
	}
	if from == to {
		return info, nil
	}
	sb.modified = true

	joined := append([]byte(nil), sb.lines[start.line][:start.byteCol]...)
	joined = append(joined, sb.lines[end.line][end.byteCol:]...)

	merged := make([][]byte, 0, len(sb.lines)-(end.line-start.line))
	merged = append(merged, sb.lines[:start.line]...)
	merged = append(merged, joined)
	merged = append(merged, sb.lines[end.line+1:]...)
	sb.lines = merged
	sb.runes -= to - from

	return info, nil
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
