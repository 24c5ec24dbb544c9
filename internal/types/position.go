// internal/types/position.go
package types

// Position is a line/column location in the buffer.
// Line is the 0-based line index, Col the 0-based rune index within the line.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Col < other.Col)
}
