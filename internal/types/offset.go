// internal/types/offset.go
package types

import "fmt"

// ModelOffset addresses a position in the backing document (rune offsets).
type ModelOffset int

// RenderOffset addresses a position in rendered text (grapheme cluster offsets).
// It is deliberately a distinct type from ModelOffset; converting between the
// two goes through the render service.
type RenderOffset int

func (o ModelOffset) String() string {
	return fmt.Sprintf("m%d", int(o))
}

func (o RenderOffset) String() string {
	return fmt.Sprintf("r%d", int(o))
}

// Cursor is a document cursor in render coordinates. Anchor == Head means no selection.
type Cursor struct {
	Anchor RenderOffset
	Head   RenderOffset
}

// HasSelection reports whether the cursor spans a non-empty range.
func (c Cursor) HasSelection() bool {
	return c.Anchor != c.Head
}

// Range returns the cursor span ordered so that start <= end.
func (c Cursor) Range() (start, end RenderOffset) {
	if c.Anchor <= c.Head {
		return c.Anchor, c.Head
	}
	return c.Head, c.Anchor
}
