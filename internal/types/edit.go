// internal/types/edit.go
package types

import sitter "github.com/smacker/go-tree-sitter"

// EditInfo describes one buffer edit in the terms tree-sitter's Tree.Edit expects.
type EditInfo struct {
	StartIndex     uint32       // Start byte of the edit
	OldEndIndex    uint32       // End byte of the old text
	NewEndIndex    uint32       // End byte of the new text
	StartPosition  sitter.Point // Start position (row, byte column)
	OldEndPosition sitter.Point // Old end position
	NewEndPosition sitter.Point // New end position
}

// IsEmpty reports whether the edit neither removed nor inserted bytes.
func (e EditInfo) IsEmpty() bool {
	return e.StartIndex == e.OldEndIndex && e.StartIndex == e.NewEndIndex
}

// InputEdit converts the edit to the tree-sitter input type.
func (e EditInfo) InputEdit() sitter.EditInput {
	return sitter.EditInput{
		StartIndex:  e.StartIndex,
		OldEndIndex: e.OldEndIndex,
		NewEndIndex: e.NewEndIndex,
		StartPoint:  e.StartPosition,
		OldEndPoint: e.OldEndPosition,
		NewEndPoint: e.NewEndPosition,
	}
}
