// internal/editor/text_operations.go
package editor

import (
	"unicode/utf8"

	"github.com/bethropolis/tideweave/internal/change"
	"github.com/bethropolis/tideweave/internal/transform"
	"github.com/bethropolis/tideweave/internal/types"
)

// InsertText replaces the selection, if any, with text and places the cursor after it.
func (e *Editor) InsertText(text string) error {
	from, to, err := e.selection()
	if err != nil {
		return err
	}
	var c change.Change = change.Insert{At: from, Text: text}
	if from != to {
		c = change.Replace{From: from, To: to, Text: text}
	}
	end := from + types.ModelOffset(utf8.RuneCountInString(text))
	_, err = e.Execute(transform.New([]change.Change{c}, transform.WithCursorHead(end)))
	return err
}

// InsertRune inserts a single rune at the cursor.
func (e *Editor) InsertRune(r rune) error {
	return e.InsertText(string(r))
}

// InsertNewLine breaks the line at the cursor.
func (e *Editor) InsertNewLine() error {
	return e.InsertText("\n")
}

// deleteSelection removes the selected text. It reports false when nothing is selected.
func (e *Editor) deleteSelection() (bool, error) {
	if !e.cursor.Cursor().HasSelection() {
		return false, nil
	}
	from, to, err := e.selection()
	if err != nil {
		return false, err
	}
	_, err = e.Execute(transform.New(
		[]change.Change{change.Delete{From: from, To: to}},
		transform.WithCursorHead(from),
	))
	return true, err
}

// DeleteBackward deletes the selection, or the cluster before the cursor.
func (e *Editor) DeleteBackward() error {
	if done, err := e.deleteSelection(); done || err != nil {
		return err
	}
	head := e.cursor.Cursor().Head
	if head == 0 {
		return nil
	}
	from, err := e.modelAt("delete backward", head-1)
	if err != nil {
		return err
	}
	to, err := e.modelAt("delete backward", head)
	if err != nil {
		return err
	}
	_, err = e.Execute(transform.New(
		[]change.Change{change.Delete{From: from, To: to}},
		transform.WithCursorHead(from),
	))
	return err
}

// DeleteForward deletes the selection, or the cluster after the cursor.
func (e *Editor) DeleteForward() error {
	if done, err := e.deleteSelection(); done || err != nil {
		return err
	}
	head := e.cursor.Cursor().Head
	if int(head) >= e.render.Size()-1 {
		return nil
	}
	from, err := e.modelAt("delete forward", head)
	if err != nil {
		return err
	}
	to, err := e.modelAt("delete forward", head+1)
	if err != nil {
		return err
	}
	_, err = e.Execute(transform.New(
		[]change.Change{change.Delete{From: from, To: to}},
		transform.WithCursorHead(from),
	))
	return err
}
