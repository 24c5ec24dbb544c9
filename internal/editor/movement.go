// internal/editor/movement.go
package editor

import (
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/tideweave/internal/layout"
	"github.com/bethropolis/tideweave/internal/transform"
	"github.com/bethropolis/tideweave/internal/types"
)

// moveTo moves the head to a render offset. With extend the anchor stays put,
// otherwise the selection collapses onto the head.
func (e *Editor) moveTo(op string, target types.RenderOffset, extend bool, opts ...transform.Option) error {
	head, err := e.modelAt(op, target)
	if err != nil {
		return err
	}
	anchor := head
	if extend {
		if anchor, err = e.modelAt(op, e.cursor.Cursor().Anchor); err != nil {
			return err
		}
	}
	opts = append(opts, transform.WithCursorHead(head), transform.WithCursorAnchor(anchor))
	_, err = e.Execute(transform.New(nil, opts...))
	return err
}

func (e *Editor) lastOffset() types.RenderOffset {
	return types.RenderOffset(e.render.Size() - 1)
}

// MoveForward moves the head one cluster forward. Without extend, an existing
// selection collapses to its end instead.
func (e *Editor) MoveForward(extend bool) error {
	cur := e.cursor.Cursor()
	if cur.HasSelection() && !extend {
		_, end := cur.Range()
		return e.moveTo("move forward", end, false)
	}
	return e.moveTo("move forward", min(cur.Head+1, e.lastOffset()), extend)
}

// MoveBackward moves the head one cluster back. Without extend, an existing
// selection collapses to its start instead.
func (e *Editor) MoveBackward(extend bool) error {
	cur := e.cursor.Cursor()
	if cur.HasSelection() && !extend {
		start, _ := cur.Range()
		return e.moveTo("move backward", start, false)
	}
	return e.moveTo("move backward", max(cur.Head-1, 0), extend)
}

// word is a word segment of the text, in model offsets.
type word struct {
	start, end types.ModelOffset
}

// words returns the segments of text that contain a letter, digit or underscore.
func words(text string) []word {
	var out []word
	state := -1
	offset := types.ModelOffset(0)
	for len(text) > 0 {
		var segment string
		segment, text, state = uniseg.FirstWordInString(text, state)
		n := types.ModelOffset(len([]rune(segment)))
		if isWord(segment) {
			out = append(out, word{start: offset, end: offset + n})
		}
		offset += n
	}
	return out
}

func isWord(segment string) bool {
	for _, r := range segment {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}

// MoveForwardByWord moves the head to the end of the current word, or to the
// end of the next word when the head is not inside one.
func (e *Editor) MoveForwardByWord(extend bool) error {
	head, err := e.head()
	if err != nil {
		return err
	}
	target := types.ModelOffset(e.model.RootSize() - 1)
	for _, w := range words(e.model.Text()) {
		if w.end > head {
			target = w.end
			break
		}
	}
	return e.moveToModel("move forward by word", target, extend)
}

// MoveBackwardByWord moves the head to the start of the current word, or to
// the start of the previous word when the head is not inside one.
func (e *Editor) MoveBackwardByWord(extend bool) error {
	head, err := e.head()
	if err != nil {
		return err
	}
	target := types.ModelOffset(0)
	for _, w := range words(e.model.Text()) {
		if w.start >= head {
			break
		}
		target = w.start
	}
	return e.moveToModel("move backward by word", target, extend)
}

func (e *Editor) moveToModel(op string, target types.ModelOffset, extend bool) error {
	r, err := e.render.ConvertModelOffsetToOffset(target)
	if err != nil {
		return err
	}
	return e.moveTo(op, r, extend)
}

// currentLine returns the line holding the head and the head's offset in it.
func (e *Editor) currentLine() (*layout.Line, int, error) {
	head := e.cursor.Cursor().Head
	i, err := e.layout.LineIndex(head)
	if err != nil {
		return nil, 0, err
	}
	line := e.layout.Line(i)
	return line, int(head - line.Start()), nil
}

// MoveToLineStart moves the head to the start of its visual line.
func (e *Editor) MoveToLineStart(extend bool) error {
	line, _, err := e.currentLine()
	if err != nil {
		return err
	}
	return e.moveTo("move to line start", line.Start(), extend)
}

// MoveToLineEnd moves the head to the last caret position of its visual line.
func (e *Editor) MoveToLineEnd(extend bool) error {
	line, _, err := e.currentLine()
	if err != nil {
		return err
	}
	return e.moveTo("move to line end", line.Start()+types.RenderOffset(line.OffsetAtX(line.Width())), extend)
}

// verticalMove moves the head to the line delta lines away, aiming for the
// cursor's left lock. The lock is kept so repeated moves stay aligned.
func (e *Editor) verticalMove(op string, delta int, extend bool) error {
	line, offset, err := e.currentLine()
	if err != nil {
		return err
	}
	next := e.layout.Line(line.Index() + delta)
	if next == nil {
		if delta < 0 {
			return e.MoveToLineStart(extend)
		}
		return e.MoveToLineEnd(extend)
	}
	x, ok := e.cursor.LeftLock()
	if !ok {
		x = line.X(offset)
		e.cursor.SetLeftLock(x)
	}
	target := next.Start() + types.RenderOffset(next.OffsetAtX(x))
	return e.moveTo(op, target, extend, transform.WithKeepLeftLock())
}

// MoveHeadToPreviousLine moves only the head up one line, extending the selection.
func (e *Editor) MoveHeadToPreviousLine() error {
	return e.verticalMove("move head to previous line", -1, true)
}

// MoveHeadToNextLine moves only the head down one line, extending the selection.
func (e *Editor) MoveHeadToNextLine() error {
	return e.verticalMove("move head to next line", 1, true)
}

// MoveToPreviousLine moves the cursor up one line.
func (e *Editor) MoveToPreviousLine() error {
	return e.verticalMove("move to previous line", -1, false)
}

// MoveToNextLine moves the cursor down one line.
func (e *Editor) MoveToNextLine() error {
	return e.verticalMove("move to next line", 1, false)
}

// SelectAll selects the whole document with the head at its end.
func (e *Editor) SelectAll() error {
	_, err := e.Execute(transform.New(nil,
		transform.WithCursorAnchor(0),
		transform.WithCursorHead(types.ModelOffset(e.model.RootSize()-1)),
	))
	return err
}
