// internal/editor/editor.go
package editor

import (
	"fmt"

	"github.com/bethropolis/tideweave/internal/buffer"
	"github.com/bethropolis/tideweave/internal/config"
	"github.com/bethropolis/tideweave/internal/cursor"
	"github.com/bethropolis/tideweave/internal/event"
	"github.com/bethropolis/tideweave/internal/history"
	"github.com/bethropolis/tideweave/internal/layout"
	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/bethropolis/tideweave/internal/model"
	"github.com/bethropolis/tideweave/internal/render"
	"github.com/bethropolis/tideweave/internal/transform"
	"github.com/bethropolis/tideweave/internal/types"
)

// Editor turns user commands into transformations and applies them.
type Editor struct {
	model   *model.Service
	render  *render.Service
	layout  *layout.Service
	cursor  *cursor.Manager
	history *history.Manager
	events  *event.Manager
	clip    Clipboard

	scrollOff int
}

// NewEditor creates an editor over buf with a cursor at the start of the text.
// events may be nil.
func NewEditor(buf buffer.Buffer, events *event.Manager, cfg config.EditorConfig) *Editor {
	m := model.New(buf, events)
	r := render.New(m)
	e := &Editor{
		model:     m,
		render:    r,
		layout:    layout.New(r, layout.Options{TabWidth: cfg.TabWidth, WrapWidth: cfg.WrapWidth}),
		cursor:    cursor.NewManager(events),
		history:   history.NewManager(events, cfg.MaxHistory),
		events:    events,
		clip:      NewClipboard(cfg.SystemClipboard),
		scrollOff: cfg.ScrollOff,
	}
	e.cursor.Place(0)
	return e
}

// SetClipboard replaces the clipboard used by Copy, Cut and Paste.
func (e *Editor) SetClipboard(c Clipboard) {
	e.clip = c
}

func (e *Editor) Model() *model.Service     { return e.model }
func (e *Editor) Render() *render.Service   { return e.render }
func (e *Editor) Layout() *layout.Service   { return e.layout }
func (e *Editor) Cursor() *cursor.Manager   { return e.cursor }
func (e *Editor) History() *history.Manager { return e.history }

// Services returns the collaborators transformations are applied against.
func (e *Editor) Services() transform.Services {
	return transform.Services{
		Model:  e.model,
		Cursor: e.cursor,
		Render: e.render,
		Layout: e.layout,
	}
}

// Text returns the whole document.
func (e *Editor) Text() string {
	return e.model.Text()
}

// Execute applies t and records it for undo. Transformations that only move
// the cursor are not recorded.
func (e *Editor) Execute(t *transform.Transformation) (*transform.Result, error) {
	res, err := t.Apply(e.Services())
	if err != nil {
		logger.Errorf("Editor: transformation %v failed: %v", t, err)
		return nil, err
	}
	if len(res.ChangeResults) > 0 {
		e.history.Record(res)
		if e.events != nil {
			e.events.Dispatch(event.TypeTransformationApplied, event.TransformationAppliedData{Changes: len(res.ChangeResults)})
		}
	}
	e.ScrollToCursor()
	return res, nil
}

// Undo reverts the last recorded transformation.
func (e *Editor) Undo() error {
	if _, err := e.history.Undo(e.Services()); err != nil {
		return err
	}
	e.ScrollToCursor()
	return nil
}

// Redo reapplies the last undone transformation.
func (e *Editor) Redo() error {
	if _, err := e.history.Redo(e.Services()); err != nil {
		return err
	}
	e.ScrollToCursor()
	return nil
}

// Load replaces the document with a file and resets cursor and history.
func (e *Editor) Load(filePath string) error {
	if err := e.model.Load(filePath); err != nil {
		return err
	}
	e.history.Clear()
	e.cursor.Clear()
	e.cursor.Place(0)
	e.ScrollToCursor()
	return nil
}

// Save writes the document to filePath, or to the file it was loaded from.
func (e *Editor) Save(filePath string) error {
	return e.model.Save(filePath)
}

// SetViewSize updates the viewport size and the soft wrap width.
func (e *Editor) SetViewSize(width, height int, wrap bool) {
	e.cursor.SetViewSize(width, height)
	if wrap {
		e.layout.SetWrapWidth(width)
	}
	e.ScrollToCursor()
}

// ScrollToCursor keeps the line holding the cursor head inside the viewport.
func (e *Editor) ScrollToCursor() {
	if !e.cursor.HasCursor() {
		return
	}
	line, err := e.layout.LineIndex(e.cursor.Cursor().Head)
	if err != nil {
		logger.Warnf("Editor: cursor head outside layout: %v", err)
		return
	}
	e.cursor.ScrollToLine(line, e.scrollOff)
}

// head returns the cursor head in model coordinates.
func (e *Editor) head() (types.ModelOffset, error) {
	return e.render.ConvertOffsetToModelOffset(e.cursor.Cursor().Head)
}

// selection returns the ordered model range covered by the cursor.
func (e *Editor) selection() (from, to types.ModelOffset, err error) {
	start, end := e.cursor.Cursor().Range()
	if from, err = e.render.ConvertOffsetToModelOffset(start); err != nil {
		return 0, 0, err
	}
	if to, err = e.render.ConvertOffsetToModelOffset(end); err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

// SelectedText returns the text covered by the cursor, empty when nothing is selected.
func (e *Editor) SelectedText() (string, error) {
	from, to, err := e.selection()
	if err != nil {
		return "", err
	}
	return e.model.TextRange(from, to)
}

// modelAt converts a render offset, wrapping errors with the command name.
func (e *Editor) modelAt(op string, offset types.RenderOffset) (types.ModelOffset, error) {
	m, err := e.render.ConvertOffsetToModelOffset(offset)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}
