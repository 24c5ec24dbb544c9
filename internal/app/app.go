// internal/app/app.go
package app

import (
	"github.com/bethropolis/tideweave/internal/buffer"
	"github.com/bethropolis/tideweave/internal/config"
	"github.com/bethropolis/tideweave/internal/editor"
	"github.com/bethropolis/tideweave/internal/event"
	"github.com/bethropolis/tideweave/internal/input"
	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/bethropolis/tideweave/internal/statusbar"
	"github.com/bethropolis/tideweave/internal/syntax"
	"github.com/bethropolis/tideweave/internal/theme"
	"github.com/bethropolis/tideweave/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// App wires the editor to the terminal and runs the main loop.
type App struct {
	ui        *tui.TUI
	editor    *editor.Editor
	events    *event.Manager
	input     *input.InputProcessor
	statusBar *statusbar.StatusBar
	theme     *theme.Theme
	tracker   *syntax.Tracker // nil when the file has no known language

	filePath    string
	softWrap    bool
	quitPending bool

	quit          chan struct{}
	redrawRequest chan struct{}
}

// LoadTheme returns the theme named by cfg, or the built-in one.
func LoadTheme(cfg config.EditorConfig) *theme.Theme {
	if cfg.ThemeFile == "" {
		return theme.Dark
	}
	th, err := theme.LoadFile(cfg.ThemeFile)
	if err != nil {
		logger.Warnf("App: %v, using built-in theme", err)
		return theme.Dark
	}
	return th
}

// New creates the editor for filePath and attaches it to ui.
func New(cfg *config.Config, filePath string, ui *tui.TUI, th *theme.Theme) (*App, error) {
	events := event.NewManager()
	ed := editor.NewEditor(buffer.NewSliceBuffer(), events, cfg.Editor)
	if filePath != "" {
		if err := ed.Load(filePath); err != nil {
			return nil, err
		}
	}

	a := &App{
		ui:            ui,
		editor:        ed,
		events:        events,
		input:         input.NewInputProcessor(),
		statusBar:     statusbar.New(statusbar.DefaultMessageTimeout),
		theme:         th,
		filePath:      filePath,
		softWrap:      cfg.Editor.SoftWrap,
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}

	if lang := syntax.ForFile(filePath); lang != nil {
		tracker, err := syntax.NewTracker(lang, ed.Model().Buffer())
		if err != nil {
			logger.Warnf("App: syntax tracking disabled: %v", err)
		} else {
			tracker.Subscribe(events)
			a.tracker = tracker
		}
	}

	events.Subscribe(event.TypeHistoryChanged, a.handleHistoryChanged)
	events.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)

	a.resize()
	return a, nil
}

// Editor exposes the editor, mainly for tests.
func (a *App) Editor() *editor.Editor {
	return a.editor
}

// StatusBar exposes the status bar.
func (a *App) StatusBar() *statusbar.StatusBar {
	return a.statusBar
}

// Close releases resources not owned by the TUI.
func (a *App) Close() {
	if a.tracker != nil {
		a.tracker.Close()
	}
}

// Run processes terminal events until the user quits.
func (a *App) Run() error {
	defer a.ui.Close()
	defer a.Close()

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go a.pollEvents(events, done)

	a.statusBar.SetTemporaryMessage("tideweave - Ctrl+S Save | Ctrl+Q Quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			logger.Infof("App: exiting")
			return nil
		case ev := <-events:
			if a.handleEvent(ev) {
				a.requestRedraw()
			}
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// pollEvents forwards terminal events so that all editor access stays on the
// Run goroutine.
func (a *App) pollEvents(out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.ui.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.ui.Sync()
		a.resize()
		return true
	case *tcell.EventKey:
		return a.HandleKey(ev)
	}
	return false
}

// resize pushes the current text area size to the editor.
func (a *App) resize() {
	w, h := a.ui.TextArea(a.editor.Layout())
	a.editor.SetViewSize(w, h, a.softWrap)
}

// draw redraws the document and the status bar.
func (a *App) draw() {
	a.updateStatusBar()
	a.ui.Clear()
	a.ui.DrawEditor(a.editor, a.visibleHighlights(), a.theme)
	a.statusBar.Draw(a.ui.Screen(), a.theme)
	a.ui.Show()
}

// visibleHighlights queries the syntax tree for the paragraphs in view.
func (a *App) visibleHighlights() syntax.Highlights {
	if a.tracker == nil {
		return nil
	}
	lay := a.editor.Layout()
	top, height := a.editor.Cursor().Viewport()
	first := lay.Line(top)
	if first == nil {
		return nil
	}
	last := lay.Line(min(top+height, lay.LineCount()) - 1)
	if last == nil {
		last = first
	}
	return a.tracker.Highlights(first.Paragraph(), last.Paragraph()+1)
}

func (a *App) updateStatusBar() {
	buf := a.editor.Model().Buffer()
	a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
	if !a.editor.Cursor().HasCursor() {
		return
	}
	head, err := a.editor.Render().ConvertOffsetToModelOffset(a.editor.Cursor().Cursor().Head)
	if err != nil {
		return
	}
	if pos, err := buf.PositionAt(int(head)); err == nil {
		a.statusBar.SetCursorInfo(pos.Line, pos.Col)
	}
}

func (a *App) handleHistoryChanged(e event.Event) bool {
	if data, ok := e.Data.(event.HistoryChangedData); ok {
		a.statusBar.SetHistoryInfo(data.UndoDepth, data.RedoDepth)
	}
	return false
}

func (a *App) handleBufferSaved(e event.Event) bool {
	if data, ok := e.Data.(event.BufferSavedData); ok {
		a.statusBar.SetTemporaryMessage("Saved %s", data.FilePath)
	}
	return false
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

func (a *App) requestQuit() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}
