// internal/app/actions.go
package app

import (
	"errors"

	"github.com/bethropolis/tideweave/internal/history"
	"github.com/bethropolis/tideweave/internal/input"
	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// HandleKey runs the action bound to ev and reports whether a redraw is needed.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	return a.HandleAction(a.input.ProcessEvent(ev))
}

// HandleAction runs one decoded action and reports whether a redraw is needed.
func (a *App) HandleAction(ae input.ActionEvent) bool {
	if ae.Action == input.ActionUnknown {
		return false
	}
	if ae.Action != input.ActionQuit {
		a.quitPending = false
	}

	ed := a.editor
	var err error
	switch ae.Action {
	case input.ActionQuit:
		if ed.Model().Buffer().IsModified() && !a.quitPending {
			a.quitPending = true
			a.statusBar.SetTemporaryMessage("Unsaved changes - Ctrl+Q again to quit")
			return true
		}
		a.requestQuit()
		return false
	case input.ActionSave:
		err = ed.Save("")

	case input.ActionMoveLeft:
		err = ed.MoveBackward(false)
	case input.ActionMoveRight:
		err = ed.MoveForward(false)
	case input.ActionMoveUp:
		err = ed.MoveToPreviousLine()
	case input.ActionMoveDown:
		err = ed.MoveToNextLine()
	case input.ActionMoveWordLeft:
		err = ed.MoveBackwardByWord(false)
	case input.ActionMoveWordRight:
		err = ed.MoveForwardByWord(false)
	case input.ActionMoveHome:
		err = ed.MoveToLineStart(false)
	case input.ActionMoveEnd:
		err = ed.MoveToLineEnd(false)
	case input.ActionSelectLeft:
		err = ed.MoveBackward(true)
	case input.ActionSelectRight:
		err = ed.MoveForward(true)
	case input.ActionSelectUp:
		err = ed.MoveHeadToPreviousLine()
	case input.ActionSelectDown:
		err = ed.MoveHeadToNextLine()
	case input.ActionSelectWordLeft:
		err = ed.MoveBackwardByWord(true)
	case input.ActionSelectWordRight:
		err = ed.MoveForwardByWord(true)
	case input.ActionSelectHome:
		err = ed.MoveToLineStart(true)
	case input.ActionSelectEnd:
		err = ed.MoveToLineEnd(true)
	case input.ActionSelectAll:
		err = ed.SelectAll()

	case input.ActionInsertRune:
		err = ed.InsertRune(ae.Rune)
	case input.ActionInsertNewLine:
		err = ed.InsertNewLine()
	case input.ActionInsertTab:
		err = ed.InsertText("\t")
	case input.ActionDeleteBackward:
		err = ed.DeleteBackward()
	case input.ActionDeleteForward:
		err = ed.DeleteForward()

	case input.ActionCopy:
		var ok bool
		if ok, err = ed.Copy(); ok {
			a.statusBar.SetTemporaryMessage("Copied")
		}
	case input.ActionCut:
		_, err = ed.Cut()
	case input.ActionPaste:
		_, err = ed.Paste()
	case input.ActionUndo:
		err = ed.Undo()
	case input.ActionRedo:
		err = ed.Redo()
	}

	switch {
	case errors.Is(err, history.ErrNothingToUndo):
		a.statusBar.SetTemporaryMessage("Nothing to undo")
	case errors.Is(err, history.ErrNothingToRedo):
		a.statusBar.SetTemporaryMessage("Nothing to redo")
	case err != nil:
		logger.Errorf("App: %v failed: %v", ae.Action, err)
		a.statusBar.SetTemporaryMessage("Error: %v", err)
	}
	return true
}
