// internal/input/action.go
package input

// Action is an editor command bound to a key.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionSave

	// Cursor movement
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionMoveWordLeft
	ActionMoveWordRight
	ActionMoveHome
	ActionMoveEnd
	ActionSelectLeft
	ActionSelectRight
	ActionSelectUp
	ActionSelectDown
	ActionSelectWordLeft
	ActionSelectWordRight
	ActionSelectHome
	ActionSelectEnd
	ActionSelectAll

	// Text manipulation
	ActionInsertRune
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteBackward
	ActionDeleteForward

	// Clipboard and history
	ActionCopy
	ActionCut
	ActionPaste
	ActionUndo
	ActionRedo
)

var actionNames = map[Action]string{
	ActionQuit:            "quit",
	ActionSave:            "save",
	ActionMoveLeft:        "move-left",
	ActionMoveRight:       "move-right",
	ActionMoveUp:          "move-up",
	ActionMoveDown:        "move-down",
	ActionMoveWordLeft:    "move-word-left",
	ActionMoveWordRight:   "move-word-right",
	ActionMoveHome:        "move-home",
	ActionMoveEnd:         "move-end",
	ActionSelectLeft:      "select-left",
	ActionSelectRight:     "select-right",
	ActionSelectUp:        "select-up",
	ActionSelectDown:      "select-down",
	ActionSelectWordLeft:  "select-word-left",
	ActionSelectWordRight: "select-word-right",
	ActionSelectHome:      "select-home",
	ActionSelectEnd:       "select-end",
	ActionSelectAll:       "select-all",
	ActionInsertRune:      "insert-rune",
	ActionInsertNewLine:   "insert-newline",
	ActionInsertTab:       "insert-tab",
	ActionDeleteBackward:  "delete-backward",
	ActionDeleteForward:   "delete-forward",
	ActionCopy:            "copy",
	ActionCut:             "cut",
	ActionPaste:           "paste",
	ActionUndo:            "undo",
	ActionRedo:            "redo",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent is a decoded key press. Rune is set for ActionInsertRune.
type ActionEvent struct {
	Action Action
	Rune   rune
}
