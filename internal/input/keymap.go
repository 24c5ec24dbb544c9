// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// binding identifies a special key together with its modifiers.
type binding struct {
	key tcell.Key
	mod tcell.ModMask
}

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	keymap map[binding]Action
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{keymap: make(map[binding]Action)}
	p.loadDefaultBindings()
	return p
}

// Bind maps key with the given modifiers to action, replacing any existing binding.
func (p *InputProcessor) Bind(key tcell.Key, mod tcell.ModMask, action Action) {
	p.keymap[binding{key, mod}] = action
}

func (p *InputProcessor) loadDefaultBindings() {
	none, shift, ctrl := tcell.ModNone, tcell.ModShift, tcell.ModCtrl

	p.Bind(tcell.KeyLeft, none, ActionMoveLeft)
	p.Bind(tcell.KeyRight, none, ActionMoveRight)
	p.Bind(tcell.KeyUp, none, ActionMoveUp)
	p.Bind(tcell.KeyDown, none, ActionMoveDown)
	p.Bind(tcell.KeyHome, none, ActionMoveHome)
	p.Bind(tcell.KeyEnd, none, ActionMoveEnd)
	p.Bind(tcell.KeyLeft, ctrl, ActionMoveWordLeft)
	p.Bind(tcell.KeyRight, ctrl, ActionMoveWordRight)

	p.Bind(tcell.KeyLeft, shift, ActionSelectLeft)
	p.Bind(tcell.KeyRight, shift, ActionSelectRight)
	p.Bind(tcell.KeyUp, shift, ActionSelectUp)
	p.Bind(tcell.KeyDown, shift, ActionSelectDown)
	p.Bind(tcell.KeyHome, shift, ActionSelectHome)
	p.Bind(tcell.KeyEnd, shift, ActionSelectEnd)
	p.Bind(tcell.KeyLeft, ctrl|shift, ActionSelectWordLeft)
	p.Bind(tcell.KeyRight, ctrl|shift, ActionSelectWordRight)

	p.Bind(tcell.KeyEnter, none, ActionInsertNewLine)
	p.Bind(tcell.KeyTab, none, ActionInsertTab)
	p.Bind(tcell.KeyBackspace, none, ActionDeleteBackward)
	p.Bind(tcell.KeyBackspace2, none, ActionDeleteBackward)
	p.Bind(tcell.KeyDelete, none, ActionDeleteForward)

	// Control letters arrive as their own keys, usually with ModCtrl set.
	for key, action := range map[tcell.Key]Action{
		tcell.KeyCtrlA: ActionSelectAll,
		tcell.KeyCtrlC: ActionCopy,
		tcell.KeyCtrlX: ActionCut,
		tcell.KeyCtrlV: ActionPaste,
		tcell.KeyCtrlZ: ActionUndo,
		tcell.KeyCtrlY: ActionRedo,
		tcell.KeyCtrlS: ActionSave,
		tcell.KeyCtrlQ: ActionQuit,
	} {
		p.Bind(key, none, action)
		p.Bind(key, ctrl, action)
	}
}

// ProcessEvent returns the action bound to ev. Unbound printable runes
// become ActionInsertRune.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key, mod := ev.Key(), ev.Modifiers()&(tcell.ModShift|tcell.ModCtrl|tcell.ModAlt)

	if action, ok := p.keymap[binding{key, mod}]; ok {
		return ActionEvent{Action: action}
	}
	if key == tcell.KeyRune && mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}
	return ActionEvent{Action: ActionUnknown}
}
