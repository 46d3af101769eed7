package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is a discrete editor command bound to a key chord.
type Action int

const (
	ActionNone Action = iota
	ActionCopy
	ActionCut
	ActionPaste
	ActionDelete
	ActionUndo
	ActionRedo
	ActionSelectAll
	ActionEscape
	ActionSave
	ActionCycleTint
	ActionMove
	ActionHeight
	ActionRotateX
	ActionRotateY
	ActionRotateZ
)

var actionNames = map[Action]string{
	ActionCopy:      "copy",
	ActionCut:       "cut",
	ActionPaste:     "paste",
	ActionDelete:    "delete",
	ActionUndo:      "undo",
	ActionRedo:      "redo",
	ActionSelectAll: "select-all",
	ActionEscape:    "escape",
	ActionSave:      "save",
	ActionCycleTint: "tint",
	ActionMove:      "move",
	ActionHeight:    "height",
	ActionRotateX:   "rotate-x",
	ActionRotateY:   "rotate-y",
	ActionRotateZ:   "rotate-z",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "none"
}

// Binding is a key plus the modifiers that must be held with it. Ctrl
// matches either Control or Super so Cmd works on macOS.
type Binding struct {
	Key    int32
	Ctrl   bool
	Shift  bool
	Action Action
}

// Keyboard is the slice of raylib input the bindings read.
type Keyboard interface {
	IsKeyDown(key int32) bool
	IsKeyPressed(key int32) bool
}

// DefaultBindings is ordered so that chords with more modifiers win over
// their plain counterparts (Ctrl+Shift+Z before Ctrl+Z).
func DefaultBindings() []Binding {
	return []Binding{
		{Key: rl.KeyZ, Ctrl: true, Shift: true, Action: ActionRedo},
		{Key: rl.KeyY, Ctrl: true, Action: ActionRedo},
		{Key: rl.KeyZ, Ctrl: true, Action: ActionUndo},
		{Key: rl.KeyC, Ctrl: true, Action: ActionCopy},
		{Key: rl.KeyX, Ctrl: true, Action: ActionCut},
		{Key: rl.KeyV, Ctrl: true, Action: ActionPaste},
		{Key: rl.KeyA, Ctrl: true, Action: ActionSelectAll},
		{Key: rl.KeyS, Ctrl: true, Action: ActionSave},
		{Key: rl.KeyDelete, Action: ActionDelete},
		{Key: rl.KeyBackspace, Ctrl: true, Action: ActionDelete},
		{Key: rl.KeyEscape, Action: ActionEscape},
		{Key: rl.KeyT, Action: ActionCycleTint},
		{Key: rl.KeyG, Action: ActionMove},
		{Key: rl.KeyH, Action: ActionHeight},
		{Key: rl.KeyX, Action: ActionRotateX},
		{Key: rl.KeyY, Action: ActionRotateY},
		{Key: rl.KeyZ, Action: ActionRotateZ},
	}
}

// Match returns the first binding whose key was pressed this frame with
// exactly its modifiers held.
func Match(bindings []Binding, kb Keyboard) Action {
	ctrl := kb.IsKeyDown(rl.KeyLeftControl) || kb.IsKeyDown(rl.KeyRightControl) ||
		kb.IsKeyDown(rl.KeyLeftSuper) || kb.IsKeyDown(rl.KeyRightSuper)
	shift := kb.IsKeyDown(rl.KeyLeftShift) || kb.IsKeyDown(rl.KeyRightShift)
	for _, b := range bindings {
		if b.Ctrl != ctrl || b.Shift != shift {
			continue
		}
		if kb.IsKeyPressed(b.Key) {
			return b.Action
		}
	}
	return ActionNone
}

type raylibKeyboard struct{}

func (raylibKeyboard) IsKeyDown(key int32) bool    { return rl.IsKeyDown(key) }
func (raylibKeyboard) IsKeyPressed(key int32) bool { return rl.IsKeyPressed(key) }
