package viewer

import (
	"fmt"

	"placer/internal/editor"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 245)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)
	colorText      = rl.NewColor(200, 200, 208, 255)
	colorTextHi    = rl.NewColor(255, 255, 255, 255)
)

func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextHi))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextHi))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

type toolButton struct {
	label  string
	action Action
	mode   editor.Mode
}

var toolButtons = []toolButton{
	{"Move (G)", ActionMove, editor.Moving},
	{"Height (H)", ActionHeight, editor.AdjustingHeight},
	{"Rot X", ActionRotateX, editor.RotatingX},
	{"Rot Y", ActionRotateY, editor.RotatingY},
	{"Rot Z", ActionRotateZ, editor.RotatingZ},
	{"Undo", ActionUndo, editor.Idle},
	{"Redo", ActionRedo, editor.Idle},
	{"Save", ActionSave, editor.Idle},
}

const toolbarHeight = 36

// drawToolbar draws the mode buttons and returns the action clicked, if any.
func drawToolbar(width int32, mode editor.Mode) Action {
	rl.DrawRectangle(0, 0, width, toolbarHeight, colorBgPanel)

	clicked := ActionNone
	x := float32(8)
	for _, b := range toolButtons {
		bounds := rl.Rectangle{X: x, Y: 6, Width: 92, Height: 24}
		if b.mode != editor.Idle && b.mode == mode {
			rl.DrawRectangleLinesEx(rl.Rectangle{X: x - 2, Y: 4, Width: 96, Height: 28}, 2, colorAccent)
		}
		if gui.Button(bounds, b.label) {
			clicked = b.action
		}
		x += 100
	}
	return clicked
}

func drawStatus(width, height int32, s *Session, unsaved bool) {
	text := fmt.Sprintf("mode: %s | parts: %d", s.Mode(), len(s.States()))
	if unsaved {
		text += " | unsaved"
	}
	if s.Status() != "" {
		text += " | " + s.Status()
	}
	gui.StatusBar(rl.Rectangle{X: 0, Y: float32(height - 24), Width: float32(width), Height: 24}, text)
}
