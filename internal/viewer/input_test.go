package viewer

import (
	"testing"

	"placer/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeyboard struct {
	down    map[int32]bool
	pressed int32
}

func (k fakeKeyboard) IsKeyDown(key int32) bool    { return k.down[key] }
func (k fakeKeyboard) IsKeyPressed(key int32) bool { return k.pressed == key }

func press(key int32, held ...int32) fakeKeyboard {
	k := fakeKeyboard{down: map[int32]bool{}, pressed: key}
	for _, h := range held {
		k.down[h] = true
	}
	return k
}

func TestMatch(t *testing.T) {
	b := DefaultBindings()

	assert.Equal(t, ActionUndo, Match(b, press(rl.KeyZ, rl.KeyLeftControl)))
	assert.Equal(t, ActionUndo, Match(b, press(rl.KeyZ, rl.KeyLeftSuper)))
	assert.Equal(t, ActionRedo, Match(b, press(rl.KeyZ, rl.KeyLeftControl, rl.KeyLeftShift)))
	assert.Equal(t, ActionRedo, Match(b, press(rl.KeyY, rl.KeyRightControl)))
	assert.Equal(t, ActionRotateZ, Match(b, press(rl.KeyZ)))
	assert.Equal(t, ActionCut, Match(b, press(rl.KeyX, rl.KeyLeftControl)))
	assert.Equal(t, ActionRotateX, Match(b, press(rl.KeyX)))
	assert.Equal(t, ActionEscape, Match(b, press(rl.KeyEscape)))
	assert.Equal(t, ActionNone, Match(b, press(rl.KeyEscape, rl.KeyLeftShift)))
	assert.Equal(t, ActionNone, Match(b, press(rl.KeyF1)))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "select-all", ActionSelectAll.String())
	assert.Equal(t, "none", Action(999).String())
}

func TestCameraLookClampsPitch(t *testing.T) {
	c := NewEditorCamera()
	c.Look(rl.Vector2{Y: -10000})
	assert.Equal(t, float32(89), c.Pitch)
	c.Look(rl.Vector2{Y: 10000})
	assert.Equal(t, float32(-89), c.Pitch)
}

func TestCameraFlyForward(t *testing.T) {
	c := EditorCamera{MoveSpeed: 2}
	c.Fly(1, 0, 0, 0.5)
	assert.InDelta(t, 1, c.Position.X, 1e-5)
	assert.InDelta(t, 0, c.Position.Z, 1e-5)

	c.Fly(0, 0, 1, 1)
	assert.InDelta(t, 2, c.Position.Y, 1e-5)

	cam := c.Camera3D()
	assert.InDelta(t, 1, cam.Target.X-cam.Position.X, 1e-5)
}

func TestBoxCornersRotated(t *testing.T) {
	c := boxCorners(rl.Vector3{X: 1}, rl.Vector3{X: 2, Y: 1, Z: 0.5}, rl.Vector3{Y: float32(math32.Pi / 2)})
	var maxX, maxZ float32
	for _, p := range c {
		maxX = max(maxX, p.X)
		maxZ = max(maxZ, p.Z)
	}
	assert.InDelta(t, 1.5, maxX, 1e-4)
	assert.InDelta(t, 2, maxZ, 1e-4)
}

func TestPartColor(t *testing.T) {
	_, ok := partColor(engine.TransparentTint())
	assert.False(t, ok)
	c, ok := partColor(engine.ColorTint(rl.Red))
	require.True(t, ok)
	assert.Equal(t, rl.Red, c)
}
