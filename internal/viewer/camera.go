package viewer

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// EditorCamera is a fly camera: hold the right mouse button to look around
// and fly with WASD, Q and E.
type EditorCamera struct {
	Position  rl.Vector3
	Yaw       float32 // degrees
	Pitch     float32 // degrees, clamped to ±89
	MoveSpeed float32
}

func NewEditorCamera() EditorCamera {
	return EditorCamera{
		Position:  rl.Vector3{X: 8, Y: 8, Z: 8},
		Yaw:       -135,
		Pitch:     -35,
		MoveSpeed: 10,
	}
}

func (c *EditorCamera) directions() (forward, right rl.Vector3) {
	yaw := c.Yaw * rl.Deg2rad
	pitch := c.Pitch * rl.Deg2rad

	forward = rl.Vector3{
		X: math32.Cos(yaw) * math32.Cos(pitch),
		Y: math32.Sin(pitch),
		Z: math32.Sin(yaw) * math32.Cos(pitch),
	}
	right = rl.Vector3{X: math32.Sin(yaw), Z: -math32.Cos(yaw)}
	return
}

// Look turns the camera by a mouse delta in pixels.
func (c *EditorCamera) Look(delta rl.Vector2) {
	c.Yaw += delta.X * 0.1
	c.Pitch -= delta.Y * 0.1
	c.Pitch = rl.Clamp(c.Pitch, -89, 89)
}

// Fly moves along the view axes; each argument is -1, 0 or 1.
func (c *EditorCamera) Fly(forwardAxis, rightAxis, upAxis, dt float32) {
	forward, right := c.directions()
	speed := c.MoveSpeed * dt
	c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(forward, forwardAxis*speed))
	c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(right, -rightAxis*speed))
	c.Position.Y += upAxis * speed
}

func (c *EditorCamera) update(dt float32) {
	if !rl.IsMouseButtonDown(rl.MouseRightButton) {
		return
	}
	c.Look(rl.GetMouseDelta())

	var f, r, u float32
	if rl.IsKeyDown(rl.KeyW) {
		f++
	}
	if rl.IsKeyDown(rl.KeyS) {
		f--
	}
	if rl.IsKeyDown(rl.KeyD) {
		r++
	}
	if rl.IsKeyDown(rl.KeyA) {
		r--
	}
	if rl.IsKeyDown(rl.KeyE) {
		u++
	}
	if rl.IsKeyDown(rl.KeyQ) {
		u--
	}
	c.Fly(f, r, u, dt)
}

func (c *EditorCamera) Camera3D() rl.Camera3D {
	forward, _ := c.directions()
	return rl.Camera3D{
		Position:   c.Position,
		Target:     rl.Vector3Add(c.Position, forward),
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
