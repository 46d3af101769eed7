package viewer

import (
	"testing"

	"placer/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestFrustumContainsBox(t *testing.T) {
	cam := rl.Camera3D{
		Position:   rl.Vector3{Z: 10},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	f := NewFrustum(cam, 1)
	unit := rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}

	assert.True(t, f.ContainsBox(physics.NewAABBFromCenter(rl.Vector3{}, unit)))
	assert.False(t, f.ContainsBox(physics.NewAABBFromCenter(rl.Vector3{Z: 20}, unit)), "behind the camera")
	assert.False(t, f.ContainsBox(physics.NewAABBFromCenter(rl.Vector3{X: 100}, unit)), "far to the side")
	assert.False(t, f.ContainsBox(physics.NewAABBFromCenter(rl.Vector3{Z: -2000}, unit)), "past the far plane")

	wide := physics.AABB{Min: rl.Vector3{X: -100, Y: -1, Z: -1}, Max: rl.Vector3{X: 100, Y: 1, Z: 1}}
	assert.True(t, f.ContainsBox(wide), "straddling the view")
}
