package physics

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestClampPositionToGrid(t *testing.T) {
	dims := &Dimensions{HalfExtents: rl.Vector3{X: 1, Y: 1, Z: 2}}

	got := ClampPositionToGrid(rl.Vector3{X: 20, Y: 3, Z: -20}, dims, rl.Vector3{}, 10)
	assert.Equal(t, rl.Vector3{X: 9, Y: 3, Z: -8}, got)

	inside := rl.Vector3{X: 1, Y: 0, Z: 1}
	assert.Equal(t, inside, ClampPositionToGrid(inside, dims, rl.Vector3{}, 10))
}

func TestClampPositionToGridRotatedFootprint(t *testing.T) {
	dims := &Dimensions{HalfExtents: rl.Vector3{X: 1, Y: 1, Z: 3}}
	got := ClampPositionToGrid(rl.Vector3{X: 20}, dims, rl.Vector3{Y: math32.Pi / 2}, 10)
	// the long side now lies along X
	assert.InDelta(t, 7, got.X, 1e-5)
}

func TestClampPositionToGridWiderThanGrid(t *testing.T) {
	dims := &Dimensions{HalfExtents: rl.Vector3{X: 15, Y: 1, Z: 1}}
	got := ClampPositionToGrid(rl.Vector3{X: 4, Z: 0}, dims, rl.Vector3{}, 10)

	assert.False(t, math32.IsNaN(got.X))
	assert.Equal(t, float32(0), got.X)
}

func TestClampPositionToGridIdempotent(t *testing.T) {
	dims := &Dimensions{HalfExtents: rl.Vector3{X: 0.7, Y: 0.2, Z: 1.3}}
	rots := []rl.Vector3{{}, {Y: 0.3}, {X: 1, Y: 2, Z: 3}}
	positions := []rl.Vector3{{X: 50, Z: 50}, {X: -9.9, Z: 3}, {X: 0.1, Y: 7, Z: -0.2}}

	for _, r := range rots {
		for _, p := range positions {
			once := ClampPositionToGrid(p, dims, r, 10)
			twice := ClampPositionToGrid(once, dims, r, 10)
			assert.Equal(t, once, twice)
		}
	}
}

func TestClampPositionToGridMissingDimensions(t *testing.T) {
	got := ClampPositionToGrid(rl.Vector3{X: 12, Y: 1, Z: -3}, nil, rl.Vector3{}, 10)
	assert.Equal(t, rl.Vector3{X: 10, Y: 1, Z: -3}, got)
}

func TestRestOnGround(t *testing.T) {
	dims := &Dimensions{HalfExtents: rl.Vector3{X: 1, Y: 0.5, Z: 1}}

	assert.Equal(t, float32(0.5), RestOnGround(rl.Vector3{}, dims, rl.Vector3{}).Y)
	assert.Equal(t, float32(3), RestOnGround(rl.Vector3{Y: 3}, dims, rl.Vector3{}).Y)

	// standing on end after a quarter turn about Z
	lifted := RestOnGround(rl.Vector3{Y: 0.5}, dims, rl.Vector3{Z: math32.Pi / 2})
	assert.InDelta(t, 1, lifted.Y, 1e-5)
}

func TestRayGroundIntersect(t *testing.T) {
	ray := rl.Ray{Position: rl.Vector3{X: 0, Y: 10, Z: 0}, Direction: rl.Vector3{X: 1, Y: -1, Z: 0}}
	hit, ok := RayGroundIntersect(ray, 0)
	assert.True(t, ok)
	assert.InDelta(t, 10, hit.X, 1e-5)

	_, ok = RayGroundIntersect(rl.Ray{Position: rl.Vector3{Y: 10}, Direction: rl.Vector3{X: 1}}, 0)
	assert.False(t, ok)

	_, ok = RayGroundIntersect(rl.Ray{Position: rl.Vector3{Y: 10}, Direction: rl.Vector3{Y: 1}}, 0)
	assert.False(t, ok)
}

func TestRayBoxDistance(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{X: 5}, rl.Vector3{X: 1, Y: 1, Z: 1})
	d, ok := RayBoxDistance(rl.Ray{Direction: rl.Vector3{X: 1}}, box)
	assert.True(t, ok)
	assert.InDelta(t, 4, d, 1e-5)

	_, ok = RayBoxDistance(rl.Ray{Direction: rl.Vector3{X: -1}}, box)
	assert.False(t, ok)
}
