package physics

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func unitBox(x, y, z float32) AABB {
	return NewAABBFromCenter(rl.Vector3{X: x, Y: y, Z: z}, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})
}

func TestBoxesOverlapIdentical(t *testing.T) {
	a := unitBox(0, 0, 0)
	assert.True(t, BoxesOverlap(a, a, DefaultEpsilon))
}

func TestBoxesOverlapSymmetric(t *testing.T) {
	cases := []struct {
		a, b AABB
	}{
		{unitBox(0, 0, 0), unitBox(0.5, 0, 0)},
		{unitBox(0, 0, 0), unitBox(1, 0, 0)},
		{unitBox(0, 0, 0), unitBox(0.9995, 0, 0)},
		{unitBox(0, 0, 0), unitBox(3, 3, 3)},
		{unitBox(1, 2, 3), unitBox(1.2, 2.1, 2.9)},
	}
	for _, c := range cases {
		assert.Equal(t, BoxesOverlap(c.a, c.b, DefaultEpsilon), BoxesOverlap(c.b, c.a, DefaultEpsilon))
	}
}

func TestBoxesOverlapTouchingIsNotOverlap(t *testing.T) {
	assert.False(t, BoxesOverlap(unitBox(0, 0, 0), unitBox(1, 0, 0), DefaultEpsilon))
	// inside the tolerance band
	assert.False(t, BoxesOverlap(unitBox(0, 0, 0), unitBox(0.9995, 0, 0), DefaultEpsilon))
	assert.True(t, BoxesOverlap(unitBox(0, 0, 0), unitBox(0.99, 0, 0), DefaultEpsilon))
}

func TestBoxesOverlapSeparated(t *testing.T) {
	assert.False(t, BoxesOverlap(unitBox(0, 0, 0), unitBox(1.1, 1.1, 1.1), DefaultEpsilon))
	// separated on one axis only is enough
	assert.False(t, BoxesOverlap(unitBox(0, 0, 0), unitBox(0, 0, 2), DefaultEpsilon))
}

func TestAABBRadius(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1})
	assert.InDelta(t, math32.Sqrt(3), box.Radius(), 1e-5)
	assert.Equal(t, rl.Vector3{}, box.Center())
}

func TestOverlapTestOBBRejectsLooseAABBHit(t *testing.T) {
	half := rl.Vector3{X: 1, Y: 0.5, Z: 0.1}
	rot := rl.Vector3{Y: math32.Pi / 4}
	a := NewFootprint(rl.Vector3{}, rot, &Dimensions{HalfExtents: half})
	// parallel thin slab offset along its own normal: the re-fit boxes
	// intersect, the oriented ones do not
	normal := NewOBB(rl.Vector3{}, half, rot).Axes[2]
	b := NewFootprint(rl.Vector3Scale(normal, 0.7), rot, &Dimensions{HalfExtents: half})

	assert.True(t, OverlapAABB.Overlap(a, b, DefaultEpsilon))
	assert.False(t, OverlapOBB.Overlap(a, b, DefaultEpsilon))
}

func TestOverlapTestOBBAgreesOnRealHit(t *testing.T) {
	half := rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}
	a := NewFootprint(rl.Vector3{}, rl.Vector3{}, &Dimensions{HalfExtents: half})
	b := NewFootprint(rl.Vector3{X: 0.5}, rl.Vector3{Y: math32.Pi / 4}, &Dimensions{HalfExtents: half})

	assert.True(t, OverlapAABB.Overlap(a, b, DefaultEpsilon))
	assert.True(t, OverlapOBB.Overlap(a, b, DefaultEpsilon))
}

func TestParseOverlapTest(t *testing.T) {
	assert.Equal(t, OverlapOBB, ParseOverlapTest("obb"))
	assert.Equal(t, OverlapAABB, ParseOverlapTest("anything"))
	assert.Equal(t, "obb", OverlapOBB.String())
}
