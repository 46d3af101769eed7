package physics

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeExtentsIdentity(t *testing.T) {
	half := rl.Vector3{X: 1.5, Y: 0.25, Z: 3}
	e := ComputeExtents(half, rl.Vector3{})

	assert.Equal(t, 2*half.X, e.MaxX-e.MinX)
	assert.Equal(t, 2*half.Y, e.MaxY-e.MinY)
	assert.Equal(t, 2*half.Z, e.MaxZ-e.MinZ)
	assert.Equal(t, -e.MinX, e.MaxX)
	assert.Equal(t, -e.MinZ, e.MaxZ)
}

func TestComputeExtentsQuarterTurnSwapsAxes(t *testing.T) {
	half := rl.Vector3{X: 2, Y: 1, Z: 0.5}
	e := ComputeExtents(half, rl.Vector3{Y: math32.Pi / 2})

	assert.InDelta(t, 0.5, e.MaxX, 1e-5)
	assert.InDelta(t, -0.5, e.MinX, 1e-5)
	assert.InDelta(t, 2, e.MaxZ, 1e-5)
	assert.InDelta(t, 1, e.MaxY, 1e-5)
}

func TestComputeExtentsDiagonalGrows(t *testing.T) {
	half := rl.Vector3{X: 1, Y: 1, Z: 1}
	e := ComputeExtents(half, rl.Vector3{Y: math32.Pi / 4})

	assert.InDelta(t, math32.Sqrt2, e.MaxX, 1e-5)
	assert.InDelta(t, math32.Sqrt2, e.MaxZ, 1e-5)
	assert.InDelta(t, 1, e.MaxY, 1e-5)
}

func TestComputeExtentsDegenerateInput(t *testing.T) {
	e := ComputeExtents(rl.Vector3{X: math32.NaN(), Y: -1, Z: math32.Inf(1)}, rl.Vector3{})
	assert.Equal(t, Extents{}, zeroNegatives(e))
}

// zeroNegatives folds -0 into 0 so the comparison is about values only.
func zeroNegatives(e Extents) Extents {
	f := func(v float32) float32 {
		if v == 0 {
			return 0
		}
		return v
	}
	return Extents{f(e.MinX), f(e.MaxX), f(e.MinY), f(e.MaxY), f(e.MinZ), f(e.MaxZ)}
}

func TestWorldBoundsPrefersReportedBounds(t *testing.T) {
	dims := &Dimensions{
		HalfExtents: rl.Vector3{X: 1, Y: 1, Z: 1},
		Bounds:      &Extents{MinX: -3, MaxX: 3, MinY: 0, MaxY: 2, MinZ: -1, MaxZ: 1},
	}
	box := WorldBounds(rl.Vector3{X: 10, Y: 0, Z: 0}, dims, rl.Vector3{})

	assert.Equal(t, rl.Vector3{X: 7, Y: 0, Z: -1}, box.Min)
	assert.Equal(t, rl.Vector3{X: 13, Y: 2, Z: 1}, box.Max)
}

func TestWorldBoundsMissingDimensions(t *testing.T) {
	pos := rl.Vector3{X: 1, Y: 2, Z: 3}
	box := WorldBounds(pos, nil, rl.Vector3{Y: 1})

	assert.Equal(t, pos, box.Min)
	assert.Equal(t, pos, box.Max)
}

func TestDimensionsCloneIsDeep(t *testing.T) {
	d := &Dimensions{HalfExtents: rl.Vector3{X: 1}, Bounds: &Extents{MaxX: 1}}
	c := d.Clone()
	c.Bounds.MaxX = 5

	require.NotNil(t, d.Bounds)
	assert.Equal(t, float32(1), d.Bounds.MaxX)
	assert.Nil(t, (*Dimensions)(nil).Clone())
}

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 0, NormalizeAngle(0), 1e-6)
	assert.InDelta(t, math32.Pi/2, NormalizeAngle(-3*math32.Pi/2), 1e-5)
	assert.InDelta(t, math32.Pi, NormalizeAngle(3*math32.Pi), 1e-5)
	assert.Less(t, NormalizeAngle(2*math32.Pi), 2*math32.Pi)
	assert.Equal(t, float32(0), NormalizeAngle(math32.NaN()))
}

func TestSnapTo(t *testing.T) {
	assert.Equal(t, float32(1.5), SnapTo(1.4, 0.5))
	assert.Equal(t, float32(-1), SnapTo(-1.2, 0.5))
	assert.Equal(t, float32(1.4), SnapTo(1.4, 0))
}
