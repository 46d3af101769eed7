package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Interval is a closed range of allowed center coordinates along one axis.
type Interval struct {
	Lo, Hi float32
}

// Clamp pins v into the interval. An inverted interval (footprint wider than
// the grid) collapses to its midpoint.
func (i Interval) Clamp(v float32) float32 {
	if i.Lo > i.Hi {
		return (i.Lo + i.Hi) / 2
	}
	return math32.Max(i.Lo, math32.Min(i.Hi, v))
}

// GridRange returns the allowed center intervals on X and Z that keep the
// rotated footprint inside a square grid of the given half size.
func GridRange(dims *Dimensions, rotation rl.Vector3, halfSize float32) (x, z Interval) {
	e := FootprintExtents(dims, rotation)
	left := math32.Max(0, -e.MinX)
	right := math32.Max(0, e.MaxX)
	back := math32.Max(0, -e.MinZ)
	front := math32.Max(0, e.MaxZ)
	return Interval{Lo: -halfSize + left, Hi: halfSize - right},
		Interval{Lo: -halfSize + back, Hi: halfSize - front}
}

// ClampPositionToGrid keeps the footprint inside the grid horizontally.
// Y is passed through unchanged.
func ClampPositionToGrid(position rl.Vector3, dims *Dimensions, rotation rl.Vector3, halfSize float32) rl.Vector3 {
	position = sanitizeVec(position)
	xr, zr := GridRange(dims, rotation, halfSize)
	return rl.Vector3{X: xr.Clamp(position.X), Y: position.Y, Z: zr.Clamp(position.Z)}
}

// RestOnGround raises position so that no part of the rotated footprint is
// below y=0. Positions already resting at or above the ground are returned
// unchanged.
func RestOnGround(position rl.Vector3, dims *Dimensions, rotation rl.Vector3) rl.Vector3 {
	position = sanitizeVec(position)
	e := FootprintExtents(dims, rotation)
	if bottom := position.Y + e.MinY; bottom < 0 {
		position.Y -= bottom
	}
	return position
}
