package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// DefaultEpsilon is the tolerance used by the overlap gate. Boxes that only
// touch (or interpenetrate by less than this) are not considered overlapping.
const DefaultEpsilon float32 = 0.001

// AABB is a world-space axis-aligned footprint.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and half extents.
func NewAABBFromCenter(center, half rl.Vector3) AABB {
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3{
		X: (a.Min.X + a.Max.X) / 2,
		Y: (a.Min.Y + a.Max.Y) / 2,
		Z: (a.Min.Z + a.Max.Z) / 2,
	}
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

// Radius is the half diagonal, i.e. the radius of the bounding sphere.
func (a AABB) Radius() float32 {
	return rl.Vector3Length(a.Size()) / 2
}

// Expand grows the box by margin on every side.
func (a AABB) Expand(margin float32) AABB {
	m := rl.Vector3{X: margin, Y: margin, Z: margin}
	return AABB{Min: rl.Vector3Subtract(a.Min, m), Max: rl.Vector3Add(a.Max, m)}
}

// Overlaps reports whether no separating axis exists between a and b once
// each interval has been shrunk by eps.
func (a AABB) Overlaps(b AABB, eps float32) bool {
	return !(a.Max.X <= b.Min.X+eps || a.Min.X >= b.Max.X-eps ||
		a.Max.Y <= b.Min.Y+eps || a.Min.Y >= b.Max.Y-eps ||
		a.Max.Z <= b.Min.Z+eps || a.Min.Z >= b.Max.Z-eps)
}

// BoxesOverlap is the overlap test used by the scene gate.
func BoxesOverlap(a, b AABB, eps float32) bool {
	return a.Overlaps(b, eps)
}

// BoundingBox converts to the raylib type used for ray picking and drawing.
func (a AABB) BoundingBox() rl.BoundingBox {
	return rl.NewBoundingBox(a.Min, a.Max)
}
