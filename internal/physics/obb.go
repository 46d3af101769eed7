package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlapTest selects the narrow-phase test used by the scene gate.
type OverlapTest int

const (
	// OverlapAABB compares footprints re-fit after rotation (conservative).
	OverlapAABB OverlapTest = iota
	// OverlapOBB runs a separating-axis test on the oriented boxes when both
	// parts have half extents.
	OverlapOBB
)

func (t OverlapTest) String() string {
	if t == OverlapOBB {
		return "obb"
	}
	return "aabb"
}

// ParseOverlapTest accepts "aabb" or "obb"; anything else is aabb.
func ParseOverlapTest(s string) OverlapTest {
	if s == "obb" {
		return OverlapOBB
	}
	return OverlapAABB
}

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, half extents and an XYZ Euler rotation in radians.
func NewOBB(center, half, rotation rl.Vector3) OBB {
	rot := RotationMatrix(rotation)
	return OBB{
		Center:   center,
		HalfSize: sanitizeHalf(half),
		Axes: [3]rl.Vector3{
			rl.Vector3Normalize(rl.Vector3{X: rot.M0, Y: rot.M1, Z: rot.M2}),
			rl.Vector3Normalize(rl.Vector3{X: rot.M4, Y: rot.M5, Z: rot.M6}),
			rl.Vector3Normalize(rl.Vector3{X: rot.M8, Y: rot.M9, Z: rot.M10}),
		},
	}
}

// IntersectsOBB tests the 15 separating axes. Penetration below eps on any
// axis counts as separated, matching the AABB gate's tolerance.
func (a OBB) IntersectsOBB(b OBB, eps float32) bool {
	t := rl.Vector3Subtract(b.Center, a.Center)

	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, a.Axes[i], t, eps) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, b.Axes[i], t, eps) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])
			// parallel edges
			if rl.Vector3Length(axis) <= 0.0001 {
				continue
			}
			if !overlapOnAxis(a, b, rl.Vector3Normalize(axis), t, eps) {
				return false
			}
		}
	}
	return true
}

func overlapOnAxis(a, b OBB, axis, t rl.Vector3, eps float32) bool {
	return project(a, axis)+project(b, axis)-math32.Abs(rl.Vector3DotProduct(t, axis)) > eps
}

func project(o OBB, axis rl.Vector3) float32 {
	return o.HalfSize.X*math32.Abs(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*math32.Abs(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*math32.Abs(rl.Vector3DotProduct(o.Axes[2], axis))
}

// Footprint bundles what the narrow phase needs to know about one part.
type Footprint struct {
	Position rl.Vector3
	Rotation rl.Vector3
	Dims     *Dimensions
	Box      AABB
}

// NewFootprint computes the world box once.
func NewFootprint(position, rotation rl.Vector3, dims *Dimensions) Footprint {
	return Footprint{
		Position: position,
		Rotation: rotation,
		Dims:     dims,
		Box:      WorldBounds(position, dims, rotation),
	}
}

// Overlap runs the configured narrow phase. The OBB test is only used when
// both footprints came from half extents; precomputed bounds have no
// orientation to test against, so they fall back to the AABB comparison.
func (t OverlapTest) Overlap(a, b Footprint, eps float32) bool {
	if !a.Box.Overlaps(b.Box, eps) {
		return false
	}
	if t != OverlapOBB || !orientable(a.Dims) || !orientable(b.Dims) {
		return true
	}
	return NewOBB(a.Position, a.Dims.HalfExtents, a.Rotation).
		IntersectsOBB(NewOBB(b.Position, b.Dims.HalfExtents, b.Rotation), eps)
}

func orientable(d *Dimensions) bool {
	return d != nil && d.Bounds == nil
}
