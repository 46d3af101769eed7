package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Extents is a footprint expressed relative to a part's center.
type Extents struct {
	MinX, MaxX float32
	MinY, MaxY float32
	MinZ, MaxZ float32
}

// Dimensions is the geometry an asset reports once its mesh has loaded.
// Bounds, when set, is a precomputed rotated interval that is only valid for
// the rotation the part had when it was reported.
type Dimensions struct {
	HalfExtents rl.Vector3
	Bounds      *Extents
}

// Clone returns a deep copy (nil stays nil).
func (d *Dimensions) Clone() *Dimensions {
	if d == nil {
		return nil
	}
	out := &Dimensions{HalfExtents: d.HalfExtents}
	if d.Bounds != nil {
		b := *d.Bounds
		out.Bounds = &b
	}
	return out
}

// RotationMatrix builds the XYZ intrinsic rotation Rx*Ry*Rz.
// MatrixMultiply applies its left operand first, hence the Z, Y, X order.
func RotationMatrix(rotation rl.Vector3) rl.Matrix {
	rotX := rl.MatrixRotateX(rotation.X)
	rotY := rl.MatrixRotateY(rotation.Y)
	rotZ := rl.MatrixRotateZ(rotation.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(rotZ, rotY), rotX)
}

// ComputeExtents rotates the 8 corners of a box with the given half extents and
// returns the axis-aligned interval that encloses them. This is the AABB of
// the rotated box, so it is never tighter than the true oriented box.
func ComputeExtents(half, rotation rl.Vector3) Extents {
	half = sanitizeHalf(half)
	rot := RotationMatrix(sanitizeVec(rotation))

	e := Extents{
		MinX: math32.Inf(1), MaxX: math32.Inf(-1),
		MinY: math32.Inf(1), MaxY: math32.Inf(-1),
		MinZ: math32.Inf(1), MaxZ: math32.Inf(-1),
	}
	for _, sx := range [2]float32{-1, 1} {
		for _, sy := range [2]float32{-1, 1} {
			for _, sz := range [2]float32{-1, 1} {
				c := rl.Vector3Transform(rl.Vector3{X: sx * half.X, Y: sy * half.Y, Z: sz * half.Z}, rot)
				e.MinX, e.MaxX = math32.Min(e.MinX, c.X), math32.Max(e.MaxX, c.X)
				e.MinY, e.MaxY = math32.Min(e.MinY, c.Y), math32.Max(e.MaxY, c.Y)
				e.MinZ, e.MaxZ = math32.Min(e.MinZ, c.Z), math32.Max(e.MaxZ, c.Z)
			}
		}
	}
	return e
}

// FootprintExtents prefers reported bounds over recomputation. Missing
// dimensions yield a zero-size footprint.
func FootprintExtents(dims *Dimensions, rotation rl.Vector3) Extents {
	if dims == nil {
		return Extents{}
	}
	if dims.Bounds != nil && validExtents(*dims.Bounds) {
		return *dims.Bounds
	}
	return ComputeExtents(dims.HalfExtents, rotation)
}

// WorldBounds offsets the footprint by position.
func WorldBounds(position rl.Vector3, dims *Dimensions, rotation rl.Vector3) AABB {
	position = sanitizeVec(position)
	e := FootprintExtents(dims, rotation)
	return AABB{
		Min: rl.Vector3{X: position.X + e.MinX, Y: position.Y + e.MinY, Z: position.Z + e.MinZ},
		Max: rl.Vector3{X: position.X + e.MaxX, Y: position.Y + e.MaxY, Z: position.Z + e.MaxZ},
	}
}

func validExtents(e Extents) bool {
	for _, v := range [6]float32{e.MinX, e.MaxX, e.MinY, e.MaxY, e.MinZ, e.MaxZ} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return e.MinX <= e.MaxX && e.MinY <= e.MaxY && e.MinZ <= e.MaxZ
}

func sanitizeHalf(h rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: sanitizeLen(h.X), Y: sanitizeLen(h.Y), Z: sanitizeLen(h.Z)}
}

func sanitizeLen(v float32) float32 {
	if math32.IsNaN(v) || math32.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func sanitizeVec(v rl.Vector3) rl.Vector3 {
	fix := func(f float32) float32 {
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return rl.Vector3{X: fix(v.X), Y: fix(v.Y), Z: fix(v.Z)}
}
