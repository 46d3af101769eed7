package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var up = rl.Vector3{X: 0, Y: 1, Z: 0}

// RayPlaneIntersect returns where a ray hits a plane (defined by point + normal).
// Hits behind the ray origin are rejected.
func RayPlaneIntersect(rayOrigin, rayDir, planePoint, planeNormal rl.Vector3) (rl.Vector3, bool) {
	denom := rl.Vector3DotProduct(rayDir, planeNormal)
	if math32.Abs(denom) < 1e-6 {
		return rl.Vector3{}, false
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(planePoint, rayOrigin), planeNormal) / denom
	if t < 0 {
		return rl.Vector3{}, false
	}
	return rl.Vector3Add(rayOrigin, rl.Vector3Scale(rayDir, t)), true
}

// RayGroundIntersect intersects the pointer ray with the horizontal plane y = height.
func RayGroundIntersect(ray rl.Ray, height float32) (rl.Vector3, bool) {
	return RayPlaneIntersect(ray.Position, ray.Direction, rl.Vector3{Y: height}, up)
}

// RayBoxDistance returns the distance along the ray to the box, if hit.
func RayBoxDistance(ray rl.Ray, box AABB) (float32, bool) {
	dir := rl.Vector3Normalize(ray.Direction)
	tmin, tmax := math32.Inf(-1), math32.Inf(1)

	origin := [3]float32{ray.Position.X, ray.Position.Y, ray.Position.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		if math32.Abs(d[i]) < 1e-8 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / d[i]
		t2 := (hi[i] - origin[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}
