package viewer

import (
	"placer/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	nearClip = 0.1
	farClip  = 1000.0
)

// plane is n·p + d = 0 with n pointing into the frustum.
type plane struct {
	n rl.Vector3
	d float32
}

// Frustum is the six clip planes of a camera, used to skip parts that are
// out of view.
type Frustum struct {
	planes [6]plane
}

// NewFrustum extracts the planes from the camera's view-projection matrix
// (Gribb/Hartmann).
func NewFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)
	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, nearClip, farClip)
	} else {
		h := camera.Fovy / 2
		proj = rl.MatrixOrtho(-h*aspect, h*aspect, -h, h, nearClip, farClip)
	}
	m := rl.MatrixMultiply(view, proj)

	// clip-space column j of m, plus w
	col := func(j int) (rl.Vector3, float32) {
		switch j {
		case 0:
			return rl.Vector3{X: m.M0, Y: m.M4, Z: m.M8}, m.M12
		case 1:
			return rl.Vector3{X: m.M1, Y: m.M5, Z: m.M9}, m.M13
		default:
			return rl.Vector3{X: m.M2, Y: m.M6, Z: m.M10}, m.M14
		}
	}
	w := rl.Vector3{X: m.M3, Y: m.M7, Z: m.M11}
	wd := m.M15

	var f Frustum
	for j := 0; j < 3; j++ {
		c, cd := col(j)
		f.planes[2*j] = normalizePlane(plane{n: rl.Vector3Add(w, c), d: wd + cd})
		f.planes[2*j+1] = normalizePlane(plane{n: rl.Vector3Subtract(w, c), d: wd - cd})
	}
	return f
}

func normalizePlane(p plane) plane {
	l := rl.Vector3Length(p.n)
	if l == 0 {
		return p
	}
	return plane{n: rl.Vector3Scale(p.n, 1/l), d: p.d / l}
}

// ContainsBox reports whether any part of box may be visible. It tests the
// corner furthest along each plane normal, so it can err on the visible side
// near frustum corners.
func (f *Frustum) ContainsBox(box physics.AABB) bool {
	for _, p := range f.planes {
		v := box.Min
		if p.n.X >= 0 {
			v.X = box.Max.X
		}
		if p.n.Y >= 0 {
			v.Y = box.Max.Y
		}
		if p.n.Z >= 0 {
			v.Z = box.Max.Z
		}
		if rl.Vector3DotProduct(p.n, v)+p.d < 0 {
			return false
		}
	}
	return true
}
