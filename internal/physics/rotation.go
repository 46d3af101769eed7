package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const twoPi = 2 * math32.Pi

// NormalizeAngle maps a radian angle into [0, 2π).
func NormalizeAngle(a float32) float32 {
	if math32.IsNaN(a) || math32.IsInf(a, 0) {
		return 0
	}
	a = math32.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a = 0
	}
	return a
}

// NormalizeRotation normalizes every Euler component.
func NormalizeRotation(r rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: NormalizeAngle(r.X), Y: NormalizeAngle(r.Y), Z: NormalizeAngle(r.Z)}
}

// SnapTo rounds v to the nearest multiple of step. A non-positive step
// disables snapping.
func SnapTo(v, step float32) float32 {
	if step <= 0 {
		return v
	}
	return math32.Round(v/step) * step
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float32) float32 {
	return deg * math32.Pi / 180
}
