package viewer

import (
	"placer/internal/engine"
	"placer/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorUntinted  = rl.NewColor(170, 170, 180, 255)
	colorSelected  = rl.NewColor(108, 99, 255, 255)
	colorOverlap   = rl.NewColor(230, 60, 60, 255)
	colorWireframe = rl.NewColor(40, 40, 55, 255)
)

// partColor is the fill for a tint; transparent parts have none.
func partColor(t engine.Tint) (rl.Color, bool) {
	switch t.Mode {
	case engine.TintColor:
		return t.Color, true
	case engine.TintTransparent:
		return rl.Blank, false
	default:
		return colorUntinted, true
	}
}

// boxCorners returns the eight corners of a rotated box, bottom face first.
func boxCorners(center, half, rotation rl.Vector3) [8]rl.Vector3 {
	hx, hy, hz := half.X, half.Y, half.Z
	corners := [8]rl.Vector3{
		{X: -hx, Y: -hy, Z: -hz},
		{X: hx, Y: -hy, Z: -hz},
		{X: hx, Y: -hy, Z: hz},
		{X: -hx, Y: -hy, Z: hz},
		{X: -hx, Y: hy, Z: -hz},
		{X: hx, Y: hy, Z: -hz},
		{X: hx, Y: hy, Z: hz},
		{X: -hx, Y: hy, Z: hz},
	}
	m := physics.RotationMatrix(rotation)
	for i := range corners {
		corners[i] = rl.Vector3Add(rl.Vector3Transform(corners[i], m), center)
	}
	return corners
}

func drawRotatedBoxWires(center, half, rotation rl.Vector3, color rl.Color) {
	c := boxCorners(center, half, rotation)
	for i := 0; i < 4; i++ {
		rl.DrawLine3D(c[i], c[(i+1)%4], color)
		rl.DrawLine3D(c[4+i], c[4+(i+1)%4], color)
		rl.DrawLine3D(c[i], c[4+i], color)
	}
}

// drawPart draws the part's footprint box. Parts without reported geometry
// get a small marker so they can still be picked and seen.
func drawPart(st engine.PartState, selected, overlapping bool) {
	size := st.Bounds.Size()
	if size.X == 0 && size.Y == 0 && size.Z == 0 {
		rl.DrawSphere(st.Position, 0.1, colorWireframe)
		return
	}
	if fill, ok := partColor(st.Tint); ok {
		rl.DrawCubeV(st.Bounds.Center(), size, fill)
	}

	wire := colorWireframe
	switch {
	case overlapping:
		wire = colorOverlap
	case selected:
		wire = colorSelected
	}
	rl.DrawCubeWiresV(st.Bounds.Center(), size, wire)
}

// drawGrid draws the workspace bounds on the ground.
func drawGrid(half float32) {
	if half <= 0 {
		rl.DrawGrid(20, 1)
		return
	}
	rl.DrawGrid(int32(half*2), 1)
	drawRotatedBoxWires(rl.Vector3{}, rl.Vector3{X: half, Z: half}, rl.Vector3{}, colorSelected)
}
