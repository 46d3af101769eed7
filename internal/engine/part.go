package engine

import (
	"placer/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// AssetRef points at the renderable shape. The engine never looks inside;
// Category is only used to recognize connector shapes when snapping.
type AssetRef struct {
	ID       string
	Category string
}

// TintMode selects one of three mutually exclusive material states.
type TintMode int

const (
	// TintUntinted renders with the asset's default material.
	TintUntinted TintMode = iota
	// TintColor renders with Tint.Color.
	TintColor
	// TintTransparent renders as a ghost.
	TintTransparent
)

func (m TintMode) String() string {
	switch m {
	case TintColor:
		return "color"
	case TintTransparent:
		return "transparent"
	default:
		return "untinted"
	}
}

type Tint struct {
	Mode  TintMode
	Color rl.Color
}

func ColorTint(c rl.Color) Tint { return Tint{Mode: TintColor, Color: c} }
func TransparentTint() Tint     { return Tint{Mode: TintTransparent} }
func UntintedTint() Tint        { return Tint{Mode: TintUntinted} }

// normalized drops the color of non-color modes so equal states compare equal.
func (t Tint) normalized() Tint {
	if t.Mode != TintColor {
		return Tint{Mode: t.Mode}
	}
	return t
}

// Part is one placed instance of an asset.
type Part struct {
	ID         string
	Asset      AssetRef
	Position   rl.Vector3
	Rotation   rl.Vector3 // Euler radians, XYZ order, in [0, 2π)
	Dimensions *physics.Dimensions
	Tint       Tint
}

// NewPart mints a part with a fresh id.
func NewPart(asset AssetRef, position, rotation rl.Vector3) Part {
	return Part{
		ID:       uuid.NewString(),
		Asset:    asset,
		Position: position,
		Rotation: physics.NormalizeRotation(rotation),
	}
}

// Clone returns a deep copy.
func (p Part) Clone() Part {
	p.Dimensions = p.Dimensions.Clone()
	return p
}

// Bounds is the part's world footprint.
func (p Part) Bounds() physics.AABB {
	return physics.WorldBounds(p.Position, p.Dimensions, p.Rotation)
}

func (p Part) footprint() physics.Footprint {
	return physics.NewFootprint(p.Position, p.Rotation, p.Dimensions)
}

// dimsForRotation returns dims valid for the new rotation. Reported bounds only
// hold for the rotation they were measured at, so they are dropped; if the
// asset never reported half extents the old bounds are kept as a loose
// stand-in so the footprint does not collapse.
func dimsForRotation(dims *physics.Dimensions, from, to rl.Vector3) *physics.Dimensions {
	if dims == nil || dims.Bounds == nil || from == to {
		return dims
	}
	out := dims.Clone()
	if out.HalfExtents == (rl.Vector3{}) {
		b := out.Bounds
		out.HalfExtents = rl.Vector3{
			X: (b.MaxX - b.MinX) / 2,
			Y: (b.MaxY - b.MinY) / 2,
			Z: (b.MaxZ - b.MinZ) / 2,
		}
	}
	out.Bounds = nil
	return out
}

// PartState is what the renderer needs to draw one part.
type PartState struct {
	ID       string
	Asset    AssetRef
	Position rl.Vector3
	Rotation rl.Vector3
	Tint     Tint
	Bounds   physics.AABB
}

func (p Part) State() PartState {
	return PartState{
		ID:       p.ID,
		Asset:    p.Asset,
		Position: p.Position,
		Rotation: p.Rotation,
		Tint:     p.Tint,
		Bounds:   p.Bounds(),
	}
}
