package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/samber/lo"
)

type ClipboardAction string

const (
	ClipCopy ClipboardAction = "copy"
	ClipCut  ClipboardAction = "cut"
)

// Clipboard holds copied or cut parts.
type Clipboard struct {
	Action ClipboardAction
	Parts  []Part
}

func (c Clipboard) Empty() bool { return len(c.Parts) == 0 }

// Centroid is the mean member position.
func (c Clipboard) Centroid() rl.Vector3 {
	if c.Empty() {
		return rl.Vector3{}
	}
	sum := lo.Reduce(c.Parts, func(acc rl.Vector3, p Part, _ int) rl.Vector3 {
		return rl.Vector3Add(acc, p.Position)
	}, rl.Vector3{})
	return rl.Vector3Scale(sum, 1/float32(len(c.Parts)))
}

// Arrange returns clones with fresh ids laid out around anchor with the same
// offsets they had around the centroid.
func (c Clipboard) Arrange(anchor rl.Vector3) []Part {
	centroid := c.Centroid()
	return lo.Map(c.Parts, func(p Part, _ int) Part {
		clone := NewPart(p.Asset, rl.Vector3Add(anchor, rl.Vector3Subtract(p.Position, centroid)), p.Rotation)
		clone.Dimensions = p.Dimensions.Clone()
		clone.Tint = p.Tint
		return clone
	})
}
