package engine

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/chewxy/math32"
)

type ChangeKind string

const (
	ChangeAdd       ChangeKind = "add"
	ChangeTransform ChangeKind = "transform"
	ChangeTint      ChangeKind = "tint"
	ChangeDelete    ChangeKind = "delete"
	ChangeCut       ChangeKind = "cut"
	ChangePaste     ChangeKind = "paste"
	ChangeUndo      ChangeKind = "undo"
	ChangeRedo      ChangeKind = "redo"
	ChangeGround    ChangeKind = "ground"
)

// ChangeRecord is a diagnostic entry; it is never replayed.
type ChangeRecord struct {
	Kind    ChangeKind
	PartIDs []string
	At      time.Time
}

// serialPart is the persisted view of a part. Geometry reported by the asset
// loader is left out so it never marks the scene dirty.
type serialPart struct {
	ID       string     `json:"id"`
	Asset    string     `json:"asset"`
	Category string     `json:"category,omitempty"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
	Tint     string     `json:"tint"`
	Color    [4]uint8   `json:"color"`
}

// quantum absorbs float noise from repeated transform round trips.
const quantum float32 = 1e-4

func quantize(v float32) float32 {
	q := math32.Round(v/quantum) * quantum
	if q == 0 {
		return 0
	}
	return q
}

// serialize produces the normalized form used for the unsaved-changes flag
// and for comparing history states.
func serialize(parts []Part) []byte {
	out := make([]serialPart, 0, len(parts))
	for _, p := range parts {
		t := p.Tint.normalized()
		out = append(out, serialPart{
			ID:       p.ID,
			Asset:    p.Asset.ID,
			Category: p.Asset.Category,
			Position: [3]float32{quantize(p.Position.X), quantize(p.Position.Y), quantize(p.Position.Z)},
			Rotation: [3]float32{quantize(p.Rotation.X), quantize(p.Rotation.Y), quantize(p.Rotation.Z)},
			Tint:     t.Mode.String(),
			Color:    [4]uint8{t.Color.R, t.Color.G, t.Color.B, t.Color.A},
		})
	}
	b, err := json.Marshal(out)
	if err != nil {
		// only reachable with NaN, which the scene never stores
		return nil
	}
	return b
}

func sameSerial(a, b []byte) bool {
	return bytes.Equal(a, b)
}
