// Package world reads and writes the project file: the ordered part list a
// host saves and loads.
package world

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"placer/internal/engine"
	"placer/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

type ProjectFile struct {
	ID    string    `json:"id"`
	Name  string    `json:"name,omitempty"`
	Parts []PartDef `json:"parts"`
}

// PartDef encodes the tint as color (name or #rrggbbaa), color null for
// transparent, or noColor for the untinted material.
type PartDef struct {
	ID          string      `json:"id"`
	Asset       string      `json:"asset"`
	Category    string      `json:"category,omitempty"`
	Position    [3]float32  `json:"position"`
	Rotation    [3]float32  `json:"rotation"`
	Color       *string     `json:"color"`
	NoColor     bool        `json:"noColor,omitempty"`
	HalfExtents *[3]float32 `json:"halfExtents,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

// lookupColor accepts a palette name, #rrggbb or #rrggbbaa.
func lookupColor(name string) (rl.Color, error) {
	if c, ok := colorByName[name]; ok {
		return c, nil
	}
	var r, g, b uint8
	a := uint8(255)
	switch len(name) {
	case 7:
		if _, err := fmt.Sscanf(name, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return rl.White, fmt.Errorf("color %q: %w", name, err)
		}
	case 9:
		if _, err := fmt.Sscanf(name, "#%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return rl.White, fmt.Errorf("color %q: %w", name, err)
		}
	default:
		return rl.White, fmt.Errorf("unknown color %q", name)
	}
	return rl.NewColor(r, g, b, a), nil
}

func lookupColorName(c rl.Color) string {
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// --- Conversion ---

// FromParts captures parts in scene order.
func FromParts(id string, parts []engine.Part) ProjectFile {
	f := ProjectFile{ID: id, Parts: make([]PartDef, 0, len(parts))}
	for _, p := range parts {
		def := PartDef{
			ID:       p.ID,
			Asset:    p.Asset.ID,
			Category: p.Asset.Category,
			Position: [3]float32{p.Position.X, p.Position.Y, p.Position.Z},
			Rotation: [3]float32{p.Rotation.X, p.Rotation.Y, p.Rotation.Z},
		}
		switch p.Tint.Mode {
		case engine.TintColor:
			name := lookupColorName(p.Tint.Color)
			def.Color = &name
		case engine.TintUntinted:
			def.NoColor = true
		}
		if p.Dimensions != nil && p.Dimensions.HalfExtents != (rl.Vector3{}) {
			h := p.Dimensions.HalfExtents
			def.HalfExtents = &[3]float32{h.X, h.Y, h.Z}
		}
		f.Parts = append(f.Parts, def)
	}
	return f
}

// ScenePart converts one definition. Unknown colors fall back to white.
func (d PartDef) ScenePart() engine.Part {
	p := engine.Part{
		ID:       d.ID,
		Asset:    engine.AssetRef{ID: d.Asset, Category: d.Category},
		Position: rl.Vector3{X: d.Position[0], Y: d.Position[1], Z: d.Position[2]},
		Rotation: rl.Vector3{X: d.Rotation[0], Y: d.Rotation[1], Z: d.Rotation[2]},
	}
	switch {
	case d.NoColor:
		p.Tint = engine.UntintedTint()
	case d.Color == nil:
		p.Tint = engine.TransparentTint()
	default:
		c, _ := lookupColor(*d.Color)
		p.Tint = engine.ColorTint(c)
	}
	if d.HalfExtents != nil {
		h := *d.HalfExtents
		p.Dimensions = &physics.Dimensions{HalfExtents: rl.Vector3{X: h[0], Y: h[1], Z: h[2]}}
	}
	return p
}

// SceneParts converts every definition, in file order.
func (f ProjectFile) SceneParts() []engine.Part {
	out := make([]engine.Part, 0, len(f.Parts))
	for _, d := range f.Parts {
		out = append(out, d.ScenePart())
	}
	return out
}

// Validate checks what the scene cannot repair itself.
func (f ProjectFile) Validate() error {
	seen := make(map[string]bool, len(f.Parts))
	for i, d := range f.Parts {
		if d.Asset == "" {
			return fmt.Errorf("part %d: missing asset", i)
		}
		if d.ID != "" && seen[d.ID] {
			return fmt.Errorf("part %d: duplicate id %q", i, d.ID)
		}
		seen[d.ID] = true
		if d.Color != nil {
			if _, err := lookupColor(*d.Color); err != nil {
				return fmt.Errorf("part %d: %w", i, err)
			}
		}
	}
	return nil
}

// --- Encoding ---

func Encode(f ProjectFile) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	return data, nil
}

func Decode(data []byte) (ProjectFile, error) {
	var f ProjectFile
	if err := json.Unmarshal(data, &f); err != nil {
		return ProjectFile{}, fmt.Errorf("parse project: %w", err)
	}
	if err := f.Validate(); err != nil {
		return ProjectFile{}, fmt.Errorf("invalid project: %w", err)
	}
	return f, nil
}

func Load(path string) (ProjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProjectFile{}, fmt.Errorf("read project: %w", err)
	}
	return Decode(data)
}

func Save(path string, f ProjectFile) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}
