// Package config holds the placement settings shared by the scene, the
// transform controller and the hosts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"placer/internal/editor"
	"placer/internal/engine"
	"placer/internal/physics"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for the config file, relative to the
// working directory.
const DefaultPath = "config/placer.yaml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	PositionSnapStep    float32 `yaml:"positionSnapStep"`
	HeightSnapStep      float32 `yaml:"heightSnapStep"`
	RotationSnapDegrees float32 `yaml:"rotationSnapDegrees"`
	GridHalfSize        float32 `yaml:"gridHalfSize"`
	AllowOverlap        bool    `yaml:"allowOverlap"`

	HeightSensitivity   float32 `yaml:"heightSensitivity"`
	RotationSensitivity float32 `yaml:"rotationSensitivity"`
	SnapCaptureRadius   float32 `yaml:"snapCaptureRadius"`
	HistoryLimit        int     `yaml:"historyLimit"`
	// OverlapTest is "aabb" (default) or "obb".
	OverlapTest string `yaml:"overlapTest"`
}

func Default() Config {
	ed := editor.DefaultSettings()
	return Config{
		PositionSnapStep:    ed.PositionSnapStep,
		HeightSnapStep:      ed.HeightSnapStep,
		RotationSnapDegrees: ed.RotationSnapDegrees,
		GridHalfSize:        ed.GridHalfSize,
		HeightSensitivity:   ed.HeightSensitivity,
		RotationSensitivity: ed.RotationSensitivity,
		SnapCaptureRadius:   ed.SnapCaptureRadius,
		HistoryLimit:        engine.DefaultHistoryLimit,
		OverlapTest:         physics.OverlapAABB.String(),
	}
}

// Load reads path over the defaults, so keys missing from the file keep
// their default value. A missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c Config) Validate() error {
	var errs []error
	nonNeg := func(name string, v float32) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be negative (got %v)", ErrInvalid, name, v))
		}
	}
	nonNeg("positionSnapStep", c.PositionSnapStep)
	nonNeg("heightSnapStep", c.HeightSnapStep)
	nonNeg("snapCaptureRadius", c.SnapCaptureRadius)
	if c.RotationSnapDegrees < 0 || c.RotationSnapDegrees > 360 {
		errs = append(errs, fmt.Errorf("%w: rotationSnapDegrees must be within [0, 360] (got %v)", ErrInvalid, c.RotationSnapDegrees))
	}
	if c.GridHalfSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: gridHalfSize must be positive (got %v)", ErrInvalid, c.GridHalfSize))
	}
	if c.HeightSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("%w: heightSensitivity must be positive (got %v)", ErrInvalid, c.HeightSensitivity))
	}
	if c.RotationSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("%w: rotationSensitivity must be positive (got %v)", ErrInvalid, c.RotationSensitivity))
	}
	if c.HistoryLimit < 1 {
		errs = append(errs, fmt.Errorf("%w: historyLimit must be at least 1 (got %d)", ErrInvalid, c.HistoryLimit))
	}
	if c.OverlapTest != "aabb" && c.OverlapTest != "obb" {
		errs = append(errs, fmt.Errorf("%w: overlapTest must be aabb or obb (got %q)", ErrInvalid, c.OverlapTest))
	}
	return errors.Join(errs...)
}

// SceneSettings maps the config onto the scene's knobs.
func (c Config) SceneSettings() engine.Settings {
	return engine.Settings{
		AllowOverlap: c.AllowOverlap,
		GridHalfSize: c.GridHalfSize,
		HistoryLimit: c.HistoryLimit,
		OverlapTest:  physics.ParseOverlapTest(c.OverlapTest),
		Epsilon:      physics.DefaultEpsilon,
	}
}

// EditorSettings maps the config onto the controller's knobs.
func (c Config) EditorSettings() editor.Settings {
	return editor.Settings{
		PositionSnapStep:    c.PositionSnapStep,
		HeightSnapStep:      c.HeightSnapStep,
		RotationSnapDegrees: c.RotationSnapDegrees,
		GridHalfSize:        c.GridHalfSize,
		HeightSensitivity:   c.HeightSensitivity,
		RotationSensitivity: c.RotationSensitivity,
		SnapCaptureRadius:   c.SnapCaptureRadius,
	}
}
