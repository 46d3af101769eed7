// Package editor turns pointer drags into transform proposals for the
// selected parts.
package editor

import (
	"log/slog"

	"placer/internal/engine"
	"placer/internal/physics"
	"placer/internal/snap"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/samber/lo"
)

type Mode int

const (
	Idle Mode = iota
	Moving
	AdjustingHeight
	RotatingX
	RotatingY
	RotatingZ
)

func (m Mode) String() string {
	switch m {
	case Moving:
		return "moving"
	case AdjustingHeight:
		return "adjustingHeight"
	case RotatingX:
		return "rotatingX"
	case RotatingY:
		return "rotatingY"
	case RotatingZ:
		return "rotatingZ"
	default:
		return "idle"
	}
}

// Pointer is one pointer sample: screen coordinates plus the pick ray the
// host derived from them.
type Pointer struct {
	X, Y float32
	Ray  rl.Ray
}

type Settings struct {
	PositionSnapStep    float32 // world units; 0 disables
	HeightSnapStep      float32 // world units; 0 disables
	RotationSnapDegrees float32 // 0 disables
	GridHalfSize        float32
	HeightSensitivity   float32 // world units per pixel
	RotationSensitivity float32 // degrees per pixel
	SnapCaptureRadius   float32 // 0 disables face snapping
}

func DefaultSettings() Settings {
	return Settings{
		PositionSnapStep:    0.5,
		HeightSnapStep:      0.25,
		RotationSnapDegrees: 90,
		GridHalfSize:        10,
		HeightSensitivity:   0.02,
		RotationSensitivity: 0.5,
	}
}

// Scene is what the controller needs from the scene.
type Scene interface {
	Part(id string) (engine.Part, bool)
	Parts() []engine.Part
	SelectedIDs() []string
	Snapshot() []engine.Part
	PushSnapshot(parts []engine.Part)
	BeginGesture(ids []string)
	EndGesture()
	UpdateTransforms(updates []engine.Update) bool
}

// ModeChange is emitted whenever the active mode changes.
type ModeChange struct {
	Mode      Mode
	Selection []string
}

type member struct {
	id       string
	category string
	position rl.Vector3
	rotation rl.Vector3
	dims     *physics.Dimensions
}

// backHemisphereTolerance keeps exact quarter turns out of the X clamp.
const backHemisphereTolerance float32 = 1e-4

// Controller is the transform state machine. At most one mode is active; the
// first selected part drives group transforms and every member moves relative
// to its own start state.
type Controller struct {
	scene    Scene
	settings Settings
	log      *slog.Logger

	mode    Mode
	members []member
	start   Pointer
	// startHit is the ground point under the pointer when moving began
	startHit rl.Vector3
	hasHit   bool
	// before is the pre-gesture state, pushed on the first accepted proposal
	before []engine.Part
	pushed bool

	ModeChanged engine.Event[ModeChange]
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithSettings(s Settings) Option {
	return func(c *Controller) { c.settings = s }
}

func NewController(scene Scene, opts ...Option) *Controller {
	c := &Controller{
		scene:    scene,
		settings: DefaultSettings(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) Settings() Settings { return c.settings }

func (c *Controller) SetSettings(s Settings) { c.settings = s }

// Start enters mode for the current selection, leaving any active mode first.
// It records each member's start transform and opens the scene's overlap
// baseline. The gesture gets one history entry, pushed when its first
// proposal is accepted. Returns false with an empty selection.
func (c *Controller) Start(mode Mode, p Pointer) bool {
	if c.mode != Idle {
		c.Stop()
	}
	if mode == Idle {
		return false
	}

	c.members = c.members[:0]
	for _, id := range c.scene.SelectedIDs() {
		part, ok := c.scene.Part(id)
		if !ok {
			continue
		}
		c.members = append(c.members, member{
			id:       part.ID,
			category: part.Asset.Category,
			position: part.Position,
			rotation: part.Rotation,
			dims:     part.Dimensions,
		})
	}
	if len(c.members) == 0 {
		return false
	}

	c.before = c.scene.Snapshot()
	c.pushed = false
	c.scene.BeginGesture(c.ids())
	c.start = p
	c.hasHit = false
	if mode == Moving {
		c.startHit, c.hasHit = physics.RayGroundIntersect(p.Ray, c.members[0].position.Y)
	}
	c.setMode(mode)
	return true
}

// Move turns a pointer sample into one atomic proposal. Returns whether the
// scene accepted it; rejection is not an error.
func (c *Controller) Move(p Pointer) bool {
	var updates []engine.Update
	switch c.mode {
	case Idle:
		return false
	case Moving:
		updates = c.moveProposal(p)
	case AdjustingHeight:
		updates = c.heightProposal(p)
	case RotatingX, RotatingY, RotatingZ:
		updates = c.rotateProposal(p)
	}
	if len(updates) == 0 {
		return false
	}
	if !c.changes(updates) {
		return true
	}
	if !c.scene.UpdateTransforms(updates) {
		c.log.Debug("proposal rejected", "mode", c.mode, "parts", len(updates))
		return false
	}
	if !c.pushed {
		c.scene.PushSnapshot(c.before)
		c.before = nil
		c.pushed = true
	}
	return true
}

// Stop ends the active mode. Parts stay at their last accepted proposal.
func (c *Controller) Stop() {
	if c.mode == Idle {
		return
	}
	c.scene.EndGesture()
	c.members = c.members[:0]
	c.before = nil
	c.setMode(Idle)
}

// Cancel is Stop bound to Escape; it does not revert, undo does.
func (c *Controller) Cancel() {
	c.Stop()
}

// changes reports whether any update differs from the part's current
// transform. A pointer that has not left the snap cell is not an edit.
func (c *Controller) changes(updates []engine.Update) bool {
	return lo.SomeBy(updates, func(u engine.Update) bool {
		p, ok := c.scene.Part(u.ID)
		return !ok || p.Position != u.Position || p.Rotation != u.Rotation
	})
}

func (c *Controller) setMode(m Mode) {
	c.mode = m
	c.ModeChanged.Invoke(ModeChange{Mode: m, Selection: c.ids()})
}

func (c *Controller) ids() []string {
	return lo.Map(c.members, func(m member, _ int) string { return m.id })
}

func (c *Controller) moveProposal(p Pointer) []engine.Update {
	driver := c.members[0]
	hit, ok := physics.RayGroundIntersect(p.Ray, driver.position.Y)
	if !ok {
		return nil
	}
	if !c.hasHit {
		c.startHit, c.hasHit = hit, true
		return nil
	}
	dx := physics.SnapTo(hit.X-c.startHit.X, c.settings.PositionSnapStep)
	dz := physics.SnapTo(hit.Z-c.startHit.Z, c.settings.PositionSnapStep)
	dx, dz = c.containDelta(dx, dz)

	if len(c.members) == 1 && c.settings.SnapCaptureRadius > 0 {
		raw := rl.Vector3{X: driver.position.X + dx, Y: driver.position.Y, Z: driver.position.Z + dz}
		if pos, snapped := c.faceSnap(driver, raw); snapped {
			pos = physics.ClampPositionToGrid(pos, driver.dims, driver.rotation, c.settings.GridHalfSize)
			return []engine.Update{{ID: driver.id, Position: pos, Rotation: driver.rotation}}
		}
	}

	return lo.Map(c.members, func(m member, _ int) engine.Update {
		return engine.Update{
			ID:       m.id,
			Position: rl.Vector3{X: m.position.X + dx, Y: m.position.Y, Z: m.position.Z + dz},
			Rotation: m.rotation,
		}
	})
}

// containDelta limits a group delta so every member stays inside the grid,
// which keeps the spacing between members intact.
func (c *Controller) containDelta(dx, dz float32) (float32, float32) {
	if c.settings.GridHalfSize <= 0 {
		return dx, dz
	}
	xr := physics.Interval{Lo: math32.Inf(-1), Hi: math32.Inf(1)}
	zr := xr
	for _, m := range c.members {
		mx, mz := physics.GridRange(m.dims, m.rotation, c.settings.GridHalfSize)
		xr.Lo = math32.Max(xr.Lo, mx.Lo-m.position.X)
		xr.Hi = math32.Min(xr.Hi, mx.Hi-m.position.X)
		zr.Lo = math32.Max(zr.Lo, mz.Lo-m.position.Z)
		zr.Hi = math32.Min(zr.Hi, mz.Hi-m.position.Z)
	}
	return clampDelta(dx, xr), clampDelta(dz, zr)
}

// clampDelta pins d into r; a group that cannot fit along this axis does not
// move along it.
func clampDelta(d float32, r physics.Interval) float32 {
	if r.Lo > r.Hi {
		return 0
	}
	return r.Clamp(d)
}

func (c *Controller) faceSnap(driver member, raw rl.Vector3) (rl.Vector3, bool) {
	active := snap.Body{
		ID:       driver.id,
		Bounds:   physics.WorldBounds(raw, driver.dims, driver.rotation),
		Category: driver.category,
	}
	others := lo.FilterMap(c.scene.Parts(), func(p engine.Part, _ int) (snap.Body, bool) {
		return snap.Body{ID: p.ID, Bounds: p.Bounds(), Category: p.Asset.Category}, p.ID != driver.id
	})
	candidates := snap.Nearby(active, others, c.settings.SnapCaptureRadius)
	if len(candidates) == 0 {
		return raw, false
	}
	points := snap.Generate(active, candidates)
	return snap.PreviewPosition(raw, points, c.settings.SnapCaptureRadius)
}

func (c *Controller) heightProposal(p Pointer) []engine.Update {
	// screen y grows downwards
	dy := (c.start.Y - p.Y) * c.settings.HeightSensitivity
	dy = physics.SnapTo(dy, c.settings.HeightSnapStep)

	lowest := lo.MinBy(c.members, func(a, b member) bool { return a.position.Y < b.position.Y })
	if floor := -math32.Max(0, lowest.position.Y); dy < floor {
		dy = floor
	}
	return lo.Map(c.members, func(m member, _ int) engine.Update {
		pos := m.position
		pos.Y = math32.Max(0, pos.Y+dy)
		pos = physics.RestOnGround(pos, m.dims, m.rotation)
		return engine.Update{ID: m.id, Position: pos, Rotation: m.rotation}
	})
}

func (c *Controller) rotateProposal(p Pointer) []engine.Update {
	var pixels float32
	if c.mode == RotatingX {
		pixels = c.start.Y - p.Y
	} else {
		pixels = p.X - c.start.X
	}
	driver := c.members[0]
	startAngle := axisAngle(driver.rotation, c.mode)
	total := startAngle + physics.Deg2Rad(pixels*c.settings.RotationSensitivity)
	delta := c.snapAngle(total) - startAngle

	return lo.Map(c.members, func(m member, _ int) engine.Update {
		rot := m.rotation
		angle := physics.NormalizeAngle(axisAngle(rot, c.mode) + delta)
		if c.mode == RotatingX && c.settings.RotationSnapDegrees == 90 {
			angle = clampBackHemisphere(angle)
		}
		return engine.Update{ID: m.id, Position: m.position, Rotation: setAxisAngle(rot, c.mode, angle)}
	})
}

// snapAngle snaps the total angle to the rotation step and normalizes it.
func (c *Controller) snapAngle(a float32) float32 {
	if c.settings.RotationSnapDegrees > 0 {
		a = physics.SnapTo(a, physics.Deg2Rad(c.settings.RotationSnapDegrees))
	}
	return physics.NormalizeAngle(a)
}

// clampBackHemisphere maps X angles strictly between π/2 and 3π/2 onto the
// nearer of the two so coarse snapping never leaves a part upside down.
func clampBackHemisphere(a float32) float32 {
	up, down := float32(math32.Pi/2), float32(3*math32.Pi/2)
	if a <= up+backHemisphereTolerance || a >= down-backHemisphereTolerance {
		return a
	}
	if a <= math32.Pi {
		return up
	}
	return down
}

func axisAngle(r rl.Vector3, m Mode) float32 {
	switch m {
	case RotatingX:
		return r.X
	case RotatingY:
		return r.Y
	default:
		return r.Z
	}
}

func setAxisAngle(r rl.Vector3, m Mode, a float32) rl.Vector3 {
	switch m {
	case RotatingX:
		r.X = a
	case RotatingY:
		r.Y = a
	default:
		r.Z = a
	}
	return r
}
