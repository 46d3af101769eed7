package editor

import (
	"io"
	"log/slog"
	"testing"

	"placer/internal/engine"
	"placer/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func cube(id string, x, y, z float32) engine.Part {
	return engine.Part{
		ID:         id,
		Position:   rl.Vector3{X: x, Y: y, Z: z},
		Dimensions: &physics.Dimensions{HalfExtents: rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}},
	}
}

func marker(id string, x, y, z float32) engine.Part {
	return engine.Part{ID: id, Position: rl.Vector3{X: x, Y: y, Z: z}}
}

func setup(t *testing.T, sel engine.Selection, parts ...engine.Part) (*engine.Scene, *Controller) {
	t.Helper()
	s := engine.NewScene(engine.WithLogger(quiet))
	s.SetProjectContext("test", parts)
	s.Select(sel)
	return s, NewController(s, WithLogger(quiet))
}

// downAt is a pointer whose ray points straight down onto (x, z).
func downAt(x, z float32) Pointer {
	return Pointer{Ray: rl.Ray{Position: rl.Vector3{X: x, Y: 10, Z: z}, Direction: rl.Vector3{Y: -1}}}
}

func position(t *testing.T, s *engine.Scene, id string) rl.Vector3 {
	t.Helper()
	p, ok := s.Part(id)
	require.True(t, ok)
	return p.Position
}

func rotation(t *testing.T, s *engine.Scene, id string) rl.Vector3 {
	t.Helper()
	p, ok := s.Part(id)
	require.True(t, ok)
	return p.Rotation
}

func TestRotateYSnapsTotalAngle(t *testing.T) {
	s, c := setup(t, engine.SingleSelection("a"), cube("a", 0, 0.5, 0))

	require.True(t, c.Start(RotatingY, Pointer{X: 100, Y: 100}))
	// 200px at 0.5°/px is a raw 100°
	require.True(t, c.Move(Pointer{X: 300, Y: 100}))
	c.Stop()

	r := rotation(t, s, "a")
	assert.InDelta(t, math32.Pi/2, r.Y, 1e-5)
	assert.Equal(t, float32(0), r.X)
	assert.Equal(t, float32(0), r.Z)
}

func TestRotateNegativeDragWrapsAround(t *testing.T) {
	s, c := setup(t, engine.SingleSelection("a"), cube("a", 0, 0.5, 0))

	require.True(t, c.Start(RotatingZ, Pointer{X: 300}))
	require.True(t, c.Move(Pointer{X: 120}))
	assert.InDelta(t, 3*math32.Pi/2, rotation(t, s, "a").Z, 1e-5)
}

func TestRotateXClampsBackHemisphere(t *testing.T) {
	s, c := setup(t, engine.SingleSelection("a"), cube("a", 0, 0.5, 0))

	require.True(t, c.Start(RotatingX, Pointer{Y: 400}))
	// 360px up is 180°, which would leave the part upside down
	require.True(t, c.Move(Pointer{Y: 40}))
	assert.InDelta(t, math32.Pi/2, rotation(t, s, "a").X, 1e-5)

	// 270° is already in the front hemisphere
	require.True(t, c.Move(Pointer{Y: -140}))
	assert.InDelta(t, 3*math32.Pi/2, rotation(t, s, "a").X, 1e-5)
}

func TestRotateXNoClampWithFinerSnap(t *testing.T) {
	s := engine.NewScene(engine.WithLogger(quiet))
	s.SetProjectContext("test", []engine.Part{cube("a", 0, 0.5, 0)})
	s.Select(engine.SingleSelection("a"))
	st := DefaultSettings()
	st.RotationSnapDegrees = 45
	c := NewController(s, WithSettings(st))

	require.True(t, c.Start(RotatingX, Pointer{Y: 400}))
	require.True(t, c.Move(Pointer{Y: 40}))
	assert.InDelta(t, math32.Pi, rotation(t, s, "a").X, 1e-5)
}

func TestGroupRotationKeepsOffsets(t *testing.T) {
	a := cube("a", 0, 0.5, 0)
	b := cube("b", 3, 0.5, 0)
	b.Rotation = rl.Vector3{Y: 0.3}
	s, c := setup(t, engine.MultipleSelection("a", "b"), a, b)

	require.True(t, c.Start(RotatingY, Pointer{}))
	require.True(t, c.Move(Pointer{X: 180}))
	assert.InDelta(t, math32.Pi/2, rotation(t, s, "a").Y, 1e-5)
	assert.InDelta(t, 0.3+math32.Pi/2, rotation(t, s, "b").Y, 1e-5)
}

func TestGroupMovePreservesSpacing(t *testing.T) {
	s, c := setup(t, engine.MultipleSelection("a", "b"), marker("a", 0, 0, 0), marker("b", 2, 0, 0))

	require.True(t, c.Start(Moving, downAt(0, 0)))
	require.True(t, c.Move(downAt(3, 1)))
	c.Stop()

	assert.Equal(t, rl.Vector3{X: 3, Y: 0, Z: 1}, position(t, s, "a"))
	assert.Equal(t, rl.Vector3{X: 5, Y: 0, Z: 1}, position(t, s, "b"))
}

func TestMoveSnapsToStep(t *testing.T) {
	s, c := setup(t, engine.SingleSelection("a"), marker("a", 0, 0, 0))

	require.True(t, c.Start(Moving, downAt(0, 0)))
	require.True(t, c.Move(downAt(1.2, -0.8)))
	assert.Equal(t, rl.Vector3{X: 1, Z: -1}, position(t, s, "a"))
}

func TestGroupMoveStopsAtGridEdge(t *testing.T) {
	s, c := setup(t, engine.AllSelection(), marker("a", 8, 0, 0), marker("b", 6, 0, 0))

	require.True(t, c.Start(Moving, downAt(0, 0)))
	require.True(t, c.Move(downAt(5, 0)))

	assert.Equal(t, float32(10), position(t, s, "a").X)
	assert.Equal(t, float32(8), position(t, s, "b").X)
}

func TestMoveRejectedKeepsLastAccepted(t *testing.T) {
	s, c := setup(t, engine.SingleSelection("a"), cube("a", 0, 0.5, 0), cube("b", 2, 0.5, 0))

	require.True(t, c.Start(Moving, downAt(0, 0)))
	require.True(t, c.Move(downAt(-1, 0)))
	assert.False(t, c.Move(downAt(1.5, 0)))
	c.Cancel()

	assert.Equal(t, Idle, c.Mode())
	assert.Equal(t, rl.Vector3{X: -1, Y: 0.5}, position(t, s, "a"))
	assert.Empty(t, s.OverlappingPairs())
}

func TestMoveFaceSnapping(t *testing.T) {
	s := engine.NewScene(engine.WithLogger(quiet))
	s.SetProjectContext("test", []engine.Part{cube("a", -5, 0.5, 0), cube("b", 3, 0.5, 0)})
	s.Select(engine.SingleSelection("a"))
	st := DefaultSettings()
	st.SnapCaptureRadius = 1.5
	c := NewController(s, WithSettings(st), WithLogger(quiet))

	require.True(t, c.Start(Moving, downAt(-5, 0)))
	require.True(t, c.Move(downAt(1.5, 0)))
	// flush against b's left face rather than at the raw x=1.5
	assert.InDelta(t, 2, position(t, s, "a").X, 1e-5)
	assert.InDelta(t, 0.5, position(t, s, "a").Y, 1e-5)
}

func TestAdjustHeightStaysAboveGround(t *testing.T) {
	s, c := setup(t, engine.SingleSelection("a"), cube("a", 0, 0.5, 0))

	require.True(t, c.Start(AdjustingHeight, Pointer{Y: 500}))
	require.True(t, c.Move(Pointer{Y: 400}))
	assert.InDelta(t, 2.5, position(t, s, "a").Y, 1e-5)

	require.True(t, c.Move(Pointer{Y: 900}))
	assert.InDelta(t, 0.5, position(t, s, "a").Y, 1e-5)
}

func TestStartSwitchesModeAndPushesHistoryOnce(t *testing.T) {
	s, c := setup(t, engine.SingleSelection("a"), cube("a", 0, 0.5, 0))
	var modes []Mode
	c.ModeChanged.AddListener(func(m ModeChange) { modes = append(modes, m.Mode) })

	require.True(t, c.Start(Moving, downAt(0, 0)))
	c.Move(downAt(1, 0))
	c.Move(downAt(2, 0))
	require.True(t, c.Start(RotatingY, Pointer{}))
	c.Stop()

	assert.Equal(t, []Mode{Moving, Idle, RotatingY, Idle}, modes)
	past, _ := s.HistoryDepth()
	assert.Equal(t, 1, past, "the rotation gesture never moved anything")
	assert.False(t, s.InGesture())

	require.True(t, s.Undo())
	assert.Equal(t, rl.Vector3{Y: 0.5}, position(t, s, "a"))
}

func TestGestureWithoutEditLeavesHistory(t *testing.T) {
	s, c := setup(t, engine.SingleSelection("a"), cube("a", 0, 0.5, 0))

	require.True(t, c.Start(Moving, downAt(0, 0)))
	c.Stop()
	past, future := s.HistoryDepth()
	assert.Zero(t, past)
	assert.Zero(t, future)

	// a pointer that stays inside the snap step is not an edit either
	require.True(t, c.Start(Moving, downAt(0, 0)))
	assert.True(t, c.Move(downAt(0.1, 0)))
	c.Stop()
	past, _ = s.HistoryDepth()
	assert.Zero(t, past)
	assert.False(t, s.CanUndo())
}

func TestGestureWithoutEditKeepsRedo(t *testing.T) {
	s, c := setup(t, engine.SingleSelection("a"), cube("a", 0, 0.5, 0))

	require.True(t, c.Start(Moving, downAt(0, 0)))
	require.True(t, c.Move(downAt(2, 0)))
	c.Stop()
	require.True(t, s.Undo())
	require.True(t, s.CanRedo())

	require.True(t, c.Start(Moving, downAt(0, 0)))
	c.Stop()
	assert.True(t, s.CanRedo())

	require.True(t, s.Redo())
	assert.Equal(t, float32(2), position(t, s, "a").X)
}

func TestRejectedFirstProposalPushesNothing(t *testing.T) {
	s, c := setup(t, engine.SingleSelection("a"), cube("a", 0, 0.5, 0), cube("b", 2, 0.5, 0))

	require.True(t, c.Start(Moving, downAt(0, 0)))
	assert.False(t, c.Move(downAt(1.5, 0)))
	c.Stop()
	assert.False(t, s.CanUndo())
}

func TestStartWithoutSelection(t *testing.T) {
	_, c := setup(t, engine.NoSelection(), cube("a", 0, 0.5, 0))
	assert.False(t, c.Start(Moving, downAt(0, 0)))
	assert.Equal(t, Idle, c.Mode())
	assert.False(t, c.Move(downAt(1, 1)))

	_, c = setup(t, engine.SingleSelection("ghost"), cube("a", 0, 0.5, 0))
	assert.False(t, c.Start(RotatingX, Pointer{}))
}

func TestClampBackHemisphere(t *testing.T) {
	assert.Equal(t, float32(0), clampBackHemisphere(0))
	up, down := float32(math32.Pi/2), float32(3*math32.Pi/2)
	assert.Equal(t, up, clampBackHemisphere(up))
	assert.Equal(t, up, clampBackHemisphere(math32.Pi))
	assert.Equal(t, down, clampBackHemisphere(1.2*math32.Pi))
	assert.Equal(t, down, clampBackHemisphere(down))
}
