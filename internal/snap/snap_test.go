package snap

import (
	"testing"

	"placer/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cube(id string, x, y, z, half float32) Body {
	return Body{
		ID:     id,
		Bounds: physics.NewAABBFromCenter(rl.Vector3{X: x, Y: y, Z: z}, rl.Vector3{X: half, Y: half, Z: half}),
	}
}

func countType(points []Point, t PointType) int {
	n := 0
	for _, p := range points {
		if p.Type == t {
			n++
		}
	}
	return n
}

func TestGenerateCounts(t *testing.T) {
	active := cube("a", 0, 0, 0, 0.5)
	points := Generate(active, []Body{active, cube("b", 3, 0, 0, 1)})

	require.Len(t, points, 26)
	assert.Equal(t, 8, countType(points, Corner))
	assert.Equal(t, 12, countType(points, Edge))
	for _, ft := range []PointType{FaceLeft, FaceRight, FaceBottom, FaceTop, FaceBack, FaceFront} {
		assert.Equal(t, 1, countType(points, ft), ft)
	}
	for _, p := range points {
		assert.Equal(t, "b", p.TargetID)
	}
}

func TestGenerateSortedByScore(t *testing.T) {
	active := cube("a", 0, 0, 0, 0.5)
	points := Generate(active, []Body{cube("b", 3, 0, 0, 1), cube("c", -10, 0, 0, 1)})

	require.NotEmpty(t, points)
	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i-1].Score, points[i].Score)
	}
	// the closest point is b's left face, facing the active part
	assert.Equal(t, FaceLeft, points[0].Type)
	assert.Equal(t, rl.Vector3{X: 2}, points[0].Position)
	assert.Equal(t, rl.Vector3{X: -1}, points[0].Normal)
}

func TestGenerateFaceAttachmentArea(t *testing.T) {
	active := Body{ID: "a", Bounds: physics.NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 0.5, Y: 0.25, Z: 1})}
	target := Body{ID: "b", Bounds: physics.NewAABBFromCenter(rl.Vector3{X: 5}, rl.Vector3{X: 1, Y: 2, Z: 3})}

	for _, p := range Generate(active, []Body{target}) {
		switch p.Type {
		case FaceTop:
			require.NotNil(t, p.Area)
			assert.Equal(t, AttachmentArea{Width: 2, Height: 6, Depth: 0.5}, *p.Area)
		case FaceLeft:
			require.NotNil(t, p.Area)
			assert.Equal(t, AttachmentArea{Width: 6, Height: 4, Depth: 1}, *p.Area)
		case Corner, Edge:
			assert.Nil(t, p.Area)
		}
	}
}

func TestGenerateConnectorCategories(t *testing.T) {
	active := cube("a", 0, 0, 0, 0.5)
	u := cube("u", 3, 0, 0, 1)
	u.Category = CategoryUShape
	l := cube("l", -3, 0, 0, 1)
	l.Category = CategoryLShape

	points := Generate(active, []Body{u, l})
	assert.Len(t, points, 26*2+3)
	assert.Equal(t, 1, countType(points, FaceInner))
	assert.Equal(t, 1, countType(points, FaceInnerBottom))
	assert.Equal(t, 1, countType(points, FaceInnerSide))

	for _, p := range points {
		if p.Type == FaceInner {
			assert.Equal(t, rl.Vector3{X: 3, Y: -0.5}, p.Position)
			assert.Equal(t, rl.Vector3{Y: 1}, p.Normal)
		}
	}
}

func TestNearby(t *testing.T) {
	active := cube("a", 0, 0, 0, 0.5)
	near := cube("near", 2, 0, 0, 0.5)
	far := cube("far", 20, 0, 0, 0.5)

	got := Nearby(active, []Body{far, active, near}, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "near", got[0].ID)

	assert.Empty(t, Nearby(active, []Body{near}, 0))
	assert.Nil(t, Nearby(active, nil, 5))
}

func TestFindNearestStrictlyUnderMax(t *testing.T) {
	points := []Point{
		{Position: rl.Vector3{X: 1}, Type: Corner},
		{Position: rl.Vector3{X: 3}, Type: Edge},
	}
	p, ok := FindNearest(rl.Vector3{X: 2.9}, points, 1)
	require.True(t, ok)
	assert.Equal(t, Edge, p.Type)

	_, ok = FindNearest(rl.Vector3{X: 2}, points, 1)
	assert.False(t, ok)

	_, ok = FindNearest(rl.Vector3{}, nil, 100)
	assert.False(t, ok)
}

func TestPreviewPositionFaceSitsFlush(t *testing.T) {
	active := cube("a", 0, 0, 0, 0.5)
	target := cube("b", 3, 0, 0, 1)
	points := Generate(active, []Body{target})

	pos, ok := PreviewPosition(rl.Vector3{X: 1.8}, points, 0.5)
	require.True(t, ok)
	// left face at x=2, half the active part's width outward
	assert.InDelta(t, 1.5, pos.X, 1e-6)
	assert.InDelta(t, 0, pos.Y, 1e-6)

	placed := physics.NewAABBFromCenter(pos, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})
	assert.False(t, physics.BoxesOverlap(placed, target.Bounds, physics.DefaultEpsilon))
}

func TestPreviewPositionEdgeOffset(t *testing.T) {
	points := []Point{{Position: rl.Vector3{X: 1}, Normal: rl.Vector3{X: 1}, Type: Edge}}
	pos, ok := PreviewPosition(rl.Vector3{X: 1.1}, points, 1)
	require.True(t, ok)
	assert.InDelta(t, 1+EdgeOffset, pos.X, 1e-6)
}

func TestPreviewPositionNoCandidate(t *testing.T) {
	orig := rl.Vector3{X: 7, Y: 1, Z: 2}
	pos, ok := PreviewPosition(orig, nil, 1)
	assert.False(t, ok)
	assert.Equal(t, orig, pos)
}
