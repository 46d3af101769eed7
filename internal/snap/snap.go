// Package snap synthesizes attachment hints around parts near the one being
// placed. Nothing here touches the scene; callers decide whether to adopt a
// suggested position.
package snap

import (
	"sort"

	"placer/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/samber/lo"
)

// EdgeOffset pushes edge and corner previews slightly off the target so the
// two parts are not coincident.
const EdgeOffset float32 = 0.05

// Connector categories with extra inner face points.
const (
	CategoryUShape = "u-shape"
	CategoryLShape = "l-shape"
)

// wallFrac is the share of a connector's size taken by its walls or floor.
const wallFrac float32 = 0.25

type PointType string

const (
	Corner          PointType = "corner"
	Edge            PointType = "edge"
	FaceLeft        PointType = "face-left"
	FaceRight       PointType = "face-right"
	FaceBottom      PointType = "face-bottom"
	FaceTop         PointType = "face-top"
	FaceBack        PointType = "face-back"
	FaceFront       PointType = "face-front"
	FaceInner       PointType = "face-inner"
	FaceInnerBottom PointType = "face-inner-bottom"
	FaceInnerSide   PointType = "face-inner-side"
)

// IsFace reports whether the point sits on a surface (as opposed to an edge
// or a corner).
func (t PointType) IsFace() bool {
	return t != Corner && t != Edge
}

// AttachmentArea is the paste-able surface of a face point. Depth is the
// thickness of the part being placed along the face normal.
type AttachmentArea struct {
	Width  float32
	Height float32
	Depth  float32
}

// Point is one candidate attachment location.
type Point struct {
	Position rl.Vector3
	Normal   rl.Vector3
	Type     PointType
	TargetID string
	Area     *AttachmentArea
	Score    float32
}

// Body is the snapshot of a part the generator works from.
type Body struct {
	ID       string
	Bounds   physics.AABB
	Category string
}

// Generate returns every candidate point around others, sorted by distance
// to the active body (closest first). The active body itself is skipped if it
// appears in others.
func Generate(active Body, others []Body) []Point {
	var points []Point
	activeSize := active.Bounds.Size()
	center := active.Bounds.Center()

	for _, o := range others {
		if o.ID == active.ID {
			continue
		}
		points = append(points, corners(o)...)
		points = append(points, edges(o)...)
		points = append(points, faces(o, activeSize)...)
		switch o.Category {
		case CategoryUShape:
			points = append(points, uShapeFaces(o, activeSize)...)
		case CategoryLShape:
			points = append(points, lShapeFaces(o, activeSize)...)
		}
	}

	for i := range points {
		points[i].Score = rl.Vector3Distance(points[i].Position, center)
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Score < points[j].Score
	})
	return points
}

// Nearby keeps the others whose bounding spheres come within threshold of the
// active body's sphere. Order of others is preserved.
func Nearby(active Body, others []Body, threshold float32) []Body {
	if len(others) == 0 {
		return nil
	}
	idx := physics.NewIndex()
	for _, o := range others {
		idx.Insert(o.ID, sphereBox(o.Bounds))
	}
	hits := idx.Query(sphereBox(active.Bounds), threshold)

	ac, ar := active.Bounds.Center(), active.Bounds.Radius()
	return lo.Filter(others, func(o Body, _ int) bool {
		if o.ID == active.ID {
			return false
		}
		if !lo.Contains(hits, o.ID) {
			return false
		}
		return rl.Vector3Distance(ac, o.Bounds.Center()) <= ar+o.Bounds.Radius()+threshold
	})
}

// sphereBox is the cube enclosing the bounding sphere.
func sphereBox(b physics.AABB) physics.AABB {
	r := b.Radius()
	return physics.NewAABBFromCenter(b.Center(), rl.Vector3{X: r, Y: r, Z: r})
}

// FindNearest scans points for the one closest to position, strictly under
// maxDistance.
func FindNearest(position rl.Vector3, points []Point, maxDistance float32) (Point, bool) {
	best := -1
	bestDist := maxDistance
	for i, p := range points {
		if d := rl.Vector3Distance(position, p.Position); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Point{}, false
	}
	return points[best], true
}

// PreviewPosition moves original onto the nearest point, offset along its
// normal so the previewed part sits flush against the target surface. The
// second result reports whether snapping happened.
func PreviewPosition(original rl.Vector3, points []Point, maxDistance float32) (rl.Vector3, bool) {
	p, ok := FindNearest(original, points, maxDistance)
	if !ok {
		return original, false
	}
	offset := EdgeOffset
	if p.Type.IsFace() && p.Area != nil {
		offset = p.Area.Depth / 2
	}
	return rl.Vector3Add(p.Position, rl.Vector3Scale(p.Normal, offset)), true
}

func corners(o Body) []Point {
	c := o.Bounds.Center()
	half := rl.Vector3Scale(o.Bounds.Size(), 0.5)
	out := make([]Point, 0, 8)
	for _, sx := range [2]float32{-1, 1} {
		for _, sy := range [2]float32{-1, 1} {
			for _, sz := range [2]float32{-1, 1} {
				dir := rl.Vector3{X: sx, Y: sy, Z: sz}
				out = append(out, Point{
					Position: rl.Vector3Add(c, rl.Vector3Multiply(dir, half)),
					Normal:   rl.Vector3Normalize(dir),
					Type:     Corner,
					TargetID: o.ID,
				})
			}
		}
	}
	return out
}

// edges emits the midpoints of the 12 box edges: for each axis, the four
// edges running along it.
func edges(o Body) []Point {
	c := o.Bounds.Center()
	half := rl.Vector3Scale(o.Bounds.Size(), 0.5)
	out := make([]Point, 0, 12)
	for axis := 0; axis < 3; axis++ {
		for _, s1 := range [2]float32{-1, 1} {
			for _, s2 := range [2]float32{-1, 1} {
				var dir rl.Vector3
				switch axis {
				case 0:
					dir = rl.Vector3{Y: s1, Z: s2}
				case 1:
					dir = rl.Vector3{X: s1, Z: s2}
				default:
					dir = rl.Vector3{X: s1, Y: s2}
				}
				out = append(out, Point{
					Position: rl.Vector3Add(c, rl.Vector3Multiply(dir, half)),
					Normal:   rl.Vector3Normalize(dir),
					Type:     Edge,
					TargetID: o.ID,
				})
			}
		}
	}
	return out
}

func faces(o Body, activeSize rl.Vector3) []Point {
	c := o.Bounds.Center()
	size := o.Bounds.Size()
	half := rl.Vector3Scale(size, 0.5)

	face := func(t PointType, normal rl.Vector3, w, h, d float32) Point {
		return Point{
			Position: rl.Vector3Add(c, rl.Vector3Multiply(normal, half)),
			Normal:   normal,
			Type:     t,
			TargetID: o.ID,
			Area:     &AttachmentArea{Width: w, Height: h, Depth: d},
		}
	}
	return []Point{
		face(FaceLeft, rl.Vector3{X: -1}, size.Z, size.Y, activeSize.X),
		face(FaceRight, rl.Vector3{X: 1}, size.Z, size.Y, activeSize.X),
		face(FaceBottom, rl.Vector3{Y: -1}, size.X, size.Z, activeSize.Y),
		face(FaceTop, rl.Vector3{Y: 1}, size.X, size.Z, activeSize.Y),
		face(FaceBack, rl.Vector3{Z: -1}, size.X, size.Y, activeSize.Z),
		face(FaceFront, rl.Vector3{Z: 1}, size.X, size.Y, activeSize.Z),
	}
}

// uShapeFaces adds the channel floor of a U connector: walls on the X sides,
// open at the top.
func uShapeFaces(o Body, activeSize rl.Vector3) []Point {
	lower, size := o.Bounds.Min, o.Bounds.Size()
	c := o.Bounds.Center()
	return []Point{{
		Position: rl.Vector3{X: c.X, Y: lower.Y + wallFrac*size.Y, Z: c.Z},
		Normal:   rl.Vector3{Y: 1},
		Type:     FaceInner,
		TargetID: o.ID,
		Area: &AttachmentArea{
			Width:  math32.Max(0, size.X*(1-2*wallFrac)),
			Height: size.Z,
			Depth:  activeSize.Y,
		},
	}}
}

// lShapeFaces adds the two inner faces of an L connector: a floor along the
// bottom and an upright leg on the -X side.
func lShapeFaces(o Body, activeSize rl.Vector3) []Point {
	lower, size := o.Bounds.Min, o.Bounds.Size()
	c := o.Bounds.Center()
	legX := lower.X + wallFrac*size.X
	floorY := lower.Y + wallFrac*size.Y
	return []Point{
		{
			Position: rl.Vector3{X: (legX + o.Bounds.Max.X) / 2, Y: floorY, Z: c.Z},
			Normal:   rl.Vector3{Y: 1},
			Type:     FaceInnerBottom,
			TargetID: o.ID,
			Area:     &AttachmentArea{Width: size.X * (1 - wallFrac), Height: size.Z, Depth: activeSize.Y},
		},
		{
			Position: rl.Vector3{X: legX, Y: (floorY + o.Bounds.Max.Y) / 2, Z: c.Z},
			Normal:   rl.Vector3{X: 1},
			Type:     FaceInnerSide,
			TargetID: o.ID,
			Area:     &AttachmentArea{Width: size.Z, Height: size.Y * (1 - wallFrac), Depth: activeSize.X},
		},
	}
}
