package physics

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// minRectSide keeps degenerate (zero-size) footprints indexable; rtreego
// rejects rectangles with a zero-length side.
const minRectSide = 1e-4

type indexEntry struct {
	id   string
	rect rtreego.Rect
}

func (e *indexEntry) Bounds() rtreego.Rect {
	return e.rect
}

// Index is a broad-phase R-tree over part footprints.
type Index struct {
	tree    *rtreego.Rtree
	entries map[string]*indexEntry
}

func NewIndex() *Index {
	return &Index{
		tree:    rtreego.NewTree(3, 4, 16),
		entries: make(map[string]*indexEntry),
	}
}

// Insert adds or replaces the footprint for id.
func (x *Index) Insert(id string, box AABB) {
	if old, ok := x.entries[id]; ok {
		x.tree.Delete(old)
	}
	e := &indexEntry{id: id, rect: toRect(box)}
	x.entries[id] = e
	x.tree.Insert(e)
}

// Remove drops id from the index.
func (x *Index) Remove(id string) {
	if e, ok := x.entries[id]; ok {
		x.tree.Delete(e)
		delete(x.entries, id)
	}
}

func (x *Index) Len() int {
	return len(x.entries)
}

// Query returns ids (sorted) whose footprint intersects box grown by margin.
func (x *Index) Query(box AABB, margin float32) []string {
	hits := x.tree.SearchIntersect(toRect(box.Expand(margin)))
	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.(*indexEntry).id)
	}
	sort.Strings(ids)
	return ids
}

func toRect(box AABB) rtreego.Rect {
	pad := float64(minRectSide) / 2
	p := rtreego.Point{float64(box.Min.X) - pad, float64(box.Min.Y) - pad, float64(box.Min.Z) - pad}
	size := box.Size()
	lengths := []float64{
		float64(size.X) + 2*pad,
		float64(size.Y) + 2*pad,
		float64(size.Z) + 2*pad,
	}
	for i, l := range lengths {
		if !(l > 0) {
			lengths[i] = minRectSide
		}
	}
	r, err := rtreego.NewRect(p, lengths)
	if err != nil {
		// only reachable with NaN input, which WorldBounds already sanitizes
		r, _ = rtreego.NewRect(rtreego.Point{0, 0, 0}, []float64{minRectSide, minRectSide, minRectSide})
	}
	return r
}
