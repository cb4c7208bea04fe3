package drawing

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/chazu/draft/pkg/geom"
	"github.com/chazu/draft/pkg/vec"
)

// minPad keeps R-tree rectangles non-degenerate for points, horizontal and
// vertical segments.
const minPad = 1e-9

// R-tree node fan-out.
const (
	indexMinChildren = 4
	indexMaxChildren = 16
)

// Index is a spatial index over entity bounding boxes. It answers candidate
// queries only; callers refine with exact geometry. An Index is a snapshot
// and does not see entities added to the drawing after NewIndex.
type Index struct {
	tree *rtreego.Rtree
	pad  float64
	size int
}

// indexed adapts an entity to rtreego.Spatial.
type indexed struct {
	e    *Entity
	seq  int
	rect rtreego.Rect
}

func (x *indexed) Bounds() rtreego.Rect { return x.rect }

// NewIndex builds an index over d, growing every box by pad on each side.
// Entities without a shape, with an empty box, or with non-finite bounds are
// not indexed.
func NewIndex(d *Drawing, pad float64) *Index {
	if !(pad >= minPad) {
		pad = minPad
	}
	idx := &Index{
		tree: rtreego.NewTree(2, indexMinChildren, indexMaxChildren),
		pad:  pad,
	}
	for i, e := range d.Entities {
		if e.Shape == nil {
			continue
		}
		rect, ok := toRect(e.Bounds(), pad)
		if !ok {
			continue
		}
		idx.tree.Insert(&indexed{e: e, seq: i, rect: rect})
		idx.size++
	}
	return idx
}

// Len returns the number of indexed entities.
func (idx *Index) Len() int { return idx.size }

// Query returns the entities whose padded box intersects bb, in drawing
// order.
func (idx *Index) Query(bb geom.BoundingBox) []*Entity {
	rect, ok := toRect(bb, minPad)
	if !ok {
		return nil
	}
	found := idx.tree.SearchIntersect(rect)
	hits := make([]*indexed, 0, len(found))
	for _, s := range found {
		hits = append(hits, s.(*indexed))
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].seq < hits[j].seq })

	out := make([]*Entity, len(hits))
	for i, h := range hits {
		out[i] = h.e
	}
	return out
}

// Near returns the entities whose padded box comes within tol of p.
func (idx *Index) Near(p vec.Vec2, tol float64) []*Entity {
	bb := geom.NullBox().AddPoint(p)
	return idx.Query(bb.Inflate(tol))
}

// toRect converts bb grown by pad into an R-tree rectangle. Null and
// non-finite boxes have no rectangle.
func toRect(bb geom.BoundingBox, pad float64) (rtreego.Rect, bool) {
	if bb.IsNull() || !finite(bb.L, bb.T, bb.R, bb.B) {
		return rtreego.Rect{}, false
	}
	bb = bb.Inflate(pad)
	rect, err := rtreego.NewRectFromPoints(
		rtreego.Point{bb.L, bb.T},
		rtreego.Point{bb.R, bb.B},
	)
	if err != nil {
		return rtreego.Rect{}, false
	}
	return rect, true
}
