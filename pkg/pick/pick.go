// Package pick answers "what is under the cursor" and "what does this ray
// cross" for a drawing.
//
// Point picks narrow the candidates with the drawing's R-tree index and then
// measure exact distance against each candidate's stroked region. Ray casts
// intersect the ray with every edge of every entity; curves are flattened
// first, so their hit points are accurate to the flattening tolerance.
package pick

import (
	"fmt"
	"sort"

	"github.com/chazu/draft/pkg/drawing"
	"github.com/chazu/draft/pkg/geom"
	"github.com/chazu/draft/pkg/kernel"
	"github.com/chazu/draft/pkg/tessellate"
	"github.com/chazu/draft/pkg/vec"
)

// Options controls picking.
type Options struct {
	Tolerance float64 // pick radius around the cursor, in drawing units
}

// DefaultOptions returns the default pick settings.
func DefaultOptions() Options {
	return Options{Tolerance: drawing.DefaultPickTolerance}
}

// Hit is an entity within the pick radius of a point.
type Hit struct {
	Entity   *drawing.Entity
	Distance float64 // from the point to the entity's centerline
}

// RayHit is a crossing between a ray and an entity edge.
type RayHit struct {
	Entity *drawing.Entity
	Edge   int      // index of the crossed edge within the flattened entity
	T      float64  // ray parameter; the hit is at ray.At(T)
	Point  vec.Vec2 // crossing point
}

// Picker answers picks against one drawing. It indexes the drawing once at
// construction; rebuild the Picker after the drawing changes.
type Picker struct {
	Drawing *drawing.Drawing
	Index   *drawing.Index
	Kernel  kernel.Kernel
	Options Options
}

// New indexes d and returns a Picker using k for exact distances.
func New(d *drawing.Drawing, k kernel.Kernel, opts Options) *Picker {
	return &Picker{
		Drawing: d,
		Index:   drawing.NewIndex(d, 0),
		Kernel:  k,
		Options: opts,
	}
}

// At returns the entities whose centerline passes within the pick tolerance
// of p, nearest first. Ties keep drawing order.
func (pk *Picker) At(p vec.Vec2) ([]Hit, error) {
	tol := pk.Options.Tolerance
	if !(tol > 0) {
		return nil, fmt.Errorf("pick: tolerance %v must be positive", tol)
	}

	var hits []Hit
	for _, e := range pk.Index.Near(p, tol) {
		region, err := pk.Kernel.Stroke(e.Shape, 2*tol)
		if err != nil {
			return nil, fmt.Errorf("pick: entity %s: %w", e.ID.Short(), err)
		}
		// Distance to the stroke outline plus the pen radius is the
		// distance to the centerline.
		d := max(region.Distance(p)+tol, 0)
		if d <= tol {
			hits = append(hits, Hit{Entity: e, Distance: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits, nil
}

// Cast returns every crossing of r with an entity edge, nearest first.
// Edges collinear with the ray do not report crossings.
func (pk *Picker) Cast(r geom.Ray2D) []RayHit {
	var hits []RayHit
	for _, e := range pk.Drawing.Entities {
		if e.Shape == nil {
			continue
		}
		path := tessellate.FlattenShape(e.Shape, tessellate.DefaultOptions())
		hits = append(hits, castPath(r, e, path)...)
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].T < hits[j].T })
	return hits
}

// castPath intersects r with each edge of path. An edge owns its start
// vertex but not its end vertex, so a ray through a shared vertex is
// reported once; the last edge of an open path also owns its end.
func castPath(r geom.Ray2D, e *drawing.Entity, path tessellate.Path) []RayHit {
	pts := path.Points
	edges := len(pts) - 1
	if path.Closed && len(pts) > 2 {
		edges = len(pts)
	}

	var hits []RayHit
	for i := 0; i < edges; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		edge := geom.NewRay2D(a, b.Sub(a))
		u, v, ok := r.Parameters(edge)
		if !ok || u < 0 || v < 0 {
			continue
		}
		last := i == edges-1 && !path.Closed
		if v > 1 || (v == 1 && !last) {
			continue
		}
		hits = append(hits, RayHit{Entity: e, Edge: i, T: u, Point: r.At(u)})
	}
	return hits
}
