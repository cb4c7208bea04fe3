package drawing

import (
	"runtime"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/draft/pkg/geom"
)

// ParallelThreshold is the entity count at which Extents switches from a
// sequential fold to a chunked parallel reduction.
const ParallelThreshold = 4096

// Extents returns the union of every entity's bounding box, or NullBox for
// an empty drawing.
func (d *Drawing) Extents() geom.BoundingBox {
	return extentsOf(d.Entities)
}

// ExtentsOf returns the union of the boxes of the entities on layer.
func (d *Drawing) ExtentsOf(layer string) geom.BoundingBox {
	return extentsOf(d.OnLayer(layer))
}

// extentsOf folds the boxes of es. Union is associative and commutative, so
// the chunked reduction returns exactly what the sequential fold would.
func extentsOf(es []*Entity) geom.BoundingBox {
	if len(es) < ParallelThreshold {
		return foldBounds(es)
	}

	workers := runtime.GOMAXPROCS(0)
	chunks := lo.Chunk(es, (len(es)+workers-1)/workers)
	partial := make([]geom.BoundingBox, len(chunks))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, chunk := range chunks {
		g.Go(func() error {
			partial[i] = foldBounds(chunk)
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	return geom.UnionAll(partial...)
}

func foldBounds(es []*Entity) geom.BoundingBox {
	return lo.Reduce(es, func(acc geom.BoundingBox, e *Entity, _ int) geom.BoundingBox {
		return acc.Union(e.Bounds())
	}, geom.NullBox())
}
