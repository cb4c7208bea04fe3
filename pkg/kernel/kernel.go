// Package kernel defines the abstract 2D region kernel interface.
// Implementations (sdfx) turn drawing shapes into filled regions that can
// be queried for distance, which is what picking and hover feedback need.
// The kernel abstraction allows swapping backends without changing the rest
// of the system.
package kernel

import (
	"github.com/chazu/draft/pkg/geom"
	"github.com/chazu/draft/pkg/vec"
)

// Region is an opaque handle to a filled area of the plane.
// Implementations wrap their internal representation.
type Region interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() geom.BoundingBox
	// Distance returns the signed distance from p to the region's
	// boundary: negative inside, positive outside.
	Distance(p vec.Vec2) float64
}

// Kernel is the abstract region kernel interface.
type Kernel interface {
	// Stroke returns the area covered by drawing s with a pen of the given
	// width. Width must be positive.
	Stroke(s geom.Shape, width float64) (Region, error)

	// Union combines regions. The union of nothing is empty.
	Union(rs ...Region) Region
}

// Contains reports whether p lies inside r or on its boundary.
func Contains(r Region, p vec.Vec2) bool {
	return r.Distance(p) <= 0
}
