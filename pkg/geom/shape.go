// Package geom holds the 2D geometric vocabulary of the kernel: bounding
// boxes, the closed set of drawable primitives, and rays.
//
// Every primitive derives its axis-aligned bounding box on demand through
// Bounds. Derivation is a pure read; nothing is cached.
package geom

import (
	"math"

	"github.com/chazu/draft/pkg/vec"
)

// Kind distinguishes the primitive variants.
type Kind int

const (
	KindSegment Kind = iota
	KindCircle
	KindArc
	KindPolyline
)

func (k Kind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	case KindPolyline:
		return "polyline"
	default:
		return "unknown"
	}
}

// Shape is a drawable primitive. The set of implementations is closed:
// Segment, Circle, Arc and Polyline.
type Shape interface {
	Kind() Kind
	shape() // marker method restricting implementations to this package
}

// Segment is the straight line from Beg to End.
type Segment struct {
	Beg vec.Vec2 `json:"beg"`
	End vec.Vec2 `json:"end"`
}

// Circle is a full circle.
type Circle struct {
	Center vec.Vec2 `json:"center"`
	Radius float64  `json:"radius"`
}

// Arc is a circular arc. Start is the starting angle in radians and Sweep
// the signed angular extent: positive sweeps run from +X towards +Y.
type Arc struct {
	Center vec.Vec2 `json:"center"`
	Radius float64  `json:"radius"`
	Start  float64  `json:"start"`
	Sweep  float64  `json:"sweep"`
}

// Polyline is an open chain of points. Use NewPolyline to get a value that
// does not share storage with the caller.
type Polyline struct {
	Points []vec.Vec2 `json:"points"`
}

// NewPolyline copies points into a new Polyline.
func NewPolyline(points ...vec.Vec2) Polyline {
	return Polyline{Points: append([]vec.Vec2(nil), points...)}
}

func (Segment) Kind() Kind  { return KindSegment }
func (Circle) Kind() Kind   { return KindCircle }
func (Arc) Kind() Kind      { return KindArc }
func (Polyline) Kind() Kind { return KindPolyline }

func (Segment) shape()  {}
func (Circle) shape()   {}
func (Arc) shape()      {}
func (Polyline) shape() {}

// End returns the end angle Start + Sweep.
func (a Arc) End() float64 { return a.Start + a.Sweep }

// PointAt returns the point of the arc's circle at angle theta.
func (a Arc) PointAt(theta float64) vec.Vec2 {
	return a.Center.Add(vec.FromAngle(theta).MulScalar(a.Radius))
}

// StartPoint returns the point at the start angle.
func (a Arc) StartPoint() vec.Vec2 { return a.PointAt(a.Start) }

// EndPoint returns the point at the end angle.
func (a Arc) EndPoint() vec.Vec2 { return a.PointAt(a.End()) }

// ---------------------------------------------------------------------------
// Bounding boxes
// ---------------------------------------------------------------------------

// Bounds returns the axis-aligned bounding box of s. Segment, Circle and
// Polyline boxes are exact; Arc boxes are exact up to the rounding of the
// endpoint trigonometry. A nil shape or an empty polyline yields NullBox.
func Bounds(s Shape) BoundingBox {
	switch v := s.(type) {
	case Segment:
		return segmentBounds(v)
	case Circle:
		return circleBounds(v)
	case Arc:
		return arcBounds(v)
	case Polyline:
		return polylineBounds(v)
	case nil:
		return NullBox()
	default:
		panic("geom: unknown shape variant")
	}
}

func segmentBounds(s Segment) BoundingBox {
	bb := NullBox()
	bb.ExtendPoint(s.Beg)
	bb.ExtendPoint(s.End)
	return bb
}

func circleBounds(c Circle) BoundingBox {
	bb := NullBox()
	bb.ExtendPoint(vec.Vec2{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius})
	bb.ExtendPoint(vec.Vec2{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius})
	return bb
}

func polylineBounds(p Polyline) BoundingBox {
	bb := NullBox()
	for _, pt := range p.Points {
		bb.ExtendPoint(pt)
	}
	return bb
}

// quarterTurn is the angular distance between consecutive axis extrema.
const quarterTurn = math.Pi / 2

// arcBounds includes both endpoints and then, for every axis direction
// k*90° that lies inside the swept interval, pushes out the one side of
// the box owning that extremum. The interval is taken from the signed
// sweep directly, so arcs longer than a half turn and negative sweeps are
// handled; a sweep of a full turn or more covers the whole circle.
func arcBounds(a Arc) BoundingBox {
	if math.Abs(a.Sweep) >= 2*math.Pi {
		return circleBounds(Circle{Center: a.Center, Radius: a.Radius})
	}

	bb := NullBox()
	bb.ExtendPoint(a.StartPoint())
	bb.ExtendPoint(a.EndPoint())

	lo, hi := a.Start, a.End()
	if math.IsNaN(lo+hi) || math.IsInf(lo+hi, 0) {
		return bb
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	// Reduce lo into [-π, π] the same way the endpoint trigonometry does,
	// so huge angles cannot overflow the quarter-turn counter.
	width := hi - lo
	lo = math.Atan2(math.Sin(lo), math.Cos(lo))
	hi = lo + width
	first := int(math.Ceil(lo / quarterTurn))
	last := int(math.Floor(hi / quarterTurn))
	for k := first; k <= last; k++ {
		extendToExtremum(&bb, a.Center, a.Radius, k)
	}
	return bb
}

// extendToExtremum grows bb to the circle point in axis direction k*90°.
// Angles follow the same parametrisation as the arc points,
// center + r*(cos, sin), so 0° pushes R, 90° pushes B (largest Y), 180°
// pushes L and 270° pushes T. For r >= 0 the other coordinate of that point
// is already covered, so exactly one side moves.
func extendToExtremum(bb *BoundingBox, c vec.Vec2, r float64, k int) {
	switch ((k % 4) + 4) % 4 {
	case 0:
		bb.ExtendPoint(vec.Vec2{X: c.X + r, Y: c.Y})
	case 1:
		bb.ExtendPoint(vec.Vec2{X: c.X, Y: c.Y + r})
	case 2:
		bb.ExtendPoint(vec.Vec2{X: c.X - r, Y: c.Y})
	case 3:
		bb.ExtendPoint(vec.Vec2{X: c.X, Y: c.Y - r})
	}
}
