// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/draft/pkg/geom"
	"github.com/chazu/draft/pkg/kernel"
	"github.com/chazu/draft/pkg/vec"
)

// Compile-time interface checks.
var (
	_ kernel.Kernel = (*SdfxKernel)(nil)
	_ sdf.SDF2      = (*ArcStrokeSDF2)(nil)
)

// sdfxRegion wraps an sdf.SDF2 to implement kernel.Region.
type sdfxRegion struct {
	s sdf.SDF2
}

// BoundingBox returns the axis-aligned bounding box.
func (r *sdfxRegion) BoundingBox() geom.BoundingBox {
	bb := r.s.BoundingBox()
	return geom.BoundingBox{L: bb.Min.X, T: bb.Min.Y, R: bb.Max.X, B: bb.Max.Y}
}

// Distance evaluates the signed distance field at p.
func (r *sdfxRegion) Distance(p vec.Vec2) float64 {
	return r.s.Evaluate(toV2(p))
}

// emptyRegion covers nothing. It stands in for strokes of empty polylines
// and for unions of no regions, which sdfx cannot represent.
type emptyRegion struct{}

func (emptyRegion) BoundingBox() geom.BoundingBox { return geom.NullBox() }
func (emptyRegion) Distance(vec.Vec2) float64     { return math.Inf(1) }

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF2 from a kernel.Region. Empty
// regions report false; regions from another kernel panic.
func unwrap(r kernel.Region) (sdf.SDF2, bool) {
	switch v := r.(type) {
	case *sdfxRegion:
		return v.s, true
	case emptyRegion:
		return nil, false
	default:
		panic(fmt.Sprintf("sdfx: foreign region %T", r))
	}
}

// wrap creates a kernel.Region from an sdf.SDF2.
func wrap(s sdf.SDF2) kernel.Region {
	return &sdfxRegion{s: s}
}

func toV2(p vec.Vec2) v2.Vec {
	return v2.Vec{X: p.X, Y: p.Y}
}

// Stroke returns the region swept by a round pen of the given width moving
// along s. Segment ends get round caps; circles become rings.
func (k *SdfxKernel) Stroke(s geom.Shape, width float64) (kernel.Region, error) {
	if !(width > 0) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("sdfx: stroke width %v must be positive and finite", width)
	}
	half := width / 2

	var (
		out sdf.SDF2
		err error
	)
	switch v := s.(type) {
	case geom.Segment:
		out, err = strokeSegment(v.Beg, v.End, half)
	case geom.Circle:
		out, err = strokeRing(v, half)
	case geom.Arc:
		out = strokeArc(v, half)
	case geom.Polyline:
		if len(v.Points) == 0 {
			return emptyRegion{}, nil
		}
		out, err = strokeChain(v.Points, half)
	case nil:
		return nil, fmt.Errorf("sdfx: cannot stroke a nil shape")
	default:
		return nil, fmt.Errorf("sdfx: unsupported shape %T", s)
	}
	if err != nil {
		return nil, fmt.Errorf("sdfx: stroke %s: %w", s.Kind(), err)
	}
	return wrap(out), nil
}

// Union returns the union of regions.
func (k *SdfxKernel) Union(rs ...kernel.Region) kernel.Region {
	var parts []sdf.SDF2
	for _, r := range rs {
		if s, ok := unwrap(r); ok {
			parts = append(parts, s)
		}
	}
	switch len(parts) {
	case 0:
		return emptyRegion{}
	case 1:
		return wrap(parts[0])
	default:
		return wrap(sdf.Union2D(parts...))
	}
}

// disc returns a filled circle of radius r centred on c.
func disc(c vec.Vec2, r float64) (sdf.SDF2, error) {
	s, err := sdf.Circle2D(r)
	if err != nil {
		return nil, err
	}
	return sdf.Transform2D(s, sdf.Translate2d(toV2(c))), nil
}

// strokeSegment returns the capsule around a-b: a rectangle of half-width
// half along the segment plus a disc at each end.
func strokeSegment(a, b vec.Vec2, half float64) (sdf.SDF2, error) {
	capA, err := disc(a, half)
	if err != nil {
		return nil, err
	}
	d := b.Sub(a)
	if d.Length() == 0 {
		return capA, nil
	}
	capB, err := disc(b, half)
	if err != nil {
		return nil, err
	}

	n := vec.Vec2{X: -d.Y, Y: d.X}.MulScalar(half / d.Norm())
	body, err := sdf.Polygon2D([]v2.Vec{
		toV2(a.Sub(n)),
		toV2(b.Sub(n)),
		toV2(b.Add(n)),
		toV2(a.Add(n)),
	})
	if err != nil {
		return nil, err
	}
	return sdf.Union2D(body, capA, capB), nil
}

// strokeRing returns the annulus around a circle. When the pen is wider
// than the circle the hole closes and the result is a disc.
func strokeRing(c geom.Circle, half float64) (sdf.SDF2, error) {
	r := math.Abs(c.Radius)
	outer, err := disc(c.Center, r+half)
	if err != nil {
		return nil, err
	}
	if r-half <= 0 {
		return outer, nil
	}
	inner, err := disc(c.Center, r-half)
	if err != nil {
		return nil, err
	}
	return sdf.Difference2D(outer, inner), nil
}

// ArcStrokeSDF2 is the exact stroke of a circular arc: every point within
// half of the arc's centerline, at any radius.
type ArcStrokeSDF2 struct {
	center v2.Vec
	radius float64
	start  float64 // normalised so the sweep is non-negative
	sweep  float64
	half   float64
	bb     sdf.Box2
}

// strokeArc returns the exact stroke of a. Negative sweeps and radii are
// folded into an equivalent arc with both positive.
func strokeArc(a geom.Arc, half float64) sdf.SDF2 {
	start, sweep, r := a.Start, a.Sweep, a.Radius
	if sweep < 0 {
		start, sweep = start+sweep, -sweep
	}
	if r < 0 {
		start, r = start+math.Pi, -r
	}
	bb := geom.Bounds(a).Inflate(half)
	return &ArcStrokeSDF2{
		center: toV2(a.Center),
		radius: r,
		start:  start,
		sweep:  sweep,
		half:   half,
		bb:     sdf.Box2{Min: v2.Vec{X: bb.L, Y: bb.T}, Max: v2.Vec{X: bb.R, Y: bb.B}},
	}
}

// Evaluate returns the distance from p to the arc less the pen radius.
func (s *ArcStrokeSDF2) Evaluate(p v2.Vec) float64 {
	return s.centerline(p) - s.half
}

// centerline returns the distance from p to the arc itself. Points whose
// angle falls inside the sweep project radially onto the arc; the rest are
// nearest to one of the endpoints.
func (s *ArcStrokeSDF2) centerline(p v2.Vec) float64 {
	d := p.Sub(s.center)
	l := math.Hypot(d.X, d.Y)
	if s.sweep >= 2*math.Pi {
		return math.Abs(l - s.radius)
	}
	if l > 0 {
		off := math.Mod(math.Atan2(d.Y, d.X)-s.start, 2*math.Pi)
		if off < 0 {
			off += 2 * math.Pi
		}
		if off <= s.sweep {
			return math.Abs(l - s.radius)
		}
	}
	a := v2.Vec{X: s.radius * math.Cos(s.start), Y: s.radius * math.Sin(s.start)}
	b := v2.Vec{X: s.radius * math.Cos(s.start+s.sweep), Y: s.radius * math.Sin(s.start+s.sweep)}
	da, db := d.Sub(a), d.Sub(b)
	return math.Min(math.Hypot(da.X, da.Y), math.Hypot(db.X, db.Y))
}

// BoundingBox returns the arc's box grown by the pen radius.
func (s *ArcStrokeSDF2) BoundingBox() sdf.Box2 {
	return s.bb
}

// strokeChain strokes consecutive point pairs and unions the capsules.
func strokeChain(pts []vec.Vec2, half float64) (sdf.SDF2, error) {
	if len(pts) == 1 {
		return disc(pts[0], half)
	}
	parts := make([]sdf.SDF2, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		s, err := strokeSegment(pts[i-1], pts[i], half)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i-1, err)
		}
		parts = append(parts, s)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return sdf.Union2D(parts...), nil
}
