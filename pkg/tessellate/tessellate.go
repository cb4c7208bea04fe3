// Package tessellate flattens drawing entities into polylines for
// immediate-mode drawing. One path is produced per entity.
package tessellate

import (
	"fmt"
	"math"

	"github.com/chazu/draft/pkg/drawing"
	"github.com/chazu/draft/pkg/geom"
	"github.com/chazu/draft/pkg/vec"
)

// DefaultTolerance is the default maximum chord sagitta in drawing units.
const DefaultTolerance = 0.01

// DefaultMaxSegments caps the subdivision of a single circle or arc.
const DefaultMaxSegments = 1024

// minSegmentsPerTurn keeps small circles from collapsing to a line.
const minSegmentsPerTurn = 4

// Options controls curve subdivision.
type Options struct {
	Tolerance   float64 // max distance between a chord and its curve
	MaxSegments int     // upper bound on segments per circle or arc
}

// DefaultOptions returns the default subdivision settings.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance, MaxSegments: DefaultMaxSegments}
}

func (o Options) validate() error {
	if !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 0) {
		return fmt.Errorf("tessellate: tolerance %v must be positive and finite", o.Tolerance)
	}
	if o.MaxSegments < minSegmentsPerTurn {
		return fmt.Errorf("tessellate: max segments %d below minimum %d", o.MaxSegments, minSegmentsPerTurn)
	}
	return nil
}

// Path is an entity flattened to points. Closed paths join the last point
// back to the first without repeating it.
type Path struct {
	Name   string
	Layer  string
	Points []vec.Vec2
	Closed bool
}

// Tessellate flattens every entity of d in insertion order. The drawing is
// only read.
func Tessellate(d *drawing.Drawing, opts Options) ([]Path, error) {
	if d == nil {
		return nil, nil
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	paths := make([]Path, 0, d.Len())
	for _, e := range d.Entities {
		if e.Shape == nil {
			return nil, fmt.Errorf("tessellate: entity %s has no shape", e.ID.Short())
		}
		p := FlattenShape(e.Shape, opts)

		// Prefer the entity's name, fall back to its short ID.
		if e.Name != "" {
			p.Name = e.Name
		} else {
			p.Name = e.ID.Short()
		}
		p.Layer = e.Layer
		paths = append(paths, p)
	}
	return paths, nil
}

// FlattenShape returns s as a path. Options outside their valid range are
// replaced by the defaults.
func FlattenShape(s geom.Shape, opts Options) Path {
	if opts.validate() != nil {
		opts = DefaultOptions()
	}

	switch v := s.(type) {
	case geom.Segment:
		return Path{Points: []vec.Vec2{v.Beg, v.End}}
	case geom.Polyline:
		return Path{Points: append([]vec.Vec2(nil), v.Points...)}
	case geom.Circle:
		return flattenCircle(v, opts)
	case geom.Arc:
		return flattenArc(v, opts)
	default:
		return Path{}
	}
}

func flattenCircle(c geom.Circle, opts Options) Path {
	n := segmentCount(c.Radius, 2*math.Pi, opts)
	arc := geom.Arc{Center: c.Center, Radius: c.Radius}
	pts := make([]vec.Vec2, n)
	for i := range pts {
		pts[i] = arc.PointAt(2 * math.Pi * float64(i) / float64(n))
	}
	return Path{Points: pts, Closed: true}
}

func flattenArc(a geom.Arc, opts Options) Path {
	n := segmentCount(a.Radius, a.Sweep, opts)
	pts := make([]vec.Vec2, 0, n+1)
	pts = append(pts, a.StartPoint())
	for i := 1; i < n; i++ {
		pts = append(pts, a.PointAt(a.Start+a.Sweep*float64(i)/float64(n)))
	}
	pts = append(pts, a.EndPoint())
	return Path{Points: pts}
}

// segmentCount returns how many chords approximate a curve of radius r over
// sweep radians so that each chord's sagitta r*(1-cos(step/2)) stays within
// the tolerance.
func segmentCount(r, sweep float64, opts Options) int {
	r, sweep = math.Abs(r), math.Abs(sweep)
	if math.IsNaN(r+sweep) || math.IsInf(r+sweep, 0) {
		return 1
	}

	step := math.Pi
	if opts.Tolerance < r {
		step = 2 * math.Acos(1-opts.Tolerance/r)
	}
	n := math.Ceil(sweep / step)
	n = math.Max(n, math.Ceil(minSegmentsPerTurn*sweep/(2*math.Pi)))
	n = math.Min(n, float64(opts.MaxSegments))
	return max(int(n), 1)
}
