// Package dxfimport reads DXF files into drawings. Lines, circles, arcs
// and polylines become shapes; every other entity is skipped and counted.
package dxfimport

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/chazu/draft/pkg/drawing"
	"github.com/chazu/draft/pkg/geom"
	"github.com/chazu/draft/pkg/vec"
)

// Stats summarises an import.
//
// LWPOLYLINE bulges (group code 42) never reach Convert: the reader drops
// them, so bulged edges arrive as straight ones and cannot be counted here.
type Stats struct {
	Converted int
	Skipped   int
	// SkippedKinds counts skipped entities by DXF type name.
	SkippedKinds map[string]int
}

// SkippedSummary lists the skipped entity types in name order.
func (s Stats) SkippedSummary() []string {
	out := make([]string, 0, len(s.SkippedKinds))
	for k, n := range s.SkippedKinds {
		out = append(out, fmt.Sprintf("%s x%d", k, n))
	}
	sort.Strings(out)
	return out
}

// Load opens a DXF file and converts its entities.
func Load(path string) (*drawing.Drawing, Stats, error) {
	dd, err := dxf.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("dxfimport: open %s: %w", path, err)
	}
	d, st := FromEntities(dd.Entities())
	return d, st, nil
}

// FromEntities converts DXF entities in file order. Layer names carry over.
func FromEntities(es []entity.Entity) (*drawing.Drawing, Stats) {
	d := drawing.New()
	st := Stats{SkippedKinds: make(map[string]int)}
	for _, e := range es {
		s, ok := Convert(e)
		if !ok {
			st.Skipped++
			st.SkippedKinds[kindName(e)]++
			continue
		}
		d.AddShape("", layerName(e), s)
		st.Converted++
	}
	return d, st
}

// Convert maps one DXF entity to a shape. Z coordinates are dropped.
// LWPOLYLINE and POLYLINE both become polylines; closed ones repeat their
// first vertex. The file reader does not parse POLYLINE, so those only
// arrive from drawings built in memory.
// ARC angles are degrees counter-clockwise from +X; the sweep is
// normalised into (0, 2π].
func Convert(e entity.Entity) (geom.Shape, bool) {
	switch v := e.(type) {
	case *entity.Line:
		return geom.Segment{Beg: point(v.Start), End: point(v.End)}, true
	case *entity.Circle:
		return geom.Circle{Center: point(v.Center), Radius: v.Radius}, true
	case *entity.Arc:
		if v.Circle == nil || len(v.Angle) < 2 {
			return nil, false
		}
		return geom.Arc{
			Center: point(v.Center),
			Radius: v.Radius,
			Start:  radians(v.Angle[0]),
			Sweep:  radians(sweepDegrees(v.Angle[0], v.Angle[1])),
		}, true
	case *entity.LwPolyline:
		pts := make([]vec.Vec2, 0, len(v.Vertices)+1)
		for _, p := range v.Vertices {
			pts = append(pts, point(p))
		}
		return closedPolyline(pts, v.Closed), true
	case *entity.Polyline:
		pts := make([]vec.Vec2, 0, len(v.Vertices)+1)
		for _, vx := range v.Vertices {
			if vx != nil {
				pts = append(pts, point(vx.Coord))
			}
		}
		return closedPolyline(pts, v.Flag&polylineClosed != 0), true
	}
	return nil, false
}

// polylineClosed is bit 1 of the POLYLINE flags (group code 70).
const polylineClosed = 1

// closedPolyline builds a polyline from pts, repeating the first point at
// the end when closed is set and the chain is not already closed.
func closedPolyline(pts []vec.Vec2, closed bool) geom.Polyline {
	if closed && len(pts) > 1 && pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}
	return geom.NewPolyline(pts...)
}

// sweepDegrees returns the counter-clockwise sweep from start to end in
// (0, 360]. Equal angles are a full turn, as DXF readers draw them.
func sweepDegrees(start, end float64) float64 {
	s := math.Mod(end-start, 360)
	if s <= 0 {
		s += 360
	}
	return s
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func point(c []float64) vec.Vec2 {
	switch len(c) {
	case 0:
		return vec.Vec2{}
	case 1:
		return vec.Vec2{X: c[0]}
	}
	return vec.Vec2{X: c[0], Y: c[1]}
}

func layerName(e entity.Entity) string {
	if l := e.Layer(); l != nil {
		return l.Name()
	}
	return ""
}

// kindName turns *entity.Point into POINT.
func kindName(e entity.Entity) string {
	return strings.ToUpper(strings.TrimPrefix(fmt.Sprintf("%T", e), "*entity."))
}
