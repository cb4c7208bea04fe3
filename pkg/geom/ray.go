package geom

import "github.com/chazu/draft/pkg/vec"

// Ray2D is the half-line Origin + t*Direction for t >= 0. Direction need
// not be normalized but must be non-zero for intersections to exist.
type Ray2D struct {
	Origin    vec.Vec2 `json:"origin"`
	Direction vec.Vec2 `json:"direction"`
}

// NewRay2D returns a ray from origin along direction.
func NewRay2D(origin, direction vec.Vec2) Ray2D {
	return Ray2D{Origin: origin, Direction: direction}
}

// At returns Origin + t*Direction.
func (r Ray2D) At(t float64) vec.Vec2 {
	return r.Origin.Add(r.Direction.MulScalar(t))
}

// Parameters solves r.Origin + u*r.Direction == o.Origin + v*o.Direction
// for the line parameters (u, v). It reports ok=false when the lines are
// parallel or coincident, or when either direction is zero; in that case u
// and v are zero. The parameters may be negative.
//
// The solve divides by whichever direction has a non-zero X component, so
// a vertical o falls through to the second branch.
func (r Ray2D) Parameters(o Ray2D) (u, v float64, ok bool) {
	ao, ad := r.Origin, r.Direction
	bo, bd := o.Origin, o.Direction

	det := ad.Cross(bd)
	if det == 0 {
		return 0, 0, false
	}

	switch {
	case bd.X != 0:
		u = (ao.Y*bd.X + bd.Y*bo.X - bo.Y*bd.X - bd.Y*ao.X) / det
		v = (ao.X + ad.X*u - bo.X) / bd.X
	case ad.X != 0:
		v = -((bo.Y-ao.Y)*ad.X + (ao.X-bo.X)*ad.Y) / det
		u = (bo.X - ao.X + v*bd.X) / ad.X
	default:
		// Both directions vertical; det would already be zero.
		return 0, 0, false
	}
	return u, v, true
}

// Intersect returns the point where r and o cross, provided it lies on the
// forward half of both rays (u >= 0 and v >= 0). Parallel, coincident and
// degenerate rays, and crossings behind either origin, report false.
func (r Ray2D) Intersect(o Ray2D) (vec.Vec2, bool) {
	u, v, ok := r.Parameters(o)
	if !ok || !(u >= 0 && v >= 0) {
		return vec.Vec2{}, false
	}
	return r.At(u), true
}
