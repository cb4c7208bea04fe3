package geom

import (
	"math"

	"github.com/chazu/draft/pkg/vec"
)

// BoundingBox is an axis-aligned rectangle given by its left, top, right
// and bottom bounds. A valid box has L <= R and T <= B; T is the smaller Y.
//
// Boxes only grow: they are changed by union with a point, union with
// another box, or by Scale.
type BoundingBox struct {
	L, T, R, B float64
}

// ZeroBox returns the degenerate box at the origin.
func ZeroBox() BoundingBox { return BoundingBox{} }

// NullBox returns the empty box, the identity element for Union.
func NullBox() BoundingBox {
	return BoundingBox{
		L: math.Inf(1),
		T: math.Inf(1),
		R: math.Inf(-1),
		B: math.Inf(-1),
	}
}

// InfiniteBox returns the box covering the whole plane, the absorbing
// element for Union.
func InfiniteBox() BoundingBox {
	return BoundingBox{
		L: math.Inf(-1),
		T: math.Inf(-1),
		R: math.Inf(1),
		B: math.Inf(1),
	}
}

// Width returns R - L.
func (bb BoundingBox) Width() float64 { return bb.R - bb.L }

// Height returns B - T.
func (bb BoundingBox) Height() float64 { return bb.B - bb.T }

// Size returns (Width, Height).
func (bb BoundingBox) Size() vec.Vec2 { return vec.Vec2{X: bb.Width(), Y: bb.Height()} }

// CenterX returns the midpoint of L and R.
func (bb BoundingBox) CenterX() float64 { return (bb.L + bb.R) / 2 }

// CenterY returns the midpoint of T and B.
func (bb BoundingBox) CenterY() float64 { return (bb.B + bb.T) / 2 }

// Center returns (CenterX, CenterY).
func (bb BoundingBox) Center() vec.Vec2 { return vec.Vec2{X: bb.CenterX(), Y: bb.CenterY()} }

// Scale multiplies all four bounds by factor, scaling about the origin
// rather than about the box center.
func (bb *BoundingBox) Scale(factor float64) {
	*bb = BoundingBox{
		L: bb.L * factor,
		T: bb.T * factor,
		R: bb.R * factor,
		B: bb.B * factor,
	}
}

// AddPoint returns the union of bb and p.
func (bb BoundingBox) AddPoint(p vec.Vec2) BoundingBox {
	return BoundingBox{
		L: math.Min(bb.L, p.X),
		T: math.Min(bb.T, p.Y),
		R: math.Max(bb.R, p.X),
		B: math.Max(bb.B, p.Y),
	}
}

// ExtendPoint grows bb in place to include p.
func (bb *BoundingBox) ExtendPoint(p vec.Vec2) { *bb = bb.AddPoint(p) }

// Union returns the smallest box containing both bb and o.
func (bb BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		L: math.Min(bb.L, o.L),
		T: math.Min(bb.T, o.T),
		R: math.Max(bb.R, o.R),
		B: math.Max(bb.B, o.B),
	}
}

// Extend grows bb in place to include o.
func (bb *BoundingBox) Extend(o BoundingBox) { *bb = bb.Union(o) }

// UnionAll folds boxes into one, starting from NullBox.
func UnionAll(boxes ...BoundingBox) BoundingBox {
	acc := NullBox()
	for _, b := range boxes {
		acc.Extend(b)
	}
	return acc
}

// IsNull reports whether bb contains no points (L > R or T > B).
func (bb BoundingBox) IsNull() bool {
	return bb.L > bb.R || bb.T > bb.B
}

// Contains reports whether p lies inside bb or on its border.
func (bb BoundingBox) Contains(p vec.Vec2) bool {
	return p.X >= bb.L && p.X <= bb.R && p.Y >= bb.T && p.Y <= bb.B
}

// Inflate returns bb grown by d on every side. A null box stays null.
func (bb BoundingBox) Inflate(d float64) BoundingBox {
	if bb.IsNull() {
		return bb
	}
	return BoundingBox{L: bb.L - d, T: bb.T - d, R: bb.R + d, B: bb.B + d}
}
