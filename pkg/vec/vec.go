// Package vec defines the 2D and 3D vector value types used throughout the
// kernel. Vectors are small values and are copied freely; the in-place
// variants of the arithmetic operators simply replace the receiver.
//
// Arithmetic is never guarded: dividing by zero, or normalizing the zero
// vector, yields IEEE-754 Inf/NaN components rather than an error.
package vec

import (
	"math"

	"github.com/chazu/draft/pkg/elem"
)

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Compile-time capability checks.
var (
	_ Dotter[Vec2, float64]  = Vec2{}
	_ Crosser[Vec2, float64] = Vec2{}
	_ Dotter[Vec3, float64]  = Vec3{}
	_ Crosser[Vec3, Vec3]    = Vec3{}
)

// FromAngle returns the unit vector (cos theta, sin theta).
func FromAngle(theta float64) Vec2 {
	return Vec2{X: math.Cos(theta), Y: math.Sin(theta)}
}

// OX returns the unit X axis.
func OX() Vec2 { return Vec2{X: 1} }

// OY returns the unit Y axis.
func OY() Vec2 { return Vec2{Y: 1} }

// ---------------------------------------------------------------------------
// Array views
// ---------------------------------------------------------------------------

// Array returns the components as a fixed-size array.
func (v Vec2) Array() [2]float64 { return [2]float64{v.X, v.Y} }

// FromArray2 builds a Vec2 from its array view.
func FromArray2(a [2]float64) Vec2 { return Vec2{X: a[0], Y: a[1]} }

// Array returns the components as a fixed-size array.
func (v Vec3) Array() [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// FromArray3 builds a Vec3 from its array view.
func FromArray3(a [3]float64) Vec3 { return Vec3{X: a[0], Y: a[1], Z: a[2]} }

func (v Vec2) zip(o Vec2, op elem.Op[float64]) Vec2 {
	a, b := v.Array(), o.Array()
	var out [2]float64
	elem.Zip(out[:], a[:], b[:], op)
	return FromArray2(out)
}

func (v Vec2) broadcast(s float64, op elem.Op[float64]) Vec2 {
	a := v.Array()
	var out [2]float64
	elem.Broadcast(out[:], a[:], s, op)
	return FromArray2(out)
}

func (v Vec3) zip(o Vec3, op elem.Op[float64]) Vec3 {
	a, b := v.Array(), o.Array()
	var out [3]float64
	elem.Zip(out[:], a[:], b[:], op)
	return FromArray3(out)
}

func (v Vec3) broadcast(s float64, op elem.Op[float64]) Vec3 {
	a := v.Array()
	var out [3]float64
	elem.Broadcast(out[:], a[:], s, op)
	return FromArray3(out)
}

// ---------------------------------------------------------------------------
// Vec2 arithmetic
// ---------------------------------------------------------------------------

// Add returns v + o component-wise.
func (v Vec2) Add(o Vec2) Vec2 { return v.zip(o, elem.Add[float64]) }

// Sub returns v - o component-wise.
func (v Vec2) Sub(o Vec2) Vec2 { return v.zip(o, elem.Sub[float64]) }

// Mul returns v * o component-wise.
func (v Vec2) Mul(o Vec2) Vec2 { return v.zip(o, elem.Mul[float64]) }

// Div returns v / o component-wise.
func (v Vec2) Div(o Vec2) Vec2 { return v.zip(o, elem.Div[float64]) }

// AddScalar adds s to every component.
func (v Vec2) AddScalar(s float64) Vec2 { return v.broadcast(s, elem.Add[float64]) }

// SubScalar subtracts s from every component.
func (v Vec2) SubScalar(s float64) Vec2 { return v.broadcast(s, elem.Sub[float64]) }

// MulScalar multiplies every component by s.
func (v Vec2) MulScalar(s float64) Vec2 { return v.broadcast(s, elem.Mul[float64]) }

// DivScalar divides every component by s.
func (v Vec2) DivScalar(s float64) Vec2 { return v.broadcast(s, elem.Div[float64]) }

func (v *Vec2) AddAssign(o Vec2) { *v = v.Add(o) }
func (v *Vec2) SubAssign(o Vec2) { *v = v.Sub(o) }
func (v *Vec2) MulAssign(o Vec2) { *v = v.Mul(o) }
func (v *Vec2) DivAssign(o Vec2) { *v = v.Div(o) }

func (v *Vec2) AddScalarAssign(s float64) { *v = v.AddScalar(s) }
func (v *Vec2) SubScalarAssign(s float64) { *v = v.SubScalar(s) }
func (v *Vec2) MulScalarAssign(s float64) { *v = v.MulScalar(s) }
func (v *Vec2) DivScalarAssign(s float64) { *v = v.DivScalar(s) }

// Neg returns the vector with every component negated.
func (v Vec2) Neg() Vec2 { return Vec2{X: -v.X, Y: -v.Y} }

// Dot returns the sum of pairwise component products.
func (v Vec2) Dot(o Vec2) float64 {
	a, b := v.Array(), o.Array()
	return elem.Inner(a[:], b[:])
}

// Cross returns the scalar 2D cross product v.X*o.Y - v.Y*o.X, the signed
// area of the parallelogram spanned by v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Length returns Dot(v, v): the SQUARED magnitude, not the Euclidean norm.
// Callers that need the norm use Norm.
func (v Vec2) Length() float64 { return v.Dot(v) }

// Norm returns the Euclidean magnitude.
func (v Vec2) Norm() float64 { return math.Sqrt(v.Length()) }

// Normalized returns v divided by Length(). Because Length is the squared
// magnitude the result only has unit length when |v| == 1. The zero vector
// yields NaN components.
func (v Vec2) Normalized() Vec2 { return v.DivScalar(v.Length()) }

// Normalize replaces v with v.Normalized().
func (v *Vec2) Normalize() { *v = v.Normalized() }

// ---------------------------------------------------------------------------
// Vec3 arithmetic
// ---------------------------------------------------------------------------

// Add returns v + o component-wise.
func (v Vec3) Add(o Vec3) Vec3 { return v.zip(o, elem.Add[float64]) }

// Sub returns v - o component-wise.
func (v Vec3) Sub(o Vec3) Vec3 { return v.zip(o, elem.Sub[float64]) }

// Mul returns v * o component-wise.
func (v Vec3) Mul(o Vec3) Vec3 { return v.zip(o, elem.Mul[float64]) }

// Div returns v / o component-wise.
func (v Vec3) Div(o Vec3) Vec3 { return v.zip(o, elem.Div[float64]) }

// AddScalar adds s to every component.
func (v Vec3) AddScalar(s float64) Vec3 { return v.broadcast(s, elem.Add[float64]) }

// SubScalar subtracts s from every component.
func (v Vec3) SubScalar(s float64) Vec3 { return v.broadcast(s, elem.Sub[float64]) }

// MulScalar multiplies every component by s.
func (v Vec3) MulScalar(s float64) Vec3 { return v.broadcast(s, elem.Mul[float64]) }

// DivScalar divides every component by s.
func (v Vec3) DivScalar(s float64) Vec3 { return v.broadcast(s, elem.Div[float64]) }

func (v *Vec3) AddAssign(o Vec3) { *v = v.Add(o) }
func (v *Vec3) SubAssign(o Vec3) { *v = v.Sub(o) }
func (v *Vec3) MulAssign(o Vec3) { *v = v.Mul(o) }
func (v *Vec3) DivAssign(o Vec3) { *v = v.Div(o) }

func (v *Vec3) AddScalarAssign(s float64) { *v = v.AddScalar(s) }
func (v *Vec3) SubScalarAssign(s float64) { *v = v.SubScalar(s) }
func (v *Vec3) MulScalarAssign(s float64) { *v = v.MulScalar(s) }
func (v *Vec3) DivScalarAssign(s float64) { *v = v.DivScalar(s) }

// Neg returns the vector with every component negated.
func (v Vec3) Neg() Vec3 { return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z} }

// Dot returns the sum of pairwise component products.
func (v Vec3) Dot(o Vec3) float64 {
	a, b := v.Array(), o.Array()
	return elem.Inner(a[:], b[:])
}

// Cross returns the 3D vector cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns Dot(v, v), the squared magnitude. See Vec2.Length.
func (v Vec3) Length() float64 { return v.Dot(v) }

// Norm returns the Euclidean magnitude.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Length()) }

// Normalized returns v divided by Length() (squared magnitude).
func (v Vec3) Normalized() Vec3 { return v.DivScalar(v.Length()) }

// Normalize replaces v with v.Normalized().
func (v *Vec3) Normalize() { *v = v.Normalized() }

// XY drops the Z component.
func (v Vec3) XY() Vec2 { return Vec2{X: v.X, Y: v.Y} }
