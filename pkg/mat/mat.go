// Package mat defines fixed-size row-major matrices.
//
// All arithmetic operators (Add, Sub, Mul, Div and their scalar forms) are
// elementwise over the flat storage; in particular Mul is NOT a matrix
// product. The only linear-algebra operation is Dot, the matrix-vector
// product with the matrix acting from the left.
package mat

import (
	"github.com/chazu/draft/pkg/elem"
	"github.com/chazu/draft/pkg/vec"
)

// Mat2 is a 2x2 matrix stored row-major: [a b; c d] = {a, b, c, d}.
type Mat2 struct {
	data [4]float64
}

// Mat3 is a 3x3 matrix stored row-major.
type Mat3 struct {
	data [9]float64
}

// Compile-time capability checks.
var (
	_ vec.Dotter[vec.Vec2, vec.Vec2] = Mat2{}
	_ vec.Dotter[vec.Vec3, vec.Vec3] = Mat3{}
)

// ---------------------------------------------------------------------------
// Mat2
// ---------------------------------------------------------------------------

// New2 returns a Mat2 with the given row-major data.
func New2(data [4]float64) Mat2 { return Mat2{data: data} }

// Zero2 returns the 2x2 zero matrix.
func Zero2() Mat2 { return Mat2{} }

// Identity2 returns the 2x2 identity matrix.
func Identity2() Mat2 { return Mat2{data: [4]float64{1, 0, 0, 1}} }

// Len returns the number of stored scalars.
func (m Mat2) Len() int { return len(m.data) }

// Data returns a copy of the row-major storage.
func (m Mat2) Data() [4]float64 { return m.data }

// At returns the scalar at flat row-major index i.
//
// The explicit range check only runs when built with the draftdebug tag;
// release builds rely on Go's own array bounds check, which still panics
// on a bad index but with a less descriptive message.
func (m Mat2) At(i int) float64 {
	checkIndex("Mat2", i, len(m.data))
	return m.data[i]
}

// Set stores v at flat row-major index i. See At for index checking.
func (m *Mat2) Set(i int, v float64) {
	checkIndex("Mat2", i, len(m.data))
	m.data[i] = v
}

func (m Mat2) zip(o Mat2, op elem.Op[float64]) Mat2 {
	var out Mat2
	elem.Zip(out.data[:], m.data[:], o.data[:], op)
	return out
}

func (m Mat2) broadcast(s float64, op elem.Op[float64]) Mat2 {
	var out Mat2
	elem.Broadcast(out.data[:], m.data[:], s, op)
	return out
}

func (m Mat2) Add(o Mat2) Mat2 { return m.zip(o, elem.Add[float64]) }
func (m Mat2) Sub(o Mat2) Mat2 { return m.zip(o, elem.Sub[float64]) }

// Mul is the elementwise (Hadamard) product.
func (m Mat2) Mul(o Mat2) Mat2 { return m.zip(o, elem.Mul[float64]) }

// Div is the elementwise quotient.
func (m Mat2) Div(o Mat2) Mat2 { return m.zip(o, elem.Div[float64]) }

func (m Mat2) AddScalar(s float64) Mat2 { return m.broadcast(s, elem.Add[float64]) }
func (m Mat2) SubScalar(s float64) Mat2 { return m.broadcast(s, elem.Sub[float64]) }
func (m Mat2) MulScalar(s float64) Mat2 { return m.broadcast(s, elem.Mul[float64]) }
func (m Mat2) DivScalar(s float64) Mat2 { return m.broadcast(s, elem.Div[float64]) }

// Dot returns the matrix-vector product m·v.
func (m Mat2) Dot(v vec.Vec2) vec.Vec2 {
	a := v.Array()
	return vec.Vec2{
		X: elem.Inner(m.data[0:2], a[:]),
		Y: elem.Inner(m.data[2:4], a[:]),
	}
}

// ---------------------------------------------------------------------------
// Mat3
// ---------------------------------------------------------------------------

// New3 returns a Mat3 with the given row-major data.
func New3(data [9]float64) Mat3 { return Mat3{data: data} }

// Zero3 returns the 3x3 zero matrix.
func Zero3() Mat3 { return Mat3{} }

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{data: [9]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

// Len returns the number of stored scalars.
func (m Mat3) Len() int { return len(m.data) }

// Data returns a copy of the row-major storage.
func (m Mat3) Data() [9]float64 { return m.data }

// At returns the scalar at flat row-major index i. See Mat2.At.
func (m Mat3) At(i int) float64 {
	checkIndex("Mat3", i, len(m.data))
	return m.data[i]
}

// Set stores v at flat row-major index i.
func (m *Mat3) Set(i int, v float64) {
	checkIndex("Mat3", i, len(m.data))
	m.data[i] = v
}

func (m Mat3) zip(o Mat3, op elem.Op[float64]) Mat3 {
	var out Mat3
	elem.Zip(out.data[:], m.data[:], o.data[:], op)
	return out
}

func (m Mat3) broadcast(s float64, op elem.Op[float64]) Mat3 {
	var out Mat3
	elem.Broadcast(out.data[:], m.data[:], s, op)
	return out
}

func (m Mat3) Add(o Mat3) Mat3 { return m.zip(o, elem.Add[float64]) }
func (m Mat3) Sub(o Mat3) Mat3 { return m.zip(o, elem.Sub[float64]) }

// Mul is the elementwise (Hadamard) product.
func (m Mat3) Mul(o Mat3) Mat3 { return m.zip(o, elem.Mul[float64]) }

// Div is the elementwise quotient.
func (m Mat3) Div(o Mat3) Mat3 { return m.zip(o, elem.Div[float64]) }

func (m Mat3) AddScalar(s float64) Mat3 { return m.broadcast(s, elem.Add[float64]) }
func (m Mat3) SubScalar(s float64) Mat3 { return m.broadcast(s, elem.Sub[float64]) }
func (m Mat3) MulScalar(s float64) Mat3 { return m.broadcast(s, elem.Mul[float64]) }
func (m Mat3) DivScalar(s float64) Mat3 { return m.broadcast(s, elem.Div[float64]) }

// Dot returns the matrix-vector product m·v.
func (m Mat3) Dot(v vec.Vec3) vec.Vec3 {
	a := v.Array()
	return vec.Vec3{
		X: elem.Inner(m.data[0:3], a[:]),
		Y: elem.Inner(m.data[3:6], a[:]),
		Z: elem.Inner(m.data[6:9], a[:]),
	}
}
