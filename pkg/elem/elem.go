// Package elem provides the component-wise arithmetic shared by the vector
// and matrix types. Vectors and matrices expose their storage as fixed-size
// array views and run every elementwise operator through Zip or Broadcast,
// so each operator body is written once.
package elem

import "golang.org/x/exp/constraints"

// Scalar is the constraint for component types.
type Scalar interface {
	constraints.Float
}

// Op is a binary scalar operator.
type Op[S Scalar] func(a, b S) S

// Add returns a + b.
func Add[S Scalar](a, b S) S { return a + b }

// Sub returns a - b.
func Sub[S Scalar](a, b S) S { return a - b }

// Mul returns a * b.
func Mul[S Scalar](a, b S) S { return a * b }

// Div returns a / b. Division by zero follows IEEE-754 (Inf or NaN).
func Div[S Scalar](a, b S) S { return a / b }

// Zip writes op(a[i], b[i]) into dst[i] for every index of dst.
// a and b must be at least as long as dst.
func Zip[S Scalar](dst, a, b []S, op Op[S]) {
	for i := range dst {
		dst[i] = op(a[i], b[i])
	}
}

// Broadcast writes op(a[i], s) into dst[i] for every index of dst.
func Broadcast[S Scalar](dst, a []S, s S, op Op[S]) {
	for i := range dst {
		dst[i] = op(a[i], s)
	}
}

// Inner returns the sum of pairwise products of a and b over len(a).
func Inner[S Scalar](a, b []S) S {
	var sum S
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
