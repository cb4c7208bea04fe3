package vec

// Dotter is implemented by any type that has a "dot" product against a
// right-hand operand of type R producing O. Vectors dot with vectors of the
// same dimension; matrices dot with vectors (matrix-vector product).
type Dotter[R, O any] interface {
	Dot(R) O
}

// Crosser is implemented by any type with a cross product against R.
type Crosser[R, O any] interface {
	Cross(R) O
}

// Dot returns a.Dot(b) for any Dotter. Type arguments are not inferred
// from method sets, so callers name them: Dot[Vec2, float64](a, b).
func Dot[R, O any](a Dotter[R, O], b R) O {
	return a.Dot(b)
}

// Cross returns a.Cross(b) for any Crosser.
func Cross[R, O any](a Crosser[R, O], b R) O {
	return a.Cross(b)
}
