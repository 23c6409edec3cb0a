package bitpart

// Result pairs a dataset point with its distance from the query point that
// produced it.
type Result[T any] struct {
	Point    T
	Distance float64
}
