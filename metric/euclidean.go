package metric

import "gonum.org/v1/gonum/floats"

// Euclidean is the reference metric.Space instantiation: a fixed-length
// vector of float64 under the L2 norm. Values are copied defensively on
// construction so that callers may reuse or mutate the slice they passed in.
type Euclidean struct {
	v []float64
}

// NewEuclidean copies v into a new Euclidean point.
func NewEuclidean(v []float64) Euclidean {
	cp := make([]float64, len(v))
	copy(cp, v)
	return Euclidean{v: cp}
}

// Values returns a copy of the point's coordinates.
func (e Euclidean) Values() []float64 {
	cp := make([]float64, len(e.v))
	copy(cp, e.v)
	return cp
}

// Distance computes the L2 (Euclidean) distance between e and other.
// Both points must have the same dimensionality.
func (e Euclidean) Distance(other Euclidean) float64 {
	return floats.Distance(e.v, other.v, 2)
}

var _ Space[Euclidean] = Euclidean{}
