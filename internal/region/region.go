// Package region implements the exclusion-region geometry bitpart indexes
// against: balls and generalised-hyperbolic sheets anchored at reference
// points, each exposing the is-in / must-be-in / must-be-out predicates the
// query engine combines.
package region

import "github.com/cerplabs/bitpart/metric"

// Exclusion is a polymorphic geometric region of a metric space. All three
// predicates are pure and safe to call concurrently from many goroutines.
type Exclusion[T metric.Space[T]] interface {
	// IsIn reports whether p lies inside the region. Used at build time to
	// populate one bit of the columnar bitset per dataset point.
	IsIn(p T) bool

	// MustBeIn reports whether every point within tau of q is guaranteed to
	// lie inside the region, by the triangle inequality.
	MustBeIn(q T, tau float64) bool

	// MustBeOut reports whether every point within tau of q is guaranteed to
	// lie outside the region.
	MustBeOut(q T, tau float64) bool
}

// Ball is the open ball { x : d(center, x) < radius }.
type Ball[T metric.Space[T]] struct {
	Center T
	Radius float64
}

// NewBall returns a Ball exclusion anchored at center with the given radius.
func NewBall[T metric.Space[T]](center T, radius float64) Ball[T] {
	return Ball[T]{Center: center, Radius: radius}
}

// IsIn implements Exclusion.
func (b Ball[T]) IsIn(p T) bool {
	return b.Center.Distance(p) < b.Radius
}

// MustBeIn implements Exclusion. If radius <= tau the ball is no larger than
// the query disc and can never guarantee containment, so this is always
// false.
func (b Ball[T]) MustBeIn(q T, tau float64) bool {
	return b.Center.Distance(q) < b.Radius-tau
}

// MustBeOut implements Exclusion. The boundary case d(center, q) == radius+tau
// returns true: the half-open "< radius" of IsIn means a point exactly
// radius+tau away can approach no closer than radius, so it is never inside.
func (b Ball[T]) MustBeOut(q T, tau float64) bool {
	return b.Center.Distance(q) >= b.Radius+tau
}

var _ Exclusion[metric.Euclidean] = Ball[metric.Euclidean]{}

// Sheet is the generalised-hyperbolic half-space
// { x : d(A, x) - d(B, x) - Offset < 0 }: points whose distance to A is less
// than their distance to B plus Offset (with Offset 0, points strictly closer
// to A than to B).
//
// MustBeIn/MustBeOut require the four-point property to be exact, which this
// package does not implement (see DESIGN.md); they always
// return false, so a Sheet only ever contributes to IsIn bit-columns and
// never drives query-time pruning. This is safe — it costs recall nothing,
// only pruning strength — per spec.md's sheet-predicate-unimplemented
// edge case.
type Sheet[T metric.Space[T]] struct {
	A, B   T
	Offset float64
}

// NewSheet returns a Sheet exclusion between reference points a and b.
func NewSheet[T metric.Space[T]](a, b T, offset float64) Sheet[T] {
	return Sheet[T]{A: a, B: b, Offset: offset}
}

// IsIn implements Exclusion.
func (s Sheet[T]) IsIn(p T) bool {
	return s.A.Distance(p)-s.B.Distance(p)-s.Offset < 0
}

// MustBeIn implements Exclusion. Always false: see the Sheet type doc.
func (s Sheet[T]) MustBeIn(_ T, _ float64) bool {
	return false
}

// MustBeOut implements Exclusion. Always false: see the Sheet type doc.
func (s Sheet[T]) MustBeOut(_ T, _ float64) bool {
	return false
}

var _ Exclusion[metric.Euclidean] = Sheet[metric.Euclidean]{}
