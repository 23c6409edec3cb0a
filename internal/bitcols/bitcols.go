// Package bitcols is the columnar bitset bitpart's query engine filters
// candidates through: one packed, word-aligned bit-vector per exclusion
// region, indexed (exclusion, point), supporting the bitwise AND/OR/NOT
// reductions the query engine needs.
package bitcols

import (
	"context"
	"log/slog"

	"github.com/bits-and-blooms/bitset"

	"github.com/cerplabs/bitpart/internal/obslog"
	"github.com/cerplabs/bitpart/internal/region"
	"github.com/cerplabs/bitpart/metric"
	"golang.org/x/sync/errgroup"
)

// Matrix is the m-exclusion-by-n-point membership matrix, column-major:
// Column(e) is a bitset.BitSet of length n, one bit per dataset point.
type Matrix struct {
	cols []*bitset.BitSet
	n    int
}

// Len returns m, the number of exclusion columns.
func (mx *Matrix) Len() int { return len(mx.cols) }

// N returns n, the number of dataset points (the width of each column).
func (mx *Matrix) N() int { return mx.n }

// Column returns the bit-column for exclusion e.
func (mx *Matrix) Column(e int) *bitset.BitSet { return mx.cols[e] }

// Build materialises the matrix sequentially, point-major: for each dataset
// point, test every exclusion. This is the row-major construction order
// spec.md §3 permits as an alternative to column-major; the external
// contract (indexing by (exclusion, point)) is unaffected.
func Build[T metric.Space[T]](dataset []T, exclusions []region.Exclusion[T]) *Matrix {
	n := len(dataset)
	cols := make([]*bitset.BitSet, len(exclusions))
	for e := range cols {
		cols[e] = bitset.New(uint(n))
	}
	for i, p := range dataset {
		for e, ex := range exclusions {
			if ex.IsIn(p) {
				cols[e].Set(uint(i))
			}
		}
	}
	return &Matrix{cols: cols, n: n}
}

// BuildParallel materialises the matrix column-major, partitioning the m
// exclusions into jobSize-sized chunks fanned out over golang.org/x/sync's
// errgroup worker pool — the same task-per-chunk shape as
// internal/search.Engine's parallelSearch in the teacher. jobSize <= 0 is
// treated as 1 (finest-grained parallelism, one task per column).
func BuildParallel[T metric.Space[T]](ctx context.Context, dataset []T, exclusions []region.Exclusion[T], jobSize int, logger *slog.Logger) (*Matrix, error) {
	logger = obslog.OrDefault(logger)
	n := len(dataset)
	m := len(exclusions)
	cols := make([]*bitset.BitSet, m)
	if jobSize <= 0 {
		jobSize = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < m; start += jobSize {
		start := start
		end := min(start+jobSize, m)
		g.Go(func() error {
			for e := start; e < end; e++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				col := bitset.New(uint(n))
				ex := exclusions[e]
				for i, p := range dataset {
					if ex.IsIn(p) {
						col.Set(uint(i))
					}
				}
				cols[e] = col
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("bitcols matrix built",
		slog.Int("exclusions", m),
		slog.Int("points", n),
		slog.Int("job_size", jobSize))

	return &Matrix{cols: cols, n: n}, nil
}

// allOnes returns a bitset of length n with every bit set: the identity for
// the ins-AND-reduction when the ins set is empty.
func (mx *Matrix) allOnes() *bitset.BitSet {
	return bitset.New(uint(mx.n)).Complement()
}

// CombineIns returns the bitwise AND of the named columns, or an all-ones
// mask of length n if idx is empty (spec.md §4.6's identity for an empty
// ins set).
func (mx *Matrix) CombineIns(idx []int) *bitset.BitSet {
	if len(idx) == 0 {
		return mx.allOnes()
	}
	result := mx.cols[idx[0]].Clone()
	for _, e := range idx[1:] {
		result.InPlaceIntersection(mx.cols[e])
	}
	return result
}

// CombineOuts returns the bitwise OR of the named columns, or an all-zeros
// mask of length n if idx is empty.
func (mx *Matrix) CombineOuts(idx []int) *bitset.BitSet {
	result := bitset.New(uint(mx.n))
	for _, e := range idx {
		result.InPlaceUnion(mx.cols[e])
	}
	return result
}

// CandidateMask returns A AND (NOT O): the query-time candidate mask from
// spec.md §4.6 step 2, where A is the AND of the ins columns and O is the OR
// of the outs columns.
func CandidateMask(a, o *bitset.BitSet) *bitset.BitSet {
	return a.Difference(o)
}

// EachSet calls fn with the index of every set bit in b, in ascending order.
func EachSet(b *bitset.BitSet, fn func(i uint)) {
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		fn(i)
	}
}
