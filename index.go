package bitpart

import (
	"log/slog"

	"github.com/cerplabs/bitpart/internal/bitcols"
	"github.com/cerplabs/bitpart/internal/region"
	"github.com/cerplabs/bitpart/metric"
)

// Index is an immutable, queryable bitpart index built by Builder.Build. It
// is safe for any number of concurrent RangeSearch calls.
type Index[T metric.Space[T]] struct {
	dataset    []T
	exclusions []region.Exclusion[T]
	matrix     *bitcols.Matrix
	logger     *slog.Logger
}

// classify partitions exclusion indices into ins (must_be_in at (q, tau)) and
// outs (must_be_out at (q, tau)); exclusions satisfying neither are ambiguous
// and are dropped, per spec.md §4.6 step 1.
func classify[T metric.Space[T]](exclusions []region.Exclusion[T], q T, tau float64) (ins, outs []int) {
	for e, ex := range exclusions {
		switch {
		case ex.MustBeIn(q, tau):
			ins = append(ins, e)
		case ex.MustBeOut(q, tau):
			outs = append(outs, e)
		}
	}
	return ins, outs
}

// RangeSearch returns every dataset point within tau of q, paired with its
// distance. Result ordering is unspecified but content is deterministic for
// a given index and (q, tau): spec.md §8 property 1 (recall).
func (ix *Index[T]) RangeSearch(q T, tau float64) []Result[T] {
	ins, outs := classify(ix.exclusions, q, tau)

	a := ix.matrix.CombineIns(ins)
	o := ix.matrix.CombineOuts(outs)
	mask := bitcols.CandidateMask(a, o)

	var results []Result[T]
	bitcols.EachSet(mask, func(i uint) {
		p := ix.dataset[i]
		d := q.Distance(p)
		if d <= tau {
			results = append(results, Result[T]{Point: p, Distance: d})
		}
	})

	ix.logger.Debug("range_search",
		slog.Int("ins", len(ins)),
		slog.Int("outs", len(outs)),
		slog.Int("candidates", int(mask.Count())),
		slog.Int("hits", len(results)))

	return results
}

// Len returns the number of points in the indexed dataset.
func (ix *Index[T]) Len() int { return len(ix.dataset) }

// ExclusionCount returns m, the number of exclusion regions the index built.
func (ix *Index[T]) ExclusionCount() int { return len(ix.exclusions) }
