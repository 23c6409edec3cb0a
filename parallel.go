package bitpart

import (
	"context"
	"log/slog"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"

	"github.com/cerplabs/bitpart/internal/bitcols"
	"github.com/cerplabs/bitpart/internal/region"
	"github.com/cerplabs/bitpart/metric"
)

// ParallelIndex is the concurrency-exploiting twin of Index: identical
// range_search semantics (spec.md §4.7), but the exclusion classification
// step and the bit-column reductions are chunked across a worker pool via
// golang.org/x/sync/errgroup, in the same task-per-chunk shape as the
// teacher's internal/search.MultiQuerySearcher.parallelSubSearch.
type ParallelIndex[T metric.Space[T]] struct {
	dataset    []T
	exclusions []region.Exclusion[T]
	matrix     *bitcols.Matrix
	jobSize    *int
	logger     *slog.Logger
}

// Len returns the number of points in the indexed dataset.
func (ix *ParallelIndex[T]) Len() int { return len(ix.dataset) }

// ExclusionCount returns m, the number of exclusion regions the index built.
func (ix *ParallelIndex[T]) ExclusionCount() int { return len(ix.exclusions) }

// RangeSearch returns every dataset point within tau of q, paired with its
// distance. ctx governs cooperative cancellation at chunk boundaries only —
// a query runs to completion unless cancelled, per spec.md §5.
func (ix *ParallelIndex[T]) RangeSearch(ctx context.Context, q T, tau float64) ([]Result[T], error) {
	if ix.jobSize == nil {
		// job_size == nil: sequential reduction within a single task, as
		// documented on Builder.BuildParallel.
		ins, outs := classify(ix.exclusions, q, tau)
		a := ix.matrix.CombineIns(ins)
		o := ix.matrix.CombineOuts(outs)
		mask := bitcols.CandidateMask(a, o)
		results := verifyChunk(ix.dataset, setBits(mask), q, tau)
		ix.logDone(ins, outs, mask, results)
		return results, nil
	}

	jobSize := *ix.jobSize

	ins, outs, err := ix.classifyParallel(ctx, q, tau, jobSize)
	if err != nil {
		return nil, err
	}

	a, o, err := ix.combineParallel(ctx, ins, outs, jobSize)
	if err != nil {
		return nil, err
	}
	mask := bitcols.CandidateMask(a, o)

	results, err := ix.verifyParallel(ctx, mask, q, tau, jobSize)
	if err != nil {
		return nil, err
	}

	ix.logDone(ins, outs, mask, results)
	return results, nil
}

func (ix *ParallelIndex[T]) logDone(ins, outs []int, mask *bitset.BitSet, results []Result[T]) {
	ix.logger.Debug("parallel_range_search",
		slog.Int("ins", len(ins)),
		slog.Int("outs", len(outs)),
		slog.Int("candidates", int(mask.Count())),
		slog.Int("hits", len(results)))
}

// classifyParallel partitions the m exclusions into jobSize-sized chunks,
// each producing a sparse roaring.Bitmap of ins indices and one of outs
// indices; the per-chunk bitmaps are merged with roaring.FastOr, an
// associative, commutative reduction well suited to these small, sparse
// index sets (as opposed to the dense per-point bitcols.Matrix columns).
func (ix *ParallelIndex[T]) classifyParallel(ctx context.Context, q T, tau float64, jobSize int) ([]int, []int, error) {
	m := len(ix.exclusions)
	nChunks := chunkCount(m, jobSize)

	insParts := make([]*roaring.Bitmap, nChunks)
	outsParts := make([]*roaring.Bitmap, nChunks)

	g, gctx := errgroup.WithContext(ctx)
	for c := 0; c < nChunks; c++ {
		c := c
		start, end := chunkBounds(c, jobSize, m)
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			ins := roaring.New()
			outs := roaring.New()
			for e := start; e < end; e++ {
				ex := ix.exclusions[e]
				switch {
				case ex.MustBeIn(q, tau):
					ins.Add(uint32(e))
				case ex.MustBeOut(q, tau):
					outs.Add(uint32(e))
				}
			}
			insParts[c] = ins
			outsParts[c] = outs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	insAll := roaring.FastOr(insParts...)
	outsAll := roaring.FastOr(outsParts...)
	return toIntSlice(insAll), toIntSlice(outsAll), nil
}

// combineParallel computes A (AND of the ins columns) and O (OR of the outs
// columns), each as a chunked tree reduction: jobSize columns are combined
// per task, then the per-chunk partials are folded together with the same
// associative operator.
func (ix *ParallelIndex[T]) combineParallel(ctx context.Context, ins, outs []int, jobSize int) (*bitset.BitSet, *bitset.BitSet, error) {
	g, gctx := errgroup.WithContext(ctx)

	var a, o *bitset.BitSet
	g.Go(func() error {
		res, err := reduceChunked(gctx, ins, jobSize, ix.matrix.CombineIns, intersect)
		a = res
		return err
	})
	g.Go(func() error {
		res, err := reduceChunked(gctx, outs, jobSize, ix.matrix.CombineOuts, union)
		o = res
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return a, o, nil
}

func intersect(a, b *bitset.BitSet) *bitset.BitSet { return a.Intersection(b) }
func union(a, b *bitset.BitSet) *bitset.BitSet     { return a.Union(b) }

// reduceChunked partitions idx into jobSize-sized groups, applies combine to
// each group in parallel, and folds the partial results together with
// reduce. combine(nil) supplies the identity when idx is empty (all-ones for
// CombineIns, all-zeros for CombineOuts).
func reduceChunked(
	ctx context.Context,
	idx []int,
	jobSize int,
	combine func([]int) *bitset.BitSet,
	reduce func(a, b *bitset.BitSet) *bitset.BitSet,
) (*bitset.BitSet, error) {
	if len(idx) == 0 {
		return combine(nil), nil
	}

	nChunks := chunkCount(len(idx), jobSize)
	parts := make([]*bitset.BitSet, nChunks)

	g, gctx := errgroup.WithContext(ctx)
	for c := 0; c < nChunks; c++ {
		c := c
		start, end := chunkBounds(c, jobSize, len(idx))
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			parts[c] = combine(idx[start:end])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	acc := parts[0]
	for _, p := range parts[1:] {
		acc = reduce(acc, p)
	}
	return acc, nil
}

// verifyParallel computes the final distance check over every candidate bit
// set in mask, chunked by jobSize across the worker pool.
func (ix *ParallelIndex[T]) verifyParallel(ctx context.Context, mask *bitset.BitSet, q T, tau float64, jobSize int) ([]Result[T], error) {
	candidates := setBits(mask)
	if len(candidates) == 0 {
		return nil, nil
	}

	nChunks := chunkCount(len(candidates), jobSize)
	parts := make([][]Result[T], nChunks)

	g, gctx := errgroup.WithContext(ctx)
	for c := 0; c < nChunks; c++ {
		c := c
		start, end := chunkBounds(c, jobSize, len(candidates))
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			parts[c] = verifyChunk(ix.dataset, candidates[start:end], q, tau)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, p := range parts {
		total += len(p)
	}
	results := make([]Result[T], 0, total)
	for _, p := range parts {
		results = append(results, p...)
	}
	return results, nil
}

func verifyChunk[T metric.Space[T]](dataset []T, idx []uint, q T, tau float64) []Result[T] {
	var out []Result[T]
	for _, i := range idx {
		p := dataset[i]
		d := q.Distance(p)
		if d <= tau {
			out = append(out, Result[T]{Point: p, Distance: d})
		}
	}
	return out
}

func setBits(b *bitset.BitSet) []uint {
	var out []uint
	bitcols.EachSet(b, func(i uint) { out = append(out, i) })
	return out
}

func toIntSlice(b *roaring.Bitmap) []int {
	arr := b.ToArray()
	out := make([]int, len(arr))
	for i, v := range arr {
		out[i] = int(v)
	}
	return out
}

func chunkCount(n, jobSize int) int {
	if jobSize <= 0 {
		jobSize = 1
	}
	return (n + jobSize - 1) / jobSize
}

func chunkBounds(chunk, jobSize, n int) (start, end int) {
	start = chunk * jobSize
	end = min(start+jobSize, n)
	return start, end
}
