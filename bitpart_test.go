package bitpart

import (
	"context"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerplabs/bitpart/internal/refsel"
	"github.com/cerplabs/bitpart/metric"
)

func vec(v ...float64) metric.Euclidean { return metric.NewEuclidean(v) }

// syntheticDataset returns n points drawn from a standard normal
// distribution in d dimensions, deterministically seeded.
func syntheticDataset(n, d int, seed uint64) []metric.Euclidean {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	out := make([]metric.Euclidean, n)
	for i := range out {
		v := make([]float64, d)
		for j := range v {
			v[j] = rng.NormFloat64()
		}
		out[i] = metric.NewEuclidean(v)
	}
	return out
}

func bruteForce(dataset []metric.Euclidean, q metric.Euclidean, tau float64) []Result[metric.Euclidean] {
	var out []Result[metric.Euclidean]
	for _, p := range dataset {
		d := q.Distance(p)
		if d <= tau {
			out = append(out, Result[metric.Euclidean]{Point: p, Distance: d})
		}
	}
	return out
}

func sortResults(r []Result[metric.Euclidean]) {
	sort.Slice(r, func(i, j int) bool {
		if r[i].Distance != r[j].Distance {
			return r[i].Distance < r[j].Distance
		}
		return r[i].Point.Values()[0] < r[j].Point.Values()[0]
	})
}

func assertSameResultSet(t *testing.T, got, want []Result[metric.Euclidean]) {
	t.Helper()
	sortResults(got)
	sortResults(want)
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.InDelta(t, want[i].Distance, got[i].Distance, 1e-9)
		assert.Equal(t, want[i].Point.Values(), got[i].Point.Values())
	}
}

// TS-RECALL: range_search matches brute force over a synthetic dataset.
func TestRangeSearch_MatchesBruteForce(t *testing.T) {
	dataset := syntheticDataset(400, 20, 1)
	query := syntheticDataset(1, 20, 99)[0]
	const tau = 3.0

	idx, _, err := New(dataset).Build()
	require.NoError(t, err)

	got := idx.RangeSearch(query, tau)
	want := bruteForce(dataset, query, tau)
	assertSameResultSet(t, got, want)
}

// TS-REFCOUNT: different ref-point counts yield identical result sets
// (spec.md §8, Synthetic-20D scenario).
func TestRangeSearch_RefPointCountDoesNotAffectRecall(t *testing.T) {
	dataset := syntheticDataset(300, 20, 2)
	query := syntheticDataset(1, 20, 7)[0]
	const tau = 3.0

	idx40, _, err := New(dataset).RefPoints(40).Build()
	require.NoError(t, err)
	idx20, _, err := New(dataset).RefPoints(20).Build()
	require.NoError(t, err)

	got40 := idx40.RangeSearch(query, tau)
	got20 := idx20.RangeSearch(query, tau)
	assertSameResultSet(t, got40, got20)
}

// TS-PARALLEL: sequential and parallel engines return equal multisets.
func TestParallelIndex_MatchesSequential(t *testing.T) {
	dataset := syntheticDataset(500, 12, 3)
	query := syntheticDataset(1, 12, 55)[0]
	const tau = 2.5

	seq, _, err := New(dataset).Build()
	require.NoError(t, err)
	want := seq.RangeSearch(query, tau)

	for _, js := range []*int{nil, intPtr(1), intPtr(7), intPtr(512)} {
		par, _, err := New(dataset).BuildParallel(js)
		require.NoError(t, err)

		got, err := par.RangeSearch(context.Background(), query, tau)
		require.NoError(t, err)
		assertSameResultSet(t, got, want)
	}
}

func intPtr(v int) *int { return &v }

// TS-BOUNDARY-ZERO: tau=0 returns exactly the points equal to q.
func TestRangeSearch_BoundaryZeroThreshold(t *testing.T) {
	dataset := []metric.Euclidean{vec(0, 0), vec(1, 0), vec(0, 0), vec(5, 5)}
	q := vec(0, 0)

	idx, _, err := New(dataset).RefPoints(2).Build()
	require.NoError(t, err)

	got := idx.RangeSearch(q, 0)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, 0.0, r.Distance)
		assert.Equal(t, []float64{0, 0}, r.Point.Values())
	}
}

// TS-BOUNDARY-LARGE: sufficiently large tau returns the whole dataset.
func TestRangeSearch_LargeThresholdReturnsEverything(t *testing.T) {
	dataset := syntheticDataset(50, 5, 11)
	q := vec(0, 0, 0, 0, 0)

	idx, _, err := New(dataset).Build()
	require.NoError(t, err)

	got := idx.RangeSearch(q, 1000)
	assert.Len(t, got, len(dataset))
}

// TS-DEGENERATE: D = {q}, tau = 0.
func TestRangeSearch_SinglePointDataset(t *testing.T) {
	q := vec(1, 2, 3)
	idx, _, err := New([]metric.Euclidean{q}).RefPoints(1).Build()
	require.NoError(t, err)

	got := idx.RangeSearch(q, 0)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].Distance)
}

// TS-DEGENERATE-DUP: duplicate points are all returned.
func TestRangeSearch_DuplicatePoints(t *testing.T) {
	q := vec(2, 2)
	dataset := []metric.Euclidean{q, q, q, vec(100, 100)}
	idx, _, err := New(dataset).RefPoints(2).Build()
	require.NoError(t, err)

	got := idx.RangeSearch(q, 0)
	assert.Len(t, got, 3)
}

// TS-AMBIGUOUS: a threshold so large every exclusion is ambiguous degrades
// to a full linear scan, still correct.
func TestRangeSearch_AllAmbiguousFallsBackToFullScan(t *testing.T) {
	dataset := syntheticDataset(60, 4, 21)
	q := vec(0, 0, 0, 0)

	idx, _, err := New(dataset).MeanDistance(1).RadiusIncrement(0.01).Build()
	require.NoError(t, err)

	got := idx.RangeSearch(q, 1e9)
	assert.Len(t, got, len(dataset))
}

// TS-IDEMPOTENT: building twice from the same builder produces indices that
// return identical result sets.
func TestBuild_Idempotent(t *testing.T) {
	dataset := syntheticDataset(120, 8, 4)
	query := syntheticDataset(1, 8, 5)[0]
	const tau = 2.0

	b := New(dataset)
	idx1, _, err := b.Build()
	require.NoError(t, err)
	idx2, _, err := b.Build()
	require.NoError(t, err)

	assertSameResultSet(t, idx1.RangeSearch(query, tau), idx2.RangeSearch(query, tau))
}

func TestBuild_RejectsEmptyDataset(t *testing.T) {
	_, _, err := New([]metric.Euclidean{}).Build()
	require.Error(t, err)
}

func TestBuild_RejectsNegativeRadiusIncrement(t *testing.T) {
	dataset := syntheticDataset(5, 2, 1)
	_, _, err := New(dataset).RadiusIncrement(-1).Build()
	require.Error(t, err)
}

func TestRefPoints_PanicsWhenExceedingDatasetSize(t *testing.T) {
	dataset := syntheticDataset(5, 2, 1)
	assert.Panics(t, func() {
		New(dataset).RefPoints(6)
	})
}

func TestManifest_RecordsSeedOnlyForSeededSelector(t *testing.T) {
	dataset := syntheticDataset(50, 3, 1)

	_, m1, err := New(dataset).Build()
	require.NoError(t, err)
	assert.Nil(t, m1.RefSelectionSeed)

	_, m2, err := New(dataset).RefPointSelector(refsel.Seeded(7)).Build()
	require.NoError(t, err)
	require.NotNil(t, m2.RefSelectionSeed)
	assert.Equal(t, uint64(7), *m2.RefSelectionSeed)

	y, err := m2.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(y), "ref_selection_seed")
}

func TestParallelIndex_ContextCancellation(t *testing.T) {
	dataset := syntheticDataset(200, 10, 1)
	query := syntheticDataset(1, 10, 2)[0]

	par, _, err := New(dataset).BuildParallel(intPtr(4))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = par.RangeSearch(ctx, query, 2.0)
	assert.Error(t, err)
}
