package refsel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefix_SelectsFirstR(t *testing.T) {
	idx := Prefix().Select(10, 4)
	assert.Equal(t, []int{0, 1, 2, 3}, idx)

	_, ok := Prefix().Seed()
	assert.False(t, ok)
}

func assertDistinct(t *testing.T, idx []int, n int) {
	t.Helper()
	seen := make(map[int]bool, len(idx))
	for _, i := range idx {
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, n)
		require.False(t, seen[i], "duplicate index %d", i)
		seen[i] = true
	}
}

func TestSeeded_SelectsDistinctIndices(t *testing.T) {
	sel := Seeded(42)
	idx := sel.Select(100, 40)
	assert.Len(t, idx, 40)
	assertDistinct(t, idx, 100)

	seed, ok := sel.Seed()
	assert.True(t, ok)
	assert.Equal(t, uint64(42), seed)
}

func TestSeeded_DeterministicGivenSameSeed(t *testing.T) {
	a := Seeded(7).Select(50, 10)
	b := Seeded(7).Select(50, 10)
	assert.Equal(t, a, b)
}

func TestSeeded_AllPointsWhenRequestsFullDataset(t *testing.T) {
	idx := Seeded(1).Select(5, 5)
	assertDistinct(t, idx, 5)
	assert.Len(t, idx, 5)
}
