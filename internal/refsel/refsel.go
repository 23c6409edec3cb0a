// Package refsel selects the reference-point subset the builder anchors its
// exclusion regions at. The contract is "any r distinct points"; pruning
// strength (not correctness) depends on the strategy chosen.
package refsel

import "math/rand/v2"

// Selector picks r distinct indices into a dataset of size n.
type Selector interface {
	// Select returns r distinct indices in [0, n). Seed, if the strategy is
	// randomised, is reported via Seed for the build manifest; deterministic
	// strategies report ok=false.
	Select(n, r int) []int

	// Seed reports the seed used for the most recent Select call, if the
	// strategy is randomised.
	Seed() (seed uint64, ok bool)
}

// prefix is the default strategy: the first r points of the dataset, in
// order. This matches original_source's hard-coded `dataset[0..ref_points]`.
type prefix struct{}

// Prefix returns the deterministic prefix selector.
func Prefix() Selector { return prefix{} }

func (prefix) Select(n, r int) []int {
	idx := make([]int, r)
	for i := range idx {
		idx[i] = i
	}
	_ = n
	return idx
}

func (prefix) Seed() (uint64, bool) { return 0, false }

// seeded samples r distinct indices without replacement using a seeded PRNG,
// the "correct port" refinement design notes §9 calls for: the seed is
// recorded so a caller can reproduce the exact reference-point set later.
type seeded struct {
	seed uint64
}

// Seeded returns a without-replacement random selector seeded by seed.
func Seeded(seed uint64) Selector { return &seeded{seed: seed} }

func (s *seeded) Select(n, r int) []int {
	rng := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))

	// Partial Fisher-Yates: shuffle only the first r positions of a identity
	// permutation, which is enough to draw r distinct samples without
	// materialising a full shuffle of all n indices.
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < r; i++ {
		j := i + rng.IntN(n-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:r]
}

func (s *seeded) Seed() (uint64, bool) { return s.seed, true }
