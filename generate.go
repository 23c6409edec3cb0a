package bitpart

import (
	"github.com/cerplabs/bitpart/internal/region"
	"github.com/cerplabs/bitpart/metric"
)

// radiusGrid returns the 5-point radius grid {µ-2Δ, µ-Δ, µ, µ+Δ, µ+2Δ} spec.md
// §4.4 anchors a Ball exclusion at for every reference point.
func radiusGrid(meanDistance, radiusIncrement float64) [5]float64 {
	return [5]float64{
		meanDistance - 2*radiusIncrement,
		meanDistance - radiusIncrement,
		meanDistance,
		meanDistance + radiusIncrement,
		meanDistance + 2*radiusIncrement,
	}
}

// generateExclusions emits m = 5r + r(r-1)/2 exclusions: a Ball at every
// (reference point, grid radius) pair, then a Sheet for every unordered pair
// of reference points — balls first, deterministic given the reference-point
// ordering, per spec.md §4.4.
func generateExclusions[T metric.Space[T]](refs []T, meanDistance, radiusIncrement float64) []region.Exclusion[T] {
	radii := radiusGrid(meanDistance, radiusIncrement)
	r := len(refs)
	exclusions := make([]region.Exclusion[T], 0, 5*r+r*(r-1)/2)

	for _, c := range refs {
		for _, radius := range radii {
			exclusions = append(exclusions, region.NewBall(c, radius))
		}
	}
	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			exclusions = append(exclusions, region.NewSheet(refs[i], refs[j], 0.0))
		}
	}
	return exclusions
}
