package asciipoints

import (
	"embed"
	"fmt"
	"math/rand/v2"
)

//go:embed testdata/nasa_sample.ascii testdata/colors_sample.ascii
var fixtures embed.FS

// NASASample returns a reduced-scale stand-in for the SISAP NASA collection
// (20-dimensional feature vectors), for use in tests and the demo CLI.
func NASASample() [][]float64 { return mustLoadFixture("testdata/nasa_sample.ascii") }

// ColorsSample returns a reduced-scale stand-in for the SISAP Colors
// collection (112-dimensional histograms).
func ColorsSample() [][]float64 { return mustLoadFixture("testdata/colors_sample.ascii") }

func mustLoadFixture(name string) [][]float64 {
	f, err := fixtures.Open(name)
	if err != nil {
		panic(fmt.Sprintf("asciipoints: embedded fixture %q missing: %v", name, err))
	}
	defer f.Close()

	points, err := Parse(f)
	if err != nil {
		panic(fmt.Sprintf("asciipoints: embedded fixture %q malformed: %v", name, err))
	}
	return points
}

// Synthetic draws n points from a standard normal distribution in d
// dimensions, seeded for reproducibility.
func Synthetic(n, d int, seed uint64) [][]float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x2545f4914f6cdd1d))
	points := make([][]float64, n)
	for i := range points {
		v := make([]float64, d)
		for j := range v {
			v[j] = rng.NormFloat64()
		}
		points[i] = v
	}
	return points
}
