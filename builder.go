package bitpart

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/cerplabs/bitpart/internal/bitcols"
	"github.com/cerplabs/bitpart/internal/bperrors"
	"github.com/cerplabs/bitpart/internal/obslog"
	"github.com/cerplabs/bitpart/internal/profile"
	"github.com/cerplabs/bitpart/internal/refsel"
	"github.com/cerplabs/bitpart/metric"
)

// defaultBuildJobSize is the chunk size BuildParallel uses internally to
// partition the m exclusion columns across the worker pool when the caller
// passes a nil job_size.
const defaultBuildJobSize = 64

// Builder configures and constructs a bitpart index. It is not safe for
// concurrent use by multiple goroutines; build one, configure it, consume it.
type Builder[T metric.Space[T]] struct {
	dataset []T

	meanDistance    float64
	radiusIncrement float64
	fourPoint       bool
	refPoints       int
	refSelector     refsel.Selector
	logger          *slog.Logger
}

// New creates a Builder over dataset with bitpart's historical defaults:
// mean_distance=1.81, radius_increment=0.3, four_point=true, ref_points=40
// (the euclidean-unit profile), and prefix reference-point selection. The
// default ref_points is capped at len(dataset) for datasets smaller than 40.
func New[T metric.Space[T]](dataset []T) *Builder[T] {
	def, _ := profile.Lookup(profile.Default)
	refPoints := 40
	if refPoints > len(dataset) {
		refPoints = len(dataset)
	}
	return &Builder[T]{
		dataset:         dataset,
		meanDistance:    def.MeanDistance,
		radiusIncrement: def.RadiusIncrement,
		fourPoint:       true,
		refPoints:       refPoints,
		refSelector:     refsel.Prefix(),
	}
}

// MeanDistance sets µ, the center of the 5-point ball-radius grid.
func (b *Builder[T]) MeanDistance(v float64) *Builder[T] {
	b.meanDistance = v
	return b
}

// RadiusIncrement sets Δ, the spacing of the 5-point ball-radius grid.
func (b *Builder[T]) RadiusIncrement(v float64) *Builder[T] {
	b.radiusIncrement = v
	return b
}

// FourPoint records whether the four-point (vs three-point) sheet predicate
// family was requested. Recorded on the build Manifest; see DESIGN.md for why
// it does not currently select a different predicate implementation.
func (b *Builder[T]) FourPoint(v bool) *Builder[T] {
	b.fourPoint = v
	return b
}

// Profile applies a named internal/profile tuning preset, overriding
// MeanDistance and RadiusIncrement. Panics if name is unknown, matching the
// other setters' immediate-panic convention for programming errors.
func (b *Builder[T]) Profile(name string) *Builder[T] {
	p, ok := profile.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("bitpart: unknown profile %q (known: %v)", name, profile.Names()))
	}
	b.meanDistance = p.MeanDistance
	b.radiusIncrement = p.RadiusIncrement
	return b
}

// RefPoints sets r, the number of reference points to select from the
// dataset. Panics if n exceeds the dataset size, matching the reference
// implementation's documented panic-on-misuse contract.
func (b *Builder[T]) RefPoints(n int) *Builder[T] {
	if n > len(b.dataset) {
		panic(fmt.Sprintf("bitpart: ref_points %d exceeds dataset size %d", n, len(b.dataset)))
	}
	b.refPoints = n
	return b
}

// RefPointSelector overrides the reference-point selection strategy. The
// default is refsel.Prefix(); refsel.Seeded(seed) samples without
// replacement and records the seed on the build Manifest.
func (b *Builder[T]) RefPointSelector(s refsel.Selector) *Builder[T] {
	b.refSelector = s
	return b
}

// Logger sets the *slog.Logger used for build/query instrumentation. Nil (the
// default) discards all log output.
func (b *Builder[T]) Logger(l *slog.Logger) *Builder[T] {
	b.logger = l
	return b
}

// validate checks the invariants Build/BuildParallel require, returning a
// *bperrors.BitpartError describing the first violation found.
func (b *Builder[T]) validate() error {
	if len(b.dataset) == 0 {
		return bperrors.New(bperrors.ErrCodeEmptyDataset, "dataset must not be empty")
	}
	if b.radiusIncrement < 0 {
		return bperrors.New(bperrors.ErrCodeNegativeRadius, "radius_increment must be non-negative").
			WithDetail("radius_increment", strconv.FormatFloat(b.radiusIncrement, 'g', -1, 64))
	}
	if b.refPoints <= 0 || b.refPoints > len(b.dataset) {
		return bperrors.New(bperrors.ErrCodeRefPointsExceeded, "ref_points must be in (0, len(dataset)]").
			WithDetail("ref_points", strconv.Itoa(b.refPoints)).
			WithDetail("dataset_size", strconv.Itoa(len(b.dataset)))
	}
	return nil
}

// selectRefs runs the configured selector and returns the chosen reference
// points plus the seed used, if any.
func (b *Builder[T]) selectRefs() ([]T, *uint64) {
	idx := b.refSelector.Select(len(b.dataset), b.refPoints)
	refs := make([]T, len(idx))
	for i, di := range idx {
		refs[i] = b.dataset[di]
	}
	var seed *uint64
	if s, ok := b.refSelector.Seed(); ok {
		seed = &s
	}
	return refs, seed
}

func (b *Builder[T]) manifest(exclusions, refPoints int, seed *uint64) Manifest {
	return Manifest{
		BuildID:          uuid.New(),
		DatasetSize:      len(b.dataset),
		MeanDistance:     b.meanDistance,
		RadiusIncrement:  b.radiusIncrement,
		FourPoint:        b.fourPoint,
		RefPoints:        refPoints,
		Exclusions:       exclusions,
		RefSelectionSeed: seed,
	}
}

// Build validates the configuration and constructs a sequential Index.
func (b *Builder[T]) Build() (*Index[T], Manifest, error) {
	if err := b.validate(); err != nil {
		return nil, Manifest{}, err
	}

	logger := obslog.OrDefault(b.logger)
	refs, seed := b.selectRefs()
	exclusions := generateExclusions(refs, b.meanDistance, b.radiusIncrement)
	matrix := bitcols.Build(b.dataset, exclusions)

	logger.Info("bitpart index built",
		slog.Int("dataset_size", len(b.dataset)),
		slog.Int("ref_points", len(refs)),
		slog.Int("exclusions", len(exclusions)))

	return &Index[T]{
			dataset:    b.dataset,
			exclusions: exclusions,
			matrix:     matrix,
			logger:     logger,
		},
		b.manifest(len(exclusions), len(refs), seed),
		nil
}

// BuildParallel validates the configuration and constructs a ParallelIndex.
// The bitset is always built with a parallel worker pool. jobSize sets the
// granularity of parallelism: nil disables query-time parallelism (sequential
// reduction per query, useful when only build-time parallelism is wanted and
// per-query latency must stay predictable) and builds the bitset in chunks of
// defaultBuildJobSize columns; Some(k) processes k columns per task, both when
// building the bitset and in each query's reductions.
func (b *Builder[T]) BuildParallel(jobSize *int) (*ParallelIndex[T], Manifest, error) {
	if err := b.validate(); err != nil {
		return nil, Manifest{}, err
	}
	if jobSize != nil && *jobSize <= 0 {
		return nil, Manifest{}, bperrors.New(bperrors.ErrCodeInvalidJobSize, "job_size must be positive when set").
			WithDetail("job_size", strconv.Itoa(*jobSize))
	}

	logger := obslog.OrDefault(b.logger)
	refs, seed := b.selectRefs()
	exclusions := generateExclusions(refs, b.meanDistance, b.radiusIncrement)

	buildChunk := defaultBuildJobSize
	if jobSize != nil {
		buildChunk = *jobSize
	}
	matrix, err := bitcols.BuildParallel(context.Background(), b.dataset, exclusions, buildChunk, logger)
	if err != nil {
		return nil, Manifest{}, bperrors.Wrap(bperrors.ErrCodeInternal, err)
	}

	logger.Info("bitpart parallel index built",
		slog.Int("dataset_size", len(b.dataset)),
		slog.Int("ref_points", len(refs)),
		slog.Int("exclusions", len(exclusions)))

	return &ParallelIndex[T]{
			dataset:    b.dataset,
			exclusions: exclusions,
			matrix:     matrix,
			jobSize:    jobSize,
			logger:     logger,
		},
		b.manifest(len(exclusions), len(refs), seed),
		nil
}
