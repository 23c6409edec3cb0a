package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cerplabs/bitpart"
	"github.com/cerplabs/bitpart/internal/asciipoints"
	"github.com/cerplabs/bitpart/metric"
)

type runOptions struct {
	dataset   string
	n         int
	dim       int
	seed      uint64
	tau       float64
	refPoints int
	jobSize   int
	parallel  bool
}

func newRunCmd() *cobra.Command {
	opts := runOptions{n: 1000, dim: 20, seed: 1, tau: 2.0, refPoints: 40, jobSize: 64}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build an index over a sample dataset and run one range search",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dataset, "dataset", "synthetic", "dataset to use: synthetic, nasa, colors")
	cmd.Flags().IntVar(&opts.n, "n", opts.n, "number of points (synthetic dataset only)")
	cmd.Flags().IntVar(&opts.dim, "dim", opts.dim, "dimensionality (synthetic dataset only)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "synthetic dataset seed")
	cmd.Flags().Float64Var(&opts.tau, "tau", opts.tau, "range search threshold")
	cmd.Flags().IntVar(&opts.refPoints, "ref-points", opts.refPoints, "number of reference points")
	cmd.Flags().BoolVar(&opts.parallel, "parallel", false, "use the parallel query engine")
	cmd.Flags().IntVar(&opts.jobSize, "job-size", opts.jobSize, "job size for the parallel engine")

	return cmd
}

func loadDataset(opts runOptions) ([]metric.Euclidean, error) {
	var raw [][]float64
	switch opts.dataset {
	case "synthetic":
		raw = asciipoints.Synthetic(opts.n, opts.dim, opts.seed)
	case "nasa":
		raw = asciipoints.NASASample()
	case "colors":
		raw = asciipoints.ColorsSample()
	default:
		return nil, fmt.Errorf("unknown dataset %q (want synthetic, nasa, or colors)", opts.dataset)
	}

	points := make([]metric.Euclidean, len(raw))
	for i, v := range raw {
		points[i] = metric.NewEuclidean(v)
	}
	return points, nil
}

func runBench(cmd *cobra.Command, opts runOptions) error {
	out := newWriter(cmd.OutOrStdout())

	dataset, err := loadDataset(opts)
	if err != nil {
		return err
	}
	if opts.refPoints > len(dataset) {
		opts.refPoints = len(dataset)
	}
	query := dataset[len(dataset)/2]

	out.statusf("", "dataset=%s points=%d tau=%g ref_points=%d", opts.dataset, len(dataset), opts.tau, opts.refPoints)

	builder := bitpart.New(dataset).RefPoints(opts.refPoints)

	var results []bitpart.Result[metric.Euclidean]
	start := time.Now()
	if opts.parallel {
		jobSize := opts.jobSize
		par, manifest, err := builder.BuildParallel(&jobSize)
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}
		out.statusf("", "build complete: %d exclusions (build_id=%s)", manifest.Exclusions, manifest.BuildID)
		results, err = par.RangeSearch(context.Background(), query, opts.tau)
		if err != nil {
			return fmt.Errorf("range search: %w", err)
		}
	} else {
		idx, manifest, err := builder.Build()
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}
		out.statusf("", "build complete: %d exclusions (build_id=%s)", manifest.Exclusions, manifest.BuildID)
		results = idx.RangeSearch(query, opts.tau)
	}
	elapsed := time.Since(start)

	brute := 0
	for _, p := range dataset {
		if query.Distance(p) <= opts.tau {
			brute++
		}
	}

	out.statusf("", "%d points returned in %s", len(results), elapsed)
	if brute == len(results) {
		out.status("ok", "matches brute-force linear scan")
	} else {
		out.statusf("fail", "brute force returned %d, bitpart returned %d", brute, len(results))
	}
	return nil
}
