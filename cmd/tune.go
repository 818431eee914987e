package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cwbudde/linefit/internal/fit"
	"github.com/cwbudde/linefit/internal/opt"
	"github.com/spf13/cobra"
)

// tuneOptions configures the learning-rate search.
type tuneOptions struct {
	cfg       fit.Config
	lower     float64
	upper     float64
	popSize   int
	tuneIters int
	apply     bool
}

var tuneOpts = tuneOptions{
	cfg:       fit.DefaultConfig(),
	lower:     1e-4,
	upper:     0.2,
	popSize:   20,
	tuneIters: 30,
}

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Search for a learning rate with the mayfly optimizer",
	Long: `Generates the same dataset as run and searches the learning rate in
[lower, upper] on a log scale with the mayfly optimizer. Each candidate is
scored by the final cost of a full gradient descent run; diverging candidates
lose. With --apply the best learning rate is used for a full run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		alpha, err := executeTune(tuneOpts, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if !tuneOpts.apply {
			return nil
		}
		opts := runOpts
		opts.cfg = tuneOpts.cfg
		opts.cfg.LearningRate = alpha
		fmt.Fprintln(cmd.OutOrStdout())
		_, err = executeRun(cmd.Context(), opts, cmd.OutOrStdout())
		return err
	},
}

func init() {
	f := tuneCmd.Flags()
	f.IntVarP(&tuneOpts.cfg.Samples, "samples", "m", tuneOpts.cfg.Samples, "Number of samples")
	f.Float64Var(&tuneOpts.cfg.TrueW, "true-w", tuneOpts.cfg.TrueW, "Slope of the generating line")
	f.Float64Var(&tuneOpts.cfg.TrueB, "true-b", tuneOpts.cfg.TrueB, "Intercept of the generating line")
	f.Float64Var(&tuneOpts.cfg.NoiseStd, "noise", tuneOpts.cfg.NoiseStd, "Standard deviation of the Gaussian noise")
	f.IntVar(&tuneOpts.cfg.MaxIterations, "iters", tuneOpts.cfg.MaxIterations, "Max gradient descent iterations per candidate")
	f.Int64Var(&tuneOpts.cfg.Seed, "seed", tuneOpts.cfg.Seed, "Random seed for data and optimizer")

	f.Float64Var(&tuneOpts.lower, "lower", tuneOpts.lower, "Smallest learning rate to consider")
	f.Float64Var(&tuneOpts.upper, "upper", tuneOpts.upper, "Largest learning rate to consider")
	f.IntVar(&tuneOpts.popSize, "pop", tuneOpts.popSize, "Population size")
	f.IntVar(&tuneOpts.tuneIters, "tune-iters", tuneOpts.tuneIters, "Optimizer iterations")
	f.BoolVar(&tuneOpts.apply, "apply", false, "Run a full fit with the best learning rate")

	rootCmd.AddCommand(tuneCmd)
}

// executeTune runs the search and prints its outcome. It returns the best learning rate.
func executeTune(opts tuneOptions, out io.Writer) (float64, error) {
	ds, err := fit.GenerateFromConfig(opts.cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to generate dataset: %w", err)
	}

	optimizer := opt.NewMayfly(opts.tuneIters, opts.popSize, opts.cfg.Seed)

	start := time.Now()
	res, err := fit.TuneLearningRate(ds, optimizer, opts.lower, opts.upper, opts.cfg.MaxIterations)
	if err != nil {
		return 0, err
	}
	elapsed := time.Since(start)

	slog.Info("Tuning complete", "elapsed", elapsed, "evaluations", res.Evaluations)

	fmt.Fprintf(out, "Best learning rate: %.6g\n", res.LearningRate)
	fmt.Fprintf(out, "Final cost: %.4f (after %d iterations)\n", res.FinalCost, res.Iterations)
	fmt.Fprintf(out, "Evaluations: %d in %s\n", res.Evaluations, elapsed.Round(time.Millisecond))
	return res.LearningRate, nil
}
