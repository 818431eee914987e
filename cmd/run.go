package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path"
	"time"

	"github.com/cwbudde/linefit/internal/fit"
	"github.com/cwbudde/linefit/internal/publish"
	"github.com/cwbudde/linefit/internal/report"
	"github.com/cwbudde/linefit/internal/store"
	"github.com/spf13/cobra"
)

// runOptions collects everything the run command needs besides the fit config.
type runOptions struct {
	cfg      fit.Config
	dataDir  string
	outDir   string
	noPlots  bool
	noRecord bool

	s3Bucket    string
	s3Prefix    string
	region      string
	cwNamespace string
}

var runOpts = runOptions{cfg: fit.DefaultConfig()}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a dataset and fit a line to it",
	Long: `Generates m evenly spaced points on [-5, 5] around y = w*x + b with Gaussian
noise, runs batch gradient descent from w = 0, b = 0 and prints the learned
parameters, final cost and example predictions. Plots of the fit and the cost
history are written to the output directory and the run is recorded under the
data directory.`,
	RunE: runFit,
}

func init() {
	f := runCmd.Flags()
	f.IntVarP(&runOpts.cfg.Samples, "samples", "m", runOpts.cfg.Samples, "Number of samples")
	f.Float64Var(&runOpts.cfg.TrueW, "true-w", runOpts.cfg.TrueW, "Slope of the generating line")
	f.Float64Var(&runOpts.cfg.TrueB, "true-b", runOpts.cfg.TrueB, "Intercept of the generating line")
	f.Float64Var(&runOpts.cfg.NoiseStd, "noise", runOpts.cfg.NoiseStd, "Standard deviation of the Gaussian noise")
	f.Float64Var(&runOpts.cfg.LearningRate, "alpha", runOpts.cfg.LearningRate, "Learning rate")
	f.IntVar(&runOpts.cfg.MaxIterations, "iters", runOpts.cfg.MaxIterations, "Max iterations")
	f.Int64Var(&runOpts.cfg.Seed, "seed", runOpts.cfg.Seed, "Random seed")

	f.StringVar(&runOpts.dataDir, "data-dir", "./data", "Base directory for run records")
	f.StringVar(&runOpts.outDir, "out", ".", "Directory for the plot images")
	f.BoolVar(&runOpts.noPlots, "no-plots", false, "Skip rendering plots")
	f.BoolVar(&runOpts.noRecord, "no-record", false, "Do not record the run under the data directory")

	f.StringVar(&runOpts.s3Bucket, "s3-bucket", "", "Upload plots to this S3 bucket")
	f.StringVar(&runOpts.s3Prefix, "s3-prefix", "linefit", "Key prefix for uploaded plots")
	f.StringVar(&runOpts.region, "region", "us-east-1", "AWS region")
	f.StringVar(&runOpts.cwNamespace, "cloudwatch-namespace", "", "Publish run metrics to this CloudWatch namespace")

	rootCmd.AddCommand(runCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	_, err := executeRun(cmd.Context(), runOpts, cmd.OutOrStdout())
	return err
}

// executeRun performs one generate-fit-report cycle and returns the run ID,
// or an empty ID when the run was not recorded.
func executeRun(ctx context.Context, opts runOptions, out io.Writer) (string, error) {
	cfg := opts.cfg
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	runID := store.NewRunID()
	slog.Info("Starting run",
		"run_id", runID,
		"samples", cfg.Samples,
		"learning_rate", cfg.LearningRate,
		"iters", cfg.MaxIterations,
		"seed", cfg.Seed,
	)

	ds, err := fit.GenerateFromConfig(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate dataset: %w", err)
	}

	var trace []store.TraceEntry
	start := time.Now()
	res, err := fit.GradientDescent(ds, fit.DescentConfig{
		LearningRate:  cfg.LearningRate,
		MaxIterations: cfg.MaxIterations,
		Convergence:   fit.DefaultConvergenceConfig(),
		OnIteration: func(it fit.Iteration) {
			trace = append(trace, store.NewTraceEntry(it))
		},
	})
	if err != nil {
		return "", fmt.Errorf("gradient descent failed: %w", err)
	}
	elapsed := time.Since(start)

	slog.Info("Fit complete",
		"run_id", runID,
		"iterations", res.Iterations,
		"final_cost", res.FinalCost(),
		"converged", res.Converged,
		"elapsed", elapsed,
	)

	summary := report.Summarize(cfg, ds, res, report.ExampleInputs)
	if err := summary.Write(out); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}

	if diverged(res) {
		slog.Warn("Cost diverged, skipping plots and run record; try a smaller learning rate",
			"run_id", runID,
			"learning_rate", cfg.LearningRate,
		)
		fmt.Fprintln(out, "Cost diverged: try a smaller learning rate")
		return "", nil
	}

	var artifacts []string
	if !opts.noPlots {
		paths, err := report.SavePlots(opts.outDir, ds, res)
		if err != nil {
			return "", fmt.Errorf("failed to save plots: %w", err)
		}
		artifacts = append(artifacts, paths...)
		fmt.Fprintf(out, "Plots written to %s\n", opts.outDir)
	}

	remote, err := publishRun(ctx, opts, runID, res, summary.RSquared, artifacts, out)
	if err != nil {
		return "", err
	}
	artifacts = append(artifacts, remote...)

	if opts.noRecord {
		return "", nil
	}

	runStore, err := store.NewFSStore(opts.dataDir)
	if err != nil {
		return "", fmt.Errorf("failed to create run store: %w", err)
	}
	record := store.NewRunRecord(runID, cfg, res, summary.RSquared)
	record.Artifacts = artifacts
	if err := runStore.SaveRun(runID, record); err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}
	if err := store.WriteTrace(runStore.BaseDir(), runID, trace); err != nil {
		return "", fmt.Errorf("failed to save trace: %w", err)
	}

	fmt.Fprintf(out, "Run recorded: %s\n", runID)
	return runID, nil
}

// publishRun uploads the plots and metrics when the matching flags are set and
// returns the S3 locations of the uploaded plots.
func publishRun(ctx context.Context, opts runOptions, runID string, res *fit.Result, rSquared float64, plots []string, out io.Writer) ([]string, error) {
	if opts.s3Bucket == "" && opts.cwNamespace == "" {
		return nil, nil
	}

	sess, err := publish.NewSession(opts.region)
	if err != nil {
		return nil, err
	}

	var remote []string
	if opts.s3Bucket != "" && len(plots) > 0 {
		pub := publish.NewS3Publisher(sess, opts.s3Bucket, path.Join(opts.s3Prefix, runID))
		links, err := pub.PublishFiles(ctx, plots)
		if err != nil {
			return nil, fmt.Errorf("failed to publish plots: %w", err)
		}
		for i, link := range links {
			remote = append(remote, "s3://"+opts.s3Bucket+"/"+pub.Key(plots[i]))
			fmt.Fprintf(out, "Plot link: %s\n", link)
		}
	}

	if opts.cwNamespace != "" {
		metrics := publish.NewMetricsPublisher(sess, opts.cwNamespace)
		if err := metrics.PublishRun(ctx, res, rSquared); err != nil {
			return nil, fmt.Errorf("failed to publish metrics: %w", err)
		}
	}

	return remote, nil
}

func diverged(res *fit.Result) bool {
	for _, v := range []float64{res.Params.W, res.Params.B, res.FinalCost()} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
