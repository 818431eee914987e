package fit

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/linefit/internal/opt"
)

// TuneResult holds the outcome of a learning-rate search
type TuneResult struct {
	LearningRate float64 `json:"learningRate"`
	FinalCost    float64 `json:"finalCost"`
	Iterations   int     `json:"iterations"`
	Evaluations  int     `json:"evaluations"`
}

// TuneLearningRate searches alpha in [lower, upper] for the value whose gradient
// descent run over ds reaches the lowest final cost within maxIterations.
// The optimizer works on log10(alpha) so every decade gets the same weight.
// Runs whose cost diverges to NaN or Inf score math.MaxFloat64.
func TuneLearningRate(ds *Dataset, optimizer opt.Optimizer, lower, upper float64, maxIterations int) (*TuneResult, error) {
	if !(lower > 0) {
		return nil, invalid("LowerBound", "must be positive")
	}
	if !(upper > lower) {
		return nil, invalid("UpperBound", "must be greater than the lower bound")
	}
	if maxIterations <= 0 {
		return nil, invalid("MaxIterations", "must be positive")
	}
	if ds == nil || ds.Len() == 0 {
		return nil, invalid("Dataset", "cannot be empty")
	}

	slog.Info("Starting learning rate search", "lower", lower, "upper", upper, "iters", maxIterations)

	logLower, logUpper := math.Log10(lower), math.Log10(upper)
	alphaAt := func(pos []float64) float64 {
		return math.Pow(10, math.Max(logLower, math.Min(logUpper, pos[0])))
	}

	evaluations := 0
	eval := func(pos []float64) float64 {
		evaluations++
		res, err := GradientDescent(ds, DescentConfig{
			LearningRate:  alphaAt(pos),
			MaxIterations: maxIterations,
			Convergence:   DefaultConvergenceConfig(),
		})
		if err != nil {
			return math.MaxFloat64
		}
		cost := res.FinalCost()
		if math.IsNaN(cost) || math.IsInf(cost, 0) {
			return math.MaxFloat64
		}
		return cost
	}

	best, _, err := optimizer.Run(eval, []float64{logLower}, []float64{logUpper})
	if err != nil {
		return nil, fmt.Errorf("learning rate search failed: %w", err)
	}
	if len(best) != 1 {
		return nil, fmt.Errorf("learning rate search returned %d parameters, expected 1", len(best))
	}

	alpha := alphaAt(best)
	final, err := Fit(ds, alpha, maxIterations)
	if err != nil {
		return nil, err
	}

	slog.Info("Learning rate search complete",
		"learning_rate", alpha,
		"final_cost", final.FinalCost(),
		"evaluations", evaluations,
	)

	return &TuneResult{
		LearningRate: alpha,
		FinalCost:    final.FinalCost(),
		Iterations:   final.Iterations,
		Evaluations:  evaluations,
	}, nil
}
