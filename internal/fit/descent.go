package fit

// Iteration is a read-only snapshot handed to a DescentConfig observer after
// the parameter update of one iteration.
type Iteration struct {
	// Index is zero-based
	Index int

	// Cost was evaluated at the parameters before this iteration's update
	Cost float64

	// Params are the parameters after the update
	Params Params
}

// DescentConfig configures GradientDescent.
type DescentConfig struct {
	LearningRate  float64
	MaxIterations int
	Convergence   ConvergenceConfig

	// OnIteration, when set, is called once per completed iteration.
	OnIteration func(Iteration)
}

// Fit runs gradient descent from w = 0, b = 0 with the default stopping rule.
func Fit(ds *Dataset, learningRate float64, maxIterations int) (*Result, error) {
	return GradientDescent(ds, DescentConfig{
		LearningRate:  learningRate,
		MaxIterations: maxIterations,
		Convergence:   DefaultConvergenceConfig(),
	})
}

// GradientDescent minimizes Cost over ds starting from w = 0, b = 0.
//
// Each iteration evaluates the cost, records it, computes the gradient and
// applies the update. If the recorded cost differs from the previous one by
// less than the tolerance the loop stops, keeping the update it just applied.
// Divergence is not detected; a too large learning rate yields a growing history.
func GradientDescent(ds *Dataset, cfg DescentConfig) (*Result, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, invalid("Dataset", "cannot be empty")
	}
	if err := validateDescent(cfg.LearningRate, cfg.MaxIterations); err != nil {
		return nil, err
	}

	var p Params
	tracker := NewConvergenceTracker(cfg.Convergence)
	converged := false

	for it := 0; it < cfg.MaxIterations; it++ {
		cost := Cost(ds, p)
		stop := tracker.Update(cost)

		dw, db := Gradient(ds, p)
		p.W -= cfg.LearningRate * dw
		p.B -= cfg.LearningRate * db

		if cfg.OnIteration != nil {
			cfg.OnIteration(Iteration{Index: it, Cost: cost, Params: p})
		}

		if stop {
			converged = true
			break
		}
	}

	history := tracker.History()
	return &Result{
		Params:      p,
		CostHistory: history,
		Iterations:  len(history),
		Converged:   converged,
	}, nil
}
