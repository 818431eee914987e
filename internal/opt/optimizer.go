package opt

// Optimizer defines a derivative-free search over a bounded box
type Optimizer interface {
	// Run minimizes eval over the box [lower, upper]; the dimensionality is len(lower).
	// Returns: best parameters and best cost
	Run(eval func([]float64) float64, lower, upper []float64) ([]float64, float64, error)
}
