package fit

// Params are the slope and intercept of the line y = W*x + B.
type Params struct {
	W float64 `json:"w"`
	B float64 `json:"b"`
}

// At evaluates the line at x as one rounded multiply followed by one rounded add.
func (p Params) At(x float64) float64 {
	// The explicit conversion stops the compiler from fusing into an FMA.
	return float64(p.W*x) + p.B
}

// Result is the outcome of a gradient descent run.
type Result struct {
	Params Params `json:"params"`

	// CostHistory holds the cost evaluated at the start of every completed iteration
	CostHistory []float64 `json:"costHistory"`

	// Iterations is the number of completed iterations (len(CostHistory))
	Iterations int `json:"iterations"`

	// Converged is true when the loop stopped on the cost-change tolerance
	// rather than on the iteration cap
	Converged bool `json:"converged"`
}

// FinalCost returns the last recorded cost, or 0 when nothing was recorded.
func (r *Result) FinalCost() float64 {
	if len(r.CostHistory) == 0 {
		return 0
	}
	return r.CostHistory[len(r.CostHistory)-1]
}
