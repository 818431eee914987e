package fit

import (
	"log/slog"
	"math"
)

// DefaultTolerance is the absolute cost change below which descent stops.
const DefaultTolerance = 1e-12

// ConvergenceConfig defines the early-stopping rule of the descent loop
type ConvergenceConfig struct {
	// Enabled controls whether convergence detection is active
	Enabled bool

	// Tolerance is the absolute change between two consecutive costs below which
	// the loop stops. It is not scaled by the cost magnitude.
	Tolerance float64
}

// DefaultConvergenceConfig returns the stopping rule used by Fit
func DefaultConvergenceConfig() ConvergenceConfig {
	return ConvergenceConfig{
		Enabled:   true,
		Tolerance: DefaultTolerance,
	}
}

// DisabledConvergenceConfig returns a config that only stops on the iteration cap
func DisabledConvergenceConfig() ConvergenceConfig {
	return ConvergenceConfig{
		Enabled: false,
	}
}

// ConvergenceTracker records the cost history and detects when two consecutive
// costs are closer than the tolerance.
type ConvergenceTracker struct {
	config      ConvergenceConfig
	costHistory []float64
	bestCost    float64
}

// NewConvergenceTracker creates a new convergence tracker with the given config
func NewConvergenceTracker(config ConvergenceConfig) *ConvergenceTracker {
	return &ConvergenceTracker{
		config:      config,
		costHistory: []float64{},
		bestCost:    math.Inf(1),
	}
}

// Update appends cost to the history and returns true if convergence is detected.
// The first cost never converges.
func (c *ConvergenceTracker) Update(cost float64) bool {
	c.costHistory = append(c.costHistory, cost)

	if cost < c.bestCost {
		c.bestCost = cost
	}

	if !c.config.Enabled || len(c.costHistory) == 1 {
		return false
	}

	previous := c.costHistory[len(c.costHistory)-2]
	delta := math.Abs(previous - cost)
	if delta < c.config.Tolerance {
		slog.Debug("Convergence detected - stopping early",
			"iteration", len(c.costHistory),
			"cost", cost,
			"delta", delta,
			"tolerance", c.config.Tolerance,
		)
		return true
	}

	slog.Debug("Cost updated",
		"iteration", len(c.costHistory),
		"cost", cost,
		"delta", delta,
	)
	return false
}

// BestCost returns the lowest cost seen so far
func (c *ConvergenceTracker) BestCost() float64 {
	return c.bestCost
}

// History returns the full cost history
func (c *ConvergenceTracker) History() []float64 {
	return append([]float64{}, c.costHistory...) // Return copy
}

// Len returns the number of recorded costs
func (c *ConvergenceTracker) Len() int {
	return len(c.costHistory)
}

// Reset clears the tracker's state
func (c *ConvergenceTracker) Reset() {
	c.costHistory = []float64{}
	c.bestCost = math.Inf(1)
}
