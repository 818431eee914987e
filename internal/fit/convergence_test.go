package fit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvergenceTracker_AbsoluteTolerance(t *testing.T) {
	tracker := NewConvergenceTracker(ConvergenceConfig{Enabled: true, Tolerance: 0.01})

	assert.Equal(t, math.Inf(1), tracker.BestCost())

	assert.False(t, tracker.Update(1.0), "first update never converges")
	assert.False(t, tracker.Update(0.5))
	assert.False(t, tracker.Update(0.49), "a change of exactly the tolerance is not below it")
	assert.True(t, tracker.Update(0.485))

	assert.Equal(t, []float64{1.0, 0.5, 0.49, 0.485}, tracker.History())
	assert.Equal(t, 0.485, tracker.BestCost())
	assert.Equal(t, 4, tracker.Len())
}

func TestConvergenceTracker_IncreaseCountsAsChange(t *testing.T) {
	tracker := NewConvergenceTracker(ConvergenceConfig{Enabled: true, Tolerance: 0.1})

	tracker.Update(1.0)
	assert.False(t, tracker.Update(2.0), "a large increase is not convergence")
	assert.True(t, tracker.Update(2.05), "a small increase is")
	assert.Equal(t, 1.0, tracker.BestCost())
}

func TestConvergenceTracker_Disabled(t *testing.T) {
	tracker := NewConvergenceTracker(DisabledConvergenceConfig())

	for i := 0; i < 10; i++ {
		assert.False(t, tracker.Update(1.0))
	}
	assert.Equal(t, 10, tracker.Len(), "history is still recorded when disabled")
}

func TestConvergenceTracker_HistoryIsCopy(t *testing.T) {
	tracker := NewConvergenceTracker(DefaultConvergenceConfig())
	tracker.Update(3)

	h := tracker.History()
	h[0] = 42

	assert.Equal(t, []float64{3}, tracker.History())
}

func TestConvergenceTracker_Reset(t *testing.T) {
	tracker := NewConvergenceTracker(DefaultConvergenceConfig())
	tracker.Update(1)
	tracker.Update(0.5)

	tracker.Reset()

	assert.Equal(t, 0, tracker.Len())
	assert.Equal(t, math.Inf(1), tracker.BestCost())
	assert.False(t, tracker.Update(0.5), "first update after reset never converges")
}

func TestDefaultConvergenceConfig(t *testing.T) {
	cfg := DefaultConvergenceConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1e-12, cfg.Tolerance)
}
