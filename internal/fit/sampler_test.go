package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func TestSamplerDeterministic(t *testing.T) {
	a := NewSampler(42)
	b := NewSampler(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.NextGaussian(0, 1.2), b.NextGaussian(0, 1.2), "draw %d", i)
	}
}

func TestSamplerSeedsDiffer(t *testing.T) {
	a := NewSampler(1)
	b := NewSampler(2)

	same := 0
	for i := 0; i < 10; i++ {
		if a.NextGaussian(0, 1) == b.NextGaussian(0, 1) {
			same++
		}
	}
	assert.Less(t, same, 10)
}

func TestSamplerZeroStdDevReturnsMean(t *testing.T) {
	s := NewSampler(7)
	for _, mean := range []float64{0, -0.7, 3.2, 1e9} {
		assert.Equal(t, mean, s.NextGaussian(mean, 0))
	}
}

func TestSamplerMoments(t *testing.T) {
	s := NewSampler(42)
	draws := make([]float64, 20000)
	for i := range draws {
		draws[i] = s.NextGaussian(2, 0.5)
	}

	mean, std := stat.MeanStdDev(draws, nil)
	assert.InDelta(t, 2.0, mean, 0.02)
	assert.InDelta(t, 0.5, std, 0.02)
}
