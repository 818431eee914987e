package fit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSpacing(t *testing.T) {
	for _, m := range []int{2, 3, 10, 120, 1001} {
		ds, err := Generate(m, 3.2, -0.7, 1.2, 42)
		require.NoError(t, err, "m=%d", m)
		require.Equal(t, m, ds.Len())

		step := 10 / float64(m-1)
		xs := ds.Xs()
		assert.Equal(t, XMin, xs[0])
		assert.InDelta(t, XMax, xs[m-1], 1e-9)
		for i := 1; i < m; i++ {
			assert.Greater(t, xs[i], xs[i-1], "x must increase at %d", i)
			assert.InDelta(t, step, xs[i]-xs[i-1], 1e-9, "spacing at %d", i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(120, 3.2, -0.7, 1.2, 42)
	require.NoError(t, err)
	b, err := Generate(120, 3.2, -0.7, 1.2, 42)
	require.NoError(t, err)

	assert.Equal(t, a.Xs(), b.Xs())
	assert.Equal(t, a.Ys(), b.Ys())

	c, err := Generate(120, 3.2, -0.7, 1.2, 43)
	require.NoError(t, err)
	assert.NotEqual(t, a.Ys(), c.Ys(), "a different seed gives different noise")
}

func TestGenerateNoiseFree(t *testing.T) {
	ds, err := Generate(11, 2, 1, 0, 42)
	require.NoError(t, err)

	for i := 0; i < ds.Len(); i++ {
		x, y := ds.XY(i)
		assert.Equal(t, 2*x+1, y)
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name     string
		m        int
		noiseStd float64
	}{
		{"one sample", 1, 1},
		{"zero samples", 0, 1},
		{"negative samples", -3, 1},
		{"negative noise", 10, -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Generate(tt.m, 1, 0, tt.noiseStd, 1)
			assert.Nil(t, ds)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration), "got %v", err)
		})
	}
}

func TestGenerateFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	a, err := GenerateFromConfig(cfg)
	require.NoError(t, err)
	b, err := Generate(cfg.Samples, cfg.TrueW, cfg.TrueB, cfg.NoiseStd, cfg.Seed)
	require.NoError(t, err)

	assert.Equal(t, a.Ys(), b.Ys())
}

func TestNewDataset(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{1, 3, 5}

	ds, err := NewDataset(xs, ys)
	require.NoError(t, err)

	xs[0] = 99
	assert.Equal(t, []float64{0, 1, 2}, ds.Xs(), "dataset must not alias the input")

	lo, hi := ds.Range()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 2.0, hi)
}

func TestNewDatasetInvalid(t *testing.T) {
	tests := []struct {
		name   string
		xs, ys []float64
	}{
		{"empty", nil, nil},
		{"length mismatch", []float64{0, 1}, []float64{0}},
		{"not increasing", []float64{0, 2, 1}, []float64{0, 0, 0}},
		{"duplicate x", []float64{0, 1, 1}, []float64{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDataset(tt.xs, tt.ys)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, "Dataset", cfgErr.Field)
		})
	}
}
