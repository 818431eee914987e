package main

import (
	"bytes"
	"testing"

	"github.com/cwbudde/linefit/internal/fit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteTune(t *testing.T) {
	opts := tuneOptions{
		cfg:       fit.DefaultConfig(),
		lower:     1e-3,
		upper:     0.1,
		popSize:   20,
		tuneIters: 5,
	}
	opts.cfg.MaxIterations = 300

	var out bytes.Buffer
	alpha, err := executeTune(opts, &out)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, alpha, opts.lower)
	assert.LessOrEqual(t, alpha, opts.upper)
	assert.Contains(t, out.String(), "Best learning rate:")
	assert.Contains(t, out.String(), "Evaluations:")
}

func TestExecuteTuneInvalidBounds(t *testing.T) {
	opts := tuneOptions{
		cfg:       fit.DefaultConfig(),
		lower:     0.1,
		upper:     0.01,
		popSize:   20,
		tuneIters: 5,
	}

	_, err := executeTune(opts, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, fit.ErrInvalidConfiguration)
}
